package systems

import (
	"testing"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/ecs"
	"github.com/gonewx/fishy-escape/pkg/entities"
)

func TestLifetimeUpdate(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: 10.0})

	system.Update(5.0)

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if lifetime.CurrentLifetime != 5.0 {
		t.Errorf("Expected CurrentLifetime=5.0, got %f", lifetime.CurrentLifetime)
	}
	if lifetime.IsExpired {
		t.Error("Entity should not be expired yet")
	}
}

func TestLifetimeExpiration(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	short := em.CreateEntity()
	ecs.AddComponent(em, short, &components.LifetimeComponent{MaxLifetime: 5.0})
	long := em.CreateEntity()
	ecs.AddComponent(em, long, &components.LifetimeComponent{MaxLifetime: 10.0})

	system.Update(3.0)
	system.Update(3.0)
	em.RemoveMarkedEntities()

	if ecs.HasComponent[*components.LifetimeComponent](em, short) {
		t.Error("Expired entity should be removed")
	}
	if !em.IsAlive(long) {
		t.Error("Entity with remaining lifetime should survive")
	}
}

// TestEffectsExpire 所有装饰效果都有有限寿命
func TestEffectsExpire(t *testing.T) {
	em := ecs.NewEntityManager()
	lifetime := NewLifetimeSystem(em)
	effects := NewEffectSystem(em)

	burst := entities.NewBubbleBurst(em, newRand(), 100, 400, 20)
	if len(burst) != 20 {
		t.Fatalf("expected 20 burst bubbles, got %d", len(burst))
	}
	entities.NewGrowthPulse(em, 100, 400)
	entities.NewChompEffect(em, 100, 400)
	entities.NewCollectFlash(em, 100, 400, components.PowerUpEat)
	entities.NewMilestoneBanner(em, 512, 200, 100)

	for i := 0; i < 200; i++ {
		effects.Update(1.0 / 60)
		lifetime.Update(1.0 / 60)
		em.RemoveMarkedEntities()
	}

	if n := len(ecs.GetEntitiesWith1[*components.EffectComponent](em)); n != 0 {
		t.Errorf("all effects should expire within %.1fs, %d left", 200.0/60, n)
	}
	t.Logf("✓ effects expire")
}

// TestBurstBubblesSlowDown 爆发气泡受阻力减速
func TestBurstBubblesSlowDown(t *testing.T) {
	em := ecs.NewEntityManager()
	effects := NewEffectSystem(em)

	ids := entities.NewBubbleBurst(em, newRand(), 0, 0, 1)
	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, ids[0])
	startVX := vel.VX

	effects.Update(0.1)
	if startVX != 0 && !(abs(vel.VX) < abs(startVX)) {
		t.Errorf("horizontal speed should decay: %.2f -> %.2f", startVX, vel.VX)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
