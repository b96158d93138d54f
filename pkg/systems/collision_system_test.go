package systems

import (
	"testing"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/ecs"
	"github.com/gonewx/fishy-escape/pkg/entities"
	"github.com/gonewx/fishy-escape/pkg/game"
)

// collisionFixture 玩家、障碍物系统、道具系统和记录结果的碰撞系统
type collisionFixture struct {
	em        *ecs.EntityManager
	cfg       *config.GameConfig
	player    *PlayerController
	obstacles *ObstacleSystem
	powerUps  *PowerUpSystem
	cs        *CollisionSystem

	gameOver []string
	bonus    int
	grows    int
}

func newCollisionFixture(t *testing.T) *collisionFixture {
	t.Helper()
	f := &collisionFixture{em: ecs.NewEntityManager(), cfg: quietConfig()}
	sched := game.NewScheduler()
	rng := newRand()

	f.player = NewPlayerController(f.em, f.cfg)
	f.obstacles = NewObstacleSystem(f.em, f.cfg, rng, sched)
	f.powerUps = NewPowerUpSystem(f.em, f.cfg, rng, sched)
	f.cs = NewCollisionSystem(f.em, f.player.Entity(), f.cfg.Obstacles.EatBonus, f.cfg.Obstacles.GrowthCorals, CollisionHandlers{
		OnGameOver:       func(reason string) { f.gameOver = append(f.gameOver, reason) },
		OnCollectPowerUp: f.powerUps.Collect,
		OnEatObstacle:    f.obstacles.Eat,
		OnScoreBonus:     func(n int) { f.bonus += n },
		OnGrow: func() {
			f.grows++
			f.player.GrowFish()
		},
	})
	return f
}

// obstacleAtPlayer 在玩家位置放置指定类别的障碍物
func (f *collisionFixture) obstacleAtPlayer(kind components.ObstacleKind) ecs.EntityID {
	for _, typ := range f.cfg.Obstacles.Types {
		if components.ObstacleKind(typ.Kind) == kind {
			x, y := f.player.Position()
			return entities.NewObstacleEntity(f.em, typ, x, y+typ.HitHeight/2, 1, 0)
		}
	}
	return 0
}

func (f *collisionFixture) hookAtPlayer() ecs.EntityID {
	x, y := f.player.Position()
	return entities.NewHookEntity(f.em, f.cfg.Hooks, 0, x, y, y)
}

func (f *collisionFixture) frame(effects PowerUpEffects) {
	f.cs.SetEffects(effects)
	f.cs.Update(1.0 / 60)
	f.em.RemoveMarkedEntities()
}

var (
	noEffects   = PowerUpEffects{SpeedMultiplier: 1}
	invincible  = PowerUpEffects{SpeedMultiplier: 1, IsInvincible: true}
	canEat      = PowerUpEffects{SpeedMultiplier: 1, CanEatObstacles: true}
	invincEater = PowerUpEffects{SpeedMultiplier: 1, IsInvincible: true, CanEatObstacles: true}
)

func TestHookIsLethal(t *testing.T) {
	f := newCollisionFixture(t)
	f.hookAtPlayer()
	f.frame(noEffects)

	if len(f.gameOver) != 1 || f.gameOver[0] != "hook" {
		t.Fatalf("expected one hook game over, got %v", f.gameOver)
	}

	// 结束后不再分发
	f.hookAtPlayer()
	f.frame(noEffects)
	if len(f.gameOver) != 1 {
		t.Errorf("game over should be requested once, got %v", f.gameOver)
	}
	t.Logf("✓ hook collision ends the game")
}

func TestSeagullIsLethal(t *testing.T) {
	f := newCollisionFixture(t)
	x, y := f.player.Position()
	entities.NewSeagullEntity(f.em, f.cfg.Seagulls, x, y, 0)
	f.frame(noEffects)

	if len(f.gameOver) != 1 || f.gameOver[0] != "seagull" {
		t.Fatalf("expected seagull game over, got %v", f.gameOver)
	}
}

func TestInvincibilityIgnoresHazards(t *testing.T) {
	f := newCollisionFixture(t)
	f.hookAtPlayer()
	x, y := f.player.Position()
	entities.NewSeagullEntity(f.em, f.cfg.Seagulls, x, y, 0)
	stone := f.obstacleAtPlayer(components.ObstacleStone)

	f.frame(invincible)
	if len(f.gameOver) != 0 {
		t.Errorf("invincible fish should survive, got %v", f.gameOver)
	}
	if !f.em.IsAlive(stone) {
		t.Error("obstacles are ignored, not eaten, while invincible")
	}
}

func TestObstacleIsLethalWithoutEat(t *testing.T) {
	f := newCollisionFixture(t)
	f.obstacleAtPlayer(components.ObstaclePlant)
	f.frame(noEffects)

	if len(f.gameOver) != 1 || f.gameOver[0] != "obstacle" {
		t.Fatalf("expected obstacle game over, got %v", f.gameOver)
	}
}

// TestInvincibilityOverridesEat 同时无敌和可吞食时障碍物被忽略
func TestInvincibilityOverridesEat(t *testing.T) {
	f := newCollisionFixture(t)
	coral := f.obstacleAtPlayer(components.ObstacleCoral)
	f.frame(invincEater)

	if !f.em.IsAlive(coral) || f.bonus != 0 || f.cs.CoralsEaten() != 0 {
		t.Errorf("invincibility should take precedence: alive=%v bonus=%d corals=%d",
			f.em.IsAlive(coral), f.bonus, f.cs.CoralsEaten())
	}
	t.Logf("✓ invincibility overrides eat")
}

// TestCoralGrowth 每吃掉 5 个珊瑚成长一次，其他障碍物只加分
func TestCoralGrowth(t *testing.T) {
	f := newCollisionFixture(t)
	startScale := f.player.Scale()

	f.obstacleAtPlayer(components.ObstacleStone)
	f.frame(canEat)
	if f.cs.CoralsEaten() != 0 {
		t.Errorf("stone should not count toward growth")
	}

	for i := 0; i < f.cfg.Obstacles.GrowthCorals; i++ {
		f.obstacleAtPlayer(components.ObstacleCoral)
		f.frame(canEat)
	}

	if f.grows != 1 {
		t.Errorf("expected one growth, got %d", f.grows)
	}
	if f.cs.CoralsEaten() != 0 {
		t.Errorf("coral counter should reset after growth, got %d", f.cs.CoralsEaten())
	}
	if f.player.Scale() <= startScale {
		t.Errorf("fish should grow: %.2f -> %.2f", startScale, f.player.Scale())
	}
	wantBonus := (f.cfg.Obstacles.GrowthCorals + 1) * f.cfg.Obstacles.EatBonus
	if f.bonus != wantBonus {
		t.Errorf("bonus = %d, want %d", f.bonus, wantBonus)
	}
	if len(f.gameOver) != 0 {
		t.Errorf("eating should never end the game, got %v", f.gameOver)
	}
	t.Logf("✓ %d corals grew the fish to %.2f", f.cfg.Obstacles.GrowthCorals, f.player.Scale())
}

// TestPowerUpCollectedWhileInvincible 道具总是可以拾取
func TestPowerUpCollectedWhileInvincible(t *testing.T) {
	f := newCollisionFixture(t)
	x, y := f.player.Position()
	id := entities.NewPowerUpEntity(f.em, f.cfg.PowerUps, components.PowerUpSpeed, x, y, 0)

	f.frame(invincible)
	if f.em.IsAlive(id) {
		t.Error("power-up should be collected")
	}
	if got := f.powerUps.Update(0); got.SpeedMultiplier != f.cfg.PowerUps.SpeedMultiplier {
		t.Errorf("speed effect should be active, got %+v", got)
	}
}

func TestHiddenPlayerHasNoCollisions(t *testing.T) {
	f := newCollisionFixture(t)
	f.hookAtPlayer()
	f.player.Hide()
	f.frame(noEffects)

	if len(f.gameOver) != 0 {
		t.Errorf("hidden player should not collide, got %v", f.gameOver)
	}
}

func TestNoCollisionWhenApart(t *testing.T) {
	f := newCollisionFixture(t)
	x, y := f.player.Position()
	entities.NewHookEntity(f.em, f.cfg.Hooks, 0, x+200, y, y)
	f.frame(noEffects)

	if len(f.gameOver) != 0 {
		t.Errorf("distant hook should not collide, got %v", f.gameOver)
	}
}
