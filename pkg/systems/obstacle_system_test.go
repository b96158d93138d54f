package systems

import (
	"testing"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/ecs"
	"github.com/gonewx/fishy-escape/pkg/game"
)

// TestObstacleHitboxPerType 每种类型的碰撞盒按缩放计算，底部落在海底带内
func TestObstacleHitboxPerType(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := quietConfig()
	obs := NewObstacleSystem(em, cfg, newRand(), game.NewScheduler())

	waterDepth := cfg.World.Height - cfg.World.WaterLine()
	for _, typ := range cfg.Obstacles.Types {
		id := obs.SpawnType(typ)
		pos := positionOf(t, em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
		scale, _ := ecs.GetComponent[*components.ScaleComponent](em, id)
		obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](em, id)

		if scale.Scale < typ.ScaleMin || scale.Scale > typ.ScaleMax {
			t.Errorf("%s: scale %.2f outside [%.2f, %.2f]", typ.Name, scale.Scale, typ.ScaleMin, typ.ScaleMax)
		}
		if col.Width != typ.HitWidth*scale.Scale || col.Height != typ.HitHeight*scale.Scale {
			t.Errorf("%s: hitbox %.1fx%.1f does not match scale %.2f", typ.Name, col.Width, col.Height, scale.Scale)
		}
		if string(obstacle.Kind) != typ.Kind {
			t.Errorf("%s: kind %q, want %q", typ.Name, obstacle.Kind, typ.Kind)
		}

		_, _, _, bottom := col.Bounds(pos)
		minBottom := cfg.World.Height - cfg.Obstacles.BandFraction*waterDepth
		maxBottom := cfg.World.Height - cfg.Obstacles.MinLift
		if bottom < minBottom-1e-9 || bottom > maxBottom+1e-9 {
			t.Errorf("%s: bottom %.1f outside [%.1f, %.1f]", typ.Name, bottom, minBottom, maxBottom)
		}
		if pos.X != cfg.World.Width+cfg.Obstacles.SpawnOffset {
			t.Errorf("%s: should spawn off the right edge, x=%.1f", typ.Name, pos.X)
		}
	}
	t.Logf("✓ %d obstacle types checked", len(cfg.Obstacles.Types))
}

// TestObstacleDriftAndCleanup 以游戏速度左移，离开左边缘后销毁
func TestObstacleDriftAndCleanup(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := quietConfig()
	obs := NewObstacleSystem(em, cfg, newRand(), game.NewScheduler())

	id := obs.Spawn()
	pos := positionOf(t, em, id)
	startX := pos.X

	obs.Update(0.5)
	if pos.X != startX-cfg.Difficulty.BaseSpeed*0.5 {
		t.Errorf("x = %.1f, want %.1f", pos.X, startX-cfg.Difficulty.BaseSpeed*0.5)
	}

	obs.SetGameSpeed(400)
	if obs.GameSpeed() != 400 {
		t.Errorf("game speed not applied")
	}
	for i := 0; i < 60*5 && em.IsAlive(id); i++ {
		obs.Update(1.0 / 60)
	}
	if em.IsAlive(id) {
		t.Errorf("obstacle should be destroyed after leaving the screen, x=%.1f", pos.X)
	}
}

func TestObstacleSpawnSchedule(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := quietConfig()
	cfg.Obstacles.SpawnMin, cfg.Obstacles.SpawnMax = 3, 3
	sched := game.NewScheduler()
	obs := NewObstacleSystem(em, cfg, newRand(), sched)

	sched.Advance(2.9)
	if len(obs.Obstacles()) != 0 {
		t.Fatal("no obstacle should spawn before the minimum delay")
	}
	sched.Advance(0.2)
	if len(obs.Obstacles()) != 1 {
		t.Errorf("one obstacle should spawn after the delay, got %d", len(obs.Obstacles()))
	}
}

// TestEatIdempotent 重复吃同一个障碍物是空操作
func TestEatIdempotent(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := quietConfig()
	obs := NewObstacleSystem(em, cfg, newRand(), game.NewScheduler())

	id := obs.SpawnType(cfg.Obstacles.Types[0])
	kind, ok := obs.Eat(id)
	if !ok || kind != components.ObstacleCoral {
		t.Fatalf("first eat should succeed with coral, got %q %v", kind, ok)
	}
	if _, ok := obs.Eat(id); ok {
		t.Error("second eat should be a no-op")
	}
	if em.IsAlive(id) {
		t.Error("eaten obstacle should be destroyed")
	}
}

func TestObstacleFreeze(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := quietConfig()
	sched := game.NewScheduler()
	obs := NewObstacleSystem(em, cfg, newRand(), sched)
	id := obs.Spawn()

	obs.Freeze()
	pos := positionOf(t, em, id)
	x := pos.X
	obs.Update(1)
	if pos.X != x {
		t.Error("frozen obstacle should not move")
	}
}
