package systems

import (
	"math"
	"testing"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/ecs"
)

func newTestPlayer(t *testing.T) (*ecs.EntityManager, *config.GameConfig, *PlayerController) {
	t.Helper()
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	return em, cfg, NewPlayerController(em, cfg)
}

func TestPlayerStartsUnderwater(t *testing.T) {
	_, cfg, pc := newTestPlayer(t)
	x, y := pc.Position()
	if x != cfg.Player.StartX || y != cfg.World.WaterLine()+cfg.Player.StartDepth {
		t.Errorf("unexpected start position (%.1f, %.1f)", x, y)
	}
	if pc.Scale() != cfg.Player.InitialScale {
		t.Errorf("scale = %.2f, want %.2f", pc.Scale(), cfg.Player.InitialScale)
	}
}

// TestPointerAboveWaterIgnored 水面以上的指针事件不改变速度
func TestPointerAboveWaterIgnored(t *testing.T) {
	_, cfg, pc := newTestPlayer(t)

	pc.HandlePointer(500, cfg.World.WaterLine()-1, true)
	if vx, vy := pc.Velocity(); vx != 0 || vy != 0 {
		t.Errorf("pointer above water should be ignored, velocity=(%.1f, %.1f)", vx, vy)
	}

	// 未按下同样忽略
	pc.HandlePointer(500, cfg.World.WaterLine()+200, false)
	if vx, vy := pc.Velocity(); vx != 0 || vy != 0 {
		t.Errorf("released pointer should be ignored, velocity=(%.1f, %.1f)", vx, vy)
	}
	t.Logf("✓ pointer above water ignored")
}

// TestPlayerArrivesAtTarget 朝指针匀速移动并停在目标点
func TestPlayerArrivesAtTarget(t *testing.T) {
	_, cfg, pc := newTestPlayer(t)
	_, y := pc.Position()

	pc.HandlePointer(300, y, true)
	vx, vy := pc.Velocity()
	if math.Abs(vx-cfg.Player.BaseSpeed) > 1e-9 || vy != 0 {
		t.Fatalf("velocity should point at target with base speed, got (%.2f, %.2f)", vx, vy)
	}
	if pc.FacingLeft() {
		t.Error("fish should face right when moving right")
	}

	for i := 0; i < 30; i++ {
		pc.Update(1.0 / 60)
	}
	x, _ := pc.Position()
	if math.Abs(x-200) > 1e-6 {
		t.Errorf("after 0.5s x should be 200, got %.3f", x)
	}

	for i := 0; i < 60; i++ {
		pc.Update(1.0 / 60)
	}
	x, _ = pc.Position()
	vx, vy = pc.Velocity()
	if x != 300 || vx != 0 || vy != 0 {
		t.Errorf("fish should stop at target, got x=%.3f v=(%.2f, %.2f)", x, vx, vy)
	}
	t.Logf("✓ player arrives at target")
}

func TestPlayerFacesLeft(t *testing.T) {
	_, _, pc := newTestPlayer(t)
	_, y := pc.Position()
	pc.HandlePointer(10, y+50, true)
	if !pc.FacingLeft() {
		t.Error("fish should face left when target is to the left")
	}
}

// TestSpeedMultiplierRescalesVelocity 倍率变化时按比例缩放当前速度
func TestSpeedMultiplierRescalesVelocity(t *testing.T) {
	_, cfg, pc := newTestPlayer(t)
	_, y := pc.Position()
	pc.HandlePointer(900, y, true)

	pc.SetSpeedMultiplier(1.5)
	vx, _ := pc.Velocity()
	if math.Abs(vx-cfg.Player.BaseSpeed*1.5) > 1e-9 {
		t.Errorf("velocity should scale to %.1f, got %.3f", cfg.Player.BaseSpeed*1.5, vx)
	}

	pc.SetSpeedMultiplier(1)
	vx, _ = pc.Velocity()
	if math.Abs(vx-cfg.Player.BaseSpeed) > 1e-9 {
		t.Errorf("velocity should return to base speed, got %.3f", vx)
	}
}

// TestPlayerClampedUnderwater 玩家被限制在水下区域内
func TestPlayerClampedUnderwater(t *testing.T) {
	em, cfg, pc := newTestPlayer(t)

	pc.HandlePointer(5000, cfg.World.WaterLine()+1, true)
	for i := 0; i < 600; i++ {
		pc.Update(1.0 / 60)
	}

	col, _ := ecs.GetComponent[*components.CollisionComponent](em, pc.Entity())
	x, y := pc.Position()
	if x != cfg.World.Width-col.Width/2 {
		t.Errorf("x should clamp to %.2f, got %.2f", cfg.World.Width-col.Width/2, x)
	}
	if y != cfg.World.WaterLine()+col.Height/2 {
		t.Errorf("y should clamp to %.2f, got %.2f", cfg.World.WaterLine()+col.Height/2, y)
	}
	if vx, _ := pc.Velocity(); vx != 0 {
		t.Errorf("clamped axis velocity should be zero, got %.2f", vx)
	}
	t.Logf("✓ player stays underwater")
}

// TestGrowFish 成长增大缩放与碰撞盒
func TestGrowFish(t *testing.T) {
	em, cfg, pc := newTestPlayer(t)

	pc.GrowFish()
	want := cfg.Player.InitialScale + cfg.Player.GrowthIncrement
	if math.Abs(pc.Scale()-want) > 1e-9 {
		t.Errorf("scale = %.2f, want %.2f", pc.Scale(), want)
	}
	col, _ := ecs.GetComponent[*components.CollisionComponent](em, pc.Entity())
	if math.Abs(col.Width-cfg.Player.HitWidth*want) > 1e-9 {
		t.Errorf("hitbox width = %.2f, want %.2f", col.Width, cfg.Player.HitWidth*want)
	}
	if n := len(ecs.GetEntitiesWith1[*components.EffectComponent](em)); n != 1 {
		t.Errorf("growth should spawn one pulse effect, got %d", n)
	}
}

func TestHideFreezesPlayer(t *testing.T) {
	_, _, pc := newTestPlayer(t)
	_, y := pc.Position()
	pc.HandlePointer(900, y, true)
	pc.Hide()

	if !pc.IsHidden() {
		t.Error("player should be hidden")
	}
	before, _ := pc.Position()
	pc.HandlePointer(900, y, true)
	pc.Update(1)
	after, _ := pc.Position()
	if before != after {
		t.Errorf("hidden player should not move: %.1f -> %.1f", before, after)
	}
}
