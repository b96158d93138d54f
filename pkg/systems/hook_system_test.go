package systems

import (
	"testing"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/ecs"
	"github.com/gonewx/fishy-escape/pkg/game"
)

// newTestHooks 创建鱼钩系统；autoSpawn 为 false 时不自动生成
func newTestHooks(t *testing.T, autoSpawn bool) (*ecs.EntityManager, *game.Scheduler, *FishermenSystem, *HookSystem) {
	t.Helper()
	em := ecs.NewEntityManager()
	sched := game.NewScheduler()
	cfg := quietConfig()
	if autoSpawn {
		cfg.Hooks = config.DefaultGameConfig().Hooks
	}
	rng := newRand()
	fs := NewFishermenSystem(em, cfg, rng, nil)
	return em, sched, fs, NewHookSystem(em, cfg, rng, sched, fs)
}

// TestAtMostOneHookPerFisherman 长时间运行中每个渔夫最多一个鱼钩
func TestAtMostOneHookPerFisherman(t *testing.T) {
	em, sched, fs, hs := newTestHooks(t, true)

	maxSeen := 0
	for frame := 0; frame < 60*120; frame++ {
		step(sched, 1, 1.0/60, fs.Update, hs.Update)
		em.RemoveMarkedEntities()
		for slot := 0; slot < fs.Count(); slot++ {
			n := hs.ActiveHooksForSlot(slot)
			if n > 1 {
				t.Fatalf("frame %d: fisherman %d has %d hooks", frame, slot, n)
			}
			if n > maxSeen {
				maxSeen = n
			}
		}
	}
	if maxSeen == 0 {
		t.Error("hooks should have been dropped during two minutes")
	}
	t.Logf("✓ at most one hook per fisherman")
}

// TestHookLifecycle 下落→等待→收线→水面销毁
func TestHookLifecycle(t *testing.T) {
	em, sched, fs, hs := newTestHooks(t, false)

	id := hs.trySpawn()
	if id == 0 {
		t.Fatal("spawn should succeed when all slots are free")
	}
	hook, _ := ecs.GetComponent[*components.HookComponent](em, id)
	pos := positionOf(t, em, id)

	step(sched, 30, 1.0/60, fs.Update, hs.Update)
	if hook.State != components.HookDropping {
		t.Fatalf("hook should still be dropping, got %s", hook.State)
	}
	if pos.Y < hook.StartY || pos.Y > hook.TargetY+1e-9 {
		t.Errorf("dropping hook y=%.2f outside [%.1f, %.1f]", pos.Y, hook.StartY, hook.TargetY)
	}

	step(sched, 31, 1.0/60, fs.Update, hs.Update)
	if hook.State != components.HookArmed {
		t.Fatalf("hook should be armed after the drop, got %s", hook.State)
	}
	if pos.Y != hook.TargetY {
		t.Errorf("armed hook should rest at target depth %.1f, got %.2f", hook.TargetY, pos.Y)
	}

	// 等待最多 ArmedMax 秒后开始收线
	step(sched, 190, 1.0/60, fs.Update, hs.Update)
	if em.IsAlive(id) && hook.State != components.HookPulling {
		t.Fatalf("hook should be pulling after the armed delay, got %s", hook.State)
	}

	// 最慢 100px/s，最深 300px
	step(sched, 60*4, 1.0/60, fs.Update, hs.Update)
	if em.IsAlive(id) {
		t.Errorf("hook should be destroyed at the water line, y=%.2f", pos.Y)
	}
	t.Logf("✓ hook lifecycle completes")
}

// TestHookFollowsBoat 下落与等待阶段X跟随渔船
func TestHookFollowsBoat(t *testing.T) {
	em, sched, fs, hs := newTestHooks(t, false)
	id := hs.trySpawn()
	hook, _ := ecs.GetComponent[*components.HookComponent](em, id)
	pos := positionOf(t, em, id)

	for i := 0; i < 90; i++ {
		step(sched, 1, 1.0/60, fs.Update, hs.Update)
		if hook.State == components.HookPulling {
			break
		}
		if pos.X != fs.BoatX(hook.Slot) {
			t.Fatalf("hook x=%.2f should follow boat x=%.2f", pos.X, fs.BoatX(hook.Slot))
		}
	}
}

func TestTrySpawnSkipsWhenAllSlotsBusy(t *testing.T) {
	_, _, fs, hs := newTestHooks(t, false)
	for i := 0; i < fs.Count(); i++ {
		if hs.trySpawn() == 0 {
			t.Fatalf("spawn %d should succeed", i)
		}
	}
	if id := hs.trySpawn(); id != 0 {
		t.Errorf("spawn should be skipped when every fisherman has a hook, got %d", id)
	}
}

// TestHookFreeze 冻结后鱼钩不再移动，也不会开始收线
func TestHookFreeze(t *testing.T) {
	em, sched, fs, hs := newTestHooks(t, false)
	id := hs.trySpawn()
	step(sched, 70, 1.0/60, fs.Update, hs.Update)

	hs.Freeze()
	hook, _ := ecs.GetComponent[*components.HookComponent](em, id)
	pos := positionOf(t, em, id)
	y := pos.Y

	step(sched, 600, 1.0/60, fs.Update, hs.Update)
	if hook.State != components.HookArmed {
		t.Errorf("frozen hook should stay armed, got %s", hook.State)
	}
	if pos.Y != y {
		t.Errorf("frozen hook should not move: %.2f -> %.2f", y, pos.Y)
	}
	if len(hs.Hooks()) != 1 {
		t.Errorf("no hooks should spawn after freeze, got %d", len(hs.Hooks()))
	}
}
