package components

import "testing"

// TestCollisionBounds 碰撞盒以实体位置为中心并应用偏移
func TestCollisionBounds(t *testing.T) {
	pos := &PositionComponent{X: 100, Y: 200}
	col := &CollisionComponent{Width: 40, Height: 20, OffsetY: 5}

	left, top, right, bottom := col.Bounds(pos)
	if left != 80 || right != 120 {
		t.Errorf("horizontal bounds = [%v, %v], want [80, 120]", left, right)
	}
	if top != 195 || bottom != 215 {
		t.Errorf("vertical bounds = [%v, %v], want [195, 215]", top, bottom)
	}
}

func TestLifetimeProgress(t *testing.T) {
	l := &LifetimeComponent{MaxLifetime: 2, CurrentLifetime: 0.5}
	if l.Progress() != 0.25 {
		t.Errorf("progress = %v, want 0.25", l.Progress())
	}
	l.CurrentLifetime = 5
	if l.Progress() != 1 {
		t.Errorf("progress should clamp at 1, got %v", l.Progress())
	}
	if (&LifetimeComponent{}).Progress() != 1 {
		t.Error("zero lifetime should report complete")
	}
}

// TestStateNames 状态枚举的日志名称
func TestStateNames(t *testing.T) {
	cases := map[string]string{
		HookDropping.String():         "dropping",
		HookPulling.String():          "pulling",
		SeagullDiving.String():        "diving",
		SeagullReturning.String():     "returning",
		FishermanSeek.String():        "seek",
		PowerUpInvincibility.String(): "invincibility",
		PowerUpEat.String():           "eat",
	}
	for got, want := range cases {
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
	if len(AllPowerUpTypes) != 3 {
		t.Errorf("expected 3 power-up types, got %d", len(AllPowerUpTypes))
	}
}
