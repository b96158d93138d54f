package session

import (
	"testing"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/ecs"
	"github.com/gonewx/fishy-escape/pkg/entities"
	"github.com/gonewx/fishy-escape/pkg/game"
)

const frame = 0.1

// quietConfig 关闭随机生成，场景由测试自行布置
func quietConfig() *config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.Hooks.SpawnMin, cfg.Hooks.SpawnMax = 1e6, 1e6
	cfg.Obstacles.SpawnMin, cfg.Obstacles.SpawnMax = 1e6, 1e6
	cfg.PowerUps.SpawnChance = 0
	cfg.Seagulls.SpawnChance = 0
	return cfg
}

type fakeRecorder struct {
	times []int
}

func (r *fakeRecorder) RecordNow(timeMs int) int {
	r.times = append(r.times, timeMs)
	return 0
}

func run(c *Controller, frames int) {
	for i := 0; i < frames; i++ {
		c.Update(frame)
	}
}

// placeHook 在玩家位置放置一个静止的（收线速度为 0）鱼钩
func placeHook(c *Controller) ecs.EntityID {
	x, y := c.Player().Position()
	id := entities.NewHookEntity(c.EntityManager(), c.Config().Hooks, 0, x, y, y)
	hook, _ := ecs.GetComponent[*components.HookComponent](c.EntityManager(), id)
	hook.State = components.HookPulling
	hook.PullSpeed = 0
	return id
}

// placeObstacle 在玩家位置放置指定类别的障碍物
func placeObstacle(c *Controller, kind components.ObstacleKind) ecs.EntityID {
	x, y := c.Player().Position()
	for _, typ := range c.Config().Obstacles.Types {
		if components.ObstacleKind(typ.Kind) == kind {
			return entities.NewObstacleEntity(c.EntityManager(), typ, x, y+typ.HitHeight/2, 1, 0)
		}
	}
	return 0
}

// TestDifficultyRamp 每 5 秒游戏速度 +10，并传播到背景、障碍物和道具
func TestDifficultyRamp(t *testing.T) {
	c := New(Options{Config: quietConfig(), Seed: 1})

	run(c, 151)

	want := c.Config().Difficulty.BaseSpeed + 3*c.Config().Difficulty.Increment
	if c.GameSpeed() != want {
		t.Fatalf("game speed after 15s = %.1f, want %.1f", c.GameSpeed(), want)
	}
	if c.Background().GameSpeed() != want || c.Obstacles().GameSpeed() != want || c.PowerUps().GameSpeed() != want {
		t.Errorf("game speed not propagated: bg=%.1f obstacles=%.1f powerups=%.1f",
			c.Background().GameSpeed(), c.Obstacles().GameSpeed(), c.PowerUps().GameSpeed())
	}
	if c.IsGameOver() {
		t.Error("quiet session should not end")
	}
	t.Logf("✓ game speed %.0f after 15s", c.GameSpeed())
}

// TestLethalCollisionEndsSession 致命碰撞立即冻结，延迟后发出 game-over
func TestLethalCollisionEndsSession(t *testing.T) {
	recorder := &fakeRecorder{}
	audio := &game.NopAudio{}
	var events []game.GameOverEvent
	finished := 0

	c := New(Options{
		Config:     quietConfig(),
		Seed:       7,
		SessionID:  "test-session",
		Audio:      audio,
		Recorder:   recorder,
		OnFinished: func(game.GameOverEvent) { finished++ },
	})
	c.Events().OnGameOver(func(ev game.GameOverEvent) { events = append(events, ev) })

	if !audio.IsPlaying() {
		t.Fatal("ambient music should start with the session")
	}

	run(c, 20)
	placeHook(c)
	c.Update(frame)

	if !c.IsGameOver() || c.DeathReason() != "hook" {
		t.Fatalf("hook collision should end the session, reason=%q", c.DeathReason())
	}
	if audio.IsPlaying() {
		t.Error("ambient music should stop at game over")
	}
	if !c.Player().IsHidden() {
		t.Error("player should be hidden")
	}
	if n := CountEntities[*components.EffectComponent](c); n < c.Config().Session.BurstParticles {
		t.Errorf("expected a burst of %d bubbles, found %d effects", c.Config().Session.BurstParticles, n)
	}

	score := c.State().Score()
	elapsed := c.State().ElapsedMs()

	run(c, 9)
	if len(events) != 0 || c.IsFinished() {
		t.Fatal("game-over event should wait for the delay")
	}
	if c.State().Score() != score {
		t.Errorf("score should be frozen: %d -> %d", score, c.State().Score())
	}

	run(c, 2)
	if len(events) != 1 {
		t.Fatalf("expected exactly one game-over event, got %d", len(events))
	}
	ev := events[0]
	if ev.Score != score || ev.Time != elapsed || ev.SessionID != "test-session" {
		t.Errorf("event = %+v, want score=%d time=%d", ev, score, elapsed)
	}
	if elapsed != 2100 {
		t.Errorf("elapsed = %dms, want 2100", elapsed)
	}
	if len(recorder.times) != 1 || recorder.times[0] != elapsed {
		t.Errorf("leaderboard should record %d once, got %v", elapsed, recorder.times)
	}
	if finished != 1 {
		t.Errorf("OnFinished should fire once, fired %d", finished)
	}

	run(c, 50)
	if len(events) != 1 || finished != 1 {
		t.Error("nothing else should fire after the session finished")
	}
	t.Logf("✓ game over after collision: %+v", ev)
}

func TestGameOverIdempotent(t *testing.T) {
	recorder := &fakeRecorder{}
	c := New(Options{Config: quietConfig(), Recorder: recorder})
	gameOvers := 0
	c.Events().OnGameOver(func(game.GameOverEvent) { gameOvers++ })

	c.GameOver("hook")
	c.GameOver("seagull")
	run(c, 20)

	if gameOvers != 1 || len(recorder.times) != 1 {
		t.Errorf("game over should run once, events=%d records=%d", gameOvers, len(recorder.times))
	}
	if c.DeathReason() != "hook" {
		t.Errorf("first reason should win, got %q", c.DeathReason())
	}
}

// TestFiveCoralsGrowFish 吞食状态下吃 5 个珊瑚，鱼成长一次并获得奖励分
func TestFiveCoralsGrowFish(t *testing.T) {
	c := New(Options{Config: quietConfig(), Seed: 3})
	c.PowerUps().Activate(components.PowerUpEat)
	startScale := c.Player().Scale()

	for i := 0; i < 5; i++ {
		placeObstacle(c, components.ObstacleCoral)
		c.Update(1.0 / 60)
	}

	if c.IsGameOver() {
		t.Fatalf("eating should not end the game (%s)", c.DeathReason())
	}
	want := startScale + c.Config().Player.GrowthIncrement
	if diff := c.Player().Scale() - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("scale = %.2f, want %.2f", c.Player().Scale(), want)
	}
	if c.Collision().CoralsEaten() != 0 {
		t.Errorf("coral counter should reset, got %d", c.Collision().CoralsEaten())
	}
	if c.State().Score() < 5*c.Config().Obstacles.EatBonus {
		t.Errorf("score %d should include the eat bonus", c.State().Score())
	}
	t.Logf("✓ fish grew to %.2f", c.Player().Scale())
}

// TestInvincibilityOverridesEatInSession 同时生效时障碍物被完全忽略
func TestInvincibilityOverridesEatInSession(t *testing.T) {
	c := New(Options{Config: quietConfig(), Seed: 4})
	c.PowerUps().Activate(components.PowerUpEat)
	c.PowerUps().Activate(components.PowerUpInvincibility)

	coral := placeObstacle(c, components.ObstacleCoral)
	placeHook(c)
	c.Update(1.0 / 60)

	if c.IsGameOver() {
		t.Fatal("invincible fish should survive")
	}
	if !c.EntityManager().IsAlive(coral) {
		t.Error("coral should be ignored, not eaten")
	}
	if c.State().Score() != 0 {
		t.Errorf("no bonus while invincible, score=%d", c.State().Score())
	}
	if fx := c.Effects(); !fx.IsInvincible || !fx.CanEatObstacles {
		t.Errorf("both effects should be reported, got %+v", fx)
	}
}

func TestSpeedPowerUpAppliesToPlayer(t *testing.T) {
	c := New(Options{Config: quietConfig()})
	c.PowerUps().Activate(components.PowerUpSpeed)
	c.Update(frame)

	if c.Player().SpeedMultiplier() != c.Config().PowerUps.SpeedMultiplier {
		t.Errorf("speed multiplier = %.2f, want %.2f", c.Player().SpeedMultiplier(), c.Config().PowerUps.SpeedMultiplier)
	}
	if len(c.Indicators()) != 1 {
		t.Errorf("expected one HUD indicator, got %d", len(c.Indicators()))
	}
}

func TestMilestoneBanner(t *testing.T) {
	cfg := quietConfig()
	cfg.Session.Milestones = []int{5}
	c := New(Options{Config: cfg})

	run(c, 6)
	banners := 0
	for _, id := range ecs.GetEntitiesWith1[*components.EffectComponent](c.EntityManager()) {
		effect, _ := ecs.GetComponent[*components.EffectComponent](c.EntityManager(), id)
		if effect.Kind == components.EffectMilestoneBanner {
			banners++
		}
	}
	if banners != 1 {
		t.Errorf("expected one milestone banner, got %d", banners)
	}
}

func TestHandlePointerMovesPlayer(t *testing.T) {
	c := New(Options{Config: quietConfig()})
	x0, y0 := c.Player().Position()

	c.HandlePointer(x0+300, y0, true)
	run(c, 5)
	if x, _ := c.Player().Position(); x <= x0 {
		t.Errorf("player should move right: %.1f -> %.1f", x0, x)
	}

	c.GameOver("hook")
	x1, _ := c.Player().Position()
	c.HandlePointer(0, y0, true)
	run(c, 5)
	if x, _ := c.Player().Position(); x != x1 {
		t.Error("input should be ignored after game over")
	}
}

// TestDeterministicWithSeed 相同种子、相同输入得到相同结果
func TestDeterministicWithSeed(t *testing.T) {
	play := func() (bool, int, int, int) {
		c := New(Options{Seed: 2024, SessionID: "det"})
		for i := 0; i < 60*40; i++ {
			if i%90 == 0 {
				c.HandlePointer(float64(100+(i%700)), 450, true)
			}
			c.Update(1.0 / 60)
		}
		return c.IsGameOver(), c.State().Score(), c.State().ElapsedMs(), c.EntityManager().EntityCount()
	}

	over1, score1, ms1, n1 := play()
	over2, score2, ms2, n2 := play()
	if over1 != over2 || score1 != score2 || ms1 != ms2 || n1 != n2 {
		t.Errorf("runs diverged: (%v %d %d %d) vs (%v %d %d %d)", over1, score1, ms1, n1, over2, score2, ms2, n2)
	}
	t.Logf("✓ deterministic: over=%v score=%d time=%dms", over1, score1, ms1)
}

func TestSessionIDGenerated(t *testing.T) {
	a := New(Options{Config: quietConfig()})
	b := New(Options{Config: quietConfig()})
	if a.SessionID() == "" || a.SessionID() == b.SessionID() {
		t.Errorf("session ids should be unique, got %q and %q", a.SessionID(), b.SessionID())
	}
}
