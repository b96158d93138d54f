// Package session 组合一局游戏的全部系统（游戏主循环控制器）
//
// Controller 与渲染引擎无关：桌面版（ebiten）和终端版（tcell）都驱动同一个 Controller，
// 只在绘制和输入上有所不同。重新开始一局就是创建一个新的 Controller。
package session

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/google/uuid"

	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/ecs"
	"github.com/gonewx/fishy-escape/pkg/entities"
	"github.com/gonewx/fishy-escape/pkg/game"
	"github.com/gonewx/fishy-escape/pkg/systems"
)

// LeaderboardRecorder 游戏结束时记录存活时间
type LeaderboardRecorder interface {
	RecordNow(timeMs int) int
}

// Options 创建一局游戏所需的参数
type Options struct {
	Config    *config.GameConfig  // 为 nil 时使用默认配置
	Seed      int64               // 随机种子
	SessionID string              // 为空时生成随机 UUID
	Audio     game.AudioHandle    // 为 nil 时不发声
	Events    *game.SessionEvents // 为 nil 时新建
	Recorder  LeaderboardRecorder // 可为 nil

	// OnFinished 游戏结束延迟结束后调用（在 game-over 事件之后）
	OnFinished func(game.GameOverEvent)
}

// Controller 一局游戏的控制器
type Controller struct {
	cfg       *config.GameConfig
	rng       *rand.Rand
	em        *ecs.EntityManager
	scheduler *game.Scheduler
	events    *game.SessionEvents
	audio     game.AudioHandle
	recorder  LeaderboardRecorder
	sessionID string

	onFinished func(game.GameOverEvent)

	state      *game.SessionState
	player     *systems.PlayerController
	fishermen  *systems.FishermenSystem
	hooks      *systems.HookSystem
	obstacles  *systems.ObstacleSystem
	seagulls   *systems.SeagullSystem
	powerUps   *systems.PowerUpSystem
	background *systems.BackgroundSystem
	collision  *systems.CollisionSystem
	effectSys  *systems.EffectSystem
	lifetime   *systems.LifetimeSystem

	gameSpeed      float64
	difficultyTask game.TaskID
	effects        systems.PowerUpEffects

	gameOver    bool
	finished    bool
	deathReason string
	lastRank    int
	result      game.GameOverEvent
}

// New 创建并开始一局游戏
//
// 参数:
//   - opts: 会话参数
//
// 返回:
//   - *Controller: 已开始的会话（计分定时器已注册，环境音乐已开始）
func New(opts Options) *Controller {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}

	c := &Controller{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(opts.Seed)),
		em:         ecs.NewEntityManager(),
		scheduler:  game.NewScheduler(),
		events:     opts.Events,
		audio:      opts.Audio,
		recorder:   opts.Recorder,
		sessionID:  opts.SessionID,
		onFinished: opts.OnFinished,
		gameSpeed:  cfg.Difficulty.BaseSpeed,
		effects:    systems.PowerUpEffects{SpeedMultiplier: 1},
		lastRank:   -1,
	}
	if c.events == nil {
		c.events = game.NewSessionEvents()
	}
	if c.audio == nil {
		c.audio = &game.NopAudio{}
	}
	if c.sessionID == "" {
		c.sessionID = newSessionID(opts.Seed)
	}

	c.state = game.NewSessionState(cfg.Session, c.scheduler, c.events)
	c.state.SetMilestoneHandler(c.celebrate)

	c.player = systems.NewPlayerController(c.em, cfg)
	c.background = systems.NewBackgroundSystem(c.em, cfg, c.rng, c.scheduler)
	c.fishermen = systems.NewFishermenSystem(c.em, cfg, c.rng, func() float64 {
		x, _ := c.player.Position()
		return x
	})
	c.hooks = systems.NewHookSystem(c.em, cfg, c.rng, c.scheduler, c.fishermen)
	c.obstacles = systems.NewObstacleSystem(c.em, cfg, c.rng, c.scheduler)
	c.seagulls = systems.NewSeagullSystem(c.em, cfg, c.rng, c.scheduler, c.player.Position)
	c.powerUps = systems.NewPowerUpSystem(c.em, cfg, c.rng, c.scheduler)
	c.effectSys = systems.NewEffectSystem(c.em)
	c.lifetime = systems.NewLifetimeSystem(c.em)

	c.collision = systems.NewCollisionSystem(c.em, c.player.Entity(), cfg.Obstacles.EatBonus, cfg.Obstacles.GrowthCorals, systems.CollisionHandlers{
		OnGameOver:       c.GameOver,
		OnCollectPowerUp: c.powerUps.Collect,
		OnEatObstacle:    c.obstacles.Eat,
		OnScoreBonus:     c.state.AddScoreBonus,
		OnGrow:           c.player.GrowFish,
	})

	c.difficultyTask = c.scheduler.Every(cfg.Difficulty.Interval, c.rampDifficulty)
	c.audio.PlayMusic()

	log.Printf("[Session] %s started (seed=%d)", c.sessionID, opts.Seed)
	return c
}

// newSessionID 生成会话标识
func newSessionID(seed int64) string {
	id, err := uuid.NewRandom()
	if err != nil {
		log.Printf("[Session] Warning: failed to generate session id: %v", err)
		return fmt.Sprintf("local-%d", seed)
	}
	return id.String()
}

// Update 推进一帧
//
// 顺序：调度器 → 道具效果汇总 → 推送给玩家和碰撞系统 → 玩家 → 背景、渔船、障碍物、鱼钩、海鸥
// → 碰撞。游戏结束后只更新调度器和装饰效果。
func (c *Controller) Update(deltaTime float64) {
	c.scheduler.Advance(deltaTime)

	if c.state.IsActive() && !c.gameOver {
		c.effects = c.powerUps.Update(deltaTime)
		c.player.SetSpeedMultiplier(c.effects.SpeedMultiplier)
		c.collision.SetEffects(c.effects)

		c.player.Update(deltaTime)
		c.background.Update(deltaTime)
		c.fishermen.Update(deltaTime)
		c.obstacles.Update(deltaTime)
		c.hooks.Update(deltaTime)
		c.seagulls.Update(deltaTime)

		c.collision.Update(deltaTime)
	}

	c.effectSys.Update(deltaTime)
	c.lifetime.Update(deltaTime)
	c.em.RemoveMarkedEntities()
}

// rampDifficulty 每个难度间隔提升一次游戏速度
func (c *Controller) rampDifficulty() {
	if !c.state.IsActive() {
		return
	}
	c.setGameSpeed(c.gameSpeed + c.cfg.Difficulty.Increment)
	log.Printf("[Session] game speed increased to %.0f", c.gameSpeed)
}

// setGameSpeed 把游戏速度传播到所有依赖速度的系统
func (c *Controller) setGameSpeed(speed float64) {
	c.gameSpeed = speed
	c.background.SetGameSpeed(speed)
	c.obstacles.SetGameSpeed(speed)
	c.powerUps.SetGameSpeed(speed)
}

// celebrate 里程碑横幅
func (c *Controller) celebrate(milestone int) {
	entities.NewMilestoneBanner(c.em, c.cfg.World.Width/2, c.cfg.World.Height/3, milestone)
}

// HandlePointer 转发指针输入给玩家控制器
func (c *Controller) HandlePointer(x, y float64, pressed bool) {
	if c.gameOver {
		return
	}
	c.player.HandlePointer(x, y, pressed)
}

// GameOver 结束本局，重复调用是空操作
//
// 立即冻结分数与时间、停止环境音乐、在玩家位置产生气泡爆发、隐藏玩家并冻结所有运动；
// 延迟 GameOverDelay 后发出 game-over 事件、记录排行榜并调用 OnFinished。
func (c *Controller) GameOver(reason string) {
	if c.gameOver {
		return
	}
	c.gameOver = true
	c.deathReason = reason

	c.state.SetGameActive(false)
	c.scheduler.Cancel(c.difficultyTask)
	c.audio.StopMusic()

	x, y := c.player.Position()
	entities.NewBubbleBurst(c.em, c.rng, x, y, c.cfg.Session.BurstParticles)
	c.player.Hide()

	c.hooks.Freeze()
	c.seagulls.Freeze()
	c.obstacles.Freeze()
	c.powerUps.Freeze()
	c.fishermen.Freeze()

	log.Printf("[Session] %s game over (%s) score=%d time=%dms", c.sessionID, reason, c.state.Score(), c.state.ElapsedMs())
	c.scheduler.After(c.cfg.Session.GameOverDelay, c.finish)
}

func (c *Controller) finish() {
	if c.finished {
		return
	}
	c.finished = true
	c.result = game.GameOverEvent{
		Score:     c.state.Score(),
		Time:      c.state.ElapsedMs(),
		SessionID: c.sessionID,
	}
	c.events.EmitGameOver(c.result)

	if c.recorder != nil {
		c.lastRank = c.recorder.RecordNow(c.result.Time)
	}
	if c.onFinished != nil {
		c.onFinished(c.result)
	}
}

// SetMuted 设置静音（不影响游戏逻辑）
func (c *Controller) SetMuted(muted bool) {
	c.audio.SetMuted(muted)
}

// IsMuted 返回静音状态
func (c *Controller) IsMuted() bool {
	return c.audio.IsMuted()
}

// Config 返回会话配置
func (c *Controller) Config() *config.GameConfig { return c.cfg }

// EntityManager 返回实体管理器（供渲染读取）
func (c *Controller) EntityManager() *ecs.EntityManager { return c.em }

// Scheduler 返回会话调度器
func (c *Controller) Scheduler() *game.Scheduler { return c.scheduler }

// Events 返回会话事件出口
func (c *Controller) Events() *game.SessionEvents { return c.events }

// State 返回分数与时间状态
func (c *Controller) State() *game.SessionState { return c.state }

// SessionID 返回会话标识
func (c *Controller) SessionID() string { return c.sessionID }

// Player 返回玩家控制器
func (c *Controller) Player() *systems.PlayerController { return c.player }

// Fishermen 返回渔船系统
func (c *Controller) Fishermen() *systems.FishermenSystem { return c.fishermen }

// Hooks 返回鱼钩系统
func (c *Controller) Hooks() *systems.HookSystem { return c.hooks }

// Obstacles 返回障碍物系统
func (c *Controller) Obstacles() *systems.ObstacleSystem { return c.obstacles }

// Seagulls 返回海鸥系统
func (c *Controller) Seagulls() *systems.SeagullSystem { return c.seagulls }

// PowerUps 返回道具系统
func (c *Controller) PowerUps() *systems.PowerUpSystem { return c.powerUps }

// Background 返回背景系统
func (c *Controller) Background() *systems.BackgroundSystem { return c.background }

// Collision 返回碰撞系统
func (c *Controller) Collision() *systems.CollisionSystem { return c.collision }

// GameSpeed 返回当前游戏速度
func (c *Controller) GameSpeed() float64 { return c.gameSpeed }

// Effects 返回本帧的道具效果汇总
func (c *Controller) Effects() systems.PowerUpEffects { return c.effects }

// IsGameOver 返回是否已进入游戏结束流程
func (c *Controller) IsGameOver() bool { return c.gameOver }

// IsFinished 返回 game-over 事件是否已发出
func (c *Controller) IsFinished() bool { return c.finished }

// DeathReason 返回致命碰撞的对象类别
func (c *Controller) DeathReason() string { return c.deathReason }

// Result 返回结算结果（IsFinished 之后有效）
func (c *Controller) Result() game.GameOverEvent { return c.result }

// LastRank 返回本局在排行榜中的名次，未入榜为 -1
func (c *Controller) LastRank() int { return c.lastRank }

// Indicators 返回 HUD 道具指示器
func (c *Controller) Indicators() []systems.PowerUpIndicator { return c.powerUps.Indicators() }

// CountEntities 统计拥有组件 T 的实体数量（用于调试与测试）
func CountEntities[T any](c *Controller) int {
	return len(ecs.GetEntitiesWith1[T](c.em))
}
