package systems

import (
	"log"
	"math/rand"
	"sort"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/ecs"
	"github.com/gonewx/fishy-escape/pkg/entities"
	"github.com/gonewx/fishy-escape/pkg/game"
	"github.com/gonewx/fishy-escape/pkg/utils"
)

// ActiveEffect 一个正在生效的道具效果
// 每种类型最多一个，重复拾取会以当前时间重新开始计时而不是叠加
type ActiveEffect struct {
	Type       components.PowerUpType
	StartTime  float64 // 生效时间（调度器时钟，秒）
	Duration   float64 // 持续时间（秒）
	Multiplier float64 // 速度倍率（仅 PowerUpSpeed 使用）
}

// ExpiresAt 返回效果的到期时间
func (e ActiveEffect) ExpiresAt() float64 {
	return e.StartTime + e.Duration
}

// PowerUpEffects 当前帧的道具效果汇总
type PowerUpEffects struct {
	SpeedMultiplier float64
	IsInvincible    bool
	CanEatObstacles bool
}

// PowerUpIndicator HUD 上的道具状态指示
type PowerUpIndicator struct {
	Type      components.PowerUpType
	Remaining float64 // 剩余时间占总时长的比例 (0, 1]
}

// ComputeEffects 根据生效列表计算汇总效果
// 纯函数：相同的输入总是得到相同的结果
func ComputeEffects(active []ActiveEffect, now float64) PowerUpEffects {
	result := PowerUpEffects{SpeedMultiplier: 1}
	for _, e := range active {
		if now >= e.ExpiresAt() {
			continue
		}
		switch e.Type {
		case components.PowerUpSpeed:
			if e.Multiplier > 0 {
				result.SpeedMultiplier = e.Multiplier
			}
		case components.PowerUpInvincibility:
			result.IsInvincible = true
		case components.PowerUpEat:
			result.CanEatObstacles = true
		}
	}
	return result
}

// PowerUpSystem 管理道具的生成、漂移、拾取和计时
type PowerUpSystem struct {
	em        *ecs.EntityManager
	cfg       config.PowerUpConfig
	world     config.WorldConfig
	rng       *rand.Rand
	scheduler *game.Scheduler

	gameSpeed      float64
	active         map[components.PowerUpType]ActiveEffect
	indicatorTasks map[components.PowerUpType]game.TaskID
	checkTask      game.TaskID
	frozen         bool

	// onCollected 拾取回调（可选，用于前端播放提示）
	onCollected func(components.PowerUpType)
}

// NewPowerUpSystem 创建道具系统并注册周期性生成检查
func NewPowerUpSystem(em *ecs.EntityManager, cfg *config.GameConfig, rng *rand.Rand, scheduler *game.Scheduler) *PowerUpSystem {
	ps := &PowerUpSystem{
		em:             em,
		cfg:            cfg.PowerUps,
		world:          cfg.World,
		rng:            rng,
		scheduler:      scheduler,
		gameSpeed:      cfg.Difficulty.BaseSpeed,
		active:         make(map[components.PowerUpType]ActiveEffect),
		indicatorTasks: make(map[components.PowerUpType]game.TaskID),
	}
	ps.checkTask = scheduler.Every(ps.cfg.CheckInterval, func() {
		if ps.frozen {
			return
		}
		if ps.rng.Float64() < ps.cfg.SpawnChance {
			ps.Spawn(components.AllPowerUpTypes[ps.rng.Intn(len(components.AllPowerUpTypes))])
		}
	})
	return ps
}

// SetCollectedHandler 设置拾取回调
func (ps *PowerUpSystem) SetCollectedHandler(fn func(components.PowerUpType)) {
	ps.onCollected = fn
}

// Spawn 在右边缘外的水下随机高度生成指定类型的道具
func (ps *PowerUpSystem) Spawn(typ components.PowerUpType) ecs.EntityID {
	x := ps.world.Width + ps.cfg.SpawnOffset
	y := utils.RandRange(ps.rng, ps.world.WaterLine()+ps.cfg.EdgeMargin, ps.world.Height-ps.cfg.EdgeMargin)
	id := entities.NewPowerUpEntity(ps.em, ps.cfg, typ, x, y, ps.drift())
	log.Printf("[PowerUpSystem] spawned %s power-up (id=%d)", typ, id)
	return id
}

func (ps *PowerUpSystem) drift() float64 {
	return ps.gameSpeed * ps.cfg.DriftFactor
}

// Update 移动道具、清理过期效果并返回当前汇总效果
func (ps *PowerUpSystem) Update(deltaTime float64) PowerUpEffects {
	if !ps.frozen {
		ps.move(deltaTime)
	}
	ps.pruneExpired()
	return ComputeEffects(ps.ActiveEffects(), ps.scheduler.Now())
}

func (ps *PowerUpSystem) move(dt float64) {
	for _, id := range ecs.GetEntitiesWith3[*components.PowerUpComponent, *components.PositionComponent, *components.VelocityComponent](ps.em) {
		pu, _ := ecs.GetComponent[*components.PowerUpComponent](ps.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, id)

		vel.VX = -ps.drift()
		pos.X += vel.VX * dt

		pu.BobClock += dt
		pos.Y = pu.BaseY + ps.cfg.BobAmplitude*utils.EaseInOutSine(utils.YoyoProgress(pu.BobClock, ps.cfg.BobPeriod))

		if pos.X < -ps.cfg.SpawnOffset {
			ps.em.DestroyEntity(id)
		}
	}
}

func (ps *PowerUpSystem) pruneExpired() {
	now := ps.scheduler.Now()
	for typ, e := range ps.active {
		if now >= e.ExpiresAt() {
			delete(ps.active, typ)
		}
	}
}

// Collect 拾取道具
//
// 只有仍可拾取的道具才会生效：道具被停用并销毁，同类型的效果被替换（重新计时），
// 旧的指示器到期任务被取消并重新安排。
//
// 返回:
//   - bool: 是否成功拾取
func (ps *PowerUpSystem) Collect(id ecs.EntityID) bool {
	if !ps.em.IsAlive(id) {
		return false
	}
	pu, ok := ecs.GetComponent[*components.PowerUpComponent](ps.em, id)
	if !ok || !pu.Active {
		return false
	}
	pu.Active = false

	if pos, ok := ecs.GetComponent[*components.PositionComponent](ps.em, id); ok {
		entities.NewCollectFlash(ps.em, pos.X, pos.Y, pu.Type)
	}
	ps.em.DestroyEntity(id)
	ps.Activate(pu.Type)

	if ps.onCollected != nil {
		ps.onCollected(pu.Type)
	}
	return true
}

// Activate 以当前时间开始（或重新开始）指定类型的效果
func (ps *PowerUpSystem) Activate(typ components.PowerUpType) {
	now := ps.scheduler.Now()
	effect := ActiveEffect{
		Type:      typ,
		StartTime: now,
		Duration:  ps.duration(typ),
	}
	if typ == components.PowerUpSpeed {
		effect.Multiplier = ps.cfg.SpeedMultiplier
	}
	ps.active[typ] = effect

	if task, ok := ps.indicatorTasks[typ]; ok {
		ps.scheduler.Cancel(task)
	}
	ps.indicatorTasks[typ] = ps.scheduler.After(effect.Duration, func() {
		delete(ps.indicatorTasks, typ)
		ps.pruneExpired()
	})
	log.Printf("[PowerUpSystem] %s active for %.1fs", typ, effect.Duration)
}

func (ps *PowerUpSystem) duration(typ components.PowerUpType) float64 {
	switch typ {
	case components.PowerUpSpeed:
		return ps.cfg.SpeedDuration
	case components.PowerUpInvincibility:
		return ps.cfg.InvincibilityDuration
	case components.PowerUpEat:
		return ps.cfg.EatDuration
	default:
		return 0
	}
}

// ActiveEffects 返回生效中效果的副本（按类型排序）
func (ps *PowerUpSystem) ActiveEffects() []ActiveEffect {
	result := make([]ActiveEffect, 0, len(ps.active))
	for _, e := range ps.active {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Type < result[j].Type })
	return result
}

// Indicators 返回 HUD 指示器（按类型排序）
func (ps *PowerUpSystem) Indicators() []PowerUpIndicator {
	now := ps.scheduler.Now()
	effects := ps.ActiveEffects()
	result := make([]PowerUpIndicator, 0, len(effects))
	for _, e := range effects {
		remaining := e.ExpiresAt() - now
		if remaining <= 0 || e.Duration <= 0 {
			continue
		}
		result = append(result, PowerUpIndicator{Type: e.Type, Remaining: remaining / e.Duration})
	}
	return result
}

// SetGameSpeed 更新漂移速度（漂移 = gameSpeed × DriftFactor）
func (ps *PowerUpSystem) SetGameSpeed(speed float64) {
	ps.gameSpeed = speed
}

// GameSpeed 返回当前游戏速度
func (ps *PowerUpSystem) GameSpeed() float64 {
	return ps.gameSpeed
}

// Freeze 停止道具移动与生成
func (ps *PowerUpSystem) Freeze() {
	ps.frozen = true
	ps.scheduler.Cancel(ps.checkTask)
	for _, id := range ecs.GetEntitiesWith2[*components.PowerUpComponent, *components.VelocityComponent](ps.em) {
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, id)
		vel.VX, vel.VY = 0, 0
	}
}

// PowerUps 返回场景中的道具实体
func (ps *PowerUpSystem) PowerUps() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.PowerUpComponent](ps.em)
}
