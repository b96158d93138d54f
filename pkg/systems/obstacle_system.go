package systems

import (
	"log"
	"math/rand"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/ecs"
	"github.com/gonewx/fishy-escape/pkg/entities"
	"github.com/gonewx/fishy-escape/pkg/game"
	"github.com/gonewx/fishy-escape/pkg/utils"
)

// ObstacleSystem 管理海底障碍物（珊瑚、石头、水草）
//
// 障碍物在右边缘外生成，底部贴近海底（抬升高度在水深的下四分之一内随机），
// 以当前游戏速度向左漂移，完全离开左边缘后销毁。
// 每种类型有自己的碰撞盒：珊瑚和石头宽而矮，水草窄而高。
type ObstacleSystem struct {
	em        *ecs.EntityManager
	cfg       config.ObstacleConfig
	world     config.WorldConfig
	rng       *rand.Rand
	scheduler *game.Scheduler

	gameSpeed float64
	spawnTask game.TaskID
	frozen    bool
}

// NewObstacleSystem 创建障碍物系统并安排第一次生成
func NewObstacleSystem(em *ecs.EntityManager, cfg *config.GameConfig, rng *rand.Rand, scheduler *game.Scheduler) *ObstacleSystem {
	obs := &ObstacleSystem{
		em:        em,
		cfg:       cfg.Obstacles,
		world:     cfg.World,
		rng:       rng,
		scheduler: scheduler,
		gameSpeed: cfg.Difficulty.BaseSpeed,
	}
	obs.scheduleSpawn()
	return obs
}

func (obs *ObstacleSystem) scheduleSpawn() {
	delay := utils.RandRange(obs.rng, obs.cfg.SpawnMin, obs.cfg.SpawnMax)
	obs.spawnTask = obs.scheduler.After(delay, func() {
		if obs.frozen {
			return
		}
		obs.Spawn()
		obs.scheduleSpawn()
	})
}

// Spawn 立即生成一个随机类型的障碍物
//
// 返回:
//   - ecs.EntityID: 新障碍物ID
func (obs *ObstacleSystem) Spawn() ecs.EntityID {
	typ := obs.cfg.Types[obs.rng.Intn(len(obs.cfg.Types))]
	return obs.SpawnType(typ)
}

// SpawnType 生成指定类型的障碍物
func (obs *ObstacleSystem) SpawnType(typ config.ObstacleTypeConfig) ecs.EntityID {
	scale := utils.RandRange(obs.rng, typ.ScaleMin, typ.ScaleMax)

	waterDepth := obs.world.Height - obs.world.WaterLine()
	lift := utils.RandRange(obs.rng, obs.cfg.MinLift, obs.cfg.BandFraction*waterDepth)
	x := obs.world.Width + obs.cfg.SpawnOffset
	y := obs.world.Height - lift

	id := entities.NewObstacleEntity(obs.em, typ, x, y, scale, obs.gameSpeed)
	log.Printf("[ObstacleSystem] spawned %s (id=%d) scale=%.2f", typ.Name, id, scale)
	return id
}

// Update 以游戏速度移动障碍物，离开左边缘后销毁
func (obs *ObstacleSystem) Update(deltaTime float64) {
	if obs.frozen {
		return
	}
	for _, id := range ecs.GetEntitiesWith3[*components.ObstacleComponent, *components.PositionComponent, *components.VelocityComponent](obs.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](obs.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](obs.em, id)

		vel.VX = -obs.gameSpeed
		pos.X += vel.VX * deltaTime

		width := 0.0
		if col, ok := ecs.GetComponent[*components.CollisionComponent](obs.em, id); ok {
			width = col.Width
		}
		if pos.X < -width {
			obs.em.DestroyEntity(id)
		}
	}
}

// Eat 吃掉障碍物，重复调用是空操作
//
// 返回:
//   - components.ObstacleKind: 被吃掉的障碍物类别
//   - bool: 是否真的吃掉了（已销毁或已被吃掉时为 false）
func (obs *ObstacleSystem) Eat(id ecs.EntityID) (components.ObstacleKind, bool) {
	if !obs.em.IsAlive(id) {
		return "", false
	}
	obstacle, ok := ecs.GetComponent[*components.ObstacleComponent](obs.em, id)
	if !ok || obstacle.Eaten {
		return "", false
	}
	obstacle.Eaten = true
	obs.em.DestroyEntity(id)
	return obstacle.Kind, true
}

// SetGameSpeed 更新漂移速度
func (obs *ObstacleSystem) SetGameSpeed(speed float64) {
	obs.gameSpeed = speed
}

// GameSpeed 返回当前漂移速度
func (obs *ObstacleSystem) GameSpeed() float64 {
	return obs.gameSpeed
}

// Freeze 停止移动与生成
func (obs *ObstacleSystem) Freeze() {
	obs.frozen = true
	obs.scheduler.Cancel(obs.spawnTask)
	for _, id := range ecs.GetEntitiesWith2[*components.ObstacleComponent, *components.VelocityComponent](obs.em) {
		vel, _ := ecs.GetComponent[*components.VelocityComponent](obs.em, id)
		vel.VX, vel.VY = 0, 0
	}
}

// Obstacles 返回当前所有障碍物实体
func (obs *ObstacleSystem) Obstacles() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.ObstacleComponent](obs.em)
}
