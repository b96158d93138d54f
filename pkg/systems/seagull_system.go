package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/ecs"
	"github.com/gonewx/fishy-escape/pkg/entities"
	"github.com/gonewx/fishy-escape/pkg/game"
	"github.com/gonewx/fishy-escape/pkg/utils"
)

// returnDriftFactor 返回阶段保留的水平速度比例
const returnDriftFactor = 0.3

// SeagullSystem 管理海鸥（带 AI 状态机的空中威胁）
//
//	SeagullFlying    固定高度水平巡航；只有与玩家水平距离足够近时，
//	                 每个判定窗口才有机会开始俯冲
//	SeagullDiving    朝俯冲开始时的玩家位置快照俯冲（过程中不重新瞄准）
//	SeagullReturning 回到初始巡航高度后恢复巡航
//
// 生成检查按固定间隔进行，与当前海鸥数量无关；离开屏幕的海鸥被移除。
type SeagullSystem struct {
	em        *ecs.EntityManager
	cfg       config.SeagullConfig
	world     config.WorldConfig
	rng       *rand.Rand
	scheduler *game.Scheduler

	// playerPos 返回玩家当前位置
	playerPos func() (float64, float64)
	checkTask game.TaskID
	frozen    bool
}

// NewSeagullSystem 创建海鸥系统并注册周期性生成检查
func NewSeagullSystem(em *ecs.EntityManager, cfg *config.GameConfig, rng *rand.Rand, scheduler *game.Scheduler, playerPos func() (float64, float64)) *SeagullSystem {
	ss := &SeagullSystem{
		em:        em,
		cfg:       cfg.Seagulls,
		world:     cfg.World,
		rng:       rng,
		scheduler: scheduler,
		playerPos: playerPos,
	}
	ss.checkTask = scheduler.Every(ss.cfg.CheckInterval, func() {
		if ss.frozen {
			return
		}
		if ss.rng.Float64() < ss.cfg.SpawnChance {
			ss.Spawn()
		}
	})
	return ss
}

// Spawn 在随机位置生成一只巡航中的海鸥
func (ss *SeagullSystem) Spawn() ecs.EntityID {
	x := utils.RandRange(ss.rng, ss.world.Width*0.2, ss.world.Width*0.8)
	y := utils.RandRange(ss.rng, ss.cfg.MinAltitude, ss.world.WaterLine()-ss.cfg.WaterGap)
	vx := utils.RandSign(ss.rng) * ss.cfg.FlySpeed

	id := entities.NewSeagullEntity(ss.em, ss.cfg, x, y, vx)
	log.Printf("[SeagullSystem] seagull %d spawned at (%.0f, %.0f)", id, x, y)
	return id
}

// Update 推进所有海鸥的状态机
func (ss *SeagullSystem) Update(deltaTime float64) {
	if ss.frozen {
		return
	}
	fishX, fishY := ss.playerPos()

	for _, id := range ecs.GetEntitiesWith3[*components.SeagullComponent, *components.PositionComponent, *components.VelocityComponent](ss.em) {
		gull, _ := ecs.GetComponent[*components.SeagullComponent](ss.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ss.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ss.em, id)

		switch gull.State {
		case components.SeagullFlying:
			ss.updateFlying(gull, pos, vel, fishX, fishY, deltaTime)
		case components.SeagullDiving:
			ss.updateDiving(gull, pos, vel, deltaTime)
		case components.SeagullReturning:
			ss.updateReturning(gull, pos, vel, deltaTime)
		}

		if pos.X < -ss.cfg.OffscreenPad || pos.X > ss.world.Width+ss.cfg.OffscreenPad {
			ss.em.DestroyEntity(id)
		}
	}
}

func (ss *SeagullSystem) updateFlying(gull *components.SeagullComponent, pos *components.PositionComponent, vel *components.VelocityComponent, fishX, fishY, dt float64) {
	pos.X += vel.VX * dt

	gull.DiveClock += dt
	for gull.DiveClock >= ss.cfg.DiveWindow && ss.cfg.DiveWindow > 0 {
		gull.DiveClock -= ss.cfg.DiveWindow
		if math.Abs(pos.X-fishX) > ss.cfg.DiveProximity {
			continue
		}
		if ss.rng.Float64() < ss.cfg.DiveChance {
			ss.startDive(gull, pos, vel, fishX, fishY)
			return
		}
	}
}

// startDive 记录玩家位置快照（带随机抖动）并朝它俯冲
func (ss *SeagullSystem) startDive(gull *components.SeagullComponent, pos *components.PositionComponent, vel *components.VelocityComponent, fishX, fishY float64) {
	gull.TargetX = fishX + utils.RandRange(ss.rng, -ss.cfg.TargetJitterX, ss.cfg.TargetJitterX)
	gull.TargetY = fishY + utils.RandRange(ss.rng, -ss.cfg.TargetJitterY, ss.cfg.TargetJitterY)
	gull.State = components.SeagullDiving
	gull.DiveClock = 0

	dx := gull.TargetX - pos.X
	dy := gull.TargetY - pos.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		ss.startReturn(gull, vel)
		return
	}
	vel.VX = dx / dist * ss.cfg.DiveSpeed
	vel.VY = dy / dist * ss.cfg.DiveSpeed
	gull.FacingLeft = dx < 0
}

func (ss *SeagullSystem) updateDiving(gull *components.SeagullComponent, pos *components.PositionComponent, vel *components.VelocityComponent, dt float64) {
	pos.X += vel.VX * dt
	pos.Y += vel.VY * dt

	dx := gull.TargetX - pos.X
	dy := gull.TargetY - pos.Y
	tooDeep := pos.Y > ss.world.WaterLine()+ss.cfg.DiveDepth
	arrived := math.Hypot(dx, dy) < ss.cfg.ArriveRadius
	// 目标点已在运动方向的反方向：说明已经越过
	passed := dx*vel.VX+dy*vel.VY < 0

	if tooDeep || arrived || passed {
		ss.startReturn(gull, vel)
	}
}

func (ss *SeagullSystem) startReturn(gull *components.SeagullComponent, vel *components.VelocityComponent) {
	gull.State = components.SeagullReturning
	vel.VX *= returnDriftFactor
	vel.VY = -ss.cfg.ReturnSpeed
}

func (ss *SeagullSystem) updateReturning(gull *components.SeagullComponent, pos *components.PositionComponent, vel *components.VelocityComponent, dt float64) {
	pos.X += vel.VX * dt
	pos.Y += vel.VY * dt
	if pos.Y > gull.InitialY {
		return
	}

	pos.Y = gull.InitialY
	gull.State = components.SeagullFlying
	direction := 1.0
	if vel.VX < 0 || (vel.VX == 0 && gull.FacingLeft) {
		direction = -1
	}
	vel.VX = direction * ss.cfg.FlySpeed
	vel.VY = 0
	gull.FacingLeft = direction < 0
}

// Freeze 停止所有海鸥并取消生成检查
func (ss *SeagullSystem) Freeze() {
	ss.frozen = true
	ss.scheduler.Cancel(ss.checkTask)
	for _, id := range ecs.GetEntitiesWith2[*components.SeagullComponent, *components.VelocityComponent](ss.em) {
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ss.em, id)
		vel.VX, vel.VY = 0, 0
	}
}

// Seagulls 返回当前所有海鸥实体
func (ss *SeagullSystem) Seagulls() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.SeagullComponent](ss.em)
}
