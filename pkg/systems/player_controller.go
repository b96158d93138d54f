package systems

import (
	"log"
	"math"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/ecs"
	"github.com/gonewx/fishy-escape/pkg/entities"
	"github.com/gonewx/fishy-escape/pkg/utils"
)

// PlayerController 把指针输入转换为玩家鱼的速度
//
// 速度方向指向指针位置，大小为 baseSpeed × speedMultiplier。
// 水面以上的指针事件被忽略；到达指针附近（ArrivalRadius 以内）后停止。
type PlayerController struct {
	em     *ecs.EntityManager
	cfg    config.PlayerConfig
	world  config.WorldConfig
	entity ecs.EntityID

	speedMultiplier float64
	frozen          bool
}

// NewPlayerController 创建玩家实体及其控制器
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置
//
// 返回:
//   - *PlayerController: 控制器实例
func NewPlayerController(em *ecs.EntityManager, cfg *config.GameConfig) *PlayerController {
	return &PlayerController{
		em:              em,
		cfg:             cfg.Player,
		world:           cfg.World,
		entity:          entities.NewPlayerEntity(em, cfg),
		speedMultiplier: 1,
	}
}

// Entity 返回玩家实体ID
func (pc *PlayerController) Entity() ecs.EntityID {
	return pc.entity
}

// HandlePointer 处理指针输入
//
// 参数:
//   - x, y: 指针的世界坐标
//   - pressed: 指针是否处于按下状态（未按下时忽略）
func (pc *PlayerController) HandlePointer(x, y float64, pressed bool) {
	if !pressed || pc.frozen {
		return
	}
	if y < pc.world.WaterLine() {
		return
	}

	player, ok := ecs.GetComponent[*components.PlayerComponent](pc.em, pc.entity)
	if !ok {
		return
	}
	player.TargetX = x
	player.TargetY = y
	player.HasTarget = true
	pc.steer()
}

// steer 把速度指向当前目标，到达半径以内则停止
func (pc *PlayerController) steer() {
	pos, vel, player, ok := pc.parts()
	if !ok || !player.HasTarget {
		return
	}

	dx := player.TargetX - pos.X
	dy := player.TargetY - pos.Y
	dist := math.Hypot(dx, dy)
	if dist <= pc.cfg.ArrivalRadius {
		vel.VX, vel.VY = 0, 0
		player.HasTarget = false
		return
	}

	speed := pc.currentSpeed()
	vel.VX = dx / dist * speed
	vel.VY = dy / dist * speed
	player.FacingLeft = dx < 0
}

func (pc *PlayerController) currentSpeed() float64 {
	return pc.cfg.BaseSpeed * pc.speedMultiplier
}

// SetSpeedMultiplier 设置速度倍率，并按新倍率缩放当前速度
func (pc *PlayerController) SetSpeedMultiplier(factor float64) {
	if factor <= 0 {
		factor = 1
	}
	if factor == pc.speedMultiplier {
		return
	}
	old := pc.speedMultiplier
	pc.speedMultiplier = factor

	if _, vel, _, ok := pc.parts(); ok {
		vel.VX *= factor / old
		vel.VY *= factor / old
	}
}

// SpeedMultiplier 返回当前速度倍率
func (pc *PlayerController) SpeedMultiplier() float64 {
	return pc.speedMultiplier
}

// Update 移动玩家并限制在水下区域
func (pc *PlayerController) Update(deltaTime float64) {
	if pc.frozen {
		return
	}
	pos, vel, player, ok := pc.parts()
	if !ok {
		return
	}

	if player.HasTarget {
		dist := math.Hypot(player.TargetX-pos.X, player.TargetY-pos.Y)
		if dist <= pc.cfg.ArrivalRadius || pc.currentSpeed()*deltaTime >= dist {
			// 本帧即可到达：直接停在目标点，避免来回振荡
			pos.X, pos.Y = player.TargetX, player.TargetY
			vel.VX, vel.VY = 0, 0
			player.HasTarget = false
		} else {
			pc.steer()
		}
	}

	pos.X += vel.VX * deltaTime
	pos.Y += vel.VY * deltaTime
	pc.clamp(pos, vel)
}

// clamp 把玩家限制在世界范围内的水下区域
func (pc *PlayerController) clamp(pos *components.PositionComponent, vel *components.VelocityComponent) {
	halfW, halfH := 0.0, 0.0
	if col, ok := ecs.GetComponent[*components.CollisionComponent](pc.em, pc.entity); ok {
		halfW, halfH = col.Width/2, col.Height/2
	}

	minX, maxX := halfW, pc.world.Width-halfW
	minY, maxY := pc.world.WaterLine()+halfH, pc.world.Height-halfH

	if x := utils.Clamp(pos.X, minX, maxX); x != pos.X {
		pos.X = x
		vel.VX = 0
	}
	if y := utils.Clamp(pos.Y, minY, maxY); y != pos.Y {
		pos.Y = y
		vel.VY = 0
	}
}

// GrowFish 永久增大鱼的体型，碰撞盒按相同比例增大，并播放一次脉冲效果
func (pc *PlayerController) GrowFish() {
	scale, ok := ecs.GetComponent[*components.ScaleComponent](pc.em, pc.entity)
	if !ok {
		return
	}
	scale.Scale += pc.cfg.GrowthIncrement

	if col, ok := ecs.GetComponent[*components.CollisionComponent](pc.em, pc.entity); ok {
		col.Width = pc.cfg.HitWidth * scale.Scale
		col.Height = pc.cfg.HitHeight * scale.Scale
	}

	x, y := pc.Position()
	entities.NewGrowthPulse(pc.em, x, y)
	log.Printf("[PlayerController] fish grew to scale %.2f", scale.Scale)
}

// Scale 返回鱼的当前缩放
func (pc *PlayerController) Scale() float64 {
	if scale, ok := ecs.GetComponent[*components.ScaleComponent](pc.em, pc.entity); ok {
		return scale.Scale
	}
	return 0
}

// Position 返回鱼的当前位置
func (pc *PlayerController) Position() (float64, float64) {
	if pos, ok := ecs.GetComponent[*components.PositionComponent](pc.em, pc.entity); ok {
		return pos.X, pos.Y
	}
	return 0, 0
}

// Velocity 返回鱼的当前速度
func (pc *PlayerController) Velocity() (float64, float64) {
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](pc.em, pc.entity); ok {
		return vel.VX, vel.VY
	}
	return 0, 0
}

// FacingLeft 返回鱼是否朝左
func (pc *PlayerController) FacingLeft() bool {
	if player, ok := ecs.GetComponent[*components.PlayerComponent](pc.em, pc.entity); ok {
		return player.FacingLeft
	}
	return false
}

// Freeze 停止移动并忽略后续输入
func (pc *PlayerController) Freeze() {
	pc.frozen = true
	if _, vel, player, ok := pc.parts(); ok {
		vel.VX, vel.VY = 0, 0
		player.HasTarget = false
	}
}

// Hide 隐藏玩家（游戏结束时调用），同时冻结
func (pc *PlayerController) Hide() {
	pc.Freeze()
	if player, ok := ecs.GetComponent[*components.PlayerComponent](pc.em, pc.entity); ok {
		player.Hidden = true
	}
}

// IsHidden 返回玩家是否已隐藏
func (pc *PlayerController) IsHidden() bool {
	if player, ok := ecs.GetComponent[*components.PlayerComponent](pc.em, pc.entity); ok {
		return player.Hidden
	}
	return true
}

func (pc *PlayerController) parts() (*components.PositionComponent, *components.VelocityComponent, *components.PlayerComponent, bool) {
	pos, ok1 := ecs.GetComponent[*components.PositionComponent](pc.em, pc.entity)
	vel, ok2 := ecs.GetComponent[*components.VelocityComponent](pc.em, pc.entity)
	player, ok3 := ecs.GetComponent[*components.PlayerComponent](pc.em, pc.entity)
	return pos, vel, player, ok1 && ok2 && ok3
}
