package entities

import (
	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/ecs"
)

// NewFishermanEntity 创建渔夫（船）实体
//
// 参数:
//   - em: 实体管理器
//   - slot: 槽位索引
//   - x: 船的初始X坐标
//   - waterLine: 水面Y坐标
//   - bobDelay: 浮动相位延迟（秒），用于错开各船的浮动
func NewFishermanEntity(em *ecs.EntityManager, slot int, x, waterLine, bobDelay float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: waterLine})
	ecs.AddComponent(em, id, &components.VelocityComponent{})
	ecs.AddComponent(em, id, &components.FishermanComponent{
		Slot:      slot,
		Mode:      components.FishermanPatrol,
		Direction: 1,
		BaseY:     waterLine,
		BobClock:  -bobDelay,
	})
	return id
}

// NewHookEntity 创建处于下落状态的鱼钩实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 鱼钩配置
//   - slot: 所属渔夫槽位
//   - x: 初始X（所属船的X）
//   - startY: 下落起点（水面）
//   - targetY: 下落终点
func NewHookEntity(em *ecs.EntityManager, cfg config.HookConfig, slot int, x, startY, targetY float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: startY})
	ecs.AddComponent(em, id, &components.VelocityComponent{})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Width:  cfg.HitWidth,
		Height: cfg.HitHeight,
	})
	ecs.AddComponent(em, id, &components.HookComponent{
		Slot:         slot,
		State:        components.HookDropping,
		StartY:       startY,
		TargetY:      targetY,
		DropDuration: cfg.DropDuration,
	})
	return id
}

// NewObstacleEntity 创建障碍物实体
// 碰撞盒按类型配置与随机缩放计算，并向下偏移使其贴近底部
//
// 参数:
//   - em: 实体管理器
//   - typ: 障碍物类型配置
//   - x, y: 位置（y 为障碍物底部锚点）
//   - scale: 随机缩放
//   - speed: 向左漂移速度
func NewObstacleEntity(em *ecs.EntityManager, typ config.ObstacleTypeConfig, x, y, scale, speed float64) ecs.EntityID {
	id := em.CreateEntity()
	height := typ.HitHeight * scale

	// 位置为碰撞盒中心，底部与锚点对齐
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y - height/2})
	ecs.AddComponent(em, id, &components.VelocityComponent{VX: -speed})
	ecs.AddComponent(em, id, &components.ScaleComponent{Scale: scale})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Width:  typ.HitWidth * scale,
		Height: height,
	})
	ecs.AddComponent(em, id, &components.ObstacleComponent{
		Type: typ.Name,
		Kind: components.ObstacleKind(typ.Kind),
	})
	return id
}

// NewSeagullEntity 创建巡航状态的海鸥实体
func NewSeagullEntity(em *ecs.EntityManager, cfg config.SeagullConfig, x, y, vx float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{VX: vx})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Width:  cfg.HitWidth,
		Height: cfg.HitHeight,
	})
	ecs.AddComponent(em, id, &components.SeagullComponent{
		State:      components.SeagullFlying,
		InitialY:   y,
		FacingLeft: vx < 0,
	})
	return id
}

// NewPowerUpEntity 创建可拾取的道具实体
func NewPowerUpEntity(em *ecs.EntityManager, cfg config.PowerUpConfig, typ components.PowerUpType, x, y, drift float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{VX: -drift})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Width:  cfg.HitSize,
		Height: cfg.HitSize,
	})
	ecs.AddComponent(em, id, &components.PowerUpComponent{
		Type:   typ,
		Active: true,
		BaseY:  y,
	})
	return id
}
