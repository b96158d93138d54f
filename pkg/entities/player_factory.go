package entities

import (
	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/ecs"
)

// NewPlayerEntity 创建玩家鱼实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置（初始位置、缩放与碰撞盒）
//
// 返回:
//   - ecs.EntityID: 玩家实体ID
func NewPlayerEntity(em *ecs.EntityManager, cfg *config.GameConfig) ecs.EntityID {
	id := em.CreateEntity()
	scale := cfg.Player.InitialScale

	ecs.AddComponent(em, id, &components.PositionComponent{
		X: cfg.Player.StartX,
		Y: cfg.World.WaterLine() + cfg.Player.StartDepth,
	})
	ecs.AddComponent(em, id, &components.VelocityComponent{})
	ecs.AddComponent(em, id, &components.ScaleComponent{Scale: scale})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Width:  cfg.Player.HitWidth * scale,
		Height: cfg.Player.HitHeight * scale,
	})
	ecs.AddComponent(em, id, &components.PlayerComponent{})
	return id
}
