package entities

import (
	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/ecs"
)

// NewCloudEntity 创建云
func NewCloudEntity(em *ecs.EntityManager, x, y, width float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.CloudComponent{Width: width})
	return id
}

// NewBackgroundFishEntity 创建背景小鱼
func NewBackgroundFishEntity(em *ecs.EntityManager, x, y, speedFactor, depthLevel float64, facingLeft bool) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.BackgroundFishComponent{
		SpeedFactor: speedFactor,
		DepthLevel:  depthLevel,
		FacingLeft:  facingLeft,
	})
	return id
}

// NewAmbientBubbleEntity 创建上升的环境气泡
func NewAmbientBubbleEntity(em *ecs.EntityManager, x, y, riseSpeed, radius, phase float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.BubbleComponent{
		RiseSpeed: riseSpeed,
		Radius:    radius,
		Phase:     phase,
	})
	return id
}
