package systems

import (
	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/ecs"
)

// burstDrag 爆发气泡每秒损失的速度比例
const burstDrag = 1.5

// EffectSystem 移动装饰效果（爆发气泡、里程碑横幅）
// 效果的销毁交给 LifetimeSystem
type EffectSystem struct {
	em *ecs.EntityManager
}

// NewEffectSystem 创建效果系统
func NewEffectSystem(em *ecs.EntityManager) *EffectSystem {
	return &EffectSystem{em: em}
}

// Update 按速度移动效果，爆发气泡逐渐减速并上浮
func (s *EffectSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith3[*components.EffectComponent, *components.PositionComponent, *components.VelocityComponent](s.em) {
		effect, _ := ecs.GetComponent[*components.EffectComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.em, id)

		pos.X += vel.VX * deltaTime
		pos.Y += vel.VY * deltaTime

		if effect.Kind == components.EffectBurstBubble {
			damp := 1 - burstDrag*deltaTime
			if damp < 0 {
				damp = 0
			}
			vel.VX *= damp
			vel.VY = vel.VY*damp - 30*deltaTime
		}
	}
}
