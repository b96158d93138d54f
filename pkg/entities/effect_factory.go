package entities

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/ecs"
)

// 效果时长（秒）
const (
	BurstLifetime           = 1.0
	GrowthPulseLifetime     = 0.8
	ChompLifetime           = 0.3
	CollectFlashLifetime    = 0.4
	MilestoneBannerLifetime = 2.5
)

// newEffect 创建带生命周期的效果实体
func newEffect(em *ecs.EntityManager, x, y, lifetime float64, effect *components.EffectComponent) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: lifetime})
	ecs.AddComponent(em, id, effect)
	return id
}

// NewBubbleBurst 在指定位置创建径向气泡爆发
//
// 参数:
//   - em: 实体管理器
//   - rng: 随机源（用于速度和大小的抖动）
//   - x, y: 爆发中心
//   - count: 气泡数量
//
// 返回:
//   - []ecs.EntityID: 创建的气泡实体
func NewBubbleBurst(em *ecs.EntityManager, rng *rand.Rand, x, y float64, count int) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, count)
	for i := 0; i < count; i++ {
		angle := float64(i) / float64(count) * 2 * math.Pi
		speed := 50 + rng.Float64()*100
		id := newEffect(em, x, y, BurstLifetime, &components.EffectComponent{
			Kind:   components.EffectBurstBubble,
			Radius: 3 + rng.Float64()*5,
		})
		ecs.AddComponent(em, id, &components.VelocityComponent{
			VX: math.Cos(angle) * speed,
			VY: math.Sin(angle) * speed,
		})
		ids = append(ids, id)
	}
	return ids
}

// NewGrowthPulse 鱼成长时的脉冲光环
func NewGrowthPulse(em *ecs.EntityManager, x, y float64) ecs.EntityID {
	return newEffect(em, x, y, GrowthPulseLifetime, &components.EffectComponent{
		Kind:   components.EffectGrowthPulse,
		Radius: 50,
		Growth: 50,
	})
}

// NewChompEffect 吃掉障碍物时的闪光
func NewChompEffect(em *ecs.EntityManager, x, y float64) ecs.EntityID {
	return newEffect(em, x, y, ChompLifetime, &components.EffectComponent{
		Kind:   components.EffectChomp,
		Radius: 20,
		Growth: 20,
	})
}

// NewCollectFlash 拾取道具时的闪光
func NewCollectFlash(em *ecs.EntityManager, x, y float64, typ components.PowerUpType) ecs.EntityID {
	return newEffect(em, x, y, CollectFlashLifetime, &components.EffectComponent{
		Kind:    components.EffectCollectFlash,
		Radius:  15,
		Growth:  30,
		PowerUp: typ,
	})
}

// NewMilestoneBanner 里程碑庆祝横幅，缓慢上浮后消失
func NewMilestoneBanner(em *ecs.EntityManager, x, y float64, milestone int) ecs.EntityID {
	id := newEffect(em, x, y, MilestoneBannerLifetime, &components.EffectComponent{
		Kind: components.EffectMilestoneBanner,
		Text: fmt.Sprintf("%d POINTS!", milestone),
	})
	ecs.AddComponent(em, id, &components.VelocityComponent{VY: -20})
	return id
}
