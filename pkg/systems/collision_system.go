package systems

import (
	"log"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/ecs"
	"github.com/gonewx/fishy-escape/pkg/entities"
)

// CollisionHandlers 碰撞结果的处理函数，由控制器注入
// 任一字段为 nil 时对应结果被忽略
type CollisionHandlers struct {
	// OnGameOver 致命碰撞，reason 为碰撞对象类别（hook, seagull, obstacle）
	OnGameOver func(reason string)
	// OnCollectPowerUp 拾取道具，返回是否真的拾取
	OnCollectPowerUp func(id ecs.EntityID) bool
	// OnEatObstacle 吃掉障碍物，返回被吃掉的类别
	OnEatObstacle func(id ecs.EntityID) (components.ObstacleKind, bool)
	// OnScoreBonus 吃掉障碍物的奖励分数
	OnScoreBonus func(n int)
	// OnGrow 吃掉足够多的珊瑚后成长
	OnGrow func()
}

// CollisionSystem 检测玩家与各实体群的重叠并分发结果
//
//	鱼钩/海鸥 致命，无敌时忽略
//	障碍物    无敌时忽略；可吞食时吃掉（只有珊瑚计入成长计数）；否则致命
//	道具      总是交给道具系统处理
//
// 同一帧内一旦请求了游戏结束就不再分发后续碰撞。
type CollisionSystem struct {
	em       *ecs.EntityManager
	player   ecs.EntityID
	handlers CollisionHandlers

	effects      PowerUpEffects
	eatBonus     int
	growthCorals int
	coralsEaten  int
	gameOver     bool
}

// NewCollisionSystem 创建碰撞系统
//
// 参数:
//   - em: 实体管理器
//   - player: 玩家实体ID
//   - eatBonus: 吃掉障碍物的奖励分数
//   - growthCorals: 触发成长所需的珊瑚数
//   - handlers: 碰撞结果处理函数
func NewCollisionSystem(em *ecs.EntityManager, player ecs.EntityID, eatBonus, growthCorals int, handlers CollisionHandlers) *CollisionSystem {
	return &CollisionSystem{
		em:           em,
		player:       player,
		handlers:     handlers,
		effects:      PowerUpEffects{SpeedMultiplier: 1},
		eatBonus:     eatBonus,
		growthCorals: growthCorals,
	}
}

// SetEffects 设置本帧的道具效果
func (cs *CollisionSystem) SetEffects(effects PowerUpEffects) {
	cs.effects = effects
}

// CoralsEaten 返回当前的珊瑚计数（成长后归零）
func (cs *CollisionSystem) CoralsEaten() int {
	return cs.coralsEaten
}

// checkAABBCollision 检查两个碰撞盒是否重叠
func checkAABBCollision(
	pos1 *components.PositionComponent, col1 *components.CollisionComponent,
	pos2 *components.PositionComponent, col2 *components.CollisionComponent) bool {

	left1, top1, right1, bottom1 := col1.Bounds(pos1)
	left2, top2, right2, bottom2 := col2.Bounds(pos2)

	return right1 >= left2 &&
		left1 <= right2 &&
		bottom1 >= top2 &&
		top1 <= bottom2
}

// Update 检测并分发本帧的所有碰撞
func (cs *CollisionSystem) Update(deltaTime float64) {
	if cs.gameOver {
		return
	}
	playerPos, ok1 := ecs.GetComponent[*components.PositionComponent](cs.em, cs.player)
	playerCol, ok2 := ecs.GetComponent[*components.CollisionComponent](cs.em, cs.player)
	if !ok1 || !ok2 {
		return
	}
	if player, ok := ecs.GetComponent[*components.PlayerComponent](cs.em, cs.player); ok && player.Hidden {
		return
	}

	overlapping := func(id ecs.EntityID) bool {
		pos, ok1 := ecs.GetComponent[*components.PositionComponent](cs.em, id)
		col, ok2 := ecs.GetComponent[*components.CollisionComponent](cs.em, id)
		return ok1 && ok2 && cs.em.IsAlive(id) && checkAABBCollision(playerPos, playerCol, pos, col)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.PowerUpComponent](cs.em) {
		if overlapping(id) && cs.handlers.OnCollectPowerUp != nil {
			cs.handlers.OnCollectPowerUp(id)
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.HookComponent](cs.em) {
		if overlapping(id) && !cs.effects.IsInvincible {
			cs.requestGameOver("hook")
			return
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.SeagullComponent](cs.em) {
		if overlapping(id) && !cs.effects.IsInvincible {
			cs.requestGameOver("seagull")
			return
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ObstacleComponent](cs.em) {
		if !overlapping(id) {
			continue
		}
		if cs.handleObstacle(id) {
			return
		}
	}
}

// handleObstacle 处理与障碍物的碰撞
//
// 返回:
//   - bool: 是否请求了游戏结束
func (cs *CollisionSystem) handleObstacle(id ecs.EntityID) bool {
	// 无敌优先于吞食：完全忽略
	if cs.effects.IsInvincible {
		return false
	}
	if !cs.effects.CanEatObstacles {
		cs.requestGameOver("obstacle")
		return true
	}
	if cs.handlers.OnEatObstacle == nil {
		return false
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](cs.em, id)
	kind, eaten := cs.handlers.OnEatObstacle(id)
	if !eaten {
		return false
	}
	if pos != nil {
		entities.NewChompEffect(cs.em, pos.X, pos.Y)
	}
	if cs.handlers.OnScoreBonus != nil {
		cs.handlers.OnScoreBonus(cs.eatBonus)
	}

	if kind == components.ObstacleCoral {
		cs.coralsEaten++
		if cs.coralsEaten >= cs.growthCorals {
			cs.coralsEaten = 0
			if cs.handlers.OnGrow != nil {
				cs.handlers.OnGrow()
			}
		}
	}
	return false
}

func (cs *CollisionSystem) requestGameOver(reason string) {
	cs.gameOver = true
	log.Printf("[CollisionSystem] lethal collision with %s", reason)
	if cs.handlers.OnGameOver != nil {
		cs.handlers.OnGameOver(reason)
	}
}
