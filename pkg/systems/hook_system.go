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

// HookSystem 管理渔夫放下的鱼钩
//
// 状态机：HookDropping（弹跳缓动下落）→ HookArmed（随机等待，X 跟随渔船）
// → HookPulling（随机速度上收）→ 回到水面时销毁。
//
// 每个渔夫同时最多一个鱼钩。生成间隔在每次尝试后重新随机，
// 无论这次尝试是否真的生成了鱼钩。
type HookSystem struct {
	em        *ecs.EntityManager
	cfg       config.HookConfig
	waterLine float64
	rng       *rand.Rand
	scheduler *game.Scheduler
	fishermen *FishermenSystem

	spawnTask game.TaskID
	pullTasks map[ecs.EntityID]game.TaskID
	frozen    bool
}

// NewHookSystem 创建鱼钩系统并安排第一次生成尝试
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置
//   - rng: 随机源
//   - scheduler: 会话调度器
//   - fishermen: 渔船系统（提供槽位与船的位置）
func NewHookSystem(em *ecs.EntityManager, cfg *config.GameConfig, rng *rand.Rand, scheduler *game.Scheduler, fishermen *FishermenSystem) *HookSystem {
	hs := &HookSystem{
		em:        em,
		cfg:       cfg.Hooks,
		waterLine: cfg.World.WaterLine(),
		rng:       rng,
		scheduler: scheduler,
		fishermen: fishermen,
		pullTasks: make(map[ecs.EntityID]game.TaskID),
	}
	hs.scheduleSpawn()
	return hs
}

func (hs *HookSystem) scheduleSpawn() {
	delay := utils.RandRange(hs.rng, hs.cfg.SpawnMin, hs.cfg.SpawnMax)
	hs.spawnTask = hs.scheduler.After(delay, func() {
		if hs.frozen {
			return
		}
		hs.trySpawn()
		hs.scheduleSpawn()
	})
}

// trySpawn 在没有鱼钩的渔夫中均匀选择一个放下鱼钩，全部占用时跳过
//
// 返回:
//   - ecs.EntityID: 新鱼钩ID，跳过时返回 0
func (hs *HookSystem) trySpawn() ecs.EntityID {
	busy := make(map[int]bool)
	for _, id := range ecs.GetEntitiesWith1[*components.HookComponent](hs.em) {
		if hook, ok := ecs.GetComponent[*components.HookComponent](hs.em, id); ok {
			busy[hook.Slot] = true
		}
	}

	free := make([]int, 0, hs.fishermen.Count())
	for slot := 0; slot < hs.fishermen.Count(); slot++ {
		if !busy[slot] {
			free = append(free, slot)
		}
	}
	if len(free) == 0 {
		return 0
	}

	slot := free[hs.rng.Intn(len(free))]
	depth := utils.RandRange(hs.rng, hs.cfg.DepthMin, hs.cfg.DepthMax)
	id := entities.NewHookEntity(hs.em, hs.cfg, slot, hs.fishermen.BoatX(slot), hs.waterLine, hs.waterLine+depth)
	log.Printf("[HookSystem] hook %d dropped by fisherman %d to depth %.0f", id, slot, depth)
	return id
}

// Update 推进所有鱼钩的状态
func (hs *HookSystem) Update(deltaTime float64) {
	if hs.frozen {
		return
	}

	for _, id := range ecs.GetEntitiesWith3[*components.HookComponent, *components.PositionComponent, *components.VelocityComponent](hs.em) {
		hook, _ := ecs.GetComponent[*components.HookComponent](hs.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](hs.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](hs.em, id)

		switch hook.State {
		case components.HookDropping:
			pos.X = hs.fishermen.BoatX(hook.Slot)
			hook.DropElapsed += deltaTime
			progress := 1.0
			if hook.DropDuration > 0 {
				progress = utils.Clamp(hook.DropElapsed/hook.DropDuration, 0, 1)
			}
			pos.Y = utils.Lerp(hook.StartY, hook.TargetY, utils.EaseOutBounce(progress))
			if progress >= 1 {
				hs.arm(id, hook)
			}

		case components.HookArmed:
			pos.X = hs.fishermen.BoatX(hook.Slot)

		case components.HookPulling:
			vel.VY = -hook.PullSpeed
			pos.Y += vel.VY * deltaTime
			if pos.Y <= hs.waterLine {
				hs.destroy(id)
			}
		}
	}
}

// arm 进入等待状态，并安排随机延迟后开始收线
func (hs *HookSystem) arm(id ecs.EntityID, hook *components.HookComponent) {
	hook.State = components.HookArmed
	delay := utils.RandRange(hs.rng, hs.cfg.ArmedMin, hs.cfg.ArmedMax)

	hs.pullTasks[id] = hs.scheduler.After(delay, func() {
		delete(hs.pullTasks, id)
		// 鱼钩可能已被销毁或游戏已结束
		if hs.frozen || !hs.em.IsAlive(id) {
			return
		}
		h, ok := ecs.GetComponent[*components.HookComponent](hs.em, id)
		if !ok || h.State != components.HookArmed {
			return
		}
		h.State = components.HookPulling
		h.PullSpeed = utils.RandRange(hs.rng, hs.cfg.PullSpeedMin, hs.cfg.PullSpeedMax)
	})
}

// destroy 销毁鱼钩并取消其延迟任务，重复调用是空操作
func (hs *HookSystem) destroy(id ecs.EntityID) {
	if task, ok := hs.pullTasks[id]; ok {
		hs.scheduler.Cancel(task)
		delete(hs.pullTasks, id)
	}
	hs.em.DestroyEntity(id)
}

// Freeze 游戏结束时调用：所有鱼钩速度归零、取消收线与生成
func (hs *HookSystem) Freeze() {
	if hs.frozen {
		return
	}
	hs.frozen = true
	hs.scheduler.Cancel(hs.spawnTask)
	for id, task := range hs.pullTasks {
		hs.scheduler.Cancel(task)
		delete(hs.pullTasks, id)
	}
	for _, id := range ecs.GetEntitiesWith2[*components.HookComponent, *components.VelocityComponent](hs.em) {
		vel, _ := ecs.GetComponent[*components.VelocityComponent](hs.em, id)
		vel.VX, vel.VY = 0, 0
	}
}

// ActiveHooksForSlot 返回指定渔夫当前的鱼钩数量（不变量：最多为 1）
func (hs *HookSystem) ActiveHooksForSlot(slot int) int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.HookComponent](hs.em) {
		if hook, ok := ecs.GetComponent[*components.HookComponent](hs.em, id); ok && hook.Slot == slot {
			count++
		}
	}
	return count
}

// Hooks 返回当前所有鱼钩实体
func (hs *HookSystem) Hooks() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.HookComponent](hs.em)
}
