package systems

import (
	"math"
	"math/rand"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/ecs"
	"github.com/gonewx/fishy-escape/pkg/entities"
	"github.com/gonewx/fishy-escape/pkg/utils"
)

// 船体相对水面的偏移，以及渔夫鱼竿尖端相对船的偏移
const (
	boatDraft    = 20
	rodTipOffset = -20
	rodTipHeight = 30
)

// FishermenSystem 管理水面上的渔船
//
// 渔船在巡逻边界之间往返，偶尔选择一个目标X（有一定概率是玩家所在位置）移动过去。
// 鱼钩的水平位置跟随所属渔船。
type FishermenSystem struct {
	em    *ecs.EntityManager
	cfg   config.FishermenConfig
	world config.WorldConfig
	rng   *rand.Rand
	slots []ecs.EntityID

	// playerX 返回玩家当前X，用于选择追踪目标
	playerX func() float64
	frozen  bool
}

// NewFishermenSystem 创建渔船系统并生成全部渔船
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置
//   - rng: 随机源
//   - playerX: 返回玩家X坐标的函数
func NewFishermenSystem(em *ecs.EntityManager, cfg *config.GameConfig, rng *rand.Rand, playerX func() float64) *FishermenSystem {
	fs := &FishermenSystem{
		em:      em,
		cfg:     cfg.Fishermen,
		world:   cfg.World,
		rng:     rng,
		playerX: playerX,
	}

	baseY := cfg.World.WaterLine() - boatDraft
	for i := 0; i < fs.cfg.Count; i++ {
		x := math.Min(fs.cfg.FirstX+float64(i)*fs.cfg.Spacing, fs.maxX())
		id := entities.NewFishermanEntity(em, i, x, baseY, float64(i)*0.2)
		if fm, ok := ecs.GetComponent[*components.FishermanComponent](em, id); ok {
			fm.Direction = utils.RandSign(rng)
		}
		fs.slots = append(fs.slots, id)
	}
	return fs
}

func (fs *FishermenSystem) minX() float64 { return fs.cfg.EdgeMargin }
func (fs *FishermenSystem) maxX() float64 { return fs.world.Width - fs.cfg.EdgeMargin }

// Count 返回渔夫数量
func (fs *FishermenSystem) Count() int {
	return len(fs.slots)
}

// BoatX 返回指定槽位渔船的X坐标
func (fs *FishermenSystem) BoatX(slot int) float64 {
	if pos, ok := fs.position(slot); ok {
		return pos.X
	}
	return 0
}

// RodTip 返回指定槽位渔夫鱼竿尖端的位置（鱼线起点）
func (fs *FishermenSystem) RodTip(slot int) (float64, float64) {
	if pos, ok := fs.position(slot); ok {
		return pos.X + rodTipOffset, pos.Y - rodTipHeight
	}
	return 0, 0
}

// Slots 返回全部渔船实体（按槽位顺序）
func (fs *FishermenSystem) Slots() []ecs.EntityID {
	return append([]ecs.EntityID(nil), fs.slots...)
}

func (fs *FishermenSystem) position(slot int) (*components.PositionComponent, bool) {
	if slot < 0 || slot >= len(fs.slots) {
		return nil, false
	}
	return ecs.GetComponent[*components.PositionComponent](fs.em, fs.slots[slot])
}

// Freeze 停止渔船移动
func (fs *FishermenSystem) Freeze() {
	fs.frozen = true
	for _, id := range fs.slots {
		if vel, ok := ecs.GetComponent[*components.VelocityComponent](fs.em, id); ok {
			vel.VX = 0
		}
	}
}

// Update 更新渔船的浮动与移动
func (fs *FishermenSystem) Update(deltaTime float64) {
	if fs.frozen {
		return
	}
	// 每 1/60 秒 RetargetChance 的概率，换算到本帧
	retarget := 1 - math.Pow(1-fs.cfg.RetargetChance, deltaTime*60)

	for _, id := range fs.slots {
		fm, ok1 := ecs.GetComponent[*components.FishermanComponent](fs.em, id)
		pos, ok2 := ecs.GetComponent[*components.PositionComponent](fs.em, id)
		vel, ok3 := ecs.GetComponent[*components.VelocityComponent](fs.em, id)
		if !ok1 || !ok2 || !ok3 {
			continue
		}

		fs.updateBob(fm, pos, deltaTime)

		startX := pos.X
		switch fm.Mode {
		case components.FishermanSeek:
			fs.seek(fm, pos, deltaTime)
		default:
			if fs.rng.Float64() < retarget {
				fs.pickTarget(fm)
			} else {
				fs.patrol(fm, pos, deltaTime)
			}
		}
		if deltaTime > 0 {
			vel.VX = (pos.X - startX) / deltaTime
		}
	}
}

// updateBob 船体上下浮动（正弦往返）
func (fs *FishermenSystem) updateBob(fm *components.FishermanComponent, pos *components.PositionComponent, dt float64) {
	fm.BobClock += dt
	if fm.BobClock <= 0 {
		return
	}
	fm.BobOffset = fs.cfg.BobAmplitude * utils.EaseInOutSine(utils.YoyoProgress(fm.BobClock, fs.cfg.BobPeriod))
	pos.Y = fm.BaseY + fm.BobOffset
}

func (fs *FishermenSystem) pickTarget(fm *components.FishermanComponent) {
	fm.Mode = components.FishermanSeek
	if fs.rng.Float64() < fs.cfg.SeekFishChance && fs.playerX != nil {
		fm.TargetX = utils.Clamp(fs.playerX(), fs.minX(), fs.maxX())
	} else {
		fm.TargetX = utils.RandRange(fs.rng, fs.minX(), fs.maxX())
	}
}

func (fs *FishermenSystem) seek(fm *components.FishermanComponent, pos *components.PositionComponent, dt float64) {
	dx := fm.TargetX - pos.X
	if math.Abs(dx) < fs.cfg.ArriveThreshold {
		fm.Mode = components.FishermanPatrol
		return
	}
	step := fs.cfg.Speed * dt
	if step >= math.Abs(dx) {
		// 越过目标：停在目标点并恢复巡逻
		pos.X = fm.TargetX
		fm.Mode = components.FishermanPatrol
		return
	}
	pos.X += math.Copysign(step, dx)
}

func (fs *FishermenSystem) patrol(fm *components.FishermanComponent, pos *components.PositionComponent, dt float64) {
	pos.X += fm.Direction * fs.cfg.Speed * dt
	if fm.Direction > 0 && pos.X > fs.maxX() {
		pos.X = fs.maxX()
		fm.Direction = -1
	} else if fm.Direction < 0 && pos.X < fs.minX() {
		pos.X = fs.minX()
		fm.Direction = 1
	}
}
