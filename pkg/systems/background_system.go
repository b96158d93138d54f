package systems

import (
	"math"
	"math/rand"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/ecs"
	"github.com/gonewx/fishy-escape/pkg/entities"
	"github.com/gonewx/fishy-escape/pkg/game"
	"github.com/gonewx/fishy-escape/pkg/utils"
)

// SeabedTileWidth 海床图案的重复宽度（滚动偏移在此范围内循环）
const SeabedTileWidth = 256

// BackgroundSystem 管理不参与碰撞的背景装饰：云、海床滚动、背景小鱼、上升气泡和波浪
// 所有运动都由游戏速度驱动；波浪相位在低频定时器上刷新。
type BackgroundSystem struct {
	em        *ecs.EntityManager
	cfg       config.AmbientConfig
	world     config.WorldConfig
	rng       *rand.Rand
	scheduler *game.Scheduler

	gameSpeed    float64
	seabedOffset float64
	wavePhase    float64
	waveTask     game.TaskID
	clock        float64
}

// NewBackgroundSystem 创建背景系统并生成所有装饰实体
func NewBackgroundSystem(em *ecs.EntityManager, cfg *config.GameConfig, rng *rand.Rand, scheduler *game.Scheduler) *BackgroundSystem {
	bs := &BackgroundSystem{
		em:        em,
		cfg:       cfg.Ambient,
		world:     cfg.World,
		rng:       rng,
		scheduler: scheduler,
		gameSpeed: cfg.Difficulty.BaseSpeed,
	}
	bs.populate()
	bs.waveTask = scheduler.Every(bs.cfg.WaveTick, func() {
		bs.wavePhase = scheduler.Now()
	})
	return bs
}

func (bs *BackgroundSystem) populate() {
	water := bs.world.WaterLine()
	depth := bs.world.Height - water

	for i := 0; i < bs.cfg.Clouds; i++ {
		entities.NewCloudEntity(bs.em,
			utils.RandRange(bs.rng, 0, bs.world.Width),
			utils.RandRange(bs.rng, 20, math.Max(20, water-80)),
			utils.RandRange(bs.rng, 60, 120))
	}
	for i := 0; i < bs.cfg.Fish; i++ {
		level := utils.RandRange(bs.rng, 0.2, 0.8)
		entities.NewBackgroundFishEntity(bs.em,
			utils.RandRange(bs.rng, 0, bs.world.Width),
			water+level*depth,
			utils.RandRange(bs.rng, 0.5, 1.5),
			level,
			bs.rng.Intn(2) == 0)
	}
	for i := 0; i < bs.cfg.Bubbles; i++ {
		entities.NewAmbientBubbleEntity(bs.em,
			utils.RandRange(bs.rng, 0, bs.world.Width),
			utils.RandRange(bs.rng, water, bs.world.Height),
			utils.RandRange(bs.rng, 20, 60),
			utils.RandRange(bs.rng, 2, 5),
			utils.RandRange(bs.rng, 0, 2*math.Pi))
	}
}

// Update 移动所有背景装饰
func (bs *BackgroundSystem) Update(deltaTime float64) {
	bs.clock += deltaTime
	bs.seabedOffset = math.Mod(bs.seabedOffset+bs.gameSpeed*bs.cfg.SeabedSpeed*deltaTime, SeabedTileWidth)

	for _, id := range ecs.GetEntitiesWith2[*components.CloudComponent, *components.PositionComponent](bs.em) {
		cloud, _ := ecs.GetComponent[*components.CloudComponent](bs.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](bs.em, id)
		pos.X -= bs.gameSpeed * bs.cfg.CloudSpeed * deltaTime
		if pos.X < -cloud.Width {
			pos.X = bs.world.Width + cloud.Width
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.BackgroundFishComponent, *components.PositionComponent](bs.em) {
		fish, _ := ecs.GetComponent[*components.BackgroundFishComponent](bs.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](bs.em, id)
		dir := 1.0
		if fish.FacingLeft {
			dir = -1
		}
		pos.X += dir * fish.SpeedFactor * bs.gameSpeed * bs.cfg.FishSpeedFactor * deltaTime
		if pos.X < -50 {
			pos.X = bs.world.Width + 50
		} else if pos.X > bs.world.Width+50 {
			pos.X = -50
		}
	}

	water := bs.world.WaterLine()
	for _, id := range ecs.GetEntitiesWith2[*components.BubbleComponent, *components.PositionComponent](bs.em) {
		bubble, _ := ecs.GetComponent[*components.BubbleComponent](bs.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](bs.em, id)
		pos.Y -= bubble.RiseSpeed * deltaTime
		pos.X += math.Sin(bs.clock*2+bubble.Phase) * 10 * deltaTime
		if pos.Y < water {
			pos.Y = bs.world.Height + bubble.Radius
			pos.X = utils.RandRange(bs.rng, 0, bs.world.Width)
		}
	}
}

// SetGameSpeed 更新背景运动速度
func (bs *BackgroundSystem) SetGameSpeed(speed float64) {
	bs.gameSpeed = speed
}

// GameSpeed 返回当前游戏速度
func (bs *BackgroundSystem) GameSpeed() float64 {
	return bs.gameSpeed
}

// SeabedOffset 返回海床滚动偏移 [0, SeabedTileWidth)
func (bs *BackgroundSystem) SeabedOffset() float64 {
	return bs.seabedOffset
}

// WavePhase 返回波浪相位（秒，随定时器刷新）
func (bs *BackgroundSystem) WavePhase() float64 {
	return bs.wavePhase
}
