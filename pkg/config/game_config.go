package config

import (
	"fmt"
	"os"

	"github.com/gonewx/fishy-escape/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// GameConfig 游戏可调参数配置
//
// 所有时间单位为秒，速度单位为像素/秒。
// 默认值来自原版游戏的常量，可通过 data/game_config.yaml 或 -config 指定的文件覆盖。
type GameConfig struct {
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	Fishermen  FishermenConfig  `yaml:"fishermen"`
	Hooks      HookConfig       `yaml:"hooks"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	PowerUps   PowerUpConfig    `yaml:"powerUps"`
	Seagulls   SeagullConfig    `yaml:"seagulls"`
	Session    SessionConfig    `yaml:"session"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Ambient    AmbientConfig    `yaml:"ambient"`
}

// WorldConfig 世界尺寸
type WorldConfig struct {
	Width  float64 `yaml:"width"`  // 世界宽度（像素）
	Height float64 `yaml:"height"` // 世界高度（像素）
}

// WaterLine 返回水面的 Y 坐标（屏幕高度的一半）
func (w WorldConfig) WaterLine() float64 {
	return w.Height / 2
}

// PlayerConfig 玩家鱼配置
type PlayerConfig struct {
	StartX          float64 `yaml:"startX"`          // 初始X坐标
	StartDepth      float64 `yaml:"startDepth"`      // 初始位置在水面下的深度
	BaseSpeed       float64 `yaml:"baseSpeed"`       // 基础速度
	InitialScale    float64 `yaml:"initialScale"`    // 初始缩放
	GrowthIncrement float64 `yaml:"growthIncrement"` // 每次成长增加的缩放
	HitWidth        float64 `yaml:"hitWidth"`        // 缩放为1时的碰撞盒宽度
	HitHeight       float64 `yaml:"hitHeight"`       // 缩放为1时的碰撞盒高度
	ArrivalRadius   float64 `yaml:"arrivalRadius"`   // 到达指针附近时停止的半径
}

// FishermenConfig 渔夫与船配置
type FishermenConfig struct {
	Count           int     `yaml:"count"`           // 渔夫数量
	FirstX          float64 `yaml:"firstX"`          // 第一条船的X坐标
	Spacing         float64 `yaml:"spacing"`         // 船之间的间距
	Speed           float64 `yaml:"speed"`           // 巡逻速度
	EdgeMargin      float64 `yaml:"edgeMargin"`      // 巡逻边界距屏幕边缘的距离
	RetargetChance  float64 `yaml:"retargetChance"`  // 每 1/60 秒选择新目标的概率
	SeekFishChance  float64 `yaml:"seekFishChance"`  // 新目标是玩家位置的概率
	ArriveThreshold float64 `yaml:"arriveThreshold"` // 到达目标的判定距离
	BobAmplitude    float64 `yaml:"bobAmplitude"`    // 船体上下浮动幅度
	BobPeriod       float64 `yaml:"bobPeriod"`       // 浮动半周期
}

// HookConfig 鱼钩配置
type HookConfig struct {
	SpawnMin     float64 `yaml:"spawnMin"`     // 生成间隔下限
	SpawnMax     float64 `yaml:"spawnMax"`     // 生成间隔上限
	DropDuration float64 `yaml:"dropDuration"` // 下落动画时长
	DepthMin     float64 `yaml:"depthMin"`     // 下落深度下限（相对水面）
	DepthMax     float64 `yaml:"depthMax"`     // 下落深度上限
	ArmedMin     float64 `yaml:"armedMin"`     // 静止等待时长下限
	ArmedMax     float64 `yaml:"armedMax"`     // 静止等待时长上限
	PullSpeedMin float64 `yaml:"pullSpeedMin"` // 收线速度下限
	PullSpeedMax float64 `yaml:"pullSpeedMax"` // 收线速度上限
	HitWidth     float64 `yaml:"hitWidth"`
	HitHeight    float64 `yaml:"hitHeight"`
}

// ObstacleTypeConfig 单个障碍物类型的配置
type ObstacleTypeConfig struct {
	Name      string  `yaml:"name"`      // 类型名（coral, stone, plant1..plant5）
	Kind      string  `yaml:"kind"`      // 类别（coral, stone, plant）
	ScaleMin  float64 `yaml:"scaleMin"`  // 随机缩放下限
	ScaleMax  float64 `yaml:"scaleMax"`  // 随机缩放上限
	HitWidth  float64 `yaml:"hitWidth"`  // 缩放为1时的碰撞盒宽度
	HitHeight float64 `yaml:"hitHeight"` // 缩放为1时的碰撞盒高度
}

// ObstacleConfig 障碍物配置
type ObstacleConfig struct {
	SpawnMin     float64              `yaml:"spawnMin"`
	SpawnMax     float64              `yaml:"spawnMax"`
	SpawnOffset  float64              `yaml:"spawnOffset"`  // 在右边缘外生成的距离
	MinLift      float64              `yaml:"minLift"`      // 底部抬升下限
	BandFraction float64              `yaml:"bandFraction"` // 底部抬升上限占水深的比例
	EatBonus     int                  `yaml:"eatBonus"`     // 吃掉障碍物的奖励分数
	GrowthCorals int                  `yaml:"growthCorals"` // 成长所需珊瑚数
	Types        []ObstacleTypeConfig `yaml:"types"`
}

// PowerUpConfig 道具配置
type PowerUpConfig struct {
	CheckInterval         float64 `yaml:"checkInterval"`         // 检查间隔
	SpawnChance           float64 `yaml:"spawnChance"`           // 每次检查的生成概率
	SpawnOffset           float64 `yaml:"spawnOffset"`           // 在右边缘外生成的距离
	EdgeMargin            float64 `yaml:"edgeMargin"`            // 纵向生成范围边距
	DriftFactor           float64 `yaml:"driftFactor"`           // 漂移速度 = gameSpeed * DriftFactor
	BobAmplitude          float64 `yaml:"bobAmplitude"`          // 上下浮动幅度
	BobPeriod             float64 `yaml:"bobPeriod"`             // 浮动半周期
	SpeedDuration         float64 `yaml:"speedDuration"`         // 加速持续时间
	InvincibilityDuration float64 `yaml:"invincibilityDuration"` // 无敌持续时间
	EatDuration           float64 `yaml:"eatDuration"`           // 吞食持续时间
	SpeedMultiplier       float64 `yaml:"speedMultiplier"`       // 加速倍率
	HitSize               float64 `yaml:"hitSize"`
}

// SeagullConfig 海鸥配置
type SeagullConfig struct {
	CheckInterval float64 `yaml:"checkInterval"` // 生成检查间隔
	SpawnChance   float64 `yaml:"spawnChance"`   // 生成概率
	MinAltitude   float64 `yaml:"minAltitude"`   // 最高巡航位置（Y最小值）
	WaterGap      float64 `yaml:"waterGap"`      // 巡航高度与水面的最小距离
	FlySpeed      float64 `yaml:"flySpeed"`      // 巡航速度
	DiveSpeed     float64 `yaml:"diveSpeed"`     // 俯冲速度
	ReturnSpeed   float64 `yaml:"returnSpeed"`   // 返回速度
	DiveWindow    float64 `yaml:"diveWindow"`    // 俯冲判定窗口
	DiveChance    float64 `yaml:"diveChance"`    // 每个窗口的俯冲概率
	DiveProximity float64 `yaml:"diveProximity"` // 允许俯冲的水平距离
	DiveDepth     float64 `yaml:"diveDepth"`     // 俯冲最大深度（相对水面）
	TargetJitterX float64 `yaml:"targetJitterX"` // 目标点水平抖动
	TargetJitterY float64 `yaml:"targetJitterY"` // 目标点垂直抖动
	ArriveRadius  float64 `yaml:"arriveRadius"`  // 到达目标的判定距离
	OffscreenPad  float64 `yaml:"offscreenPad"`  // 离屏判定边距
	HitWidth      float64 `yaml:"hitWidth"`
	HitHeight     float64 `yaml:"hitHeight"`
}

// SessionConfig 局内状态配置
type SessionConfig struct {
	ScoreTick      float64 `yaml:"scoreTick"`      // 计分定时器间隔
	ScorePerTick   int     `yaml:"scorePerTick"`   // 每次计分增加的分数
	Milestones     []int   `yaml:"milestones"`     // 里程碑分数
	GameOverDelay  float64 `yaml:"gameOverDelay"`  // 死亡动画到结算的延迟
	BurstParticles int     `yaml:"burstParticles"` // 死亡时的气泡数量
}

// DifficultyConfig 难度递增配置
type DifficultyConfig struct {
	BaseSpeed float64 `yaml:"baseSpeed"` // 初始游戏速度
	Interval  float64 `yaml:"interval"`  // 递增间隔
	Increment float64 `yaml:"increment"` // 每次递增量
}

// AmbientConfig 背景装饰配置
type AmbientConfig struct {
	Clouds          int     `yaml:"clouds"`
	CloudSpeed      float64 `yaml:"cloudSpeed"`      // 云速度 = gameSpeed * CloudSpeed
	SeabedSpeed     float64 `yaml:"seabedSpeed"`     // 海床滚动 = gameSpeed * SeabedSpeed
	Fish            int     `yaml:"fish"`            // 背景小鱼数量
	FishSpeedFactor float64 `yaml:"fishSpeedFactor"` // 小鱼速度 = U[0.5,1.5] * gameSpeed * FishSpeedFactor
	Bubbles         int     `yaml:"bubbles"`         // 上升气泡数量
	WaveTick        float64 `yaml:"waveTick"`        // 波浪刷新间隔
}

// DefaultGameConfig 返回内置默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		World: WorldConfig{
			Width:  GameWindowWidth,
			Height: GameWindowHeight,
		},
		Player: PlayerConfig{
			StartX:          100,
			StartDepth:      100,
			BaseSpeed:       200,
			InitialScale:    0.7,
			GrowthIncrement: 0.1,
			HitWidth:        60,
			HitHeight:       30,
			ArrivalRadius:   4,
		},
		Fishermen: FishermenConfig{
			Count:           3,
			FirstX:          200,
			Spacing:         300,
			Speed:           50,
			EdgeMargin:      100,
			RetargetChance:  0.02,
			SeekFishChance:  0.3,
			ArriveThreshold: 5,
			BobAmplitude:    10,
			BobPeriod:       1.5,
		},
		Hooks: HookConfig{
			SpawnMin:     1.0,
			SpawnMax:     3.0,
			DropDuration: 1.0,
			DepthMin:     100,
			DepthMax:     300,
			ArmedMin:     1.0,
			ArmedMax:     3.0,
			PullSpeedMin: 100,
			PullSpeedMax: 250,
			HitWidth:     16,
			HitHeight:    32,
		},
		Obstacles: ObstacleConfig{
			SpawnMin:     2.0,
			SpawnMax:     4.0,
			SpawnOffset:  50,
			MinLift:      20,
			BandFraction: 0.25,
			EatBonus:     10,
			GrowthCorals: 5,
			Types: []ObstacleTypeConfig{
				{Name: "coral", Kind: "coral", ScaleMin: 0.6, ScaleMax: 0.9, HitWidth: 70, HitHeight: 60},
				{Name: "stone", Kind: "stone", ScaleMin: 0.5, ScaleMax: 0.8, HitWidth: 90, HitHeight: 50},
				{Name: "plant1", Kind: "plant", ScaleMin: 0.6, ScaleMax: 1.0, HitWidth: 20, HitHeight: 90},
				{Name: "plant2", Kind: "plant", ScaleMin: 0.6, ScaleMax: 1.0, HitWidth: 20, HitHeight: 90},
				{Name: "plant3", Kind: "plant", ScaleMin: 0.6, ScaleMax: 1.0, HitWidth: 20, HitHeight: 90},
				{Name: "plant4", Kind: "plant", ScaleMin: 0.6, ScaleMax: 1.0, HitWidth: 20, HitHeight: 90},
				{Name: "plant5", Kind: "plant", ScaleMin: 0.6, ScaleMax: 1.0, HitWidth: 20, HitHeight: 90},
			},
		},
		PowerUps: PowerUpConfig{
			CheckInterval:         10,
			SpawnChance:           0.5,
			SpawnOffset:           50,
			EdgeMargin:            50,
			DriftFactor:           0.6,
			BobAmplitude:          20,
			BobPeriod:             1.5,
			SpeedDuration:         5,
			InvincibilityDuration: 8,
			EatDuration:           6,
			SpeedMultiplier:       1.5,
			HitSize:               24,
		},
		Seagulls: SeagullConfig{
			CheckInterval: 15,
			SpawnChance:   0.4,
			MinAltitude:   50,
			WaterGap:      30,
			FlySpeed:      50,
			DiveSpeed:     200,
			ReturnSpeed:   150,
			DiveWindow:    0.1,
			DiveChance:    0.03,
			DiveProximity: 250,
			DiveDepth:     100,
			TargetJitterX: 50,
			TargetJitterY: 30,
			ArriveRadius:  10,
			OffscreenPad:  50,
			HitWidth:      32,
			HitHeight:     16,
		},
		Session: SessionConfig{
			ScoreTick:      0.1,
			ScorePerTick:   1,
			Milestones:     []int{100, 300, 500, 1000},
			GameOverDelay:  1.0,
			BurstParticles: 20,
		},
		Difficulty: DifficultyConfig{
			BaseSpeed: 200,
			Interval:  5,
			Increment: 10,
		},
		Ambient: AmbientConfig{
			Clouds:          5,
			CloudSpeed:      0.2,
			SeabedSpeed:     0.1,
			Fish:            20,
			FishSpeedFactor: 0.3,
			Bubbles:         30,
			WaveTick:        0.1,
		},
	}
}

// LoadGameConfig 从 YAML 文件加载游戏配置
// 文件中未出现的字段保留默认值
func LoadGameConfig(filePath string) (*GameConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 解析 YAML 数据并覆盖到默认配置上
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置的有效性
func (c *GameConfig) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world size must be positive, got %.0fx%.0f", c.World.Width, c.World.Height)
	}
	if c.Player.BaseSpeed <= 0 {
		return fmt.Errorf("player.baseSpeed must be > 0, got %.2f", c.Player.BaseSpeed)
	}
	if c.Player.InitialScale <= 0 {
		return fmt.Errorf("player.initialScale must be > 0, got %.2f", c.Player.InitialScale)
	}
	if c.Fishermen.Count < 1 {
		return fmt.Errorf("fishermen.count must be >= 1, got %d", c.Fishermen.Count)
	}
	if err := validateRange("hooks.spawn", c.Hooks.SpawnMin, c.Hooks.SpawnMax); err != nil {
		return err
	}
	if err := validateRange("hooks.depth", c.Hooks.DepthMin, c.Hooks.DepthMax); err != nil {
		return err
	}
	if err := validateRange("hooks.armed", c.Hooks.ArmedMin, c.Hooks.ArmedMax); err != nil {
		return err
	}
	if err := validateRange("hooks.pullSpeed", c.Hooks.PullSpeedMin, c.Hooks.PullSpeedMax); err != nil {
		return err
	}
	if err := validateRange("obstacles.spawn", c.Obstacles.SpawnMin, c.Obstacles.SpawnMax); err != nil {
		return err
	}
	if len(c.Obstacles.Types) == 0 {
		return fmt.Errorf("obstacles.types cannot be empty")
	}
	for _, t := range c.Obstacles.Types {
		if t.Name == "" {
			return fmt.Errorf("obstacle type name cannot be empty")
		}
		switch t.Kind {
		case "coral", "stone", "plant":
		default:
			return fmt.Errorf("obstacle %s has unknown kind %q", t.Name, t.Kind)
		}
		if err := validateRange("obstacles."+t.Name+".scale", t.ScaleMin, t.ScaleMax); err != nil {
			return err
		}
	}
	if c.Obstacles.GrowthCorals < 1 {
		return fmt.Errorf("obstacles.growthCorals must be >= 1, got %d", c.Obstacles.GrowthCorals)
	}
	if c.PowerUps.SpawnChance < 0 || c.PowerUps.SpawnChance > 1 {
		return fmt.Errorf("powerUps.spawnChance must be within [0,1], got %.2f", c.PowerUps.SpawnChance)
	}
	if c.Seagulls.SpawnChance < 0 || c.Seagulls.SpawnChance > 1 {
		return fmt.Errorf("seagulls.spawnChance must be within [0,1], got %.2f", c.Seagulls.SpawnChance)
	}
	if c.Session.ScoreTick <= 0 {
		return fmt.Errorf("session.scoreTick must be > 0, got %.3f", c.Session.ScoreTick)
	}
	for i := 1; i < len(c.Session.Milestones); i++ {
		if c.Session.Milestones[i] <= c.Session.Milestones[i-1] {
			return fmt.Errorf("session.milestones must be strictly ascending")
		}
	}
	if c.Difficulty.Interval <= 0 {
		return fmt.Errorf("difficulty.interval must be > 0, got %.2f", c.Difficulty.Interval)
	}
	return nil
}

// validateRange 验证 [min, max] 区间
func validateRange(name string, min, max float64) error {
	if min < 0 || max < min {
		return fmt.Errorf("%s range invalid: [%.2f, %.2f]", name, min, max)
	}
	return nil
}

// EmbeddedConfigPath 内置配置文件在嵌入文件系统中的路径
const EmbeddedConfigPath = "data/game_config.yaml"

// LoadEmbeddedGameConfig 从嵌入的数据文件加载配置
// 嵌入资源不可用时返回默认配置
func LoadEmbeddedGameConfig() (*GameConfig, error) {
	if !embedded.IsInitialized() {
		return DefaultGameConfig(), nil
	}
	data, err := embedded.ReadFile(EmbeddedConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded game config: %w", err)
	}
	return ParseGameConfig(data)
}
