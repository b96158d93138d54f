package components

// EffectKind 纯装饰性效果的种类
type EffectKind int

const (
	// EffectBurstBubble 游戏结束时的径向气泡
	EffectBurstBubble EffectKind = iota
	// EffectGrowthPulse 鱼成长时的脉冲光环
	EffectGrowthPulse
	// EffectChomp 吃掉障碍物时的闪光
	EffectChomp
	// EffectCollectFlash 拾取道具时的闪光
	EffectCollectFlash
	// EffectMilestoneBanner 里程碑横幅
	EffectMilestoneBanner
)

// EffectComponent 装饰效果
// 效果的存在时间由 LifetimeComponent 控制，运动由 VelocityComponent 控制
type EffectComponent struct {
	Kind    EffectKind
	Radius  float64     // 起始半径
	Growth  float64     // 半径随进度增加的量
	Text    string      // 横幅文本
	PowerUp PowerUpType // 拾取闪光的道具类型（决定颜色）
}
