package components

// CloudComponent 天空中的云
type CloudComponent struct {
	Width float64
}

// BackgroundFishComponent 不参与碰撞的背景小鱼
type BackgroundFishComponent struct {
	SpeedFactor float64 // 速度系数 U[0.5, 1.5]
	DepthLevel  float64 // 深度层级 U[0.2, 0.8]，决定绘制透明度和大小
	FacingLeft  bool
}

// BubbleComponent 上升的环境气泡
type BubbleComponent struct {
	RiseSpeed float64 // 上升速度（像素/秒）
	Radius    float64
	Phase     float64 // 左右摆动相位
}
