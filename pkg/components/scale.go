package components

// ScaleComponent 存储实体级别的缩放因子
// 玩家鱼的成长、障碍物的随机尺寸都通过它表达，碰撞盒按同一因子缩放
type ScaleComponent struct {
	// Scale 缩放因子（1.0 = 原始大小）
	Scale float64
}
