package components

// PositionComponent 存储实体在世界坐标中的位置（像素）
// 约定：位置为实体中心点
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 存储实体的速度（像素/秒）
type VelocityComponent struct {
	VX float64
	VY float64
}
