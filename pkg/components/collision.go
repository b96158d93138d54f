package components

// CollisionComponent 定义实体的碰撞检测边界框
// 碰撞盒以实体位置为中心，Offset 用于微调（如障碍物的贴底碰撞盒）
type CollisionComponent struct {
	Width   float64 // 碰撞盒宽度（像素）
	Height  float64 // 碰撞盒高度（像素）
	OffsetX float64 // 碰撞盒中心相对于实体位置的X偏移量（像素），正值向右偏移
	OffsetY float64 // 碰撞盒中心相对于实体位置的Y偏移量（像素），正值向下偏移
}

// Bounds 返回碰撞盒在世界坐标中的边界
func (c *CollisionComponent) Bounds(pos *PositionComponent) (left, top, right, bottom float64) {
	cx := pos.X + c.OffsetX
	cy := pos.Y + c.OffsetY
	return cx - c.Width/2, cy - c.Height/2, cx + c.Width/2, cy + c.Height/2
}
