package components

// PlayerComponent 玩家鱼的专属状态
// 速度方向由 VelocityComponent 表示，这里只存放控制器需要的附加信息
type PlayerComponent struct {
	// FacingLeft 是否朝左（根据最近一次指针输入的水平分量决定）
	FacingLeft bool

	// Hidden 游戏结束后隐藏玩家
	Hidden bool

	// TargetX, TargetY 最近一次有效指针位置
	TargetX, TargetY float64

	// HasTarget 是否存在有效目标
	HasTarget bool
}
