package components

// FishermanMode 渔船移动模式
type FishermanMode int

const (
	// FishermanPatrol 在巡逻边界之间来回移动
	FishermanPatrol FishermanMode = iota
	// FishermanSeek 朝目标X移动，到达或越过后恢复巡逻
	FishermanSeek
)

// String 返回模式名称（用于日志）
func (m FishermanMode) String() string {
	switch m {
	case FishermanPatrol:
		return "patrol"
	case FishermanSeek:
		return "seek"
	default:
		return "unknown"
	}
}

// FishermanComponent 渔夫（船）状态
// 渔夫在会话开始时创建，整个会话期间不会单独销毁
type FishermanComponent struct {
	Slot      int           // 槽位索引 0..N-1
	Mode      FishermanMode // 当前移动模式
	Direction float64       // 巡逻方向（+1 向右，-1 向左）
	TargetX   float64       // Seek 模式下的目标X
	BaseY     float64       // 浮动基准Y（水面）
	BobOffset float64       // 当前浮动偏移
	BobClock  float64       // 浮动计时（秒），初始值错开各船相位
}
