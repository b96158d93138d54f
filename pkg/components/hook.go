package components

// HookState 鱼钩状态
// 状态只能按 HookDropping → HookArmed → HookPulling 的顺序推进
type HookState int

const (
	// HookDropping 从水面下落到随机深度
	HookDropping HookState = iota
	// HookArmed 静止等待，水平位置跟随所属船只
	HookArmed
	// HookPulling 以随机速度向上收回
	HookPulling
)

// String 返回状态名称（用于日志）
func (s HookState) String() string {
	switch s {
	case HookDropping:
		return "dropping"
	case HookArmed:
		return "armed"
	case HookPulling:
		return "pulling"
	default:
		return "unknown"
	}
}

// HookComponent 鱼钩状态
type HookComponent struct {
	Slot         int       // 所属渔夫槽位
	State        HookState // 当前状态
	StartY       float64   // 下落起点（水面）
	TargetY      float64   // 下落终点
	DropElapsed  float64   // 已下落时间（秒）
	DropDuration float64   // 下落总时长（秒）
	PullSpeed    float64   // 收线速度（像素/秒），进入 HookPulling 时确定
}
