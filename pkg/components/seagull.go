package components

// SeagullState 海鸥行为状态
type SeagullState int

const (
	// SeagullFlying 在固定高度水平巡航
	SeagullFlying SeagullState = iota
	// SeagullDiving 朝俯冲开始时记录的目标点俯冲
	SeagullDiving
	// SeagullReturning 返回初始巡航高度
	SeagullReturning
)

// String 返回状态名称（用于日志）
func (s SeagullState) String() string {
	switch s {
	case SeagullFlying:
		return "flying"
	case SeagullDiving:
		return "diving"
	case SeagullReturning:
		return "returning"
	default:
		return "unknown"
	}
}

// SeagullComponent 海鸥状态
type SeagullComponent struct {
	State      SeagullState
	InitialY   float64 // 初始巡航高度
	TargetX    float64 // 俯冲目标（俯冲开始时的快照，俯冲过程中不更新）
	TargetY    float64
	FacingLeft bool
	DiveClock  float64 // 俯冲判定窗口计时
}
