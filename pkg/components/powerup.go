package components

// PowerUpType 道具类型
type PowerUpType int

const (
	PowerUpSpeed PowerUpType = iota
	PowerUpInvincibility
	PowerUpEat
)

// AllPowerUpTypes 全部道具类型（生成时均匀选择）
var AllPowerUpTypes = []PowerUpType{PowerUpSpeed, PowerUpInvincibility, PowerUpEat}

// String 返回道具类型名称
func (t PowerUpType) String() string {
	switch t {
	case PowerUpSpeed:
		return "speed"
	case PowerUpInvincibility:
		return "invincibility"
	case PowerUpEat:
		return "eat"
	default:
		return "unknown"
	}
}

// PowerUpComponent 场景中可拾取的道具
type PowerUpComponent struct {
	Type     PowerUpType
	Active   bool    // 是否仍可拾取（拾取后置为 false，防止重复拾取）
	BaseY    float64 // 浮动基准Y
	BobClock float64 // 浮动计时（秒）
}
