package components

// ObstacleKind 障碍物类别
type ObstacleKind string

const (
	ObstacleCoral ObstacleKind = "coral"
	ObstacleStone ObstacleKind = "stone"
	ObstaclePlant ObstacleKind = "plant"
)

// ObstacleComponent 障碍物状态
type ObstacleComponent struct {
	Type  string       // 具体类型名（coral, stone, plant1..plant5）
	Kind  ObstacleKind // 类别，决定能否计入成长
	Eaten bool         // 是否已被吃掉（防止同一帧重复处理）
}
