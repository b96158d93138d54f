package utils

import "fmt"

// FormatTime 把毫秒格式化为 mm:ss（负数按 0 处理）
func FormatTime(ms int) string {
	if ms < 0 {
		ms = 0
	}
	seconds := ms / 1000
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
