package scenes

import (
	"fmt"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/game"
	"github.com/gonewx/fishy-escape/pkg/utils"
)

// leaderboardLines 排行榜的显示行，空榜显示提示
func leaderboardLines(entries []game.LeaderboardEntry) []string {
	if len(entries) == 0 {
		return []string{"No escapes recorded yet"}
	}
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%d.  %s   %s", i+1, utils.FormatTime(e.Time), e.Date))
	}
	return lines
}

// powerUpLabel HUD 指示器上的字母
func powerUpLabel(typ components.PowerUpType) string {
	switch typ {
	case components.PowerUpSpeed:
		return "S"
	case components.PowerUpInvincibility:
		return "I"
	case components.PowerUpEat:
		return "E"
	default:
		return "?"
	}
}

// musicLabel 音乐开关提示
func musicLabel(muted bool) string {
	if muted {
		return "[M] Music: off"
	}
	return "[M] Music: on"
}
