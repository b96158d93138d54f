package scenes

import (
	"time"

	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/game"
)

// SessionObserver 订阅每一局的会话事件（如 websocket 事件桥）
type SessionObserver interface {
	Attach(events *game.SessionEvents, sessionID string)
}

// MuteToggler 可切换静音的音频句柄
type MuteToggler interface {
	game.AudioHandle
	ToggleMute() bool
}

// Services 场景之间共享的服务
type Services struct {
	Config      *config.GameConfig
	Leaderboard *game.LeaderboardManager // 可为 nil
	Audio       MuteToggler              // 可为 nil
	Observer    SessionObserver          // 可为 nil

	// Seed 固定随机种子；为 0 时每局使用当前时间
	Seed     int64
	sessions int64
}

// nextSeed 返回下一局的随机种子
// 固定种子时依次为 Seed, Seed+1, ...，保证整个运行可复现
func (s *Services) nextSeed() int64 {
	if s.Seed == 0 {
		return time.Now().UnixNano()
	}
	seed := s.Seed + s.sessions
	s.sessions++
	return seed
}

// leaderboardEntries 返回排行榜条目，未配置时为空
func (s *Services) leaderboardEntries() []game.LeaderboardEntry {
	if s.Leaderboard == nil {
		return nil
	}
	return s.Leaderboard.Entries()
}

// toggleMute 切换静音，返回切换后的状态
func (s *Services) toggleMute() bool {
	if s.Audio == nil {
		return true
	}
	return s.Audio.ToggleMute()
}

func (s *Services) isMuted() bool {
	return s.Audio == nil || s.Audio.IsMuted()
}
