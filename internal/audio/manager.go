// Package audio 桌面版的背景音乐播放（ebiten audio）
package audio

import (
	"bytes"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/gonewx/fishy-escape/internal/audio/synth"
	"github.com/gonewx/fishy-escape/pkg/game"
)

// AudioManager 音频管理器
// 职责：
//   - 循环播放程序生成的环境音乐
//   - 静音开关与 SettingsManager 联动（静音 = 音乐关闭）
//   - 实现 game.AudioHandle，供会话控制器在开局/结束时调用
type AudioManager struct {
	context         *audio.Context
	settingsManager *game.SettingsManager // 可为 nil
	music           *audio.Player         // 背景音乐播放器（首次播放时创建）
	wantPlaying     bool                  // 会话是否要求播放
	muted           bool
}

var _ game.AudioHandle = (*AudioManager)(nil)

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文（进程内唯一）
//   - sm: SettingsManager 实例（用于读取音量和开关，可为 nil）
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(ctx *audio.Context, sm *game.SettingsManager) *AudioManager {
	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
	}
	if sm != nil {
		am.muted = !sm.GetSettings().MusicEnabled
	}
	return am
}

// musicPlayer 获取或创建背景音乐播放器
func (am *AudioManager) musicPlayer() *audio.Player {
	if am.music != nil || am.context == nil {
		return am.music
	}

	pcm := synth.EncodePCM16(synth.AmbientLoop(am.context.SampleRate(), synth.LoopSeconds, 1), 1)
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	player, err := am.context.NewPlayer(loop)
	if err != nil {
		log.Printf("[AudioManager] Warning: failed to create music player: %v", err)
		return nil
	}
	am.music = player
	return player
}

// PlayMusic 开始循环播放背景音乐
// 静音时只记录播放意图，取消静音后自动开始
func (am *AudioManager) PlayMusic() {
	am.wantPlaying = true
	if am.muted {
		return
	}
	player := am.musicPlayer()
	if player == nil {
		return
	}
	player.SetVolume(am.getMusicVolume())
	if !player.IsPlaying() {
		player.Play()
		log.Printf("[AudioManager] Playing ambient music (volume: %.2f)", am.getMusicVolume())
	}
}

// StopMusic 停止背景音乐，下次播放从头开始
func (am *AudioManager) StopMusic() {
	am.wantPlaying = false
	if am.music == nil {
		return
	}
	am.music.Pause()
	if err := am.music.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: failed to rewind music: %v", err)
	}
}

// SetMuted 设置静音，并写回设置
func (am *AudioManager) SetMuted(muted bool) {
	am.muted = muted
	if am.settingsManager != nil && am.settingsManager.GetSettings().MusicEnabled == muted {
		am.settingsManager.ToggleMusic()
	}

	if muted {
		if am.music != nil {
			am.music.Pause()
		}
		return
	}
	if am.wantPlaying {
		am.PlayMusic()
	}
}

// IsMuted 返回是否静音
func (am *AudioManager) IsMuted() bool {
	return am.muted
}

// ToggleMute 切换静音
//
// 返回：
//   - bool: 切换后的静音状态
func (am *AudioManager) ToggleMute() bool {
	am.SetMuted(!am.muted)
	return am.muted
}

// SetMusicVolume 设置音乐音量并立即应用
func (am *AudioManager) SetMusicVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetMusicVolume(volume)
	}
	if am.music != nil {
		am.music.SetVolume(am.getMusicVolume())
	}
}

// getMusicVolume 从设置读取音乐音量
func (am *AudioManager) getMusicVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().MusicVolume
	}
	return 0.5
}
