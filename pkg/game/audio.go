package game

// AudioHandle 会话使用的音频出口
//
// 核心只负责开关环境音乐和静音标记，具体实现由前端提供
// （桌面版基于 ebiten/audio，终端版基于 beep）。
type AudioHandle interface {
	PlayMusic()
	StopMusic()
	SetMuted(muted bool)
	IsMuted() bool
}

// NopAudio 不发声的音频实现，用于测试和无音频设备的环境
type NopAudio struct {
	muted   bool
	playing bool
}

// PlayMusic 记录播放状态
func (a *NopAudio) PlayMusic() { a.playing = true }

// StopMusic 记录停止状态
func (a *NopAudio) StopMusic() { a.playing = false }

// SetMuted 设置静音
func (a *NopAudio) SetMuted(muted bool) { a.muted = muted }

// IsMuted 返回静音状态
func (a *NopAudio) IsMuted() bool { return a.muted }

// IsPlaying 返回音乐是否处于播放状态
func (a *NopAudio) IsPlaying() bool { return a.playing }
