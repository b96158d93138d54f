package main

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/gonewx/fishy-escape/internal/audio/synth"
	"github.com/gonewx/fishy-escape/pkg/game"
)

const sampleRate = beep.SampleRate(synth.SampleRate)

// loopStreamer 无限循环播放一段预先生成的帧
type loopStreamer struct {
	frames []synth.Frame
	pos    int
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if len(l.frames) == 0 {
		return 0, false
	}
	for i := range samples {
		samples[i] = l.frames[l.pos]
		l.pos = (l.pos + 1) % len(l.frames)
	}
	return len(samples), true
}

func (l *loopStreamer) Err() error {
	return nil
}

// SoundManager 终端版的环境音乐（beep）
// 实现 game.AudioHandle；扬声器初始化失败时静默运行
type SoundManager struct {
	mu          sync.Mutex
	music       *beep.Ctrl
	initialized bool
	wantPlaying bool
	muted       bool
}

var _ game.AudioHandle = (*SoundManager)(nil)

// NewSoundManager 创建音频管理器（尚未打开扬声器）
func NewSoundManager(muted bool) *SoundManager {
	return &SoundManager{muted: muted}
}

// Initialize 打开扬声器并挂上暂停状态的音乐流
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	frames := synth.AmbientLoop(synth.SampleRate, synth.LoopSeconds, 1)
	sm.music = &beep.Ctrl{Streamer: &loopStreamer{frames: frames}, Paused: true}
	speaker.Play(sm.music)
	sm.initialized = true
	sm.apply()
	return nil
}

// Cleanup 停止播放并关闭扬声器
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// apply 根据播放请求和静音状态更新暂停标志（调用方持有 sm.mu）
func (sm *SoundManager) apply() {
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.music.Paused = !sm.wantPlaying || sm.muted
	speaker.Unlock()
}

// PlayMusic 开始播放环境音乐
func (sm *SoundManager) PlayMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.wantPlaying = true
	sm.apply()
}

// StopMusic 停止环境音乐
func (sm *SoundManager) StopMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.wantPlaying = false
	sm.apply()
}

// SetMuted 设置静音
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
	sm.apply()
	log.Printf("[SoundManager] muted=%v", muted)
}

// IsMuted 返回静音状态
func (sm *SoundManager) IsMuted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// ToggleMute 切换静音，返回切换后的状态
func (sm *SoundManager) ToggleMute() bool {
	muted := !sm.IsMuted()
	sm.SetMuted(muted)
	return muted
}

// IsPlaying 音乐是否正在发声
func (sm *SoundManager) IsPlaying() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.wantPlaying && !sm.muted
}
