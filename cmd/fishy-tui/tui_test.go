package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/fishy-escape/internal/audio/synth"
	"github.com/gonewx/fishy-escape/pkg/config"
)

func newTestTUI(t *testing.T, cols, rows int) *TUI {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("simulation screen init failed: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return NewTUI(screen, config.DefaultGameConfig(), NewSoundManager(false), nil, 9)
}

// rowText 读取屏幕一行的内容
func rowText(screen tcell.Screen, row, cols int) string {
	var b strings.Builder
	for col := 0; col < cols; col++ {
		r, _, _, _ := screen.GetContent(col, row)
		b.WriteRune(r)
	}
	return b.String()
}

func TestViewportMapping(t *testing.T) {
	vp := viewport{cols: 128, rows: 40, world: config.WorldConfig{Width: 1024, Height: 640}}

	col, row := vp.toCell(100, 330)
	if col != 12 || row != 20 {
		t.Errorf("toCell(100, 330) = (%d, %d), want (12, 20)", col, row)
	}
	x, y := vp.toWorld(12, 20)
	if x != 100 || y != 328 {
		t.Errorf("toWorld(12, 20) = (%.1f, %.1f), want (100, 328)", x, y)
	}

	if vp.background(0) != colorSky {
		t.Error("top row should be sky")
	}
	if vp.background(39) != colorSand {
		t.Error("bottom row should be sand")
	}
}

// TestSessionLifecycle 开始、被抓、结算、重新开始
func TestSessionLifecycle(t *testing.T) {
	tui := newTestTUI(t, 100, 40)
	tui.draw()
	if !strings.Contains(rowText(tui.screen, 40/5, 100), "Fishy Escape") {
		t.Error("title screen should show the game name")
	}

	tui.handleKey(tcell.KeyRune, ' ')
	if tui.mode != modePlaying || tui.controller == nil {
		t.Fatal("space should start a session")
	}
	if !tui.sound.IsPlaying() {
		t.Error("music should play during a session")
	}

	tui.step(0.1)
	tui.draw()
	if !strings.Contains(rowText(tui.screen, 0, 100), "Score:") {
		t.Error("HUD should show the score on the first row")
	}

	first := tui.controller.SessionID()
	tui.controller.GameOver("hook")
	if tui.sound.IsPlaying() {
		t.Error("music should stop on game over")
	}
	for i := 0; i < 12; i++ {
		tui.step(0.1)
	}
	if tui.mode != modeGameOver {
		t.Fatalf("expected game over mode, got %d", tui.mode)
	}
	tui.draw()

	tui.handleKey(tcell.KeyRune, 'r')
	if tui.mode != modePlaying || tui.controller.SessionID() == first {
		t.Error("r should restart with a new session")
	}
	t.Logf("✓ title → playing → game over → restart")
}

func TestKeysQuitAndMute(t *testing.T) {
	tui := newTestTUI(t, 80, 30)

	tui.handleKey(tcell.KeyRune, 'm')
	if !tui.sound.IsMuted() {
		t.Error("m should mute")
	}
	if tui.handleKey(tcell.KeyRune, 'q') {
		t.Error("q should quit")
	}
	if tui.handleKey(tcell.KeyEscape, 0) {
		t.Error("Esc should quit")
	}
}

// TestMouseSteering 按住鼠标时小鱼朝指针移动
func TestMouseSteering(t *testing.T) {
	tui := newTestTUI(t, 128, 40)
	tui.startSession()

	startX, _ := tui.controller.Player().Position()
	tui.handleMouse(120, 30, true)
	for i := 0; i < 5; i++ {
		tui.step(0.1)
	}
	x, _ := tui.controller.Player().Position()
	if x <= startX {
		t.Errorf("fish should swim right toward the pointer: %.1f -> %.1f", startX, x)
	}
}

func TestLoopStreamerWraps(t *testing.T) {
	frames := []synth.Frame{{1, 1}, {2, 2}, {3, 3}}
	l := &loopStreamer{frames: frames}
	buf := make([][2]float64, 7)
	n, ok := l.Stream(buf)
	if n != 7 || !ok {
		t.Fatalf("Stream returned (%d, %v)", n, ok)
	}
	want := []float64{1, 2, 3, 1, 2, 3, 1}
	for i, w := range want {
		if buf[i][0] != w {
			t.Errorf("sample %d = %.0f, want %.0f", i, buf[i][0], w)
		}
	}

	if n, ok := (&loopStreamer{}).Stream(buf); n != 0 || ok {
		t.Error("empty loop should end immediately")
	}
}
