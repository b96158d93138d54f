// fishy-tui 在终端中运行 Fishy Escape
//
// 与桌面版共用 session.Controller；画面缩放到终端字符格，鼠标按住拖动控制小鱼。
//
// 用法：
//
//	go run ./cmd/fishy-tui [-seed N] [-config file.yaml] [-events-addr :8090] [-verbose]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/fishy-escape/internal/launch"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/eventbridge"
	"github.com/gonewx/fishy-escape/pkg/game"
	"github.com/gonewx/fishy-escape/pkg/session"
)

const frameInterval = time.Second / 60

type mode int

const (
	modeTitle mode = iota
	modePlaying
	modeGameOver
)

// pointer 最近一次鼠标状态（字符格坐标）
type pointer struct {
	col, row int
	pressed  bool
}

// TUI 终端前端
type TUI struct {
	screen      tcell.Screen
	cfg         *config.GameConfig
	sound       *SoundManager
	leaderboard *game.LeaderboardManager
	hub         *eventbridge.Hub // 可为 nil

	seed     int64
	sessions int64

	mode       mode
	controller *session.Controller
	result     game.GameOverEvent
	rank       int
	pointer    pointer
}

// NewTUI 创建终端前端（不负责初始化屏幕）
func NewTUI(screen tcell.Screen, cfg *config.GameConfig, sound *SoundManager, leaderboard *game.LeaderboardManager, seed int64) *TUI {
	return &TUI{
		screen:      screen,
		cfg:         cfg,
		sound:       sound,
		leaderboard: leaderboard,
		seed:        seed,
		rank:        -1,
	}
}

func (t *TUI) viewport() viewport {
	cols, rows := t.screen.Size()
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return viewport{cols: cols, rows: rows, world: t.cfg.World}
}

func (t *TUI) nextSeed() int64 {
	if t.seed == 0 {
		return time.Now().UnixNano()
	}
	seed := t.seed + t.sessions
	t.sessions++
	return seed
}

// startSession 开始新的一局（重新开始同样调用此方法）
func (t *TUI) startSession() {
	opts := session.Options{
		Config: t.cfg,
		Seed:   t.nextSeed(),
		Audio:  t.sound,
		OnFinished: func(ev game.GameOverEvent) {
			t.result = ev
			t.rank = t.controller.LastRank()
			t.mode = modeGameOver
		},
	}
	if t.leaderboard != nil {
		opts.Recorder = t.leaderboard
	}
	t.controller = session.New(opts)
	if t.hub != nil {
		t.hub.Attach(t.controller.Events(), t.controller.SessionID())
	}
	t.pointer.pressed = false
	t.mode = modePlaying
}

func (t *TUI) entries() []game.LeaderboardEntry {
	if t.leaderboard == nil {
		return nil
	}
	return t.leaderboard.Entries()
}

// handleEvent 处理一个终端事件，返回 false 表示退出
func (t *TUI) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		col, row := ev.Position()
		t.handleMouse(col, row, ev.Buttons()&tcell.Button1 != 0)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// handleKey 处理按键，返回 false 表示退出
func (t *TUI) handleKey(key tcell.Key, r rune) bool {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC {
		return false
	}
	if key == tcell.KeyEnter {
		r = ' '
	} else if key != tcell.KeyRune {
		return true
	}

	switch r {
	case 'q', 'Q':
		return false
	case 'm', 'M':
		t.sound.ToggleMute()
	case 'r', 'R':
		t.startSession()
	case ' ':
		if t.mode != modePlaying {
			t.startSession()
		}
	}
	return true
}

// handleMouse 记录指针状态；在开始界面按下即开始游戏
func (t *TUI) handleMouse(col, row int, pressed bool) {
	if pressed && !t.pointer.pressed && t.mode == modeTitle {
		t.startSession()
	}
	t.pointer = pointer{col: col, row: row, pressed: pressed}
}

// step 推进一帧
func (t *TUI) step(dt float64) {
	if t.mode != modePlaying || t.controller == nil {
		return
	}
	x, y := t.viewport().toWorld(t.pointer.col, t.pointer.row)
	t.controller.HandlePointer(x, y, t.pointer.pressed)
	t.controller.Update(dt)
}

// draw 绘制当前画面
func (t *TUI) draw() {
	t.screen.Clear()
	c := canvas{screen: t.screen, vp: t.viewport()}
	switch t.mode {
	case modeTitle:
		c.title(t.entries())
	case modePlaying:
		c.session(t.controller)
		c.hud(t.controller, t.sound.IsMuted())
	case modeGameOver:
		c.gameOver(t.result, t.rank, t.entries())
	}
	t.screen.Show()
}

// run 主循环：事件在独立 goroutine 中读取，逻辑与绘制在此 goroutine 中执行
func (t *TUI) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !t.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			t.step(frameInterval.Seconds())
			t.draw()
		}
	}
}

func main() {
	opts, err := launch.ParseOS("fishy-tui")
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "启动参数错误: %v\n", err)
		os.Exit(2)
	}
	// 终端被 tcell 接管，日志默认丢弃
	if !opts.Verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := opts.LoadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏配置加载失败: %v\n", err)
		os.Exit(1)
	}

	storage, err := game.OpenStorage("")
	if err != nil {
		log.Printf("[TUI] Warning: %v (leaderboard will not persist)", err)
		storage = nil
	}
	settings := game.NewSettingsManager(storage)
	leaderboard := game.NewLeaderboardManager(storage)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "终端初始化失败: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "终端初始化失败: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.HideCursor()

	sound := NewSoundManager(!settings.GetSettings().MusicEnabled)
	if err := sound.Initialize(); err != nil {
		// 没有声卡时照常运行
		log.Printf("[TUI] Audio initialization failed: %v", err)
	}

	tui := NewTUI(screen, cfg, sound, leaderboard, opts.Seed)

	ctx, cancel := context.WithCancel(context.Background())
	if opts.EventsAddr != "" {
		tui.hub = eventbridge.NewHub()
		go func() {
			if err := tui.hub.Serve(ctx, opts.EventsAddr); err != nil {
				log.Printf("[TUI] Warning: %v", err)
			}
		}()
	}

	tui.run()

	cancel()
	settings.SetMusicEnabled(!sound.IsMuted())
	if err := settings.Save(); err != nil {
		log.Printf("[TUI] Warning: failed to save settings: %v", err)
	}
	sound.Cleanup()
	screen.Fini()
}
