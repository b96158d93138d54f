// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	fishaudio "github.com/gonewx/fishy-escape/internal/audio"
	"github.com/gonewx/fishy-escape/internal/audio/synth"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/eventbridge"
	"github.com/gonewx/fishy-escape/pkg/game"
	"github.com/gonewx/fishy-escape/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// GameConfig 游戏参数，为 nil 时使用内置默认值
	GameConfig *config.GameConfig
	// Seed 固定随机种子（0 表示每局随机）
	Seed int64
	// EventsAddr 事件桥监听地址（如 ":8090"），为空则不启动
	EventsAddr string
	// AppName 持久化存储使用的应用名，为空时使用 game.DefaultAppName
	AppName string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *scenes.SceneManager
	settings                 *game.SettingsManager
	stopEvents               context.CancelFunc
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 存储不可用时降级为内存模式（排行榜和设置不会保存），不会返回错误。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig := cfg.GameConfig
	if gameConfig == nil {
		gameConfig = config.DefaultGameConfig()
	}

	storage, err := game.OpenStorage(cfg.AppName)
	if err != nil {
		log.Printf("[App] Warning: %v (leaderboard and settings will not persist)", err)
		storage = nil
	}
	settings := game.NewSettingsManager(storage)
	leaderboard := game.NewLeaderboardManager(storage)

	// 初始化音频上下文
	audioContext := audio.NewContext(synth.SampleRate)
	audioManager := fishaudio.NewAudioManager(audioContext, settings)
	log.Printf("[App] AudioManager initialized")

	services := &scenes.Services{
		Config:      gameConfig,
		Leaderboard: leaderboard,
		Audio:       audioManager,
		Seed:        cfg.Seed,
	}

	a := &App{
		settings: settings,
		verbose:  cfg.Verbose,
	}

	if cfg.EventsAddr != "" {
		hub := eventbridge.NewHub()
		services.Observer = hub
		ctx, cancel := context.WithCancel(context.Background())
		a.stopEvents = cancel
		go func() {
			if err := hub.Serve(ctx, cfg.EventsAddr); err != nil {
				log.Printf("[App] Warning: %v", err)
			}
		}()
	}

	a.sceneManager = scenes.NewSceneManager(services)
	a.sceneManager.ShowStart()
	return a, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		if !fullscreen {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(fullscreen)
		if err := a.settings.Save(); err != nil {
			log.Printf("[App] Warning: failed to save settings: %v", err)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Settings 返回设置管理器（main 用于读取启动全屏设置）
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// Close 停止事件桥并保存设置
func (a *App) Close() {
	if a.stopEvents != nil {
		a.stopEvents()
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings on exit: %v", err)
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
