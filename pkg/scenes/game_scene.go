package scenes

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/fishy-escape/pkg/game"
	"github.com/gonewx/fishy-escape/pkg/session"
)

var colorCaughtOverlay = color.RGBA{0x00, 0x10, 0x20, 0x70}

// GameScene 游戏进行中的场景
//
// 场景本身只负责输入和绘制；一局游戏的全部规则都在 session.Controller 中。
type GameScene struct {
	manager    *SceneManager
	controller *session.Controller
	clock      float64 // 绘制动画用的时钟（秒）
}

// NewGameScene 创建一局新的游戏
//
// 参数：
//   - manager: 场景管理器（游戏结束后切换到结算场景）
//
// 返回：
//   - *GameScene: 已开始的游戏场景
func NewGameScene(manager *SceneManager) *GameScene {
	services := manager.Services()
	scene := &GameScene{manager: manager}

	opts := session.Options{
		Config: services.Config,
		Seed:   services.nextSeed(),
		OnFinished: func(ev game.GameOverEvent) {
			manager.ShowGameOver(ev, scene.controller.LastRank())
		},
	}
	if services.Audio != nil {
		opts.Audio = services.Audio
	}
	if services.Leaderboard != nil {
		opts.Recorder = services.Leaderboard
	}

	scene.controller = session.New(opts)
	if services.Observer != nil {
		services.Observer.Attach(scene.controller.Events(), scene.controller.SessionID())
	}
	return scene
}

// Controller 返回本局的会话控制器
func (s *GameScene) Controller() *session.Controller {
	return s.controller
}

// Update 处理输入并推进一帧
func (s *GameScene) Update(deltaTime float64) {
	s.clock += deltaTime

	if isMuteTogglePressed() {
		muted := s.manager.Services().toggleMute()
		log.Printf("[GameScene] music muted=%v", muted)
	}

	pressed, x, y := GetPointerState()
	s.controller.HandlePointer(float64(x), float64(y), pressed)

	s.controller.Update(deltaTime)
}

// Draw 绘制世界、HUD 和被抓住时的提示
func (s *GameScene) Draw(screen *ebiten.Image) {
	drawWorld(screen, s.controller, s.clock)
	drawHUD(screen, s.controller, s.manager.Services().isMuted())

	if s.controller.IsGameOver() {
		world := s.controller.Config().World
		rect(screen, 0, 0, world.Width, world.Height, colorCaughtOverlay)
		drawText(screen, "Oops! You got caught.", fontSizeBanner, world.Width/2, world.Height/2-20, colorHUDText, text.AlignCenter)
	}
}
