package scenes

import (
	"image/color"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/ecs"
	"github.com/gonewx/fishy-escape/pkg/game"
	"github.com/gonewx/fishy-escape/pkg/systems"
)

var colorHighlight = color.RGBA{0x7c, 0xff, 0x9a, 0xff}

const (
	title    = "Fishy Escape"
	subtitle = "Swim through dangerous waters and avoid the fishermen's hooks!"
)

// StartScene 开始界面：海洋背景、标题、排行榜
type StartScene struct {
	manager    *SceneManager
	em         *ecs.EntityManager
	scheduler  *game.Scheduler
	background *systems.BackgroundSystem
	world      config.WorldConfig
	clock      float64
}

// NewStartScene 创建开始界面，背景使用与游戏相同的环境系统
func NewStartScene(manager *SceneManager) *StartScene {
	cfg := manager.Services().Config
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	em := ecs.NewEntityManager()
	scheduler := game.NewScheduler()
	return &StartScene{
		manager:    manager,
		em:         em,
		scheduler:  scheduler,
		background: systems.NewBackgroundSystem(em, cfg, rand.New(rand.NewSource(1)), scheduler),
		world:      cfg.World,
	}
}

// Update 点击或按空格开始游戏
func (s *StartScene) Update(deltaTime float64) {
	s.clock += deltaTime
	s.scheduler.Advance(deltaTime)
	s.background.Update(deltaTime)
	s.em.RemoveMarkedEntities()

	if isMuteTogglePressed() {
		muted := s.manager.Services().toggleMute()
		log.Printf("[StartScene] music muted=%v", muted)
	}
	if isConfirmPressed() {
		s.manager.StartSession()
	}
}

// Draw 绘制标题、说明和排行榜
func (s *StartScene) Draw(screen *ebiten.Image) {
	drawBackdrop(screen, s.em, s.background, s.world)
	rect(screen, 0, 0, s.world.Width, s.world.Height, colorCaughtOverlay)

	cx := s.world.Width / 2
	drawText(screen, title, fontSizeTitle, cx, 90, colorPowerBanner, text.AlignCenter)
	drawText(screen, subtitle, fontSizeHUD, cx, 160, colorHUDText, text.AlignCenter)

	drawLeaderboard(screen, s.manager.Services().leaderboardEntries(), cx, 230, -1)

	blink := 0.6 + 0.4*pulse(s.clock)
	drawText(screen, "Click or press Space to start", fontSizeHUD, cx, s.world.Height-110, withAlpha(colorHUDText, blink), text.AlignCenter)
	drawText(screen, musicLabel(s.manager.Services().isMuted()), fontSizeSmall, 12, s.world.Height-24, withAlpha(colorHUDText, 0.8), text.AlignStart)
}

// drawLeaderboard 绘制排行榜，highlight 为需要高亮的名次下标（-1 表示不高亮）
func drawLeaderboard(screen *ebiten.Image, entries []game.LeaderboardEntry, cx, top float64, highlight int) {
	drawText(screen, "Longest Escapes", fontSizeHUD, cx, top, colorPowerBanner, text.AlignCenter)
	for i, row := range leaderboardLines(entries) {
		clr := colorHUDText
		if i == highlight {
			clr = colorHighlight
		}
		drawText(screen, row, fontSizeHUD, cx, top+36+float64(i)*28, clr, text.AlignCenter)
	}
}
