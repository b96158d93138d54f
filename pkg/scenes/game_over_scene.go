package scenes

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/game"
	"github.com/gonewx/fishy-escape/pkg/utils"
)

// gameOverInputDelay 结算界面出现后忽略输入的时间，避免误触立即重开
const gameOverInputDelay = 0.5

// GameOverScene 结算界面
type GameOverScene struct {
	manager *SceneManager
	result  game.GameOverEvent
	rank    int
	world   config.WorldConfig
	clock   float64
}

// NewGameOverScene 创建结算界面
//
// 参数：
//   - result: 本局结果
//   - rank: 排行榜下标（未入榜为 -1）
func NewGameOverScene(manager *SceneManager, result game.GameOverEvent, rank int) *GameOverScene {
	cfg := manager.Services().Config
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	return &GameOverScene{
		manager: manager,
		result:  result,
		rank:    rank,
		world:   cfg.World,
	}
}

// Update 确认键重新开始，Esc 返回开始界面
func (s *GameOverScene) Update(deltaTime float64) {
	s.clock += deltaTime
	if s.clock < gameOverInputDelay {
		return
	}
	if isBackPressed() {
		s.manager.ShowStart()
		return
	}
	if isConfirmPressed() {
		s.manager.StartSession()
	}
}

// rankMessage 名次提示
func (s *GameOverScene) rankMessage() string {
	if s.rank < 0 {
		return "Not fast enough for the leaderboard this time"
	}
	return fmt.Sprintf("New leaderboard entry: #%d", s.rank+1)
}

// Draw 绘制结算信息
func (s *GameOverScene) Draw(screen *ebiten.Image) {
	rect(screen, 0, 0, s.world.Width, s.world.Height, colorWaterBottom)

	cx := s.world.Width / 2
	drawText(screen, "Game Over", fontSizeTitle, cx, 70, colorPowerBanner, text.AlignCenter)
	drawText(screen, "Oops! You got caught.", fontSizeHUD, cx, 136, colorHUDText, text.AlignCenter)
	drawText(screen, fmt.Sprintf("Final Score: %d", s.result.Score), fontSizeBanner, cx, 176, colorHUDText, text.AlignCenter)
	drawText(screen, "Time: "+utils.FormatTime(s.result.Time), fontSizeHUD, cx, 222, colorHUDText, text.AlignCenter)
	drawText(screen, s.rankMessage(), fontSizeSmall, cx, 254, withAlpha(colorHUDText, 0.8), text.AlignCenter)

	drawLeaderboard(screen, s.manager.Services().leaderboardEntries(), cx, 290, s.rank)

	if s.clock >= gameOverInputDelay {
		alpha := 0.6 + 0.4*pulse(s.clock)
		drawText(screen, "Click or press Space to play again  ·  Esc for menu", fontSizeHUD, cx, s.world.Height-70, withAlpha(colorHUDText, alpha), text.AlignCenter)
	}
}

// pulse 在 [0, 1] 之间缓慢起伏，用于闪烁提示
func pulse(t float64) float64 {
	return 0.5 + 0.5*math.Sin(t*3)
}
