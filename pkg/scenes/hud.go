package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/session"
	"github.com/gonewx/fishy-escape/pkg/utils"
)

var (
	colorHUDText  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorHUDPanel = color.RGBA{0x00, 0x00, 0x00, 0x50}
	colorHUDBar   = color.RGBA{0x30, 0x30, 0x30, 0xa0}
)

const (
	indicatorRadius = 16
	indicatorBarW   = 40
	indicatorBarH   = 5
)

// drawHUD 绘制分数、计时器、道具指示器和音乐开关提示
func drawHUD(screen *ebiten.Image, c *session.Controller, muted bool) {
	state := c.State()
	width := c.Config().World.Width
	height := c.Config().World.Height

	rect(screen, config.HUDScoreX-8, config.HUDScoreY-4, 170, 34, colorHUDPanel)
	drawText(screen, fmt.Sprintf("Score: %d", state.Score()), fontSizeHUD, config.HUDScoreX, config.HUDScoreY, colorHUDText, text.AlignStart)

	timerX := width - config.HUDTimerOffsetX
	rect(screen, timerX-8, config.HUDScoreY-4, 110, 34, colorHUDPanel)
	drawText(screen, utils.FormatTime(state.ElapsedMs()), fontSizeHUD, timerX, config.HUDScoreY, colorHUDText, text.AlignStart)

	for i, ind := range c.Indicators() {
		x := float64(config.HUDIndicatorX)
		y := float64(config.HUDIndicatorY + i*config.HUDIndicatorSpacing)
		clr := powerUpColor(ind.Type)

		fillEllipse(screen, x, y, indicatorRadius, indicatorRadius, clr)
		ring(screen, x, y, indicatorRadius, 2, colorHUDText)
		drawText(screen, powerUpLabel(ind.Type), fontSizeSmall, x, y-9, colorEye, text.AlignCenter)

		barX := x - indicatorBarW/2
		barY := y + indicatorRadius + 4
		rect(screen, barX, barY, indicatorBarW, indicatorBarH, colorHUDBar)
		rect(screen, barX, barY, indicatorBarW*ind.Remaining, indicatorBarH, clr)
	}

	drawText(screen, musicLabel(muted), fontSizeSmall, 12, height-24, withAlpha(colorHUDText, 0.8), text.AlignStart)
}
