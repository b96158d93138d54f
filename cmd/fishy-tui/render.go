package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/ecs"
	"github.com/gonewx/fishy-escape/pkg/game"
	"github.com/gonewx/fishy-escape/pkg/session"
	"github.com/gonewx/fishy-escape/pkg/utils"
)

var (
	colorSky       = tcell.NewRGBColor(0x6c, 0xc4, 0xf0)
	colorWaterTop  = [3]float64{0x1f, 0x8f, 0xc9}
	colorWaterDeep = [3]float64{0x08, 0x2f, 0x5c}
	colorSand      = tcell.NewRGBColor(0xd9, 0xc2, 0x8a)
	colorText      = tcell.ColorWhite
	colorBanner    = tcell.NewRGBColor(0xff, 0xe0, 0x4a)
)

// viewport 世界坐标与终端字符格之间的映射
type viewport struct {
	cols, rows int
	world      config.WorldConfig
}

func (v viewport) cellW() float64 { return v.world.Width / float64(v.cols) }
func (v viewport) cellH() float64 { return v.world.Height / float64(v.rows) }

// toCell 把世界坐标映射到字符格（可能越界，由调用方裁剪）
func (v viewport) toCell(x, y float64) (int, int) {
	return int(math.Floor(x / v.cellW())), int(math.Floor(y / v.cellH()))
}

// toWorld 返回字符格中心的世界坐标
func (v viewport) toWorld(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * v.cellW(), (float64(row) + 0.5) * v.cellH()
}

// background 返回某一行的背景色
func (v viewport) background(row int) tcell.Color {
	_, y := v.toWorld(0, row)
	water := v.world.WaterLine()
	switch {
	case row == v.rows-1:
		return colorSand
	case y < water:
		return colorSky
	default:
		t := utils.Clamp((y-water)/(v.world.Height-water), 0, 1)
		return tcell.NewRGBColor(
			int32(utils.Lerp(colorWaterTop[0], colorWaterDeep[0], t)),
			int32(utils.Lerp(colorWaterTop[1], colorWaterDeep[1], t)),
			int32(utils.Lerp(colorWaterTop[2], colorWaterDeep[2], t)),
		)
	}
}

// canvas 带视口的绘制目标
type canvas struct {
	screen tcell.Screen
	vp     viewport
}

func (c canvas) put(col, row int, r rune, fg tcell.Color) {
	if col < 0 || row < 0 || col >= c.vp.cols || row >= c.vp.rows {
		return
	}
	style := tcell.StyleDefault.Background(c.vp.background(row)).Foreground(fg)
	c.screen.SetContent(col, row, r, nil, style)
}

func (c canvas) putWorld(x, y float64, r rune, fg tcell.Color) {
	col, row := c.vp.toCell(x, y)
	c.put(col, row, r, fg)
}

func (c canvas) text(col, row int, s string, fg tcell.Color) {
	for i, r := range []rune(s) {
		c.put(col+i, row, r, fg)
	}
}

func (c canvas) centered(row int, s string, fg tcell.Color) {
	c.text((c.vp.cols-len([]rune(s)))/2, row, s, fg)
}

// backdrop 天空、水体、波浪和海床
func (c canvas) backdrop(phase float64) {
	waterRow := int(c.vp.world.WaterLine() / c.vp.cellH())
	for row := 0; row < c.vp.rows; row++ {
		for col := 0; col < c.vp.cols; col++ {
			r := ' '
			if row == waterRow {
				r = '~'
				if math.Sin(float64(col)*0.6+phase*2) > 0.3 {
					r = '≈'
				}
			}
			c.put(col, row, r, tcell.NewRGBColor(0xd8, 0xf4, 0xff))
		}
	}
}

func (c canvas) ambient(em *ecs.EntityManager) {
	for _, id := range ecs.GetEntitiesWith2[*components.CloudComponent, *components.PositionComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, row := c.vp.toCell(pos.X, pos.Y)
		c.text(col-1, row, "☁☁☁", tcell.ColorWhite)
	}
	for _, id := range ecs.GetEntitiesWith2[*components.BackgroundFishComponent, *components.PositionComponent](em) {
		fish, _ := ecs.GetComponent[*components.BackgroundFishComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		r := '>'
		if fish.FacingLeft {
			r = '<'
		}
		c.putWorld(pos.X, pos.Y, r, tcell.NewRGBColor(0x9c, 0xd6, 0xe8))
	}
	for _, id := range ecs.GetEntitiesWith2[*components.BubbleComponent, *components.PositionComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		c.putWorld(pos.X, pos.Y, '°', tcell.NewRGBColor(0xe0, 0xf7, 0xff))
	}
}

func powerUpColor(typ components.PowerUpType) tcell.Color {
	switch typ {
	case components.PowerUpSpeed:
		return tcell.NewRGBColor(0xff, 0xd7, 0x00)
	case components.PowerUpInvincibility:
		return tcell.NewRGBColor(0x00, 0xe5, 0xff)
	default:
		return tcell.NewRGBColor(0xff, 0x45, 0x45)
	}
}

func powerUpRune(typ components.PowerUpType) rune {
	switch typ {
	case components.PowerUpSpeed:
		return 'S'
	case components.PowerUpInvincibility:
		return 'I'
	default:
		return 'E'
	}
}

// session 绘制一局游戏的实体
func (c canvas) session(ctrl *session.Controller) {
	em := ctrl.EntityManager()
	c.backdrop(ctrl.Background().WavePhase())
	c.ambient(em)

	for _, id := range ecs.GetEntitiesWith2[*components.ObstacleComponent, *components.PositionComponent](em) {
		obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		switch obstacle.Kind {
		case components.ObstacleCoral:
			c.putWorld(pos.X, pos.Y, '♣', tcell.NewRGBColor(0xff, 0x6f, 0x91))
		case components.ObstacleStone:
			c.putWorld(pos.X, pos.Y, '●', tcell.NewRGBColor(0x80, 0x80, 0x88))
		default:
			c.putWorld(pos.X, pos.Y, '⌇', tcell.NewRGBColor(0x2e, 0xa8, 0x4f))
		}
	}

	hooks := make(map[int]*components.PositionComponent)
	for _, id := range ctrl.Hooks().Hooks() {
		hook, _ := ecs.GetComponent[*components.HookComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if hook != nil && pos != nil {
			hooks[hook.Slot] = pos
		}
	}
	for slot, id := range ctrl.Fishermen().Slots() {
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		if !ok {
			continue
		}
		col, row := c.vp.toCell(pos.X, pos.Y)
		c.text(col-2, row, "\\___/", tcell.NewRGBColor(0x8b, 0x4a, 0x2b))
		c.put(col, row-1, '☺', tcell.NewRGBColor(0xf2, 0xc1, 0x8d))

		if hookPos, ok := hooks[slot]; ok {
			tipX, tipY := ctrl.Fishermen().RodTip(slot)
			_, tipRow := c.vp.toCell(tipX, tipY)
			hookCol, hookRow := c.vp.toCell(hookPos.X, hookPos.Y)
			for r := tipRow + 1; r < hookRow; r++ {
				c.put(hookCol, r, '│', tcell.NewRGBColor(0xf0, 0xf0, 0xf0))
			}
			c.put(hookCol, hookRow, 'J', tcell.NewRGBColor(0xc8, 0xc8, 0xd0))
		}
	}

	for _, id := range ctrl.PowerUps().PowerUps() {
		pu, _ := ecs.GetComponent[*components.PowerUpComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if pu != nil && pos != nil {
			c.putWorld(pos.X, pos.Y, powerUpRune(pu.Type), powerUpColor(pu.Type))
		}
	}

	if player := ctrl.Player(); !player.IsHidden() {
		x, y := player.Position()
		col, row := c.vp.toCell(x, y)
		fish := "><>"
		if player.FacingLeft() {
			fish = "<><"
		}
		fg := tcell.NewRGBColor(0xff, 0x8c, 0x1a)
		if ctrl.Effects().IsInvincible {
			fg = powerUpColor(components.PowerUpInvincibility)
		}
		c.text(col-1, row, fish, fg)
	}

	for _, id := range ctrl.Seagulls().Seagulls() {
		gull, _ := ecs.GetComponent[*components.SeagullComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if gull == nil || pos == nil {
			continue
		}
		r := 'v'
		if gull.State == components.SeagullDiving {
			r = 'V'
		}
		c.putWorld(pos.X, pos.Y, r, tcell.ColorWhite)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.EffectComponent, *components.PositionComponent](em) {
		effect, _ := ecs.GetComponent[*components.EffectComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		switch effect.Kind {
		case components.EffectMilestoneBanner:
			_, row := c.vp.toCell(pos.X, pos.Y)
			c.centered(row, effect.Text, colorBanner)
		case components.EffectBurstBubble:
			c.putWorld(pos.X, pos.Y, 'o', tcell.NewRGBColor(0xe0, 0xf7, 0xff))
		}
	}
}

// hud 分数、计时器、道具和音乐状态
func (c canvas) hud(ctrl *session.Controller, muted bool) {
	state := ctrl.State()
	c.text(1, 0, fmt.Sprintf("Score: %d", state.Score()), colorText)
	timer := utils.FormatTime(state.ElapsedMs())
	c.text(c.vp.cols-len(timer)-1, 0, timer, colorText)

	for i, ind := range ctrl.Indicators() {
		bar := int(math.Ceil(ind.Remaining * 8))
		label := fmt.Sprintf("%c %s", powerUpRune(ind.Type), repeatRune('▮', bar))
		c.text(1, 2+i, label, powerUpColor(ind.Type))
	}

	music := "[m] music: on"
	if muted {
		music = "[m] music: off"
	}
	c.text(1, c.vp.rows-1, music+"  [r] restart  [q] quit", tcell.ColorBlack)

	if ctrl.IsGameOver() {
		c.centered(c.vp.rows/2, "Oops! You got caught.", colorText)
	}
}

// title 开始界面
func (c canvas) title(entries []game.LeaderboardEntry) {
	c.backdrop(0)
	c.centered(c.vp.rows/5, "Fishy Escape", colorBanner)
	c.centered(c.vp.rows/5+2, "Swim through dangerous waters and avoid the fishermen's hooks!", colorText)
	c.leaderboard(entries, c.vp.rows/5+5, -1)
	c.centered(c.vp.rows-4, "Press Space or click to start", colorText)
}

// gameOver 结算界面
func (c canvas) gameOver(result game.GameOverEvent, rank int, entries []game.LeaderboardEntry) {
	c.backdrop(0)
	top := c.vp.rows / 6
	c.centered(top, "Game Over", colorBanner)
	c.centered(top+2, "Oops! You got caught.", colorText)
	c.centered(top+3, fmt.Sprintf("Final Score: %d", result.Score), colorText)
	c.centered(top+4, "Time: "+utils.FormatTime(result.Time), colorText)
	c.leaderboard(entries, top+7, rank)
	c.centered(c.vp.rows-4, "Press r or Space to play again, q to quit", colorText)
}

func (c canvas) leaderboard(entries []game.LeaderboardEntry, top, highlight int) {
	c.centered(top, "Longest Escapes", colorBanner)
	if len(entries) == 0 {
		c.centered(top+2, "No escapes recorded yet", colorText)
		return
	}
	for i, e := range entries {
		fg := colorText
		if i == highlight {
			fg = tcell.NewRGBColor(0x7c, 0xff, 0x9a)
		}
		c.centered(top+2+i, fmt.Sprintf("%d.  %s   %s", i+1, utils.FormatTime(e.Time), e.Date), fg)
	}
}

func repeatRune(r rune, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}
