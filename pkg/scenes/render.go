package scenes

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/ecs"
	"github.com/gonewx/fishy-escape/pkg/session"
	"github.com/gonewx/fishy-escape/pkg/systems"
	"github.com/gonewx/fishy-escape/pkg/utils"
)

// 调色板
var (
	colorSkyTop       = color.RGBA{0x6c, 0xc4, 0xf0, 0xff}
	colorSkyBottom    = color.RGBA{0xbf, 0xe8, 0xff, 0xff}
	colorSun          = color.RGBA{0xff, 0xe0, 0x7a, 0xff}
	colorCloud        = color.RGBA{0xff, 0xff, 0xff, 0xe0}
	colorWaterTop     = color.RGBA{0x1f, 0x8f, 0xc9, 0xff}
	colorWaterBottom  = color.RGBA{0x08, 0x2f, 0x5c, 0xff}
	colorWave         = color.RGBA{0xd8, 0xf4, 0xff, 0xc0}
	colorSand         = color.RGBA{0xd9, 0xc2, 0x8a, 0xff}
	colorSandDark     = color.RGBA{0xb8, 0x9e, 0x66, 0xff}
	colorBgFish       = color.RGBA{0x9c, 0xd6, 0xe8, 0x60}
	colorBubble       = color.RGBA{0xe0, 0xf7, 0xff, 0x90}
	colorHull         = color.RGBA{0x8b, 0x4a, 0x2b, 0xff}
	colorFisherman    = color.RGBA{0xf2, 0xc1, 0x8d, 0xff}
	colorFishermanHat = color.RGBA{0xe6, 0xb4, 0x22, 0xff}
	colorLine         = color.RGBA{0xf0, 0xf0, 0xf0, 0xb0}
	colorHook         = color.RGBA{0xc8, 0xc8, 0xd0, 0xff}
	colorCoral        = color.RGBA{0xff, 0x6f, 0x91, 0xff}
	colorStone        = color.RGBA{0x80, 0x80, 0x88, 0xff}
	colorPlant        = color.RGBA{0x2e, 0xa8, 0x4f, 0xff}
	colorSeagull      = color.RGBA{0xf8, 0xf8, 0xf8, 0xff}
	colorBeak         = color.RGBA{0xff, 0xa5, 0x00, 0xff}
	colorPlayer       = color.RGBA{0xff, 0x8c, 0x1a, 0xff}
	colorPlayerFin    = color.RGBA{0xe0, 0x60, 0x10, 0xff}
	colorEye          = color.RGBA{0x10, 0x10, 0x10, 0xff}
	colorWhite        = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// powerUpColor 每种道具的颜色
func powerUpColor(typ components.PowerUpType) color.RGBA {
	switch typ {
	case components.PowerUpSpeed:
		return color.RGBA{0xff, 0xd7, 0x00, 0xff}
	case components.PowerUpInvincibility:
		return color.RGBA{0x00, 0xe5, 0xff, 0xff}
	case components.PowerUpEat:
		return color.RGBA{0xff, 0x45, 0x45, 0xff}
	default:
		return colorWhite
	}
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = utils.Clamp(t, 0, 1)
	return color.RGBA{
		R: uint8(utils.Lerp(float64(a.R), float64(b.R), t)),
		G: uint8(utils.Lerp(float64(a.G), float64(b.G), t)),
		B: uint8(utils.Lerp(float64(a.B), float64(b.B), t)),
		A: uint8(utils.Lerp(float64(a.A), float64(b.A), t)),
	}
}

// withAlpha 按比例缩放透明度（预乘 alpha）
func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	alpha = utils.Clamp(alpha, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

var circleImg *ebiten.Image

const circleImgRadius = 32

// circleImage 白色实心圆，用于缩放绘制椭圆
func circleImage() *ebiten.Image {
	if circleImg == nil {
		circleImg = ebiten.NewImage(circleImgRadius*2, circleImgRadius*2)
		vector.DrawFilledCircle(circleImg, circleImgRadius, circleImgRadius, circleImgRadius, color.White, true)
	}
	return circleImg
}

// fillEllipse 绘制实心椭圆
func fillEllipse(dst *ebiten.Image, cx, cy, rx, ry float64, clr color.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-circleImgRadius, -circleImgRadius)
	op.GeoM.Scale(rx/circleImgRadius, ry/circleImgRadius)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(circleImage(), op)
}

func line(dst *ebiten.Image, x0, y0, x1, y1, width float64, clr color.Color) {
	vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}

func rect(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), clr, true)
}

func ring(dst *ebiten.Image, cx, cy, r, width float64, clr color.Color) {
	vector.StrokeCircle(dst, float32(cx), float32(cy), float32(r), float32(width), clr, true)
}

// drawBackdrop 绘制天空、水体、海床和背景装饰
func drawBackdrop(screen *ebiten.Image, em *ecs.EntityManager, bg *systems.BackgroundSystem, world config.WorldConfig) {
	water := world.WaterLine()

	const skyBands = 8
	for i := 0; i < skyBands; i++ {
		y := water * float64(i) / skyBands
		rect(screen, 0, y, world.Width, water/skyBands+1, lerpColor(colorSkyTop, colorSkyBottom, float64(i)/skyBands))
	}
	fillEllipse(screen, world.Width-120, 70, 36, 36, colorSun)

	for _, id := range ecs.GetEntitiesWith2[*components.CloudComponent, *components.PositionComponent](em) {
		cloud, _ := ecs.GetComponent[*components.CloudComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		w := cloud.Width
		fillEllipse(screen, pos.X, pos.Y, w/2, w/5, colorCloud)
		fillEllipse(screen, pos.X-w/5, pos.Y-w/8, w/4, w/5, colorCloud)
		fillEllipse(screen, pos.X+w/6, pos.Y-w/7, w/5, w/6, colorCloud)
	}

	const waterBands = 10
	depth := world.Height - water
	for i := 0; i < waterBands; i++ {
		y := water + depth*float64(i)/waterBands
		rect(screen, 0, y, world.Width, depth/waterBands+1, lerpColor(colorWaterTop, colorWaterBottom, float64(i)/waterBands))
	}

	phase := 0.0
	offset := 0.0
	if bg != nil {
		phase = bg.WavePhase()
		offset = bg.SeabedOffset()
	}

	// 海床：随滚动偏移的沙丘
	sandTop := world.Height - 24
	rect(screen, 0, sandTop, world.Width, world.Height-sandTop, colorSand)
	for x := -offset; x < world.Width+systems.SeabedTileWidth; x += systems.SeabedTileWidth / 4 {
		fillEllipse(screen, x, sandTop+4, 40, 10, colorSand)
		fillEllipse(screen, x+20, sandTop+14, 6, 3, colorSandDark)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.BackgroundFishComponent, *components.PositionComponent](em) {
		fish, _ := ecs.GetComponent[*components.BackgroundFishComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		size := 6 + 6*fish.DepthLevel
		fillEllipse(screen, pos.X, pos.Y, size, size/2, colorBgFish)
		tail := size
		if fish.FacingLeft {
			tail = -size
		}
		line(screen, pos.X-tail, pos.Y, pos.X-tail*1.5, pos.Y-size/2, 2, colorBgFish)
		line(screen, pos.X-tail, pos.Y, pos.X-tail*1.5, pos.Y+size/2, 2, colorBgFish)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.BubbleComponent, *components.PositionComponent](em) {
		bubble, _ := ecs.GetComponent[*components.BubbleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		ring(screen, pos.X, pos.Y, bubble.Radius, 1, colorBubble)
	}

	// 水面波浪
	const waveStep = 16.0
	prevX, prevY := 0.0, water+4*math.Sin(phase*2)
	for x := waveStep; x <= world.Width+waveStep; x += waveStep {
		y := water + 4*math.Sin(x*0.02+phase*2)
		line(screen, prevX, prevY, x, y, 3, colorWave)
		prevX, prevY = x, y
	}
}

// drawFishermen 绘制渔船、渔夫、鱼竿和鱼线
func drawFishermen(screen *ebiten.Image, c *session.Controller) {
	em := c.EntityManager()
	hooksBySlot := make(map[int]*components.PositionComponent)
	for _, id := range c.Hooks().Hooks() {
		hook, _ := ecs.GetComponent[*components.HookComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if hook != nil && pos != nil {
			hooksBySlot[hook.Slot] = pos
		}
	}

	for slot, id := range c.Fishermen().Slots() {
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		if !ok {
			continue
		}
		// 船体
		rect(screen, pos.X-40, pos.Y, 80, 14, colorHull)
		fillEllipse(screen, pos.X, pos.Y+14, 40, 8, colorHull)
		// 渔夫
		rect(screen, pos.X-6, pos.Y-22, 12, 22, colorFishermanHat)
		fillEllipse(screen, pos.X, pos.Y-28, 7, 7, colorFisherman)
		rect(screen, pos.X-10, pos.Y-36, 20, 4, colorFishermanHat)

		tipX, tipY := c.Fishermen().RodTip(slot)
		line(screen, pos.X+4, pos.Y-14, tipX, tipY, 2, colorHull)
		if hookPos, ok := hooksBySlot[slot]; ok {
			line(screen, tipX, tipY, hookPos.X, hookPos.Y-8, 1, colorLine)
		}
	}
}

// drawHooks 绘制鱼钩（J 形）
func drawHooks(screen *ebiten.Image, em *ecs.EntityManager) {
	for _, id := range ecs.GetEntitiesWith2[*components.HookComponent, *components.PositionComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		line(screen, pos.X, pos.Y-12, pos.X, pos.Y+6, 3, colorHook)
		line(screen, pos.X, pos.Y+6, pos.X-6, pos.Y+10, 3, colorHook)
		line(screen, pos.X-6, pos.Y+10, pos.X-9, pos.Y+2, 3, colorHook)
		fillEllipse(screen, pos.X, pos.Y-12, 3, 3, colorHook)
	}
}

// drawObstacles 绘制珊瑚、石头和水草
func drawObstacles(screen *ebiten.Image, em *ecs.EntityManager, clock float64) {
	for _, id := range ecs.GetEntitiesWith3[*components.ObstacleComponent, *components.PositionComponent, *components.CollisionComponent](em) {
		obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
		left, top, right, bottom := col.Bounds(pos)
		w, h := right-left, bottom-top

		switch obstacle.Kind {
		case components.ObstacleCoral:
			// 分叉的珊瑚枝
			for i := 0; i < 5; i++ {
				bx := left + w*(float64(i)+0.5)/5
				bh := h * (0.6 + 0.4*math.Abs(math.Sin(float64(i)*1.7)))
				line(screen, bx, bottom, bx, bottom-bh, w/7, colorCoral)
				fillEllipse(screen, bx, bottom-bh, w/10, w/10, colorCoral)
			}
		case components.ObstacleStone:
			fillEllipse(screen, pos.X, pos.Y, w/2, h/2, colorStone)
			fillEllipse(screen, pos.X-w/6, pos.Y-h/6, w/6, h/8, lerpColor(colorStone, colorWhite, 0.3))
		default:
			// 水草随时间摆动
			sway := 6 * math.Sin(clock*2+pos.X*0.05)
			const segments = 6
			px, py := pos.X, bottom
			for s := 1; s <= segments; s++ {
				t := float64(s) / segments
				nx := pos.X + sway*t*t
				ny := bottom - h*t
				line(screen, px, py, nx, ny, w*(1-t*0.5), colorPlant)
				px, py = nx, ny
			}
		}
	}
}

// drawPowerUps 绘制道具（发光的圆球和字母）
func drawPowerUps(screen *ebiten.Image, em *ecs.EntityManager, clock float64) {
	for _, id := range ecs.GetEntitiesWith3[*components.PowerUpComponent, *components.PositionComponent, *components.CollisionComponent](em) {
		pu, _ := ecs.GetComponent[*components.PowerUpComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
		clr := powerUpColor(pu.Type)
		r := col.Width / 2

		glow := 0.4 + 0.2*math.Sin(clock*4)
		fillEllipse(screen, pos.X, pos.Y, r*1.6, r*1.6, withAlpha(clr, glow))
		fillEllipse(screen, pos.X, pos.Y, r, r, clr)
		drawText(screen, powerUpLabel(pu.Type), fontSizeSmall, pos.X, pos.Y-9, colorEye, text.AlignCenter)
	}
}

// drawSeagulls 绘制海鸥（扇动的翅膀）
func drawSeagulls(screen *ebiten.Image, em *ecs.EntityManager, clock float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.SeagullComponent, *components.PositionComponent](em) {
		gull, _ := ecs.GetComponent[*components.SeagullComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

		flap := 8 * math.Sin(clock*10+pos.X*0.1)
		if gull.State == components.SeagullDiving {
			flap = -4 // 俯冲时收翅
		}
		fillEllipse(screen, pos.X, pos.Y, 12, 6, colorSeagull)
		line(screen, pos.X, pos.Y, pos.X-18, pos.Y-flap, 3, colorSeagull)
		line(screen, pos.X, pos.Y, pos.X+18, pos.Y-flap, 3, colorSeagull)

		beak := 14.0
		if gull.FacingLeft {
			beak = -14
		}
		line(screen, pos.X+beak*0.7, pos.Y, pos.X+beak, pos.Y+2, 3, colorBeak)
	}
}

// drawPlayer 绘制玩家的鱼及道具状态
func drawPlayer(screen *ebiten.Image, c *session.Controller, clock float64) {
	pc := c.Player()
	if pc.IsHidden() {
		return
	}
	em := c.EntityManager()
	col, ok := ecs.GetComponent[*components.CollisionComponent](em, pc.Entity())
	if !ok {
		return
	}
	x, y := pc.Position()
	rx, ry := col.Width/2, col.Height/2
	dir := 1.0
	if pc.FacingLeft() {
		dir = -1
	}
	effects := c.Effects()

	if effects.SpeedMultiplier > 1 {
		for i := 1; i <= 3; i++ {
			ly := y + float64(i-2)*ry*0.6
			line(screen, x-dir*(rx+6*float64(i)), ly, x-dir*(rx+6*float64(i)+14), ly, 2, withAlpha(powerUpColor(components.PowerUpSpeed), 0.7))
		}
	}
	if effects.IsInvincible {
		pulse := 0.5 + 0.3*math.Sin(clock*8)
		ring(screen, x, y, rx+8, 3, withAlpha(powerUpColor(components.PowerUpInvincibility), pulse))
	}

	// 尾巴
	tailX := x - dir*rx
	line(screen, tailX, y, tailX-dir*ry*1.2, y-ry, ry*0.5, colorPlayerFin)
	line(screen, tailX, y, tailX-dir*ry*1.2, y+ry, ry*0.5, colorPlayerFin)
	// 身体与背鳍
	fillEllipse(screen, x, y, rx, ry, colorPlayer)
	line(screen, x-dir*rx*0.2, y-ry*0.8, x+dir*rx*0.2, y-ry*1.2, ry*0.3, colorPlayerFin)
	// 眼睛
	fillEllipse(screen, x+dir*rx*0.55, y-ry*0.25, ry*0.22, ry*0.22, colorWhite)
	fillEllipse(screen, x+dir*rx*0.6, y-ry*0.25, ry*0.12, ry*0.12, colorEye)

	if effects.CanEatObstacles {
		open := 0.2 + 0.15*math.Abs(math.Sin(clock*10))
		fillEllipse(screen, x+dir*rx*0.85, y+ry*0.2, rx*0.15, ry*open*2, powerUpColor(components.PowerUpEat))
	}
}

// drawEffects 绘制装饰效果，透明度随剩余寿命衰减
func drawEffects(screen *ebiten.Image, em *ecs.EntityManager) {
	for _, id := range ecs.GetEntitiesWith3[*components.EffectComponent, *components.PositionComponent, *components.LifetimeComponent](em) {
		effect, _ := ecs.GetComponent[*components.EffectComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
		progress := lifetime.Progress()
		alpha := 1 - progress

		switch effect.Kind {
		case components.EffectBurstBubble:
			ring(screen, pos.X, pos.Y, effect.Radius, 1.5, withAlpha(colorBubble, alpha*1.5))
		case components.EffectGrowthPulse:
			r := effect.Radius + effect.Growth*utils.EaseOutQuad(progress)
			ring(screen, pos.X, pos.Y, r, 4, withAlpha(colorWhite, alpha))
		case components.EffectChomp:
			fillEllipse(screen, pos.X, pos.Y, 24*(1+progress), 24*(1+progress), withAlpha(powerUpColor(components.PowerUpEat), alpha*0.6))
		case components.EffectCollectFlash:
			r := 16 + 30*utils.EaseOutCubic(progress)
			ring(screen, pos.X, pos.Y, r, 3, withAlpha(powerUpColor(effect.PowerUp), alpha))
		case components.EffectMilestoneBanner:
			drawText(screen, effect.Text, fontSizeBanner, pos.X, pos.Y, withAlpha(colorPowerBanner, alpha), text.AlignCenter)
		}
	}
}

var colorPowerBanner = color.RGBA{0xff, 0xe0, 0x4a, 0xff}

// drawWorld 绘制一局游戏的全部实体
func drawWorld(screen *ebiten.Image, c *session.Controller, clock float64) {
	em := c.EntityManager()
	drawBackdrop(screen, em, c.Background(), c.Config().World)
	drawObstacles(screen, em, clock)
	drawFishermen(screen, c)
	drawHooks(screen, em)
	drawPowerUps(screen, em, clock)
	drawPlayer(screen, c, clock)
	drawSeagulls(screen, em, clock)
	drawEffects(screen, em)
}
