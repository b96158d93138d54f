package scenes

import (
	"bytes"
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 字号
const (
	fontSizeSmall  = 14
	fontSizeHUD    = 20
	fontSizeBanner = 32
	fontSizeTitle  = 48
)

var (
	fontSource     *text.GoTextFaceSource
	fontSourceOnce sync.Once
	faceCache      = map[float64]*text.GoTextFace{}
)

// face 返回指定字号的字体，字体加载失败时返回 nil
func face(size float64) *text.GoTextFace {
	fontSourceOnce.Do(func() {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.MPlus1pRegular_ttf))
		if err != nil {
			log.Printf("[Fonts] Warning: failed to load font, falling back to debug text: %v", err)
			return
		}
		fontSource = src
	})
	if fontSource == nil {
		return nil
	}
	if f, ok := faceCache[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: fontSource, Size: size}
	faceCache[size] = f
	return f
}

// drawText 绘制一行文字
//
// 参数：
//   - x, y: 锚点（align 为 AlignCenter 时 x 为中心）
//   - clr: 颜色（含透明度）
func drawText(screen *ebiten.Image, s string, size, x, y float64, clr color.Color, align text.Align) {
	f := face(size)
	if f == nil {
		ebitenutil.DebugPrintAt(screen, s, int(x), int(y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LayoutOptions.PrimaryAlign = align

	// 阴影
	shadow := &text.DrawOptions{}
	shadow.GeoM.Translate(x+2, y+2)
	shadow.ColorScale.ScaleWithColor(color.RGBA{0, 0, 0, 120})
	shadow.LayoutOptions.PrimaryAlign = align
	text.Draw(screen, s, f, shadow)

	text.Draw(screen, s, f, op)
}
