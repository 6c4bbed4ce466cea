package utils

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// DrawTextCentered 以 (cx, cy) 为中心绘制单行文本
// 参数:
//   - screen: 目标图像
//   - s: 文本
//   - face: 字体，为 nil 时不绘制
//   - cx, cy: 中心点（屏幕坐标）
//   - clr: 文字颜色
func DrawTextCentered(screen *ebiten.Image, s string, face *text.GoTextFace, cx, cy float64, clr color.Color) {
	if face == nil || s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

// MeasureTextWidth 测量单行文本宽度
func MeasureTextWidth(s string, face *text.GoTextFace) float64 {
	if s == "" || face == nil {
		return 0
	}
	width, _ := text.Measure(s, face, 0)
	return width
}
