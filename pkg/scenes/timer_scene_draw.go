package scenes

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/pomodoro/pkg/config"
	"github.com/decker502/pomodoro/pkg/timer"
	"github.com/decker502/pomodoro/pkg/utils"
)

// 图标尺寸
const (
	arrowIconSize   = 14.0
	playIconSize    = 18.0
	resetIconRadius = 12.0
	iconStroke      = 3.0
)

// 运行中时长调节按钮不可用，按此透明度绘制
const disabledAlpha = 0.35

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Draw 绘制整个界面
func (s *TimerScene) Draw(screen *ebiten.Image) {
	state := s.engine.Snapshot()

	screen.Fill(s.palette.Background)

	utils.DrawTextCentered(screen, "Pomodoro Clock", s.fonts.title, config.ScreenWidth/2, config.TitleCenterY, s.palette.Text)

	s.drawLengthControl(screen, "Break Length", state.BreakMinutes, config.LengthColumnLeftX,
		config.ButtonBreakDecrement, config.ButtonBreakIncrement, state.IsRunning)
	s.drawLengthControl(screen, "Session Length", state.SessionMinutes, config.LengthColumnRightX,
		config.ButtonSessionDecrement, config.ButtonSessionIncrement, state.IsRunning)

	s.drawPanel(screen, state)
	s.drawControls(screen, state.IsRunning)

	utils.DrawTextCentered(screen, s.StatusText(), s.fonts.status, config.ScreenWidth/2, config.StatusBarY, s.dim(s.palette.Text, 0.7))
}

// drawLengthControl 绘制一列时长调节：标题、减号箭头、数值、加号箭头
func (s *TimerScene) drawLengthControl(screen *ebiten.Image, label string, minutes int, cx float64, dec, inc config.ButtonID, disabled bool) {
	utils.DrawTextCentered(screen, label, s.fonts.label, cx, config.LengthLabelY, s.palette.Text)
	utils.DrawTextCentered(screen, strconv.Itoa(minutes), s.fonts.value, cx, config.LengthRowY, s.palette.Text)

	for _, id := range []config.ButtonID{dec, inc} {
		rect := buttonRect(id)
		bg := s.buttonColor(id)
		fg := s.palette.Text
		if disabled {
			bg = s.dim(bg, disabledAlpha)
			fg = s.dim(fg, disabledAlpha)
		}
		vector.DrawFilledRect(screen, float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H), bg, true)

		bx, by := rect.Center()
		s.fillPolygon(screen, arrowIcon(bx, by, arrowIconSize, id == inc), fg)
	}
}

// drawPanel 绘制阶段标签和倒计时
func (s *TimerScene) drawPanel(screen *ebiten.Image, state timer.State) {
	panel := config.PanelRect()
	accent := s.phaseColor(state.Phase())

	// 阶段切换后边框由文字色渐变回阶段色
	border := accent
	if s.phaseFlash > 0 {
		border = utils.LerpColor(accent, s.palette.Text, 1-utils.EaseOutCubic(1-s.phaseFlash/phaseFlashDuration))
	}

	vector.DrawFilledRect(screen, float32(panel.X), float32(panel.Y), float32(panel.W), float32(panel.H), s.palette.Panel, true)
	vector.StrokeRect(screen, float32(panel.X), float32(panel.Y), float32(panel.W), float32(panel.H), config.PanelBorder, border, true)

	cx, cy := panel.Center()
	utils.DrawTextCentered(screen, state.Phase().String(), s.fonts.phase, cx, cy+config.PhaseLabelOffsetY, s.palette.Text)
	utils.DrawTextCentered(screen, timer.FormatDisplay(state.SecondsRemaining), s.fonts.display, cx, cy+config.DisplayOffsetY, accent)
}

// drawControls 绘制开始/暂停和重置按钮
func (s *TimerScene) drawControls(screen *ebiten.Image, running bool) {
	start := buttonRect(config.ButtonStartPause)
	sx, sy := start.Center()
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(start.W/2), s.buttonColor(config.ButtonStartPause), true)
	if running {
		// 暂停：两条竖线
		w, h := float32(playIconSize/3), float32(playIconSize)
		vector.DrawFilledRect(screen, float32(sx)-w*1.5, float32(sy)-h/2, w, h, s.palette.Text, true)
		vector.DrawFilledRect(screen, float32(sx)+w*0.5, float32(sy)-h/2, w, h, s.palette.Text, true)
	} else {
		s.fillPolygon(screen, playIcon(sx, sy, playIconSize), s.palette.Text)
	}

	reset := buttonRect(config.ButtonReset)
	rx, ry := reset.Center()
	vector.DrawFilledCircle(screen, float32(rx), float32(ry), float32(reset.W/2), s.buttonColor(config.ButtonReset), true)

	// 重置：四分之三圆弧加箭头
	var path vector.Path
	path.Arc(float32(rx), float32(ry), resetIconRadius, -math.Pi/2, math.Pi, vector.Clockwise)
	strokeOp := &vector.StrokeOptions{Width: iconStroke}
	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, strokeOp)
	s.drawTriangles(screen, vertices, indices, s.palette.Text)
	s.fillPolygon(screen, []point{
		{rx - 2, ry - resetIconRadius - 6},
		{rx + 6, ry - resetIconRadius},
		{rx - 2, ry - resetIconRadius + 6},
	}, s.palette.Text)
}

// buttonColor 按钮底色，刚按下的按钮短暂高亮
func (s *TimerScene) buttonColor(id config.ButtonID) color.RGBA {
	if id != s.pressedButton || s.buttonFlash <= 0 {
		return s.palette.Button
	}
	t := utils.EaseOutCubic(s.buttonFlash / buttonFlashDuration)
	return utils.LerpColor(s.palette.Button, s.phaseColor(s.engine.Phase()), t)
}

// phaseColor 阶段对应的强调色
func (s *TimerScene) phaseColor(phase timer.Phase) color.RGBA {
	if phase == timer.PhaseBreak {
		return s.palette.Break
	}
	return s.palette.Session
}

// dim 按比例降低透明度（预乘 alpha）
func (s *TimerScene) dim(c color.RGBA, alpha float64) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(float64(v) * alpha) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: scale(c.A)}
}

// point 屏幕坐标点
type point struct{ x, y float64 }

// arrowIcon 上箭头（up=true）或下箭头三角形
func arrowIcon(cx, cy, size float64, up bool) []point {
	half := size / 2
	if up {
		return []point{{cx - half, cy + half/2}, {cx + half, cy + half/2}, {cx, cy - half}}
	}
	return []point{{cx - half, cy - half/2}, {cx + half, cy - half/2}, {cx, cy + half}}
}

// playIcon 向右的三角形，重心略向右偏移以保持视觉居中
func playIcon(cx, cy, size float64) []point {
	half := size / 2
	return []point{{cx - half*0.8, cy - half}, {cx - half*0.8, cy + half}, {cx + half*1.1, cy}}
}

// fillPolygon 以扇形三角剖分填充凸多边形
func (s *TimerScene) fillPolygon(screen *ebiten.Image, pts []point, clr color.RGBA) {
	if len(pts) < 3 {
		return
	}
	vertices := make([]ebiten.Vertex, len(pts))
	for i, p := range pts {
		vertices[i] = ebiten.Vertex{DstX: float32(p.x), DstY: float32(p.y), SrcX: 1, SrcY: 1}
	}
	indices := make([]uint16, 0, (len(pts)-2)*3)
	for i := 1; i < len(pts)-1; i++ {
		indices = append(indices, 0, uint16(i), uint16(i+1))
	}
	s.drawTriangles(screen, vertices, indices, clr)
}

// drawTriangles 用纯色绘制三角形
func (s *TimerScene) drawTriangles(screen *ebiten.Image, vertices []ebiten.Vertex, indices []uint16, clr color.RGBA) {
	r, g, b, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	for i := range vertices {
		vertices[i].SrcX, vertices[i].SrcY = 1, 1
		vertices[i].ColorR, vertices[i].ColorG, vertices[i].ColorB, vertices[i].ColorA = r, g, b, a
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vertices, indices, whiteSubImage, op)
}

// buttonRect 查找按钮区域
func buttonRect(id config.ButtonID) config.Rect {
	for _, b := range config.ButtonRects() {
		if b.ID == id {
			return b.Rect
		}
	}
	return config.Rect{}
}
