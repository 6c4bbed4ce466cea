package config

// 布局配置常量
// 本文件定义了计时器界面的布局参数，所有坐标为逻辑屏幕坐标（左上角为原点）

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 480
	ScreenHeight = 560
)

// 标题
const (
	TitleCenterY  = 56.0
	TitleFontSize = 34.0
)

// 时长调节区（Break Length 在左，Session Length 在右）
const (
	// LengthColumnLeftX 左列（Break）中心 X
	LengthColumnLeftX = 130.0
	// LengthColumnRightX 右列（Session）中心 X
	LengthColumnRightX = 350.0

	// LengthLabelY 列标题中心 Y
	LengthLabelY = 120.0
	// LengthRowY 箭头与数值所在行中心 Y
	LengthRowY = 168.0

	LengthLabelFontSize = 20.0
	LengthValueFontSize = 28.0

	// ArrowButtonSize 箭头按钮边长
	ArrowButtonSize = 40.0
	// ArrowButtonOffset 箭头按钮中心相对列中心的水平距离
	ArrowButtonOffset = 64.0
)

// 计时显示面板
const (
	PanelWidth   = 300.0
	PanelHeight  = 190.0
	PanelCenterY = 318.0
	PanelBorder  = 4.0

	PhaseLabelFontSize = 26.0
	// PhaseLabelOffsetY 阶段标签中心相对面板中心的垂直偏移
	PhaseLabelOffsetY = -46.0

	DisplayFontSize = 72.0
	// DisplayOffsetY 倒计时中心相对面板中心的垂直偏移
	DisplayOffsetY = 26.0
)

// 控制按钮（开始/暂停、重置）
const (
	ControlButtonSize    = 56.0
	ControlButtonsY      = 470.0
	ControlButtonSpacing = 96.0
)

// 状态栏（音量、静音）
const (
	StatusBarY        = 536.0
	StatusBarFontSize = 14.0
)

// Rect 轴对齐矩形，坐标为左上角
type Rect struct {
	X, Y, W, H float64
}

// CenteredRect 以中心点和尺寸构造矩形
func CenteredRect(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Center 返回矩形中心
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains 检查点是否在矩形内（左闭右开）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// ButtonID 界面按钮标识
type ButtonID int

const (
	ButtonNone ButtonID = iota
	ButtonBreakDecrement
	ButtonBreakIncrement
	ButtonSessionDecrement
	ButtonSessionIncrement
	ButtonStartPause
	ButtonReset
)

// String 返回按钮名称，用于日志
func (b ButtonID) String() string {
	switch b {
	case ButtonBreakDecrement:
		return "break-decrement"
	case ButtonBreakIncrement:
		return "break-increment"
	case ButtonSessionDecrement:
		return "session-decrement"
	case ButtonSessionIncrement:
		return "session-increment"
	case ButtonStartPause:
		return "start-stop"
	case ButtonReset:
		return "reset"
	default:
		return "none"
	}
}

// ButtonRects 返回所有按钮的矩形区域
// 按钮顺序固定，命中测试时按此顺序检查
func ButtonRects() []struct {
	ID   ButtonID
	Rect Rect
} {
	return []struct {
		ID   ButtonID
		Rect Rect
	}{
		{ButtonBreakDecrement, CenteredRect(LengthColumnLeftX-ArrowButtonOffset, LengthRowY, ArrowButtonSize, ArrowButtonSize)},
		{ButtonBreakIncrement, CenteredRect(LengthColumnLeftX+ArrowButtonOffset, LengthRowY, ArrowButtonSize, ArrowButtonSize)},
		{ButtonSessionDecrement, CenteredRect(LengthColumnRightX-ArrowButtonOffset, LengthRowY, ArrowButtonSize, ArrowButtonSize)},
		{ButtonSessionIncrement, CenteredRect(LengthColumnRightX+ArrowButtonOffset, LengthRowY, ArrowButtonSize, ArrowButtonSize)},
		{ButtonStartPause, CenteredRect(ScreenWidth/2-ControlButtonSpacing/2, ControlButtonsY, ControlButtonSize, ControlButtonSize)},
		{ButtonReset, CenteredRect(ScreenWidth/2+ControlButtonSpacing/2, ControlButtonsY, ControlButtonSize, ControlButtonSize)},
	}
}

// HitTest 返回坐标命中的按钮，未命中返回 ButtonNone
func HitTest(x, y float64) ButtonID {
	for _, b := range ButtonRects() {
		if b.Rect.Contains(x, y) {
			return b.ID
		}
	}
	return ButtonNone
}

// PanelRect 返回计时显示面板区域
func PanelRect() Rect {
	return CenteredRect(ScreenWidth/2, PanelCenterY, PanelWidth, PanelHeight)
}
