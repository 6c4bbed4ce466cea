// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 按住按键时的自动重复（单位：tick，60 TPS 下约 0.5 秒后每 0.1 秒重复一次）
const (
	KeyRepeatDelay    = 30
	KeyRepeatInterval = 6
)

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	// 检查触摸
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// IsKeyTriggered 按键刚按下，或者按住超过 KeyRepeatDelay 后按 KeyRepeatInterval 重复触发
func IsKeyTriggered(key ebiten.Key) bool {
	return ShouldTrigger(inpututil.KeyPressDuration(key))
}

// ShouldTrigger 根据按住的 tick 数判断本帧是否触发
// duration 为 0 表示未按下，为 1 表示本帧刚按下
func ShouldTrigger(duration int) bool {
	if duration <= 0 {
		return false
	}
	if duration == 1 {
		return true
	}
	if duration < KeyRepeatDelay {
		return false
	}
	return (duration-KeyRepeatDelay)%KeyRepeatInterval == 0
}
