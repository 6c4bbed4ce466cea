package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is one screen of the application.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update advances the scene by deltaTime seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Closable 是一个可选接口，场景在程序退出时释放资源、保存偏好设置
//
// 调用时机：
//   - 窗口关闭
//   - 移动端进入后台前由宿主调用 App.Close
type Closable interface {
	Close() error
}
