package scenes

import (
	"github.com/decker502/pomodoro/pkg/game"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

var (
	_ Scene         = (*TimerScene)(nil)
	_ game.Closable = (*TimerScene)(nil)
)
