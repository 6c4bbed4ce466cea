package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager controls which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager creates a SceneManager with no active scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo changes the active scene.
// 旧场景如果实现了 Closable 会先被关闭
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene != nil && sm.currentScene != scene {
		sm.closeScene(sm.currentScene)
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update updates the currently active scene.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Close 关闭当前场景
func (sm *SceneManager) Close() {
	if sm.currentScene != nil {
		sm.closeScene(sm.currentScene)
		sm.currentScene = nil
	}
}

func (sm *SceneManager) closeScene(scene Scene) {
	closable, ok := scene.(Closable)
	if !ok {
		return
	}
	if err := closable.Close(); err != nil {
		log.Printf("[SceneManager] Warning: scene close failed: %v", err)
	}
}
