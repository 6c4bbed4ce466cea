package game

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// closableScene 记录 Close 调用次数
type closableScene struct {
	MockScene
	closed int
	err    error
}

func (c *closableScene) Close() error {
	c.closed++
	return c.err
}

// TestSceneManagerSwitchTo verifies that SwitchTo correctly changes the active scene.
func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Error("Expected no scene initially")
	}

	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	if sm.GetCurrentScene() != mockScene {
		t.Error("SwitchTo did not set the current scene correctly")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 1.0 / 60.0
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.4f, got %.4f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerNoScene verifies that Update, Draw and Close handle a nil scene.
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016)
	sm.Draw(nil)
	sm.Close()
}

// TestSceneManagerDraw verifies that Draw calls the current scene's Draw method.
func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Draw(nil)

	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerClosesScenes 切换和关闭时调用 Closable
func TestSceneManagerClosesScenes(t *testing.T) {
	sm := NewSceneManager()
	first := &closableScene{}
	second := &closableScene{err: errors.New("save failed")}

	sm.SwitchTo(first)
	sm.SwitchTo(first)
	if first.closed != 0 {
		t.Errorf("re-selecting the same scene closed it %d times", first.closed)
	}

	sm.SwitchTo(second)
	if first.closed != 1 {
		t.Errorf("first.closed: got %d, want 1", first.closed)
	}

	sm.Close()
	if second.closed != 1 {
		t.Errorf("second.closed: got %d, want 1", second.closed)
	}
	if sm.GetCurrentScene() != nil {
		t.Error("scene still active after Close")
	}
}
