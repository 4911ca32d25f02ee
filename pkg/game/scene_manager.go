package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// SaveOnExit 让当前场景保存状态
// 当前场景未实现 Saveable 时返回 true
func (sm *SceneManager) SaveOnExit() bool {
	saveable, ok := sm.currentScene.(Saveable)
	if !ok {
		return true
	}
	if !saveable.SaveOnExit() {
		log.Printf("[SceneManager] Warning: scene failed to save on exit")
		return false
	}
	return true
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
