package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/fishy-escape/pkg/game"
)

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	services     *Services
}

// NewSceneManager creates a SceneManager sharing the given services with every scene.
// The manager starts with no active scene; use ShowStart or SwitchTo to set the initial scene.
func NewSceneManager(services *Services) *SceneManager {
	if services == nil {
		services = &Services{}
	}
	return &SceneManager{services: services}
}

// Services 返回共享服务
func (sm *SceneManager) Services() *Services {
	return sm.services
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// ShowStart 切换到开始界面
func (sm *SceneManager) ShowStart() {
	log.Printf("[SceneManager] switching to start scene")
	sm.SwitchTo(NewStartScene(sm))
}

// StartSession 开始新的一局（重新开始同样调用此方法）
func (sm *SceneManager) StartSession() {
	scene := NewGameScene(sm)
	log.Printf("[SceneManager] starting session %s", scene.Controller().SessionID())
	sm.SwitchTo(scene)
}

// ShowGameOver 切换到结算界面
//
// 参数：
//   - result: 本局结果
//   - rank: 排行榜名次（未入榜为 -1）
func (sm *SceneManager) ShowGameOver(result game.GameOverEvent, rank int) {
	log.Printf("[SceneManager] switching to game over scene (score=%d rank=%d)", result.Score, rank)
	sm.SwitchTo(NewGameOverScene(sm, result, rank))
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
