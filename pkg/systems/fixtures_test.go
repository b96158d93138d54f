package systems

import (
	"math/rand"
	"testing"

	"github.com/gonewx/fishy-escape/pkg/components"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/ecs"
	"github.com/gonewx/fishy-escape/pkg/game"
)

// quietConfig 返回关闭所有随机生成的配置，测试自行放置实体
func quietConfig() *config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.Hooks.SpawnMin, cfg.Hooks.SpawnMax = 1e6, 1e6
	cfg.Obstacles.SpawnMin, cfg.Obstacles.SpawnMax = 1e6, 1e6
	cfg.PowerUps.SpawnChance = 0
	cfg.Seagulls.SpawnChance = 0
	return cfg
}

// step 以固定帧长推进调度器和给定的更新函数
func step(sched *game.Scheduler, frames int, dt float64, updates ...func(float64)) {
	for i := 0; i < frames; i++ {
		sched.Advance(dt)
		for _, u := range updates {
			u(dt)
		}
	}
}

func positionOf(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.PositionComponent {
	t.Helper()
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		t.Fatalf("entity %d has no position", id)
	}
	return pos
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}
