package systems

import (
	"fmt"

	"github.com/decker502/plantation/pkg/config"
	"github.com/decker502/plantation/pkg/ecs"
	"github.com/decker502/plantation/pkg/game"
)

// GardenDeps 花园核心依赖的外部协作者，未设置的字段使用空实现
type GardenDeps struct {
	Audio    game.AudioNotifier
	Clips    game.ClipPlayer
	Effects  game.EffectPlayer
	Display  game.ScoreDisplay
	GameOver game.GameOverHandler
}

// Garden 把花园核心的各个系统按依赖顺序组装在一起
//
// 场景只通过 Garden 发出三类玩家事件（播种、浇水、收获尝试），
// 并在每帧调用 Update 推进调度器。
type Garden struct {
	Config *config.GardenConfig

	EntityManager *ecs.EntityManager
	Scheduler     *Scheduler
	Registry      *SlotRegistry
	Progress      *game.ProgressTracker
	Selector      *game.PlantationSelector

	Planting *PlantingSystem
	Watering *WateringSystem
	Growth   *GrowthSystem
	Lifetime *LifetimeSystem
}

// NewGarden 根据配置创建花园
//
// 返回：
//   - error: 配置为空或没有作物定义时返回错误
func NewGarden(cfg *config.GardenConfig, deps GardenDeps) (*Garden, error) {
	if cfg == nil {
		return nil, fmt.Errorf("new garden: nil config")
	}
	defs := cfg.Definitions()
	if len(defs) == 0 {
		return nil, game.ErrNoDefinitions
	}

	em := ecs.NewEntityManager()
	scheduler := NewScheduler()
	registry := NewSlotRegistry(em, cfg.Layout)
	progress := game.NewProgressTracker(cfg.Progress, len(defs), deps.Display, deps.GameOver)

	selector, err := game.NewPlantationSelector(defs, progress, deps.Audio)
	if err != nil {
		return nil, fmt.Errorf("new garden: %w", err)
	}

	growth := NewGrowthSystem(em, registry, scheduler, progress, deps.Audio, deps.Clips)

	return &Garden{
		Config:        cfg,
		EntityManager: em,
		Scheduler:     scheduler,
		Registry:      registry,
		Progress:      progress,
		Selector:      selector,
		Planting:      NewPlantingSystem(em, registry, deps.Audio),
		Watering:      NewWateringSystem(registry, growth, scheduler, cfg.Watering.EffectDuration, deps.Audio, deps.Effects),
		Growth:        growth,
		Lifetime:      NewLifetimeSystem(em),
	}, nil
}

// Plant 用当前选中的作物在地块上播种
func (g *Garden) Plant(slot ecs.EntityID) error {
	return g.Planting.RequestPlant(slot, g.Selector.Active())
}

// Water 对地块浇水，返回请求是否被接受
func (g *Garden) Water(slot ecs.EntityID) bool {
	return g.Watering.RequestWater(slot)
}

// Harvest 尝试收获地块
func (g *Garden) Harvest(slot ecs.EntityID) (bool, error) {
	return g.Growth.TryHarvest(slot)
}

// Update 推进一帧：游戏时钟、调度器、短时实体，最后清理标记删除的实体
// 游戏结束后不再推进
func (g *Garden) Update(deltaTime float64) {
	if g.Progress.IsGameOver() {
		return
	}
	g.Progress.Advance(deltaTime)
	g.Scheduler.Update(deltaTime)
	g.Lifetime.Update(deltaTime)
	g.EntityManager.RemoveMarkedEntities()
}

// Stop 丢弃所有等待中的延续（场景销毁时使用）
func (g *Garden) Stop() {
	g.Watering.Stop()
	g.Growth.Stop()
	g.Scheduler.Clear()
}
