package entities

import (
	"github.com/decker502/plantation/pkg/components"
	"github.com/decker502/plantation/pkg/ecs"
)

// NewSlotEntity 创建一个地块实体
// 参数:
//   - manager: EntityManager 实例
//   - row, col: 所在格子
//   - x, y: 地块中心坐标
//   - tag: 初始占用标签
//
// 返回: 创建的实体ID
func NewSlotEntity(manager *ecs.EntityManager, row, col int, x, y float64, tag components.SlotTag) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	manager.AddComponent(id, &components.SlotComponent{
		Row: row,
		Col: col,
		Tag: tag,
	})

	return id
}

// NewSeedEntity 在地块上方创建种子实体
// 参数:
//   - manager: EntityManager 实例
//   - slot: 所属地块
//   - x, y: 种子坐标（地块中心加竖直偏移）
//
// 返回: 创建的实体ID
func NewSeedEntity(manager *ecs.EntityManager, slot ecs.EntityID, x, y float64) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	manager.AddComponent(id, &components.SeedComponent{Slot: slot})

	return id
}

// NewGrowthStageEntity 创建生长阶段的可视实例
// 参数:
//   - manager: EntityManager 实例
//   - slot: 所属地块
//   - stage: 阶段索引
//   - visualID: 阶段可视资源ID
//   - x, y: 实例坐标
//
// 返回: 创建的实体ID
func NewGrowthStageEntity(manager *ecs.EntityManager, slot ecs.EntityID, stage int, visualID string, x, y float64) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	manager.AddComponent(id, &components.GrowthStageComponent{
		Slot:     slot,
		Stage:    stage,
		VisualID: visualID,
	})

	return id
}

// NewWateringEffectEntity 创建浇水特效实体，duration 秒后由 LifetimeSystem 清理
func NewWateringEffectEntity(manager *ecs.EntityManager, slot ecs.EntityID, x, y, duration float64) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	manager.AddComponent(id, &components.WateringEffectComponent{Slot: slot})
	manager.AddComponent(id, &components.LifetimeComponent{MaxLifetime: duration})

	return id
}
