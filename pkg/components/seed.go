package components

import "github.com/decker502/plantation/pkg/ecs"

// SeedComponent 标识实体为种子
// 种子挂在地块上，第一次生长步骤完成时被消耗
type SeedComponent struct {
	Slot ecs.EntityID // 所属地块（浇水后会改为新的已浇水地块）
}
