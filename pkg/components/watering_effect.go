package components

import "github.com/decker502/plantation/pkg/ecs"

// WateringEffectComponent 浇水特效
// 与 LifetimeComponent 搭配使用，特效时长到期后自动清理
type WateringEffectComponent struct {
	Slot ecs.EntityID
}
