package systems

import (
	"github.com/decker502/plantation/pkg/components"
	"github.com/decker502/plantation/pkg/ecs"
)

// LifetimeSystem 清理到期的短时装饰实体（浇水特效）
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 推进所有拥有生命周期组件的实体，到期后标记删除
func (s *LifetimeSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.IsExpired {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
			s.entityManager.DestroyEntity(id)
		}
	}
}

// Progress 返回实体生命周期进度 [0,1]，没有生命周期组件时返回 0
func (s *LifetimeSystem) Progress(id ecs.EntityID) float64 {
	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
	if !ok || lifetime.MaxLifetime <= 0 {
		return 0
	}
	p := lifetime.CurrentLifetime / lifetime.MaxLifetime
	if p > 1 {
		p = 1
	}
	return p
}
