package systems

import (
	"testing"

	"github.com/decker502/plantation/pkg/components"
	"github.com/decker502/plantation/pkg/ecs"
	"github.com/decker502/plantation/pkg/entities"
)

func TestLifetimeUpdate(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := entities.NewWateringEffectEntity(em, 1, 0, 0, 2.0)

	system.Update(1.0)

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if lifetime.CurrentLifetime != 1.0 {
		t.Errorf("Expected CurrentLifetime=1.0, got %f", lifetime.CurrentLifetime)
	}
	if lifetime.IsExpired {
		t.Error("Effect should not be expired yet")
	}
	if p := system.Progress(id); p != 0.5 {
		t.Errorf("Expected progress 0.5, got %f", p)
	}
}

func TestLifetimeExpiration(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := entities.NewWateringEffectEntity(em, 1, 0, 0, 2.0)

	// 超过最大生命周期
	system.Update(2.5)

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !lifetime.IsExpired {
		t.Error("Effect should be expired")
	}
	if !em.IsMarkedForDestroy(id) {
		t.Error("Expired effect should be marked for destroy")
	}
	if p := system.Progress(id); p != 1 {
		t.Errorf("Expected progress clamped to 1, got %f", p)
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Expired effect should be removed at frame end")
	}
}

func TestLifetimeProgressWithoutComponent(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	if p := system.Progress(em.CreateEntity()); p != 0 {
		t.Errorf("Expected progress 0 for entity without lifetime, got %f", p)
	}
}
