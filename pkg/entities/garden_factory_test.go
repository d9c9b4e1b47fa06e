package entities

import (
	"testing"

	"github.com/decker502/plantation/pkg/components"
	"github.com/decker502/plantation/pkg/ecs"
)

// TestNewSlotEntity 测试地块实体创建
func TestNewSlotEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	id := NewSlotEntity(em, 1, 2, 100, 200, components.SlotEmpty)

	slot, ok := ecs.GetComponent[*components.SlotComponent](em, id)
	if !ok {
		t.Fatal("Slot entity should have a SlotComponent")
	}
	if slot.Row != 1 || slot.Col != 2 || slot.Tag != components.SlotEmpty {
		t.Errorf("SlotComponent = %+v", slot)
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok || pos.X != 100 || pos.Y != 200 {
		t.Errorf("PositionComponent = %+v, %v", pos, ok)
	}
}

// TestNewSeedAndStageEntities 测试种子与生长阶段实体
func TestNewSeedAndStageEntities(t *testing.T) {
	em := ecs.NewEntityManager()
	slotID := NewSlotEntity(em, 0, 0, 10, 10, components.SlotSeeded)

	seedID := NewSeedEntity(em, slotID, 10, -4)
	seed, ok := ecs.GetComponent[*components.SeedComponent](em, seedID)
	if !ok || seed.Slot != slotID {
		t.Errorf("SeedComponent = %+v, %v", seed, ok)
	}

	stageID := NewGrowthStageEntity(em, slotID, 1, "carrot_young", 10, -4)
	stage, ok := ecs.GetComponent[*components.GrowthStageComponent](em, stageID)
	if !ok {
		t.Fatal("Stage entity should have a GrowthStageComponent")
	}
	if stage.Stage != 1 || stage.VisualID != "carrot_young" || stage.Clip != "" {
		t.Errorf("GrowthStageComponent = %+v", stage)
	}
}

// TestNewWateringEffectEntity 测试浇水特效带生命周期
func TestNewWateringEffectEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	id := NewWateringEffectEntity(em, 3, 0, 0, 2.5)

	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !ok || lifetime.MaxLifetime != 2.5 {
		t.Errorf("LifetimeComponent = %+v, %v", lifetime, ok)
	}
	if !ecs.HasComponent[*components.WateringEffectComponent](em, id) {
		t.Error("Effect entity should have a WateringEffectComponent")
	}
}
