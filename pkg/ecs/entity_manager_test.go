package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testSlotComponent struct {
	Row, Col int
}

type testSeedComponent struct {
	Slot EntityID
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if !em.Exists(id1) || !em.Exists(id2) {
		t.Error("Created entities should exist")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testSlotComponent{Row: 1, Col: 2})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testSlotComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testSlotComponent)
	if retrieved.Row != 1 || retrieved.Col != 2 {
		t.Errorf("Component data mismatch, expected (1, 2), got (%d, %d)", retrieved.Row, retrieved.Col)
	}
}

func TestGenericAccessors(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testSeedComponent{Slot: 7})

	seed, ok := GetComponent[*testSeedComponent](em, id)
	if !ok {
		t.Fatal("GetComponent[*testSeedComponent] should find the component")
	}
	if seed.Slot != 7 {
		t.Errorf("Slot = %d, want 7", seed.Slot)
	}

	// 类型不匹配时返回零值
	if _, ok := GetComponent[*testSlotComponent](em, id); ok {
		t.Error("GetComponent should not find a component that was never added")
	}

	if !HasComponent[*testSeedComponent](em, id) {
		t.Error("HasComponent should report the seed component")
	}

	RemoveComponent[*testSeedComponent](em, id)
	if HasComponent[*testSeedComponent](em, id) {
		t.Error("Component should be gone after RemoveComponent")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testSlotComponent{})

	// 标记删除
	em.DestroyEntity(id)
	em.DestroyEntity(id) // 重复标记

	if em.Exists(id) {
		t.Error("Marked entity should not be reported as existing")
	}
	if !em.IsMarkedForDestroy(id) {
		t.Error("Entity should be marked for destroy")
	}

	// 清理前组件仍可访问
	if !em.HasComponent(id, reflect.TypeOf(&testSlotComponent{})) {
		t.Error("Components should still be readable before cleanup")
	}

	em.RemoveMarkedEntities()
	if em.HasComponent(id, reflect.TypeOf(&testSlotComponent{})) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount = %d, want 0", em.EntityCount())
	}
}

func TestDestroyInvalidEntity(t *testing.T) {
	em := NewEntityManager()

	// 0 和不存在的ID都应被忽略
	em.DestroyEntity(0)
	em.DestroyEntity(42)
	em.RemoveMarkedEntities()

	if em.IsMarkedForDestroy(42) {
		t.Error("Unknown entity should not be marked")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	em.AddComponent(id1, &testSlotComponent{})
	em.AddComponent(id1, &testSeedComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testSlotComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testSeedComponent{})

	both := GetEntitiesWith2[*testSlotComponent, *testSeedComponent](em)
	if len(both) != 1 || both[0] != id1 {
		t.Errorf("Expected only id1, got %v", both)
	}

	slots := GetEntitiesWith1[*testSlotComponent](em)
	if len(slots) != 2 {
		t.Fatalf("Expected 2 entities with slot component, got %d", len(slots))
	}

	// 结果按ID升序
	if slots[0] != id1 || slots[1] != id2 {
		t.Errorf("Expected sorted result [%d %d], got %v", id1, id2, slots)
	}
}
