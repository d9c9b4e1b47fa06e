package systems

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/plantation/pkg/components"
	"github.com/decker502/plantation/pkg/config"
	"github.com/decker502/plantation/pkg/ecs"
	"github.com/decker502/plantation/pkg/entities"
)

// ErrUnknownSlot 地块实体已被替换或不存在
var ErrUnknownSlot = errors.New("unknown or replaced slot")

// PlantationRecord 种植记录：把作物定义绑定到具体地块和种子
//
// 浇水时 Slot 会改为新的已浇水地块实体；
// 收获或爆炸重置地块时记录被丢弃。
type PlantationRecord struct {
	Seed       ecs.EntityID
	Definition *config.PlantationDefinition
	Slot       ecs.EntityID
}

// SlotRegistry 管理花园中的全部地块及其种植记录
//
// 核心不变量：同一时刻最多只有一条种植记录指向某个地块，
// 地块标签与记录是否存在始终一致（见 Validate）。
type SlotRegistry struct {
	entityManager *ecs.EntityManager
	layout        config.LayoutConfig

	grid    [][]ecs.EntityID                   // [row][col] -> 当前地块实体
	planted map[ecs.EntityID]*PlantationRecord // 已播种（含已浇水）地块 -> 记录
	watered map[ecs.EntityID]bool              // 已浇水地块集合
	active  ecs.EntityID                       // 玩家当前所在的地块，0 表示没有
}

// NewSlotRegistry 按布局创建全部空地块
func NewSlotRegistry(em *ecs.EntityManager, layout config.LayoutConfig) *SlotRegistry {
	r := &SlotRegistry{
		entityManager: em,
		layout:        layout,
		grid:          make([][]ecs.EntityID, layout.Rows),
		planted:       make(map[ecs.EntityID]*PlantationRecord),
		watered:       make(map[ecs.EntityID]bool),
	}

	for row := 0; row < layout.Rows; row++ {
		r.grid[row] = make([]ecs.EntityID, layout.Columns)
		for col := 0; col < layout.Columns; col++ {
			x, y := layout.SlotCenter(row, col)
			r.grid[row][col] = entities.NewSlotEntity(em, row, col, x, y, components.SlotEmpty)
		}
	}

	return r
}

// Rows 返回行数
func (r *SlotRegistry) Rows() int { return r.layout.Rows }

// Columns 返回列数
func (r *SlotRegistry) Columns() int { return r.layout.Columns }

// SlotAt 返回格子当前的地块实体，越界时返回 0
func (r *SlotRegistry) SlotAt(row, col int) ecs.EntityID {
	if row < 0 || row >= r.layout.Rows || col < 0 || col >= r.layout.Columns {
		return 0
	}
	return r.grid[row][col]
}

// Slots 返回全部当前地块（按行优先顺序）
func (r *SlotRegistry) Slots() []ecs.EntityID {
	slots := make([]ecs.EntityID, 0, r.layout.Rows*r.layout.Columns)
	for _, row := range r.grid {
		slots = append(slots, row...)
	}
	return slots
}

// slotComponent 返回仍然有效的地块组件
// 已被替换的旧地块实体视为不存在
func (r *SlotRegistry) slotComponent(slot ecs.EntityID) (*components.SlotComponent, bool) {
	if slot == 0 {
		return nil, false
	}
	comp, ok := ecs.GetComponent[*components.SlotComponent](r.entityManager, slot)
	if !ok || r.SlotAt(comp.Row, comp.Col) != slot {
		return nil, false
	}
	return comp, true
}

// IsSlot 检查实体是否是当前有效的地块
func (r *SlotRegistry) IsSlot(slot ecs.EntityID) bool {
	_, ok := r.slotComponent(slot)
	return ok
}

// Tag 返回地块的占用标签
func (r *SlotRegistry) Tag(slot ecs.EntityID) (components.SlotTag, bool) {
	comp, ok := r.slotComponent(slot)
	if !ok {
		return components.SlotEmpty, false
	}
	return comp.Tag, true
}

// Cell 返回地块所在格子
func (r *SlotRegistry) Cell(slot ecs.EntityID) (row, col int, ok bool) {
	comp, ok := r.slotComponent(slot)
	if !ok {
		return 0, 0, false
	}
	return comp.Row, comp.Col, true
}

// Position 返回地块中心坐标
func (r *SlotRegistry) Position(slot ecs.EntityID) (x, y float64, ok bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](r.entityManager, slot)
	if !ok {
		return 0, 0, false
	}
	return pos.X, pos.Y, true
}

// GrowthPosition 返回种子/生长实例在地块上的坐标
func (r *SlotRegistry) GrowthPosition(slot ecs.EntityID) (x, y float64, ok bool) {
	x, y, ok = r.Position(slot)
	return x, y + r.layout.GrowthOffset, ok
}

// Record 返回地块上的种植记录
func (r *SlotRegistry) Record(slot ecs.EntityID) (*PlantationRecord, bool) {
	rec, ok := r.planted[slot]
	return rec, ok
}

// IsPlanted 检查地块是否在已播种集合中
func (r *SlotRegistry) IsPlanted(slot ecs.EntityID) bool {
	_, ok := r.planted[slot]
	return ok
}

// IsWatered 检查地块是否在已浇水集合中
func (r *SlotRegistry) IsWatered(slot ecs.EntityID) bool {
	return r.watered[slot]
}

// PlantedCount 返回已播种集合大小
func (r *SlotRegistry) PlantedCount() int { return len(r.planted) }

// WateredCount 返回已浇水集合大小
func (r *SlotRegistry) WateredCount() int { return len(r.watered) }

// SetActiveSlot 设置玩家当前所在的地块（0 表示离开所有地块）
func (r *SlotRegistry) SetActiveSlot(slot ecs.EntityID) {
	r.active = slot
}

// ActiveSlot 返回玩家当前所在的地块
func (r *SlotRegistry) ActiveSlot() ecs.EntityID {
	return r.active
}

// AddPlanted 登记新的种植记录并把地块标记为已播种
//
// 返回：
//   - error: 地块无效、不是空地块或已有记录时返回错误
func (r *SlotRegistry) AddPlanted(rec *PlantationRecord) error {
	comp, ok := r.slotComponent(rec.Slot)
	if !ok {
		return fmt.Errorf("add planted record for slot %d: %w", rec.Slot, ErrUnknownSlot)
	}
	if comp.Tag != components.SlotEmpty || r.IsPlanted(rec.Slot) {
		return fmt.Errorf("slot %d is already occupied (%s)", rec.Slot, comp.Tag)
	}

	comp.Tag = components.SlotSeeded
	r.planted[rec.Slot] = rec
	return nil
}

// PromoteToWatered 用新的已浇水地块实体替换已播种地块
//
// 新实体继承格子和坐标；记录改为指向新地块，种子改挂到新地块，
// 玩家若停留在旧地块上则改为停留在新地块上。
//
// 返回：
//   - ecs.EntityID: 新地块实体
//   - error: 地块无效或没有已播种记录时返回错误
func (r *SlotRegistry) PromoteToWatered(slot ecs.EntityID) (ecs.EntityID, error) {
	comp, ok := r.slotComponent(slot)
	if !ok {
		return 0, fmt.Errorf("promote slot %d: %w", slot, ErrUnknownSlot)
	}
	rec, ok := r.planted[slot]
	if !ok || comp.Tag != components.SlotSeeded {
		return 0, fmt.Errorf("promote slot %d: no unwatered seed (tag=%s)", slot, comp.Tag)
	}

	newSlot := r.replaceSlot(slot, comp, components.SlotWatered)

	delete(r.planted, slot)
	rec.Slot = newSlot
	r.planted[newSlot] = rec
	r.watered[newSlot] = true

	if seed, ok := ecs.GetComponent[*components.SeedComponent](r.entityManager, rec.Seed); ok {
		seed.Slot = newSlot
	}
	if r.active == slot {
		r.active = newSlot
	}

	return newSlot, nil
}

// ResetSlot 把地块恢复为空地块：用新的空地块实体替换旧实体，
// 同时从已播种和已浇水集合中移除。
//
// 返回：
//   - ecs.EntityID: 新的空地块实体
//   - error: 地块无效时返回错误
func (r *SlotRegistry) ResetSlot(slot ecs.EntityID) (ecs.EntityID, error) {
	comp, ok := r.slotComponent(slot)
	if !ok {
		return 0, fmt.Errorf("reset slot %d: %w", slot, ErrUnknownSlot)
	}

	delete(r.watered, slot)
	delete(r.planted, slot)

	newSlot := r.replaceSlot(slot, comp, components.SlotEmpty)
	if r.active == slot {
		r.active = 0
	}

	return newSlot, nil
}

// replaceSlot 在同一格子创建新地块实体并销毁旧实体
func (r *SlotRegistry) replaceSlot(old ecs.EntityID, comp *components.SlotComponent, tag components.SlotTag) ecs.EntityID {
	x, y, _ := r.Position(old)
	newSlot := entities.NewSlotEntity(r.entityManager, comp.Row, comp.Col, x, y, tag)
	r.grid[comp.Row][comp.Col] = newSlot
	r.entityManager.DestroyEntity(old)

	log.Printf("[SlotRegistry] Slot (%d,%d): %d -> %d (%s)", comp.Row, comp.Col, old, newSlot, tag)
	return newSlot
}

// Validate 检查地块标签与记录集合的一致性
//
// 返回：
//   - error: 发现孤立记录或标签与记录不符时返回描述性错误
func (r *SlotRegistry) Validate() error {
	for slot, rec := range r.planted {
		if rec.Slot != slot {
			return fmt.Errorf("record keyed by slot %d points at slot %d", slot, rec.Slot)
		}
		tag, ok := r.Tag(slot)
		if !ok {
			return fmt.Errorf("orphaned record for replaced slot %d", slot)
		}
		if tag == components.SlotEmpty {
			return fmt.Errorf("empty slot %d has a plantation record", slot)
		}
	}

	for slot := range r.watered {
		tag, ok := r.Tag(slot)
		if !ok || tag != components.SlotWatered {
			return fmt.Errorf("watered set contains slot %d with tag %s", slot, tag)
		}
		if !r.IsPlanted(slot) {
			return fmt.Errorf("watered slot %d has no plantation record", slot)
		}
	}

	for _, slot := range r.Slots() {
		tag, _ := r.Tag(slot)
		switch tag {
		case components.SlotSeeded:
			if !r.IsPlanted(slot) || r.watered[slot] {
				return fmt.Errorf("seeded slot %d is inconsistent with the planted/watered sets", slot)
			}
		case components.SlotWatered:
			if !r.IsPlanted(slot) || !r.watered[slot] {
				return fmt.Errorf("watered slot %d is missing from the planted/watered sets", slot)
			}
		}
	}

	return nil
}
