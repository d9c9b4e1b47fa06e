package systems

import (
	"errors"
	"log"

	"github.com/decker502/plantation/pkg/components"
	"github.com/decker502/plantation/pkg/config"
	"github.com/decker502/plantation/pkg/ecs"
	"github.com/decker502/plantation/pkg/entities"
	"github.com/decker502/plantation/pkg/game"
)

// ErrMissingDefinition 种植请求没有携带作物定义（内容或调用方错误）
var ErrMissingDefinition = errors.New("plant request without plantation definition")

// PlantingSystem 处理玩家的种植请求
type PlantingSystem struct {
	entityManager *ecs.EntityManager
	registry      *SlotRegistry
	audio         game.AudioNotifier
}

// NewPlantingSystem 创建种植系统
func NewPlantingSystem(em *ecs.EntityManager, registry *SlotRegistry, audio game.AudioNotifier) *PlantingSystem {
	if audio == nil {
		audio = game.Nop
	}
	return &PlantingSystem{
		entityManager: em,
		registry:      registry,
		audio:         audio,
	}
}

// RequestPlant 在空地块上播种
//
// 目标无效（0、已被替换、已被占用）时静默忽略，不返回错误；
// 对同一地块的重复请求因此是幂等的。
//
// 参数：
//   - slot: 目标地块
//   - def: 当前选中的作物定义
//
// 返回：
//   - error: def 为 nil 时返回 ErrMissingDefinition
func (s *PlantingSystem) RequestPlant(slot ecs.EntityID, def *config.PlantationDefinition) error {
	if def == nil {
		return ErrMissingDefinition
	}

	tag, ok := s.registry.Tag(slot)
	if !ok || tag != components.SlotEmpty || s.registry.IsPlanted(slot) {
		return nil
	}

	x, y, _ := s.registry.GrowthPosition(slot)
	seed := entities.NewSeedEntity(s.entityManager, slot, x, y)

	rec := &PlantationRecord{
		Seed:       seed,
		Definition: def,
		Slot:       slot,
	}
	if err := s.registry.AddPlanted(rec); err != nil {
		s.entityManager.DestroyEntity(seed)
		return err
	}

	log.Printf("[PlantingSystem] Planted %s on slot %d (seed=%d)", def.ID, slot, seed)
	s.audio.Notify(game.SoundPlant)
	return nil
}
