package game

import (
	"log"

	"github.com/decker502/plantation/pkg/config"
)

// PlantationSelector 管理当前选中的作物（玩家播种时使用的定义）
// 只能在已解锁的作物之间切换
type PlantationSelector struct {
	definitions []*config.PlantationDefinition
	progress    *ProgressTracker
	audio       AudioNotifier
	activeIndex int
}

// NewPlantationSelector 创建作物选择器，初始选中第一种作物
//
// 返回：
//   - error: 定义表为空时返回 ErrNoDefinitions
func NewPlantationSelector(definitions []*config.PlantationDefinition, progress *ProgressTracker, audio AudioNotifier) (*PlantationSelector, error) {
	if len(definitions) == 0 {
		return nil, ErrNoDefinitions
	}
	if audio == nil {
		audio = Nop
	}
	return &PlantationSelector{
		definitions: definitions,
		progress:    progress,
		audio:       audio,
	}, nil
}

// Active 返回当前选中的作物定义
func (s *PlantationSelector) Active() *config.PlantationDefinition {
	return s.definitions[s.activeIndex]
}

// Cycle 切换到下一种已解锁的作物（循环）
// 只有一种作物解锁时保持不变
//
// 返回：
//   - bool: 选中的作物是否发生变化
func (s *PlantationSelector) Cycle() bool {
	unlocked := s.unlockedIndices()
	if len(unlocked) <= 1 {
		return false
	}

	next := unlocked[0]
	for i, idx := range unlocked {
		if idx == s.activeIndex {
			next = unlocked[(i+1)%len(unlocked)]
			break
		}
	}

	if next == s.activeIndex {
		return false
	}
	s.activeIndex = next
	s.audio.Notify(SoundChangeInventory)
	log.Printf("[PlantationSelector] Active plantation: %s", s.Active().ID)
	return true
}

// Unlocked 返回当前已解锁的作物定义（保持定义表顺序）
func (s *PlantationSelector) Unlocked() []*config.PlantationDefinition {
	indices := s.unlockedIndices()
	defs := make([]*config.PlantationDefinition, 0, len(indices))
	for _, idx := range indices {
		defs = append(defs, s.definitions[idx])
	}
	return defs
}

func (s *PlantationSelector) unlockedIndices() []int {
	indices := make([]int, 0, len(s.definitions))
	for i, def := range s.definitions {
		if s.progress.IsUnlocked(def) {
			indices = append(indices, i)
		}
	}
	return indices
}
