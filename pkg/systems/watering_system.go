package systems

import (
	"log"

	"github.com/decker502/plantation/pkg/components"
	"github.com/decker502/plantation/pkg/ecs"
	"github.com/decker502/plantation/pkg/game"
)

// WateringSystem 全局唯一的浇水闸门
//
// 任意时刻整个花园最多只有一个浇水流程在进行；
// 流程进行期间到达的浇水请求被直接丢弃（不排队）。
type WateringSystem struct {
	registry  *SlotRegistry
	growth    *GrowthSystem
	scheduler *Scheduler

	effectDuration float64

	audio   game.AudioNotifier
	effects game.EffectPlayer

	inProgress bool
	pending    TimerHandle
}

// NewWateringSystem 创建浇水系统
//
// 参数：
//   - registry: 地块注册表
//   - growth: 浇水完成后接管地块的生长系统
//   - scheduler: 协作式调度器
//   - effectDuration: 浇水特效持续时间（秒）
//   - audio, effects: 外部协作者，可为 nil
func NewWateringSystem(registry *SlotRegistry, growth *GrowthSystem, scheduler *Scheduler, effectDuration float64, audio game.AudioNotifier, effects game.EffectPlayer) *WateringSystem {
	if audio == nil {
		audio = game.Nop
	}
	if effects == nil {
		effects = game.Nop
	}
	return &WateringSystem{
		registry:       registry,
		growth:         growth,
		scheduler:      scheduler,
		effectDuration: effectDuration,
		audio:          audio,
		effects:        effects,
	}
}

// InProgress 返回是否有浇水流程正在进行
func (s *WateringSystem) InProgress() bool {
	return s.inProgress
}

// RequestWater 对已播种地块浇水
//
// 目标必须是"已播种未浇水"且存在种植记录，否则静默忽略；
// 已有浇水流程进行时请求被丢弃。
//
// 返回：
//   - bool: 请求被接受并开始浇水流程时返回 true
func (s *WateringSystem) RequestWater(slot ecs.EntityID) bool {
	tag, ok := s.registry.Tag(slot)
	if !ok || tag != components.SlotSeeded {
		return false
	}
	if _, ok := s.registry.Record(slot); !ok {
		return false
	}
	if s.inProgress {
		log.Printf("[WateringSystem] Watering already in progress, request for slot %d dropped", slot)
		return false
	}

	s.inProgress = true
	s.effects.PlayWateringEffect(slot, s.effectDuration)
	s.audio.Notify(game.SoundWater)

	s.pending = s.scheduler.After(s.effectDuration, "watering", func() {
		s.finish(slot)
	})
	return true
}

// finish 浇水特效结束后把地块提升为已浇水状态并启动生长
func (s *WateringSystem) finish(slot ecs.EntityID) {
	defer func() {
		s.inProgress = false
		s.pending = 0
	}()

	newSlot, err := s.registry.PromoteToWatered(slot)
	if err != nil {
		log.Printf("[WateringSystem] Failed to promote slot %d: %v", slot, err)
		return
	}

	rec, _ := s.registry.Record(newSlot)
	if err := s.growth.Start(rec); err != nil {
		log.Printf("[WateringSystem] Failed to start growth on slot %d: %v", newSlot, err)
		return
	}

	log.Printf("[WateringSystem] Slot %d watered (now %d), growth started", slot, newSlot)
}

// Stop 放弃进行中的浇水流程（场景销毁时使用）
func (s *WateringSystem) Stop() {
	if s.pending != 0 {
		s.scheduler.Cancel(s.pending)
	}
	s.pending = 0
	s.inProgress = false
}
