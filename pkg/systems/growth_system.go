package systems

import (
	"fmt"
	"log"
	"sort"

	"github.com/decker502/plantation/pkg/ecs"
	"github.com/decker502/plantation/pkg/entities"
	"github.com/decker502/plantation/pkg/game"
)

// GrowthPhase 生长实例所处阶段
type GrowthPhase int

const (
	PhaseGrowing GrowthPhase = iota
	PhaseReadyToHarvest
	PhaseExploding // 可收获窗口已结束，爆炸动画播放中
	PhaseHarvested
	PhaseExploded
)

// String 返回阶段名称
func (p GrowthPhase) String() string {
	switch p {
	case PhaseGrowing:
		return "growing"
	case PhaseReadyToHarvest:
		return "ready"
	case PhaseExploding:
		return "exploding"
	case PhaseHarvested:
		return "harvested"
	case PhaseExploded:
		return "exploded"
	default:
		return "unknown"
	}
}

// IsTerminal 是否为终止阶段
func (p GrowthPhase) IsTerminal() bool {
	return p == PhaseHarvested || p == PhaseExploded
}

// ScoreKeeper 收获时接收加分
type ScoreKeeper interface {
	IncreaseScore(amount int) error
}

// GrowthInstance 一个已浇水地块上正在运行的生长状态机
type GrowthInstance struct {
	Record *PlantationRecord

	// Step 已完成的生长步骤数；步骤 k 完成后显示阶段 k-1 的可视实例
	Step   int
	Phase  GrowthPhase
	Visual ecs.EntityID // 当前阶段可视实例，0 表示尚未生成

	ReadyToHarvest    bool
	ExplosionResolved bool

	timer TimerHandle
}

// GrowthSystem 管理地块到生长实例的映射并推进所有实例
type GrowthSystem struct {
	entityManager *ecs.EntityManager
	registry      *SlotRegistry
	scheduler     *Scheduler
	score         ScoreKeeper

	audio game.AudioNotifier
	clips game.ClipPlayer

	instances map[ecs.EntityID]*GrowthInstance
}

// NewGrowthSystem 创建生长系统
//
// 参数：
//   - em: 实体管理器
//   - registry: 地块注册表（重置地块）
//   - scheduler: 协作式调度器
//   - score: 收获加分目标
//   - audio, clips: 外部协作者，可为 nil
func NewGrowthSystem(em *ecs.EntityManager, registry *SlotRegistry, scheduler *Scheduler, score ScoreKeeper, audio game.AudioNotifier, clips game.ClipPlayer) *GrowthSystem {
	if audio == nil {
		audio = game.Nop
	}
	if clips == nil {
		clips = game.Nop
	}
	return &GrowthSystem{
		entityManager: em,
		registry:      registry,
		scheduler:     scheduler,
		score:         score,
		audio:         audio,
		clips:         clips,
		instances:     make(map[ecs.EntityID]*GrowthInstance),
	}
}

// Start 为已浇水地块启动生长流程
//
// 返回：
//   - error: 记录缺少定义、地块未浇水或地块上已有实例时返回错误
func (s *GrowthSystem) Start(rec *PlantationRecord) error {
	if rec == nil || rec.Definition == nil {
		return ErrMissingDefinition
	}
	if !s.registry.IsWatered(rec.Slot) {
		return fmt.Errorf("start growth on slot %d: slot is not watered", rec.Slot)
	}
	if _, exists := s.instances[rec.Slot]; exists {
		return fmt.Errorf("start growth on slot %d: instance already running", rec.Slot)
	}

	inst := &GrowthInstance{
		Record: rec,
		Phase:  PhaseGrowing,
	}
	s.instances[rec.Slot] = inst
	s.scheduleStep(inst)

	log.Printf("[GrowthSystem] Started %s on slot %d (%d steps x %.1fs)",
		rec.Definition.ID, rec.Slot, rec.Definition.GrowthStepCount(), rec.Definition.StepDuration)
	return nil
}

func (s *GrowthSystem) scheduleStep(inst *GrowthInstance) {
	inst.timer = s.scheduler.After(inst.Record.Definition.StepDuration, "growth-step", func() {
		s.advance(inst)
	})
}

// advance 完成一个生长步骤：替换阶段可视实例，首步时消耗种子
func (s *GrowthSystem) advance(inst *GrowthInstance) {
	if !s.isLive(inst) {
		return
	}
	inst.timer = 0
	rec := inst.Record
	def := rec.Definition

	if inst.Step == 0 {
		s.entityManager.DestroyEntity(rec.Seed)
	}
	inst.Step++

	if inst.Visual != 0 {
		s.entityManager.DestroyEntity(inst.Visual)
	}
	stage := inst.Step - 1
	x, y, _ := s.registry.GrowthPosition(rec.Slot)
	inst.Visual = entities.NewGrowthStageEntity(s.entityManager, rec.Slot, stage, def.Stages[stage], x, y)

	if inst.Step < def.GrowthStepCount() {
		s.scheduleStep(inst)
		return
	}

	s.markReady(inst)
}

// markReady 进入可收获状态并立即开始可收获窗口计时
func (s *GrowthSystem) markReady(inst *GrowthInstance) {
	def := inst.Record.Definition

	inst.ReadyToHarvest = true
	inst.Phase = PhaseReadyToHarvest
	s.audio.Notify(game.SoundReady)
	s.clips.PlayClip(inst.Visual, def.LivingClip)

	log.Printf("[GrowthSystem] %s on slot %d is ready to harvest (window %.1fs)",
		def.ID, inst.Record.Slot, def.HarvestWindow)

	inst.timer = s.scheduler.After(def.HarvestWindow, "harvest-window", func() {
		s.windowElapsed(inst)
	})
}

// windowElapsed 可收获窗口结束仍未收获：播放爆炸动画，动画结束后重置地块
func (s *GrowthSystem) windowElapsed(inst *GrowthInstance) {
	if !s.isLive(inst) || inst.ExplosionResolved {
		return
	}
	def := inst.Record.Definition

	inst.ExplosionResolved = true
	inst.Phase = PhaseExploding
	s.clips.PlayClip(inst.Visual, def.ExplosionClip)

	inst.timer = s.scheduler.After(def.ExplosionClipDuration, "explosion", func() {
		if !s.isLive(inst) {
			return
		}
		inst.timer = 0
		s.audio.Notify(game.SoundExplosion)
		s.resetSlot(inst, PhaseExploded)
	})
}

// TryHarvest 尝试收获地块上的作物
//
// 只有处于可收获状态且尚未被爆炸流程占用时才会成功；
// 成功时加分、播放收获音效并重置地块。
//
// 返回：
//   - bool: 收获成功时返回 true
//   - error: 加分失败时返回错误（地块仍会被重置）
func (s *GrowthSystem) TryHarvest(slot ecs.EntityID) (bool, error) {
	inst, ok := s.instances[slot]
	if !ok || !inst.ReadyToHarvest || inst.ExplosionResolved {
		return false, nil
	}

	inst.ExplosionResolved = true
	if inst.timer != 0 {
		s.scheduler.Cancel(inst.timer)
		inst.timer = 0
	}

	def := inst.Record.Definition
	var scoreErr error
	if s.score != nil {
		scoreErr = s.score.IncreaseScore(def.ScoreValue)
	}
	s.audio.Notify(game.SoundHarvest)
	s.resetSlot(inst, PhaseHarvested)

	log.Printf("[GrowthSystem] Harvested %s on slot %d (+%d)", def.ID, slot, def.ScoreValue)
	if scoreErr != nil {
		return true, fmt.Errorf("harvest slot %d: %w", slot, scoreErr)
	}
	return true, nil
}

// resetSlot 两条终止路径共用的清理流程：销毁可视实例，
// 重置地块并移除生长实例。对同一实例只生效一次。
func (s *GrowthSystem) resetSlot(inst *GrowthInstance, terminal GrowthPhase) {
	if !s.isLive(inst) {
		return
	}
	rec := inst.Record
	delete(s.instances, rec.Slot)

	if inst.Visual != 0 {
		s.entityManager.DestroyEntity(inst.Visual)
		inst.Visual = 0
	}
	s.entityManager.DestroyEntity(rec.Seed)

	if _, err := s.registry.ResetSlot(rec.Slot); err != nil {
		log.Printf("[GrowthSystem] Failed to reset slot %d: %v", rec.Slot, err)
	}
	inst.Phase = terminal

	log.Printf("[GrowthSystem] Slot %d reset (%s)", rec.Slot, terminal)
}

func (s *GrowthSystem) isLive(inst *GrowthInstance) bool {
	cur, ok := s.instances[inst.Record.Slot]
	return ok && cur == inst
}

// Instance 返回地块上的生长实例
func (s *GrowthSystem) Instance(slot ecs.EntityID) (*GrowthInstance, bool) {
	inst, ok := s.instances[slot]
	return inst, ok
}

// ActiveCount 返回正在运行的实例数量
func (s *GrowthSystem) ActiveCount() int {
	return len(s.instances)
}

// Slots 返回所有运行中实例的地块（升序）
func (s *GrowthSystem) Slots() []ecs.EntityID {
	slots := make([]ecs.EntityID, 0, len(s.instances))
	for slot := range s.instances {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots
}

// Stop 取消所有实例的等待中的延续，不执行清理（场景销毁时使用）
func (s *GrowthSystem) Stop() {
	for slot, inst := range s.instances {
		if inst.timer != 0 {
			s.scheduler.Cancel(inst.timer)
		}
		delete(s.instances, slot)
	}
}
