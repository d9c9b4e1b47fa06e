package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/decker502/plantation/pkg/components"
	"github.com/decker502/plantation/pkg/config"
	"github.com/decker502/plantation/pkg/ecs"
	"github.com/decker502/plantation/pkg/entities"
	"github.com/decker502/plantation/pkg/game"
	"github.com/decker502/plantation/pkg/systems"
	"github.com/decker502/plantation/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// ScoreTweenDuration 分数滚动动画时长（秒）
	ScoreTweenDuration = 0.6
	// VolumeStep 每次按键调整的音量
	VolumeStep = 0.1

	hudX = 10
	hudY = 10
)

var (
	backgroundColor  = color.RGBA{R: 0x5b, G: 0x8c, B: 0x3a, A: 0xff}
	emptySlotColor   = color.RGBA{R: 0x8b, G: 0x5a, B: 0x2b, A: 0xff}
	seededSlotColor  = color.RGBA{R: 0x6e, G: 0x44, B: 0x1f, A: 0xff}
	wateredSlotColor = color.RGBA{R: 0x4a, G: 0x30, B: 0x1a, A: 0xff}
	seedColor        = color.RGBA{R: 0xf0, G: 0xe0, B: 0xa0, A: 0xff}
	growingColor     = color.RGBA{R: 0x3c, G: 0xc8, B: 0x3c, A: 0xff}
	readyColor       = color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
	explodingColor   = color.RGBA{R: 0xe0, G: 0x30, B: 0x20, A: 0xff}
	waterColor       = color.RGBA{R: 0x40, G: 0x90, B: 0xff, A: 0xa0}
	cursorColor      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	lockedCursor     = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	overlayColor     = color.RGBA{R: 0, G: 0, B: 0, A: 0x90}
)

// GardenScene 一局种植游戏
//
// 场景把玩家输入翻译为核心的三类请求（播种、浇水、收获尝试），
// 同时实现核心需要的外部协作者：动画片段、浇水特效、分数显示、游戏结束。
type GardenScene struct {
	sceneManager *game.SceneManager
	input        InputSource
	audio        game.AudioNotifier
	settings     *game.SettingsManager // 可为 nil
	bestTimes    *game.BestTimeStore   // 可为 nil

	garden *systems.Garden
	grid   utils.GridLayout

	cursorRow, cursorCol int
	paused               bool

	scoreTween *utils.NumberTween

	// 游戏结束信息，在本帧末尾切换到结算场景
	finished     bool
	finalScore   int
	finalElapsed float64
	newRecord    bool
}

// GardenSceneDeps 花园场景依赖
type GardenSceneDeps struct {
	SceneManager *game.SceneManager
	Input        InputSource
	Audio        game.AudioNotifier
	Settings     *game.SettingsManager
	BestTimes    *game.BestTimeStore
}

// NewGardenScene 根据配置创建新的一局
//
// 返回：
//   - error: 配置无效时返回错误
func NewGardenScene(cfg *config.GardenConfig, deps GardenSceneDeps) (*GardenScene, error) {
	if deps.Input == nil {
		deps.Input = utils.EbitenInput{}
	}
	if deps.Audio == nil {
		deps.Audio = game.Nop
	}

	s := &GardenScene{
		sceneManager: deps.SceneManager,
		input:        deps.Input,
		audio:        deps.Audio,
		settings:     deps.Settings,
		bestTimes:    deps.BestTimes,
		grid: utils.GridLayout{
			OriginX: cfg.Layout.OriginX,
			OriginY: cfg.Layout.OriginY,
			Spacing: cfg.Layout.SlotSpacing,
			Rows:    cfg.Layout.Rows,
			Columns: cfg.Layout.Columns,
		},
		scoreTween: utils.NewNumberTween(0, ScoreTweenDuration),
	}

	garden, err := systems.NewGarden(cfg, systems.GardenDeps{
		Audio:    deps.Audio,
		Clips:    s,
		Effects:  s,
		Display:  s,
		GameOver: s,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create garden: %w", err)
	}
	s.garden = garden
	s.syncActiveSlot()

	log.Printf("[GardenScene] New garden %dx%d with %d plantation kinds",
		cfg.Layout.Rows, cfg.Layout.Columns, len(cfg.Plantations))
	return s, nil
}

// Garden 返回花园核心（模拟工具与测试使用）
func (s *GardenScene) Garden() *systems.Garden {
	return s.garden
}

// Cursor 返回光标所在格子
func (s *GardenScene) Cursor() (row, col int) {
	return s.cursorRow, s.cursorCol
}

// IsPaused 返回是否暂停
func (s *GardenScene) IsPaused() bool {
	return s.paused
}

// Update 处理输入并推进花园
func (s *GardenScene) Update(deltaTime float64) {
	ev := s.input.Poll()

	if ev.Pause {
		s.paused = !s.paused
		log.Printf("[GardenScene] Paused: %v", s.paused)
	}
	if s.paused {
		s.updatePaused(ev)
		return
	}

	s.handleInput(ev)
	s.garden.Update(deltaTime)
	s.syncActiveSlot()
	s.advanceClips(deltaTime)
	s.scoreTween.Update(deltaTime)

	if s.finished && s.sceneManager != nil {
		s.sceneManager.SwitchTo(NewResultScene(s.sceneManager, s.input, ResultSummary{
			Score:     s.finalScore,
			Elapsed:   s.finalElapsed,
			NewRecord: s.newRecord,
			BestTimes: s.bestTimes,
		}))
	}
}

// updatePaused 暂停时只处理重新开始和音量设置，时钟不前进
func (s *GardenScene) updatePaused(ev utils.InputEvents) {
	if ev.Restart && s.sceneManager != nil {
		s.garden.Stop()
		s.sceneManager.StartNewGame()
		return
	}
	if s.settings == nil || (ev.VolumeDelta == 0 && !ev.ToggleSound) {
		return
	}

	if ev.VolumeDelta != 0 {
		s.settings.SetVolume(s.settings.GetSettings().Volume + float64(ev.VolumeDelta)*VolumeStep)
	}
	if ev.ToggleSound {
		s.settings.SetSoundEnabled(!s.settings.GetSettings().SoundEnabled)
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[GardenScene] Warning: Failed to save settings: %v", err)
	}
}

func (s *GardenScene) handleInput(ev utils.InputEvents) {
	if ev.Cycle {
		s.garden.Selector.Cycle()
	}

	// 浇水进行中时光标不能移动
	if !s.garden.Watering.InProgress() {
		if ev.MoveRow != 0 || ev.MoveCol != 0 {
			row, col := s.grid.StepCell(s.cursorRow, s.cursorCol, ev.MoveRow, ev.MoveCol)
			s.moveCursor(row, col)
		}
		if ev.PointerPressed {
			if row, col, ok := s.grid.ScreenToCell(ev.PointerX, ev.PointerY); ok {
				// 点击光标所在格子等同于按下对应的操作键
				if row == s.cursorRow && col == s.cursorCol {
					s.tapActiveSlot(&ev)
				}
				s.moveCursor(row, col)
			}
		}
	}

	slot := s.garden.Registry.ActiveSlot()
	if ev.Plant {
		if s.garden.Registry.IsWatered(slot) {
			s.harvest(slot)
		} else if err := s.garden.Plant(slot); err != nil {
			log.Printf("[GardenScene] Plant failed: %v", err)
		}
	}
	if ev.Water {
		s.garden.Water(slot)
	}
}

// tapActiveSlot 根据地块状态把点击翻译为播种或浇水
func (s *GardenScene) tapActiveSlot(ev *utils.InputEvents) {
	tag, ok := s.garden.Registry.Tag(s.garden.Registry.ActiveSlot())
	if !ok {
		return
	}
	switch tag {
	case components.SlotSeeded:
		ev.Water = true
	default:
		ev.Plant = true
	}
}

// moveCursor 光标进入新格子：设为当前地块并尝试收获
func (s *GardenScene) moveCursor(row, col int) {
	if row == s.cursorRow && col == s.cursorCol {
		return
	}
	s.cursorRow, s.cursorCol = row, col
	s.syncActiveSlot()
	s.harvest(s.garden.Registry.ActiveSlot())
}

func (s *GardenScene) harvest(slot ecs.EntityID) {
	if _, err := s.garden.Harvest(slot); err != nil {
		log.Printf("[GardenScene] Harvest failed: %v", err)
	}
}

// syncActiveSlot 地块实体被替换后重新指向光标所在格子的当前实体
func (s *GardenScene) syncActiveSlot() {
	s.garden.Registry.SetActiveSlot(s.garden.Registry.SlotAt(s.cursorRow, s.cursorCol))
}

func (s *GardenScene) advanceClips(deltaTime float64) {
	em := s.garden.EntityManager
	for _, id := range ecs.GetEntitiesWith1[*components.GrowthStageComponent](em) {
		stage, _ := ecs.GetComponent[*components.GrowthStageComponent](em, id)
		if stage.Clip != "" {
			stage.ClipTime += deltaTime
		}
	}
}

// PlayClip 实现 game.ClipPlayer：记录在阶段实例上，由 Draw 呈现
func (s *GardenScene) PlayClip(instance ecs.EntityID, clip string) {
	stage, ok := ecs.GetComponent[*components.GrowthStageComponent](s.garden.EntityManager, instance)
	if !ok {
		return
	}
	stage.Clip = clip
	stage.ClipTime = 0
}

// PlayWateringEffect 实现 game.EffectPlayer：生成短时特效实体
func (s *GardenScene) PlayWateringEffect(slot ecs.EntityID, duration float64) {
	x, y, ok := s.garden.Registry.Position(slot)
	if !ok {
		return
	}
	entities.NewWateringEffectEntity(s.garden.EntityManager, slot, x, y, duration)
}

// AnimateScore 实现 game.ScoreDisplay
func (s *GardenScene) AnimateScore(from, to int) {
	s.scoreTween.Start(from, to)
}

// OnGameOver 实现 game.GameOverHandler：记录最佳时间，本帧结束后切换到结算界面
func (s *GardenScene) OnGameOver(finalScore int, elapsed float64) {
	s.finished = true
	s.finalScore = finalScore
	s.finalElapsed = elapsed
	s.audio.Notify(game.SoundFinish)

	if s.bestTimes != nil {
		newRecord, err := s.bestTimes.Record(elapsed, finalScore)
		if err != nil {
			log.Printf("[GardenScene] Warning: Failed to save best time: %v", err)
		}
		s.newRecord = newRecord
	}
	log.Printf("[GardenScene] Garden complete: score=%d time=%.1fs", finalScore, elapsed)
}

// Draw 绘制地块、作物、特效、光标和 HUD
func (s *GardenScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	s.drawSlots(screen)
	s.drawSeeds(screen)
	s.drawStages(screen)
	s.drawWateringEffects(screen)
	s.drawCursor(screen)
	s.drawHUD(screen)

	if s.paused {
		s.drawPauseOverlay(screen)
	}
}

func (s *GardenScene) drawSlots(screen *ebiten.Image) {
	half := float32(config.SlotDrawSize / 2)
	registry := s.garden.Registry
	for _, slot := range registry.Slots() {
		x, y, _ := registry.Position(slot)
		tag, _ := registry.Tag(slot)

		clr := emptySlotColor
		switch tag {
		case components.SlotSeeded:
			clr = seededSlotColor
		case components.SlotWatered:
			clr = wateredSlotColor
		}
		vector.DrawFilledRect(screen, float32(x)-half, float32(y)-half, half*2, half*2, clr, false)
	}
}

func (s *GardenScene) drawSeeds(screen *ebiten.Image) {
	em := s.garden.EntityManager
	for _, id := range ecs.GetEntitiesWith2[*components.SeedComponent, *components.PositionComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), 6, seedColor, true)
	}
}

func (s *GardenScene) drawStages(screen *ebiten.Image) {
	em := s.garden.EntityManager
	for _, id := range ecs.GetEntitiesWith2[*components.GrowthStageComponent, *components.PositionComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		stage, _ := ecs.GetComponent[*components.GrowthStageComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

		radius := float32(10 + 8*stage.Stage)
		clr := growingColor
		if inst, ok := s.garden.Growth.Instance(stage.Slot); ok {
			switch inst.Phase {
			case systems.PhaseReadyToHarvest:
				clr = readyColor
				// 成熟后轻微脉动
				radius += float32(3 * math.Sin(stage.ClipTime*6))
			case systems.PhaseExploding:
				clr = explodingColor
				radius += float32(20 * stage.ClipTime)
			}
		}
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), radius, clr, true)
	}
}

func (s *GardenScene) drawWateringEffects(screen *ebiten.Image) {
	em := s.garden.EntityManager
	for _, id := range ecs.GetEntitiesWith2[*components.WateringEffectComponent, *components.PositionComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		p := s.garden.Lifetime.Progress(id)
		vector.StrokeCircle(screen, float32(pos.X), float32(pos.Y), float32(20+40*p), 3, waterColor, true)
	}
}

func (s *GardenScene) drawCursor(screen *ebiten.Image) {
	x, y := s.grid.CellToScreen(s.cursorRow, s.cursorCol)
	half := float32(config.SlotDrawSize/2 + 4)
	clr := cursorColor
	if s.garden.Watering.InProgress() {
		clr = lockedCursor
	}
	vector.StrokeRect(screen, float32(x)-half, float32(y)-half, half*2, half*2, 3, clr, false)
}

func (s *GardenScene) drawHUD(screen *ebiten.Image) {
	progress := s.garden.Progress
	active := s.garden.Selector.Active()

	lines := []string{
		fmt.Sprintf("Score: %d / %d", s.scoreTween.Value(), progress.MaxScore()),
		fmt.Sprintf("Time: %s", FormatDuration(progress.Elapsed())),
		fmt.Sprintf("Seed: %s (%d/%d unlocked)", active.Name, len(s.garden.Selector.Unlocked()), len(s.garden.Config.Plantations)),
	}
	if utils.IsMobile() {
		lines = append(lines, "Tap a slot to move there")
	} else {
		lines = append(lines, "Move: arrows/WASD  Plant: Space  Water: E  Switch: Tab  Pause: Esc")
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, hudX, hudY+i*16)
	}
}

func (s *GardenScene) drawPauseOverlay(screen *ebiten.Image) {
	w := float32(screen.Bounds().Dx())
	h := float32(screen.Bounds().Dy())
	vector.DrawFilledRect(screen, 0, 0, w, h, overlayColor, false)

	lines := []string{"PAUSED", "Esc: resume   R: restart"}
	if s.settings != nil {
		settings := s.settings.GetSettings()
		lines = append(lines, fmt.Sprintf("Sound: %.0f%% (-/=)  Enabled: %v (M)", settings.Volume*100, settings.SoundEnabled))
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(w)/2-120, int(h)/2-20+i*16)
	}
}

// FormatDuration 把秒数格式化为 mm:ss
func FormatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
