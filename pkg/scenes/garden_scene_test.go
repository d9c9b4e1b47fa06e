package scenes

import (
	"math"
	"testing"

	"github.com/decker502/plantation/pkg/components"
	"github.com/decker502/plantation/pkg/config"
	"github.com/decker502/plantation/pkg/ecs"
	"github.com/decker502/plantation/pkg/game"
	"github.com/decker502/plantation/pkg/utils"
)

// testConfig 单一作物：两步各 5 秒，窗口 3 秒，得 10 分即结束
func testConfig() *config.GardenConfig {
	return &config.GardenConfig{
		Layout: config.LayoutConfig{
			Rows: 2, Columns: 3, OriginX: 100, OriginY: 100, SlotSpacing: 100,
		},
		Watering: config.WateringConfig{EffectDuration: 1},
		Progress: config.ProgressConfig{MaxScore: 10, UnlockScoreStep: 10},
		Plantations: []config.PlantationDefinition{
			{
				ID:                    "carrot",
				Name:                  "Carrot",
				Stages:                []string{"sprout", "ripe"},
				StepDuration:          5,
				HarvestWindow:         3,
				ScoreValue:            10,
				LivingClip:            "living",
				ExplosionClip:         "explosion",
				ExplosionClipDuration: 0.5,
			},
		},
	}
}

func newTestScene(t *testing.T, input *utils.ScriptedInput) (*game.SceneManager, *GardenScene) {
	t.Helper()

	sm := game.NewSceneManager()
	deps := GardenSceneDeps{
		SceneManager: sm,
		Input:        input,
		BestTimes:    game.NewBestTimeStore(nil),
		Settings:     game.NewSettingsManager(nil),
	}
	scene, err := NewGardenScene(testConfig(), deps)
	if err != nil {
		t.Fatalf("NewGardenScene failed: %v", err)
	}
	sm.SetSceneFactory(func() game.Scene {
		next, err := NewGardenScene(testConfig(), deps)
		if err != nil {
			return nil
		}
		return next
	})
	sm.SwitchTo(scene)
	return sm, scene
}

// TestGardenSceneFullRound 播种 -> 浇水 -> 成熟 -> 走回地块收获 -> 结算 -> 新一局
func TestGardenSceneFullRound(t *testing.T) {
	input := &utils.ScriptedInput{}
	sm, scene := newTestScene(t, input)
	g := scene.Garden()

	input.Push(utils.InputEvents{Plant: true})
	sm.Update(0)
	if tag, _ := g.Registry.Tag(g.Registry.SlotAt(0, 0)); tag != components.SlotSeeded {
		t.Fatalf("Expected seeded slot, got %s", tag)
	}

	input.Push(utils.InputEvents{Water: true})
	sm.Update(0)
	if !g.Watering.InProgress() {
		t.Fatal("Expected watering in progress")
	}

	// 浇水期间光标不能移动
	input.Push(utils.InputEvents{MoveCol: 1})
	sm.Update(1)
	if row, col := scene.Cursor(); row != 0 || col != 0 {
		t.Errorf("Cursor moved during watering: (%d,%d)", row, col)
	}
	if tag, _ := g.Registry.Tag(g.Registry.SlotAt(0, 0)); tag != components.SlotWatered {
		t.Fatalf("Expected watered slot, got %s", tag)
	}

	// 离开地块，等待成熟
	input.Push(utils.InputEvents{MoveCol: 1})
	sm.Update(10)
	if row, col := scene.Cursor(); row != 0 || col != 1 {
		t.Errorf("Expected cursor at (0,1), got (%d,%d)", row, col)
	}
	inst, ok := g.Growth.Instance(g.Registry.SlotAt(0, 0))
	if !ok || !inst.ReadyToHarvest {
		t.Fatal("Expected ready plantation")
	}
	stage, ok := getStage(scene, inst.Visual)
	if !ok || stage.Clip != "living" {
		t.Errorf("Expected living clip on ready stage, got %+v", stage)
	}

	// 走回地块即收获
	input.Push(utils.InputEvents{MoveCol: -1})
	sm.Update(1.0 / 60)

	if g.Progress.GetScore() != 10 || !g.Progress.IsGameOver() {
		t.Fatalf("Expected game over with score 10, got score=%d over=%v", g.Progress.GetScore(), g.Progress.IsGameOver())
	}
	result, ok := sm.GetCurrentScene().(*ResultScene)
	if !ok {
		t.Fatalf("Expected ResultScene, got %T", sm.GetCurrentScene())
	}
	summary := result.Summary()
	if summary.Score != 10 || summary.Elapsed != 11 {
		t.Errorf("Unexpected summary %+v", summary)
	}
	if !summary.NewRecord {
		t.Error("First completion should be a new best time")
	}

	input.Push(utils.InputEvents{Confirm: true})
	sm.Update(1.0 / 60)
	next, ok := sm.GetCurrentScene().(*GardenScene)
	if !ok || next == scene {
		t.Fatalf("Expected a new GardenScene, got %T", sm.GetCurrentScene())
	}
}

func getStage(scene *GardenScene, id ecs.EntityID) (*components.GrowthStageComponent, bool) {
	return ecs.GetComponent[*components.GrowthStageComponent](scene.Garden().EntityManager, id)
}

// TestGardenSceneExplosionWhileAway 不回到地块时作物爆炸，分数不变
func TestGardenSceneExplosionWhileAway(t *testing.T) {
	input := &utils.ScriptedInput{}
	sm, scene := newTestScene(t, input)
	g := scene.Garden()

	input.Push(utils.InputEvents{Plant: true, Water: true})
	sm.Update(1)
	input.Push(utils.InputEvents{MoveRow: 1})
	sm.Update(10)

	// 成熟 3 秒后窗口结束，再过 0.5 秒爆炸动画结束
	sm.Update(3)
	inst, ok := g.Growth.Instance(g.Registry.SlotAt(0, 0))
	if !ok || inst.Phase.String() != "exploding" {
		t.Fatalf("Expected exploding instance, got %+v", inst)
	}
	stage, _ := getStage(scene, inst.Visual)
	if stage.Clip != "explosion" {
		t.Errorf("Expected explosion clip, got %q", stage.Clip)
	}

	sm.Update(0.5)
	if g.Growth.ActiveCount() != 0 {
		t.Error("Expected instance removed after explosion")
	}
	if tag, _ := g.Registry.Tag(g.Registry.SlotAt(0, 0)); tag != components.SlotEmpty {
		t.Errorf("Expected empty slot after explosion, got %s", tag)
	}
	if g.Progress.GetScore() != 0 {
		t.Errorf("Explosion must not change score, got %d", g.Progress.GetScore())
	}
	if _, ok := sm.GetCurrentScene().(*GardenScene); !ok {
		t.Error("Scene should stay in the garden")
	}
}

// TestGardenScenePause 暂停时时钟和计时器都不前进
func TestGardenScenePause(t *testing.T) {
	input := &utils.ScriptedInput{}
	sm, scene := newTestScene(t, input)
	g := scene.Garden()

	input.Push(utils.InputEvents{Plant: true, Water: true})
	sm.Update(0.5)

	input.Push(utils.InputEvents{Pause: true})
	sm.Update(5)
	if !scene.IsPaused() {
		t.Fatal("Expected paused scene")
	}
	if g.Progress.Elapsed() != 0.5 {
		t.Errorf("Clock advanced while paused: %f", g.Progress.Elapsed())
	}
	if !g.Watering.InProgress() {
		t.Error("Watering should still be pending while paused")
	}

	// 暂停中调整音量
	input.Push(utils.InputEvents{VolumeDelta: 1, ToggleSound: true})
	sm.Update(1)
	settings := scene.settings.GetSettings()
	if math.Abs(settings.Volume-0.6) > 1e-9 || settings.SoundEnabled {
		t.Errorf("Unexpected settings after adjustment: %+v", settings)
	}

	input.Push(utils.InputEvents{Pause: true})
	sm.Update(0.5)
	if scene.IsPaused() {
		t.Fatal("Expected resumed scene")
	}
	if g.Watering.InProgress() {
		t.Error("Watering should finish once time advances again")
	}
}

// TestGardenScenePauseRestart 暂停菜单中重新开始
func TestGardenScenePauseRestart(t *testing.T) {
	input := &utils.ScriptedInput{}
	sm, scene := newTestScene(t, input)

	input.Push(utils.InputEvents{Pause: true})
	sm.Update(0)
	input.Push(utils.InputEvents{Restart: true})
	sm.Update(0)

	next, ok := sm.GetCurrentScene().(*GardenScene)
	if !ok || next == scene {
		t.Fatalf("Expected a fresh GardenScene after restart, got %T", sm.GetCurrentScene())
	}
}

// TestGardenScenePointer 点击格子移动光标
func TestGardenScenePointer(t *testing.T) {
	input := &utils.ScriptedInput{}
	sm, scene := newTestScene(t, input)

	input.Push(utils.InputEvents{PointerPressed: true, PointerX: 300, PointerY: 200})
	sm.Update(0)
	if row, col := scene.Cursor(); row != 1 || col != 2 {
		t.Errorf("Expected cursor at (1,2), got (%d,%d)", row, col)
	}
	if active := scene.Garden().Registry.ActiveSlot(); active != scene.Garden().Registry.SlotAt(1, 2) {
		t.Errorf("Expected active slot to follow the cursor")
	}

	// 网格外的点击被忽略
	input.Push(utils.InputEvents{PointerPressed: true, PointerX: 5, PointerY: 5})
	sm.Update(0)
	if row, col := scene.Cursor(); row != 1 || col != 2 {
		t.Errorf("Click outside the grid moved the cursor to (%d,%d)", row, col)
	}
}

// TestGardenSceneTapCursorCell 点击光标所在格子：空地播种，已播种则浇水
func TestGardenSceneTapCursorCell(t *testing.T) {
	input := &utils.ScriptedInput{}
	sm, scene := newTestScene(t, input)
	registry := scene.Garden().Registry

	tap := utils.InputEvents{PointerPressed: true, PointerX: 100, PointerY: 100}

	input.Push(tap)
	sm.Update(0)
	if !registry.IsPlanted(registry.SlotAt(0, 0)) {
		t.Fatal("Expected first tap to plant the cursor slot")
	}
	if scene.Garden().Watering.InProgress() {
		t.Error("First tap should not start watering")
	}

	input.Push(tap)
	sm.Update(0)
	if !scene.Garden().Watering.InProgress() {
		t.Error("Expected second tap to start watering")
	}
}

// TestGardenSceneWateringEffect 浇水特效实体在特效时长后清理
func TestGardenSceneWateringEffect(t *testing.T) {
	input := &utils.ScriptedInput{}
	sm, scene := newTestScene(t, input)
	em := scene.Garden().EntityManager

	input.Push(utils.InputEvents{Plant: true, Water: true})
	sm.Update(0)
	if n := len(ecs.GetEntitiesWith1[*components.WateringEffectComponent](em)); n != 1 {
		t.Fatalf("Expected 1 watering effect, got %d", n)
	}

	sm.Update(1)
	if n := len(ecs.GetEntitiesWith1[*components.WateringEffectComponent](em)); n != 0 {
		t.Errorf("Expected watering effect removed, got %d", n)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{59.9, "00:59"},
		{61, "01:01"},
		{3600, "60:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
