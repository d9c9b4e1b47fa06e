package systems

import (
	"testing"

	"github.com/decker502/plantation/pkg/config"
	"github.com/decker502/plantation/pkg/ecs"
	"github.com/decker502/plantation/pkg/game"
	"github.com/stretchr/testify/require"
)

// recordingAudio 统计各类音效通知次数
type recordingAudio struct {
	counts map[game.SoundEvent]int
}

func newRecordingAudio() *recordingAudio {
	return &recordingAudio{counts: make(map[game.SoundEvent]int)}
}

func (a *recordingAudio) Notify(event game.SoundEvent) {
	a.counts[event]++
}

type clipCall struct {
	instance ecs.EntityID
	clip     string
}

// recordingClips 记录动画片段播放请求
type recordingClips struct {
	calls []clipCall
}

func (c *recordingClips) PlayClip(instance ecs.EntityID, clip string) {
	c.calls = append(c.calls, clipCall{instance: instance, clip: clip})
}

// recordingEffects 记录浇水特效播放请求
type recordingEffects struct {
	slots []ecs.EntityID
}

func (e *recordingEffects) PlayWateringEffect(slot ecs.EntityID, duration float64) {
	e.slots = append(e.slots, slot)
}

type gameOverCall struct {
	score   int
	elapsed float64
}

// recordingGameOver 记录游戏结束回调
type recordingGameOver struct {
	calls []gameOverCall
}

func (r *recordingGameOver) OnGameOver(finalScore int, elapsed float64) {
	r.calls = append(r.calls, gameOverCall{score: finalScore, elapsed: elapsed})
}

// scenarioConfig 两步生长、每步 5 秒、可收获窗口 3 秒、得分 10
// 浇水特效为 0 秒，生长从浇水当帧开始计时
func scenarioConfig() *config.GardenConfig {
	return &config.GardenConfig{
		Layout: config.LayoutConfig{
			Rows:         2,
			Columns:      2,
			OriginX:      100,
			OriginY:      100,
			SlotSpacing:  100,
			GrowthOffset: -10,
		},
		Watering: config.WateringConfig{EffectDuration: 0},
		Progress: config.ProgressConfig{MaxScore: 100, UnlockScoreStep: 10},
		Plantations: []config.PlantationDefinition{
			{
				ID:                    "carrot",
				Name:                  "Carrot",
				Stages:                []string{"carrot_sprout", "carrot_ripe"},
				StepDuration:          5,
				HarvestWindow:         3,
				ScoreValue:            10,
				UnlockTier:            0,
				LivingClip:            "carrot_living",
				ExplosionClip:         "carrot_explosion",
				ExplosionClipDuration: 0,
			},
			{
				ID:                    "pumpkin",
				Name:                  "Pumpkin",
				Stages:                []string{"pumpkin_sprout", "pumpkin_vine", "pumpkin_ripe"},
				StepDuration:          4,
				HarvestWindow:         2,
				ScoreValue:            20,
				UnlockTier:            1,
				LivingClip:            "pumpkin_living",
				ExplosionClip:         "pumpkin_explosion",
				ExplosionClipDuration: 1,
			},
		},
	}
}

type testGarden struct {
	*Garden
	audio    *recordingAudio
	clips    *recordingClips
	effects  *recordingEffects
	gameOver *recordingGameOver
}

func newTestGarden(t *testing.T, cfg *config.GardenConfig) *testGarden {
	t.Helper()

	tg := &testGarden{
		audio:    newRecordingAudio(),
		clips:    &recordingClips{},
		effects:  &recordingEffects{},
		gameOver: &recordingGameOver{},
	}
	g, err := NewGarden(cfg, GardenDeps{
		Audio:    tg.audio,
		Clips:    tg.clips,
		Effects:  tg.effects,
		GameOver: tg.gameOver,
	})
	require.NoError(t, err)
	tg.Garden = g
	return tg
}

// requireConsistent 断言地块标签与记录集合一致
func requireConsistent(t *testing.T, g *Garden) {
	t.Helper()
	require.NoError(t, g.Registry.Validate())
}

// plantAndWater 在格子上播种并浇水，返回浇水后的地块
func plantAndWater(t *testing.T, g *Garden, row, col int) ecs.EntityID {
	t.Helper()

	slot := g.Registry.SlotAt(row, col)
	require.NoError(t, g.Plant(slot))
	require.True(t, g.Water(slot))
	g.Update(g.Config.Watering.EffectDuration)

	watered := g.Registry.SlotAt(row, col)
	require.NotEqual(t, slot, watered)
	require.True(t, g.Registry.IsWatered(watered))
	requireConsistent(t, g)
	return watered
}
