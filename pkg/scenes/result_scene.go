package scenes

import (
	"fmt"
	"image/color"

	"github.com/decker502/plantation/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

var resultBackground = color.RGBA{R: 0x20, G: 0x30, B: 0x20, A: 0xff}

// ResultSummary 一局结束时的结算数据
type ResultSummary struct {
	Score     int
	Elapsed   float64
	NewRecord bool
	BestTimes *game.BestTimeStore // 可为 nil
}

// ResultScene 结算界面：显示分数、用时和最佳时间，回车开始新一局
type ResultScene struct {
	sceneManager *game.SceneManager
	input        InputSource
	summary      ResultSummary
}

// NewResultScene 创建结算场景
func NewResultScene(sm *game.SceneManager, input InputSource, summary ResultSummary) *ResultScene {
	return &ResultScene{
		sceneManager: sm,
		input:        input,
		summary:      summary,
	}
}

// Summary 返回结算数据
func (s *ResultScene) Summary() ResultSummary {
	return s.summary
}

// Update 等待确认后开始新一局
func (s *ResultScene) Update(deltaTime float64) {
	if s.input == nil {
		return
	}
	if ev := s.input.Poll(); ev.Confirm && s.sceneManager != nil {
		s.sceneManager.StartNewGame()
	}
}

// Lines 返回结算界面显示的文本
func (s *ResultScene) Lines() []string {
	lines := []string{
		"GARDEN COMPLETE",
		fmt.Sprintf("Score: %d", s.summary.Score),
		fmt.Sprintf("Time:  %s", FormatDuration(s.summary.Elapsed)),
	}
	if s.summary.BestTimes != nil {
		if best, ok := s.summary.BestTimes.Best(); ok {
			lines = append(lines, fmt.Sprintf("Best:  %s", FormatDuration(best.Seconds)))
		}
	}
	if s.summary.NewRecord {
		lines = append(lines, "New best time!")
	}
	return append(lines, "", "Press Enter to play again")
}

// Draw 绘制结算文本
func (s *ResultScene) Draw(screen *ebiten.Image) {
	screen.Fill(resultBackground)

	x := screen.Bounds().Dx()/2 - 80
	y := screen.Bounds().Dy()/2 - 60
	for i, line := range s.Lines() {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*18)
	}
}
