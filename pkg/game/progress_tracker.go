package game

import (
	"fmt"
	"log"

	"github.com/decker502/plantation/pkg/config"
)

// ProgressTracker 管理分数、作物解锁层级和游戏结束状态
//
// 不变量：
//   - score 只增不减
//   - unlockTier 只增不减，且不超过作物定义数量
//   - gameOver 只会从 false 变为 true 一次
type ProgressTracker struct {
	rules           config.ProgressConfig
	definitionCount int

	score      int
	unlockTier int // 已解锁作物数量，初始为 1
	gameOver   bool
	elapsed    float64 // 游戏进行时间（秒）

	display  ScoreDisplay
	onFinish GameOverHandler
}

// NewProgressTracker 创建进度追踪器
//
// 参数：
//   - rules: 分数上限与解锁步长
//   - definitionCount: 作物定义总数（解锁层级上限）
//   - display: 分数显示协作者，可为 nil
//   - onFinish: 游戏结束协作者，可为 nil
func NewProgressTracker(rules config.ProgressConfig, definitionCount int, display ScoreDisplay, onFinish GameOverHandler) *ProgressTracker {
	if display == nil {
		display = Nop
	}
	if onFinish == nil {
		onFinish = Nop
	}
	return &ProgressTracker{
		rules:           rules,
		definitionCount: definitionCount,
		unlockTier:      1,
		display:         display,
		onFinish:        onFinish,
	}
}

// IncreaseScore 增加分数
//
// 每次调用最多解锁一个新层级：即使一次加分跨过多个阈值，也只前进一级。
// 分数达到上限时设置游戏结束并通知协作者（只通知一次）。
//
// 返回：
//   - error: amount 为负时返回 ErrNegativeScore，分数不变
func (p *ProgressTracker) IncreaseScore(amount int) error {
	if amount < 0 {
		return fmt.Errorf("increase score by %d: %w", amount, ErrNegativeScore)
	}

	oldScore := p.score
	p.score += amount

	if p.score >= p.rules.UnlockScoreStep*p.unlockTier && p.unlockTier < p.definitionCount {
		p.unlockTier++
		log.Printf("[ProgressTracker] Unlock tier raised to %d (score=%d)", p.unlockTier, p.score)
	}

	p.display.AnimateScore(oldScore, p.score)

	if p.score >= p.rules.MaxScore && !p.gameOver {
		p.gameOver = true
		log.Printf("[ProgressTracker] Game over: score=%d elapsed=%.2fs", p.score, p.elapsed)
		p.onFinish.OnGameOver(p.score, p.elapsed)
	}

	return nil
}

// Advance 推进游戏时间，游戏结束后停止计时
func (p *ProgressTracker) Advance(deltaTime float64) {
	if p.gameOver || deltaTime <= 0 {
		return
	}
	p.elapsed += deltaTime
}

// GetScore 返回当前分数
func (p *ProgressTracker) GetScore() int {
	return p.score
}

// UnlockTier 返回当前已解锁的作物数量
func (p *ProgressTracker) UnlockTier() int {
	return p.unlockTier
}

// IsUnlocked 检查作物定义是否已解锁
func (p *ProgressTracker) IsUnlocked(def *config.PlantationDefinition) bool {
	return def != nil && def.UnlockTier < p.unlockTier
}

// IsGameOver 返回游戏是否已结束
func (p *ProgressTracker) IsGameOver() bool {
	return p.gameOver
}

// Elapsed 返回游戏进行时间（秒）
func (p *ProgressTracker) Elapsed() float64 {
	return p.elapsed
}

// MaxScore 返回分数上限
func (p *ProgressTracker) MaxScore() int {
	return p.rules.MaxScore
}
