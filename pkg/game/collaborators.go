package game

import "github.com/decker502/plantation/pkg/ecs"

// SoundEvent 需要播放音效的游戏事件
type SoundEvent int

const (
	SoundPlant SoundEvent = iota
	SoundWater
	SoundHarvest
	SoundReady
	SoundExplosion
	SoundChangeInventory
	SoundFinish
)

// String 返回事件名称（日志使用）
func (e SoundEvent) String() string {
	switch e {
	case SoundPlant:
		return "plant"
	case SoundWater:
		return "water"
	case SoundHarvest:
		return "harvest"
	case SoundReady:
		return "ready"
	case SoundExplosion:
		return "explosion"
	case SoundChangeInventory:
		return "change_inventory"
	case SoundFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// 以下接口是核心逻辑调用的外部协作者。
// 所有调用都是"发出即忘"：核心不等待返回，也不读取结果。

// AudioNotifier 音效通知
type AudioNotifier interface {
	Notify(event SoundEvent)
}

// ClipPlayer 动画片段播放
// 片段时长由配置给出，核心不查询动画系统
type ClipPlayer interface {
	PlayClip(instance ecs.EntityID, clip string)
}

// EffectPlayer 浇水特效播放
type EffectPlayer interface {
	PlayWateringEffect(slot ecs.EntityID, duration float64)
}

// ScoreDisplay 分数显示（数字滚动动画）
type ScoreDisplay interface {
	AnimateScore(from, to int)
}

// GameOverHandler 游戏结束回调
// 在分数达到上限时调用且仅调用一次
type GameOverHandler interface {
	OnGameOver(finalScore int, elapsed float64)
}

// GameOverFunc 允许普通函数作为 GameOverHandler
type GameOverFunc func(finalScore int, elapsed float64)

// OnGameOver 实现 GameOverHandler
func (f GameOverFunc) OnGameOver(finalScore int, elapsed float64) {
	f(finalScore, elapsed)
}

// nopCollaborator 空实现，用于未注入协作者时
type nopCollaborator struct{}

func (nopCollaborator) Notify(SoundEvent) {}
func (nopCollaborator) PlayClip(ecs.EntityID, string) {}
func (nopCollaborator) PlayWateringEffect(ecs.EntityID, float64) {}
func (nopCollaborator) AnimateScore(int, int) {}
func (nopCollaborator) OnGameOver(int, float64) {}

// Nop 是所有协作者接口的空实现
var Nop nopCollaborator
