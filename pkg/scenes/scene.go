package scenes

import (
	"github.com/decker502/plantation/pkg/game"
	"github.com/decker502/plantation/pkg/utils"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// InputSource 每帧提供一次离散输入事件
// 游戏中使用 utils.EbitenInput，测试和模拟使用 utils.ScriptedInput
type InputSource interface {
	Poll() utils.InputEvents
}
