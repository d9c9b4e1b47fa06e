// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputEvents 一帧内解码出的离散输入事件
// 场景只消费这些事件，不直接访问 ebiten 输入 API
type InputEvents struct {
	MoveRow, MoveCol int // 光标移动方向（-1/0/1）

	Plant   bool // 播种
	Water   bool // 浇水
	Cycle   bool // 切换作物
	Pause   bool // 暂停/继续
	Restart bool // 重新开始
	Confirm bool // 确认（结算界面）

	VolumeDelta int  // 音效音量调整方向（-1/0/1）
	ToggleSound bool // 音效开关

	// 指针（鼠标或触摸）刚刚按下
	PointerPressed bool
	PointerX       int
	PointerY       int
}

// EbitenInput 从 ebiten 键盘、鼠标和触摸读取输入
type EbitenInput struct{}

// Poll 读取本帧输入
func (EbitenInput) Poll() InputEvents {
	var ev InputEvents

	switch {
	case anyJustPressed(ebiten.KeyArrowUp, ebiten.KeyW):
		ev.MoveRow = -1
	case anyJustPressed(ebiten.KeyArrowDown, ebiten.KeyS):
		ev.MoveRow = 1
	case anyJustPressed(ebiten.KeyArrowLeft, ebiten.KeyA):
		ev.MoveCol = -1
	case anyJustPressed(ebiten.KeyArrowRight, ebiten.KeyD):
		ev.MoveCol = 1
	}

	ev.Plant = anyJustPressed(ebiten.KeySpace, ebiten.KeyJ)
	ev.Water = anyJustPressed(ebiten.KeyE, ebiten.KeyK)
	ev.Cycle = anyJustPressed(ebiten.KeyTab, ebiten.KeyQ)
	ev.Pause = anyJustPressed(ebiten.KeyEscape, ebiten.KeyP)
	ev.Restart = inpututil.IsKeyJustPressed(ebiten.KeyR)
	ev.Confirm = anyJustPressed(ebiten.KeyEnter, ebiten.KeyNumpadEnter)
	ev.ToggleSound = inpututil.IsKeyJustPressed(ebiten.KeyM)

	if anyJustPressed(ebiten.KeyMinus, ebiten.KeyNumpadSubtract) {
		ev.VolumeDelta = -1
	} else if anyJustPressed(ebiten.KeyEqual, ebiten.KeyNumpadAdd) {
		ev.VolumeDelta = 1
	}

	ev.PointerPressed, ev.PointerX, ev.PointerY = IsPointerJustPressed()
	return ev
}

func anyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标）
// 返回是否按下以及按下位置
func IsPointerJustPressed() (bool, int, int) {
	// 检查触摸按下
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标按下
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// ScriptedInput 按帧回放预先录制的输入（测试和无界面模拟使用）
type ScriptedInput struct {
	Frames []InputEvents
	next   int
}

// Push 追加一帧输入
func (s *ScriptedInput) Push(ev InputEvents) {
	s.Frames = append(s.Frames, ev)
}

// Poll 返回下一帧输入，用完后返回空事件
func (s *ScriptedInput) Poll() InputEvents {
	if s.next >= len(s.Frames) {
		return InputEvents{}
	}
	ev := s.Frames[s.next]
	s.next++
	return ev
}

// Remaining 返回尚未回放的帧数
func (s *ScriptedInput) Remaining() int {
	return len(s.Frames) - s.next
}
