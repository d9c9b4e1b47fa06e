package utils

import "math"

// 缓动函数接受进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 参考：https://easings.net/

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把值限制在 [0, 1]
func Clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}

// NumberTween 分数滚动动画：在 Duration 秒内把显示值从 From 过渡到 To
//
// 动画进行中再次 Start 时，从当前显示值开始新的过渡，
// 因此连续加分不会出现数字回跳。
type NumberTween struct {
	From     int
	To       int
	Duration float64
	Easing   func(float64) float64

	elapsed float64
}

// NewNumberTween 创建滚动动画，初始显示 value
func NewNumberTween(value int, duration float64) *NumberTween {
	return &NumberTween{
		From:     value,
		To:       value,
		Duration: duration,
		Easing:   EaseOutQuad,
		elapsed:  duration,
	}
}

// Start 开始从 from 到 to 的过渡
func (t *NumberTween) Start(from, to int) {
	if !t.Done() {
		from = t.Value()
	}
	t.From = from
	t.To = to
	t.elapsed = 0
}

// Update 推进动画
func (t *NumberTween) Update(deltaTime float64) {
	if t.Done() {
		return
	}
	t.elapsed += deltaTime
}

// Done 动画是否已结束
func (t *NumberTween) Done() bool {
	return t.elapsed >= t.Duration
}

// Value 返回当前显示值
func (t *NumberTween) Value() int {
	if t.Done() || t.Duration <= 0 {
		return t.To
	}
	ease := t.Easing
	if ease == nil {
		ease = EaseLinear
	}
	p := ease(Clamp01(t.elapsed / t.Duration))
	return int(math.Round(Lerp(float64(t.From), float64(t.To), p)))
}
