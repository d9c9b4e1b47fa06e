package config

// 窗口尺寸
const (
	GameWindowWidth  = 800
	GameWindowHeight = 600
)

// 花园布局默认值（配置文件未提供时使用）
const (
	DefaultRows            = 3
	DefaultColumns         = 4
	DefaultSlotSpacing     = 120.0
	DefaultOriginX         = 220.0
	DefaultOriginY         = 180.0
	DefaultUnlockScoreStep = 10
)

// SlotDrawSize 地块绘制边长（像素）
const SlotDrawSize = 96.0

// SlotCenter 返回指定格子的地块中心坐标
func (l LayoutConfig) SlotCenter(row, col int) (x, y float64) {
	return l.OriginX + float64(col)*l.SlotSpacing, l.OriginY + float64(row)*l.SlotSpacing
}
