package components

// SlotTag 地块占用标签
type SlotTag int

const (
	// SlotEmpty 空地块，可以播种
	SlotEmpty SlotTag = iota
	// SlotSeeded 已播种但尚未浇水
	SlotSeeded
	// SlotWatered 已浇水，植物正在生长或等待收获
	SlotWatered
)

// String 返回标签的可读名称（日志使用）
func (t SlotTag) String() string {
	switch t {
	case SlotEmpty:
		return "empty"
	case SlotSeeded:
		return "seeded"
	case SlotWatered:
		return "watered"
	default:
		return "unknown"
	}
}

// SlotComponent 标识实体为花园地块
//
// 浇水和重置都会用新的地块实体替换旧实体（保持 Row/Col 不变），
// 因此地块实体ID会随生命周期变化，格子坐标不会。
type SlotComponent struct {
	Row int
	Col int
	Tag SlotTag
}
