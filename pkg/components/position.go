package components

// PositionComponent 实体在世界坐标系中的位置（像素）
type PositionComponent struct {
	X, Y float64
}
