package utils

import "math"

// GridLayout 地块网格的屏幕几何
// 地块中心位于 Origin + (col, row) * Spacing，每个格子向四周延伸半个间距
type GridLayout struct {
	OriginX, OriginY float64
	Spacing          float64
	Rows, Columns    int
}

// ScreenToCell 将屏幕坐标转换为网格坐标
// 参数:
//   - x, y: 屏幕坐标（鼠标或触摸位置）
//
// 返回:
//   - row, col: 网格坐标
//   - isValid: 是否落在网格范围内
func (g GridLayout) ScreenToCell(x, y int) (row, col int, isValid bool) {
	if g.Spacing <= 0 || g.Rows <= 0 || g.Columns <= 0 {
		return 0, 0, false
	}

	fx := (float64(x) - g.OriginX) / g.Spacing
	fy := (float64(y) - g.OriginY) / g.Spacing
	col = int(math.Floor(fx + 0.5))
	row = int(math.Floor(fy + 0.5))

	if col < 0 || col >= g.Columns || row < 0 || row >= g.Rows {
		return 0, 0, false
	}
	return row, col, true
}

// CellToScreen 返回格子中心的屏幕坐标
func (g GridLayout) CellToScreen(row, col int) (x, y float64) {
	return g.OriginX + float64(col)*g.Spacing, g.OriginY + float64(row)*g.Spacing
}

// StepCell 按方向移动光标，超出边界时停在边缘
func (g GridLayout) StepCell(row, col, dRow, dCol int) (int, int) {
	row += dRow
	col += dCol
	if row < 0 {
		row = 0
	} else if row >= g.Rows {
		row = g.Rows - 1
	}
	if col < 0 {
		col = 0
	} else if col >= g.Columns {
		col = g.Columns - 1
	}
	return row, col
}
