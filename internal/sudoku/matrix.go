// Package sudoku holds the recognized puzzle matrix and the checks and
// solver used on it once the digits have been read.
package sudoku

import "strings"

// Size is the number of rows and columns.
const Size = 9

// Matrix is a puzzle indexed [row][col], rows top to bottom and columns left
// to right. Zero is an empty cell.
type Matrix [Size][Size]int

// String renders one line per row: each cell is its digit, or _ when empty,
// followed by a | separator.
func (m Matrix) String() string {
	var b strings.Builder
	for _, row := range m {
		for _, cell := range row {
			if cell == 0 {
				b.WriteByte('_')
			} else {
				b.WriteByte(byte('0' + cell))
			}
			b.WriteByte('|')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Givens returns the number of filled cells.
func (m Matrix) Givens() int {
	n := 0
	for _, row := range m {
		for _, cell := range row {
			if cell != 0 {
				n++
			}
		}
	}
	return n
}

// Consistent reports whether no digit repeats in a row, column or box.
// Empty cells are ignored. A misread digit usually breaks this.
func Consistent(m Matrix) bool {
	var rows, cols, boxes [Size][Size]bool
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			cell := m[row][col]
			if cell == 0 {
				continue
			}
			if cell < 1 || cell > Size {
				return false
			}

			digit := cell - 1
			boxIndex := row/3*3 + col/3
			if rows[row][digit] || cols[col][digit] || boxes[boxIndex][digit] {
				return false
			}

			rows[row][digit], cols[col][digit], boxes[boxIndex][digit] = true, true, true
		}
	}
	return true
}

// Validate reports whether m is completely filled and consistent.
func Validate(m Matrix) bool {
	return m.Givens() == Size*Size && Consistent(m)
}
