package sudoku

// Solve fills the empty cells of m by backtracking. It returns false, leaving
// m unchanged, when the givens conflict or admit no solution.
func Solve(m *Matrix) bool {
	if !Consistent(*m) {
		return false
	}
	work := *m
	if !backtrackingSolve(&work, 0, 0) {
		return false
	}
	*m = work
	return true
}

func backtrackingSolve(m *Matrix, r, c int) bool {
	r, c, solved := nextEmptyCell(m, r, c)
	if solved {
		return true
	}

	for i := 1; i <= Size; i++ {
		if !isValid(m, r, c, i) {
			continue
		}
		m[r][c] = i
		if backtrackingSolve(m, r, c) {
			return true
		}
		m[r][c] = 0
	}

	return false
}

func nextEmptyCell(m *Matrix, row, col int) (r, c int, solved bool) {
	for ; row < Size; row++ {
		for ; col < Size; col++ {
			if m[row][col] == 0 {
				return row, col, false
			}
		}
		col = 0
	}
	return 0, 0, true
}

func isValid(m *Matrix, row, col int, digit int) bool {
	for i := 0; i < Size; i++ {
		if m[row][i] == digit ||
			m[i][col] == digit ||
			m[row/3*3+i/3][col/3*3+i%3] == digit {
			return false
		}
	}
	return true
}
