package qr

// Matrix is a square grid of QR modules. A true element is a dark module,
// false is a light module. Row 0 is the top of the code.
type Matrix [][]bool

// Size returns the side length of the matrix in modules.
func (m Matrix) Size() int {
	return len(m)
}

// At reports whether the module at (row, col) is dark.
func (m Matrix) At(row, col int) bool {
	return m[row][col]
}

// WithQuietZone returns a copy of the matrix surrounded on all sides by
// width light modules. A width of zero or less returns the receiver
// unchanged. The receiver is never mutated.
func (m Matrix) WithQuietZone(width int) Matrix {
	if width <= 0 {
		return m
	}

	size := len(m) + 2*width
	out := make(Matrix, size)
	for row := range out {
		out[row] = make([]bool, size)
	}
	for row, modules := range m {
		copy(out[row+width][width:], modules)
	}
	return out
}
