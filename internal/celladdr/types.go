// internal/celladdr/types.go
package celladdr

// Address identifies a single cell by zero-based row and column. It is a
// plain value type and can be used directly as a map key.
type Address struct {
	Row int
	Col int
}

// New creates an address from a row and a column.
func New(row, col int) Address {
	return Address{Row: row, Col: col}
}

// Compare orders addresses row-major. It returns -1, 0 or +1.
func Compare(a, b Address) int {
	switch {
	case a.Row < b.Row:
		return -1
	case a.Row > b.Row:
		return 1
	case a.Col < b.Col:
		return -1
	case a.Col > b.Col:
		return 1
	}
	return 0
}

// Less reports whether a sorts before other in row-major order.
func (a Address) Less(other Address) bool {
	return Compare(a, other) < 0
}

// IsValid reports whether both coordinates are non-negative.
func (a Address) IsValid() bool {
	return a.Row >= 0 && a.Col >= 0
}
