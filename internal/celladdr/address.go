// internal/celladdr/address.go
package celladdr

import (
	"strconv"
)

// String serializes the Address into its canonical label, e.g. "AB12".
// Addresses with a negative coordinate have no label and yield "".
func (a Address) String() string {
	if !a.IsValid() {
		return ""
	}
	return ColumnLabel(a.Col) + strconv.Itoa(a.Row)
}

// ColumnLabel returns the bijective base-26 label of a zero-based column:
// 0 -> "A", 25 -> "Z", 26 -> "AA", 701 -> "ZZ", 702 -> "AAA".
func ColumnLabel(col int) string {
	if col < 0 {
		return ""
	}

	// 64-bit ints need at most 14 letters.
	var buf [16]byte
	i := len(buf)
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}
	return string(buf[i:])
}
