package formula

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/specialistvlad/gridcalc/internal/celladdr"
	"github.com/stretchr/testify/require"
)

// ignorePos compares tokens by value only.
var ignorePos = cmpopts.IgnoreFields(Token{}, "Pos")

func ref(t *testing.T, raw string) celladdr.Address {
	t.Helper()
	addr, err := celladdr.Parse(raw)
	require.NoError(t, err)
	return addr
}

// mapResolver resolves references from a fixed map; missing cells are 0.
type mapResolver map[celladdr.Address]int

func (m mapResolver) Resolve(_ context.Context, addr celladdr.Address) (int, error) {
	return m[addr], nil
}

func mustCompile(t *testing.T, text string) Tree {
	t.Helper()
	tree, err := Compile(text)
	require.NoError(t, err, "compile %q", text)
	return tree
}
