package hcl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/gridcalc/internal/celladdr"
	"github.com/specialistvlad/gridcalc/internal/config"
)

func intPtr(v int) *int { return &v }

func TestCodec_Load(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := `
rows    = 4
columns = 3
title   = "budget"

cell "B1" {
  formula = "A0 * 2"
}

cell "A0" {
  formula = "21"
  value   = 21
}
`
	codec := NewCodec("budget.hcl")

	// --- Act ---
	doc, err := codec.Load(context.Background(), strings.NewReader(src))

	// --- Assert ---
	require.NoError(t, err)
	want := &config.Document{Rows: 4, Columns: 3, Entries: []config.Entry{
		{Address: celladdr.New(0, 0), Formula: "21", Value: intPtr(21)},
		{Address: celladdr.New(1, 1), Formula: "A0 * 2"},
	}}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestCodec_LoadErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "syntax error",
			src:     "rows = ",
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "missing columns",
			src:     "rows = 2",
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "unknown cell attribute",
			src:     "rows = 1\ncolumns = 1\ncell \"A0\" {\n formula = \"1\"\n colour = \"red\"\n}\n",
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "misspelled top-level attribute",
			src:     "rows = 1\ncolumns = 1\ncolums = 5\n",
			wantErr: "Unsupported argument",
		},
		{
			name:    "unknown top-level block",
			src:     "rows = 1\ncolumns = 1\nrow \"0\" {\n}\n",
			wantErr: "Unsupported block type",
		},
		{
			name:    "bad cell label",
			src:     "rows = 1\ncolumns = 1\ncell \"a0\" {\n formula = \"1\"\n}\n",
			wantErr: `cell "a0"`,
		},
		{
			name:    "cell outside the sheet",
			src:     "rows = 1\ncolumns = 1\ncell \"B0\" {\n formula = \"1\"\n}\n",
			wantErr: "outside the 1x1 sheet",
		},
		{
			name:    "duplicate cell",
			src:     "rows = 1\ncolumns = 1\ncell \"A0\" {\n formula = \"1\"\n}\ncell \"A0\" {\n formula = \"2\"\n}\n",
			wantErr: "defined more than once",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewCodec("").Load(context.Background(), strings.NewReader(tc.src))
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestCodec_SaveRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// --- Arrange ---
	doc := &config.Document{Rows: 3, Columns: 2, Entries: []config.Entry{
		{Address: celladdr.New(2, 1), Formula: "A0 * 2", Value: intPtr(10)},
		{Address: celladdr.New(0, 0), Formula: "5", Value: intPtr(5)},
		{Address: celladdr.New(1, 0), Formula: "A0 / 0"},
	}}
	codec := NewCodec("sheet.hcl")
	var buf bytes.Buffer

	// --- Act ---
	require.NoError(t, codec.Save(ctx, &buf, doc))
	out := buf.String()
	got, err := codec.Load(ctx, strings.NewReader(out))

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out, `cell "A0" {`)
	assert.Contains(t, out, `formula = "A0 * 2"`)
	assert.Less(t, strings.Index(out, `cell "A0"`), strings.Index(out, `cell "B2"`))

	want := &config.Document{Rows: 3, Columns: 2, Entries: []config.Entry{
		{Address: celladdr.New(0, 0), Formula: "5", Value: intPtr(5)},
		{Address: celladdr.New(1, 0), Formula: "A0 / 0"},
		{Address: celladdr.New(2, 1), Formula: "A0 * 2", Value: intPtr(10)},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, celladdr.New(2, 1), doc.Entries[0].Address, "input document must not be reordered")
}

func TestCodec_SaveRejectsInvalidDocument(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := NewCodec("").Save(context.Background(), &buf, &config.Document{Rows: 1})
	assert.ErrorIs(t, err, config.ErrInvalidDocument)
}
