package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/gridcalc/internal/app"
	"github.com/specialistvlad/gridcalc/internal/formula"
	"github.com/specialistvlad/gridcalc/internal/testutil"
)

// Test for: operator precedence, grouping and left-to-right association
func TestFormula_PrecedenceAndAssociativity(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		formula string
		want    int
	}{
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"2^3^2", 64},
		{"10-4-3", 3},
		{"100/10/5", 2},
		{"7/2", 3},
		{"2*3^2", 18},
		{"((1+2))*(3+4)", 21},
		{"0^0", 1},
		{"  42  ", 42},
	}

	for _, tc := range testCases {
		t.Run(tc.formula, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			result := testutil.RunIntegrationTest(t, app.Config{
				Rows:    1,
				Columns: 1,
				Edits:   []app.Edit{{Cell: "A0", Formula: tc.formula}},
			}, "")

			// --- Assert ---
			require.NoError(t, result.Err)
			testutil.AssertCellValue(t, result, "A0", tc.want)
		})
	}
}

// Test for: references read the values of other cells, empty cells read as zero
func TestFormula_References(t *testing.T) {
	t.Parallel()

	// --- Act ---
	result := testutil.RunIntegrationTest(t, app.Config{
		Rows:    3,
		Columns: 28,
		Edits: []app.Edit{
			{Cell: "AB2", Formula: "A0 + 5"},
			{Cell: "A0", Formula: "12"},
			{Cell: "B1", Formula: "AB2 * C2"},
			{Cell: "C1", Formula: "AB2 - Z0"},
		},
	}, "")

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertCellValue(t, result, "AB2", 17)
	testutil.AssertCellValue(t, result, "B1", 0)
	testutil.AssertCellValue(t, result, "C1", 17)
}

// Test for: malformed formulas are rejected and leave the cell untouched
func TestFormula_ParseErrorsAreRejected(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"1 +", "(1 + 2", "1 + 2)", "A", "3 % 2", "B"} {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			result := testutil.RunIntegrationTest(t, app.Config{
				Rows:    1,
				Columns: 2,
				Edits: []app.Edit{
					{Cell: "A0", Formula: "5"},
					{Cell: "A0", Formula: text},
				},
			}, "")

			// --- Assert ---
			require.ErrorIs(t, result.Err, formula.ErrParse)
			testutil.AssertCellValue(t, result, "A0", 5)
		})
	}
}
