package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{level: "debug", wantDebug: true, wantInfo: true, wantWarn: true},
		{level: "info", wantInfo: true, wantWarn: true},
		{level: "warn", wantWarn: true},
		{level: "error"},
		{level: "bogus", wantInfo: true, wantWarn: true},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := newLogger(tc.level, "text", &buf)

			logger.Debug("debug line")
			logger.Info("info line")
			logger.Warn("warn line")

			assert.Equal(t, tc.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")))
			assert.Equal(t, tc.wantInfo, bytes.Contains(buf.Bytes(), []byte("info line")))
			assert.Equal(t, tc.wantWarn, bytes.Contains(buf.Bytes(), []byte("warn line")))
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	newLogger("info", "json", &buf).Info("Sheet loaded.", "rows", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Sheet loaded.", record["msg"])
	assert.Equal(t, "gridcalc", record["app"])
	assert.EqualValues(t, 3, record["rows"])
}
