package live

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/gridcalc/internal/sheet"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	s, err := sheet.New(4, 4)
	require.NoError(t, err)
	return New(context.Background(), s)
}

func TestApply(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// --- Arrange ---
	srv := newServer(t)
	require.True(t, srv.Apply(ctx, Request{Cell: "A0", Formula: "5"}).OK)

	testCases := []struct {
		name      string
		req       Request
		wantOK    bool
		wantValue int
		wantKind  string
	}{
		{name: "reference to another cell", req: Request{Cell: "B0", Formula: "A0 * 2"}, wantOK: true, wantValue: 10},
		{name: "bad cell label", req: Request{Cell: "b0", Formula: "1"}, wantKind: "reference"},
		{name: "cell outside the sheet", req: Request{Cell: "Z9", Formula: "1"}, wantKind: "range"},
		{name: "reference outside the sheet", req: Request{Cell: "C0", Formula: "Z9"}, wantKind: "range"},
		{name: "syntax error", req: Request{Cell: "C0", Formula: "1 +"}, wantKind: "parse"},
		{name: "incomplete reference", req: Request{Cell: "C0", Formula: "A"}, wantKind: "parse"},
		{name: "cycle", req: Request{Cell: "A0", Formula: "B0"}, wantKind: "cycle"},
		{name: "division by zero is accepted", req: Request{Cell: "D3", Formula: "A0 / 0"}, wantOK: true, wantKind: "arithmetic"},
	}

	for _, tc := range testCases {
		// Subtests share the server and run in order.
		t.Run(tc.name, func(t *testing.T) {
			// --- Act ---
			res := srv.Apply(ctx, tc.req)

			// --- Assert ---
			assert.Equal(t, tc.wantOK, res.OK)
			assert.Equal(t, tc.wantValue, res.Value)
			assert.Equal(t, tc.wantKind, res.Kind)
			assert.Equal(t, tc.req.Cell, res.Cell)
			if tc.wantKind != "" {
				assert.NotEmpty(t, res.Error)
			}
		})
	}

	assert.Equal(t, []CellValue{
		{Cell: "A0", Formula: "5", Value: 5},
		{Cell: "B0", Formula: "A0 * 2", Value: 10},
		{Cell: "D3", Formula: "A0 / 0", Value: 0, Error: "arithmetic error: division by zero (5 / 0)"},
	}, srv.Values())
}

func TestDecodeRequest(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []any
		want    Request
		wantErr string
	}{
		{
			name: "decoded object",
			args: []any{map[string]any{"cell": "A1", "formula": "2+2"}},
			want: Request{Cell: "A1", Formula: "2+2"},
		},
		{
			name: "json string",
			args: []any{`{"cell":"B2","formula":"A1"}`},
			want: Request{Cell: "B2", Formula: "A1"},
		},
		{
			name: "raw bytes",
			args: []any{[]byte(`{"cell":"C3","formula":""}`)},
			want: Request{Cell: "C3"},
		},
		{
			name: "cell and formula arguments",
			args: []any{"A0", "7"},
			want: Request{Cell: "A0", Formula: "7"},
		},
		{name: "no payload", args: nil, wantErr: "missing set_formula payload"},
		{name: "not json", args: []any{"A0=7"}, wantErr: "invalid set_formula payload"},
		{name: "missing cell", args: []any{map[string]any{"formula": "1"}}, wantErr: "missing cell"},
		{name: "unencodable", args: []any{func() {}}, wantErr: "invalid set_formula payload"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := DecodeRequest(tc.args)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()
	srv := newServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())
}

func TestHandler_SocketIOHandshake(t *testing.T) {
	t.Parallel()
	srv := newServer(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/socket.io/?EIO=4&transport=polling")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.HasPrefix(string(body), "0"), "expected an open packet, got %q", body)

	var open struct {
		Sid      string   `json:"sid"`
		Upgrades []string `json:"upgrades"`
	}
	require.NoError(t, json.Unmarshal(body[1:], &open), "open packet payload %q", body)
	assert.NotEmpty(t, open.Sid)
	assert.Contains(t, open.Upgrades, "websocket")
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	srv := newServer(t)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	// --- Act ---
	go func() { done <- srv.ListenAndServe(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)
	cancel()

	// --- Assert ---
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}

func TestListenAndServe_BadAddress(t *testing.T) {
	t.Parallel()
	err := newServer(t).ListenAndServe(context.Background(), "256.0.0.1:bad")
	assert.ErrorContains(t, err, "live server")
}
