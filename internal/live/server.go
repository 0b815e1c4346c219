package live

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/specialistvlad/gridcalc/internal/ctxlog"
	"github.com/specialistvlad/gridcalc/internal/sheet"
	"github.com/zishang520/socket.io/v2/socket"
)

// Server exposes one sheet over socket.io.
type Server struct {
	ctx        context.Context
	sheet      *sheet.Spreadsheet
	io         *socket.Server
	httpServer *http.Server
}

// New creates a server for s. ctx carries the logger used by the event
// handlers.
func New(ctx context.Context, s *sheet.Spreadsheet) *Server {
	srv := &Server{
		ctx:   ctx,
		sheet: s,
		io:    socket.NewServer(nil, nil),
	}
	srv.io.On("connection", srv.onConnection)
	return srv
}

// Handler returns the HTTP routes: the socket.io transport and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", s.io.ServeHandler(nil))
	mux.HandleFunc("/health", s.healthHandler)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	logger := ctxlog.FromContext(ctx)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("live server: %w", err)
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("📡 Live server starting", "address", fmt.Sprintf("http://%s", listener.Addr()))
		errCh <- s.httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("live server failed: %w", err)
	case <-ctx.Done():
	}
	return s.shutdown(ctx)
}

func (s *Server) shutdown(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("📡 Shutting down live server...")

	s.io.Close(nil)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Live server shutdown failed", "error", err)
		return err
	}

	logger.Debug("Live server shut down gracefully.")
	return nil
}

// healthHandler answers liveness probes.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(s.ctx)
	logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) onConnection(clients ...any) {
	logger := ctxlog.FromContext(s.ctx)
	if len(clients) == 0 {
		return
	}
	client, ok := clients[0].(*socket.Socket)
	if !ok {
		logger.Error("Unexpected connection argument", "type", fmt.Sprintf("%T", clients[0]))
		return
	}

	logger.Info("Client connected", "sid", client.Id())
	if err := client.Emit("values", s.Values()); err != nil {
		logger.Warn("Failed to send initial values", "sid", client.Id(), "error", err)
	}

	client.On("set_formula", func(args ...any) {
		s.onSetFormula(client, args...)
	})
	client.On("disconnect", func(reason ...any) {
		logger.Info("Client disconnected", "sid", client.Id(), "reason", reason)
	})
}

func (s *Server) onSetFormula(client *socket.Socket, args ...any) {
	logger := ctxlog.FromContext(s.ctx).With("sid", client.Id())

	var ack socket.Ack
	if n := len(args); n > 0 {
		if fn, ok := args[n-1].(socket.Ack); ok {
			ack = fn
			args = args[:n-1]
		}
	}

	var result Result
	req, err := DecodeRequest(args)
	if err != nil {
		logger.Warn("Rejected set_formula request", "error", err)
		result = Result{Kind: "request", Error: err.Error()}
	} else {
		result = s.Apply(s.ctx, req)
	}

	if ack != nil {
		ack([]any{result}, nil)
	} else if err := client.Emit("formula_result", result); err != nil {
		logger.Warn("Failed to send formula result", "error", err)
	}

	if result.OK {
		s.io.Emit("values", s.Values())
	}
}
