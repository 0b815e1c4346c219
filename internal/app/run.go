package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gridcalc/internal/celladdr"
	"github.com/specialistvlad/gridcalc/internal/ctxlog"
	"github.com/specialistvlad/gridcalc/internal/live"
	"github.com/specialistvlad/gridcalc/internal/sheet"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if err := a.open(ctx); err != nil {
		return err
	}
	if err := a.applyEdits(ctx); err != nil {
		return err
	}

	stopLive := func() error { return nil }
	if a.config.LivePort > 0 {
		liveCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		srv := live.New(liveCtx, a.sheet)
		done := make(chan error, 1)
		go func() {
			done <- srv.ListenAndServe(liveCtx, fmt.Sprintf(":%d", a.config.LivePort))
		}()
		stopLive = func() error {
			cancel()
			return <-done
		}

		if !a.config.Interactive {
			a.logger.Info("Serving the sheet until interrupted.")
			select {
			case <-ctx.Done():
			case err := <-done:
				done <- err
			}
		}
	}

	if a.config.Interactive {
		if err := a.repl(ctx); err != nil {
			stopLive()
			return fmt.Errorf("interactive session failed: %w", err)
		}
	}

	if err := stopLive(); err != nil {
		return err
	}

	if !a.config.Interactive {
		if err := renderValues(a.outW, a.sheet); err != nil {
			return fmt.Errorf("failed to render sheet: %w", err)
		}
	}

	if a.config.OutPath != "" {
		if err := saveSheet(ctx, a.sheet, a.config.OutPath); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// open loads the configured sheet, or creates an empty one.
func (a *App) open(ctx context.Context) error {
	if a.config.SheetPath == "" {
		s, err := sheet.New(a.config.Rows, a.config.Columns)
		if err != nil {
			return err
		}
		a.sheet = s
		a.logger.Info("Created new sheet.", "rows", a.config.Rows, "columns", a.config.Columns)
		return nil
	}

	s, doc, err := loadSheet(ctx, a.config.SheetPath)
	if err != nil {
		return err
	}
	a.sheet = s

	rows, cols := s.Dimensions()
	a.logger.Info("Sheet loaded.", "path", a.config.SheetPath, "rows", rows, "columns", cols, "cells", len(doc.Entries))
	if n := verifyValues(ctx, s, doc); n > 0 {
		a.logger.Warn("Sheet contains stale recorded values.", "count", n)
	}
	return nil
}

// applyEdits runs the configured assignments in order. The first rejected
// edit stops the run.
func (a *App) applyEdits(ctx context.Context) error {
	for _, e := range a.config.Edits {
		addr, err := celladdr.Parse(e.Cell)
		if err != nil {
			return fmt.Errorf("failed to apply %s: %w", e, err)
		}
		if err := a.sheet.SetFormula(ctx, addr, e.Formula); err != nil {
			return fmt.Errorf("failed to apply %s: %w", e, err)
		}
	}
	if len(a.config.Edits) > 0 {
		a.logger.Info("Edits applied.", "count", len(a.config.Edits))
	}
	return nil
}
