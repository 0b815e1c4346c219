package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/gridcalc/internal/celladdr"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SheetPath string // sheet to load; empty starts a new sheet
	OutPath   string // where to save after edits; empty skips saving

	// Rows and Columns size a new sheet. They are ignored when a sheet is
	// loaded.
	Rows    int
	Columns int

	Edits       []Edit
	Interactive bool
	LivePort    int // 0 disables the live server

	LogFormat string
	LogLevel  string
}

// Edit is one CELL=FORMULA assignment applied before anything else runs.
type Edit struct {
	Cell    string
	Formula string
}

// String renders the edit in its command-line form.
func (e Edit) String() string {
	return e.Cell + "=" + e.Formula
}

// ParseEdit reads an assignment of the form CELL=FORMULA. The formula may be
// empty, which clears the cell.
func ParseEdit(s string) (Edit, error) {
	cell, text, ok := strings.Cut(s, "=")
	if !ok {
		return Edit{}, fmt.Errorf("invalid edit %q: expected CELL=FORMULA", s)
	}
	cell = strings.TrimSpace(cell)
	if _, err := celladdr.Parse(cell); err != nil {
		return Edit{}, fmt.Errorf("invalid edit %q: %w", s, err)
	}
	return Edit{Cell: cell, Formula: strings.TrimSpace(text)}, nil
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SheetPath == "" && (cfg.Rows <= 0 || cfg.Columns <= 0) {
		return nil, fmt.Errorf("a new sheet needs positive dimensions, got %dx%d", cfg.Rows, cfg.Columns)
	}
	if cfg.SheetPath == "" && cfg.OutPath == "" && len(cfg.Edits) == 0 && !cfg.Interactive && cfg.LivePort == 0 {
		return nil, errors.New("nothing to do: give a sheet path, edits, -interactive or -live-port")
	}
	for _, path := range []string{cfg.SheetPath, cfg.OutPath} {
		if path == "" {
			continue
		}
		if _, err := codecFor(path); err != nil {
			return nil, err
		}
	}
	if cfg.LivePort < 0 || cfg.LivePort > 65535 {
		return nil, fmt.Errorf("live-port must be between 0 and 65535, got %d", cfg.LivePort)
	}
	for _, e := range cfg.Edits {
		if _, err := celladdr.Parse(e.Cell); err != nil {
			return nil, fmt.Errorf("invalid edit %q: %w", e, err)
		}
	}

	cfg.Edits = append([]Edit(nil), cfg.Edits...)
	return &cfg, nil
}
