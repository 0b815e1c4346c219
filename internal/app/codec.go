package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/specialistvlad/gridcalc/internal/config"
	"github.com/specialistvlad/gridcalc/internal/ctxlog"
	"github.com/specialistvlad/gridcalc/internal/fsutil"
	"github.com/specialistvlad/gridcalc/internal/hcl"
	"github.com/specialistvlad/gridcalc/internal/sheet"
	"github.com/specialistvlad/gridcalc/internal/tsv"
	"github.com/specialistvlad/gridcalc/internal/xlsx"
)

// ErrUnsupportedFormat is returned for a sheet path whose extension has no
// codec.
var ErrUnsupportedFormat = errors.New("unsupported sheet format")

// codecFor picks the persistence format from the file extension.
func codecFor(path string) (config.Codec, error) {
	switch fsutil.Extension(path) {
	case ".tsv", ".txt":
		return tsv.Codec{}, nil
	case ".hcl":
		return hcl.NewCodec(filepath.Base(path)), nil
	case ".xlsx":
		return xlsx.Codec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (use .tsv, .txt, .hcl or .xlsx)", ErrUnsupportedFormat, path)
	}
}

// loadSheet reads and replays the sheet at path. It also returns the decoded
// document so recorded values can be checked.
func loadSheet(ctx context.Context, path string) (*sheet.Spreadsheet, *config.Document, error) {
	codec, err := codecFor(path)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sheet: %w", err)
	}
	defer f.Close()

	doc, err := codec.Load(ctx, f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load sheet %s: %w", path, err)
	}

	s, err := sheet.Load(ctx, doc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load sheet %s: %w", path, err)
	}
	return s, doc, nil
}

// saveSheet writes s to path in the format its extension names.
func saveSheet(ctx context.Context, s *sheet.Spreadsheet, path string) error {
	codec, err := codecFor(path)
	if err != nil {
		return err
	}

	doc := s.Document()
	err = fsutil.WriteFileAtomic(path, func(w io.Writer) error {
		return codec.Save(ctx, w, doc)
	})
	if err != nil {
		return fmt.Errorf("failed to save sheet %s: %w", path, err)
	}

	ctxlog.FromContext(ctx).Info("💾 Sheet saved", "path", path, "cells", len(doc.Entries))
	return nil
}

// verifyValues logs every recorded value that disagrees with the recomputed
// one and returns how many there were.
func verifyValues(ctx context.Context, s *sheet.Spreadsheet, doc *config.Document) int {
	logger := ctxlog.FromContext(ctx)
	mismatches := s.CheckValues(doc)
	for _, m := range mismatches {
		logger.Warn("Recorded value differs from recomputed value",
			"cell", m.Address.String(), "recorded", m.Recorded, "actual", m.Actual, "error", m.Err)
	}
	return len(mismatches)
}
