package hcl

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/gridcalc/internal/celladdr"
	"github.com/specialistvlad/gridcalc/internal/config"
	"github.com/specialistvlad/gridcalc/internal/ctxlog"
)

// Codec is the HCL-specific implementation of the config.Codec interface.
type Codec struct {
	// Filename is used in diagnostics only.
	Filename string
}

var _ config.Codec = (*Codec)(nil)

// NewCodec creates a new HCL codec. The filename only appears in error
// messages.
func NewCodec(filename string) *Codec {
	if filename == "" {
		filename = "sheet.hcl"
	}
	return &Codec{Filename: filename}
}

// Load parses a sheet manifest and translates it into the format-agnostic
// document.
func (c *Codec) Load(ctx context.Context, r io.Reader) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "file", c.Filename)

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read HCL file %s: %w", c.Filename, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, c.Filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", c.Filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", c.Filename, diags)
	}

	doc, err := translateRoot(&root)
	if err != nil {
		return nil, fmt.Errorf("invalid HCL file %s: %w", c.Filename, err)
	}

	logger.Debug("HCL loader finished.", "rows", doc.Rows, "columns", doc.Columns, "cells", len(doc.Entries))
	return doc, nil
}

// translateRoot converts the decoded manifest into a validated document.
func translateRoot(root *fileRoot) (*config.Document, error) {
	doc := &config.Document{
		Rows:    root.Rows,
		Columns: root.Columns,
		Entries: make([]config.Entry, 0, len(root.Cells)),
	}
	for _, block := range root.Cells {
		addr, err := celladdr.Parse(block.Address)
		if err != nil {
			return nil, fmt.Errorf("cell %q: %w", block.Address, err)
		}
		doc.Entries = append(doc.Entries, config.Entry{
			Address: addr,
			Formula: block.Formula,
			Value:   block.Value,
		})
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	doc.SortEntries()
	return doc, nil
}
