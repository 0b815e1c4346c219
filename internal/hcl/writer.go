package hcl

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/gridcalc/internal/config"
	"github.com/specialistvlad/gridcalc/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Save writes doc as a sheet manifest, one cell block per entry in row-major
// order.
func (c *Codec) Save(ctx context.Context, w io.Writer, doc *config.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	file := hclwrite.NewEmptyFile()
	body := file.Body()
	body.SetAttributeValue("rows", cty.NumberIntVal(int64(doc.Rows)))
	body.SetAttributeValue("columns", cty.NumberIntVal(int64(doc.Columns)))

	sorted := config.Document{Rows: doc.Rows, Columns: doc.Columns, Entries: append([]config.Entry(nil), doc.Entries...)}
	sorted.SortEntries()

	for _, e := range sorted.Entries {
		body.AppendNewline()
		block := body.AppendNewBlock("cell", []string{e.Address.String()})
		cellBody := block.Body()
		cellBody.SetAttributeValue("formula", cty.StringVal(e.Formula))

		if e.Value != nil {
			val, err := gocty.ToCtyValue(*e.Value, cty.Number)
			if err != nil {
				return fmt.Errorf("cell %s: cannot encode value: %w", e.Address, err)
			}
			cellBody.SetAttributeValue("value", val)
		}
	}

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write HCL file %s: %w", c.Filename, err)
	}

	ctxlog.FromContext(ctx).Debug("HCL sheet written.", "file", c.Filename, "cells", len(sorted.Entries))
	return nil
}
