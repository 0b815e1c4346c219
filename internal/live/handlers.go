package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/specialistvlad/gridcalc/internal/celladdr"
	"github.com/specialistvlad/gridcalc/internal/ctxlog"
	"github.com/specialistvlad/gridcalc/internal/formula"
	"github.com/specialistvlad/gridcalc/internal/sheet"
)

// Apply performs one formula change and reports its outcome.
func (s *Server) Apply(ctx context.Context, req Request) Result {
	res := Result{Cell: req.Cell, Formula: req.Formula}

	addr, err := celladdr.Parse(req.Cell)
	if err == nil {
		err = s.sheet.SetFormula(ctx, addr, req.Formula)
	}
	if err != nil {
		res.Kind = kindOf(err)
		res.Error = err.Error()
		return res
	}

	view, err := s.sheet.Cell(addr)
	if err != nil {
		res.Kind = kindOf(err)
		res.Error = err.Error()
		return res
	}

	res.OK = true
	res.Value = view.Value
	if view.Err != nil {
		res.Kind = "arithmetic"
		res.Error = view.Err.Error()
	}
	ctxlog.FromContext(ctx).Debug("Formula applied", "cell", req.Cell, "value", res.Value, "kind", res.Kind)
	return res
}

// Values lists every non-empty cell in row-major order.
func (s *Server) Values() []CellValue {
	entries := s.sheet.Entries()
	out := make([]CellValue, 0, len(entries))
	for _, v := range entries {
		cv := CellValue{Cell: v.Address.String(), Formula: v.Formula, Value: v.Value}
		if v.Err != nil {
			cv.Error = v.Err.Error()
		}
		out = append(out, cv)
	}
	return out
}

// kindOf maps an error from the sheet to the Result.Kind vocabulary.
func kindOf(err error) string {
	switch {
	case errors.Is(err, sheet.ErrCycleDetected):
		return "cycle"
	case errors.Is(err, sheet.ErrOutOfRange):
		return "range"
	case errors.Is(err, formula.ErrParse):
		return "parse"
	case errors.Is(err, celladdr.ErrInvalidReference):
		return "reference"
	case errors.Is(err, formula.ErrArithmetic):
		return "arithmetic"
	default:
		return "internal"
	}
}

// DecodeRequest reads a set_formula payload. It accepts a JSON object (as
// decoded by socket.io, or as a JSON string) or two string arguments, cell
// then formula.
func DecodeRequest(args []any) (Request, error) {
	if len(args) == 0 {
		return Request{}, errors.New("missing set_formula payload")
	}

	if len(args) >= 2 {
		cell, okCell := args[0].(string)
		text, okText := args[1].(string)
		if okCell && okText {
			return Request{Cell: cell, Formula: text}, nil
		}
	}

	var raw []byte
	switch payload := args[0].(type) {
	case string:
		raw = []byte(payload)
	case []byte:
		raw = payload
	default:
		var err error
		if raw, err = json.Marshal(payload); err != nil {
			return Request{}, fmt.Errorf("invalid set_formula payload: %w", err)
		}
	}

	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return Request{}, fmt.Errorf("invalid set_formula payload: %w", err)
	}
	if req.Cell == "" {
		return Request{}, errors.New("invalid set_formula payload: missing cell")
	}
	return req, nil
}
