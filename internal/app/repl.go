package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/gridcalc/internal/celladdr"
	"github.com/specialistvlad/gridcalc/internal/sheet"
)

const replHelp = `Commands:
  CELL = FORMULA      set a formula, e.g. A1 = A0 * 2 (blank clears the cell)
  set CELL FORMULA    same as above
  get CELL            show a cell's formula and value
  tree CELL           show a cell's compiled expression
  show                print the value grid
  save [PATH]         save the sheet (defaults to -out, then the loaded path)
  help                print this help
  quit                leave the session
`

// repl is the line-oriented input bar. It reads commands until end of
// input, a quit command or cancellation of ctx. On cancellation an input
// that is an io.Closer is closed, which unblocks the reading goroutine.
func (a *App) repl(ctx context.Context) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(a.inR)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	fmt.Fprintln(a.outW, "Type 'help' for commands.")
	if err := renderValues(a.outW, a.sheet); err != nil {
		return err
	}

	for {
		fmt.Fprint(a.outW, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.outW)
			if c, ok := a.inR.(io.Closer); ok {
				if err := c.Close(); err != nil {
					a.logger.Debug("Closing input failed.", "error", err)
				}
			}
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(a.outW)
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if quit := a.execute(ctx, strings.TrimSpace(line)); quit {
				return nil
			}
		}
	}
}

// execute runs one command line and reports whether the session should end.
// Command failures are printed, never returned.
func (a *App) execute(ctx context.Context, line string) bool {
	if line == "" {
		return false
	}

	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprint(a.outW, replHelp)
	case "show":
		if err := renderValues(a.outW, a.sheet); err != nil {
			a.printError(err)
		}
	case "get":
		a.withCell(fields, func(addr celladdr.Address) error {
			view, err := a.sheet.Cell(addr)
			if err != nil {
				return err
			}
			describeCell(a.outW, view)
			return nil
		})
	case "tree":
		a.withCell(fields, func(addr celladdr.Address) error {
			tree, err := a.sheet.Tree(addr)
			if err != nil {
				return err
			}
			if tree.IsEmpty() {
				fmt.Fprintf(a.outW, "%s is empty\n", addr)
				return nil
			}
			fmt.Fprintf(a.outW, "%s: %s\n", addr, tree)
			return nil
		})
	case "save":
		path := a.config.OutPath
		if path == "" {
			path = a.config.SheetPath
		}
		if len(fields) > 1 {
			path = strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		}
		if path == "" {
			a.printError(errors.New("no path to save to: use save PATH"))
			return false
		}
		if err := saveSheet(ctx, a.sheet, path); err != nil {
			a.printError(err)
			return false
		}
		fmt.Fprintf(a.outW, "saved %s\n", path)
	case "set":
		if len(fields) < 2 {
			a.printError(errors.New("usage: set CELL FORMULA"))
			return false
		}
		rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		text := strings.TrimSpace(strings.TrimPrefix(rest, fields[1]))
		a.assign(ctx, fields[1], text)
	default:
		edit, err := ParseEdit(line)
		if err != nil {
			a.printError(fmt.Errorf("unknown command %q (type 'help')", fields[0]))
			return false
		}
		a.assign(ctx, edit.Cell, edit.Formula)
	}
	return false
}

// assign sets one formula and prints the resulting cell.
func (a *App) assign(ctx context.Context, cell, text string) {
	addr, err := celladdr.Parse(cell)
	if err != nil {
		a.printError(err)
		return
	}
	if err := a.sheet.SetFormula(ctx, addr, text); err != nil {
		a.printError(err)
		return
	}
	view, err := a.sheet.Cell(addr)
	if err != nil {
		a.printError(err)
		return
	}
	describeCell(a.outW, view)
}

// withCell parses the cell argument of a command and runs fn on it.
func (a *App) withCell(fields []string, fn func(celladdr.Address) error) {
	if len(fields) != 2 {
		a.printError(fmt.Errorf("usage: %s CELL", fields[0]))
		return
	}
	addr, err := celladdr.Parse(fields[1])
	if err == nil {
		err = fn(addr)
	}
	if err != nil {
		a.printError(err)
	}
}

// printError reports a failed command. Circular references get the
// dedicated explanation.
func (a *App) printError(err error) {
	if errors.Is(err, sheet.ErrCycleDetected) {
		fmt.Fprintln(a.outW, "error: there are one or more circular references where a formula refers to its own cell either directly or indirectly; the change was undone")
	}
	fmt.Fprintf(a.outW, "error: %v\n", err)
}
