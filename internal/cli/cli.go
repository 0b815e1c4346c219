package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/gridcalc/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// editList collects repeated -set flags.
type editList []app.Edit

func (l *editList) String() string {
	parts := make([]string, len(*l))
	for i, e := range *l {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func (l *editList) Set(s string) error {
	e, err := app.ParseEdit(s)
	if err != nil {
		return err
	}
	*l = append(*l, e)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gridcalc", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
GridCalc - A small spreadsheet formula engine.

Usage:
  gridcalc [options] [SHEET_PATH]

Arguments:
  SHEET_PATH
    Sheet to load (.tsv, .txt, .hcl or .xlsx). Without it a new empty
    sheet of -rows x -columns is created.

Examples:
  gridcalc -rows 3 -columns 2 -set A0=2 -set 'B0=A0 ^ 3'
  gridcalc -i budget.tsv
  gridcalc -set 'C2=A2 + B2' -out budget.xlsx budget.tsv

Options:
`)
		flagSet.PrintDefaults()
	}

	var edits editList
	sheetFlag := flagSet.String("sheet", "", "Path to the sheet file.")
	sFlag := flagSet.String("s", "", "Path to the sheet file (shorthand).")
	rowsFlag := flagSet.Int("rows", 10, "Number of rows of a new sheet.")
	columnsFlag := flagSet.Int("columns", 10, "Number of columns of a new sheet.")
	flagSet.Var(&edits, "set", "Assign a formula, as CELL=FORMULA. May be repeated; applied in order.")
	outFlag := flagSet.String("out", "", "Save the sheet to this path when done. The extension picks the format.")
	interactiveFlag := flagSet.Bool("interactive", false, "Start an interactive session on stdin.")
	iFlag := flagSet.Bool("i", false, "Start an interactive session on stdin (shorthand).")
	livePortFlag := flagSet.Int("live-port", 0, "Port for the socket.io live editing server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if len(args) == 0 {
		slog.Debug("No arguments provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one sheet path, got %d", flagSet.NArg())}
	}

	path := ""
	if *sheetFlag != "" {
		path = *sheetFlag
	} else if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Sheet path determined.", "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SheetPath:   path,
		OutPath:     *outFlag,
		Rows:        *rowsFlag,
		Columns:     *columnsFlag,
		Edits:       edits,
		Interactive: *interactiveFlag || *iFlag,
		LivePort:    *livePortFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
