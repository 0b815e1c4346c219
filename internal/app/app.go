package app

import (
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/gridcalc/internal/sheet"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	inR    io.Reader
	logger *slog.Logger
	config *Config
	sheet  *sheet.Spreadsheet
}

// NewApp is the constructor for the main application. Rendered output goes
// to outW, logs go to logW and interactive commands are read from inR. When
// an interactive run is cancelled, inR is closed if it is an io.Closer.
func NewApp(outW, logW io.Writer, inR io.Reader, appConfig *Config) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if inR == nil {
		inR = strings.NewReader("")
	}

	return &App{
		outW:   outW,
		inR:    inR,
		logger: logger,
		config: appConfig,
	}
}

// Sheet returns the sheet the app worked on, or nil before Run. This is
// primarily for testing.
func (a *App) Sheet() *sheet.Spreadsheet {
	return a.sheet
}
