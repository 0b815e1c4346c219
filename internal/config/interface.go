package config

import (
	"context"
	"io"
)

// Loader is the interface for a format-specific document reader.
type Loader interface {
	// Load reads a sheet from r and translates it into the format-agnostic
	// document.
	Load(ctx context.Context, r io.Reader) (*Document, error)
}

// Saver is the interface for a format-specific document writer.
type Saver interface {
	// Save writes doc to w.
	Save(ctx context.Context, w io.Writer, doc *Document) error
}

// Codec reads and writes one persistence format.
type Codec interface {
	Loader
	Saver
}
