// Package config defines the format-agnostic sheet document, along with the
// core interfaces (Loader, Saver) for reading and writing it from various
// sources.
//
// The `config.Document` is the single hand-off point between the `sheet`
// package and the persistence formats. Concrete implementations of the
// interfaces, such as for TSV, HCL and XLSX, are provided in separate
// packages.
package config
