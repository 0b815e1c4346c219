// Package cli turns command-line arguments into an app.Config. It owns the
// flag set, the usage text and the mapping of bad input to exit codes.
package cli
