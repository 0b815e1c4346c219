// Package app wires the sheet engine to its surroundings. It opens or creates
// a sheet, applies command-line edits, runs the interactive session and the
// live server, and renders and saves the result. It is decoupled from any
// specific entrypoint like a CLI.
package app
