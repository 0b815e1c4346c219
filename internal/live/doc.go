// Package live serves a sheet over socket.io so remote clients can act as
// the input bar.
//
// Clients emit `set_formula` with a {"cell": "A0", "formula": "1+2"} payload.
// The server answers with a `formula_result` event (or through the
// acknowledgement callback when the client asked for one) and, after every
// accepted change, broadcasts the full list of non-empty cells as `values`.
// A plain `/health` endpoint is served next to the socket.io transport.
package live
