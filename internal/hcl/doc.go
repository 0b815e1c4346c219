// Package hcl provides the concrete HCL implementation of the sheet loading
// and saving interfaces defined in the `config` package.
//
// A sheet manifest looks like:
//
//	rows    = 10
//	columns = 10
//
//	cell "A0" {
//	  formula = "5"
//	  value   = 5
//	}
//
// The optional `value` attribute is a snapshot written on save. It is never
// used to compute anything; callers may compare it with the recomputed value.
package hcl
