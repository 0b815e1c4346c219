package hcl

// fileRoot is the struct used to decode the top level of a sheet manifest.
// Any attribute or block not listed here is a decode error.
type fileRoot struct {
	Rows    int          `hcl:"rows"`
	Columns int          `hcl:"columns"`
	Cells   []*cellBlock `hcl:"cell,block"`
}

// cellBlock is one `cell "<address>" { ... }` block.
type cellBlock struct {
	Address string `hcl:"address,label"`
	Formula string `hcl:"formula"`
	Value   *int   `hcl:"value,optional"`
}
