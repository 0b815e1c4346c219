package live

// Request is the payload of a set_formula event.
type Request struct {
	Cell    string `json:"cell"`
	Formula string `json:"formula"`
}

// Result answers a single set_formula request. Kind classifies a failure:
// "request", "reference", "range", "parse", "cycle", "arithmetic" or
// "internal". An arithmetic fault still has OK set, because the formula was
// accepted.
type Result struct {
	Cell    string `json:"cell"`
	Formula string `json:"formula"`
	OK      bool   `json:"ok"`
	Value   int    `json:"value"`
	Kind    string `json:"kind,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CellValue is one entry of the values broadcast.
type CellValue struct {
	Cell    string `json:"cell"`
	Formula string `json:"formula"`
	Value   int    `json:"value"`
	Error   string `json:"error,omitempty"`
}
