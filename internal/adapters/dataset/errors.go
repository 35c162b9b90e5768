package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrMissingTable = errors.New("required table missing")
	ErrEmptyTable   = errors.New("table has no rows")
	ErrMissingKey   = errors.New("table rows missing key column")
)
