package repository

import "errors"

// Sentinel kinds for board errors.
var (
	ErrNotFound     = errors.New("entity not found")
	ErrInvalidLimit = errors.New("invalid board limit")
	ErrEmptyBoard   = errors.New("board has no snapshot yet")
)
