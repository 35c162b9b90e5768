package scrape

import "errors"

// ErrBadStatus is returned when the upstream site answers with a
// non-200 status.
var ErrBadStatus = errors.New("unexpected response status")
