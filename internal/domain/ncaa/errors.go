package ncaa

import "errors"

// ErrUnknownVariant is returned when a model variant name is not one of
// the supported presets.
var ErrUnknownVariant = errors.New("unknown model variant")
