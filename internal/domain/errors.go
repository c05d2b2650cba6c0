package domain

import (
	"errors"
	"fmt"
)

// ErrNoLocation is returned when neither explicit coordinates nor a
// configured default location are available.
var ErrNoLocation = errors.New("no location: coordinates not provided and no default configured")

// UnknownTimezoneError reports a timezone abbreviation outside the supported
// NWS digital forecast set. There is no fuzzy matching; an unmapped token is
// fatal to that window's assembly.
type UnknownTimezoneError struct {
	Abbrev string
}

func (e *UnknownTimezoneError) Error() string {
	return fmt.Sprintf("unknown timezone abbreviation %q", e.Abbrev)
}

// InvalidDepthError reports a non-positive characteristic depth passed to the
// cooling-rate model. Zero depth would divide by zero; it is rejected rather
// than silently converted to infinity.
type InvalidDepthError struct {
	Depth float64
}

func (e *InvalidDepthError) Error() string {
	return fmt.Sprintf("invalid characteristic depth %g m: must be positive", e.Depth)
}
