package domain

import "time"

// tzOffsetHours maps the NWS digital forecast timezone abbreviations to
// fixed UTC offsets in hours. The set is closed: North American standard and
// daylight zones only.
var tzOffsetHours = map[string]int{
	"AKST": -9,
	"AKDT": -8,
	"PST":  -8,
	"PDT":  -7,
	"MST":  -7,
	"MDT":  -6,
	"CST":  -6,
	"CDT":  -5,
	"EST":  -5,
	"EDT":  -4,
}

// ResolveTimezone converts an NWS timezone abbreviation to a fixed
// UTC-offset location. The whole forecast window is localized with this one
// offset; see the package documentation for the DST caveat.
func ResolveTimezone(abbrev string) (*time.Location, error) {
	hours, ok := tzOffsetHours[abbrev]
	if !ok {
		return nil, &UnknownTimezoneError{Abbrev: abbrev}
	}
	return time.FixedZone(abbrev, hours*3600), nil
}
