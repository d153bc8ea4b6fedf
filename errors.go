package tfl

import (
	"fmt"

	"stationly.dev/tfl/fetch"
)

// Transport-level errors, re-exported so callers can errors.Is
// against them without importing fetch.
var (
	ErrNetwork     = fetch.ErrNetwork
	ErrAuth        = fetch.ErrAuth
	ErrRateLimited = fetch.ErrRateLimited
	ErrUpstream    = fetch.ErrUpstream
)

// Returned when a station query matched nothing. An expected outcome,
// not an upstream failure.
type NoMatchError struct {
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf(
		"no stations found matching %q; try the full station name (e.g. \"Bank\", \"Paddington\")",
		e.Query,
	)
}

// Returned when a station query matched several physical stations
// (e.g. "Bank" serves Underground and DLR via distinct stops). The
// caller should present Alternatives and retry with a specific ID.
type DisambiguationError struct {
	Input        string
	Alternatives []Station
}

func (e *DisambiguationError) Error() string {
	return fmt.Sprintf("multiple stations found for %q; please select one", e.Input)
}

// Returned by StationArrivals when the input could not be resolved to
// a station at all. Wraps the resolver's failure.
type ResolutionError struct {
	Input string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving station %q: %v", e.Input, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
