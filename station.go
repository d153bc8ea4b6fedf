package tfl

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"stationly.dev/tfl/parse"
)

// A canonical transit stop, routable for arrivals when its ID is in
// canonical format. Constructed fresh on every search or resolve call
// and never mutated.
type Station struct {
	ID    string
	Name  string
	Modes []string
	Lines []string
	Lat   float64
	Lon   float64
}

// The ID formats the arrivals endpoint accepts: 940GZZLU (tube),
// 940GZZDL (DLR), 910G (Elizabeth line / national rail). Anything
// else (hub codes like HUBBAN, bare NaPTANs) resolves via search
// but returns nothing from /Arrivals.
var canonicalIDPattern = regexp.MustCompile(`(?i)^(940GZZ(LU|DL)|910G)`)

// Reports whether id is in the canonical station ID format. Used
// uniformly by search filtering, resolver short-circuiting and
// parent-expansion filtering.
func IsCanonicalStationID(id string) bool {
	return canonicalIDPattern.MatchString(id)
}

// Searches stations by free-text query, scoped to the supported
// modes. Queries shorter than two characters return nothing without a
// network call. Parent ("hub") matches are replaced in-place by their
// routable child stations; a failed expansion skips that parent
// rather than failing the search. An unrecognized response shape is
// treated as no matches.
func (c *Client) SearchStations(ctx context.Context, query string) ([]Station, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("modes", strings.Join(SupportedModes, ","))
	params.Set("maxResults", strconv.Itoa(c.MaxSearchResults))

	body, err := c.get(ctx, "/StopPoint/Search", params, false)
	if err != nil {
		return nil, fmt.Errorf("searching stations: %w", err)
	}

	matches, err := parse.SearchMatches(body)
	if err != nil {
		c.warn("unrecognized search response shape", "query", query)
		return nil, nil
	}

	var stations []Station
	for _, match := range matches {
		if !anySupportedMode(match.Modes) {
			continue
		}

		if IsCanonicalStationID(match.ID) {
			stations = append(stations, Station{
				ID:    match.ID,
				Name:  match.DisplayName(),
				Modes: match.Modes,
				Lat:   match.Lat,
				Lon:   match.Lon,
			})
			continue
		}

		// Parent station. Its children hold the routable IDs.
		children, err := c.childStations(ctx, match.ID)
		if err != nil {
			c.warn("skipping parent station expansion",
				"parent", match.ID, "error", err)
			continue
		}
		stations = append(stations, children...)
	}

	return stations, nil
}

// Fetches a parent station's detail record and returns its children
// that are both canonically identified and mode-valid.
func (c *Client) childStations(ctx context.Context, parentID string) ([]Station, error) {
	body, err := c.get(ctx, "/StopPoint/"+url.PathEscape(parentID), nil, false)
	if err != nil {
		return nil, err
	}

	sp, err := parse.ParseStopPoint(body)
	if err != nil {
		return nil, err
	}

	var stations []Station
	for _, child := range sp.Children {
		if !IsCanonicalStationID(child.ID) || !anySupportedMode(child.Modes) {
			continue
		}
		stations = append(stations, Station{
			ID:    child.ID,
			Name:  child.DisplayName(),
			Modes: child.Modes,
			Lat:   child.Lat,
			Lon:   child.Lon,
		})
	}

	return stations, nil
}

// Fetches a single station's detail record, including the lines
// serving it.
func (c *Client) StationByID(ctx context.Context, id string) (*Station, error) {
	body, err := c.get(ctx, "/StopPoint/"+url.PathEscape(id), nil, false)
	if err != nil {
		return nil, fmt.Errorf("fetching station %s: %w", id, err)
	}

	sp, err := parse.ParseStopPoint(body)
	if err != nil {
		return nil, fmt.Errorf("fetching station %s: %w", id, err)
	}

	var lines []string
	for _, line := range sp.Lines {
		lines = append(lines, line.Name)
	}

	return &Station{
		ID:    sp.ID,
		Name:  sp.DisplayName(),
		Modes: sp.Modes,
		Lines: lines,
		Lat:   sp.Lat,
		Lon:   sp.Lon,
	}, nil
}

// The outcome of resolving one user-supplied station token. Exactly
// one of Station, Alternatives, and Err is set.
type StationResolution struct {
	Station      *Station
	Alternatives []Station
	Err          error
}

func (r StationResolution) Resolved() bool {
	return r.Station != nil
}

func (r StationResolution) Ambiguous() bool {
	return len(r.Alternatives) > 0
}

// Resolves a user-supplied token (a canonical ID, a shortcode, or a
// station name) to a station.
//
// Input already in canonical format is accepted as-is, with no
// network call and no existence check: re-resolving a correct ID
// through search risks landing on a parent hub like HUBBAN instead. A
// pattern-matching but nonexistent ID therefore only surfaces when
// the arrivals fetch comes back empty-handed. The stub Station echoes
// the ID as its name and carries no modes.
//
// Transport failures are folded into the returned resolution; this
// never panics and never returns a raw transport error.
func (c *Client) ResolveStationID(ctx context.Context, input string) StationResolution {
	input = strings.TrimSpace(input)

	if IsCanonicalStationID(input) {
		return StationResolution{
			Station: &Station{
				ID:   input,
				Name: input,
			},
		}
	}

	stations, err := c.SearchStations(ctx, input)
	if err != nil {
		return StationResolution{
			Err: fmt.Errorf("failed to resolve station: %w", err),
		}
	}

	switch len(stations) {
	case 0:
		return StationResolution{Err: &NoMatchError{Query: input}}
	case 1:
		return StationResolution{Station: &stations[0]}
	default:
		return StationResolution{Alternatives: stations}
	}
}

// Same operation as ResolveStationID, exposed under the name the UI
// layer uses to retrieve alternatives after a DisambiguationError.
func (c *Client) CheckStationDisambiguation(ctx context.Context, input string) StationResolution {
	return c.ResolveStationID(ctx, input)
}
