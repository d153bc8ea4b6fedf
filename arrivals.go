package tfl

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"stationly.dev/tfl/parse"
)

// Shown when upstream omits the platform for a prediction, which it
// routinely does for DLR stations.
const PlatformUnknown = "Platform Unknown"

// One predicted train calling at a station. TimeToStation is the
// authoritative sort key; ExpectedArrival is derived and may be zero.
type Arrival struct {
	ID              string
	LineID          string
	LineName        string
	Direction       string
	DestinationName string
	PlatformName    string
	TimeToStation   int // seconds
	ExpectedArrival time.Time
	CurrentLocation string
	Towards         string
}

// Fetches live arrivals for a station given any station token a user
// might supply. The token is resolved first: an ambiguous token fails
// with *DisambiguationError carrying the alternatives, an unresolvable
// one with *ResolutionError. Results are filtered to supported modes
// and sorted soonest-first. An empty result means no imminent service,
// not an error.
//
// Each call replaces any previous result wholesale; nothing is merged
// or retained between calls.
func (c *Client) StationArrivals(ctx context.Context, input string) ([]Arrival, error) {
	resolution := c.ResolveStationID(ctx, input)
	if resolution.Ambiguous() {
		return nil, &DisambiguationError{
			Input:        input,
			Alternatives: resolution.Alternatives,
		}
	}
	if !resolution.Resolved() {
		return nil, &ResolutionError{Input: input, Err: resolution.Err}
	}

	stationID := resolution.Station.ID
	body, err := c.get(ctx, "/StopPoint/"+url.PathEscape(stationID)+"/Arrivals", nil, true)
	if err != nil {
		return nil, fmt.Errorf("fetching arrivals for %s: %w", stationID, err)
	}

	preds, err := parse.ParsePredictions(body)
	if err != nil {
		return nil, fmt.Errorf("fetching arrivals for %s: %w", stationID, err)
	}

	var arrivals []Arrival
	for _, pred := range preds {
		if !supportedMode(pred.ModeName) {
			continue
		}
		arrivals = append(arrivals, newArrival(pred))
	}

	sortArrivals(arrivals)
	return arrivals, nil
}

// Fetches live arrivals across a whole line. No station resolution
// and no mode filter: the caller named the line, so they get all of
// it.
func (c *Client) LineArrivals(ctx context.Context, lineID string) ([]Arrival, error) {
	body, err := c.get(ctx, "/Line/"+url.PathEscape(lineID)+"/Arrivals", nil, true)
	if err != nil {
		return nil, fmt.Errorf("fetching arrivals for line %s: %w", lineID, err)
	}

	preds, err := parse.ParsePredictions(body)
	if err != nil {
		return nil, fmt.Errorf("fetching arrivals for line %s: %w", lineID, err)
	}

	arrivals := make([]Arrival, 0, len(preds))
	for _, pred := range preds {
		arrivals = append(arrivals, newArrival(pred))
	}

	sortArrivals(arrivals)
	return arrivals, nil
}

func newArrival(pred parse.Prediction) Arrival {
	platform := pred.PlatformName
	if platform == "" {
		platform = PlatformUnknown
	}

	return Arrival{
		ID:              pred.ID,
		LineID:          pred.LineID,
		LineName:        pred.LineName,
		Direction:       pred.Direction,
		DestinationName: pred.DestinationName,
		PlatformName:    platform,
		TimeToStation:   pred.TimeToStation,
		ExpectedArrival: pred.ExpectedArrivalTime(),
		CurrentLocation: pred.CurrentLocation,
		Towards:         pred.Towards,
	}
}

func sortArrivals(arrivals []Arrival) {
	sort.SliceStable(arrivals, func(i, j int) bool {
		return arrivals[i].TimeToStation < arrivals[j].TimeToStation
	})
}
