package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMatchesArrayShape(t *testing.T) {
	matches, err := SearchMatches([]byte(`[
		{"id": "940GZZLUBNK", "name": "Bank", "modes": ["tube"], "lat": 51.5, "lon": -0.08}
	]`))
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, "940GZZLUBNK", matches[0].ID)
	assert.Equal(t, []string{"tube"}, matches[0].Modes)
}

func TestSearchMatchesWrapperShape(t *testing.T) {
	matches, err := SearchMatches([]byte(`{
		"query": "bank", "total": 2,
		"matches": [
			{"id": "940GZZLUBNK", "name": "Bank Underground Station"},
			{"id": "940GZZDLBNK", "name": "Bank DLR Station"}
		]
	}`))
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestSearchMatchesEmptyWrapper(t *testing.T) {
	// "matches" present but empty is a valid zero-result response
	matches, err := SearchMatches([]byte(`{"query": "zzz", "total": 0, "matches": []}`))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearchMatchesUnrecognizedShape(t *testing.T) {
	for _, body := range []string{
		`{"query": "bank", "total": 0}`,
		`"a string"`,
		`42`,
		`null`,
		``,
		`{not json`,
	} {
		_, err := SearchMatches([]byte(body))
		assert.ErrorIs(t, err, ErrUnrecognizedShape, "body %q", body)
	}
}

func TestSearchMatchesStripsBOM(t *testing.T) {
	body := append([]byte("\xef\xbb\xbf"), []byte(`[{"id": "940GZZLUBNK"}]`)...)
	matches, err := SearchMatches(body)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestParseStopPoint(t *testing.T) {
	sp, err := ParseStopPoint([]byte(`{
		"id": "HUBBAN", "commonName": "Bank",
		"modes": ["tube", "dlr"],
		"lines": [{"id": "central", "name": "Central"}],
		"children": [
			{"id": "940GZZLUBNK", "commonName": "Bank Underground Station", "modes": ["tube"]}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "HUBBAN", sp.ID)
	assert.Equal(t, "Bank", sp.DisplayName())
	require.Len(t, sp.Children, 1)
	assert.Equal(t, "940GZZLUBNK", sp.Children[0].ID)
	require.Len(t, sp.Lines, 1)
	assert.Equal(t, "Central", sp.Lines[0].Name)
}

func TestStopPointDisplayName(t *testing.T) {
	assert.Equal(t, "Bank", StopPoint{CommonName: "Bank", Name: "other"}.DisplayName())
	assert.Equal(t, "Bank", StopPoint{Name: "Bank"}.DisplayName())
	assert.Equal(t, "", StopPoint{}.DisplayName())
}

func TestParsePredictions(t *testing.T) {
	preds, err := ParsePredictions([]byte(`[
		{"id": "123", "lineId": "central", "lineName": "Central",
		 "platformName": "Eastbound - Platform 6", "direction": "inbound",
		 "destinationName": "Epping", "timeToStation": 120,
		 "expectedArrival": "2024-03-01T12:30:00Z", "modeName": "tube",
		 "currentLocation": "At Bond Street", "towards": "Epping"}
	]`))
	require.NoError(t, err)

	require.Len(t, preds, 1)
	pred := preds[0]
	assert.Equal(t, 120, pred.TimeToStation)
	assert.Equal(t, "tube", pred.ModeName)
	assert.Equal(t,
		time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		pred.ExpectedArrivalTime(),
	)
}

func TestPredictionExpectedArrivalMalformed(t *testing.T) {
	assert.True(t, Prediction{}.ExpectedArrivalTime().IsZero())
	assert.True(t, Prediction{ExpectedArrival: "soon"}.ExpectedArrivalTime().IsZero())
}

func TestParseLines(t *testing.T) {
	lines, err := ParseLines([]byte(`[
		{"id": "central", "name": "Central", "modeName": "tube",
		 "lineStatuses": [
			{"statusSeverity": 6, "statusSeverityDescription": "Severe Delays",
			 "reason": "signal failure",
			 "disruption": {"category": "RealTime", "description": "signal failure at Bank"}}
		 ]},
		{"id": "dlr", "name": "DLR", "modeName": "dlr", "lineStatuses": []}
	]`))
	require.NoError(t, err)

	require.Len(t, lines, 2)
	require.Len(t, lines[0].LineStatuses, 1)
	entry := lines[0].LineStatuses[0]
	assert.Equal(t, 6, entry.StatusSeverity)
	require.NotNil(t, entry.Disruption)
	assert.Equal(t, "RealTime", entry.Disruption.Category)
	assert.Empty(t, lines[1].LineStatuses)
}

func TestParseDisruptions(t *testing.T) {
	disruptions, err := ParseDisruptions([]byte(`[
		{"category": "PlannedWork", "description": "weekend closure", "closureText": "partClosure"}
	]`))
	require.NoError(t, err)

	require.Len(t, disruptions, 1)
	assert.Equal(t, "PlannedWork", disruptions[0].Category)
}
