package tfl

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationArrivalsFilterAndSort(t *testing.T) {
	api := apiFixture()
	defer api.Server.Close()

	api.Responses["/StopPoint/940GZZLUBNK/Arrivals"] = `[
		{"id": "1", "modeName": "bus", "lineName": "21", "timeToStation": 30},
		{"id": "2", "modeName": "tube", "lineId": "central", "lineName": "Central",
		 "destinationName": "Epping", "timeToStation": 500},
		{"id": "3", "modeName": "tube", "lineId": "central", "lineName": "Central",
		 "destinationName": "Hainault", "timeToStation": 90}
	]`

	client := testClient(api)
	arrivals, err := client.StationArrivals(context.Background(), "940GZZLUBNK")
	require.NoError(t, err)

	// the bus never appears; tube records come back soonest-first
	require.Len(t, arrivals, 2)
	assert.Equal(t, 90, arrivals[0].TimeToStation)
	assert.Equal(t, 500, arrivals[1].TimeToStation)
	assert.Equal(t, "Hainault", arrivals[0].DestinationName)
}

func TestStationArrivalsSortedAscending(t *testing.T) {
	api := apiFixture()
	defer api.Server.Close()

	api.Responses["/StopPoint/940GZZDLBNK/Arrivals"] = `[
		{"id": "1", "modeName": "dlr", "timeToStation": 700},
		{"id": "2", "modeName": "dlr", "timeToStation": 20},
		{"id": "3", "modeName": "dlr", "timeToStation": 350},
		{"id": "4", "modeName": "dlr", "timeToStation": 350},
		{"id": "5", "modeName": "dlr", "timeToStation": 0}
	]`

	client := testClient(api)
	arrivals, err := client.StationArrivals(context.Background(), "940GZZDLBNK")
	require.NoError(t, err)

	require.Len(t, arrivals, 5)
	for i := 1; i < len(arrivals); i++ {
		assert.LessOrEqual(t, arrivals[i-1].TimeToStation, arrivals[i].TimeToStation)
	}
}

func TestStationArrivalsModeSpellings(t *testing.T) {
	api := apiFixture()
	defer api.Server.Close()

	// upstream has used both spellings for the Elizabeth line
	api.Responses["/StopPoint/910GLIVST/Arrivals"] = `[
		{"id": "1", "modeName": "elizabeth line", "timeToStation": 60},
		{"id": "2", "modeName": "elizabeth-line", "timeToStation": 120},
		{"id": "3", "modeName": "TUBE", "timeToStation": 180},
		{"id": "4", "modeName": "overground", "timeToStation": 240}
	]`

	client := testClient(api)
	arrivals, err := client.StationArrivals(context.Background(), "910GLIVST")
	require.NoError(t, err)

	require.Len(t, arrivals, 3)
	assert.Equal(t, "1", arrivals[0].ID)
	assert.Equal(t, "2", arrivals[1].ID)
	assert.Equal(t, "3", arrivals[2].ID)
}

func TestStationArrivalsPlatformDefault(t *testing.T) {
	api := apiFixture()
	defer api.Server.Close()

	api.Responses["/StopPoint/940GZZDLBNK/Arrivals"] = `[
		{"id": "1", "modeName": "dlr", "timeToStation": 60},
		{"id": "2", "modeName": "dlr", "platformName": "Platform 2", "timeToStation": 120}
	]`

	client := testClient(api)
	arrivals, err := client.StationArrivals(context.Background(), "940GZZDLBNK")
	require.NoError(t, err)

	require.Len(t, arrivals, 2)
	assert.Equal(t, PlatformUnknown, arrivals[0].PlatformName)
	assert.Equal(t, "Platform 2", arrivals[1].PlatformName)
}

func TestStationArrivalsExpectedArrival(t *testing.T) {
	api := apiFixture()
	defer api.Server.Close()

	api.Responses["/StopPoint/940GZZLUBNK/Arrivals"] = `[
		{"id": "1", "modeName": "tube", "timeToStation": 60,
		 "expectedArrival": "2024-03-01T12:30:00Z"},
		{"id": "2", "modeName": "tube", "timeToStation": 120,
		 "expectedArrival": "not a timestamp"}
	]`

	client := testClient(api)
	arrivals, err := client.StationArrivals(context.Background(), "940GZZLUBNK")
	require.NoError(t, err)

	require.Len(t, arrivals, 2)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC), arrivals[0].ExpectedArrival)
	assert.True(t, arrivals[1].ExpectedArrival.IsZero())
}

func TestStationArrivalsEmptyIsNotAnError(t *testing.T) {
	api := apiFixture()
	defer api.Server.Close()

	api.Responses["/StopPoint/940GZZLUBNK/Arrivals"] = `[
		{"id": "1", "modeName": "bus", "timeToStation": 30}
	]`

	client := testClient(api)
	arrivals, err := client.StationArrivals(context.Background(), "940GZZLUBNK")
	require.NoError(t, err)
	assert.Empty(t, arrivals)
}

func TestStationArrivalsResolvesNames(t *testing.T) {
	api := apiFixture()
	defer api.Server.Close()

	api.Responses["/StopPoint/Search"] = `[
		{"id": "940GZZLUOXC", "name": "Oxford Circus", "modes": ["tube"]}
	]`
	api.Responses["/StopPoint/940GZZLUOXC/Arrivals"] = `[
		{"id": "1", "modeName": "tube", "timeToStation": 45}
	]`

	client := testClient(api)
	arrivals, err := client.StationArrivals(context.Background(), "Oxford Circus")
	require.NoError(t, err)
	require.Len(t, arrivals, 1)
}

func TestStationArrivalsDisambiguationRequired(t *testing.T) {
	api := apiFixture()
	defer api.Server.Close()

	api.Responses["/StopPoint/Search"] = `[
		{"id": "940GZZLUBNK", "name": "Bank Underground Station", "modes": ["tube"]},
		{"id": "940GZZDLBNK", "name": "Bank DLR Station", "modes": ["dlr"]}
	]`

	client := testClient(api)
	_, err := client.StationArrivals(context.Background(), "Bank")

	var disambiguation *DisambiguationError
	require.ErrorAs(t, err, &disambiguation)
	assert.Equal(t, "Bank", disambiguation.Input)
	assert.Len(t, disambiguation.Alternatives, 2)
}

func TestStationArrivalsResolutionFailed(t *testing.T) {
	api := apiFixture()
	defer api.Server.Close()

	api.Responses["/StopPoint/Search"] = `[]`

	client := testClient(api)
	_, err := client.StationArrivals(context.Background(), "Narnia Central")

	var resolution *ResolutionError
	require.ErrorAs(t, err, &resolution)

	var noMatch *NoMatchError
	assert.ErrorAs(t, err, &noMatch)
}

func TestStationArrivalsUpstreamError(t *testing.T) {
	api := apiFixture()
	defer api.Server.Close()

	api.Statuses["/StopPoint/940GZZLUBNK/Arrivals"] = http.StatusTooManyRequests

	client := testClient(api)
	_, err := client.StationArrivals(context.Background(), "940GZZLUBNK")
	require.ErrorIs(t, err, ErrRateLimited)
}

func TestLineArrivalsNoModeFilter(t *testing.T) {
	api := apiFixture()
	defer api.Server.Close()

	api.Responses["/Line/central/Arrivals"] = `[
		{"id": "1", "modeName": "tube", "lineName": "Central", "timeToStation": 300},
		{"id": "2", "modeName": "bus", "lineName": "Central", "timeToStation": 100}
	]`

	client := testClient(api)
	arrivals, err := client.LineArrivals(context.Background(), "central")
	require.NoError(t, err)

	// caller named the line; no mode filtering, still sorted
	require.Len(t, arrivals, 2)
	assert.Equal(t, "2", arrivals[0].ID)
	assert.Equal(t, "1", arrivals[1].ID)
}
