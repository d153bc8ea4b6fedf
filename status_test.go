package tfl

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllLineStatus(t *testing.T) {
	api := apiFixture()
	defer api.Server.Close()

	api.Responses["/Line/Mode/tube,dlr,elizabeth-line/Status"] = `[
		{"id": "central", "name": "Central", "modeName": "tube",
		 "lineStatuses": [
			{"statusSeverity": 7, "statusSeverityDescription": "Reduced Service",
			 "reason": "Central Line: reduced service due to train cancellations"}
		 ]},
		{"id": "victoria", "name": "Victoria", "modeName": "tube",
		 "lineStatuses": [
			{"statusSeverity": 10, "statusSeverityDescription": "Good Service"}
		 ]}
	]`

	client := testClient(api)
	statuses, err := client.AllLineStatus(context.Background())
	require.NoError(t, err)

	require.Len(t, statuses, 2)
	assert.Equal(t, "central", statuses[0].LineID)
	assert.Equal(t, 7, statuses[0].StatusSeverity)
	assert.Equal(t, "Reduced Service", statuses[0].StatusSeverityDescription)
	assert.NotEmpty(t, statuses[0].Reason)
	assert.True(t, statuses[1].GoodService())
}

// A line upstream reports no status entries for defaults to good
// service instead of being dropped or failing the call.
func TestLineStatusDefaulting(t *testing.T) {
	api := apiFixture()
	defer api.Server.Close()

	api.Responses["/Line/Mode/tube,dlr,elizabeth-line/Status"] = `[
		{"id": "dlr", "name": "DLR", "modeName": "dlr", "lineStatuses": []},
		{"id": "jubilee", "name": "Jubilee", "modeName": "tube"}
	]`

	client := testClient(api)
	statuses, err := client.AllLineStatus(context.Background())
	require.NoError(t, err)

	require.Len(t, statuses, 2)
	for _, status := range statuses {
		assert.Equal(t, SeverityGoodService, status.StatusSeverity)
		assert.Equal(t, "Good Service", status.StatusSeverityDescription)
	}
}

func TestLineStatusFirstEntryWins(t *testing.T) {
	api := apiFixture()
	defer api.Server.Close()

	api.Responses["/Line/northern/Status"] = `[
		{"id": "northern", "name": "Northern", "modeName": "tube",
		 "lineStatuses": [
			{"statusSeverity": 5, "statusSeverityDescription": "Part Closure"},
			{"statusSeverity": 9, "statusSeverityDescription": "Minor Delays"}
		 ]}
	]`

	client := testClient(api)
	statuses, err := client.LineStatusFor(context.Background(), []string{"northern"})
	require.NoError(t, err)

	require.Len(t, statuses, 1)
	assert.Equal(t, 5, statuses[0].StatusSeverity)
}

func TestLineStatusDisruptionDetail(t *testing.T) {
	api := apiFixture()
	defer api.Server.Close()

	api.Responses["/Line/district/Status"] = `[
		{"id": "district", "name": "District", "modeName": "tube",
		 "lineStatuses": [
			{"statusSeverity": 4, "statusSeverityDescription": "Planned Closure",
			 "reason": "No service between Earl's Court and Wimbledon",
			 "disruption": {
				"category": "PlannedWork",
				"description": "No service between Earl's Court and Wimbledon",
				"closureText": "plannedClosure"
			 }}
		 ]}
	]`

	client := testClient(api)
	statuses, err := client.LineStatusFor(context.Background(), []string{"district"})
	require.NoError(t, err)

	require.Len(t, statuses, 1)
	require.NotNil(t, statuses[0].Disruption)
	assert.Equal(t, "PlannedWork", statuses[0].Disruption.Category)
	assert.Equal(t, "plannedClosure", statuses[0].Disruption.ClosureText)
}

func TestSeverityClassification(t *testing.T) {
	status := func(severity int) LineStatus {
		return LineStatus{StatusSeverity: severity}
	}

	// good service is strictly severity 10
	assert.True(t, status(10).GoodService())
	for _, severity := range []int{0, 5, 6, 9, 11, 13, 18, 20} {
		assert.False(t, status(severity).GoodService(), "severity %d", severity)
	}

	// minor delay band is [6, 9]
	for _, severity := range []int{6, 7, 8, 9} {
		assert.True(t, status(severity).Delayed(), "severity %d", severity)
	}
	for _, severity := range []int{5, 10, 0} {
		assert.False(t, status(severity).Delayed(), "severity %d", severity)
	}

	// severe band is [0, 5]
	for _, severity := range []int{0, 1, 5} {
		assert.True(t, status(severity).SeverelyDisrupted(), "severity %d", severity)
	}
	for _, severity := range []int{6, 10} {
		assert.False(t, status(severity).SeverelyDisrupted(), "severity %d", severity)
	}
}

// Severity 7 ends up in the minor-delay band and in the disrupted
// view, never classified as good service.
func TestDisruptedLines(t *testing.T) {
	statuses := []LineStatus{
		{LineID: "central", StatusSeverity: 7},
		{LineID: "victoria", StatusSeverity: 10},
		{LineID: "district", StatusSeverity: 13},
	}

	disrupted := DisruptedLines(statuses)
	require.Len(t, disrupted, 2)
	assert.Equal(t, "central", disrupted[0].LineID)
	assert.Equal(t, "district", disrupted[1].LineID)
	assert.True(t, disrupted[0].Delayed())
}

func TestSortBySeverity(t *testing.T) {
	statuses := []LineStatus{
		{LineID: "victoria", StatusSeverity: 10},
		{LineID: "central", StatusSeverity: 2},
		{LineID: "district", StatusSeverity: 6},
	}

	sorted := SortBySeverity(statuses)

	require.Len(t, sorted, 3)
	assert.Equal(t, "central", sorted[0].LineID)
	assert.Equal(t, "district", sorted[1].LineID)
	assert.Equal(t, "victoria", sorted[2].LineID)

	// input order untouched
	assert.Equal(t, "victoria", statuses[0].LineID)
}

func TestLineDisruptionsFailSoft(t *testing.T) {
	api := apiFixture()
	defer api.Server.Close()

	api.Statuses["/Line/central/Disruption"] = http.StatusInternalServerError

	client := testClient(api)
	disruptions, err := client.LineDisruptions(context.Background(), []string{"central"})
	require.NoError(t, err)
	assert.Empty(t, disruptions)
}

func TestLineDisruptions(t *testing.T) {
	api := apiFixture()
	defer api.Server.Close()

	api.Responses["/Line/central,victoria/Disruption"] = `[
		{"category": "RealTime", "description": "Severe delays on the Central line"}
	]`

	client := testClient(api)
	disruptions, err := client.LineDisruptions(context.Background(), []string{"central", "victoria"})
	require.NoError(t, err)

	require.Len(t, disruptions, 1)
	assert.Equal(t, "RealTime", disruptions[0].Category)
}
