package tfl

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"stationly.dev/tfl/parse"
)

// TfL's status severity scale. 10 is normal operation, 0-9 are
// escalating disruption, 11-20 are secondary/informational states.
const (
	SeveritySpecialService    = 0
	SeverityClosed            = 1
	SeveritySuspended         = 2
	SeverityPartSuspended     = 3
	SeverityPlannedClosure    = 4
	SeverityPartClosure       = 5
	SeveritySevereDelays      = 6
	SeverityReducedService    = 7
	SeverityBusService        = 8
	SeverityMinorDelays       = 9
	SeverityGoodService       = 10
	SeverityPartClosed        = 11
	SeverityExitOnly          = 12
	SeverityNoStepFreeAccess  = 13
	SeverityChangeOfFrequency = 14
	SeverityDiverted          = 15
	SeverityNotRunning        = 16
	SeverityIssuesReported    = 17
	SeverityNoIssues          = 18
	SeverityInformation       = 19
	SeverityServiceClosed     = 20
)

// The current operational status of one line. A line upstream reports
// no status entry for defaults to good service rather than being
// dropped.
type LineStatus struct {
	LineID                    string
	LineName                  string
	StatusSeverity            int
	StatusSeverityDescription string
	Reason                    string
	Disruption                *Disruption
}

// Structured disruption detail attached to a status entry.
type Disruption struct {
	Category    string
	Description string
	ClosureText string
}

// Reports whether the line is running normally. Strictly severity 10:
// the informational severities (11-20) do not count as good service
// here, so e.g. "No Step Free Access" shows up as disrupted.
func (s LineStatus) GoodService() bool {
	return s.StatusSeverity == SeverityGoodService
}

// Reports whether the line is in the minor-delay band (severity 6-9).
func (s LineStatus) Delayed() bool {
	return s.StatusSeverity >= SeveritySevereDelays &&
		s.StatusSeverity <= SeverityMinorDelays
}

// Reports whether the line is in the severe band (severity 0-5).
func (s LineStatus) SeverelyDisrupted() bool {
	return s.StatusSeverity <= SeverityPartClosure
}

// Fetches current status for every line in the supported modes.
func (c *Client) AllLineStatus(ctx context.Context) ([]LineStatus, error) {
	path := "/Line/Mode/" + url.PathEscape(strings.Join(SupportedModes, ",")) + "/Status"
	return c.lineStatus(ctx, path)
}

// Fetches current status for specific lines.
func (c *Client) LineStatusFor(ctx context.Context, lineIDs []string) ([]LineStatus, error) {
	path := "/Line/" + url.PathEscape(strings.Join(lineIDs, ",")) + "/Status"
	return c.lineStatus(ctx, path)
}

func (c *Client) lineStatus(ctx context.Context, path string) ([]LineStatus, error) {
	body, err := c.get(ctx, path, nil, true)
	if err != nil {
		return nil, fmt.Errorf("fetching line status: %w", err)
	}

	lines, err := parse.ParseLines(body)
	if err != nil {
		return nil, fmt.Errorf("fetching line status: %w", err)
	}

	statuses := make([]LineStatus, 0, len(lines))
	for _, line := range lines {
		statuses = append(statuses, newLineStatus(line))
	}

	return statuses, nil
}

// The first status entry is the headline one. A line with no entries
// at all is reported as good service: no known disruption beats
// failing the whole call.
func newLineStatus(line parse.Line) LineStatus {
	status := LineStatus{
		LineID:                    line.ID,
		LineName:                  line.Name,
		StatusSeverity:            SeverityGoodService,
		StatusSeverityDescription: "Good Service",
	}

	if len(line.LineStatuses) == 0 {
		return status
	}

	entry := line.LineStatuses[0]
	status.StatusSeverity = entry.StatusSeverity
	status.StatusSeverityDescription = entry.StatusSeverityDescription
	status.Reason = entry.Reason
	if entry.Disruption != nil {
		status.Disruption = &Disruption{
			Category:    entry.Disruption.Category,
			Description: entry.Disruption.Description,
			ClosureText: entry.Disruption.ClosureText,
		}
	}

	return status
}

// Fetches detailed disruption records for specific lines. Disruption
// detail is decorative; a failed fetch yields an empty result rather
// than an error.
func (c *Client) LineDisruptions(ctx context.Context, lineIDs []string) ([]Disruption, error) {
	path := "/Line/" + url.PathEscape(strings.Join(lineIDs, ",")) + "/Disruption"
	body, err := c.get(ctx, path, nil, true)
	if err != nil {
		c.warn("fetching line disruptions", "lines", lineIDs, "error", err)
		return nil, nil
	}

	details, err := parse.ParseDisruptions(body)
	if err != nil {
		c.warn("parsing line disruptions", "lines", lineIDs, "error", err)
		return nil, nil
	}

	disruptions := make([]Disruption, 0, len(details))
	for _, d := range details {
		disruptions = append(disruptions, Disruption{
			Category:    d.Category,
			Description: d.Description,
			ClosureText: d.ClosureText,
		})
	}

	return disruptions, nil
}

// Returns the lines not currently reporting good service.
func DisruptedLines(statuses []LineStatus) []LineStatus {
	var disrupted []LineStatus
	for _, status := range statuses {
		if !status.GoodService() {
			disrupted = append(disrupted, status)
		}
	}
	return disrupted
}

// Returns a copy of statuses sorted worst-first. Lower severity
// numbers denote more severe disruption.
func SortBySeverity(statuses []LineStatus) []LineStatus {
	sorted := make([]LineStatus, len(statuses))
	copy(sorted, statuses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StatusSeverity < sorted[j].StatusSeverity
	})
	return sorted
}
