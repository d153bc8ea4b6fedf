package tfl

import "fmt"

// Pure display helpers. No network, no state.

// A partition of arrivals keyed by line or platform, preserving the
// order in which keys were first seen. A plain map would shuffle
// departure boards on every refresh.
type ArrivalGroups struct {
	keys   []string
	groups map[string][]Arrival
}

func (g *ArrivalGroups) add(key string, arrival Arrival) {
	if g.groups == nil {
		g.groups = map[string][]Arrival{}
	}
	if _, seen := g.groups[key]; !seen {
		g.keys = append(g.keys, key)
	}
	g.groups[key] = append(g.groups[key], arrival)
}

// Group keys in first-seen order.
func (g *ArrivalGroups) Keys() []string {
	return g.keys
}

func (g *ArrivalGroups) Get(key string) []Arrival {
	return g.groups[key]
}

func (g *ArrivalGroups) Len() int {
	return len(g.keys)
}

// Partitions arrivals by line name.
func GroupArrivalsByLine(arrivals []Arrival) *ArrivalGroups {
	groups := &ArrivalGroups{}
	for _, arrival := range arrivals {
		groups.add(arrival.LineName, arrival)
	}
	return groups
}

// Partitions arrivals by platform name, falling back to direction and
// then to a literal "Unknown".
func GroupArrivalsByPlatform(arrivals []Arrival) *ArrivalGroups {
	groups := &ArrivalGroups{}
	for _, arrival := range arrivals {
		key := arrival.PlatformName
		if key == "" {
			key = arrival.Direction
		}
		if key == "" {
			key = "Unknown"
		}
		groups.add(key, arrival)
	}
	return groups
}

// Formats seconds-to-arrival the way a departure board does: "Due"
// under 30 seconds, then whole minutes.
func FormatTimeToStation(seconds int) string {
	if seconds < 30 {
		return "Due"
	}

	minutes := seconds / 60
	if minutes == 1 {
		return "1 min"
	}
	return fmt.Sprintf("%d mins", minutes)
}

// Official TfL line branding colours.
var lineColors = map[string]string{
	"bakerloo":          "#B36305",
	"central":           "#E32017",
	"circle":            "#FFD300",
	"district":          "#00782A",
	"hammersmith-city":  "#F3A9BB",
	"jubilee":           "#A0A5A9",
	"metropolitan":      "#9B0056",
	"northern":          "#000000",
	"piccadilly":        "#003688",
	"victoria":          "#0098D4",
	"waterloo-city":     "#95CDBA",
	"elizabeth":         "#9364CD",
	"elizabeth-line":    "#9364CD",
	"dlr":               "#00A4A7",
	"london-overground": "#EE7C0E",
}

const DefaultLineColor = "#8B7355"

// Returns the brand colour for a line ID, or DefaultLineColor for
// lines without one.
func LineColor(lineID string) string {
	if color, ok := lineColors[lineID]; ok {
		return color
	}
	return DefaultLineColor
}

// Severity-band colours for status badges.
const (
	colorGoodService = "#9DC183"
	colorDelayed     = "#FFD4C9"
	colorSevere      = "#FF9B85"
)

func StatusColor(status LineStatus) string {
	switch {
	case status.GoodService():
		return colorGoodService
	case status.Delayed():
		return colorDelayed
	case status.SeverelyDisrupted():
		return colorSevere
	}
	return DefaultLineColor
}

// Friendly labels for the status descriptions TfL actually sends.
var statusLabels = map[string]string{
	"Good Service":    "✅ Good Service",
	"Minor Delays":    "⚠️ Minor Delays",
	"Severe Delays":   "🚫 Severe Delays",
	"Part Closure":    "🔧 Part Closure",
	"Planned Closure": "🔧 Planned Closure",
	"Part Suspended":  "⛔ Part Suspended",
	"Suspended":       "⛔ Suspended",
	"Reduced Service": "⚠️ Reduced Service",
	"Service Closed":  "🚫 Service Closed",
	"Special Service": "ℹ️ Special Service",
}

// Returns a display label for a line status. Descriptions outside the
// known set pass through unchanged.
func StatusLabel(status LineStatus) string {
	if label, ok := statusLabels[status.StatusSeverityDescription]; ok {
		return label
	}
	return status.StatusSeverityDescription
}
