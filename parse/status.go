package parse

// A line record from /Line/Mode/{modes}/Status or /Line/{ids}/Status.
// LineStatuses may be empty; the first entry, when present, is the
// headline status.
type Line struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	ModeName     string            `json:"modeName"`
	LineStatuses []LineStatusEntry `json:"lineStatuses"`
}

type LineStatusEntry struct {
	StatusSeverity            int               `json:"statusSeverity"`
	StatusSeverityDescription string            `json:"statusSeverityDescription"`
	Reason                    string            `json:"reason"`
	Disruption                *DisruptionDetail `json:"disruption"`
}

type DisruptionDetail struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	ClosureText string `json:"closureText"`
}

func ParseLines(data []byte) ([]Line, error) {
	var lines []Line
	if err := decode(data, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func ParseDisruptions(data []byte) ([]DisruptionDetail, error) {
	var disruptions []DisruptionDetail
	if err := decode(data, &disruptions); err != nil {
		return nil, err
	}
	return disruptions, nil
}
