package parse

// A stop point record from /StopPoint/{id}. Parent ("hub") records
// carry their routable stations in Children.
type StopPoint struct {
	ID         string      `json:"id"`
	CommonName string      `json:"commonName"`
	Name       string      `json:"name"`
	Modes      []string    `json:"modes"`
	Lat        float64     `json:"lat"`
	Lon        float64     `json:"lon"`
	Lines      []LineRef   `json:"lines"`
	Children   []StopPoint `json:"children"`
}

type LineRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Upstream uses commonName for stop points but name for search
// matches. Either may be blank on child records.
func (sp StopPoint) DisplayName() string {
	if sp.CommonName != "" {
		return sp.CommonName
	}
	return sp.Name
}

func ParseStopPoint(data []byte) (*StopPoint, error) {
	var sp StopPoint
	if err := decode(data, &sp); err != nil {
		return nil, err
	}
	return &sp, nil
}
