package parse

import (
	"github.com/pkg/errors"
)

// /StopPoint/Search has been observed returning both a bare array of
// matches and a wrapper object with a "matches" key. Callers treating
// ErrUnrecognizedShape as "no matches" get fail-soft behavior.
var ErrUnrecognizedShape = errors.New("unrecognized search response shape")

type SearchMatch struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	CommonName string   `json:"commonName"`
	Modes      []string `json:"modes"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
}

// Prefers the match name, falling back to commonName. Hub-adjacent
// matches sometimes carry only the latter.
func (m SearchMatch) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.CommonName
}

type searchResponse struct {
	Query   string        `json:"query"`
	Total   int           `json:"total"`
	Matches []SearchMatch `json:"matches"`
}

// Decodes a search response in either shape.
func SearchMatches(data []byte) ([]SearchMatch, error) {
	delim, err := firstToken(data)
	if err != nil {
		return nil, ErrUnrecognizedShape
	}

	switch delim {
	case '[':
		var matches []SearchMatch
		if err := decode(data, &matches); err != nil {
			return nil, ErrUnrecognizedShape
		}
		return matches, nil
	case '{':
		var resp searchResponse
		if err := decode(data, &resp); err != nil {
			return nil, ErrUnrecognizedShape
		}
		if resp.Matches == nil {
			return nil, ErrUnrecognizedShape
		}
		return resp.Matches, nil
	default:
		return nil, ErrUnrecognizedShape
	}
}
