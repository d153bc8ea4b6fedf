package parse

import "time"

// A raw arrival prediction from /StopPoint/{id}/Arrivals or
// /Line/{id}/Arrivals.
type Prediction struct {
	ID              string `json:"id"`
	VehicleID       string `json:"vehicleId"`
	NaptanID        string `json:"naptanId"`
	StationName     string `json:"stationName"`
	LineID          string `json:"lineId"`
	LineName        string `json:"lineName"`
	PlatformName    string `json:"platformName"`
	Direction       string `json:"direction"`
	DestinationName string `json:"destinationName"`
	TimeToStation   int    `json:"timeToStation"`
	CurrentLocation string `json:"currentLocation"`
	Towards         string `json:"towards"`
	ExpectedArrival string `json:"expectedArrival"`
	ModeName        string `json:"modeName"`
}

func ParsePredictions(data []byte) ([]Prediction, error) {
	var preds []Prediction
	if err := decode(data, &preds); err != nil {
		return nil, err
	}
	return preds, nil
}

// Upstream timestamps are RFC 3339. A missing or malformed timestamp
// yields the zero time; TimeToStation remains the authoritative field.
func (p Prediction) ExpectedArrivalTime() time.Time {
	t, err := time.Parse(time.RFC3339, p.ExpectedArrival)
	if err != nil {
		return time.Time{}
	}
	return t
}
