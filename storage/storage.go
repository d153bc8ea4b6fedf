// Package storage persists the rider's favorite stations and
// per-station display state (collapsed lines, line ordering) across
// runs. The live data itself is never persisted; it is refetched on
// every call.
package storage

import (
	"errors"
	"time"

	"stationly.dev/tfl"
)

var (
	ErrAlreadyFavorite = errors.New("station is already in favorites")
	ErrNotFavorite     = errors.New("station not found in favorites")
)

// A favorited station. Across the whole persisted set, exactly one
// favorite has IsMain set, or none when the set is empty.
type FavoriteStation struct {
	tfl.Station
	IsMain  bool
	AddedAt time.Time
}

type Storage interface {
	// Returns all favorites, oldest first.
	Favorites() ([]FavoriteStation, error)

	// Adds a station to favorites. The first station added
	// becomes the main station. Adding a station that is already
	// a favorite fails with ErrAlreadyFavorite.
	AddFavorite(station tfl.Station) (FavoriteStation, error)

	// Removes a station from favorites. Removing the main station
	// promotes the oldest remaining favorite. Removing a station
	// that isn't a favorite is a no-op.
	RemoveFavorite(stationID string) error

	// Makes the given favorite the main station, demoting the
	// current one. Fails with ErrNotFavorite for unknown IDs.
	SetMainStation(stationID string) error

	// Returns the main station, or nil when there are no
	// favorites.
	MainStation() (*FavoriteStation, error)

	// Per-station set of line IDs the rider has collapsed.
	CollapsedLines(stationID string) ([]string, error)
	SetCollapsedLines(stationID string, lineIDs []string) error

	// Per-station display order of lines.
	LineOrder(stationID string) ([]string, error)
	SetLineOrder(stationID string, lineIDs []string) error

	Close() error
}
