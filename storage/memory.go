package storage

import (
	"sort"
	"sync"
	"time"

	"stationly.dev/tfl"
)

// In memory implementation of Storage below

type MemoryStorage struct {
	mutex     sync.Mutex
	favorites map[string]*FavoriteStation
	collapsed map[string][]string
	lineOrder map[string][]string

	TimeNow func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		favorites: map[string]*FavoriteStation{},
		collapsed: map[string][]string{},
		lineOrder: map[string][]string{},
		TimeNow:   time.Now,
	}
}

func (s *MemoryStorage) Favorites() ([]FavoriteStation, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.sortedFavorites(), nil
}

func (s *MemoryStorage) sortedFavorites() []FavoriteStation {
	favorites := []FavoriteStation{}
	for _, fav := range s.favorites {
		favorites = append(favorites, *fav)
	}
	sort.Slice(favorites, func(i, j int) bool {
		if favorites[i].AddedAt.Equal(favorites[j].AddedAt) {
			return favorites[i].ID < favorites[j].ID
		}
		return favorites[i].AddedAt.Before(favorites[j].AddedAt)
	})
	return favorites
}

func (s *MemoryStorage) AddFavorite(station tfl.Station) (FavoriteStation, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.favorites[station.ID]; exists {
		return FavoriteStation{}, ErrAlreadyFavorite
	}

	fav := &FavoriteStation{
		Station: station,
		IsMain:  len(s.favorites) == 0,
		AddedAt: s.TimeNow().UTC(),
	}
	s.favorites[station.ID] = fav

	return *fav, nil
}

func (s *MemoryStorage) RemoveFavorite(stationID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	fav, exists := s.favorites[stationID]
	if !exists {
		return nil
	}

	delete(s.favorites, stationID)

	if fav.IsMain {
		remaining := s.sortedFavorites()
		if len(remaining) > 0 {
			s.favorites[remaining[0].ID].IsMain = true
		}
	}

	return nil
}

func (s *MemoryStorage) SetMainStation(stationID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.favorites[stationID]; !exists {
		return ErrNotFavorite
	}

	for id, fav := range s.favorites {
		fav.IsMain = id == stationID
	}

	return nil
}

func (s *MemoryStorage) MainStation() (*FavoriteStation, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, fav := range s.favorites {
		if fav.IsMain {
			main := *fav
			return &main, nil
		}
	}

	return nil, nil
}

func (s *MemoryStorage) CollapsedLines(stationID string) ([]string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return append([]string(nil), s.collapsed[stationID]...), nil
}

func (s *MemoryStorage) SetCollapsedLines(stationID string, lineIDs []string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.collapsed[stationID] = append([]string(nil), lineIDs...)
	return nil
}

func (s *MemoryStorage) LineOrder(stationID string) ([]string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return append([]string(nil), s.lineOrder[stationID]...), nil
}

func (s *MemoryStorage) SetLineOrder(stationID string, lineIDs []string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.lineOrder[stationID] = append([]string(nil), lineIDs...)
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
