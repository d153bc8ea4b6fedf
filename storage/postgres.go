package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"stationly.dev/tfl"
)

type PSQLStorage struct {
	db *sql.DB
}

// Creates a new Postgres Storage using the provided connection string.
//
// If clearDB is true, all tables will be dropped and recreated on
// startup. You probably only want this for testing.
func NewPSQLStorage(connStr string, clearDB bool) (*PSQLStorage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if clearDB {
		_, err = db.Exec(`DROP TABLE IF EXISTS favorite, collapsed_lines, line_order`)
		if err != nil {
			return nil, fmt.Errorf("clearing database: %w", err)
		}
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS favorite (
    station_id TEXT NOT NULL,
    name TEXT NOT NULL,
    modes TEXT[] NOT NULL,
    lines TEXT[] NOT NULL,
    lat DOUBLE PRECISION NOT NULL,
    lon DOUBLE PRECISION NOT NULL,
    is_main BOOLEAN NOT NULL,
    added_at TIMESTAMPTZ NOT NULL,
PRIMARY KEY (station_id)
);

CREATE TABLE IF NOT EXISTS collapsed_lines (
    station_id TEXT NOT NULL,
    line_ids TEXT[] NOT NULL,
PRIMARY KEY (station_id)
);

CREATE TABLE IF NOT EXISTS line_order (
    station_id TEXT NOT NULL,
    line_ids TEXT[] NOT NULL,
PRIMARY KEY (station_id)
);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &PSQLStorage{db: db}, nil
}

func (s *PSQLStorage) Favorites() ([]FavoriteStation, error) {
	rows, err := s.db.Query(`
SELECT station_id, name, modes, lines, lat, lon, is_main, added_at
FROM favorite
ORDER BY added_at, station_id`)
	if err != nil {
		return nil, fmt.Errorf("querying favorites: %w", err)
	}
	defer rows.Close()

	favorites := []FavoriteStation{}
	for rows.Next() {
		var fav FavoriteStation
		err = rows.Scan(
			&fav.ID, &fav.Name,
			pq.Array(&fav.Modes), pq.Array(&fav.Lines),
			&fav.Lat, &fav.Lon, &fav.IsMain, &fav.AddedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning favorite: %w", err)
		}
		favorites = append(favorites, fav)
	}

	return favorites, rows.Err()
}

func (s *PSQLStorage) AddFavorite(station tfl.Station) (FavoriteStation, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return FavoriteStation{}, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(
		`SELECT COUNT(*) FROM favorite WHERE station_id = $1`, station.ID,
	).Scan(&exists)
	if err != nil {
		return FavoriteStation{}, fmt.Errorf("checking favorite: %w", err)
	}
	if exists > 0 {
		return FavoriteStation{}, ErrAlreadyFavorite
	}

	var count int
	err = tx.QueryRow(`SELECT COUNT(*) FROM favorite`).Scan(&count)
	if err != nil {
		return FavoriteStation{}, fmt.Errorf("counting favorites: %w", err)
	}

	fav := FavoriteStation{
		Station: station,
		IsMain:  count == 0,
		AddedAt: time.Now().UTC(),
	}

	modes := fav.Modes
	if modes == nil {
		modes = []string{}
	}
	lines := fav.Lines
	if lines == nil {
		lines = []string{}
	}

	_, err = tx.Exec(`
INSERT INTO favorite (station_id, name, modes, lines, lat, lon, is_main, added_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		fav.ID, fav.Name, pq.Array(modes), pq.Array(lines),
		fav.Lat, fav.Lon, fav.IsMain, fav.AddedAt,
	)
	if err != nil {
		return FavoriteStation{}, fmt.Errorf("inserting favorite: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return FavoriteStation{}, fmt.Errorf("committing: %w", err)
	}

	return fav, nil
}

func (s *PSQLStorage) RemoveFavorite(stationID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var wasMain bool
	err = tx.QueryRow(
		`SELECT is_main FROM favorite WHERE station_id = $1`, stationID,
	).Scan(&wasMain)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking favorite: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM favorite WHERE station_id = $1`, stationID)
	if err != nil {
		return fmt.Errorf("deleting favorite: %w", err)
	}

	if wasMain {
		_, err = tx.Exec(`
UPDATE favorite SET is_main = TRUE
WHERE station_id = (
    SELECT station_id FROM favorite ORDER BY added_at, station_id LIMIT 1
)`)
		if err != nil {
			return fmt.Errorf("promoting main station: %w", err)
		}
	}

	return tx.Commit()
}

func (s *PSQLStorage) SetMainStation(stationID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(
		`SELECT COUNT(*) FROM favorite WHERE station_id = $1`, stationID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking favorite: %w", err)
	}
	if exists == 0 {
		return ErrNotFavorite
	}

	_, err = tx.Exec(
		`UPDATE favorite SET is_main = (station_id = $1)`, stationID,
	)
	if err != nil {
		return fmt.Errorf("updating main station: %w", err)
	}

	return tx.Commit()
}

func (s *PSQLStorage) MainStation() (*FavoriteStation, error) {
	var fav FavoriteStation
	err := s.db.QueryRow(`
SELECT station_id, name, modes, lines, lat, lon, is_main, added_at
FROM favorite
WHERE is_main`).Scan(
		&fav.ID, &fav.Name,
		pq.Array(&fav.Modes), pq.Array(&fav.Lines),
		&fav.Lat, &fav.Lon, &fav.IsMain, &fav.AddedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying main station: %w", err)
	}

	return &fav, nil
}

func (s *PSQLStorage) CollapsedLines(stationID string) ([]string, error) {
	return s.lineIDs("collapsed_lines", stationID)
}

func (s *PSQLStorage) SetCollapsedLines(stationID string, lineIDs []string) error {
	return s.setLineIDs("collapsed_lines", stationID, lineIDs)
}

func (s *PSQLStorage) LineOrder(stationID string) ([]string, error) {
	return s.lineIDs("line_order", stationID)
}

func (s *PSQLStorage) SetLineOrder(stationID string, lineIDs []string) error {
	return s.setLineIDs("line_order", stationID, lineIDs)
}

func (s *PSQLStorage) lineIDs(table string, stationID string) ([]string, error) {
	var lineIDs []string
	err := s.db.QueryRow(
		`SELECT line_ids FROM `+table+` WHERE station_id = $1`, stationID,
	).Scan(pq.Array(&lineIDs))
	if err == sql.ErrNoRows {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	return lineIDs, nil
}

func (s *PSQLStorage) setLineIDs(table string, stationID string, lineIDs []string) error {
	if lineIDs == nil {
		lineIDs = []string{}
	}
	_, err := s.db.Exec(`
INSERT INTO `+table+` (station_id, line_ids) VALUES ($1, $2)
ON CONFLICT (station_id) DO UPDATE SET line_ids = excluded.line_ids`,
		stationID, pq.Array(lineIDs),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", table, err)
	}
	return nil
}

func (s *PSQLStorage) Close() error {
	return s.db.Close()
}
