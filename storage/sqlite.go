package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"stationly.dev/tfl"
)

type SQLiteConfig struct {
	// Path to the database file. Blank means in-memory.
	Path string
}

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(cfg ...SQLiteConfig) (*SQLiteStorage, error) {
	sourceName := ":memory:"
	if len(cfg) > 0 && cfg[0].Path != "" {
		sourceName = cfg[0].Path
	}

	db, err := sql.Open("sqlite3", sourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS favorite (
    station_id TEXT NOT NULL,
    name TEXT NOT NULL,
    modes TEXT NOT NULL,
    lines TEXT NOT NULL,
    lat REAL NOT NULL,
    lon REAL NOT NULL,
    is_main INTEGER NOT NULL,
    added_at TIMESTAMP NOT NULL,
PRIMARY KEY (station_id)
);

CREATE TABLE IF NOT EXISTS collapsed_lines (
    station_id TEXT NOT NULL,
    line_ids TEXT NOT NULL,
PRIMARY KEY (station_id)
);

CREATE TABLE IF NOT EXISTS line_order (
    station_id TEXT NOT NULL,
    line_ids TEXT NOT NULL,
PRIMARY KEY (station_id)
);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func marshalStrings(strs []string) (string, error) {
	if strs == nil {
		strs = []string{}
	}
	buf, err := json.Marshal(strs)
	if err != nil {
		return "", fmt.Errorf("marshalling: %w", err)
	}
	return string(buf), nil
}

func unmarshalStrings(data string) ([]string, error) {
	var strs []string
	if err := json.Unmarshal([]byte(data), &strs); err != nil {
		return nil, fmt.Errorf("unmarshalling: %w", err)
	}
	return strs, nil
}

func (s *SQLiteStorage) Favorites() ([]FavoriteStation, error) {
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
		var modes, lines string
		err = rows.Scan(
			&fav.ID, &fav.Name, &modes, &lines,
			&fav.Lat, &fav.Lon, &fav.IsMain, &fav.AddedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning favorite: %w", err)
		}
		if fav.Modes, err = unmarshalStrings(modes); err != nil {
			return nil, err
		}
		if fav.Lines, err = unmarshalStrings(lines); err != nil {
			return nil, err
		}
		favorites = append(favorites, fav)
	}

	return favorites, rows.Err()
}

func (s *SQLiteStorage) AddFavorite(station tfl.Station) (FavoriteStation, error) {
	modes, err := marshalStrings(station.Modes)
	if err != nil {
		return FavoriteStation{}, err
	}
	lines, err := marshalStrings(station.Lines)
	if err != nil {
		return FavoriteStation{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return FavoriteStation{}, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(
		`SELECT COUNT(*) FROM favorite WHERE station_id = ?`, station.ID,
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

	_, err = tx.Exec(`
INSERT INTO favorite (station_id, name, modes, lines, lat, lon, is_main, added_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		fav.ID, fav.Name, modes, lines, fav.Lat, fav.Lon, fav.IsMain, fav.AddedAt,
	)
	if err != nil {
		return FavoriteStation{}, fmt.Errorf("inserting favorite: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return FavoriteStation{}, fmt.Errorf("committing: %w", err)
	}

	return fav, nil
}

func (s *SQLiteStorage) RemoveFavorite(stationID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var wasMain bool
	err = tx.QueryRow(
		`SELECT is_main FROM favorite WHERE station_id = ?`, stationID,
	).Scan(&wasMain)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking favorite: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM favorite WHERE station_id = ?`, stationID)
	if err != nil {
		return fmt.Errorf("deleting favorite: %w", err)
	}

	if wasMain {
		_, err = tx.Exec(`
UPDATE favorite SET is_main = 1
WHERE station_id = (
    SELECT station_id FROM favorite ORDER BY added_at, station_id LIMIT 1
)`)
		if err != nil {
			return fmt.Errorf("promoting main station: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStorage) SetMainStation(stationID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(
		`SELECT COUNT(*) FROM favorite WHERE station_id = ?`, stationID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking favorite: %w", err)
	}
	if exists == 0 {
		return ErrNotFavorite
	}

	_, err = tx.Exec(
		`UPDATE favorite SET is_main = (station_id = ?)`, stationID,
	)
	if err != nil {
		return fmt.Errorf("updating main station: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteStorage) MainStation() (*FavoriteStation, error) {
	var fav FavoriteStation
	var modes, lines string
	err := s.db.QueryRow(`
SELECT station_id, name, modes, lines, lat, lon, is_main, added_at
FROM favorite
WHERE is_main = 1`).Scan(
		&fav.ID, &fav.Name, &modes, &lines,
		&fav.Lat, &fav.Lon, &fav.IsMain, &fav.AddedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying main station: %w", err)
	}

	if fav.Modes, err = unmarshalStrings(modes); err != nil {
		return nil, err
	}
	if fav.Lines, err = unmarshalStrings(lines); err != nil {
		return nil, err
	}

	return &fav, nil
}

func (s *SQLiteStorage) CollapsedLines(stationID string) ([]string, error) {
	return s.lineIDs("collapsed_lines", stationID)
}

func (s *SQLiteStorage) SetCollapsedLines(stationID string, lineIDs []string) error {
	return s.setLineIDs("collapsed_lines", stationID, lineIDs)
}

func (s *SQLiteStorage) LineOrder(stationID string) ([]string, error) {
	return s.lineIDs("line_order", stationID)
}

func (s *SQLiteStorage) SetLineOrder(stationID string, lineIDs []string) error {
	return s.setLineIDs("line_order", stationID, lineIDs)
}

func (s *SQLiteStorage) lineIDs(table string, stationID string) ([]string, error) {
	var data string
	err := s.db.QueryRow(
		`SELECT line_ids FROM `+table+` WHERE station_id = ?`, stationID,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	return unmarshalStrings(data)
}

func (s *SQLiteStorage) setLineIDs(table string, stationID string, lineIDs []string) error {
	data, err := marshalStrings(lineIDs)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
INSERT INTO `+table+` (station_id, line_ids) VALUES (?, ?)
ON CONFLICT (station_id) DO UPDATE SET line_ids = excluded.line_ids`,
		stationID, data,
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", table, err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
