// Package stations maintains the local station directory: a SQLite database
// with full-text name search plus an in-memory spatial index for
// nearest-station lookups. The directory is seeded from the upstream places
// endpoint and survives restarts.
package stations

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tidwall/rtree"
)

// Station is one row of the directory.
type Station struct {
	ID    string
	Name  string
	Label string
	Lat   float64
	Lon   float64
}

// Store wraps the SQLite database and the spatial index. Safe for concurrent
// use.
type Store struct {
	db *sql.DB

	mu   sync.RWMutex
	tree *rtree.RTree
}

const schema = `
CREATE TABLE IF NOT EXISTS stations (
    id    TEXT PRIMARY KEY,
    name  TEXT NOT NULL,
    label TEXT NOT NULL DEFAULT '',
    lat   REAL NOT NULL,
    lon   REAL NOT NULL
);

CREATE VIRTUAL TABLE IF NOT EXISTS stations_fts USING fts5(
    name,
    label,
    content='stations',
    content_rowid='rowid'
);

CREATE TRIGGER IF NOT EXISTS stations_ai AFTER INSERT ON stations BEGIN
    INSERT INTO stations_fts(rowid, name, label) VALUES (new.rowid, new.name, new.label);
END;

CREATE TRIGGER IF NOT EXISTS stations_ad AFTER DELETE ON stations BEGIN
    INSERT INTO stations_fts(stations_fts, rowid, name, label) VALUES ('delete', old.rowid, old.name, old.label);
END;

CREATE TRIGGER IF NOT EXISTS stations_au AFTER UPDATE ON stations BEGIN
    INSERT INTO stations_fts(stations_fts, rowid, name, label) VALUES ('delete', old.rowid, old.name, old.label);
    INSERT INTO stations_fts(rowid, name, label) VALUES (new.rowid, new.name, new.label);
END;
`

// Open opens (creating if needed) the station database at path and loads the
// spatial index. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening stations database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating stations schema: %w", err)
	}

	s := &Store{db: db, tree: &rtree.RTree{}}
	if err := s.rebuildSpatialIndex(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// DB exposes the underlying pool for metrics collection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert inserts or replaces stations and refreshes the spatial index.
func (s *Store) Upsert(ctx context.Context, items []Station) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning stations upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO stations (id, name, label, lat, lon) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, label = excluded.label, lat = excluded.lat, lon = excluded.lon
	`)
	if err != nil {
		return fmt.Errorf("preparing stations upsert: %w", err)
	}
	defer stmt.Close()

	for _, st := range items {
		if st.ID == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, st.ID, st.Name, st.Label, st.Lat, st.Lon); err != nil {
			return fmt.Errorf("upserting station %s: %w", st.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing stations upsert: %w", err)
	}

	return s.rebuildSpatialIndex(ctx)
}

// Count returns the number of stations in the directory.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting stations: %w", err)
	}
	return n, nil
}

const searchStationsByName = `
SELECT s.id, s.name, s.label, s.lat, s.lon
FROM stations s
JOIN stations_fts fts ON s.rowid = fts.rowid
WHERE stations_fts MATCH ?
ORDER BY bm25(stations_fts), s.name
LIMIT ?
`

// Search runs a prefix full-text search over station names and labels.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Station, error) {
	match := ftsPrefixQuery(query)
	if match == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, searchStationsByName, match, limit)
	if err != nil {
		return nil, fmt.Errorf("searching stations for %q: %w", query, err)
	}
	defer rows.Close()

	var items []Station
	for rows.Next() {
		var st Station
		if err := rows.Scan(&st.ID, &st.Name, &st.Label, &st.Lat, &st.Lon); err != nil {
			return nil, err
		}
		items = append(items, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ftsPrefixQuery turns free text into an FTS5 match expression: each token is
// quoted (neutralizing FTS operators in user input) and prefix-matched.
func ftsPrefixQuery(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, `"`, "")
		if f == "" {
			continue
		}
		parts = append(parts, `"`+f+`"*`)
	}
	return strings.Join(parts, " ")
}
