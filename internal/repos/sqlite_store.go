package repos

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"tradepost/internal/domain"
)

// SqliteStore keeps the snapshot in a sqlite database instead of flat files.
// Saves rewrite both tables inside one transaction.
type SqliteStore struct{ db *sqlx.DB }

func OpenDB(dsn string) (*SqliteStore, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &SqliteStore{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Users
CREATE TABLE IF NOT EXISTS users(
  name TEXT PRIMARY KEY
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_name_nocase ON users(LOWER(name));

-- Listings
CREATE TABLE IF NOT EXISTS listings(
  id INTEGER PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  category TEXT NOT NULL,
  owner TEXT NOT NULL,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_listings_category ON listings(category);
CREATE INDEX IF NOT EXISTS idx_listings_owner    ON listings(LOWER(owner));
`
	_, err := db.Exec(schema)
	return err
}

type listingRow struct {
	ID          int     `db:"id"`
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Category    string  `db:"category"`
	Owner       string  `db:"owner"`
	CreatedAt   string  `db:"created_at"`
}

func (s *SqliteStore) Load() (*Snapshot, error) {
	snap := &Snapshot{}

	if err := s.db.Select(&snap.Usernames, `SELECT name FROM users ORDER BY rowid`); err != nil {
		return nil, err
	}

	var rows []listingRow
	if err := s.db.Select(&rows, `
		SELECT id, title, COALESCE(description,'') AS description, price, category, owner, created_at
		FROM listings
		ORDER BY id
	`); err != nil {
		return nil, err
	}
	for _, r := range rows {
		createdAt, err := time.ParseInLocation(domain.TimeLayout, r.CreatedAt, time.Local)
		if err != nil {
			return nil, fmt.Errorf("listing %d created_at %q: %w", r.ID, r.CreatedAt, err)
		}
		snap.Listings = append(snap.Listings, domain.Listing{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Price:       r.Price,
			Category:    r.Category,
			Owner:       r.Owner,
			CreatedAt:   createdAt,
		})
	}
	return snap, nil
}

func (s *SqliteStore) Save(snap *Snapshot) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM users`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM listings`); err != nil {
		return err
	}

	for _, name := range snap.Usernames {
		if _, err := tx.Exec(`INSERT INTO users(name) VALUES(?)`, name); err != nil {
			return err
		}
	}
	for _, l := range snap.Listings {
		if _, err := tx.Exec(`
			INSERT INTO listings(id,title,description,price,category,owner,created_at)
			VALUES(?,?,?,?,?,?,?)
		`, l.ID, l.Title, l.Description, l.Price, l.Category, l.Owner,
			l.CreatedAt.Format(domain.TimeLayout)); err != nil {
			return err
		}
	}
	return tx.Commit()
}
