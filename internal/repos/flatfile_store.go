package repos

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"tradepost/internal/domain"
)

const (
	usersFile    = "users.tsv"
	listingsFile = "listings.tsv"
)

// FlatFileStore keeps the ledger in two tab-separated files under dir: one
// row per user (username only) and one row per listing. csv quoting keeps
// tabs and newlines inside titles/descriptions intact.
type FlatFileStore struct{ dir string }

func NewFlatFileStore(dir string) (*FlatFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FlatFileStore{dir: dir}, nil
}

func (s *FlatFileStore) Load() (*Snapshot, error) {
	snap := &Snapshot{}

	userRows, err := readRows(filepath.Join(s.dir, usersFile))
	if err != nil {
		return nil, err
	}
	for _, row := range userRows {
		if len(row) < 1 || row[0] == "" {
			continue
		}
		snap.Usernames = append(snap.Usernames, row[0])
	}

	listingRows, err := readRows(filepath.Join(s.dir, listingsFile))
	if err != nil {
		return nil, err
	}
	for _, row := range listingRows {
		l, err := parseListingRow(row)
		if err != nil {
			return nil, err
		}
		snap.Listings = append(snap.Listings, l)
	}
	return snap, nil
}

func (s *FlatFileStore) Save(snap *Snapshot) error {
	userRows := make([][]string, 0, len(snap.Usernames))
	for _, name := range snap.Usernames {
		userRows = append(userRows, []string{name})
	}
	if err := writeRows(filepath.Join(s.dir, usersFile), userRows); err != nil {
		return err
	}

	listingRows := make([][]string, 0, len(snap.Listings))
	for _, l := range snap.Listings {
		listingRows = append(listingRows, []string{
			strconv.Itoa(l.ID),
			l.Title,
			l.Description,
			strconv.FormatFloat(l.Price, 'f', -1, 64),
			l.Category,
			l.Owner,
			l.CreatedAt.Format(domain.TimeLayout),
		})
	}
	return writeRows(filepath.Join(s.dir, listingsFile), listingRows)
}

func parseListingRow(row []string) (domain.Listing, error) {
	if len(row) != 7 {
		return domain.Listing{}, fmt.Errorf("listing row has %d fields, want 7", len(row))
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return domain.Listing{}, fmt.Errorf("listing id %q: %w", row[0], err)
	}
	price, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("listing %d price %q: %w", id, row[3], err)
	}
	createdAt, err := time.ParseInLocation(domain.TimeLayout, row[6], time.Local)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("listing %d created_at %q: %w", id, row[6], err)
	}
	return domain.Listing{
		ID:          id,
		Title:       row[1],
		Description: row[2],
		Price:       price,
		Category:    row[4],
		Owner:       row[5],
		CreatedAt:   createdAt,
	}, nil
}

// readRows returns no rows for a missing file; an empty ledger is valid.
func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func writeRows(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.Comma = '\t'
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
