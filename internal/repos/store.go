package repos

import "tradepost/internal/domain"

// Snapshot is the full persisted state of the ledger: every registered
// username (original casing) and every live listing. Ownership and category
// membership are derived from the listings on load.
type Snapshot struct {
	Usernames []string
	Listings  []domain.Listing
}

// SnapshotStore loads state once at startup and rewrites it in full after
// each successful mutation.
type SnapshotStore interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
}
