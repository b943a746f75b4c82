package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tradepost/internal/domain"
	applog "tradepost/internal/log"
	"tradepost/internal/repos"
)

var (
	ErrUserExists       = errors.New("user already existing")
	ErrUnknownUser      = errors.New("unknown user")
	ErrListingNotFound  = errors.New("listing does not exist")
	ErrNotOwner         = errors.New("listing owner mismatch")
	ErrNotFound         = errors.New("not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNoCategories     = errors.New("no categories found")
)

// firstListingID is the base of the monotonic id sequence. Ids are never
// reused, even after deletion.
const firstListingID = 100001

type MarketplaceService struct {
	Store repos.SnapshotStore

	// Now stamps new listings; tests swap it for a fixed clock.
	Now func() time.Time

	users      map[string]*domain.User // canonical username -> user
	userOrder  []string                // canonical usernames in registration order
	listings   map[int]*domain.Listing // listing id -> listing
	categories map[string][]int        // category -> live listing ids
	nextID     int
}

func NewMarketplaceService(store repos.SnapshotStore) *MarketplaceService {
	return &MarketplaceService{
		Store:      store,
		Now:        time.Now,
		users:      map[string]*domain.User{},
		listings:   map[int]*domain.Listing{},
		categories: map[string][]int{},
		nextID:     firstListingID,
	}
}

// Load replaces in-memory state with the persisted snapshot and advances the
// id counter past every loaded id so reloading never reassigns one.
func (s *MarketplaceService) Load() error {
	snap, err := s.Store.Load()
	if err != nil {
		return err
	}

	s.users = map[string]*domain.User{}
	s.userOrder = nil
	s.listings = map[int]*domain.Listing{}
	s.categories = map[string][]int{}
	s.nextID = firstListingID

	for _, name := range snap.Usernames {
		key := domain.Canonical(name)
		if _, ok := s.users[key]; ok {
			continue
		}
		s.users[key] = domain.NewUser(name)
		s.userOrder = append(s.userOrder, key)
	}

	for i := range snap.Listings {
		l := snap.Listings[i]
		owner, ok := s.users[domain.Canonical(l.Owner)]
		if !ok {
			return fmt.Errorf("listing %d owner %q is not a registered user", l.ID, l.Owner)
		}
		s.listings[l.ID] = &l
		owner.Listings = append(owner.Listings, l.ID)
		s.categories[l.Category] = append(s.categories[l.Category], l.ID)
		if l.ID >= s.nextID {
			s.nextID = l.ID + 1
		}
	}
	return nil
}

func (s *MarketplaceService) RegisterUser(username string) error {
	key := domain.Canonical(username)
	if _, ok := s.users[key]; ok {
		return ErrUserExists
	}
	s.users[key] = domain.NewUser(username)
	s.userOrder = append(s.userOrder, key)
	s.persist()
	return nil
}

func (s *MarketplaceService) CreateListing(username, title, description string, price float64, category string) (int, error) {
	user, ok := s.users[domain.Canonical(username)]
	if !ok {
		return 0, ErrUnknownUser
	}

	l := &domain.Listing{
		ID:          s.nextID,
		Title:       title,
		Description: description,
		Price:       price,
		Category:    category,
		Owner:       username,
		CreatedAt:   s.Now().Truncate(time.Second),
	}
	s.nextID++

	s.listings[l.ID] = l
	user.Listings = append(user.Listings, l.ID)
	s.categories[category] = append(s.categories[category], l.ID)
	s.persist()
	return l.ID, nil
}

func (s *MarketplaceService) DeleteListing(username string, id int) error {
	l, ok := s.listings[id]
	if !ok {
		return ErrListingNotFound
	}
	if domain.Canonical(l.Owner) != domain.Canonical(username) {
		return ErrNotOwner
	}

	s.removeFromCategory(l.Category, id)
	s.users[domain.Canonical(l.Owner)].RemoveListing(id)
	delete(s.listings, id)
	s.persist()
	return nil
}

func (s *MarketplaceService) GetListing(username string, id int) (string, error) {
	if _, ok := s.users[domain.Canonical(username)]; !ok {
		return "", ErrUnknownUser
	}
	l, ok := s.listings[id]
	if !ok {
		return "", ErrNotFound
	}
	return l.Format(), nil
}

// GetCategory returns the category's listings newest first, one formatted
// line each. Listings created within the same second order by id, newest
// first, so output stays deterministic.
func (s *MarketplaceService) GetCategory(username, category string) (string, error) {
	if _, ok := s.users[domain.Canonical(username)]; !ok {
		return "", ErrUnknownUser
	}
	ids := s.categories[category]
	if len(ids) == 0 {
		return "", ErrCategoryNotFound
	}

	sorted := make([]*domain.Listing, 0, len(ids))
	for _, id := range ids {
		sorted = append(sorted, s.listings[id])
	}
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})

	lines := make([]string, len(sorted))
	for i, l := range sorted {
		lines[i] = l.Format()
	}
	return strings.Join(lines, "\n"), nil
}

// GetTopCategory returns every category holding the maximum number of
// listings, lexicographically sorted and comma-space joined.
func (s *MarketplaceService) GetTopCategory(username string) (string, error) {
	if _, ok := s.users[domain.Canonical(username)]; !ok {
		return "", ErrUnknownUser
	}
	if len(s.categories) == 0 {
		return "", ErrNoCategories
	}

	max := 0
	for _, ids := range s.categories {
		if len(ids) > max {
			max = len(ids)
		}
	}
	var top []string
	for cat, ids := range s.categories {
		if len(ids) == max {
			top = append(top, cat)
		}
	}
	sort.Strings(top)
	return strings.Join(top, ", "), nil
}

func (s *MarketplaceService) removeFromCategory(category string, id int) {
	ids := s.categories[category]
	for i, lid := range ids {
		if lid == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(s.categories, category)
		return
	}
	s.categories[category] = ids
}

// persist rewrites the full snapshot after a successful mutation. The
// in-memory ledger stays authoritative: a failed save is logged and the next
// successful mutation rewrites everything again.
func (s *MarketplaceService) persist() {
	if s.Store == nil {
		return
	}
	snap := &repos.Snapshot{}
	for _, key := range s.userOrder {
		snap.Usernames = append(snap.Usernames, s.users[key].Name)
	}

	ids := make([]int, 0, len(s.listings))
	for id := range s.listings {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		snap.Listings = append(snap.Listings, *s.listings[id])
	}

	if err := s.Store.Save(snap); err != nil {
		applog.Error("store.save", err, map[string]any{
			"users": len(snap.Usernames), "listings": len(snap.Listings),
		})
	}
}
