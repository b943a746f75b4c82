package repos_test

import (
	"testing"
	"time"

	"tradepost/internal/domain"
	"tradepost/internal/repos"
)

func flatstore(t *testing.T) *repos.FlatFileStore {
	t.Helper()
	s, err := repos.NewFlatFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func sampleSnapshot() *repos.Snapshot {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local)
	return &repos.Snapshot{
		Usernames: []string{"Alice", "bob"},
		Listings: []domain.Listing{
			{ID: 100001, Title: "Tab\there", Description: "line one\nline two", Price: 12.5, Category: "odd text", Owner: "Alice", CreatedAt: created},
			{ID: 100002, Title: "Chair", Description: "Oak chair", Price: 25, Category: "home", Owner: "bob", CreatedAt: created.Add(time.Second)},
		},
	}
}

func assertRoundTrip(t *testing.T, store repos.SnapshotStore) {
	t.Helper()
	want := sampleSnapshot()
	if err := store.Save(want); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Usernames) != 2 || got.Usernames[0] != "Alice" || got.Usernames[1] != "bob" {
		t.Fatalf("usernames: %v", got.Usernames)
	}
	if len(got.Listings) != 2 {
		t.Fatalf("want 2 listings, got %d", len(got.Listings))
	}
	for i := range want.Listings {
		w, g := want.Listings[i], got.Listings[i]
		if g.ID != w.ID || g.Title != w.Title || g.Description != w.Description ||
			g.Price != w.Price || g.Category != w.Category || g.Owner != w.Owner ||
			!g.CreatedAt.Equal(w.CreatedAt) {
			t.Fatalf("listing %d: want %+v, got %+v", i, w, g)
		}
	}
}

func TestFlatFileStore_RoundTrip(t *testing.T) {
	assertRoundTrip(t, flatstore(t))
}

func TestFlatFileStore_EmptyDirLoadsEmptyLedger(t *testing.T) {
	snap, err := flatstore(t).Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Usernames) != 0 || len(snap.Listings) != 0 {
		t.Fatalf("want empty snapshot, got %+v", snap)
	}
}

func TestFlatFileStore_SaveOverwrites(t *testing.T) {
	store := flatstore(t)
	if err := store.Save(sampleSnapshot()); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(&repos.Snapshot{Usernames: []string{"carol"}}); err != nil {
		t.Fatal(err)
	}

	snap, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Usernames) != 1 || snap.Usernames[0] != "carol" || len(snap.Listings) != 0 {
		t.Fatalf("stale rows survived rewrite: %+v", snap)
	}
}
