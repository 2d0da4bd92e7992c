package testutil

import (
	"testing"

	"github.com/promanage/promanage/internal/store"
)

// NewTestStore creates a store loaded with the built-in seed dataset and
// nobody signed in.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(store.DefaultSeed(), true)
}

// NewTestStoreAs creates a seeded store with the given seed user signed in.
func NewTestStoreAs(t *testing.T, username string) *store.Store {
	t.Helper()

	s := store.New(store.DefaultSeed(), true)
	if _, ok := s.Login(username); !ok {
		t.Fatalf("signing in as %q: no such seed user", username)
	}
	return s
}
