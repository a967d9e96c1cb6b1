package tests

import (
	"context"
	"testing"

	"restaurant-hub/restaurant-svc/internal/domain"
	"restaurant-hub/restaurant-svc/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	customer = &domain.User{ID: 5, Username: "alice", Email: "alice@example.com", FirstName: "Alice", LastName: "Smith"}
	staff    = &domain.User{ID: 9, Username: "bob", Email: "bob@example.com", Groups: []string{domain.StaffGroup}}
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func menuItem(id int, name, p string) *domain.MenuItem {
	return &domain.MenuItem{ID: id, CategoryID: 1, Name: name, Price: price(p), IsAvailable: true}
}

// newSession stores a session holding the given items in the memory store.
func newSession(t *testing.T, store *storage.MemorySessionStore, items ...*domain.MenuItem) *domain.Session {
	t.Helper()
	sess := store.New()
	for _, item := range items {
		sess.Draft.Add(*item)
	}
	require.NoError(t, store.Save(context.Background(), sess))
	return sess
}
