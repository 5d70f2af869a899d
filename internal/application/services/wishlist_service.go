// Package services provides application-level orchestration services
package services

import (
	"sync"

	"github.com/BiblioNova/bookhaven-go/internal/domain/selection"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/logging"
)

// WishlistService tracks each user's wishlist membership for the lifetime of
// their session. Nothing here is persisted; the set is dropped on logout.
type WishlistService struct {
	mu     sync.Mutex
	sets   map[string]selection.Set
	logger *logging.ChanneledLogger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(logger *logging.ChanneledLogger) *WishlistService {
	return &WishlistService{
		sets:   make(map[string]selection.Set),
		logger: logger,
	}
}

// Toggle flips membership of the id in the user's wishlist and reports
// whether the id is a member afterwards.
func (w *WishlistService) Toggle(username string, id int) (selection.Set, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	current, ok := w.sets[username]
	if !ok {
		current = selection.NewSet()
	}

	next := current.Toggle(id)
	w.sets[username] = next

	w.logger.Catalog().Debug("Wishlist toggled", "username", username, "id", id, "member", next.Contains(id), "size", next.Len())
	return next, next.Contains(id)
}

// Get returns the user's current wishlist.
func (w *WishlistService) Get(username string) selection.Set {
	w.mu.Lock()
	defer w.mu.Unlock()

	if set, ok := w.sets[username]; ok {
		return set
	}
	return selection.NewSet()
}

// Clear drops the user's wishlist, ending its session-scoped lifetime.
func (w *WishlistService) Clear(username string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.sets, username)
}
