package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/nurak20/smart-pos-web/internal/domain"
	"github.com/nurak20/smart-pos-web/internal/persistence"
)

const persistTimeout = time.Second

// Store holds the in-progress sell list for one terminal. Mutations are
// written through to the durable slot immediately: a non-empty cart
// overwrites the snapshot, an empty cart deletes it.
//
// Insertion order of lines is the display order and is preserved.
type Store struct {
	mu    sync.Mutex
	lines []domain.CartLine
	slot  persistence.Slot
}

// NewStore restores the cart from the durable slot. An absent or corrupt
// snapshot falls back to an empty cart; a corrupt slot has already been
// cleared by the adapter, so the failure is logged and not propagated.
func NewStore(ctx context.Context, slot persistence.Slot) *Store {
	s := &Store{slot: slot}

	lines, err := slot.Load(ctx)
	switch {
	case err == nil:
		s.lines = lines
	case errors.Is(err, persistence.ErrNoSnapshot):
		// first session, nothing to restore
	default:
		log.Printf("failed to restore cart snapshot, starting empty: %v", err)
	}

	return s
}

// Add appends a quantity-1 line for the item, or increments the existing
// line's quantity if the product is already in the cart. Out-of-stock items
// are ignored; the check is advisory only, the server re-validates on
// submission.
func (s *Store) Add(ctx context.Context, item domain.CatalogItem) {
	if !item.InStock() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == item.ProductID {
			s.lines[i].Quantity++
			s.persist(ctx)
			return
		}
	}

	s.lines = append(s.lines, domain.NewLine(item))
	s.persist(ctx)
}

// SetQuantity replaces a line's quantity. A quantity of zero or less removes
// the line entirely; a line with quantity <= 0 never exists in the cart.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.Remove(ctx, productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
}

// Remove deletes the matching line; no-op if the product is not in the cart.
func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// Clear empties the cart and deletes the durable snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return
	}
	s.lines = nil
	s.persist(ctx)
}

// Lines returns a copy of the current lines in display order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Totals recomputes item count and amount from the current lines. The
// result is always derived, never cached, so it cannot drift.
func (s *Store) Totals() domain.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()

	var t domain.CartTotals
	for _, line := range s.lines {
		t.TotalItems += line.Quantity
		t.TotalAmount += line.Subtotal()
	}
	return t
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// persist writes the current state through to the durable slot. Callers must
// hold s.mu. Persistence failures are logged, never propagated: the in-memory
// cart stays authoritative for the session.
func (s *Store) persist(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()

	var err error
	if len(s.lines) == 0 {
		err = s.slot.Clear(ctx)
	} else {
		err = s.slot.Save(ctx, s.lines)
	}
	if err != nil {
		log.Printf("cart snapshot write failed: %v", err)
	}
}
