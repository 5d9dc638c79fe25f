package persistence

import (
	"context"
	"errors"

	"github.com/nurak20/smart-pos-web/internal/domain"
)

// Slot is the durable client-side snapshot of the cart. It survives terminal
// restarts and expires on its own after SnapshotTTL.
type Slot interface {
	Save(ctx context.Context, lines []domain.CartLine) error
	Load(ctx context.Context) ([]domain.CartLine, error)
	Clear(ctx context.Context) error
}

// ErrNoSnapshot is returned by Load when no snapshot exists (never written,
// expired, or cleared).
var ErrNoSnapshot = errors.New("no cart snapshot")

// ErrCorruptSnapshot is returned by Load when the stored value cannot be
// decoded. The implementation must have deleted the slot before returning it,
// so the broken value is never surfaced again.
var ErrCorruptSnapshot = errors.New("corrupt cart snapshot")
