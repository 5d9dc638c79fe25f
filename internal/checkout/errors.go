package checkout

import "errors"

var (
	// ErrEmptyCart rejects opening or confirming checkout with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNoPaymentMethod rejects a confirm with nothing selected.
	ErrNoPaymentMethod = errors.New("no payment method selected")

	// ErrNotOpen rejects operations that require the dialog to be open.
	ErrNotOpen = errors.New("checkout is not open")

	// ErrSubmitting rejects a second confirm while one is already in flight.
	ErrSubmitting = errors.New("order submission already in progress")
)
