package checkout

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/nurak20/smart-pos-web/internal/cart"
	"github.com/nurak20/smart-pos-web/internal/domain"
	"github.com/nurak20/smart-pos-web/internal/events"
)

// State is the checkout dialog state. Closed is both the initial state and
// the state reached after every successful or cancelled flow.
type State int

const (
	StateClosed State = iota
	StateSelecting
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateSelecting:
		return "selecting"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Submitter posts the order to the remote invoice API.
type Submitter interface {
	SubmitInvoice(ctx context.Context, sub domain.OrderSubmission) (*domain.InvoiceResult, error)
}

// Refresher re-fetches the catalog after a successful checkout; the server
// decrements stock, so cached quantities are stale once an order lands.
type Refresher interface {
	Refresh(ctx context.Context)
}

// Orchestrator drives the checkout flow over the cart. The Submitting state
// doubles as the re-entrancy guard: a second Confirm while one is in flight
// is rejected instead of producing a duplicate order.
type Orchestrator struct {
	mu        sync.Mutex
	state     State
	selection []domain.PaymentMethod

	cart      *cart.Store
	submitter Submitter
	catalog   Refresher
	publisher message.Publisher
	now       func() time.Time
}

func NewOrchestrator(cartStore *cart.Store, submitter Submitter, catalog Refresher, publisher message.Publisher) *Orchestrator {
	return &Orchestrator{
		cart:      cartStore,
		submitter: submitter,
		catalog:   catalog,
		publisher: publisher,
		now:       time.Now,
	}
}

// Open moves Closed -> Selecting. The cart must be non-empty.
func (o *Orchestrator) Open() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case StateSubmitting:
		return ErrSubmitting
	case StateSelecting:
		return nil
	}

	if o.cart.IsEmpty() {
		return ErrEmptyCart
	}
	o.state = StateSelecting
	return nil
}

// TogglePayment adds the method to the selection, or removes it if already
// selected. Only valid while the dialog is open.
func (o *Orchestrator) TogglePayment(method domain.PaymentMethod) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateSelecting {
		return ErrNotOpen
	}

	for i, m := range o.selection {
		if m == method {
			o.selection = append(o.selection[:i], o.selection[i+1:]...)
			return nil
		}
	}
	o.selection = append(o.selection, method)
	return nil
}

// Cancel closes the dialog and discards the payment selection. The cart is
// untouched; there is nothing in flight to roll back.
func (o *Orchestrator) Cancel() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateSubmitting {
		return ErrSubmitting
	}
	o.state = StateClosed
	o.selection = nil
	return nil
}

// State returns the current dialog state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Selection returns a copy of the selected payment methods.
func (o *Orchestrator) Selection() []domain.PaymentMethod {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]domain.PaymentMethod, len(o.selection))
	copy(out, o.selection)
	return out
}

// Confirm submits the cart as an order.
//
// On success the cart and selection are cleared, the catalog is refreshed,
// an order-placed event is published for post-commit subscribers, and the
// dialog closes. On failure the cart and selection are preserved and the
// dialog returns to Selecting so the cashier can retry without re-entering
// anything; the cart represents unbilled work until the server confirms it.
func (o *Orchestrator) Confirm(ctx context.Context) (*domain.InvoiceResult, error) {
	o.mu.Lock()
	switch o.state {
	case StateSubmitting:
		o.mu.Unlock()
		return nil, ErrSubmitting
	case StateClosed:
		o.mu.Unlock()
		return nil, ErrNotOpen
	}
	if len(o.selection) == 0 {
		o.mu.Unlock()
		return nil, ErrNoPaymentMethod
	}

	lines := o.cart.Lines()
	if len(lines) == 0 {
		o.mu.Unlock()
		return nil, ErrEmptyCart
	}

	submission := BuildSubmission(lines, o.selection, o.now())
	o.state = StateSubmitting
	o.mu.Unlock()

	invoice, err := o.submitter.SubmitInvoice(ctx, submission)
	if err != nil {
		o.mu.Lock()
		o.state = StateSelecting
		o.mu.Unlock()
		return nil, &SubmissionError{Err: err}
	}

	o.cart.Clear(ctx)

	o.mu.Lock()
	o.selection = nil
	o.state = StateClosed
	o.mu.Unlock()

	// Post-commit side effects: both are best-effort and cannot undo the
	// order that already landed.
	if err := events.PublishOrderPlaced(o.publisher, *invoice); err != nil {
		log.Printf("failed to publish order placed event: %v", err)
	}
	o.catalog.Refresh(ctx)

	return invoice, nil
}

// SubmissionError wraps any failure of the order submission call. The cart
// is never cleared on this path.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("order submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
