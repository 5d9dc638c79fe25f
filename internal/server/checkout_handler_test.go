package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurak20/smart-pos-web/internal/cart"
	"github.com/nurak20/smart-pos-web/internal/catalog"
	"github.com/nurak20/smart-pos-web/internal/checkout"
	"github.com/nurak20/smart-pos-web/internal/domain"
)

type stubSubmitter struct {
	err error
}

func (s stubSubmitter) SubmitInvoice(_ context.Context, sub domain.OrderSubmission) (*domain.InvoiceResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.InvoiceResult{
		OrderInfo: domain.InvoiceOrder{OrderID: "ord-9", TotalAmountUSD: sub.Order.TotalAmountUSD},
	}, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, ...*message.Message) error { return nil }
func (nopPublisher) Close() error                              { return nil }

func newCheckoutFixture(t *testing.T, submitErr error) (*CheckoutHandler, *cart.Store) {
	t.Helper()

	store := cart.NewStore(context.Background(), nullSlot{})
	cache := catalog.NewCache(staticFetcher{})
	orch := checkout.NewOrchestrator(store, stubSubmitter{err: submitErr}, cache, nopPublisher{})
	return NewCheckoutHandler(orch), store
}

func fillCart(t *testing.T, store *cart.Store) {
	t.Helper()
	store.Add(context.Background(), domain.CatalogItem{
		ProductID: "P1", Code: "COF-01", ProductName: "Coffee", SellingPrice: 10.00, Stock: 5,
	})
}

func TestCheckoutHandler_OpenEmptyCart(t *testing.T) {
	handler, _ := newCheckoutFixture(t, nil)

	rec := httptest.NewRecorder()
	handler.Open(rec, httptest.NewRequest("POST", "/", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "empty_cart", resp.Code)
}

func TestCheckoutHandler_FullFlow(t *testing.T) {
	handler, store := newCheckoutFixture(t, nil)
	fillCart(t, store)

	rec := httptest.NewRecorder()
	handler.Open(rec, httptest.NewRequest("POST", "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.TogglePayment(rec, httptest.NewRequest("PUT", "/", strings.NewReader(`{"method": "cash"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var state CheckoutStateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	assert.Equal(t, "selecting", state.State)
	assert.Equal(t, []domain.PaymentMethod{domain.PaymentCash}, state.Selection)

	rec = httptest.NewRecorder()
	handler.Confirm(rec, httptest.NewRequest("POST", "/", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var invoice domain.InvoiceResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&invoice))
	assert.Equal(t, "ord-9", invoice.OrderInfo.OrderID)
	assert.True(t, store.IsEmpty())
}

func TestCheckoutHandler_ConfirmWithoutPayment(t *testing.T) {
	handler, store := newCheckoutFixture(t, nil)
	fillCart(t, store)

	rec := httptest.NewRecorder()
	handler.Open(rec, httptest.NewRequest("POST", "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.Confirm(rec, httptest.NewRequest("POST", "/", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "no_payment_method", resp.Code)
}

func TestCheckoutHandler_InvalidPaymentMethod(t *testing.T) {
	handler, store := newCheckoutFixture(t, nil)
	fillCart(t, store)

	rec := httptest.NewRecorder()
	handler.Open(rec, httptest.NewRequest("POST", "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.TogglePayment(rec, httptest.NewRequest("PUT", "/", strings.NewReader(`{"method": "crypto"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutHandler_SubmissionFailure(t *testing.T) {
	handler, store := newCheckoutFixture(t, errors.New("upstream down"))
	fillCart(t, store)

	rec := httptest.NewRecorder()
	handler.Open(rec, httptest.NewRequest("POST", "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.TogglePayment(rec, httptest.NewRequest("PUT", "/", strings.NewReader(`{"method": "cash"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.Confirm(rec, httptest.NewRequest("POST", "/", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.False(t, store.IsEmpty(), "cart must survive a failed submission")

	// The dialog reopened for retry.
	rec = httptest.NewRecorder()
	handler.Get(rec, httptest.NewRequest("GET", "/", nil))
	var state CheckoutStateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	assert.Equal(t, "selecting", state.State)
}

func TestCheckoutHandler_Cancel(t *testing.T) {
	handler, store := newCheckoutFixture(t, nil)
	fillCart(t, store)

	rec := httptest.NewRecorder()
	handler.Open(rec, httptest.NewRequest("POST", "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.Cancel(rec, httptest.NewRequest("POST", "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var state CheckoutStateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	assert.Equal(t, "closed", state.State)
	assert.Empty(t, state.Selection)
	assert.False(t, store.IsEmpty())
}
