package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nurak20/smart-pos-web/internal/checkout"
	"github.com/nurak20/smart-pos-web/internal/domain"
)

type CheckoutHandler struct {
	orchestrator *checkout.Orchestrator
}

func NewCheckoutHandler(orchestrator *checkout.Orchestrator) *CheckoutHandler {
	return &CheckoutHandler{orchestrator: orchestrator}
}

type CheckoutStateResponse struct {
	State     string                 `json:"state"`
	Selection []domain.PaymentMethod `json:"selection"`
}

type TogglePaymentRequestDTO struct {
	Method string `json:"method"`
}

func (h *CheckoutHandler) stateResponse() CheckoutStateResponse {
	return CheckoutStateResponse{
		State:     h.orchestrator.State().String(),
		Selection: h.orchestrator.Selection(),
	}
}

// GET /api/v1/checkout
func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.stateResponse())
}

// POST /api/v1/checkout/open
func (h *CheckoutHandler) Open(w http.ResponseWriter, r *http.Request) {
	if err := h.orchestrator.Open(); err != nil {
		h.handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.stateResponse())
}

// PUT /api/v1/checkout/payment
func (h *CheckoutHandler) TogglePayment(w http.ResponseWriter, r *http.Request) {
	var req TogglePaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	method, ok := domain.ParsePaymentMethod(req.Method)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_payment_method", "unknown payment method")
		return
	}

	if err := h.orchestrator.TogglePayment(method); err != nil {
		h.handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.stateResponse())
}

// POST /api/v1/checkout/cancel
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.orchestrator.Cancel(); err != nil {
		h.handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.stateResponse())
}

// POST /api/v1/checkout/confirm
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.orchestrator.Confirm(r.Context())
	if err != nil {
		h.handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, invoice)
}

func (h *CheckoutHandler) handleCheckoutError(w http.ResponseWriter, err error) {
	var subErr *checkout.SubmissionError
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", "cannot checkout an empty cart")
	case errors.Is(err, checkout.ErrNoPaymentMethod):
		respondError(w, http.StatusConflict, "no_payment_method", "select a payment method first")
	case errors.Is(err, checkout.ErrNotOpen):
		respondError(w, http.StatusConflict, "checkout_not_open", "checkout dialog is not open")
	case errors.Is(err, checkout.ErrSubmitting):
		respondError(w, http.StatusConflict, "submission_in_progress", "an order submission is already in progress")
	case errors.As(err, &subErr):
		respondError(w, http.StatusBadGateway, "submission_failed", subErr.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
