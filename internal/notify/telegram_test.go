package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurak20/smart-pos-web/internal/api"
	"github.com/nurak20/smart-pos-web/internal/domain"
	"github.com/nurak20/smart-pos-web/internal/events"
)

type mockSender struct {
	mu   sync.Mutex
	sent []api.TelegramMessage
	err  error
}

func (m *mockSender) SendTelegram(_ context.Context, msg api.TelegramMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func (m *mockSender) messages() []api.TelegramMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]api.TelegramMessage(nil), m.sent...)
}

func sampleInvoice() domain.InvoiceResult {
	return domain.InvoiceResult{
		OrderInfo: domain.InvoiceOrder{
			OrderID:          "a1b2c3d4-5678-90ab-cdef-000000000000",
			OrderDate:        "2026-03-14T09:30:00Z",
			CreatedDate:      "2026-03-14T09:30:01Z",
			TotalAmountUSD:   25.50,
			TotalAmountRiel:  102000,
			ExchangeRate:     4000,
			Description:      "POS Order - 2 items",
			DeliveryStatus:   "pending",
			OrderStatusText:  "Order confirmed",
			OrderStatusState: "confirmed",
			PaymentStatus:    "completed",
			PaymentType:      "cash",
			SubTotal:         25.50,
		},
		OrderDetails: []domain.InvoiceLine{
			{ProductCode: "COF-01", Qty: 2, Price: 10.00, SubTotal: 20.00},
			{ProductCode: "TEA-01", Qty: 1, Price: 5.50, SubTotal: 5.50},
		},
	}
}

func TestFormatOrderMessage(t *testing.T) {
	text := FormatOrderMessage(sampleInvoice())

	assert.Contains(t, text, "NEW ORDER #A1B2C3D4")
	assert.Contains(t, text, "ORDER ITEMS (3)")
	assert.Contains(t, text, "COF-01")
	assert.Contains(t, text, "TEA-01")
	assert.Contains(t, text, "$25.50")
	assert.Contains(t, text, "៛102,000")
	assert.Contains(t, text, "CASH • COMPLETED")
	assert.Contains(t, text, "manage-order?order=a1b2c3d4-5678-90ab-cdef-000000000000")
}

func TestFormatOrderMessage_EmptyDescription(t *testing.T) {
	inv := sampleInvoice()
	inv.OrderInfo.Description = ""

	text := FormatOrderMessage(inv)

	assert.Contains(t, text, "No additional notes")
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{400, "400"},
		{4000, "4,000"},
		{102000, "102,000"},
		{1234567, "1,234,567"},
		{-4000, "-4,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, groupThousands(tt.in), "input %v", tt.in)
	}
}

func TestNotifier_DeliversToEveryChat(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()

	sender := &mockSender{}
	notifier := NewNotifier(sender, []string{"1415543660", "5006388556"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifier.Run(ctx, bus)

	// Give the subscriber a moment to attach before publishing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, events.PublishOrderPlaced(bus, sampleInvoice()))

	require.Eventually(t, func() bool {
		return len(sender.messages()) == 2
	}, time.Second, 10*time.Millisecond)

	msgs := sender.messages()
	assert.Equal(t, "1415543660", msgs[0].ChatID)
	assert.Equal(t, "5006388556", msgs[1].ChatID)
	for _, msg := range msgs {
		assert.Equal(t, "HTML", msg.ParseMode)
		assert.Contains(t, msg.Message, "NEW ORDER")
	}
}

func TestNotifier_SendFailureIsSwallowed(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()

	sender := &mockSender{err: errors.New("telegram down")}
	notifier := NewNotifier(sender, []string{"1415543660"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifier.Run(ctx, bus)

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, events.PublishOrderPlaced(bus, sampleInvoice()))

	// The failed send is attempted and logged; nothing blocks or panics.
	require.Eventually(t, func() bool {
		return len(sender.messages()) == 1
	}, time.Second, 10*time.Millisecond)
}
