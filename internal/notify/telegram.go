package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/nurak20/smart-pos-web/internal/api"
	"github.com/nurak20/smart-pos-web/internal/domain"
	"github.com/nurak20/smart-pos-web/internal/events"
)

// Sender dispatches a single notification message.
type Sender interface {
	SendTelegram(ctx context.Context, msg api.TelegramMessage) error
}

// Notifier consumes order-placed events and pushes an HTML order summary to
// each configured Telegram chat. Delivery is strictly best-effort: failures
// are logged and the event is acked regardless, so a broken notification
// channel can never hold up or roll back an order.
type Notifier struct {
	sender  Sender
	chatIDs []string
}

func NewNotifier(sender Sender, chatIDs []string) *Notifier {
	return &Notifier{sender: sender, chatIDs: chatIDs}
}

// Run subscribes to order-placed events and blocks until the context is
// cancelled or the subscription closes.
func (n *Notifier) Run(ctx context.Context, subscriber message.Subscriber) error {
	msgs, err := subscriber.Subscribe(ctx, events.TopicOrderPlaced)
	if err != nil {
		return fmt.Errorf("subscribe to order events failed: %w", err)
	}

	for msg := range msgs {
		n.handle(ctx, msg)
		msg.Ack()
	}
	return nil
}

func (n *Notifier) handle(ctx context.Context, msg *message.Message) {
	var event events.OrderPlaced
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		log.Printf("invalid order placed event %s: %v", msg.UUID, err)
		return
	}

	text := FormatOrderMessage(event.Invoice)
	for _, chatID := range n.chatIDs {
		err := n.sender.SendTelegram(ctx, api.TelegramMessage{
			ChatID:    chatID,
			Message:   text,
			ParseMode: "HTML",
		})
		if err != nil {
			log.Printf("telegram notification to chat %s failed: %v", chatID, err)
		}
	}
}

// FormatOrderMessage renders the persisted order as the Telegram HTML
// summary sent after every sale.
func FormatOrderMessage(inv domain.InvoiceResult) string {
	order := inv.OrderInfo

	var items strings.Builder
	totalItems := 0
	for _, item := range inv.OrderDetails {
		totalItems += item.Qty
		fmt.Fprintf(&items, "<b>%s</b>\n", item.ProductCode)
		fmt.Fprintf(&items, "  Quantity: %d\n", item.Qty)
		fmt.Fprintf(&items, "  Price: $%.2f\n", item.Price)
		if item.Discount > 0 {
			unit := ""
			if item.DiscountUnit == "percentage" {
				unit = "%"
			}
			fmt.Fprintf(&items, "  Discount: %v%s\n", item.Discount, unit)
		}
		fmt.Fprintf(&items, "  Subtotal: $%.2f\n", item.SubTotal)
	}

	orderRef := strings.ToUpper(order.OrderID)
	if len(orderRef) > 8 {
		orderRef = orderRef[:8]
	}

	description := order.Description
	if description == "" {
		description = "No additional notes"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>NEW ORDER #%s</b>\n", orderRef)
	fmt.Fprintf(&b, "<b>Order Date:</b> %s\n", order.OrderDate)
	fmt.Fprintf(&b, "<b>Status:</b> %s (%s)\n", order.OrderStatusText, order.OrderStatusState)
	fmt.Fprintf(&b, "<b>Payment:</b> %s • %s\n\n",
		strings.ToUpper(strings.ReplaceAll(order.PaymentType, "_", " ")),
		strings.ToUpper(order.PaymentStatus))
	fmt.Fprintf(&b, "<b>ORDER ITEMS (%d)</b>\n%s\n", totalItems, items.String())
	fmt.Fprintf(&b, "<b>ORDER SUMMARY</b>\n")
	fmt.Fprintf(&b, "  Subtotal: $%.2f\n", order.SubTotal)
	fmt.Fprintf(&b, "  Discount: $%.2f\n", order.DiscountAmount)
	fmt.Fprintf(&b, "  Delivery: $%.2f\n", order.DeliveryCost)
	fmt.Fprintf(&b, "  Exchange Rate: ៛%.2f/$\n", order.ExchangeRate)
	fmt.Fprintf(&b, "  <b>TOTAL: $%.2f (៛%s)</b>\n\n", order.TotalAmountUSD, groupThousands(order.TotalAmountRiel))
	fmt.Fprintf(&b, "<b>Delivery Status:</b> %s\n", strings.ToUpper(order.DeliveryStatus))
	fmt.Fprintf(&b, "<b>Notes:</b> %s\n\n", description)
	fmt.Fprintf(&b, "<a href=\"https://admin.txteams.net/manage-order?order=%s\">Manage This Order</a>\n", order.OrderID)
	fmt.Fprintf(&b, "<i>Order created at: %s</i>", order.CreatedDate)
	return b.String()
}

// groupThousands formats a whole Riel amount with comma separators.
func groupThousands(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
