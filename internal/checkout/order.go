package checkout

import (
	"fmt"
	"math"
	"time"

	"github.com/nurak20/smart-pos-web/internal/domain"
)

// ExchangeRate is the fixed USD-to-Riel rate applied uniformly to the order
// total and every line subtotal.
const ExchangeRate = 4000

// Fixed identifiers the invoice API expects from the POS channel.
const (
	posAddressID = "550e8400-e29b-41d4-a716-446655440000"
	posUserID    = "550e8400-e29b-41d4-a716-446655440001"
	posCreatedBy = "pos_admin"
)

// BuildSubmission projects the cart and payment selection into an invoice
// payload. It is a pure function of its inputs: no network, no clock other
// than the one passed in, and it never mutates the cart.
//
// USD amounts are rounded to 2 decimal places; Riel amounts to the nearest
// whole unit, since the secondary currency has no fractional minor units.
func BuildSubmission(lines []domain.CartLine, methods []domain.PaymentMethod, now time.Time) domain.OrderSubmission {
	var totalUSD float64
	details := make([]domain.OrderLine, 0, len(lines))

	for _, line := range lines {
		sub := roundUSD(line.Subtotal())
		totalUSD += line.Subtotal()
		details = append(details, domain.OrderLine{
			ProductCode:  line.Code,
			Qty:          line.Quantity,
			Price:        line.Price,
			DiscountUnit: "percentage",
			SubTotal:     sub,
			TotalUSD:     sub,
			TotalRiel:    roundRiel(line.Subtotal() * ExchangeRate),
			CreatedBy:    posCreatedBy,
		})
	}
	totalUSD = roundUSD(totalUSD)

	return domain.OrderSubmission{
		Order: domain.OrderHeader{
			OrderDate:        now.UTC(),
			TotalAmountUSD:   totalUSD,
			TotalAmountRiel:  roundRiel(totalUSD * ExchangeRate),
			ExchangeRate:     ExchangeRate,
			AddressID:        posAddressID,
			UserID:           posUserID,
			Description:      fmt.Sprintf("POS Order - %d items", len(lines)),
			DeliveryStatus:   "pending",
			DeliveryComplete: false,
			DeliveryCost:     0,
			OrderStatusText:  "Order confirmed",
			OrderStatusState: "confirmed",
			PaymentStatus:    "completed",
			PaymentType:      domain.JoinPaymentMethods(methods),
			DiscountAmount:   0,
			SubTotal:         totalUSD,
		},
		OrderDetail: details,
	}
}

func roundUSD(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundRiel(v float64) float64 {
	return math.Round(v)
}
