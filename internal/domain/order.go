package domain

import "time"

// OrderHeader carries the order-level fields of an invoice submission.
// Field names follow the remote invoice API contract.
type OrderHeader struct {
	OrderDate        time.Time `json:"order_date"`
	TotalAmountUSD   float64   `json:"total_amount_usd"`
	TotalAmountRiel  float64   `json:"total_amount_riel"`
	ExchangeRate     float64   `json:"exchange_rate"`
	AddressID        string    `json:"address_id"`
	UserID           string    `json:"user_id"`
	Description      string    `json:"description"`
	DeliveryStatus   string    `json:"delivery_status"`
	DeliveryComplete bool      `json:"delivery_completed"`
	DeliveryCost     float64   `json:"delivery_cost"`
	OrderStatusText  string    `json:"order_status_text"`
	OrderStatusState string    `json:"order_status_state"`
	PaymentStatus    string    `json:"payment_status"`
	PaymentType      string    `json:"payment_type"`
	DiscountAmount   float64   `json:"discount_amount"`
	EventDiscountID  *string   `json:"event_discount_id"`
	SubTotal         float64   `json:"sub_total"`
}

// OrderLine is a single line of an invoice submission.
type OrderLine struct {
	ProductCode    string  `json:"product_code"`
	Qty            int     `json:"qty"`
	Price          float64 `json:"price"`
	Discount       float64 `json:"discount"`
	DiscountUnit   string  `json:"discount_unit"`
	DiscountAmount float64 `json:"discount_amount"`
	SubTotal       float64 `json:"sub_total"`
	TotalUSD       float64 `json:"total_usd"`
	TotalRiel      float64 `json:"total_riel"`
	CreatedBy      string  `json:"created_by"`
}

// OrderSubmission is the outbound invoice payload. It is a pure projection
// of the cart and payment selection; it is constructed, sent, and never
// mutated afterwards.
type OrderSubmission struct {
	Order       OrderHeader `json:"order"`
	OrderDetail []OrderLine `json:"order_detail"`
}

// InvoiceOrder is the persisted order as echoed back by the invoice API,
// including server-generated identifiers and timestamps.
type InvoiceOrder struct {
	OrderID          string  `json:"order_id"`
	OrderDate        string  `json:"order_date"`
	CreatedDate      string  `json:"created_date"`
	TotalAmountUSD   float64 `json:"total_amount_usd"`
	TotalAmountRiel  float64 `json:"total_amount_riel"`
	ExchangeRate     float64 `json:"exchange_rate"`
	Description      string  `json:"description"`
	DeliveryStatus   string  `json:"delivery_status"`
	DeliveryComplete bool    `json:"delivery_completed"`
	DeliveryCost     float64 `json:"delivery_cost"`
	OrderStatusText  string  `json:"order_status_text"`
	OrderStatusState string  `json:"order_status_state"`
	PaymentStatus    string  `json:"payment_status"`
	PaymentType      string  `json:"payment_type"`
	DiscountAmount   float64 `json:"discount_amount"`
	SubTotal         float64 `json:"sub_total"`
}

// InvoiceLine mirrors a persisted order detail row.
type InvoiceLine struct {
	ProductCode  string  `json:"product_code"`
	Qty          int     `json:"qty"`
	Price        float64 `json:"price"`
	Discount     float64 `json:"discount"`
	DiscountUnit string  `json:"discount_unit"`
	SubTotal     float64 `json:"sub_total"`
}

// InvoiceResult is the success response of the invoice submission.
type InvoiceResult struct {
	OrderInfo    InvoiceOrder  `json:"order_info"`
	OrderDetails []InvoiceLine `json:"order_details"`
}
