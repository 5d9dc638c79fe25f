package domain

// CartLine is a single product entry in the cart. Price, name and image are
// snapshotted from the catalog at the time of the first add; later catalog
// price changes do not affect lines already in the cart.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Code      string  `json:"code"`
	Name      string  `json:"product_name"`
	ImageURL  string  `json:"image_url,omitempty"`
	Price     float64 `json:"selling_price"`
	Quantity  int     `json:"quantity"`
}

// Subtotal returns price x quantity for this line.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// CartTotals is derived from the current lines on every call, never stored.
type CartTotals struct {
	TotalItems  int     `json:"total_items"`
	TotalAmount float64 `json:"total_amount"`
}

// NewLine builds a fresh quantity-1 line from a catalog item.
func NewLine(item CatalogItem) CartLine {
	return CartLine{
		ProductID: item.ProductID,
		Code:      item.Code,
		Name:      item.ProductName,
		ImageURL:  item.ImageURL,
		Price:     item.SellingPrice,
		Quantity:  1,
	}
}
