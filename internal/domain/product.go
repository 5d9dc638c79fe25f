package domain

// CatalogItem is a sellable product as served by the remote products API.
// Items are read-only within a terminal session; the whole catalog is
// replaced wholesale on refresh.
type CatalogItem struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Code         string  `json:"code"`
	CategoryID   string  `json:"category_id"`
	BrandName    string  `json:"brand_name,omitempty"`
	Description  string  `json:"description,omitempty"`
	ImageURL     string  `json:"image_url,omitempty"`
	SellingPrice float64 `json:"selling_price"`
	Stock        int     `json:"stock"`
}

// InStock reports whether the item can be added to a cart. This is an
// advisory check only; the server remains the source of truth for stock.
func (p CatalogItem) InStock() bool {
	return p.Stock > 0
}

// Category is one of the fixed POS category tabs.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
