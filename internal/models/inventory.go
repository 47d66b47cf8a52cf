package models

// StockItem represents an inventory record for a confectionery SKU
type StockItem struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// ValidateItemsRequest asks the inventory service whether every line can
// be fulfilled at its requested quantity.
type ValidateItemsRequest struct {
	Items []CartItem `json:"items" binding:"required,dive"`
}

// ValidateItemsResponse reports availability; UnavailableItems lists the
// SKUs that cannot be fulfilled when Available is false.
type ValidateItemsResponse struct {
	Available        bool     `json:"available"`
	UnavailableItems []string `json:"unavailable_items,omitempty"`
	Message          string   `json:"message,omitempty"`
}

// ReserveItemsRequest deducts stock for a created order
type ReserveItemsRequest struct {
	OrderID string     `json:"order_id" binding:"required"`
	Items   []CartItem `json:"items" binding:"required,dive"`
}

// ReserveItemsResponse represents the response after reserving items
type ReserveItemsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ReleaseItemsRequest returns a reservation to stock (compensation path)
type ReleaseItemsRequest struct {
	OrderID string     `json:"order_id" binding:"required"`
	Items   []CartItem `json:"items" binding:"required,dive"`
}

// ReleaseItemsResponse represents the response after releasing items
type ReleaseItemsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
