package models

type Product struct {
	ID             int64   `json:"id,omitempty"`
	SKU            string  `json:"sku"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Weight         float64 `json:"weight"`
	Category       string  `json:"category,omitempty"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	CreatedBy      int64   `json:"createdBy,omitempty"`
	CreatedByName  string  `json:"createdByName,omitempty"`
	TotalStock     int     `json:"totalStock"`
	AvailableStock int     `json:"availableStock"`
	ReservedStock  int     `json:"reservedStock"`
	CreatedAt      string  `json:"createdAt,omitempty"`
	UpdatedAt      string  `json:"updatedAt,omitempty"`
}

type InventoryItem struct {
	ID               int64  `json:"id,omitempty"`
	ProductID        int64  `json:"productId"`
	WarehouseID      int64  `json:"warehouseId"`
	Quantity         int    `json:"quantity"`
	ReservedQuantity int    `json:"reservedQuantity"`
	ProductName      string `json:"productName,omitempty"`
	WarehouseName    string `json:"warehouseName,omitempty"`
}

// Available is what can still be promised to new orders.
func (i InventoryItem) Available() int {
	return i.Quantity - i.ReservedQuantity
}
