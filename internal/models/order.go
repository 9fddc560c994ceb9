package models

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

var OrderStatuses = []OrderStatus{
	OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Order struct {
	ID              int64         `json:"id,omitempty"`
	OrderNumber     string        `json:"orderNumber"`
	CustomerID      int64         `json:"customerId"`
	OrderStatus     OrderStatus   `json:"orderStatus"`
	PaymentStatus   string        `json:"paymentStatus"`
	PaymentMethod   string        `json:"paymentMethod,omitempty"`
	TotalAmount     float64       `json:"totalAmount"`
	ShippingAddress string        `json:"shippingAddress"`
	BillingAddress  string        `json:"billingAddress"`
	OrderDate       string        `json:"orderDate,omitempty"`
	CreatedAt       string        `json:"createdAt,omitempty"`
	Customer        *CustomerInfo `json:"customer,omitempty"`
	OrderItems      []OrderItem   `json:"orderItems,omitempty"`
}

type OrderItem struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CustomerInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

type StatusChange struct {
	Status OrderStatus `json:"status"`
}

type Return struct {
	ID              int64   `json:"id,omitempty"`
	OrderID         int64   `json:"orderId"`
	ReturnNumber    string  `json:"returnNumber"`
	ReturnStatus    string  `json:"returnStatus"`
	Reason          string  `json:"reason"`
	RefundAmount    float64 `json:"refundAmount"`
	ProcessedBy     int64   `json:"processedBy,omitempty"`
	ProcessedAt     string  `json:"processedAt,omitempty"`
	ProcessingNotes string  `json:"processingNotes,omitempty"`
	RequestedAt     string  `json:"requestedAt,omitempty"`
	CreatedAt       string  `json:"createdAt,omitempty"`
	Order           *Order  `json:"order,omitempty"`
}

const ReturnRequested = "REQUESTED"
