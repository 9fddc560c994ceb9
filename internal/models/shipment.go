package models

type ShipmentStatus string

const (
	ShipmentCreated        ShipmentStatus = "CREATED"
	ShipmentInTransit      ShipmentStatus = "IN_TRANSIT"
	ShipmentOutForDelivery ShipmentStatus = "OUT_FOR_DELIVERY"
	ShipmentDelivered      ShipmentStatus = "DELIVERED"
	ShipmentFailed         ShipmentStatus = "FAILED"
)

type Shipment struct {
	ID                    int64          `json:"id,omitempty"`
	TrackingNumber        string         `json:"trackingNumber"`
	OrderID               int64          `json:"orderId"`
	CarrierID             int64          `json:"carrierId"`
	ShipmentStatus        ShipmentStatus `json:"shipmentStatus"`
	CurrentLocation       string         `json:"currentLocation,omitempty"`
	EstimatedDeliveryDate string         `json:"estimatedDeliveryDate,omitempty"`
	Order                 *Order         `json:"order,omitempty"`
	Carrier               *Carrier       `json:"carrier,omitempty"`
}

// LogEntry is a row of the remote application log.
type LogEntry struct {
	ID        int64  `json:"id"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}
