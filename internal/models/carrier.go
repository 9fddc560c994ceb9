package models

type Carrier struct {
	ID           int64  `json:"id,omitempty"`
	CarrierCode  string `json:"carrierCode"`
	CarrierName  string `json:"carrierName"`
	ContactEmail string `json:"contactEmail"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

type Warehouse struct {
	ID        int64  `json:"id,omitempty"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Capacity  int    `json:"capacity"`
	CreatedAt string `json:"createdAt,omitempty"`
}
