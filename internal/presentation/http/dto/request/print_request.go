package request

import "github.com/SunnFlower47/kasir-print-service/internal/domain/entity"

// PrintReceiptRequest is the request body for printing a receipt. The
// transaction itself arrives already fetched; this service does not read
// transactions from the backend.
type PrintReceiptRequest struct {
	Receipt  entity.ReceiptData `json:"receipt" binding:"required"`
	OutletID string             `json:"outlet_id,omitempty"`
	Template string             `json:"template,omitempty" binding:"omitempty,oneof=58mm simple detailed invoice"`
}

// UpdatePrefsRequest is the request body for the persisted print preference.
type UpdatePrefsRequest struct {
	Template  string `json:"template" binding:"required,oneof=58mm simple detailed invoice"`
	Scale     int    `json:"scale" binding:"omitempty,min=10,max=200"`
	AutoScale bool   `json:"autoScale"`
}
