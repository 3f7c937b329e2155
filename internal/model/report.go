package model

// ReconcileStatus classifies the gap between recorded money and theoretical
// revenue when a shift is reconciled.
type ReconcileStatus string

const (
	StatusBalanced ReconcileStatus = "balanced"
	StatusSurplus  ReconcileStatus = "surplus"
	StatusDeficit  ReconcileStatus = "deficit"
)

// ProductReport is the per-product line of a reconciliation report.
type ProductReport struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Price     float64 `json:"price"`
	StartQty  float64 `json:"start_qty"`
	AddedQty  float64 `json:"added_qty"`
	EndQty    float64 `json:"end_qty"`
	Sold      float64 `json:"sold"`
	Revenue   float64 `json:"revenue"`
}

// SessionReport compares a session's declared totals against the theoretical
// revenue derived from its stock deltas.
type SessionReport struct {
	SessionID      string          `json:"session_id"`
	Date           string          `json:"date"`
	IsActive       bool            `json:"is_active"`
	Items          []ProductReport `json:"items"`
	TotalRevenue   float64         `json:"total_revenue"`
	ActualCash     float64         `json:"actual_cash"`
	ActualTransfer float64         `json:"actual_transfer"`
	RecordedTotal  float64         `json:"recorded_total"`
	Difference     float64         `json:"difference"`
	Status         ReconcileStatus `json:"status"`
}
