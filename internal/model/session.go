package model

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentTransfer
}

// Transaction is one recorded sale inside a shift session.
type Transaction struct {
	ID        string        `json:"id"`
	Timestamp int64         `json:"timestamp"` // epoch milliseconds
	Amount    float64       `json:"amount" validate:"required,gt=0"`
	Method    PaymentMethod `json:"method" validate:"required,oneof=CASH TRANSFER"`
	Note      string        `json:"note,omitempty"`
}

// StockLog holds the per-product unit counts for one session: on hand at
// shift start, replenished mid-shift, counted at shift end.
type StockLog struct {
	ProductID string  `json:"product_id"`
	StartQty  float64 `json:"start_qty"`
	AddedQty  float64 `json:"added_qty"`
	EndQty    float64 `json:"end_qty"`
}

// DailySession is one shift: its stock counts, its sales, and the declared
// cash/transfer totals derived from them. ActualCash and ActualTransfer are
// redundant aggregates over Transactions; the session ledger recomputes them
// after every transaction mutation so they never drift.
type DailySession struct {
	ID             string              `json:"id"`
	Date           string              `json:"date"` // YYYY-MM-DD, local calendar day
	IsActive       bool                `json:"is_active"`
	StockLogs      map[string]StockLog `json:"stock_logs"`
	Transactions   []Transaction       `json:"transactions"`
	ActualCash     float64             `json:"actual_cash"`
	ActualTransfer float64             `json:"actual_transfer"`
}

// Clone returns a deep copy, safe to hand to callers as a snapshot.
func (s *DailySession) Clone() *DailySession {
	if s == nil {
		return nil
	}
	cp := *s
	cp.StockLogs = make(map[string]StockLog, len(s.StockLogs))
	for id, log := range s.StockLogs {
		cp.StockLogs[id] = log
	}
	cp.Transactions = make([]Transaction, len(s.Transactions))
	copy(cp.Transactions, s.Transactions)
	return &cp
}
