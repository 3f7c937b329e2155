package service

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/anst-dev/ChotTienBanHang/internal/model"
	"github.com/anst-dev/ChotTienBanHang/internal/repository"
	"github.com/anst-dev/ChotTienBanHang/internal/ws"
	"github.com/anst-dev/ChotTienBanHang/pkg/metrics"
	"github.com/anst-dev/ChotTienBanHang/pkg/validator"

	"github.com/google/uuid"
)

const defaultHistoryLimit = 50

// localLoc is the shop's calendar timezone, used for the session date key.
var localLoc *time.Location

func init() {
	var err error
	localLoc, err = time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		// Fallback to UTC+7 if timezone data not available
		localLoc = time.FixedZone("ICT", 7*60*60)
	}
}

// CatalogProvider is the slice of the catalog the ledger needs: product
// identities for stock-log initialization at session start.
type CatalogProvider interface {
	List() []model.Product
}

// StockField selects which stock-log count an update targets.
type StockField string

const (
	StockFieldStart StockField = "start_qty"
	StockFieldAdded StockField = "added_qty"
	StockFieldEnd   StockField = "end_qty"
)

type RecordSaleRequest struct {
	Amount float64             `json:"amount" validate:"required,gt=0"`
	Method model.PaymentMethod `json:"method" validate:"required,oneof=CASH TRANSFER"`
	Note   string              `json:"note"`
}

type EditTransactionRequest struct {
	Amount    *float64             `json:"amount" validate:"omitempty,gt=0"`
	Method    *model.PaymentMethod `json:"method" validate:"omitempty,oneof=CASH TRANSFER"`
	Timestamp *int64               `json:"timestamp"`
	Note      *string              `json:"note"`
}

// SessionService is the session ledger: it owns the current shift, its
// transaction list, the derived declared totals, and the bounded history of
// closed shifts. Every mutation recomputes the totals and persists the
// affected slot best-effort.
type SessionService interface {
	Current() (*model.DailySession, bool)
	Start() *model.DailySession
	Close() (*model.DailySession, error)
	UpdateStock(productID string, field StockField, value float64) error
	RecordSale(req *RecordSaleRequest) (*model.Transaction, error)
	EditTransaction(id string, req *EditTransactionRequest) (*model.Transaction, bool, error)
	DeleteTransaction(id string) (bool, error)
	DeleteAllTransactions() error
	History() []model.DailySession
	HistoryByID(id string) (*model.DailySession, bool)
	RemoveStockLog(productID string)
}

type sessionService struct {
	mu           sync.Mutex
	current      *model.DailySession
	history      []model.DailySession
	catalog      CatalogProvider
	store        repository.SlotStore
	hub          *ws.Hub
	historyLimit int
}

// NewSessionService loads the current-session and history slots. Unreadable
// slots fall back to safe defaults, and when no session exists at all a
// fresh one is started so the shop is always ready to sell.
func NewSessionService(store repository.SlotStore, catalog CatalogProvider, hub *ws.Hub, historyLimit int) SessionService {
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	s := &sessionService{
		catalog:      catalog,
		store:        store,
		hub:          hub,
		historyLimit: historyLimit,
	}

	var current model.DailySession
	ok, err := store.Load(model.SlotCurrentSession, &current)
	if err != nil {
		log.Printf("Warning: current-session slot unreadable, starting fresh: %v", err)
	}
	if err == nil && ok {
		s.current = &current
	}

	var history []model.DailySession
	if _, err := store.Load(model.SlotSessionHistory, &history); err != nil {
		log.Printf("Warning: session-history slot unreadable, starting empty: %v", err)
		history = nil
	}
	s.history = history

	if s.current == nil {
		s.startLocked()
	}
	return s
}

// Current returns a snapshot of the current session, closed or active.
func (s *sessionService) Current() (*model.DailySession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, false
	}
	return s.current.Clone(), true
}

// Start opens a new shift. A still-active previous shift is discarded
// without archiving; history only ever receives explicitly closed shifts.
func (s *sessionService) Start() *model.DailySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.startLocked()
	return sess.Clone()
}

func (s *sessionService) startLocked() *model.DailySession {
	sess := &model.DailySession{
		ID:           uuid.NewString(),
		Date:         time.Now().In(localLoc).Format("2006-01-02"),
		IsActive:     true,
		StockLogs:    make(map[string]model.StockLog),
		Transactions: []model.Transaction{},
	}
	if s.catalog != nil {
		for _, p := range s.catalog.List() {
			sess.StockLogs[p.ID] = model.StockLog{ProductID: p.ID}
		}
	}
	s.current = sess
	s.persistCurrent()
	metrics.SessionsOpened.Inc()
	s.publish("session_started", sess.Clone())
	return sess
}

// Close archives the current shift. The closed snapshot stays in the
// current slot so its report remains readable until a new shift starts.
func (s *sessionService) Close() (*model.DailySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active() == nil {
		return nil, ErrNoActiveSession
	}

	s.current.IsActive = false
	snapshot := s.current.Clone()

	s.history = append([]model.DailySession{*snapshot}, s.history...)
	if len(s.history) > s.historyLimit {
		s.history = s.history[:s.historyLimit]
	}

	s.persistCurrent()
	s.persistHistory()
	metrics.SessionsClosed.Inc()
	s.publish("session_closed", snapshot)
	return snapshot, nil
}

// UpdateStock sets one count of a product's stock log. A missing entry is
// upserted so counts typed against a product added mid-shift are kept.
func (s *sessionService) UpdateStock(productID string, field StockField, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.active()
	if sess == nil {
		return ErrNoActiveSession
	}

	entry, ok := sess.StockLogs[productID]
	if !ok {
		entry = model.StockLog{ProductID: productID}
	}
	switch field {
	case StockFieldStart:
		entry.StartQty = value
	case StockFieldAdded:
		entry.AddedQty = value
	case StockFieldEnd:
		entry.EndQty = value
	default:
		return fmt.Errorf("%w: unknown stock field %q", ErrValidation, field)
	}
	sess.StockLogs[productID] = entry

	s.persistCurrent()
	s.publish("session_changed", nil)
	return nil
}

func (s *sessionService) RecordSale(req *RecordSaleRequest) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validator.Describe(errs))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.active()
	if sess == nil {
		return nil, ErrNoActiveSession
	}

	tx := model.Transaction{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UnixMilli(),
		Amount:    req.Amount,
		Method:    req.Method,
		Note:      req.Note,
	}
	// Most-recent-first
	sess.Transactions = append([]model.Transaction{tx}, sess.Transactions...)
	recalcTotals(sess)

	s.persistCurrent()
	metrics.SalesRecorded.WithLabelValues(string(tx.Method)).Inc()
	s.publish("session_changed", tx)
	return &tx, nil
}

// EditTransaction patches one transaction. The boolean reports whether a
// matching transaction existed; editing a missing one is a no-op, not an
// error.
func (s *sessionService) EditTransaction(id string, req *EditTransactionRequest) (*model.Transaction, bool, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, false, fmt.Errorf("%w: %s", ErrValidation, validator.Describe(errs))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.active()
	if sess == nil {
		return nil, false, ErrNoActiveSession
	}

	for i := range sess.Transactions {
		if sess.Transactions[i].ID != id {
			continue
		}
		tx := &sess.Transactions[i]
		if req.Amount != nil {
			tx.Amount = *req.Amount
		}
		if req.Method != nil {
			tx.Method = *req.Method
		}
		if req.Timestamp != nil {
			tx.Timestamp = *req.Timestamp
		}
		if req.Note != nil {
			tx.Note = *req.Note
		}
		recalcTotals(sess)

		s.persistCurrent()
		updated := *tx
		s.publish("session_changed", updated)
		return &updated, true, nil
	}
	return nil, false, nil
}

func (s *sessionService) DeleteTransaction(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.active()
	if sess == nil {
		return false, ErrNoActiveSession
	}

	for i := range sess.Transactions {
		if sess.Transactions[i].ID != id {
			continue
		}
		sess.Transactions = append(sess.Transactions[:i], sess.Transactions[i+1:]...)
		recalcTotals(sess)

		s.persistCurrent()
		metrics.TransactionsDeleted.Inc()
		s.publish("session_changed", nil)
		return true, nil
	}
	return false, nil
}

func (s *sessionService) DeleteAllTransactions() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.active()
	if sess == nil {
		return ErrNoActiveSession
	}

	deleted := len(sess.Transactions)
	sess.Transactions = []model.Transaction{}
	recalcTotals(sess)

	s.persistCurrent()
	metrics.TransactionsDeleted.Add(float64(deleted))
	s.publish("session_changed", nil)
	return nil
}

// History returns snapshots of closed shifts, newest first.
func (s *sessionService) History() []model.DailySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.DailySession, 0, len(s.history))
	for i := range s.history {
		out = append(out, *s.history[i].Clone())
	}
	return out
}

func (s *sessionService) HistoryByID(id string) (*model.DailySession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.history {
		if s.history[i].ID == id {
			return s.history[i].Clone(), true
		}
	}
	return nil, false
}

// RemoveStockLog drops a deleted product's entry from the active shift.
func (s *sessionService) RemoveStockLog(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.active()
	if sess == nil {
		return
	}
	if _, ok := sess.StockLogs[productID]; !ok {
		return
	}
	delete(sess.StockLogs, productID)
	s.persistCurrent()
	s.publish("session_changed", nil)
}

func (s *sessionService) active() *model.DailySession {
	if s.current != nil && s.current.IsActive {
		return s.current
	}
	return nil
}

// recalcTotals re-derives both declared totals from the transaction list.
// Every transaction mutation funnels through here so the aggregates cannot
// drift from their source of truth.
func recalcTotals(sess *model.DailySession) {
	var cash, transfer float64
	for _, tx := range sess.Transactions {
		switch tx.Method {
		case model.PaymentCash:
			cash += tx.Amount
		case model.PaymentTransfer:
			transfer += tx.Amount
		}
	}
	sess.ActualCash = cash
	sess.ActualTransfer = transfer
}

// Persistence is best-effort and never fails a mutation; callers hold the lock.

func (s *sessionService) persistCurrent() {
	if err := s.store.Save(model.SlotCurrentSession, s.current); err != nil {
		log.Printf("Warning: failed to persist current session: %v", err)
	}
}

func (s *sessionService) persistHistory() {
	if err := s.store.Save(model.SlotSessionHistory, s.history); err != nil {
		log.Printf("Warning: failed to persist session history: %v", err)
	}
}

func (s *sessionService) publish(event string, payload interface{}) {
	if s.hub != nil {
		s.hub.Publish(event, payload)
	}
}
