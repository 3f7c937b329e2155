package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/anst-dev/ChotTienBanHang/internal/model"
	"github.com/anst-dev/ChotTienBanHang/internal/repository"
)

type stubCatalog []model.Product

func (c stubCatalog) List() []model.Product { return c }

var testCatalog = stubCatalog{
	{ID: "p1", Name: "Bia", Unit: "Két", Price: 250000},
	{ID: "p2", Name: "Nước ngọt", Unit: "Thùng", Price: 180000},
}

func newLedger(t *testing.T) (SessionService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	return NewSessionService(store, testCatalog, nil, 0), store
}

// checkTotals verifies the aggregate invariant: each declared total equals
// the sum of amounts of its method's transactions.
func checkTotals(t *testing.T, svc SessionService) {
	t.Helper()
	sess, ok := svc.Current()
	if !ok {
		t.Fatal("expected a current session")
	}
	var cash, transfer float64
	for _, tx := range sess.Transactions {
		switch tx.Method {
		case model.PaymentCash:
			cash += tx.Amount
		case model.PaymentTransfer:
			transfer += tx.Amount
		}
	}
	if sess.ActualCash != cash {
		t.Errorf("actual cash = %v, want sum of cash transactions %v", sess.ActualCash, cash)
	}
	if sess.ActualTransfer != transfer {
		t.Errorf("actual transfer = %v, want sum of transfer transactions %v", sess.ActualTransfer, transfer)
	}
}

func TestStartInitializesSession(t *testing.T) {
	svc, _ := newLedger(t)

	sess, ok := svc.Current()
	if !ok {
		t.Fatal("expected auto-started session at boot")
	}
	if !sess.IsActive {
		t.Error("auto-started session should be active")
	}
	if len(sess.Transactions) != 0 {
		t.Errorf("new session has %d transactions, want 0", len(sess.Transactions))
	}
	if sess.ActualCash != 0 || sess.ActualTransfer != 0 {
		t.Errorf("new session totals = %v/%v, want 0/0", sess.ActualCash, sess.ActualTransfer)
	}
	if len(sess.StockLogs) != len(testCatalog) {
		t.Fatalf("stock logs for %d products, want %d", len(sess.StockLogs), len(testCatalog))
	}
	for _, p := range testCatalog {
		log, ok := sess.StockLogs[p.ID]
		if !ok {
			t.Errorf("missing stock log for %s", p.ID)
			continue
		}
		if log.StartQty != 0 || log.AddedQty != 0 || log.EndQty != 0 {
			t.Errorf("stock log for %s not zeroed: %+v", p.ID, log)
		}
	}
}

func TestAggregateInvariantAcrossMutations(t *testing.T) {
	svc, _ := newLedger(t)

	tx1, err := svc.RecordSale(&RecordSaleRequest{Amount: 1000, Method: model.PaymentCash})
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}
	checkTotals(t, svc)

	tx2, err := svc.RecordSale(&RecordSaleRequest{Amount: 2500, Method: model.PaymentTransfer, Note: "ship"})
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}
	checkTotals(t, svc)

	if _, err := svc.RecordSale(&RecordSaleRequest{Amount: 500, Method: model.PaymentCash}); err != nil {
		t.Fatalf("record sale: %v", err)
	}
	checkTotals(t, svc)

	amount := 3000.0
	if _, _, err := svc.EditTransaction(tx1.ID, &EditTransactionRequest{Amount: &amount}); err != nil {
		t.Fatalf("edit transaction: %v", err)
	}
	checkTotals(t, svc)

	if _, err := svc.DeleteTransaction(tx2.ID); err != nil {
		t.Fatalf("delete transaction: %v", err)
	}
	checkTotals(t, svc)

	if err := svc.DeleteAllTransactions(); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	checkTotals(t, svc)

	sess, _ := svc.Current()
	if len(sess.Transactions) != 0 || sess.ActualCash != 0 || sess.ActualTransfer != 0 {
		t.Errorf("after delete all: %d transactions, totals %v/%v, want empty and zeroed",
			len(sess.Transactions), sess.ActualCash, sess.ActualTransfer)
	}
}

func TestRecordSaleOrdersMostRecentFirst(t *testing.T) {
	svc, _ := newLedger(t)

	first, _ := svc.RecordSale(&RecordSaleRequest{Amount: 100, Method: model.PaymentCash})
	second, _ := svc.RecordSale(&RecordSaleRequest{Amount: 200, Method: model.PaymentCash})

	sess, _ := svc.Current()
	if len(sess.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(sess.Transactions))
	}
	if sess.Transactions[0].ID != second.ID || sess.Transactions[1].ID != first.ID {
		t.Error("transactions not ordered most-recent-first")
	}
}

func TestRecordSaleRejectsInvalidAmount(t *testing.T) {
	testCases := []struct {
		name string
		req  RecordSaleRequest
	}{
		{"negative amount", RecordSaleRequest{Amount: -5, Method: model.PaymentCash}},
		{"zero amount", RecordSaleRequest{Amount: 0, Method: model.PaymentCash}},
		{"missing method", RecordSaleRequest{Amount: 100}},
		{"unknown method", RecordSaleRequest{Amount: 100, Method: "CARD"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newLedger(t)
			before, _ := svc.Current()

			_, err := svc.RecordSale(&tc.req)
			if !errorsIsValidation(err) {
				t.Fatalf("got err %v, want validation failure", err)
			}

			after, _ := svc.Current()
			if len(after.Transactions) != len(before.Transactions) {
				t.Error("rejected sale must not change the transaction list")
			}
			if after.ActualCash != before.ActualCash || after.ActualTransfer != before.ActualTransfer {
				t.Error("rejected sale must not change the totals")
			}
		})
	}
}

func TestEditTransactionMethodSwitch(t *testing.T) {
	svc, _ := newLedger(t)

	tx, err := svc.RecordSale(&RecordSaleRequest{Amount: 1000, Method: model.PaymentCash})
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}
	sess, _ := svc.Current()
	if sess.ActualCash != 1000 || sess.ActualTransfer != 0 {
		t.Fatalf("precondition: totals %v/%v, want 1000/0", sess.ActualCash, sess.ActualTransfer)
	}

	amount := 1500.0
	method := model.PaymentTransfer
	updated, found, err := svc.EditTransaction(tx.ID, &EditTransactionRequest{Amount: &amount, Method: &method})
	if err != nil || !found {
		t.Fatalf("edit transaction: found=%v err=%v", found, err)
	}
	if updated.Amount != 1500 || updated.Method != model.PaymentTransfer {
		t.Errorf("updated tx = %+v, want amount 1500 method TRANSFER", updated)
	}

	sess, _ = svc.Current()
	if sess.ActualCash != 0 || sess.ActualTransfer != 1500 {
		t.Errorf("totals after method switch = %v/%v, want 0/1500", sess.ActualCash, sess.ActualTransfer)
	}
}

func TestEditTransactionMissingIsNoop(t *testing.T) {
	svc, _ := newLedger(t)
	svc.RecordSale(&RecordSaleRequest{Amount: 100, Method: model.PaymentCash})

	amount := 999.0
	_, found, err := svc.EditTransaction("nope", &EditTransactionRequest{Amount: &amount})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("editing a missing transaction must report not-found")
	}
	sess, _ := svc.Current()
	if sess.ActualCash != 100 {
		t.Errorf("totals changed by a no-op edit: %v", sess.ActualCash)
	}
}

func TestEditTransactionRejectsInvalidPatch(t *testing.T) {
	svc, _ := newLedger(t)
	tx, _ := svc.RecordSale(&RecordSaleRequest{Amount: 100, Method: model.PaymentCash})

	bad := -10.0
	_, _, err := svc.EditTransaction(tx.ID, &EditTransactionRequest{Amount: &bad})
	if !errorsIsValidation(err) {
		t.Fatalf("got err %v, want validation failure", err)
	}
	sess, _ := svc.Current()
	if sess.ActualCash != 100 {
		t.Errorf("rejected edit changed totals: %v", sess.ActualCash)
	}
}

func TestDeleteTransactionIdempotent(t *testing.T) {
	svc, _ := newLedger(t)
	tx, _ := svc.RecordSale(&RecordSaleRequest{Amount: 700, Method: model.PaymentTransfer})

	removed, err := svc.DeleteTransaction(tx.ID)
	if err != nil || !removed {
		t.Fatalf("first delete: removed=%v err=%v", removed, err)
	}
	removed, err = svc.DeleteTransaction(tx.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if removed {
		t.Error("second delete of same id should be a no-op")
	}
	checkTotals(t, svc)
}

func TestDeleteAllResetsTotals(t *testing.T) {
	svc, _ := newLedger(t)
	svc.RecordSale(&RecordSaleRequest{Amount: 2000, Method: model.PaymentCash})
	svc.RecordSale(&RecordSaleRequest{Amount: 3000, Method: model.PaymentCash})
	svc.RecordSale(&RecordSaleRequest{Amount: 3000, Method: model.PaymentTransfer})

	sess, _ := svc.Current()
	if sess.ActualCash != 5000 || sess.ActualTransfer != 3000 {
		t.Fatalf("precondition: totals %v/%v, want 5000/3000", sess.ActualCash, sess.ActualTransfer)
	}

	if err := svc.DeleteAllTransactions(); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	sess, _ = svc.Current()
	if len(sess.Transactions) != 0 || sess.ActualCash != 0 || sess.ActualTransfer != 0 {
		t.Errorf("after delete all: %d transactions, totals %v/%v",
			len(sess.Transactions), sess.ActualCash, sess.ActualTransfer)
	}
}

func TestUpdateStockFields(t *testing.T) {
	svc, _ := newLedger(t)

	for _, step := range []struct {
		field StockField
		value float64
	}{
		{StockFieldStart, 10},
		{StockFieldAdded, 4},
		{StockFieldEnd, 6},
	} {
		if err := svc.UpdateStock("p1", step.field, step.value); err != nil {
			t.Fatalf("update %s: %v", step.field, err)
		}
	}

	sess, _ := svc.Current()
	log := sess.StockLogs["p1"]
	if log.StartQty != 10 || log.AddedQty != 4 || log.EndQty != 6 {
		t.Errorf("stock log = %+v, want 10/4/6", log)
	}
}

func TestUpdateStockUpsertsMissingEntry(t *testing.T) {
	svc, _ := newLedger(t)

	// A product added to the catalog mid-shift has no stock log yet.
	if err := svc.UpdateStock("p-new", StockFieldStart, 7); err != nil {
		t.Fatalf("update stock: %v", err)
	}
	sess, _ := svc.Current()
	log, ok := sess.StockLogs["p-new"]
	if !ok {
		t.Fatal("expected stock log to be upserted")
	}
	if log.ProductID != "p-new" || log.StartQty != 7 {
		t.Errorf("upserted log = %+v", log)
	}
}

func TestUpdateStockRejectsUnknownField(t *testing.T) {
	svc, _ := newLedger(t)
	if err := svc.UpdateStock("p1", "quantity", 3); !errorsIsValidation(err) {
		t.Errorf("got err %v, want validation failure", err)
	}
}

func TestCloseSessionArchivesAndDeactivates(t *testing.T) {
	svc, _ := newLedger(t)
	svc.RecordSale(&RecordSaleRequest{Amount: 100, Method: model.PaymentCash})

	closed, err := svc.Close()
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.IsActive {
		t.Error("closed session still marked active")
	}

	// The closed snapshot stays readable in the current slot.
	current, ok := svc.Current()
	if !ok || current.IsActive {
		t.Error("closed session should remain the current snapshot, inactive")
	}

	history := svc.History()
	if len(history) != 1 || history[0].ID != closed.ID {
		t.Fatalf("history = %d entries, want the closed session first", len(history))
	}

	// No transition back: further mutations are rejected.
	if _, err := svc.RecordSale(&RecordSaleRequest{Amount: 50, Method: model.PaymentCash}); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("record sale on closed session: got %v, want ErrNoActiveSession", err)
	}
	if _, err := svc.Close(); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("double close: got %v, want ErrNoActiveSession", err)
	}
}

func TestHistoryBoundedAtLimit(t *testing.T) {
	svc, _ := newLedger(t)

	var closedIDs []string
	for i := 0; i < 51; i++ {
		svc.Start()
		svc.RecordSale(&RecordSaleRequest{Amount: float64(i + 1), Method: model.PaymentCash, Note: fmt.Sprintf("shift %d", i)})
		closed, err := svc.Close()
		if err != nil {
			t.Fatalf("close #%d: %v", i, err)
		}
		closedIDs = append(closedIDs, closed.ID)
	}

	history := svc.History()
	if len(history) != 50 {
		t.Fatalf("history holds %d entries, want 50", len(history))
	}
	// Newest first, the very first closed shift evicted.
	if history[0].ID != closedIDs[50] {
		t.Error("most recently closed session should be first")
	}
	if history[49].ID != closedIDs[1] {
		t.Error("oldest retained session should be the second ever closed")
	}
	for _, entry := range history {
		if entry.ID == closedIDs[0] {
			t.Error("oldest session should have been evicted")
		}
	}
}

func TestStartDiscardsActiveSession(t *testing.T) {
	svc, _ := newLedger(t)
	svc.RecordSale(&RecordSaleRequest{Amount: 100, Method: model.PaymentCash})
	old, _ := svc.Current()

	fresh := svc.Start()
	if fresh.ID == old.ID {
		t.Fatal("start must produce a new session id")
	}
	if len(svc.History()) != 0 {
		t.Error("discarded session must not be archived")
	}
	current, _ := svc.Current()
	if current.ID != fresh.ID || !current.IsActive {
		t.Error("fresh session should replace the current slot")
	}
}

func TestRemoveStockLog(t *testing.T) {
	svc, _ := newLedger(t)
	svc.UpdateStock("p1", StockFieldStart, 5)

	svc.RemoveStockLog("p1")
	sess, _ := svc.Current()
	if _, ok := sess.StockLogs["p1"]; ok {
		t.Error("stock log should be removed from the active session")
	}

	// Removing again, or removing from a closed session, is a no-op.
	svc.RemoveStockLog("p1")
	svc.Close()
	svc.RemoveStockLog("p2")
	sess, _ = svc.Current()
	if _, ok := sess.StockLogs["p2"]; !ok {
		t.Error("closed session snapshot must keep its stock logs")
	}
}

func TestStatePersistsAcrossRestart(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewSessionService(store, testCatalog, nil, 0)
	svc.RecordSale(&RecordSaleRequest{Amount: 4000, Method: model.PaymentTransfer})
	svc.Start() // discard, start shift we will close
	svc.RecordSale(&RecordSaleRequest{Amount: 1200, Method: model.PaymentCash})
	closed, _ := svc.Close()

	reloaded := NewSessionService(store, testCatalog, nil, 0)
	current, ok := reloaded.Current()
	if !ok || current.ID != closed.ID || current.IsActive {
		t.Error("reloaded ledger should resume the persisted closed session")
	}
	if current.ActualCash != 1200 {
		t.Errorf("reloaded totals = %v, want 1200", current.ActualCash)
	}
	history := reloaded.History()
	if len(history) != 1 || history[0].ID != closed.ID {
		t.Error("reloaded ledger should resume the persisted history")
	}
}

func TestCorruptSlotsFallBackToDefaults(t *testing.T) {
	store := repository.NewMemoryStore()
	store.SeedRaw(model.SlotCurrentSession, "{not json")
	store.SeedRaw(model.SlotSessionHistory, "also garbage")

	svc := NewSessionService(store, testCatalog, nil, 0)
	sess, ok := svc.Current()
	if !ok || !sess.IsActive {
		t.Fatal("corrupt current slot should yield a fresh active session")
	}
	if len(svc.History()) != 0 {
		t.Error("corrupt history slot should yield empty history")
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	svc, _ := newLedger(t)
	svc.RecordSale(&RecordSaleRequest{Amount: 100, Method: model.PaymentCash})

	sess, _ := svc.Current()
	sess.Transactions[0].Amount = 999999
	sess.StockLogs["p1"] = model.StockLog{ProductID: "p1", StartQty: 42}

	fresh, _ := svc.Current()
	if fresh.Transactions[0].Amount != 100 {
		t.Error("mutating a snapshot must not affect ledger state")
	}
	if fresh.StockLogs["p1"].StartQty != 0 {
		t.Error("mutating a snapshot's stock logs must not affect ledger state")
	}
}

func errorsIsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
