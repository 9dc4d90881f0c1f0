package pipeline

import (
	"context"
	"fmt"
	"testing"

	"procureflow-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmedRFQ(rfqID string) models.RFQ {
	return models.RFQ{
		RFQID:     rfqID,
		RequestID: "REQ-1",
		Supplier:  "Acme Supplies",
		Value:     900,
		Priority:  models.PriorityHigh,
		Status:    "Pending",
		SyncState: models.SyncConfirmed,
	}
}

func newSyncFixture(t *testing.T, rfqs ...models.RFQ) (*OrderSynchronizer, *RFQBook, *fakeOrderStore, *fakeRFQStore) {
	t.Helper()
	rfqStore := newFakeRFQStore(rfqs...)
	book := NewRFQBook(rfqStore)
	book.Load(context.Background())
	orderStore := newFakeOrderStore()
	sync := NewOrderSynchronizer(orderStore, book)
	sync.Load(context.Background())
	return sync, book, orderStore, rfqStore
}

func TestSendToOrderCreatesOrder(t *testing.T) {
	sync, book, orderStore, rfqStore := newSyncFixture(t, confirmedRFQ("RFQ-1"))

	order, err := sync.SendToOrder(context.Background(), "RFQ-1")
	require.NoError(t, err)

	assert.Equal(t, "RFQ-1", order.RFQID)
	assert.Equal(t, "REQ-1", order.RequestID)
	assert.Equal(t, 900.0, order.TotalValue)
	assert.Equal(t, models.PriorityHigh, order.Priority)
	assert.Equal(t, models.OrderStatusOpen, order.Status)
	assert.Equal(t, models.ApprovalPending, order.Approvals)
	require.Len(t, orderStore.records, 1)

	// The RFQ is aligned and the delta persisted.
	rfq, _ := book.Get("RFQ-1")
	assert.True(t, rfq.SentToOrder)
	assert.Equal(t, order.OrderID, rfq.OrderID)
	assert.Equal(t, models.RFQStatusSentToPO, rfq.Status)
	require.Len(t, rfqStore.updates["RFQ-1"], 1)
	assert.Equal(t, true, rfqStore.updates["RFQ-1"][0]["sentToOrder"])
}

func TestSendToOrderIdempotent(t *testing.T) {
	sync, _, orderStore, _ := newSyncFixture(t, confirmedRFQ("RFQ-1"))

	first, err := sync.SendToOrder(context.Background(), "RFQ-1")
	require.NoError(t, err)

	second, err := sync.SendToOrder(context.Background(), "RFQ-1")
	require.NoError(t, err)

	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Len(t, orderStore.records, 1, "exactly one order per RFQ")
	assert.Len(t, sync.Orders(), 1)
}

func TestSendToOrderSkipsDeletedRFQ(t *testing.T) {
	rfq := confirmedRFQ("RFQ-1")
	rfq.IsDeleted = true
	sync, _, orderStore, _ := newSyncFixture(t, rfq)

	order, err := sync.SendToOrder(context.Background(), "RFQ-1")

	require.NoError(t, err)
	assert.Empty(t, order.OrderID)
	assert.Empty(t, orderStore.records)
}

func TestSendToOrderTrustsOrderListOverStaleFlags(t *testing.T) {
	// The RFQ's own flags are stale (not converted), but an order for it
	// already exists. The order list is authoritative: no duplicate.
	existing := models.Order{OrderID: "PO-OLD", RFQID: "RFQ-1", RequestID: "REQ-1", Status: models.OrderStatusOpen}
	rfqStore := newFakeRFQStore(confirmedRFQ("RFQ-1"))
	book := NewRFQBook(rfqStore)
	book.Load(context.Background())
	orderStore := newFakeOrderStore(existing)
	sync := NewOrderSynchronizer(orderStore, book)
	sync.Load(context.Background())

	order, err := sync.SendToOrder(context.Background(), "RFQ-1")

	require.NoError(t, err)
	assert.Equal(t, "PO-OLD", order.OrderID)
	assert.Len(t, orderStore.records, 1)
}

func TestSendToOrderHealsRFQUpdateFailure(t *testing.T) {
	sync, book, orderStore, rfqStore := newSyncFixture(t, confirmedRFQ("RFQ-1"))
	rfqStore.failUpdate = true

	order, err := sync.SendToOrder(context.Background(), "RFQ-1")

	// Order created, RFQ persistence leg failed: accepted as transient.
	require.NoError(t, err)
	require.Len(t, orderStore.records, 1)

	// In memory the RFQ already converged via the reconciliation pass.
	rfq, _ := book.Get("RFQ-1")
	assert.True(t, rfq.SentToOrder)
	assert.Equal(t, order.OrderID, rfq.OrderID)
	assert.Equal(t, models.RFQStatusSentToPO, rfq.Status)

	// And a second call still creates nothing.
	_, err = sync.SendToOrder(context.Background(), "RFQ-1")
	require.NoError(t, err)
	assert.Len(t, orderStore.records, 1)
}

func TestSendToOrderCreateFailure(t *testing.T) {
	sync, book, orderStore, _ := newSyncFixture(t, confirmedRFQ("RFQ-1"))
	orderStore.failCreate = true

	_, err := sync.SendToOrder(context.Background(), "RFQ-1")

	require.Error(t, err)
	assert.Empty(t, sync.Orders())
	rfq, _ := book.Get("RFQ-1")
	assert.False(t, rfq.SentToOrder, "a failed create leaves the RFQ convertible")
}

func TestOrderPriorityFallsBackToUrgencyFlag(t *testing.T) {
	rfq := confirmedRFQ("RFQ-1")
	rfq.Priority = ""
	rfq.IsUrgent = true
	sync, _, _, _ := newSyncFixture(t, rfq)

	order, err := sync.SendToOrder(context.Background(), "RFQ-1")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityUrgent, order.Priority)
}

func TestOrderPriorityDefaultsToNormal(t *testing.T) {
	rfq := confirmedRFQ("RFQ-1")
	rfq.Priority = ""
	sync, _, _, _ := newSyncFixture(t, rfq)

	order, err := sync.SendToOrder(context.Background(), "RFQ-1")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityNormal, order.Priority)
}

func TestSetApprovalAndMarkReceived(t *testing.T) {
	sync, _, orderStore, _ := newSyncFixture(t, confirmedRFQ("RFQ-1"))
	order, err := sync.SendToOrder(context.Background(), "RFQ-1")
	require.NoError(t, err)

	sync.SetApproval(context.Background(), order.OrderID, models.ApprovalApproved)
	sync.MarkReceived(context.Background(), order.OrderID)

	got, _ := sync.Get(order.OrderID)
	assert.Equal(t, models.ApprovalApproved, got.Approvals)
	assert.Equal(t, models.OrderStatusReceived, got.Status)
	assert.Len(t, orderStore.updates[order.OrderID], 2)
}

func TestMutationsAreNoOpsOnDeletedOrder(t *testing.T) {
	sync, _, orderStore, _ := newSyncFixture(t, confirmedRFQ("RFQ-1"))
	order, err := sync.SendToOrder(context.Background(), "RFQ-1")
	require.NoError(t, err)

	sync.MarkDeleted(context.Background(), order.OrderID)
	persisted := len(orderStore.updates[order.OrderID])

	sync.SetApproval(context.Background(), order.OrderID, models.ApprovalApproved)
	sync.MarkReceived(context.Background(), order.OrderID)

	got, ok := sync.Get(order.OrderID)
	require.True(t, ok, "soft delete keeps the order in the list")
	assert.True(t, got.IsDeleted)
	assert.Equal(t, models.ApprovalPending, got.Approvals)
	assert.Equal(t, models.OrderStatusOpen, got.Status)
	assert.Len(t, orderStore.updates[order.OrderID], persisted, "no writes after delete")
}

func TestReconcileConvergesToFixpoint(t *testing.T) {
	orders := []models.Order{
		{OrderID: "PO-1", RFQID: "RFQ-1"},
		{OrderID: "PO-2", RFQID: "RFQ-2"},
		{OrderID: "PO-3", RFQID: ""},
	}
	rfqs := []models.RFQ{
		{RFQID: "RFQ-1"},                                       // fully stale
		{RFQID: "RFQ-2", SentToOrder: true, OrderID: "PO-2"},   // status missing
		{RFQID: "RFQ-3"},                                       // no order, untouched
	}

	updated, changed := Reconcile(orders, rfqs)
	assert.Equal(t, 2, changed)

	for _, o := range orders {
		if o.RFQID == "" {
			continue
		}
		for _, q := range updated {
			if q.RFQID != o.RFQID {
				continue
			}
			assert.True(t, q.SentToOrder)
			assert.Equal(t, o.OrderID, q.OrderID)
			assert.Equal(t, models.RFQStatusSentToPO, q.Status)
		}
	}

	// RFQ-3 has no order and stays untouched.
	assert.False(t, updated[2].SentToOrder)
	assert.Empty(t, updated[2].OrderID)

	// Second pass is a fixpoint.
	again, changed := Reconcile(orders, updated)
	assert.Equal(t, 0, changed)
	assert.Equal(t, updated, again)
}

func TestReconcileKeepsRFQsInsertedDuringPass(t *testing.T) {
	syncr, book, _, _ := newSyncFixture(t)

	// Every insert arrives misaligned against a pre-existing order, so the
	// racing reconciliation passes always have corrections to apply.
	const n = 200
	for i := 0; i < n; i++ {
		syncr.insertOrder(models.Order{OrderID: fmt.Sprintf("PO-%d", i), RFQID: fmt.Sprintf("RFQ-%d", i)})
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			book.insert(confirmedRFQ(fmt.Sprintf("RFQ-%d", i)))
			syncr.Reconcile()
		}
	}()
	for i := 0; i < n; i++ {
		syncr.Reconcile()
	}
	<-done
	syncr.Reconcile()

	rfqs := book.RFQs()
	require.Len(t, rfqs, n, "an RFQ inserted mid-pass must stay in the book")
	for _, q := range rfqs {
		assert.True(t, q.SentToOrder, "RFQ %s not aligned", q.RFQID)
	}
}

func TestReconcileEmptyInputs(t *testing.T) {
	updated, changed := Reconcile(nil, nil)
	assert.Equal(t, 0, changed)
	assert.Empty(t, updated)

	updated, changed = Reconcile(nil, []models.RFQ{{RFQID: "RFQ-1"}})
	assert.Equal(t, 0, changed)
	assert.Len(t, updated, 1)
}

// Full flow: approve, dispatch, convert, convert again.
func TestApproveDispatchConvertScenario(t *testing.T) {
	req := approvedRequest("REQ-1")
	req.ApprovalStatus = models.ApprovalPending
	ledger := NewRequestLedger(newFakeRequestStore(req))
	ledger.Load(context.Background())
	book := NewRFQBook(newFakeRFQStore())
	dispatcher := NewRFQDispatcher(ledger, book)
	orderStore := newFakeOrderStore()
	sync := NewOrderSynchronizer(orderStore, book)

	// Pending request: dispatch rejected.
	_, err := dispatcher.Dispatch(context.Background(), "REQ-1", DispatchInput{Supplier: "Acme"})
	require.ErrorIs(t, err, ErrNotEligible)

	// Approve, then dispatch.
	ledger.SetApprovalStatus(context.Background(), "REQ-1", models.ApprovalApproved)
	rfq, err := dispatcher.Dispatch(context.Background(), "REQ-1", DispatchInput{Supplier: "Acme", Value: 500})
	require.NoError(t, err)
	assert.Equal(t, "REQ-1", rfq.RequestID)
	got, _ := ledger.Get("REQ-1")
	assert.True(t, got.RFQSent)

	// Convert.
	order, err := sync.SendToOrder(context.Background(), rfq.RFQID)
	require.NoError(t, err)
	assert.Equal(t, rfq.RFQID, order.RFQID)
	aligned, _ := book.Get(rfq.RFQID)
	assert.True(t, aligned.SentToOrder)
	assert.Equal(t, order.OrderID, aligned.OrderID)

	// Converting again creates no second order.
	_, err = sync.SendToOrder(context.Background(), rfq.RFQID)
	require.NoError(t, err)
	assert.Len(t, orderStore.records, 1)
}
