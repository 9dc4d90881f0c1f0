package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"procureflow-api-server/internal/models"
	"procureflow-api-server/internal/store"
)

// OrderSynchronizer owns the order list. It converts RFQs into orders
// exactly once and runs the reconciliation pass after every operation
// that changes the order list.
type OrderSynchronizer struct {
	mu     sync.RWMutex
	store  store.OrderStore
	rfqs   *RFQBook
	orders []models.Order
}

func NewOrderSynchronizer(s store.OrderStore, rfqs *RFQBook) *OrderSynchronizer {
	return &OrderSynchronizer{store: s, rfqs: rfqs}
}

func (s *OrderSynchronizer) Load(ctx context.Context) {
	orders := s.store.List(ctx)
	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	s.Reconcile()
}

func (s *OrderSynchronizer) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Order{}, s.orders...)
}

func (s *OrderSynchronizer) Get(orderID string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.OrderID == orderID {
			return o, true
		}
	}
	return models.Order{}, false
}

// OrderForRFQ finds the order created from a given RFQ, if any.
func (s *OrderSynchronizer) OrderForRFQ(rfqID string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.RFQID == rfqID {
			return o, true
		}
	}
	return models.Order{}, false
}

// SendToOrder converts an RFQ into a purchase order. Silent no-op if the
// RFQ is unknown, soft-deleted, or already converted; the already-converted
// check consults the RFQ's own flags AND the order list, so stale flags on
// the RFQ cannot cause a duplicate order.
//
// Two independent store writes happen per conversion (create order, update
// RFQ). A failure on the second leaves the order created and the RFQ
// unmarked in the store; the reconciliation pass converges it.
func (s *OrderSynchronizer) SendToOrder(ctx context.Context, rfqID string) (models.Order, error) {
	rfq, ok := s.rfqs.Get(rfqID)
	if !ok || rfq.IsDeleted {
		return models.Order{}, nil
	}
	if rfq.Converted() {
		o, _ := s.OrderForRFQ(rfqID)
		return o, nil
	}
	if o, ok := s.OrderForRFQ(rfqID); ok {
		return o, nil
	}

	confirmed, err := s.store.Create(ctx, orderFromRFQ(rfq))
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to create order for RFQ %s: %w", rfqID, err)
	}
	s.insertOrder(confirmed)

	if err := s.rfqs.markConverted(ctx, rfqID, confirmed.OrderID); err != nil {
		log.Printf("CRITICAL: order %s created but failed to persist converted state for RFQ %s: %v", confirmed.OrderID, rfqID, err)
	}
	s.Reconcile()
	return confirmed, nil
}

// SetApproval moves an order through the approval state machine. No-op if
// the order is unknown or soft-deleted.
func (s *OrderSynchronizer) SetApproval(ctx context.Context, orderID, status string) {
	if !s.mutate(orderID, func(o *models.Order) bool {
		if o.IsDeleted {
			return false
		}
		o.Approvals = status
		return true
	}) {
		return
	}
	if err := s.store.Update(ctx, orderID, store.Fields{"approvals": status}); err != nil {
		log.Printf("Failed to persist approval %q for order %s: %v", status, orderID, err)
	}
}

// MarkReceived closes the delivery loop on an order.
func (s *OrderSynchronizer) MarkReceived(ctx context.Context, orderID string) {
	if !s.mutate(orderID, func(o *models.Order) bool {
		if o.IsDeleted {
			return false
		}
		o.Status = models.OrderStatusReceived
		return true
	}) {
		return
	}
	if err := s.store.Update(ctx, orderID, store.Fields{"status": models.OrderStatusReceived}); err != nil {
		log.Printf("Failed to persist received status for order %s: %v", orderID, err)
	}
}

// MarkDeleted soft-deletes an order.
func (s *OrderSynchronizer) MarkDeleted(ctx context.Context, orderID string) {
	if !s.mutate(orderID, func(o *models.Order) bool {
		o.IsDeleted = true
		return true
	}) {
		return
	}
	if err := s.store.Update(ctx, orderID, store.Fields{"isDeleted": true}); err != nil {
		log.Printf("Failed to persist delete for order %s: %v", orderID, err)
	}
	s.Reconcile()
}

// Reconcile applies the reconciliation pass to the shared RFQ book. Each
// correction lands per record through the book's own lock, so an RFQ
// dispatched while the pass runs survives it. The correction is local
// only: the store-visible RFQ state converges the next time a conversion
// persists, not here.
func (s *OrderSynchronizer) Reconcile() int {
	pending := alignments(s.Orders(), s.rfqs.RFQs())
	for rfqID, orderID := range pending {
		s.rfqs.align(rfqID, orderID)
	}
	return len(pending)
}

func orderFromRFQ(rfq models.RFQ) models.Order {
	priority := rfq.Priority
	if priority == "" {
		if rfq.IsUrgent {
			priority = models.PriorityUrgent
		} else {
			priority = models.PriorityNormal
		}
	}
	now := time.Now()
	return models.Order{
		OrderID:    newEntityID("PO"),
		RFQID:      rfq.RFQID,
		RequestID:  rfq.RequestID,
		Supplier:   rfq.Supplier,
		Department: rfq.Department,
		Warehouse:  rfq.Warehouse,
		Date:       now.Format("2006-01-02"),
		DueDate:    rfq.DueDate,
		TotalValue: rfq.Value,
		Priority:   priority,
		Items:      rfq.Items,
		Status:     models.OrderStatusOpen,
		Approvals:  models.ApprovalPending,
		CreatedBy:  rfq.CreatedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// insertOrder prepends, de-duplicated by order id.
func (s *OrderSynchronizer) insertOrder(order models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := []models.Order{order}
	for _, o := range s.orders {
		if o.OrderID != order.OrderID {
			kept = append(kept, o)
		}
	}
	s.orders = kept
}

func (s *OrderSynchronizer) mutate(orderID string, fn func(*models.Order) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			if !fn(&s.orders[i]) {
				return false
			}
			s.orders[i].UpdatedAt = time.Now()
			return true
		}
	}
	return false
}
