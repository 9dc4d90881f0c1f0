package pipeline

import (
	"context"
	"log"
	"sync"
	"time"

	"procureflow-api-server/internal/models"
	"procureflow-api-server/internal/store"
)

// RFQBook owns the in-memory RFQ list. The dispatcher writes new RFQs into
// it; the order synchronizer marks conversions and applies reconciliation
// output. All other components read copies.
type RFQBook struct {
	mu    sync.RWMutex
	store store.RFQStore
	rfqs  []models.RFQ
}

func NewRFQBook(s store.RFQStore) *RFQBook {
	return &RFQBook{store: s}
}

func (b *RFQBook) Load(ctx context.Context) {
	rfqs := b.store.List(ctx)
	b.mu.Lock()
	b.rfqs = rfqs
	b.mu.Unlock()
}

func (b *RFQBook) RFQs() []models.RFQ {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]models.RFQ{}, b.rfqs...)
}

func (b *RFQBook) Get(rfqID string) (models.RFQ, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, q := range b.rfqs {
		if q.RFQID == rfqID {
			return q, true
		}
	}
	return models.RFQ{}, false
}

// MarkDeleted soft-deletes an RFQ. Provisional and failed placeholders
// exist only in memory, so the store is only told about confirmed records.
func (b *RFQBook) MarkDeleted(ctx context.Context, rfqID string) {
	confirmed := false
	if !b.mutate(rfqID, func(q *models.RFQ) bool {
		q.IsDeleted = true
		confirmed = q.SyncState == models.SyncConfirmed
		return true
	}) {
		return
	}
	if !confirmed {
		return
	}
	if err := b.store.Update(ctx, rfqID, store.Fields{"isDeleted": true}); err != nil {
		log.Printf("Failed to persist delete for RFQ %s: %v", rfqID, err)
	}
}

// SetQuoteDocURL attaches an uploaded quote document to a confirmed RFQ.
func (b *RFQBook) SetQuoteDocURL(ctx context.Context, rfqID, url string) {
	if !b.mutate(rfqID, func(q *models.RFQ) bool {
		if q.IsDeleted {
			return false
		}
		q.QuoteDocURL = url
		return true
	}) {
		return
	}
	if err := b.store.Update(ctx, rfqID, store.Fields{"quoteDocURL": url}); err != nil {
		log.Printf("Failed to persist quote document URL for RFQ %s: %v", rfqID, err)
	}
}

// insert prepends an RFQ, newest first.
func (b *RFQBook) insert(rfq models.RFQ) {
	b.mu.Lock()
	b.rfqs = append([]models.RFQ{rfq}, b.rfqs...)
	b.mu.Unlock()
}

// replace swaps a placeholder for the store-confirmed record under the
// same RFQ id.
func (b *RFQBook) replace(rfqID string, rfq models.RFQ) {
	b.mutate(rfqID, func(q *models.RFQ) bool {
		*q = rfq
		return true
	})
}

func (b *RFQBook) setSyncState(rfqID, state string) {
	b.mutate(rfqID, func(q *models.RFQ) bool {
		q.SyncState = state
		return true
	})
}

// markConverted flips the RFQ to its converted state and persists the
// delta. The in-memory flags are set regardless of the persistence
// outcome; reconciliation repairs the store-visible drift later.
func (b *RFQBook) markConverted(ctx context.Context, rfqID, orderID string) error {
	if !b.mutate(rfqID, func(q *models.RFQ) bool {
		q.Status = models.RFQStatusSentToPO
		q.SentToOrder = true
		q.OrderID = orderID
		return true
	}) {
		return nil
	}
	return b.store.Update(ctx, rfqID, store.Fields{
		"status":      models.RFQStatusSentToPO,
		"sentToOrder": true,
		"orderID":     orderID,
	})
}

// align applies one reconciliation correction in place, under the book's
// lock. A wholesale list swap here could drop an RFQ inserted between the
// reconciliation snapshot and the write-back; a per-record mutation cannot.
func (b *RFQBook) align(rfqID, orderID string) {
	b.mutate(rfqID, func(q *models.RFQ) bool {
		q.Status = models.RFQStatusSentToPO
		q.SentToOrder = true
		q.OrderID = orderID
		return true
	})
}

func (b *RFQBook) mutate(rfqID string, fn func(*models.RFQ) bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.rfqs {
		if b.rfqs[i].RFQID == rfqID {
			if !fn(&b.rfqs[i]) {
				return false
			}
			b.rfqs[i].UpdatedAt = time.Now()
			return true
		}
	}
	return false
}
