// Package pipeline implements the procurement flow: a request is approved,
// dispatched as an RFQ to a supplier, and converted into a purchase order,
// with a reconciliation pass that keeps RFQ records consistent with the
// order list after partial failures.
//
// Each component owns its entity list outright (the dispatcher and the
// synchronizer share the RFQ book). Store failures on mutations are logged
// and never rolled back; the in-memory state stays the source of truth for
// the session.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"procureflow-api-server/internal/models"
	"procureflow-api-server/internal/store"

	"github.com/google/uuid"
)

func newEntityID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.New().String()[:8]))
}

// RequestLedger owns the procurement request list and is the sole mutator
// of approval state.
type RequestLedger struct {
	mu       sync.RWMutex
	store    store.RequestStore
	requests []models.ProcurementRequest
}

func NewRequestLedger(s store.RequestStore) *RequestLedger {
	return &RequestLedger{store: s}
}

// Load replaces the in-memory list with the store's current snapshot.
func (l *RequestLedger) Load(ctx context.Context) {
	requests := l.store.List(ctx)
	l.mu.Lock()
	l.requests = requests
	l.mu.Unlock()
}

// Requests returns a copy of the current list, newest first.
func (l *RequestLedger) Requests() []models.ProcurementRequest {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.ProcurementRequest{}, l.requests...)
}

func (l *RequestLedger) Get(requestID string) (models.ProcurementRequest, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.requests {
		if r.RequestID == requestID {
			return r, true
		}
	}
	return models.ProcurementRequest{}, false
}

// Create persists a new request and inserts the confirmed record at the
// front of the list.
func (l *RequestLedger) Create(ctx context.Context, req models.ProcurementRequest) (models.ProcurementRequest, error) {
	if req.RequestID == "" {
		req.RequestID = newEntityID("REQ")
	}
	confirmed, err := l.store.Create(ctx, req)
	if err != nil {
		return models.ProcurementRequest{}, fmt.Errorf("failed to create procurement request: %w", err)
	}
	l.mu.Lock()
	l.requests = append([]models.ProcurementRequest{confirmed}, l.requests...)
	l.mu.Unlock()
	return confirmed, nil
}

// SetApprovalStatus moves a request through the approval state machine.
// No-op if the request is unknown or soft-deleted. A persistence failure
// keeps the in-memory change.
func (l *RequestLedger) SetApprovalStatus(ctx context.Context, requestID, status string) {
	if !l.mutate(requestID, func(r *models.ProcurementRequest) bool {
		if r.IsDeleted {
			return false
		}
		r.ApprovalStatus = status
		return true
	}) {
		return
	}
	if err := l.store.Update(ctx, requestID, store.Fields{"approvalStatus": status}); err != nil {
		log.Printf("Failed to persist approval status %q for request %s: %v", status, requestID, err)
	}
}

// MarkDeleted soft-deletes a request. The record is kept for display and
// KPI history; approval state and the rfqSent flag are untouched.
func (l *RequestLedger) MarkDeleted(ctx context.Context, requestID string) {
	if !l.mutate(requestID, func(r *models.ProcurementRequest) bool {
		r.IsDeleted = true
		return true
	}) {
		return
	}
	if err := l.store.Update(ctx, requestID, store.Fields{"isDeleted": true}); err != nil {
		log.Printf("Failed to persist delete for request %s: %v", requestID, err)
	}
}

// MarkRFQSent records that an RFQ now exists for this request. The flag is
// monotonic: nothing in the pipeline ever resets it. Called by the RFQ
// dispatcher after a confirmed create; the returned error only reports the
// persistence leg, the in-memory flag is already set.
func (l *RequestLedger) MarkRFQSent(ctx context.Context, requestID string) error {
	if !l.mutate(requestID, func(r *models.ProcurementRequest) bool {
		r.RFQSent = true
		return true
	}) {
		return nil
	}
	return l.store.Update(ctx, requestID, store.Fields{"rfqSent": true})
}

// Eligible is the dispatch gate: approved, not yet quoted, not deleted.
func (l *RequestLedger) Eligible(requestID string) bool {
	r, ok := l.Get(requestID)
	if !ok {
		return false
	}
	return r.ApprovalStatus == models.ApprovalApproved && !r.RFQSent && !r.IsDeleted
}

func (l *RequestLedger) mutate(requestID string, fn func(*models.ProcurementRequest) bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.requests {
		if l.requests[i].RequestID == requestID {
			if !fn(&l.requests[i]) {
				return false
			}
			l.requests[i].UpdatedAt = time.Now()
			return true
		}
	}
	return false
}
