package pipeline

import (
	"context"
	"errors"
	"sync"

	"procureflow-api-server/internal/models"
	"procureflow-api-server/internal/store"
)

// In-memory store fakes. Create assigns nothing (ids come from the
// pipeline); Update records the partial payloads so tests can assert on
// what would be persisted. Setting failCreate/failUpdate simulates
// transport errors.

var errStore = errors.New("store unavailable")

type fakeRequestStore struct {
	mu         sync.Mutex
	records    []models.ProcurementRequest
	updates    map[string][]store.Fields
	failCreate bool
	failUpdate bool
}

func newFakeRequestStore(records ...models.ProcurementRequest) *fakeRequestStore {
	return &fakeRequestStore{records: records, updates: map[string][]store.Fields{}}
}

func (s *fakeRequestStore) List(ctx context.Context) []models.ProcurementRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ProcurementRequest{}, s.records...)
}

func (s *fakeRequestStore) Create(ctx context.Context, req models.ProcurementRequest) (models.ProcurementRequest, error) {
	if s.failCreate {
		return models.ProcurementRequest{}, errStore
	}
	s.mu.Lock()
	s.records = append(s.records, req)
	s.mu.Unlock()
	return req, nil
}

func (s *fakeRequestStore) Update(ctx context.Context, requestID string, fields store.Fields) error {
	if s.failUpdate {
		return errStore
	}
	s.mu.Lock()
	s.updates[requestID] = append(s.updates[requestID], fields)
	s.mu.Unlock()
	return nil
}

type fakeRFQStore struct {
	mu         sync.Mutex
	records    []models.RFQ
	updates    map[string][]store.Fields
	failCreate bool
	failUpdate bool
}

func newFakeRFQStore(records ...models.RFQ) *fakeRFQStore {
	return &fakeRFQStore{records: records, updates: map[string][]store.Fields{}}
}

func (s *fakeRFQStore) List(ctx context.Context) []models.RFQ {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.RFQ{}, s.records...)
}

func (s *fakeRFQStore) Create(ctx context.Context, rfq models.RFQ) (models.RFQ, error) {
	if s.failCreate {
		return models.RFQ{}, errStore
	}
	rfq.SyncState = models.SyncConfirmed
	s.mu.Lock()
	s.records = append(s.records, rfq)
	s.mu.Unlock()
	return rfq, nil
}

func (s *fakeRFQStore) Update(ctx context.Context, rfqID string, fields store.Fields) error {
	if s.failUpdate {
		return errStore
	}
	s.mu.Lock()
	s.updates[rfqID] = append(s.updates[rfqID], fields)
	s.mu.Unlock()
	return nil
}

type fakeOrderStore struct {
	mu         sync.Mutex
	records    []models.Order
	updates    map[string][]store.Fields
	failCreate bool
	failUpdate bool
}

func newFakeOrderStore(records ...models.Order) *fakeOrderStore {
	return &fakeOrderStore{records: records, updates: map[string][]store.Fields{}}
}

func (s *fakeOrderStore) List(ctx context.Context) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order{}, s.records...)
}

func (s *fakeOrderStore) Create(ctx context.Context, order models.Order) (models.Order, error) {
	if s.failCreate {
		return models.Order{}, errStore
	}
	s.mu.Lock()
	s.records = append(s.records, order)
	s.mu.Unlock()
	return order, nil
}

func (s *fakeOrderStore) Update(ctx context.Context, orderID string, fields store.Fields) error {
	if s.failUpdate {
		return errStore
	}
	s.mu.Lock()
	s.updates[orderID] = append(s.updates[orderID], fields)
	s.mu.Unlock()
	return nil
}

func approvedRequest(requestID string) models.ProcurementRequest {
	return models.ProcurementRequest{
		RequestID:      requestID,
		Date:           "2026-08-29",
		Department:     "Ops",
		Warehouse:      "Main",
		Items:          []models.LineItem{{SKU: "SKU-1", Quantity: 2, Unit: "pcs"}},
		Status:         "Pending",
		Priority:       models.PriorityHigh,
		ApprovalStatus: models.ApprovalApproved,
	}
}
