// Package store is the persistence boundary for procurement entities.
// Each collection exposes the same three operations: List, Create, Update.
// List degrades silently to the last good snapshot on transport errors;
// Create and Update surface their errors and leave rollback decisions to
// the caller.
package store

import (
	"context"

	"procureflow-api-server/internal/models"
)

// Fields is a partial-update payload: only the named fields change.
type Fields map[string]interface{}

type RequestStore interface {
	List(ctx context.Context) []models.ProcurementRequest
	Create(ctx context.Context, req models.ProcurementRequest) (models.ProcurementRequest, error)
	Update(ctx context.Context, requestID string, fields Fields) error
}

type RFQStore interface {
	List(ctx context.Context) []models.RFQ
	Create(ctx context.Context, rfq models.RFQ) (models.RFQ, error)
	Update(ctx context.Context, rfqID string, fields Fields) error
}

type OrderStore interface {
	List(ctx context.Context) []models.Order
	Create(ctx context.Context, order models.Order) (models.Order, error)
	Update(ctx context.Context, orderID string, fields Fields) error
}
