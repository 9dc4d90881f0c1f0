package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"procureflow-api-server/internal/models"
)

// ErrNotEligible is returned when a dispatch is attempted for a request
// that is not approved, already quoted, or soft-deleted.
var ErrNotEligible = errors.New("request is not eligible for RFQ dispatch")

// DispatchInput carries the supplier terms entered when an approved
// request is sent out for quotation.
type DispatchInput struct {
	Supplier string
	DueDate  string
	Value    float64
}

// RFQDispatcher converts one eligible request into one RFQ. The insert is
// optimistic: a provisional record is visible immediately and is replaced
// by the store-confirmed one, or tagged Failed if the create is rejected.
type RFQDispatcher struct {
	ledger *RequestLedger
	rfqs   *RFQBook
}

func NewRFQDispatcher(ledger *RequestLedger, rfqs *RFQBook) *RFQDispatcher {
	return &RFQDispatcher{ledger: ledger, rfqs: rfqs}
}

// Dispatch creates an RFQ for the given request and marks the request as
// quoted. The eligibility gate makes the operation idempotent at the call
// site: rfqSent only becomes true after a confirmed create.
func (d *RFQDispatcher) Dispatch(ctx context.Context, requestID string, in DispatchInput) (models.RFQ, error) {
	req, ok := d.ledger.Get(requestID)
	if !ok || !d.ledger.Eligible(requestID) {
		return models.RFQ{}, ErrNotEligible
	}

	now := time.Now()
	provisional := models.RFQ{
		RFQID:      newEntityID("RFQ"),
		RequestID:  req.RequestID,
		Supplier:   in.Supplier,
		Department: req.Department,
		Warehouse:  req.Warehouse,
		DueDate:    in.DueDate,
		Value:      in.Value,
		Items:      req.Items,
		Status:     "Pending",
		Priority:   req.Priority,
		IsUrgent:   req.IsUrgent,
		SyncState:  models.SyncProvisional,
		CreatedBy:  req.CreatedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	d.rfqs.insert(provisional)

	confirmed, err := d.rfqs.store.Create(ctx, provisional)
	if err != nil {
		// The placeholder stays visible, tagged Failed so the caller can
		// discard it and dispatch again. The request remains eligible.
		d.rfqs.setSyncState(provisional.RFQID, models.SyncFailed)
		return provisional, fmt.Errorf("failed to create RFQ for request %s: %w", requestID, err)
	}
	confirmed.SyncState = models.SyncConfirmed
	d.rfqs.replace(provisional.RFQID, confirmed)

	if err := d.ledger.MarkRFQSent(ctx, requestID); err != nil {
		log.Printf("CRITICAL: RFQ %s created but failed to persist rfqSent for request %s: %v", confirmed.RFQID, requestID, err)
	}
	return confirmed, nil
}
