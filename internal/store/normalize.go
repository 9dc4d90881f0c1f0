package store

import (
	"time"

	"procureflow-api-server/internal/models"
)

// Records written by older clients carry inconsistent priority/approval
// fields. Normalization happens once, here at the store boundary, so the
// pipeline and the aggregation engine can rely on one canonical shape.

const dateLayout = "2006-01-02"

func normalizePriority(priority string, urgent bool) (string, bool) {
	if priority == "" {
		if urgent {
			return models.PriorityUrgent, true
		}
		return models.PriorityNormal, false
	}
	return priority, urgent || priority == models.PriorityUrgent
}

func normalizeDate(date string) string {
	if date == "" {
		return time.Now().Format(dateLayout)
	}
	return date
}

// NormalizeRequest fills defaults on a request read from or headed to the
// store: approval defaults to Pending, the urgency flag follows priority.
func NormalizeRequest(r models.ProcurementRequest) models.ProcurementRequest {
	if r.ApprovalStatus == "" {
		r.ApprovalStatus = models.ApprovalPending
	}
	r.Priority, r.IsUrgent = normalizePriority(r.Priority, r.IsUrgent)
	r.Date = normalizeDate(r.Date)
	return r
}

func NormalizeRFQ(q models.RFQ) models.RFQ {
	q.Priority, q.IsUrgent = normalizePriority(q.Priority, q.IsUrgent)
	// A record that exists in the store is by definition not provisional.
	if q.SyncState == "" {
		q.SyncState = models.SyncConfirmed
	}
	return q
}

func NormalizeOrder(o models.Order) models.Order {
	if o.Approvals == "" {
		o.Approvals = models.ApprovalPending
	}
	if o.Status == "" {
		o.Status = models.OrderStatusOpen
	}
	o.Priority, _ = normalizePriority(o.Priority, false)
	o.Date = normalizeDate(o.Date)
	return o
}
