package pipeline

import "procureflow-api-server/internal/models"

// alignments maps each RFQ whose converted flags disagree with an
// existing order to the order id that should win. The first order seen
// for an RFQ is authoritative.
func alignments(orders []models.Order, rfqs []models.RFQ) map[string]string {
	orderByRFQ := make(map[string]string, len(orders))
	for _, o := range orders {
		if o.RFQID == "" {
			continue
		}
		if _, seen := orderByRFQ[o.RFQID]; !seen {
			orderByRFQ[o.RFQID] = o.OrderID
		}
	}

	pending := make(map[string]string)
	for _, q := range rfqs {
		orderID, ok := orderByRFQ[q.RFQID]
		if !ok {
			continue
		}
		if q.SentToOrder && q.OrderID == orderID && q.Status == models.RFQStatusSentToPO {
			continue
		}
		pending[q.RFQID] = orderID
	}
	return pending
}

// Reconcile aligns RFQ records with the orders that exist for them. For
// every RFQ that some order references, the aligned state is
// sentToOrder=true, orderID set, status "Sent to PO". The pass is pure and
// idempotent: applying it twice with the same order list changes nothing,
// which is what lets it heal a conversion whose RFQ-update leg failed.
// Returns the updated list and the number of RFQs that changed.
func Reconcile(orders []models.Order, rfqs []models.RFQ) ([]models.RFQ, int) {
	pending := alignments(orders, rfqs)

	updated := append([]models.RFQ{}, rfqs...)
	changed := 0
	for i, q := range updated {
		orderID, ok := pending[q.RFQID]
		if !ok {
			continue
		}
		updated[i].SentToOrder = true
		updated[i].OrderID = orderID
		updated[i].Status = models.RFQStatusSentToPO
		changed++
	}
	return updated, changed
}
