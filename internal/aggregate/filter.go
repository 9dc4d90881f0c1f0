package aggregate

import (
	"strings"

	"procureflow-api-server/internal/models"
)

// Wildcard matches any value for the status/priority/department filters.
const Wildcard = "All"

// Filter is the list-view filter set. Search is a case-insensitive
// substring match over a fixed set of textual fields per entity; the other
// three are exact matches unless set to the wildcard (or left empty).
type Filter struct {
	Search     string
	Status     string
	Priority   string
	Department string
}

func (f Filter) matchExact(status, priority, department string) bool {
	return wildcardEqual(f.Status, status) &&
		wildcardEqual(f.Priority, priority) &&
		wildcardEqual(f.Department, department)
}

func wildcardEqual(want, got string) bool {
	return want == "" || want == Wildcard || want == got
}

func searchMatch(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func MatchRequest(r models.ProcurementRequest, f Filter) bool {
	return f.matchExact(r.Status, r.Priority, r.Department) &&
		searchMatch(f.Search, r.RequestID, r.Department, r.Warehouse, r.RelatedTo, r.Status)
}

func FilterRequests(requests []models.ProcurementRequest, f Filter) []models.ProcurementRequest {
	matched := []models.ProcurementRequest{}
	for _, r := range requests {
		if MatchRequest(r, f) {
			matched = append(matched, r)
		}
	}
	return matched
}

func MatchRFQ(q models.RFQ, f Filter) bool {
	return f.matchExact(q.Status, q.Priority, q.Department) &&
		searchMatch(f.Search, q.RFQID, q.RequestID, q.Supplier, q.Department, q.Warehouse, q.Status)
}

func FilterRFQs(rfqs []models.RFQ, f Filter) []models.RFQ {
	matched := []models.RFQ{}
	for _, q := range rfqs {
		if MatchRFQ(q, f) {
			matched = append(matched, q)
		}
	}
	return matched
}

func MatchOrder(o models.Order, f Filter) bool {
	return f.matchExact(o.Status, o.Priority, o.Department) &&
		searchMatch(f.Search, o.OrderID, o.RFQID, o.RequestID, o.Supplier, o.Department, o.Warehouse, o.Status)
}

func FilterOrders(orders []models.Order, f Filter) []models.Order {
	matched := []models.Order{}
	for _, o := range orders {
		if MatchOrder(o, f) {
			matched = append(matched, o)
		}
	}
	return matched
}
