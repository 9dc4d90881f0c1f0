// Package aggregate derives display numbers from snapshots of the
// procurement lists. Everything here is pure: no state, no store calls,
// no mutation of the slices it is handed.
package aggregate

import "procureflow-api-server/internal/models"

// Labels that count as closed for the "open" KPI. Orders and requests
// share the same set.
var closedLabels = map[string]bool{
	"Closed":   true,
	"Canceled": true,
	"Done":     true,
}

// RequestKPIs are the dashboard counters for requests. Total counts
// soft-deleted records too; the history cards on the dashboard include
// them deliberately.
type RequestKPIs struct {
	Total  int `json:"total"`
	Open   int `json:"open"`
	Today  int `json:"today"`
	Urgent int `json:"urgent"`
}

func RequestCounters(requests []models.ProcurementRequest, today string) RequestKPIs {
	k := RequestKPIs{Total: len(requests)}
	for _, r := range requests {
		if !closedLabels[r.Status] {
			k.Open++
		}
		if r.Date == today {
			k.Today++
		}
		if r.Priority == models.PriorityUrgent || r.IsUrgent {
			k.Urgent++
		}
	}
	return k
}

type OrderKPIs struct {
	Total  int `json:"total"`
	Open   int `json:"open"`
	Today  int `json:"today"`
	Urgent int `json:"urgent"`
}

func OrderCounters(orders []models.Order, today string) OrderKPIs {
	k := OrderKPIs{Total: len(orders)}
	for _, o := range orders {
		if !closedLabels[o.Status] {
			k.Open++
		}
		if o.Date == today {
			k.Today++
		}
		if o.Priority == models.PriorityUrgent {
			k.Urgent++
		}
	}
	return k
}
