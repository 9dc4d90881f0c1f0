package handlers

import (
	"net/http"
	"time"

	"procureflow-api-server/internal/aggregate"
	"procureflow-api-server/internal/pipeline"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Ledger       *pipeline.RequestLedger
	RFQs         *pipeline.RFQBook
	Synchronizer *pipeline.OrderSynchronizer
}

// GetDashboard returns the KPI counters and department breakdowns for the
// current snapshot of all three lists.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	today := time.Now().Format("2006-01-02")
	requests := h.Ledger.Requests()
	orders := h.Synchronizer.Orders()

	c.JSON(http.StatusOK, gin.H{
		"requests":             aggregate.RequestCounters(requests, today),
		"orders":               aggregate.OrderCounters(orders, today),
		"rfqCount":             len(h.RFQs.RFQs()),
		"requestsByDepartment": aggregate.RequestsByDepartment(requests),
		"ordersByDepartment":   aggregate.OrdersByDepartment(orders),
	})
}
