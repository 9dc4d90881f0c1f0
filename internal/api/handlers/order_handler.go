package handlers

import (
	"net/http"

	"procureflow-api-server/internal/aggregate"
	"procureflow-api-server/internal/pipeline"
	"procureflow-api-server/internal/socket"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	Synchronizer *pipeline.OrderSynchronizer
	Hub          *socket.Hub
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	filter, page, pageSize := listQuery(c)
	matched := aggregate.FilterOrders(h.Synchronizer.Orders(), filter)
	items, start, end := aggregate.Page(matched, pageSize, page)
	c.JSON(http.StatusOK, listResponse(items, len(matched), start, end))
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	order, ok := h.Synchronizer.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// SetApproval moves an order through the approval state machine.
func (h *OrderHandler) SetApproval(c *gin.Context) {
	orderID := c.Param("id")

	var payload SetApprovalPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !approvalStatuses[payload.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown approval status"})
		return
	}

	if _, ok := h.Synchronizer.Get(orderID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	h.Synchronizer.SetApproval(c.Request.Context(), orderID, payload.Status)
	order, _ := h.Synchronizer.Get(orderID)
	h.Hub.Broadcast("order_approval_changed", order)
	c.JSON(http.StatusOK, order)
}

// MarkReceived records delivery of an open order.
func (h *OrderHandler) MarkReceived(c *gin.Context) {
	orderID := c.Param("id")
	if _, ok := h.Synchronizer.Get(orderID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	h.Synchronizer.MarkReceived(c.Request.Context(), orderID)
	order, _ := h.Synchronizer.Get(orderID)
	h.Hub.Broadcast("order_received", order)
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	orderID := c.Param("id")
	if _, ok := h.Synchronizer.Get(orderID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	h.Synchronizer.MarkDeleted(c.Request.Context(), orderID)
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}
