package handlers

import (
	"errors"
	"net/http"

	"procureflow-api-server/internal/aggregate"
	"procureflow-api-server/internal/models"
	"procureflow-api-server/internal/pipeline"
	"procureflow-api-server/internal/socket"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	Ledger     *pipeline.RequestLedger
	Dispatcher *pipeline.RFQDispatcher
	Hub        *socket.Hub
}

type CreateRequestPayload struct {
	Date       string            `json:"date"`
	Department string            `json:"department" binding:"required"`
	Warehouse  string            `json:"warehouse" binding:"required"`
	RelatedTo  string            `json:"relatedTo"`
	Priority   string            `json:"priority"`
	Items      []models.LineItem `json:"items" binding:"required,dive"`
}

var approvalStatuses = map[string]bool{
	models.ApprovalPending:  true,
	models.ApprovalApproved: true,
	models.ApprovalOnHold:   true,
	models.ApprovalRejected: true,
}

// CreateRequest raises a new procurement request for the caller's
// department. Approval starts at Pending.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var payload CreateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := models.ProcurementRequest{
		Date:       payload.Date,
		Department: payload.Department,
		Warehouse:  payload.Warehouse,
		RelatedTo:  payload.RelatedTo,
		Priority:   payload.Priority,
		Items:      payload.Items,
		Status:     "Pending",
		CreatedBy:  c.GetString("user_email"),
	}

	created, err := h.Ledger.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create procurement request"})
		return
	}

	h.Hub.Broadcast("request_created", created)
	c.JSON(http.StatusCreated, created)
}

// GetRequests returns one filtered page of the request list.
func (h *RequestHandler) GetRequests(c *gin.Context) {
	filter, page, pageSize := listQuery(c)
	matched := aggregate.FilterRequests(h.Ledger.Requests(), filter)
	items, start, end := aggregate.Page(matched, pageSize, page)
	c.JSON(http.StatusOK, listResponse(items, len(matched), start, end))
}

func (h *RequestHandler) GetRequestByID(c *gin.Context) {
	req, ok := h.Ledger.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Procurement request not found"})
		return
	}
	c.JSON(http.StatusOK, req)
}

type SetApprovalPayload struct {
	Status string `json:"status" binding:"required"`
}

// SetApproval moves a request through the approval state machine. A
// soft-deleted request is left untouched; the core treats that as a
// no-op and the handler reports the unchanged record.
func (h *RequestHandler) SetApproval(c *gin.Context) {
	requestID := c.Param("id")

	var payload SetApprovalPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !approvalStatuses[payload.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown approval status"})
		return
	}

	if _, ok := h.Ledger.Get(requestID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Procurement request not found"})
		return
	}

	h.Ledger.SetApprovalStatus(c.Request.Context(), requestID, payload.Status)
	req, _ := h.Ledger.Get(requestID)
	h.Hub.Broadcast("request_approval_changed", req)
	c.JSON(http.StatusOK, req)
}

// DeleteRequest soft-deletes; the record stays in the list for history.
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	requestID := c.Param("id")
	if _, ok := h.Ledger.Get(requestID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Procurement request not found"})
		return
	}

	h.Ledger.MarkDeleted(c.Request.Context(), requestID)
	c.JSON(http.StatusOK, gin.H{"message": "Procurement request deleted"})
}

type DispatchRFQPayload struct {
	Supplier string  `json:"supplier" binding:"required"`
	DueDate  string  `json:"dueDate"`
	Value    float64 `json:"value"`
}

// DispatchRFQ sends an approved request out for quotation.
func (h *RequestHandler) DispatchRFQ(c *gin.Context) {
	requestID := c.Param("id")

	var payload DispatchRFQPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rfq, err := h.Dispatcher.Dispatch(c.Request.Context(), requestID, pipeline.DispatchInput{
		Supplier: payload.Supplier,
		DueDate:  payload.DueDate,
		Value:    payload.Value,
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrNotEligible) {
			c.JSON(http.StatusConflict, gin.H{"error": "Request is not approved, already quoted, or deleted"})
			return
		}
		// The failed placeholder stays visible; the client may discard it
		// and retry.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create RFQ", "rfq": rfq})
		return
	}

	h.Hub.Broadcast("rfq_dispatched", rfq)
	c.JSON(http.StatusCreated, rfq)
}
