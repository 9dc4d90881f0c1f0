package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"procureflow-api-server/internal/aggregate"
	"procureflow-api-server/internal/pipeline"
	"procureflow-api-server/internal/s3"
	"procureflow-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RFQHandler struct {
	RFQs         *pipeline.RFQBook
	Synchronizer *pipeline.OrderSynchronizer
	Hub          *socket.Hub
	S3Uploader   *s3.Uploader
}

// GetRFQs returns one filtered page of the RFQ list, provisional and
// failed placeholders included.
func (h *RFQHandler) GetRFQs(c *gin.Context) {
	filter, page, pageSize := listQuery(c)
	matched := aggregate.FilterRFQs(h.RFQs.RFQs(), filter)
	items, start, end := aggregate.Page(matched, pageSize, page)
	c.JSON(http.StatusOK, listResponse(items, len(matched), start, end))
}

func (h *RFQHandler) GetRFQByID(c *gin.Context) {
	rfq, ok := h.RFQs.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "RFQ not found"})
		return
	}
	c.JSON(http.StatusOK, rfq)
}

// SendToOrder converts an RFQ into a purchase order. Calling it again for
// an already-converted RFQ returns the existing order.
func (h *RFQHandler) SendToOrder(c *gin.Context) {
	rfqID := c.Param("id")
	if _, ok := h.RFQs.Get(rfqID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "RFQ not found"})
		return
	}

	order, err := h.Synchronizer.SendToOrder(c.Request.Context(), rfqID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	if order.OrderID == "" {
		// Nothing to return: the RFQ is soft-deleted, or carries converted
		// flags while its order is not in the list. Both are no-ops in the
		// core.
		c.JSON(http.StatusConflict, gin.H{"error": "RFQ cannot be converted"})
		return
	}

	h.Hub.Broadcast("order_created", order)
	c.JSON(http.StatusCreated, order)
}

func (h *RFQHandler) DeleteRFQ(c *gin.Context) {
	rfqID := c.Param("id")
	if _, ok := h.RFQs.Get(rfqID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "RFQ not found"})
		return
	}

	h.RFQs.MarkDeleted(c.Request.Context(), rfqID)
	c.JSON(http.StatusOK, gin.H{"message": "RFQ deleted"})
}

// UploadQuoteDocument stores the supplier's quote document in S3 and
// attaches its URL to the RFQ.
func (h *RFQHandler) UploadQuoteDocument(c *gin.Context) {
	rfqID := c.Param("id")
	rfq, ok := h.RFQs.Get(rfqID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "RFQ not found"})
		return
	}
	if rfq.IsDeleted {
		c.JSON(http.StatusConflict, gin.H{"error": "RFQ is deleted"})
		return
	}
	if h.S3Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Document storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A 'document' file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectKey := fmt.Sprintf("rfq-quotes/%s/%s%s", rfqID, uuid.New().String()[:8], filepath.Ext(fileHeader.Filename))

	url, err := h.S3Uploader.UploadFile(c.Request.Context(), file, objectKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload quote document"})
		return
	}

	h.RFQs.SetQuoteDocURL(c.Request.Context(), rfqID, url)
	c.JSON(http.StatusOK, gin.H{"quoteDocURL": url})
}
