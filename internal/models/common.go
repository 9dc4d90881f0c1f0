// server/internal/models/common.go
package models

// ApprovalStatus is the gating state carried by requests and orders.
const (
	ApprovalPending  = "Pending"
	ApprovalApproved = "Approved"
	ApprovalOnHold   = "On Hold"
	ApprovalRejected = "Rejected"
)

// Priority labels. PriorityUrgent additionally raises the urgency flag
// during normalization (see internal/store).
const (
	PriorityUrgent = "Urgent"
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityNormal = "Normal"
	PriorityLow    = "Low"
)

// Order lifecycle labels the pipeline cares about. Anything else on
// Order.Status is display-only.
const (
	OrderStatusOpen     = "Open"
	OrderStatusReceived = "Received"
)

// RFQStatusSentToPO is the one status label the pipeline ever assigns to
// an RFQ, on conversion to an order.
const RFQStatusSentToPO = "Sent to PO"

// SyncState tags an in-memory RFQ with how far its store round-trip got.
// A Provisional record was inserted optimistically and is awaiting the
// store's confirmation; Failed means the create was rejected.
const (
	SyncProvisional = "Provisional"
	SyncConfirmed   = "Confirmed"
	SyncFailed      = "Failed"
)

// LineItem is one requested/quoted/ordered item.
type LineItem struct {
	SKU      string  `bson:"sku" json:"sku"`
	Name     string  `bson:"name,omitempty" json:"name"`
	Quantity float64 `bson:"quantity" json:"quantity"`
	Unit     string  `bson:"unit,omitempty" json:"unit"`
}
