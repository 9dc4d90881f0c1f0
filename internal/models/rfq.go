package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RFQ is a supplier-facing quote derived from an approved request.
// RequestID is a back-reference only; the RFQ does not own the request.
type RFQ struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	RFQID       string             `bson:"rfqID" json:"rfqID"`
	RequestID   string             `bson:"requestID" json:"requestID"`
	Supplier    string             `bson:"supplier" json:"supplier"`
	Department  string             `bson:"department" json:"department"`
	Warehouse   string             `bson:"warehouse" json:"warehouse"`
	DueDate     string             `bson:"dueDate,omitempty" json:"dueDate"` // YYYY-MM-DD
	Value       float64            `bson:"value" json:"value"`
	Items       []LineItem         `bson:"items" json:"items"`
	Status      string             `bson:"status" json:"status"`
	Priority    string             `bson:"priority,omitempty" json:"priority"`
	IsUrgent    bool               `bson:"isUrgent" json:"isUrgent"`
	SentToOrder bool               `bson:"sentToOrder" json:"sentToOrder"`
	OrderID     string             `bson:"orderID,omitempty" json:"orderID"`
	IsDeleted   bool               `bson:"isDeleted" json:"isDeleted"`
	// SyncState never leaves the process; the store has no notion of a
	// provisional record.
	SyncState   string             `bson:"-" json:"syncState"`
	QuoteDocURL string             `bson:"quoteDocURL,omitempty" json:"quoteDocURL"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Converted reports whether this RFQ's own flags claim it already became
// an order. The synchronizer also consults the order list itself, which
// stays authoritative when these flags are stale.
func (r RFQ) Converted() bool {
	return r.SentToOrder || r.OrderID != ""
}
