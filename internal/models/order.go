package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order is an internal purchase order created once an RFQ's quote is
// accepted. RFQID and RequestID are back-references.
type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OrderID    string             `bson:"orderID" json:"orderID"`
	RFQID      string             `bson:"rfqID" json:"rfqID"`
	RequestID  string             `bson:"requestID" json:"requestID"`
	Supplier   string             `bson:"supplier" json:"supplier"`
	Department string             `bson:"department" json:"department"`
	Warehouse  string             `bson:"warehouse" json:"warehouse"`
	Date       string             `bson:"date" json:"date"`              // YYYY-MM-DD
	DueDate    string             `bson:"dueDate,omitempty" json:"dueDate"`
	TotalValue float64            `bson:"totalValue" json:"totalValue"`
	Priority   string             `bson:"priority" json:"priority"`
	Items      []LineItem         `bson:"items" json:"items"`
	Status     string             `bson:"status" json:"status"`
	Approvals  string             `bson:"approvals" json:"approvals"`
	IsDeleted  bool               `bson:"isDeleted" json:"isDeleted"`
	CreatedBy  string             `bson:"createdBy" json:"createdBy"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
