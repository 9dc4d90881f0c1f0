package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProcurementRequest is a requisition raised by a department. The pipeline
// only interprets ApprovalStatus, RFQSent and IsDeleted; the rest are
// carried for display.
type ProcurementRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	RequestID      string             `bson:"requestID" json:"requestID"`
	Date           string             `bson:"date" json:"date"` // YYYY-MM-DD
	Department     string             `bson:"department" json:"department"`
	Warehouse      string             `bson:"warehouse" json:"warehouse"`
	RelatedTo      string             `bson:"relatedTo,omitempty" json:"relatedTo"`
	Items          []LineItem         `bson:"items" json:"items"`
	Status         string             `bson:"status" json:"status"`
	Priority       string             `bson:"priority,omitempty" json:"priority"`
	IsUrgent       bool               `bson:"isUrgent" json:"isUrgent"`
	ApprovalStatus string             `bson:"approvalStatus" json:"approvalStatus"`
	RFQSent        bool               `bson:"rfqSent" json:"rfqSent"`
	IsDeleted      bool               `bson:"isDeleted" json:"isDeleted"`
	CreatedBy      string             `bson:"createdBy" json:"createdBy"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
