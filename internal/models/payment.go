package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment statuses. Pending is the only non-terminal status; a record moves
// out of it at most once and never comes back.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
)

// Item types purchasable through the marketplace
const (
	ItemTypeCertification = "certification"
	ItemTypeCourse        = "course"
)

// Review actions accepted by the admin action endpoint
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Payment represents a manual proof-of-payment record. User and item fields
// are denormalized snapshots taken at submission time and are never updated
// when the source entities change.
type Payment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Reference      string             `bson:"reference" json:"id"`
	ClientRef      string             `bson:"clientRef,omitempty" json:"clientRef,omitempty"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	UserName       string             `bson:"userName" json:"userName"`
	UserEmail      string             `bson:"userEmail" json:"userEmail"`
	Amount         int64              `bson:"amount" json:"amount"`
	ItemID         string             `bson:"itemId" json:"itemId"`
	ItemName       string             `bson:"itemName" json:"itemName"`
	ItemType       string             `bson:"itemType" json:"itemType"`
	Status         string             `bson:"status" json:"status"`
	ProofImage     string             `bson:"proofImage" json:"proofImage"`
	ProofFileID    string             `bson:"proofFileId" json:"-"`
	IdempotencyKey string             `bson:"idempotencyKey,omitempty" json:"-"`
	ReviewedBy     string             `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	Feedback       string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
	History        []StatusChange     `bson:"history,omitempty" json:"history,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// StatusChange is one entry of the append-only transition log on a payment.
type StatusChange struct {
	Status     string    `bson:"status" json:"status"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
	ReviewedBy string    `bson:"reviewedBy" json:"reviewedBy"`
	Feedback   string    `bson:"feedback" json:"feedback"`
}

// PaymentActionRequest defines the structure for admin decision requests
type PaymentActionRequest struct {
	Action   string `json:"action" binding:"required"`
	Feedback string `json:"feedback" binding:"required"`
}
