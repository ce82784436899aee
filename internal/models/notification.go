package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types
const (
	NotificationPaymentApproved = "payment_approved"
	NotificationPaymentRejected = "payment_rejected"
)

// Notification delivery statuses
const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// Notification is a delivery-log entry for one outbound email
type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Type       string             `bson:"type" json:"type"`
	Recipient  string             `bson:"recipient" json:"recipient"`
	Subject    string             `bson:"subject" json:"subject"`
	PaymentRef string             `bson:"paymentRef,omitempty" json:"paymentRef,omitempty"`
	Status     string             `bson:"status" json:"status"`
	Error      string             `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
