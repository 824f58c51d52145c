package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FundingRecord is a completed donation of money, persisted after the
// payment provider confirms the charge.
type FundingRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Amount     float64            `bson:"amount" json:"amount"` // currency units
	PayerEmail string             `bson:"payerEmail" json:"payerEmail"`
	PayerName  string             `bson:"payerName,omitempty" json:"payerName,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
