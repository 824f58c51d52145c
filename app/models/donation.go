package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestStatus is a donation request's lifecycle state.
type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestInProgress RequestStatus = "inprogress"
	RequestDone       RequestStatus = "done"
	RequestCanceled   RequestStatus = "canceled"
)

// ValidRequestStatus reports whether s is one of the four known states.
func ValidRequestStatus(s string) bool {
	switch RequestStatus(s) {
	case RequestPending, RequestInProgress, RequestDone, RequestCanceled:
		return true
	}
	return false
}

// transitions is the explicit state machine for donation requests.
// done and canceled are terminal.
var transitions = map[RequestStatus][]RequestStatus{
	RequestPending:    {RequestInProgress, RequestDone, RequestCanceled},
	RequestInProgress: {RequestDone, RequestCanceled},
	RequestDone:       {},
	RequestCanceled:   {},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to RequestStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func Terminal(s RequestStatus) bool { return len(transitions[s]) == 0 }

// DonationRequest is a plea for blood posted by a requester and optionally
// claimed by a donor. DonorName/DonorEmail stay unset while status is pending.
type DonationRequest struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequesterEmail    string             `bson:"requesterEmail" json:"requesterEmail"`
	RequesterName     string             `bson:"requesterName,omitempty" json:"requesterName,omitempty"`
	RecipientName     string             `bson:"recipientName" json:"recipientName"`
	RecipientDistrict string             `bson:"recipientDistrict" json:"recipientDistrict"`
	RecipientUpazila  string             `bson:"recipientUpazila" json:"recipientUpazila"`
	HospitalName      string             `bson:"hospitalName" json:"hospitalName"`
	FullAddress       string             `bson:"fullAddress" json:"fullAddress"`
	BloodGroup        string             `bson:"bloodGroup" json:"bloodGroup"`
	DonationDate      string             `bson:"donationDate" json:"donationDate"`
	DonationTime      string             `bson:"donationTime" json:"donationTime"`
	RequestMessage    string             `bson:"requestMessage" json:"requestMessage"`
	Status            RequestStatus      `bson:"status" json:"status"`
	DonorName         string             `bson:"donorName,omitempty" json:"donorName,omitempty"`
	DonorEmail        string             `bson:"donorEmail,omitempty" json:"donorEmail,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}
