package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mahfuzanam/bloodlink/app/models"
	"github.com/mahfuzanam/bloodlink/pkg/metrics"
)

// DonationStore is the slice of the donation repository the lifecycle
// manager needs.
type DonationStore interface {
	Insert(ctx context.Context, req *models.DonationRequest) error
	FindByID(ctx context.Context, id string) (models.DonationRequest, error)
	ClaimPending(ctx context.Context, id, donorName, donorEmail string) (models.DonationRequest, error)
	UpdateStatusFrom(ctx context.Context, id string, from, to models.RequestStatus) (models.DonationRequest, error)
	UpdateFields(ctx context.Context, id string, fields bson.M) (models.DonationRequest, error)
	ListByRequester(ctx context.Context, email, status string, page, size int64) ([]models.DonationRequest, int64, error)
	Recent(ctx context.Context, email string, limit int64) ([]models.DonationRequest, error)
	ListByStatus(ctx context.Context, status models.RequestStatus) ([]models.DonationRequest, error)
}

// RequesterLookup resolves a requester email to its user record so creation
// can reject blocked users.
type RequesterLookup interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// CreateRequestInput is the payload for POST /donation-requests.
type CreateRequestInput struct {
	RequesterEmail    string `json:"requesterEmail" validate:"required,email"`
	RequesterName     string `json:"requesterName"`
	RecipientName     string `json:"recipientName" validate:"required"`
	RecipientDistrict string `json:"recipientDistrict" validate:"required"`
	RecipientUpazila  string `json:"recipientUpazila"`
	HospitalName      string `json:"hospitalName" validate:"required"`
	FullAddress       string `json:"fullAddress"`
	BloodGroup        string `json:"bloodGroup" validate:"required,in=A+,A-,B+,B-,AB+,AB-,O+,O-"`
	DonationDate      string `json:"donationDate" validate:"required,date"`
	DonationTime      string `json:"donationTime"`
	RequestMessage    string `json:"requestMessage"`
}

// EditRequestInput is the whitelist of editable fields for
// PATCH /update-donation-request/{id}. Status, donor fields, requester
// identity, and createdAt are never part of the set.
type EditRequestInput struct {
	RecipientName     string `json:"recipientName" validate:"required"`
	RecipientDistrict string `json:"recipientDistrict" validate:"required"`
	RecipientUpazila  string `json:"recipientUpazila"`
	HospitalName      string `json:"hospitalName" validate:"required"`
	FullAddress       string `json:"fullAddress"`
	BloodGroup        string `json:"bloodGroup" validate:"required,in=A+,A-,B+,B-,AB+,AB-,O+,O-"`
	DonationDate      string `json:"donationDate" validate:"required,date"`
	DonationTime      string `json:"donationTime"`
	RequestMessage    string `json:"requestMessage"`
}

// DefaultPageSize is the my-requests page size when none is given.
const DefaultPageSize = 5

// recentLimit caps the dashboard's recent-requests list.
const recentLimit = 3

// DonationService owns the donation request state machine:
// pending moves to inprogress then done/canceled, with pending also allowed to jump
// straight to a terminal state.
type DonationService struct {
	donations DonationStore
	users     RequesterLookup
}

func NewDonationService(donations DonationStore, users RequesterLookup) *DonationService {
	return &DonationService{donations: donations, users: users}
}

// Create persists a new request in the pending state. The requester must
// exist and must not be blocked.
func (s *DonationService) Create(ctx context.Context, in CreateRequestInput) (models.DonationRequest, error) {
	user, err := s.users.FindByEmail(ctx, in.RequesterEmail)
	if errors.Is(err, models.ErrNotFound) {
		return models.DonationRequest{}, fmt.Errorf("%w: unknown requester", models.ErrForbidden)
	}
	if err != nil {
		return models.DonationRequest{}, err
	}
	if user.Blocked() {
		return models.DonationRequest{}, models.ErrBlocked
	}

	req := models.DonationRequest{
		RequesterEmail:    in.RequesterEmail,
		RequesterName:     in.RequesterName,
		RecipientName:     in.RecipientName,
		RecipientDistrict: in.RecipientDistrict,
		RecipientUpazila:  in.RecipientUpazila,
		HospitalName:      in.HospitalName,
		FullAddress:       in.FullAddress,
		BloodGroup:        in.BloodGroup,
		DonationDate:      in.DonationDate,
		DonationTime:      in.DonationTime,
		RequestMessage:    in.RequestMessage,
		Status:            models.RequestPending,
		CreatedAt:         time.Now(),
	}

	if err := s.donations.Insert(ctx, &req); err != nil {
		return models.DonationRequest{}, err
	}

	metrics.RequestTransitions.WithLabelValues(string(models.RequestPending)).Inc()
	return req, nil
}

// Get fetches one request by id.
func (s *DonationService) Get(ctx context.Context, id string) (models.DonationRequest, error) {
	return s.donations.FindByID(ctx, id)
}

// Claim moves a pending request to inprogress and records the donor. The
// underlying update is conditional on status=pending, so of two concurrent
// claims exactly one succeeds; the loser gets ErrConflict and the winner's
// donor fields are preserved.
func (s *DonationService) Claim(ctx context.Context, id, donorName, donorEmail string) (models.DonationRequest, error) {
	req, err := s.donations.ClaimPending(ctx, id, donorName, donorEmail)
	if errors.Is(err, models.ErrNotFound) {
		// Nothing matched: either the request is gone or it already left
		// the pending state.
		if _, findErr := s.donations.FindByID(ctx, id); findErr != nil {
			return models.DonationRequest{}, findErr
		}
		return models.DonationRequest{}, fmt.Errorf("%w: request already claimed", models.ErrConflict)
	}
	if err != nil {
		return models.DonationRequest{}, err
	}

	metrics.RequestTransitions.WithLabelValues(string(models.RequestInProgress)).Inc()
	return req, nil
}

// SetStatus applies a state change after checking the transition table.
// Illegal transitions (including any move out of done or canceled) are
// rejected with ErrInvalidTransition; unknown target states never reach the
// table.
func (s *DonationService) SetStatus(ctx context.Context, id, newStatus string) (models.DonationRequest, error) {
	if !models.ValidRequestStatus(newStatus) {
		return models.DonationRequest{}, fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, newStatus)
	}
	to := models.RequestStatus(newStatus)

	current, err := s.donations.FindByID(ctx, id)
	if err != nil {
		return models.DonationRequest{}, err
	}

	if !models.CanTransition(current.Status, to) {
		return models.DonationRequest{}, fmt.Errorf("%w: %s to %s", models.ErrInvalidTransition, current.Status, to)
	}

	req, err := s.donations.UpdateStatusFrom(ctx, id, current.Status, to)
	if errors.Is(err, models.ErrNotFound) {
		// The document moved between our read and the conditional write.
		if _, findErr := s.donations.FindByID(ctx, id); findErr != nil {
			return models.DonationRequest{}, findErr
		}
		return models.DonationRequest{}, fmt.Errorf("%w: status changed concurrently", models.ErrConflict)
	}
	if err != nil {
		return models.DonationRequest{}, err
	}

	metrics.RequestTransitions.WithLabelValues(newStatus).Inc()
	return req, nil
}

// Edit overwrites the whitelisted request fields, leaving status and
// identity fields untouched.
func (s *DonationService) Edit(ctx context.Context, id string, in EditRequestInput) (models.DonationRequest, error) {
	fields := bson.M{
		"recipientName":     in.RecipientName,
		"recipientDistrict": in.RecipientDistrict,
		"recipientUpazila":  in.RecipientUpazila,
		"hospitalName":      in.HospitalName,
		"fullAddress":       in.FullAddress,
		"bloodGroup":        in.BloodGroup,
		"donationDate":      in.DonationDate,
		"donationTime":      in.DonationTime,
		"requestMessage":    in.RequestMessage,
	}
	return s.donations.UpdateFields(ctx, id, fields)
}

// ListMine returns one page of the requester's requests, newest first, plus
// the total count. Page is zero-based; statusFilter "all" or "" means no
// status narrowing.
func (s *DonationService) ListMine(ctx context.Context, email, statusFilter string, page, size int64) ([]models.DonationRequest, int64, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return s.donations.ListByRequester(ctx, email, statusFilter, page, size)
}

// Recent returns the requester's latest three requests, newest first.
func (s *DonationService) Recent(ctx context.Context, email string) ([]models.DonationRequest, error) {
	return s.donations.Recent(ctx, email, recentLimit)
}

// ListPending returns every request still waiting for a donor.
func (s *DonationService) ListPending(ctx context.Context) ([]models.DonationRequest, error) {
	return s.donations.ListByStatus(ctx, models.RequestPending)
}
