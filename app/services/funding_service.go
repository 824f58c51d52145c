package services

import (
	"context"
	"time"

	"github.com/mahfuzanam/bloodlink/app/models"
	"github.com/mahfuzanam/bloodlink/pkg/payment"
)

// FundingStore is the slice of the funding repository the service needs.
type FundingStore interface {
	Insert(ctx context.Context, rec *models.FundingRecord) error
	List(ctx context.Context, page, size int64) ([]models.FundingRecord, int64, error)
}

// IntentCreator opens a payment with the provider and returns the client
// secret the frontend needs to confirm it.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (*payment.Intent, error)
}

// FundingInput is the payload for POST /fundings, recorded after the
// provider confirms the charge.
type FundingInput struct {
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	PayerEmail string  `json:"payerEmail" validate:"required,email"`
	PayerName  string  `json:"payerName"`
}

// IntentInput is the payload for POST /create-payment-intent. Amount is in
// the smallest currency unit.
type IntentInput struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// FundingService owns monetary donations: opening payment intents and
// recording confirmed charges.
type FundingService struct {
	fundings FundingStore
	intents  IntentCreator
}

func NewFundingService(fundings FundingStore, intents IntentCreator) *FundingService {
	return &FundingService{fundings: fundings, intents: intents}
}

// Add records a confirmed funding.
func (s *FundingService) Add(ctx context.Context, in FundingInput) (models.FundingRecord, error) {
	rec := models.FundingRecord{
		Amount:     in.Amount,
		PayerEmail: in.PayerEmail,
		PayerName:  in.PayerName,
		CreatedAt:  time.Now(),
	}
	if err := s.fundings.Insert(ctx, &rec); err != nil {
		return models.FundingRecord{}, err
	}
	return rec, nil
}

// List returns one page of funding records, newest first, plus the total
// count. Page is zero-based.
func (s *FundingService) List(ctx context.Context, page, size int64) ([]models.FundingRecord, int64, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return s.fundings.List(ctx, page, size)
}

// CreatePaymentIntent opens a USD payment with the provider.
func (s *FundingService) CreatePaymentIntent(ctx context.Context, in IntentInput) (*payment.Intent, error) {
	return s.intents.CreateIntent(ctx, in.Amount, "usd")
}
