package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pawhaven/internal/domain"
	"pawhaven/internal/infra"
	"pawhaven/internal/payment/razorpay"
)

// OrderCreator is the provider surface the service needs. The real
// implementation is *razorpay.Client; tests inject a stub.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req razorpay.OrderRequest) (*razorpay.Order, error)
}

// Service orchestrates the donation order lifecycle: order creation
// against the provider and signature-verified confirmation. All state
// lives in the DonationRepository.
type Service struct {
	provider  OrderCreator
	donations domain.DonationRepository
	secret    string
	currency  string
	logger    infra.Logger
	now       func() time.Time
}

// NewService wires the service from its collaborators. The secret is
// the provider key secret shared with the checkout widget.
func NewService(provider OrderCreator, donations domain.DonationRepository, secret, currency string, logger infra.Logger) *Service {
	return &Service{
		provider:  provider,
		donations: donations,
		secret:    secret,
		currency:  currency,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateOrderInput is a donation request. Amount is in the major
// currency unit (whole rupees); conversion to subunits happens here.
type CreateOrderInput struct {
	Amount    int64
	DonorName string
	Email     string
	Country   string
	Locale    string
}

// OrderResult echoes the provider-confirmed order values. The browser
// must open checkout with these, not locally recomputed ones.
type OrderResult struct {
	OrderID  string
	Currency string
	Amount   int64
	Receipt  string
}

// CreateOrder validates the request, reserves an order with the
// provider, and persists the initial donation record. The record is
// only written once a provider order id exists, so a provider failure
// leaves nothing behind.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*OrderResult, error) {
	if in.Amount < 1 {
		return nil, fmt.Errorf("%w: amount must be at least 1", domain.ErrValidation)
	}
	if strings.TrimSpace(in.DonorName) == "" {
		return nil, fmt.Errorf("%w: donor name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	subunits := in.Amount * 100
	receipt := newReceiptID(s.now())

	order, err := s.provider.CreateOrder(ctx, razorpay.OrderRequest{
		Amount:   subunits,
		Currency: s.currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}

	props := map[string]string{"receipt": order.Receipt}
	if in.Country != "" {
		props["country"] = in.Country
	}
	if in.Locale != "" {
		props["locale"] = in.Locale
	}
	donation := &domain.Donation{
		OrderID:    order.ID,
		DonorName:  strings.TrimSpace(in.DonorName),
		Email:      strings.TrimSpace(in.Email),
		Amount:     order.Amount,
		Currency:   order.Currency,
		Status:     domain.DonationCreated,
		Properties: props,
	}
	if err := s.donations.Create(ctx, donation); err != nil {
		return nil, fmt.Errorf("%w: persist donation: %v", domain.ErrStoreFailure, err)
	}

	s.logger.Info().Str("order_id", order.ID).Int64("amount", order.Amount).Msg("donation order created")
	return &OrderResult{
		OrderID:  order.ID,
		Currency: order.Currency,
		Amount:   order.Amount,
		Receipt:  order.Receipt,
	}, nil
}

// ConfirmInput carries the three fields the checkout widget hands back
// on success.
type ConfirmInput struct {
	OrderID   string
	PaymentID string
	Signature string
}

// ConfirmResult reports the outcome of a confirmation attempt. A
// mismatched signature is a normal business outcome, not an error.
type ConfirmResult struct {
	DonationID string
	Status     domain.DonationStatus
	Verified   bool
	Amount     int64
	Currency   string
}

// Confirm looks up the donation for the order, verifies the provider
// signature, and moves the record to its terminal state. Confirmation
// of an already-terminal record returns the recorded outcome without
// re-evaluating the signature, so a replayed or malformed second call
// can never flip a paid record.
func (s *Service) Confirm(ctx context.Context, in ConfirmInput) (*ConfirmResult, error) {
	if in.OrderID == "" {
		return nil, fmt.Errorf("%w: order id is required", domain.ErrValidation)
	}

	donation, err := s.donations.GetByOrderID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if donation.Status.Terminal() {
		return &ConfirmResult{
			DonationID: donation.ID,
			Status:     donation.Status,
			Verified:   donation.Status == domain.DonationPaid,
			Amount:     donation.Amount,
			Currency:   donation.Currency,
		}, nil
	}

	if VerifySignature(in.OrderID, in.PaymentID, in.Signature, s.secret) {
		paidAt := s.now().UTC()
		if err := s.donations.MarkPaid(ctx, in.OrderID, in.PaymentID, in.Signature, paidAt); err != nil {
			return nil, fmt.Errorf("%w: mark paid: %v", domain.ErrStoreFailure, err)
		}
		s.logger.Info().Str("order_id", in.OrderID).Str("payment_id", in.PaymentID).Msg("donation verified")
		return &ConfirmResult{DonationID: donation.ID, Status: domain.DonationPaid, Verified: true, Amount: donation.Amount, Currency: donation.Currency}, nil
	}

	// The received signature is kept for audit even though it failed.
	if err := s.donations.MarkFailed(ctx, in.OrderID, in.Signature); err != nil {
		return nil, fmt.Errorf("%w: mark failed: %v", domain.ErrStoreFailure, err)
	}
	s.logger.Warn().Str("order_id", in.OrderID).Msg("donation signature mismatch")
	return &ConfirmResult{DonationID: donation.ID, Status: domain.DonationFailed, Verified: false, Amount: donation.Amount, Currency: donation.Currency}, nil
}

func newReceiptID(now time.Time) string {
	return fmt.Sprintf("receipt_donation_%d_%s", now.UnixMilli(), uuid.NewString()[:8])
}
