package domain

import (
	"context"
	"time"
)

// DonationRepository owns persistence for donation records. Services
// never hold a second copy of a record's truth; every mutation goes
// through here.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	GetByOrderID(ctx context.Context, orderID string) (*Donation, error)
	MarkPaid(ctx context.Context, orderID, paymentID, signature string, paidAt time.Time) error
	MarkFailed(ctx context.Context, orderID, signature string) error
	ListPaid(ctx context.Context, limit int) ([]Donation, error)
}
