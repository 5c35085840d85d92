package domain

import "time"

// DonationStatus enumerates the lifecycle states of a donation record.
type DonationStatus string

const (
	DonationCreated DonationStatus = "created"
	DonationPending DonationStatus = "pending"
	DonationPaid    DonationStatus = "paid"
	DonationFailed  DonationStatus = "failed"
)

// Terminal reports whether the status can no longer change.
func (s DonationStatus) Terminal() bool {
	return s == DonationPaid || s == DonationFailed
}

// Donation represents one donation attempt end-to-end. OrderID is the
// payment provider's order identifier and is the lookup key after
// creation; PaymentID and Signature are only set once the supporter
// has paid. Amount is stored in the smallest currency subunit.
type Donation struct {
	ID         string
	OrderID    string
	PaymentID  string
	Signature  string
	DonorName  string
	Email      string
	Amount     int64
	Currency   string
	Status     DonationStatus
	Properties map[string]string // audit data: receipt, donor country, locale
	CreatedAt  time.Time
	PaidAt     *time.Time
}
