package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"pawhaven/internal/domain"
	"pawhaven/internal/infra"
	"pawhaven/internal/sqlinline"
)

// DonationRepositoryPG implements domain.DonationRepository on PostgreSQL.
type DonationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(executor infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{sql: executor}
}

// Create inserts the initial record for a provider order. The unique
// constraint on order_id backs the invariant that an order id is never
// reassigned.
func (r *DonationRepositoryPG) Create(ctx context.Context, donation *domain.Donation) error {
	props, err := json.Marshal(donation.Properties)
	if err != nil {
		return fmt.Errorf("encode properties: %w", err)
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertDonation,
		donation.OrderID, donation.DonorName, donation.Email,
		donation.Amount, donation.Currency, props)
	if err := row.Scan(&donation.ID); err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

// GetByOrderID loads a record by the provider's order id.
func (r *DonationRepositoryPG) GetByOrderID(ctx context.Context, orderID string) (*domain.Donation, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectDonationByOrderID, orderID)

	var d domain.Donation
	var paymentID, signature sql.NullString
	var status string
	var paidAt sql.NullTime
	err := row.Scan(&d.ID, &d.OrderID, &paymentID, &signature, &d.DonorName, &d.Email,
		&d.Amount, &d.Currency, &status, &d.CreatedAt, &paidAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select donation: %w", err)
	}
	d.PaymentID = paymentID.String
	d.Signature = signature.String
	d.Status = domain.DonationStatus(status)
	if paidAt.Valid {
		t := paidAt.Time
		d.PaidAt = &t
	}
	return &d, nil
}

// MarkPaid records a verified payment. The statement only touches rows
// still in created status, so a concurrent confirmation cannot rewrite
// a terminal record.
func (r *DonationRepositoryPG) MarkPaid(ctx context.Context, orderID, paymentID, signature string, paidAt time.Time) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QMarkDonationPaid, orderID, paymentID, signature, paidAt)
	if err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: donation %s not in created state", domain.ErrNotFound, orderID)
	}
	return nil
}

// MarkFailed records a signature mismatch, keeping the received
// signature for audit.
func (r *DonationRepositoryPG) MarkFailed(ctx context.Context, orderID, signature string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QMarkDonationFailed, orderID, signature)
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: donation %s not in created state", domain.ErrNotFound, orderID)
	}
	return nil
}

// ListPaid returns the most recent verified donations.
func (r *DonationRepositoryPG) ListPaid(ctx context.Context, limit int) ([]domain.Donation, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListPaidDonations, limit)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		var d domain.Donation
		var status string
		var paidAt sql.NullTime
		if err := rows.Scan(&d.ID, &d.OrderID, &d.DonorName, &d.Amount, &d.Currency, &status, &d.CreatedAt, &paidAt); err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		d.Status = domain.DonationStatus(status)
		if paidAt.Valid {
			t := paidAt.Time
			d.PaidAt = &t
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
