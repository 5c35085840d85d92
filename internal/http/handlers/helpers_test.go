package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"pawhaven/internal/domain"
	"pawhaven/internal/notify"
	"pawhaven/internal/payment"
	"pawhaven/internal/payment/razorpay"
)

type fakeSQL struct {
	queryRow func(query string, args ...any) pgx.Row
	query    func(query string, args ...any) (pgx.Rows, error)
	exec     func(query string, args ...any) (pgconn.CommandTag, error)
}

func (f *fakeSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if f.exec == nil {
		return pgconn.CommandTag{}, nil
	}
	return f.exec(query, args...)
}

func (f *fakeSQL) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	if f.queryRow == nil {
		return SimpleRow{}
	}
	return f.queryRow(query, args...)
}

func (f *fakeSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	if f.query == nil {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	return f.query(query, args...)
}

type fakeRows struct {
	TestRowsBase
	rows [][]any
	idx  int
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.rows) {
		return pgx.ErrNoRows
	}
	row := r.rows[r.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan arity mismatch: %d vs %d", len(dest), len(row))
	}
	for i, val := range row {
		if err := assign(dest[i], val); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	return nil
}

func (r *fakeRows) Err() error { return nil }

func (r *fakeRows) Close() {}

func assign(dest, val any) error {
	switch d := dest.(type) {
	case *string:
		*d = val.(string)
	case *int64:
		*d = val.(int64)
	case *time.Time:
		*d = val.(time.Time)
	case *sql.NullTime:
		*d = val.(sql.NullTime)
	case *sql.NullString:
		*d = val.(sql.NullString)
	default:
		return fmt.Errorf("unsupported dest type %T", dest)
	}
	return nil
}

// memDonations backs payment handler tests with an in-memory store.
type memDonations struct {
	byOrderID map[string]*domain.Donation
	nextID    int
}

func newMemDonations() *memDonations {
	return &memDonations{byOrderID: map[string]*domain.Donation{}}
}

func (m *memDonations) Create(_ context.Context, d *domain.Donation) error {
	m.nextID++
	d.ID = fmt.Sprintf("donation-%d", m.nextID)
	d.CreatedAt = time.Now().UTC()
	m.byOrderID[d.OrderID] = d
	return nil
}

func (m *memDonations) GetByOrderID(_ context.Context, orderID string) (*domain.Donation, error) {
	d, ok := m.byOrderID[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (m *memDonations) MarkPaid(_ context.Context, orderID, paymentID, signature string, paidAt time.Time) error {
	d := m.byOrderID[orderID]
	d.PaymentID = paymentID
	d.Signature = signature
	d.Status = domain.DonationPaid
	d.PaidAt = &paidAt
	return nil
}

func (m *memDonations) MarkFailed(_ context.Context, orderID, signature string) error {
	d := m.byOrderID[orderID]
	d.Signature = signature
	d.Status = domain.DonationFailed
	return nil
}

func (m *memDonations) ListPaid(context.Context, int) ([]domain.Donation, error) { return nil, nil }

type scriptedProvider struct {
	orders []*razorpay.Order
	err    error
	calls  int
}

func (p *scriptedProvider) CreateOrder(_ context.Context, req razorpay.OrderRequest) (*razorpay.Order, error) {
	if p.err != nil {
		return nil, p.err
	}
	order := *p.orders[p.calls%len(p.orders)]
	p.calls++
	if order.Receipt == "" {
		order.Receipt = req.Receipt
	}
	if order.Amount == 0 {
		order.Amount = req.Amount
	}
	if order.Currency == "" {
		order.Currency = req.Currency
	}
	return &order, nil
}

const testSecret = "rzp_test_secret"

func newTestApp(sqlExec *fakeSQL, provider payment.OrderCreator, donations domain.DonationRepository) *App {
	logger := zerolog.New(io.Discard)
	svc := payment.NewService(provider, donations, testSecret, "INR", logger)
	return NewApp(sqlExec, logger, "jwt-test-secret", svc, notify.NewNotifier("", logger))
}
