package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pawhaven/internal/infra"
)

// Notifier posts donation lifecycle events to a configured webhook
// URL. With an empty URL every call is a no-op, so callers never need
// to branch on configuration.
type Notifier struct {
	url        string
	httpClient *http.Client
	logger     infra.Logger
}

func NewNotifier(url string, logger infra.Logger) *Notifier {
	return &Notifier{
		url:        url,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

type donationPaidEvent struct {
	Event      string    `json:"event"`
	DonationID string    `json:"donation_id"`
	OrderID    string    `json:"order_id"`
	PaymentID  string    `json:"payment_id"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	Timestamp  time.Time `json:"timestamp"`
}

// DonationPaid reports a verified donation. Failures are logged and
// swallowed; the confirmation response never depends on the webhook.
func (n *Notifier) DonationPaid(ctx context.Context, donationID, orderID, paymentID string, amount int64, currency string) {
	if n == nil || n.url == "" {
		return
	}
	event := donationPaidEvent{
		Event:      "donation.paid",
		DonationID: donationID,
		OrderID:    orderID,
		PaymentID:  paymentID,
		Amount:     amount,
		Currency:   currency,
		Timestamp:  time.Now().UTC(),
	}
	if err := n.post(ctx, event); err != nil {
		n.logger.Error().Err(err).Str("order_id", orderID).Msg("donation webhook failed")
	}
}

func (n *Notifier) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "pawhaven-webhook/1.0")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned %d", resp.StatusCode)
	}
	return nil
}
