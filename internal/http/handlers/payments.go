package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"pawhaven/internal/domain"
	"pawhaven/internal/middleware"
	"pawhaven/internal/payment"
	"pawhaven/internal/sqlinline"
)

type createOrderRequest struct {
	Amount    int64  `json:"amount"`
	DonorName string `json:"donorName"`
	Email     string `json:"email"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
	Receipt  string `json:"receipt"`
}

// PaymentsCreateOrder reserves a provider order for a donation and
// returns the provider-confirmed values the checkout widget needs.
func (a *App) PaymentsCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	result, err := a.Payments.CreateOrder(r.Context(), payment.CreateOrderInput{
		Amount:    req.Amount,
		DonorName: req.DonorName,
		Email:     req.Email,
		Country:   middleware.CountryFromContext(r.Context()),
		Locale:    middleware.LocaleFromContext(r.Context()),
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid donation details provided")
			return
		}
		a.Logger.Error().Err(err).Msg("create donation order failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create donation order")
		return
	}

	a.json(w, http.StatusCreated, createOrderResponse{
		ID:       result.OrderID,
		Currency: result.Currency,
		Amount:   result.Amount,
		Receipt:  result.Receipt,
	})
}

type verifyPaymentRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// PaymentsVerify confirms a checkout callback. A mismatched signature
// is a business outcome reported with status "failure", not a server
// error.
func (a *App) PaymentsVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	result, err := a.Payments.Confirm(r.Context(), payment.ConfirmInput{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			a.error(w, http.StatusNotFound, "not_found", "donation order not found")
		case errors.Is(err, domain.ErrValidation):
			a.error(w, http.StatusBadRequest, "bad_request", "order_id is required")
		default:
			a.Logger.Error().Err(err).Str("order_id", req.OrderID).Msg("verify payment failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to verify payment")
		}
		return
	}

	if !result.Verified {
		a.json(w, http.StatusBadRequest, map[string]string{
			"status":  "failure",
			"message": "payment verification failed",
		})
		return
	}

	// The response must not wait on the receipt webhook.
	go a.Notifier.DonationPaid(context.Background(), result.DonationID, req.OrderID, req.PaymentID, result.Amount, result.Currency)

	a.json(w, http.StatusOK, map[string]string{
		"status":     "success",
		"message":    "payment verified successfully",
		"donationId": result.DonationID,
	})
}

// PaymentsDonations lists recent verified donations for the donation wall.
func (a *App) PaymentsDonations(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListPaidDonations, limit)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
		return
	}
	defer rows.Close()

	var items []map[string]any
	for rows.Next() {
		var id, orderID, donorName, currency, status string
		var amount int64
		var createdAt time.Time
		var paidAt sql.NullTime
		if err := rows.Scan(&id, &orderID, &donorName, &amount, &currency, &status, &createdAt, &paidAt); err != nil {
			continue
		}
		item := map[string]any{
			"id":         id,
			"donor_name": donorName,
			"amount":     amount,
			"currency":   currency,
		}
		if paidAt.Valid {
			item["paid_at"] = paidAt.Time
		}
		items = append(items, item)
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
