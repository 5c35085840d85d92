package handlers

import (
	"net/http"

	"pawhaven/internal/sqlinline"
)

func (a *App) DonationStats(w http.ResponseWriter, r *http.Request) {
	row := a.SQL.QueryRow(r.Context(), sqlinline.QDonationStats)
	var totalRaised, paidCount, createdCount, failedCount, paidLast24 int64
	if err := row.Scan(&totalRaised, &paidCount, &createdCount, &failedCount, &paidLast24); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"total_raised":  totalRaised,
		"paid_count":    paidCount,
		"created_count": createdCount,
		"failed_count":  failedCount,
		"paid_last_24h": paidLast24,
	})
}
