package handlers

import (
	"encoding/json"
	"net/http"

	"pawhaven/internal/infra"
	"pawhaven/internal/middleware"
	"pawhaven/internal/notify"
	"pawhaven/internal/payment"
)

// App bundles the dependencies shared by all handlers.
type App struct {
	SQL       infra.SQLExecutor
	Logger    infra.Logger
	JWTSecret string
	Payments  *payment.Service
	Notifier  *notify.Notifier
}

func NewApp(sql infra.SQLExecutor, logger infra.Logger, jwtSecret string, payments *payment.Service, notifier *notify.Notifier) *App {
	return &App{
		SQL:       sql,
		Logger:    logger,
		JWTSecret: jwtSecret,
		Payments:  payments,
		Notifier:  notifier,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"code": errCode, "message": message})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
