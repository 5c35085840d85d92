package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"pawhaven/internal/middleware"
	"pawhaven/internal/sqlinline"
)

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// AuthRegister creates an account and returns a signed token so the
// browser is logged in immediately after registration.
func (a *App) AuthRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "fullName, email, and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to register")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertUser, req.FullName, req.Email, string(hash))
	var userID string
	if err := row.Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusBadRequest, "bad_request", "user already exists")
			return
		}
		a.Logger.Error().Err(err).Msg("insert user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to register")
		return
	}

	token, err := a.signUserToken(userID, req.FullName, req.Email)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to register")
		return
	}
	a.json(w, http.StatusCreated, authResponse{ID: userID, FullName: req.FullName, Email: req.Email, Token: token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthLogin checks credentials and issues a token. Unknown email and
// wrong password are indistinguishable to the caller.
func (a *App) AuthLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByEmail, email)
	var id, fullName, storedEmail, passwordHash string
	var createdAt time.Time
	if err := row.Scan(&id, &fullName, &storedEmail, &passwordHash, &createdAt); err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid email or password")
		return
	}

	token, err := a.signUserToken(id, fullName, storedEmail)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to log in")
		return
	}
	a.json(w, http.StatusOK, authResponse{ID: id, FullName: fullName, Email: storedEmail, Token: token})
}

// AuthProfile returns the authenticated user's profile.
func (a *App) AuthProfile(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByID, userID)
	var id, fullName, email string
	var createdAt time.Time
	if err := row.Scan(&id, &fullName, &email, &createdAt); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"id":         id,
		"fullName":   fullName,
		"email":      email,
		"created_at": createdAt,
	})
}

func (a *App) signUserToken(id, fullName, email string) (string, error) {
	return middleware.SignJWT(a.JWTSecret, middleware.TokenClaims{
		Sub:      id,
		Name:     fullName,
		Email:    email,
		Exp:      time.Now().Add(24 * time.Hour).Unix(),
		Issuer:   "pawhaven",
		Audience: "pawhaven-web",
	})
}
