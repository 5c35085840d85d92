package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"pawhaven/internal/middleware"
	"pawhaven/internal/payment/razorpay"
	"pawhaven/internal/sqlinline"
)

func authApp(sqlExec *fakeSQL) *App {
	return newTestApp(sqlExec, &scriptedProvider{orders: []*razorpay.Order{{ID: "x"}}}, newMemDonations())
}

func TestAuthRegister(t *testing.T) {
	var gotArgs []any
	sqlExec := &fakeSQL{
		queryRow: func(query string, args ...any) pgx.Row {
			if query != sqlinline.QInsertUser {
				t.Fatalf("unexpected query: %s", query)
			}
			gotArgs = args
			return NewSimpleRow(func(dest ...any) error {
				*(dest[0].(*string)) = "user-1"
				return nil
			})
		},
	}
	app := authApp(sqlExec)

	body := `{"fullName":"Asha Rao","email":"Asha@Example.com","password":"hunter22"}`
	rr := httptest.NewRecorder()
	app.AuthRegister(rr, httptest.NewRequest("POST", "/api/users/register", strings.NewReader(body)))

	if rr.Code != 201 {
		t.Fatalf("status = %d (body %s)", rr.Code, rr.Body.String())
	}
	var resp authResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "user-1" || resp.Email != "asha@example.com" || resp.Token == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	claims, err := middleware.VerifyJWT("jwt-test-secret", resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Sub != "user-1" || claims.Name != "Asha Rao" {
		t.Fatalf("claims = %+v", claims)
	}

	storedHash := gotArgs[2].(string)
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("hunter22")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if storedHash == "hunter22" {
		t.Fatalf("password stored in plain text")
	}
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	// The insert's on-conflict clause returns no row for an existing email.
	app := authApp(&fakeSQL{})

	body := `{"fullName":"Asha","email":"asha@example.com","password":"pw"}`
	rr := httptest.NewRecorder()
	app.AuthRegister(rr, httptest.NewRequest("POST", "/api/users/register", strings.NewReader(body)))

	if rr.Code != 400 {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	app := authApp(&fakeSQL{})
	for _, body := range []string{
		`{"email":"a@b.com","password":"pw"}`,
		`{"fullName":"A","password":"pw"}`,
		`{"fullName":"A","email":"a@b.com"}`,
	} {
		rr := httptest.NewRecorder()
		app.AuthRegister(rr, httptest.NewRequest("POST", "/api/users/register", strings.NewReader(body)))
		if rr.Code != 400 {
			t.Fatalf("body %q: status = %d, want 400", body, rr.Code)
		}
	}
}

func loginSQL(t *testing.T, passwordHash string) *fakeSQL {
	t.Helper()
	return &fakeSQL{
		queryRow: func(query string, args ...any) pgx.Row {
			if query != sqlinline.QSelectUserByEmail {
				t.Fatalf("unexpected query: %s", query)
			}
			return NewSimpleRow(func(dest ...any) error {
				*(dest[0].(*string)) = "user-1"
				*(dest[1].(*string)) = "Asha Rao"
				*(dest[2].(*string)) = "asha@example.com"
				*(dest[3].(*string)) = passwordHash
				*(dest[4].(*time.Time)) = time.Now().UTC()
				return nil
			})
		},
	}
}

func TestAuthLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	app := authApp(loginSQL(t, string(hash)))

	body := `{"email":"asha@example.com","password":"hunter22"}`
	rr := httptest.NewRecorder()
	app.AuthLogin(rr, httptest.NewRequest("POST", "/api/users/login", strings.NewReader(body)))

	if rr.Code != 200 {
		t.Fatalf("status = %d (body %s)", rr.Code, rr.Body.String())
	}
	var resp authResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected token in response")
	}
}

func TestAuthLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	app := authApp(loginSQL(t, string(hash)))

	body := `{"email":"asha@example.com","password":"wrong"}`
	rr := httptest.NewRecorder()
	app.AuthLogin(rr, httptest.NewRequest("POST", "/api/users/login", strings.NewReader(body)))

	if rr.Code != 401 {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestAuthLoginUnknownEmail(t *testing.T) {
	app := authApp(&fakeSQL{})

	body := `{"email":"nobody@example.com","password":"pw"}`
	rr := httptest.NewRecorder()
	app.AuthLogin(rr, httptest.NewRequest("POST", "/api/users/login", strings.NewReader(body)))

	if rr.Code != 401 {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestAuthProfileRequiresUserContext(t *testing.T) {
	app := authApp(&fakeSQL{})

	rr := httptest.NewRecorder()
	app.AuthProfile(rr, httptest.NewRequest("GET", "/api/users/profile", nil))

	if rr.Code != 401 {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestSignAndVerifyJWT(t *testing.T) {
	secret := "test-secret"
	claims := middleware.TokenClaims{
		Sub:      "user-123",
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Exp:      time.Now().Add(time.Hour).Unix(),
		Issuer:   "pawhaven",
		Audience: "pawhaven-web",
	}
	token, err := middleware.SignJWT(secret, claims)
	if err != nil {
		t.Fatalf("SignJWT() unexpected error: %v", err)
	}
	parsed, err := middleware.VerifyJWT(secret, token)
	if err != nil {
		t.Fatalf("VerifyJWT() unexpected error: %v", err)
	}
	if parsed.Sub != claims.Sub || parsed.Name != claims.Name || parsed.Email != claims.Email {
		t.Fatalf("VerifyJWT() returned %+v, want %+v", parsed, claims)
	}
}

func TestVerifyJWTInvalidSignature(t *testing.T) {
	claims := middleware.TokenClaims{
		Sub: "user-123",
		Exp: time.Now().Add(time.Hour).Unix(),
	}
	token, err := middleware.SignJWT("secret-a", claims)
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}
	if _, err := middleware.VerifyJWT("secret-b", token); err == nil {
		t.Fatalf("VerifyJWT() expected invalid signature error")
	}
}

func TestVerifyJWTExpired(t *testing.T) {
	claims := middleware.TokenClaims{
		Sub: "user-123",
		Exp: time.Now().Add(-time.Minute).Unix(),
	}
	token, err := middleware.SignJWT("secret", claims)
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}
	if _, err := middleware.VerifyJWT("secret", token); err == nil {
		t.Fatalf("VerifyJWT() expected expiration error")
	}
}
