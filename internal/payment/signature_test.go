package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

func signFor(t *testing.T, orderID, paymentID, secret string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureMatch(t *testing.T) {
	sig := signFor(t, "order_abc", "pay_123", "secret-key")
	if !VerifySignature("order_abc", "pay_123", sig, "secret-key") {
		t.Fatalf("expected signature to verify")
	}
}

func TestVerifySignatureDeterministic(t *testing.T) {
	sig := signFor(t, "order_abc", "pay_123", "secret-key")
	for i := 0; i < 3; i++ {
		if !VerifySignature("order_abc", "pay_123", sig, "secret-key") {
			t.Fatalf("verification flipped on call %d", i)
		}
	}
}

func TestVerifySignatureMismatch(t *testing.T) {
	sig := signFor(t, "order_abc", "pay_123", "secret-key")

	cases := []struct {
		name                          string
		orderID, paymentID, signature string
		secret                        string
	}{
		{"wrong secret", "order_abc", "pay_123", sig, "other-key"},
		{"wrong order", "order_xyz", "pay_123", sig, "secret-key"},
		{"wrong payment", "order_abc", "pay_999", sig, "secret-key"},
		{"uppercase digest", "order_abc", "pay_123", strings.ToUpper(sig), "secret-key"},
		{"padded digest", "order_abc", "pay_123", " " + sig, "secret-key"},
		{"empty signature", "order_abc", "pay_123", "", "secret-key"},
	}
	for _, tc := range cases {
		if VerifySignature(tc.orderID, tc.paymentID, tc.signature, tc.secret) {
			t.Fatalf("%s: expected verification failure", tc.name)
		}
	}
}
