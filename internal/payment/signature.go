package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature checks a Razorpay payment signature. The provider
// signs the exact string "<orderID>|<paymentID>" with HMAC-SHA256
// keyed by the merchant's key secret and renders it as lowercase hex;
// any change to that message format breaks verification of every
// signature the provider has ever issued.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
