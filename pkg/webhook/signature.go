package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw webhook body
const SignatureHeader = "X-Webhook-Signature"

// Sign returns the sha256 HMAC hex signature of payload
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHMAC verifies a sha256 HMAC hex signature against payload and secret.
// An optional "sha256=" prefix is accepted.
func VerifyHMAC(secret string, payload []byte, signatureHex string) bool {
	signatureHex = strings.TrimPrefix(strings.TrimSpace(signatureHex), "sha256=")
	if secret == "" || signatureHex == "" {
		return false
	}
	expected := Sign(secret, payload)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signatureHex)))
}
