package webhook

import (
	"strings"
	"testing"
)

func TestVerifyHMAC(t *testing.T) {
	payload := []byte(`{"transcript_id":"abc","status":"completed"}`)
	sig := Sign("s3cret", payload)

	tests := []struct {
		name   string
		secret string
		body   []byte
		sig    string
		want   bool
	}{
		{"valid", "s3cret", payload, sig, true},
		{"prefixed", "s3cret", payload, "sha256=" + sig, true},
		{"uppercase hex", "s3cret", payload, strings.ToUpper(sig), true},
		{"wrong secret", "other", payload, sig, false},
		{"tampered body", "s3cret", []byte(`{"transcript_id":"xyz"}`), sig, false},
		{"empty signature", "s3cret", payload, "", false},
		{"empty secret", "", payload, sig, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyHMAC(tt.secret, tt.body, tt.sig); got != tt.want {
				t.Errorf("VerifyHMAC() = %v, want %v", got, tt.want)
			}
		})
	}
}
