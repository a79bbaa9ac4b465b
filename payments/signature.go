package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader is the header the payment provider signs webhook deliveries
// with. Format: "t=<unix seconds>,v1=<hex hmac-sha256>".
const SignatureHeader = "X-Provider-Signature"

// VerifySignature checks that header authenticates payload. The signed string
// is "<t>.<payload>" keyed with the shared secret, so neither the timestamp
// nor the body can be swapped independently. The timestamp must be within
// tolerance of now in either direction.
//
// Every failure mode returns ErrInvalidSignature so the boundary cannot leak
// whether the signature or the timestamp was wrong.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration) error {
	ts, sig, ok := parseSignatureHeader(header)
	if !ok {
		return ErrInvalidSignature
	}

	age := time.Since(time.Unix(ts, 0))
	if age > tolerance || age < -tolerance {
		return ErrInvalidSignature
	}

	expected := ComputeSignature(payload, ts, secret)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return ErrInvalidSignature
	}
	return nil
}

// ComputeSignature returns the hex HMAC-SHA256 over "<ts>.<payload>".
// Exposed so tests and outbound tooling can produce valid headers.
func ComputeSignature(payload []byte, ts int64, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// BuildSignatureHeader formats a header ComputeSignature-style tooling can send.
func BuildSignatureHeader(payload []byte, ts int64, secret string) string {
	return fmt.Sprintf("t=%d,v1=%s", ts, ComputeSignature(payload, ts, secret))
}

func parseSignatureHeader(header string) (ts int64, sig string, ok bool) {
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			return 0, "", false
		}
		switch key {
		case "t":
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, "", false
			}
			ts = parsed
		case "v1":
			sig = value
		}
	}
	if ts == 0 || sig == "" {
		return 0, "", false
	}
	return ts, sig, true
}
