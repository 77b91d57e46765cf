package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP returns a 6-digit numeric one-time code.
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the platform entropy source is broken
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

const referralCodeLength = 8
const referralCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReferralCode returns an 8-character alphanumeric code. Uniqueness
// is enforced by the database constraint; callers retry on conflict.
func GenerateReferralCode() string {
	b := make([]byte, referralCodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referralCharset))))
		if err != nil {
			n = big.NewInt(0)
		}
		b[i] = referralCharset[n.Int64()]
	}
	return string(b)
}
