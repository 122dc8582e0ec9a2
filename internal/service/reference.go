package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewReference mints a caller-visible reference for a ledger entry:
// <PREFIX><YYYYMMDD-HHMMSS>-<6 random alphanumerics>. The prefix identifies
// the operation's origin and settlement path and is load-bearing for
// idempotency scoping and sweeper routing.
func NewReference(prefix string) string {
	return prefix + time.Now().UTC().Format("20060102-150405") + "-" + randomSuffix(6)
}

func randomSuffix(n int) string {
	max := big.NewInt(int64(len(referenceAlphabet)))
	suffix := make([]byte, n)
	for i := range suffix {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// a reference collision would surface as a unique violation.
			panic(fmt.Sprintf("reference randomness unavailable: %v", err))
		}
		suffix[i] = referenceAlphabet[idx.Int64()]
	}
	return string(suffix)
}
