package receipt

import (
	"crypto/rand"
	"fmt"
	"time"
)

const (
	suffixLen      = 6
	suffixAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// New builds a receipt identifier of the form
// {prefix}_{unix-millis}_{6 random alphanumerics}. Uniqueness is
// probabilistic; the payment_order table's unique key on receipt_id is the
// real guard.
func New(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	buf := make([]byte, suffixLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; fall back to
		// a time-derived suffix rather than panic mid-checkout.
		nanos := time.Now().UnixNano()
		for i := range buf {
			buf[i] = suffixAlphabet[int(nanos>>uint(i*6))%len(suffixAlphabet)]
		}
		return string(buf)
	}

	for i, b := range buf {
		buf[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}
	return string(buf)
}
