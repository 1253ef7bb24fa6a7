package checkout

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MerchantPrefix = "WKS"
	base36         = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffixLen      = 4
)

// NewInvoiceID returns MerchantPrefix + YYMMDDhhmm + 4 random base-36 chars.
// Collisions inside the same minute are possible but unlikely.
func NewInvoiceID(now time.Time) string {
	return MerchantPrefix + now.Format("0601021504") + randomSuffix(suffixLen)
}

// unbiasedLimit is the largest multiple of 36 that fits in a byte.
const unbiasedLimit = 252

func randomSuffix(n int) string {
	var b strings.Builder
	for b.Len() < n {
		for i, c := range uuid.New() {
			// bytes 6 and 8 carry the version and variant bits
			if i == 6 || i == 8 || c >= unbiasedLimit {
				continue
			}
			b.WriteByte(base36[int(c)%len(base36)])
			if b.Len() == n {
				break
			}
		}
	}
	return b.String()
}
