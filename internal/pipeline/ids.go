package pipeline

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Legacy ID formats: a prefix, the trailing digits of the unix-millis
// timestamp, and a short random suffix. Kept byte-compatible so records
// written by the old frontend and by this module are indistinguishable.

func newEnrollmentID(now time.Time) string {
	return "ENR" + lastDigits(now.UnixMilli(), 8) + randomSuffix(5)
}

func newTransactionID(now time.Time) string {
	return fmt.Sprintf("TXN%d%s", now.UnixMilli(), randomSuffix(5))
}

func newInvoiceNumber(now time.Time) string {
	return "INV" + lastDigits(now.UnixMilli(), 8)
}

func invoiceDate(now time.Time) string {
	return now.Format("02/01/2006")
}

func lastDigits(n int64, count int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= count {
		return s
	}
	return s[len(s)-count:]
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			buf[i] = idAlphabet[time.Now().UnixNano()%int64(len(idAlphabet))]
			continue
		}
		buf[i] = idAlphabet[idx.Int64()]
	}
	return string(buf)
}
