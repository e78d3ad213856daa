package pipeline

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDFormats(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

	assert.Regexp(t, regexp.MustCompile(`^ENR\d{8}[A-Z0-9]{5}$`), newEnrollmentID(now))
	assert.Regexp(t, regexp.MustCompile(`^TXN\d{13}[A-Z0-9]{5}$`), newTransactionID(now))
	assert.Regexp(t, regexp.MustCompile(`^INV\d{8}$`), newInvoiceNumber(now))
	assert.Equal(t, "14/03/2025", invoiceDate(now))
}

func TestLastDigits(t *testing.T) {
	assert.Equal(t, "45678901", lastDigits(1712345678901, 8))
	assert.Equal(t, "123", lastDigits(123, 8))
}

func TestRandomSuffixAlphabet(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s := randomSuffix(5)
		assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{5}$`), s)
		seen[s] = true
	}
	assert.Greater(t, len(seen), 1, "suffixes should not repeat constantly")
}
