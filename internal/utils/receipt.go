package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// GenerateReceiptNumber generates a receipt number for a recorded
// payment: RCP-<date>-<6 random digits>
func GenerateReceiptNumber(date time.Time) (string, error) {
	const digits = 6

	b := make([]byte, digits)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random digits: %w", err)
	}

	var builder strings.Builder
	for _, v := range b {
		builder.WriteByte(v%10 + '0')
	}

	return fmt.Sprintf("RCP-%s-%s", date.Format("20060102"), builder.String()), nil
}
