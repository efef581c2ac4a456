package domain

import (
	"crypto/rand"
	"strings"

	"inventar-server/internal/infra/utils"
)

// GenerateInventoryNumber returns a fresh random token in canonical UUID
// form. Uniqueness against existing records is the store's concern.
func GenerateInventoryNumber() string {
	return utils.GenerateUUID()
}

// GenerateBarcode produces a 13-digit numeric string: 12 random digits plus
// the EAN-13 mod-10 check digit.
func GenerateBarcode() string {
	digits := make([]int, 12)
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err == nil {
		for i, b := range buf {
			digits[i] = int(b) % 10
		}
	}

	var sb strings.Builder
	for _, d := range digits {
		sb.WriteByte(byte('0' + d))
	}
	sb.WriteByte(byte('0' + ean13CheckDigit(digits)))
	return sb.String()
}

// VerifyBarcode reports whether value is a well-formed EAN-13 barcode: 13
// decimal digits whose final digit equals the checksum over the first 12.
func VerifyBarcode(value string) bool {
	if len(value) != 13 {
		return false
	}
	digits := make([]int, 13)
	for i, r := range value {
		if r < '0' || r > '9' {
			return false
		}
		digits[i] = int(r - '0')
	}
	return ean13CheckDigit(digits[:12]) == digits[12]
}

// ean13CheckDigit computes the weighted mod-10 checksum: odd positions
// (0-indexed even) weigh 1, even positions weigh 3.
func ean13CheckDigit(digits []int) int {
	sum := 0
	for i, d := range digits {
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}
	return (10 - sum%10) % 10
}
