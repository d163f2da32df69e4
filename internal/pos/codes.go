package pos

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// barcodePrefix is the fixed in-store prefix (the EAN "20x" range is
// reserved for internal numbering, so these never collide with retail
// codes).
const barcodePrefix = "200"

// GenerateBarcode synthesizes a 13-digit EAN-13 compatible code:
// fixed prefix + 9 random digits + check digit. Uniqueness is only
// probabilistic; callers must check against existing barcodes.
func GenerateBarcode() string {
	payload := barcodePrefix + fmt.Sprintf("%09d", rand.IntN(1_000_000_000))
	return payload + fmt.Sprintf("%d", ean13CheckDigit(payload))
}

// ean13CheckDigit computes the standard EAN-13 check digit for a
// 12-digit payload: digits at even indexes weigh 1, odd indexes weigh 3.
func ean13CheckDigit(payload string) int {
	sum := 0
	for i := 0; i < 12; i++ {
		d := int(payload[i] - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}
	return (10 - sum%10) % 10
}

// ValidateEAN13 reports whether code is a 13-digit string whose last
// digit satisfies the EAN-13 checksum of the first 12.
func ValidateEAN13(code string) bool {
	if len(code) != 13 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return int(code[12]-'0') == ean13CheckDigit(code[:12])
}

// GenerateSKU builds a human-readable SKU like "GRO-SUG-4821" from the
// category and name prefixes plus 4 random digits. Purely cosmetic, no
// uniqueness guarantee.
func GenerateSKU(category, name string) string {
	return fmt.Sprintf("%s-%s-%04d", codePrefix(category), codePrefix(name), rand.IntN(10_000))
}

func codePrefix(s string) string {
	r := []rune(s)
	if len(r) > 3 {
		r = r[:3]
	}
	return strings.ToUpper(string(r))
}
