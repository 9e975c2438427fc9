package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// NumericCode generates a cryptographically random numeric code of the given
// number of digits. The first digit is always non-zero so the code length is
// stable (e.g. 6 digits spans 100000..999999).
func NumericCode(digits int) (string, error) {
	if digits < 1 {
		return "", fmt.Errorf("code length must be positive, got %d", digits)
	}

	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits-1)), nil)
	span := new(big.Int).Mul(low, big.NewInt(9))

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("failed to generate numeric code: %w", err)
	}

	return n.Add(n, low).String(), nil
}

// MustNumericCode is like NumericCode but panics on error. Use only where a
// failing random source is unrecoverable anyway.
func MustNumericCode(digits int) string {
	code, err := NumericCode(digits)
	if err != nil {
		panic(fmt.Sprintf("cryptox: failed to generate numeric code: %v", err))
	}
	return code
}
