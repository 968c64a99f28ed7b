// Package invite generates couple invitation codes.
package invite

import (
	"crypto/rand"
	"math/big"
)

// Alphabet is the 32-symbol set codes are drawn from. Visually ambiguous
// characters (0/O, 1/I/L) are excluded.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength is the fixed length of an invitation code.
const CodeLength = 8

// NewCode returns a random invitation code: CodeLength characters drawn
// uniformly from Alphabet. Uniqueness is the caller's responsibility;
// callers retry against the store until no collision is found.
func NewCode() string {
	max := big.NewInt(int64(len(Alphabet)))
	code := make([]byte, CodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform's entropy
			// source is broken; nothing sensible to do but stop.
			panic(err)
		}
		code[i] = Alphabet[n.Int64()]
	}
	return string(code)
}
