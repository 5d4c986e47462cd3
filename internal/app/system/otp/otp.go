// internal/app/system/otp/otp.go

// Package otp generates the one-time numeric codes emailed during
// registration.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeLength is the number of digits in a generated code.
const CodeLength = 6

var codeSpace = big.NewInt(1_000_000)

// GenerateCode returns a 6-digit code, zero-padded, drawn uniformly from
// 000000–999999. Panics if the system's cryptographic random number
// generator fails.
func GenerateCode() string {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		panic("crypto/rand.Int failed: " + err.Error())
	}
	return fmt.Sprintf("%06d", n.Int64())
}
