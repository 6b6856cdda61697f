/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package session

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	// CodeAlphabet leaves out I, O, 0 and 1 so codes can be read aloud.
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	CodeLength   = 4
)

// CodeSource produces candidate room codes. Uniqueness is the caller's job.
type CodeSource func() (string, error)

// GenerateCode draws CodeLength characters uniformly from CodeAlphabet.
func GenerateCode() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}

	// 256 is a multiple of the alphabet size, so the modulo is unbiased.
	out := make([]byte, CodeLength)
	for i := range out {
		out[i] = CodeAlphabet[int(buf[i])%len(CodeAlphabet)]
	}

	return string(out), nil
}

// ValidCode reports whether code could have been produced by GenerateCode.
func ValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}

	for _, r := range code {
		if !strings.ContainsRune(CodeAlphabet, r) {
			return false
		}
	}

	return true
}
