package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCodeAlphabet(t *testing.T) {
	assert.Len(t, CodeAlphabet, 32)
	for _, r := range "IO01" {
		assert.NotContains(t, CodeAlphabet, string(r))
	}
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.True(t, ValidCode(code), "generated invalid code %q", code)
	}
}

func TestValidCode(t *testing.T) {
	assert.True(t, ValidCode("AB3C"))
	assert.False(t, ValidCode("ab3c"))
	assert.False(t, ValidCode("AB3"))
	assert.False(t, ValidCode("AB3CD"))
	assert.False(t, ValidCode("AB0C"))
	assert.False(t, ValidCode("ABIC"))
	assert.False(t, ValidCode(""))
}

func TestPropertyValidCodeMatchesAlphabet(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		code := rapid.StringOfN(rapid.RuneFrom([]rune(CodeAlphabet+"IO01a-")), 4, 4, -1).Draw(t, "code")
		want := !strings.ContainsAny(code, "IO01a-")
		if got := ValidCode(code); got != want {
			t.Fatalf("ValidCode(%q) = %v, want %v", code, got, want)
		}
	})
}
