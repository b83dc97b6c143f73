package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSize(t *testing.T) {
	const def = int64(7)
	tests := []struct {
		input string
		want  int64
	}{
		{"10MB", 10 << 20},
		{"512kb", 512 << 10},
		{"2GB", 2 << 30},
		{"64B", 64},
		{"1024", 1024},
		{" 1 MB ", 1 << 20},
		{"", def},
		{"lots", def},
		{"-5MB", def},
		{"1.5MB", def},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseSize(tc.input, def))
		})
	}
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "supe***", MaskSecret("supersecretsigningkey", 4))
	assert.Equal(t, "***", MaskSecret("abcd", 4))
	assert.Equal(t, "***", MaskSecret("", 4))
}
