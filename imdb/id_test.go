package imdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalIDNumeric(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1", "0000001"},
		{"42", "0000042"},
		{"66921", "0066921"},
		{"1234567", "1234567"},
		{"12345678", "12345678"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := canonicalID(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalIDPrefixed(t *testing.T) {
	for _, input := range []string{"tt1234567", "nm1234567"} {
		got, err := canonicalID(input)
		require.NoError(t, err)
		assert.Equal(t, "1234567", got)
	}

	got, err := canonicalID("tt12345678")
	require.NoError(t, err)
	assert.Equal(t, "12345678", got)
}

func TestCanonicalIDInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "tt123", "xx1234567", "123456789", "tt123456789"} {
		_, err := canonicalID(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestTrimRefID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"tt0066921", "0066921"},
		{"nm0000040", "0000040"},
		{"co0026840", "0026840"},
		{"kw0003714", "0003714"},
		{"vi1234567890", "1234567890"},
		{"ev0000003", "0000003"},
		{"0066921", "0066921"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, trimRefID(tt.input))
	}
}
