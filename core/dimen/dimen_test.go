package dimen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimen(t *testing.T) {
	s, err := ParseDimen("12px")
	require.NoError(t, err)
	assert.Equal(t, 12*BP, s.Dimen)
	//
	s, err = ParseDimen("0")
	require.NoError(t, err)
	assert.Equal(t, Zero, s.Dimen)
	//
	s, err = ParseDimen("1.5CM")
	require.NoError(t, err)
	assert.Equal(t, Dimen(2786565), s.Dimen)
	//
	s, err = ParseDimen("20%")
	require.NoError(t, err)
	assert.True(t, s.IsPercent)
	assert.Equal(t, 20.0, s.Percent)
	assert.Equal(t, "20%", s.String())
}

func TestParseDimenErrors(t *testing.T) {
	for _, input := range []string{"", "cm", "12furlong", "120%", "1.2.3mm", "99999in"} {
		_, err := ParseDimen(input)
		assert.True(t, errors.Is(err, ErrFormat), "input %q", input)
	}
}
