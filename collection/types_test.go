package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueIDStringRoundTrip(t *testing.T) {
	id := UniqueID{1, 0, 18446744073709551615, 42}
	assert.Equal(t, "1-0-18446744073709551615-42", id.String())

	parsed, err := ParseUniqueID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParseUniqueIDRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "1-2-3", "1-2-3-4-5", "a-b-c-d", "1-2-3--4", "1-2-3-18446744073709551616"} {
		_, err := ParseUniqueID(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestUniqueIDBytesRoundTrip(t *testing.T) {
	id := UniqueID{7, 8, 9, 10}
	b := id.Bytes()
	require.Len(t, b, 32)

	back, err := UniqueIDFromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, id, back)

	_, err = UniqueIDFromBytes(b[:31])
	assert.Error(t, err)
}

func TestRandomUniqueID(t *testing.T) {
	a, err := RandomUniqueID()
	require.NoError(t, err)
	b, err := RandomUniqueID()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
