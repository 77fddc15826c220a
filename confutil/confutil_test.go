package confutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyRange(t *testing.T) {
	assert.True(t, MoneyRange(0))
	assert.True(t, MoneyRange(1))
	assert.True(t, MoneyRange(MaxMoney))
	assert.False(t, MoneyRange(MaxMoney+1))
	assert.False(t, MoneyRange(-1))
}

func TestValueBytesRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 5000, uint64(MaxMoney)}
	for _, val := range values {
		encoded, err := ValueToBytes(val)
		require.NoError(t, err)
		require.Len(t, encoded, 9)
		assert.Equal(t, ExplicitValuePrefix, encoded[0])

		decoded, err := ValueFromBytes(encoded)
		require.NoError(t, err)
		assert.Equal(t, val, decoded)
	}
}

func TestValueFromBytesRejectsMalformed(t *testing.T) {
	_, err := ValueFromBytes([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidValueLength)

	encoded, err := ValueToBytes(1000)
	require.NoError(t, err)
	encoded[0] = 9
	_, err = ValueFromBytes(encoded)
	assert.ErrorIs(t, err, ErrInvalidValuePrefix)
}

func TestReverseBytes(t *testing.T) {
	buf := []byte{1, 2, 3}
	assert.Equal(t, []byte{3, 2, 1}, ReverseBytes(buf))
	// input is left untouched
	assert.Equal(t, []byte{1, 2, 3}, buf)
	assert.Empty(t, ReverseBytes(nil))
}
