package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "cidreg/pkg/domain-errors"
)

func TestNewCID(t *testing.T) {
	t.Run("bounds", func(t *testing.T) {
		for _, n := range []int{1000, 1234, 9999} {
			cid, err := NewCID(n)
			require.NoError(t, err)
			assert.Equal(t, n, int(cid))
		}
		for _, n := range []int{-1, 0, 999, 10000, 123456} {
			_, err := NewCID(n)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidCID), "n=%d", n)
		}
	})
}

func TestParseCID(t *testing.T) {
	cid, err := ParseCID("4321")
	require.NoError(t, err)
	assert.Equal(t, CID(4321), cid)

	for _, s := range []string{"", "abc", "12.3", "999", "10000"} {
		_, err := ParseCID(s)
		require.Error(t, err, "s=%q", s)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidCID), "s=%q", s)
	}
}

func TestCIDName(t *testing.T) {
	cid, err := NewCID(1234)
	require.NoError(t, err)
	assert.Equal(t, "1234.cid", cid.Name("cid"))
	assert.Equal(t, "1234", cid.String())
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("acct-4f2a")
	require.NoError(t, err)
	assert.Equal(t, Address("acct-4f2a"), addr)
	assert.False(t, addr.IsZero())

	long := make([]byte, 129)
	for i := range long {
		long[i] = 'a'
	}
	for _, s := range []string{"", " padded", "padded ", string(long)} {
		_, err := ParseAddress(s)
		require.Error(t, err, "s=%q", s)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), "s=%q", s)
	}

	assert.True(t, Address("").IsZero())
}
