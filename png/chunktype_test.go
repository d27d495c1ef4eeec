package png

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTypeFromBytes(t *testing.T) {
	t.Parallel()

	ct, err := NewChunkType([4]byte{82, 117, 83, 116})
	require.NoError(t, err)
	assert.Equal(t, [4]byte{82, 117, 83, 116}, ct.Bytes())

	fromString, err := ParseChunkType("RuSt")
	require.NoError(t, err)
	assert.Equal(t, ct, fromString)
	assert.Equal(t, "RuSt", ct.String())
}

func TestChunkTypeProperties(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code       string
		critical   bool
		public     bool
		reservedOK bool
		safeToCopy bool
	}{
		{"RuSt", true, false, true, true},
		{"ruSt", false, false, true, true},
		{"RUSt", true, true, true, true},
		{"Rust", true, false, false, true},
		{"RuST", true, false, true, false},
		{"IHDR", true, true, true, false},
		{"tEXt", false, true, true, true},
	}
	for _, c := range cases {
		ct, err := ParseChunkType(c.code)
		require.NoError(t, err, c.code)
		assert.Equal(t, c.critical, ct.IsCritical(), "%s critical", c.code)
		assert.Equal(t, c.public, ct.IsPublic(), "%s public", c.code)
		assert.Equal(t, c.reservedOK, ct.IsReservedBitValid(), "%s reserved", c.code)
		assert.Equal(t, c.reservedOK, ct.IsValid(), "%s valid", c.code)
		assert.Equal(t, c.safeToCopy, ct.IsSafeToCopy(), "%s safe to copy", c.code)
	}
}

func TestChunkTypeValidityIsNotParseability(t *testing.T) {
	t.Parallel()

	valid, err := ParseChunkType("RuSt")
	require.NoError(t, err)
	assert.True(t, valid.IsValid())

	invalid, err := ParseChunkType("Rust")
	require.NoError(t, err)
	assert.False(t, invalid.IsValid())
}

func TestChunkTypeAcceptsOnlyLetters(t *testing.T) {
	t.Parallel()

	for pos := 0; pos < 4; pos++ {
		for b := 0; b < 256; b++ {
			code := [4]byte{'a', 'B', 'c', 'D'}
			code[pos] = byte(b)
			_, err := NewChunkType(code)
			letter := ('A' <= b && b <= 'Z') || ('a' <= b && b <= 'z')
			if letter {
				assert.NoError(t, err, "byte 0x%02x at %d", b, pos)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTypeCode, "byte 0x%02x at %d", b, pos)
			}
		}
	}
}

func TestParseChunkTypeErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		err   error
	}{
		{"", ErrInvalidLength},
		{"Rus", ErrInvalidLength},
		{"RuStX", ErrInvalidLength},
		{"Ru1t", ErrInvalidTypeCode},
		{"Ru t", ErrInvalidTypeCode},
		{"Ru_t", ErrInvalidTypeCode},
		{"RuSé", ErrInvalidTypeCode},
	}
	for _, c := range cases {
		_, err := ParseChunkType(c.input)
		assert.ErrorIs(t, err, c.err, "input %q", c.input)
	}
}

func TestChunkTypeZeroValueString(t *testing.T) {
	t.Parallel()

	var ct ChunkType
	assert.Equal(t, `\x00\x00\x00\x00`, ct.String())
}

func TestChunkTypeFlags(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "critical,private,safe-to-copy", mustChunkType("RuSt").Flags())
	assert.Equal(t, "ancillary,public,reserved-bit-set,unsafe-to-copy", mustChunkType("aBcD").Flags())
}
