package png

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// ChunkType is the 4 byte type code of a chunk.
//
// Bit 5 of each byte (lower case) carries a property:
//
//	bLOb
//	|||+- safe-to-copy bit is 1 (lower case)
//	||+-- reserved bit is 0 (upper case)
//	|+--- private bit is 1 (lower case)
//	+---- ancillary bit is 1 (lower case)
type ChunkType struct {
	code [4]byte
}

// Well-known chunk types.
var (
	IHDR = mustChunkType("IHDR")
	PLTE = mustChunkType("PLTE")
	IDAT = mustChunkType("IDAT")
	IEND = mustChunkType("IEND")
	SRGB = mustChunkType("sRGB")
	TEXT = mustChunkType("tEXt")
)

func mustChunkType(s string) ChunkType {
	t, err := ParseChunkType(s)
	if err != nil {
		panic(err)
	}
	return t
}

func isLetter(b byte) bool {
	return ('A' <= b && b <= 'Z') || ('a' <= b && b <= 'z')
}

func isUpper(b byte) bool {
	return b&0x20 == 0
}

// NewChunkType creates a ChunkType from raw bytes. Every byte must be an ASCII letter.
func NewChunkType(b [4]byte) (ChunkType, error) {
	for i, c := range b {
		if !isLetter(c) {
			return ChunkType{}, fmt.Errorf("%w: byte %d is 0x%02x", ErrInvalidTypeCode, i, c)
		}
	}
	return ChunkType{code: b}, nil
}

// ParseChunkType parses the textual form of a type code, e.g. "RuSt".
func ParseChunkType(s string) (ChunkType, error) {
	if n := utf8.RuneCountInString(s); n != 4 {
		return ChunkType{}, fmt.Errorf("%w: got %d", ErrInvalidLength, n)
	}
	if len(s) != 4 {
		// 4 characters, but at least one of them is not ASCII.
		return ChunkType{}, fmt.Errorf("%w: %q", ErrInvalidTypeCode, s)
	}

	var b [4]byte
	copy(b[:], s)
	return NewChunkType(b)
}

// Bytes returns the raw type code.
func (t ChunkType) Bytes() [4]byte {
	return t.code
}

// IsCritical reports whether decoders must understand the chunk.
func (t ChunkType) IsCritical() bool {
	return isUpper(t.code[0])
}

// IsPublic reports whether the type is part of the PNG specification.
func (t ChunkType) IsPublic() bool {
	return isUpper(t.code[1])
}

// IsReservedBitValid reports whether the reserved bit is 0, as PNG requires.
func (t ChunkType) IsReservedBitValid() bool {
	return isUpper(t.code[2])
}

// IsSafeToCopy reports whether editors may copy the chunk without understanding it.
func (t ChunkType) IsSafeToCopy() bool {
	return !isUpper(t.code[3])
}

// IsValid reports whether the type code conforms to the current PNG version.
func (t ChunkType) IsValid() bool {
	return t.IsReservedBitValid()
}

// String makes ChunkType satisfy the Stringer interface.
func (t ChunkType) String() string {
	for _, c := range t.code {
		if !isLetter(c) {
			q := strconv.QuoteToASCII(string(t.code[:]))
			return q[1 : len(q)-1]
		}
	}
	return string(t.code[:])
}
