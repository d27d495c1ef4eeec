package png

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"unicode/utf8"
)

// chunk = length, type, data, CRC
const (
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4

	headerSize   = lengthSize + typeSize
	overheadSize = headerSize + crcSize
)

// Chunk is a chunk of png.
type Chunk struct {
	chunkType ChunkType
	data      []byte
	crc       uint32
}

// NewChunk creates a chunk holding data and computes its CRC.
// data is copied.
func NewChunk(t ChunkType, data []byte) *Chunk {
	d := bytes.Clone(data)
	if d == nil {
		d = []byte{}
	}
	return &Chunk{
		chunkType: t,
		data:      d,
		crc:       checksum(t, d),
	}
}

// ParseChunk parses exactly one serialized chunk.
// The CRC is verified against the type and data.
func ParseChunk(b []byte) (*Chunk, error) {
	if len(b) < overheadSize {
		return nil, fmt.Errorf("%w: need at least %d bytes, have %d", ErrTruncated, overheadSize, len(b))
	}

	length := binary.BigEndian.Uint32(b[0:lengthSize])
	if uint64(len(b)) != uint64(length)+overheadSize {
		return nil, fmt.Errorf("%w: declared length %d, have %d bytes of data", ErrTruncated, length, len(b)-overheadSize)
	}

	var code [4]byte
	copy(code[:], b[lengthSize:headerSize])
	t, err := NewChunkType(code)
	if err != nil {
		return nil, err
	}

	data := b[headerSize : headerSize+int(length)]
	crc := binary.BigEndian.Uint32(b[headerSize+int(length):])
	if sum := checksum(t, data); sum != crc {
		return nil, fmt.Errorf("%w: chunk '%s' has %08x, computed %08x", ErrCRCMismatch, t, crc, sum)
	}

	return &Chunk{
		chunkType: t,
		data:      bytes.Clone(data),
		crc:       crc,
	}, nil
}

func checksum(t ChunkType, data []byte) uint32 {
	h := crc32.NewIEEE()
	h.Write(t.code[:])
	h.Write(data)
	return h.Sum32()
}

// Length returns the number of data bytes.
func (c *Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// Type returns the chunk type.
func (c *Chunk) Type() ChunkType {
	return c.chunkType
}

// Data returns a copy of the chunk data.
func (c *Chunk) Data() []byte {
	return bytes.Clone(c.data)
}

// CRC returns the CRC-32 of the type and data.
func (c *Chunk) CRC() uint32 {
	return c.crc
}

// DataString returns the data as text.
func (c *Chunk) DataString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("%w: chunk '%s'", ErrInvalidUTF8, c.chunkType)
	}
	return string(c.data), nil
}

// Size returns the serialized size of the chunk.
func (c *Chunk) Size() int64 {
	return int64(len(c.data)) + overheadSize
}

// Bytes serializes the chunk.
func (c *Chunk) Bytes() []byte {
	buf := make([]byte, 0, c.Size())
	buf = binary.BigEndian.AppendUint32(buf, c.Length())
	buf = append(buf, c.chunkType.code[:]...)
	buf = append(buf, c.data...)
	buf = binary.BigEndian.AppendUint32(buf, c.crc)
	return buf
}

// WriteTo writes the serialized chunk to w.
func (c *Chunk) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.Bytes())
	return int64(n), err
}

// String makes Chunk satisfy the Stringer interface.
func (c *Chunk) String() string {
	return c.chunkType.String()
}
