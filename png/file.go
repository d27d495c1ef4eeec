package png

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Signature is the fixed first 8 bytes of every png file.
var Signature = [8]byte{137, 80, 78, 71, 13, 10, 26, 10}

// File is a png file: the signature followed by an ordered list of chunks.
type File struct {
	chunks []*Chunk

	reader *io.SectionReader
}

// New creates a file holding the given chunks.
func New(chunks ...*Chunk) *File {
	return &File{chunks: append([]*Chunk(nil), chunks...)}
}

// NewFile creates a file struct reading from sr. Call Parse to read the chunks.
func NewFile(sr *io.SectionReader) (*File, error) {
	if sr == nil {
		return nil, errors.New("png: nil reader")
	}
	f := &File{reader: sr}
	return f, nil
}

// Parse parses a png file held in memory.
func Parse(data []byte) (*File, error) {
	f, err := NewFile(io.NewSectionReader(bytes.NewReader(data), 0, int64(len(data))))
	if err != nil {
		return nil, err
	}
	if err := f.Parse(); err != nil {
		return nil, err
	}
	return f, nil
}

// ReadFile reads and parses the png file at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse reads the signature and all chunks. Any invalid chunk fails the whole file.
func (f *File) Parse() error {
	if f.reader == nil {
		return errors.New("png: file has no reader")
	}

	var signature [8]byte
	if err := f.readAt(signature[:], 0); err != nil || signature != Signature {
		return ErrBadSignature
	}

	var chunks []*Chunk
	offset := int64(len(signature))
	size := f.reader.Size()
	for offset < size {
		if size-offset < overheadSize {
			return fmt.Errorf("%w: %d trailing bytes at offset %d", ErrTruncated, size-offset, offset)
		}

		var lengthBuf [lengthSize]byte
		if err := f.readAt(lengthBuf[:], offset); err != nil {
			return fmt.Errorf("%w: %w", ErrTruncated, err)
		}
		// chunk = length, type, data, CRC
		total := int64(binary.BigEndian.Uint32(lengthBuf[:])) + overheadSize
		if total > size-offset {
			return fmt.Errorf("%w: chunk at offset %d needs %d bytes, %d left", ErrTruncated, offset, total, size-offset)
		}

		raw := make([]byte, total)
		if err := f.readAt(raw, offset); err != nil {
			return fmt.Errorf("%w: %w", ErrTruncated, err)
		}
		c, err := ParseChunk(raw)
		if err != nil {
			return fmt.Errorf("chunk at offset %d: %w", offset, err)
		}
		chunks = append(chunks, c)
		offset += total
	}

	f.chunks = chunks
	f.reader = nil
	return nil
}

func (f *File) readAt(p []byte, off int64) error {
	n, err := f.reader.ReadAt(p, off)
	if n == len(p) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Chunks returns the chunks in file order.
func (f *File) Chunks() []*Chunk {
	return append([]*Chunk(nil), f.chunks...)
}

// AppendChunk adds c after the last chunk.
func (f *File) AppendChunk(c *Chunk) {
	f.chunks = append(f.chunks, c)
}

// RemoveChunk removes the first chunk of the given type and returns it.
func (f *File) RemoveChunk(chunkType string) (*Chunk, error) {
	i := f.index(chunkType)
	if i < 0 {
		return nil, fmt.Errorf("%w: '%s'", ErrChunkNotFound, chunkType)
	}
	c := f.chunks[i]
	f.chunks = append(f.chunks[:i:i], f.chunks[i+1:]...)
	return c, nil
}

// ChunkByType returns the first chunk of the given type, or nil.
func (f *File) ChunkByType(chunkType string) *Chunk {
	if i := f.index(chunkType); i >= 0 {
		return f.chunks[i]
	}
	return nil
}

func (f *File) index(chunkType string) int {
	for i, c := range f.chunks {
		if c.chunkType.String() == chunkType {
			return i
		}
	}
	return -1
}

// Size returns the serialized size of the file.
func (f *File) Size() int64 {
	size := int64(len(Signature))
	for _, c := range f.chunks {
		size += c.Size()
	}
	return size
}

// Bytes serializes the file.
func (f *File) Bytes() []byte {
	buf := make([]byte, 0, f.Size())
	buf = append(buf, Signature[:]...)
	for _, c := range f.chunks {
		buf = append(buf, c.Bytes()...)
	}
	return buf
}

// WriteTo writes the serialized file to w.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(Signature[:])
	written := int64(n)
	if err != nil {
		return written, err
	}
	for _, c := range f.chunks {
		n, err := c.WriteTo(w)
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// String makes File satisfy the Stringer interface.
func (f *File) String() string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("png: %d chunks\n", len(f.chunks)))
	for _, c := range f.chunks {
		buf.WriteString(fmt.Sprintf("  %s\n", c))
	}
	return buf.String()
}
