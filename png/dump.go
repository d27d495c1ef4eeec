package png

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

const maxTextPreview = 64

// Flags renders the property bits of the type code.
func (t ChunkType) Flags() string {
	flags := make([]string, 0, 4)
	if t.IsCritical() {
		flags = append(flags, "critical")
	} else {
		flags = append(flags, "ancillary")
	}
	if t.IsPublic() {
		flags = append(flags, "public")
	} else {
		flags = append(flags, "private")
	}
	if !t.IsReservedBitValid() {
		flags = append(flags, "reserved-bit-set")
	}
	if t.IsSafeToCopy() {
		flags = append(flags, "safe-to-copy")
	} else {
		flags = append(flags, "unsafe-to-copy")
	}
	return strings.Join(flags, ",")
}

// Describe decodes the data of well-known chunks for humans.
// It returns an empty string for chunks it knows nothing about.
func (c *Chunk) Describe() string {
	d := c.data
	switch c.chunkType {
	case IHDR:
		if len(d) != 13 {
			return "corrupted!"
		}
		return fmt.Sprintf("Width = %d, Height = %d, Bit depth = %d, Color type = %d, Compression method = %d, Filter method = %d, Interlace method = %d",
			binary.BigEndian.Uint32(d[0:4]), binary.BigEndian.Uint32(d[4:8]), d[8], d[9], d[10], d[11], d[12])
	case SRGB:
		if len(d) != 1 {
			return "corrupted!"
		}
		return fmt.Sprintf("Rendering intent = %d", d[0])
	case TEXT:
		keyword, text, ok := bytes.Cut(d, []byte{0})
		if !ok || len(keyword) == 0 {
			return "corrupted!"
		}
		return fmt.Sprintf("%q: %q", keyword, preview(text))
	}

	if !c.chunkType.IsPublic() && utf8.Valid(d) {
		return fmt.Sprintf("text: %q", preview(d))
	}
	return ""
}

func preview(b []byte) string {
	if len(b) <= maxTextPreview {
		return string(b)
	}
	return string(b[:maxTextPreview]) + "..."
}

// DumpTo prints every chunk with its offset, length, CRC and properties.
func (f *File) DumpTo(w io.Writer) {
	offset := int64(len(Signature))
	for _, c := range f.chunks {
		fmt.Fprintf(w, "%08x: chunk '%s' (%s) crc %08x [%s]\n",
			offset, c, humanize.Bytes(uint64(c.Length())), c.crc, c.chunkType.Flags())
		if desc := c.Describe(); desc != "" {
			fmt.Fprintf(w, "  %s\n", desc)
		}
		offset += c.Size()
	}
}
