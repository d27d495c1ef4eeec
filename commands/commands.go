// Package commands implements the pngme operations on png files.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/ysh86/pngme/internal/fsutil"
	"github.com/ysh86/pngme/png"
)

// Request is one of Encode, Decode, Remove, Print or Verify.
type Request interface {
	isRequest()
}

// Encode hides Message in a new chunk of type ChunkType at the end of the file.
type Encode struct {
	Path      string
	ChunkType string
	Message   string
}

// Decode prints the message stored in the first chunk of type ChunkType.
type Decode struct {
	Path      string
	ChunkType string
}

// Remove deletes the first chunk of type ChunkType.
type Remove struct {
	Path      string
	ChunkType string
}

// Print lists the chunks of the file.
type Print struct {
	Path    string
	Verbose bool
}

// Verify checks that every file parses and all CRCs match.
type Verify struct {
	Paths []string
}

func (Encode) isRequest() {}
func (Decode) isRequest() {}
func (Remove) isRequest() {}
func (Print) isRequest()  {}
func (Verify) isRequest() {}

// Run executes req and writes its output to w.
// Files are only written after the whole operation succeeded in memory.
func Run(req Request, w io.Writer) error {
	switch r := req.(type) {
	case Encode:
		return runEncode(r)
	case Decode:
		return runDecode(r, w)
	case Remove:
		return runRemove(r)
	case Print:
		return runPrint(r, w)
	case Verify:
		return runVerify(r, w)
	case nil:
		return errors.New("no command given")
	default:
		return fmt.Errorf("unknown request %T", req)
	}
}

func load(path string) (*png.File, error) {
	f, err := png.ReadFile(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded png", "path", path, "chunks", len(f.Chunks()), "size", f.Size())
	return f, nil
}

func save(path string, f *png.File) error {
	if err := fsutil.ReplaceFile(path, f.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", png.ErrIO, err)
	}
	slog.Info("wrote png", "path", path, "chunks", len(f.Chunks()), "size", f.Size())
	return nil
}

func runEncode(r Encode) error {
	chunkType, err := png.ParseChunkType(r.ChunkType)
	if err != nil {
		return err
	}
	if chunkType.IsCritical() {
		slog.Warn("chunk type is critical, decoders that reach it will reject the image", "type", chunkType)
	}
	if !chunkType.IsValid() {
		slog.Warn("chunk type has the reserved bit set (third letter lower case)", "type", chunkType)
	}

	f, err := load(r.Path)
	if err != nil {
		return err
	}
	c := png.NewChunk(chunkType, []byte(r.Message))
	f.AppendChunk(c)
	slog.Debug("appended chunk", "type", chunkType, "length", c.Length(), "crc", c.CRC())

	return save(r.Path, f)
}

func runDecode(r Decode, w io.Writer) error {
	f, err := load(r.Path)
	if err != nil {
		return err
	}

	c := f.ChunkByType(r.ChunkType)
	if c == nil {
		_, err := fmt.Fprintf(w, "chunk '%s' not found\n", r.ChunkType)
		return err
	}
	text, err := c.DataString()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}

func runRemove(r Remove) error {
	f, err := load(r.Path)
	if err != nil {
		return err
	}

	c, err := f.RemoveChunk(r.ChunkType)
	if err != nil {
		return err
	}
	slog.Debug("removed chunk", "type", c.Type(), "length", c.Length())

	return save(r.Path, f)
}

func runPrint(r Print, w io.Writer) error {
	f, err := load(r.Path)
	if err != nil {
		return err
	}

	if r.Verbose {
		fmt.Fprintf(w, "%s: %d chunks, %d bytes\n", r.Path, len(f.Chunks()), f.Size())
		f.DumpTo(w)
		return nil
	}
	_, err = fmt.Fprint(w, f)
	return err
}

func runVerify(r Verify, w io.Writer) error {
	if len(r.Paths) == 0 {
		return errors.New("no files to verify")
	}

	var merr *multierror.Error
	for _, path := range r.Paths {
		f, err := load(path)
		if err != nil {
			merr = multierror.Append(merr, err)
			fmt.Fprintf(w, "FAIL %s\n", path)
			continue
		}
		fmt.Fprintf(w, "ok   %s (%d chunks)\n", path, len(f.Chunks()))
	}
	return merr.ErrorOrNil()
}
