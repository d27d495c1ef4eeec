package png

import "errors"

// Errors returned by this package. Call sites wrap them with context, so
// compare with errors.Is.
var (
	ErrInvalidTypeCode = errors.New("invalid chunk type code")
	ErrInvalidLength   = errors.New("chunk type must be 4 characters")
	ErrTruncated       = errors.New("truncated chunk")
	ErrCRCMismatch     = errors.New("crc mismatch")
	ErrBadSignature    = errors.New("invalid signature")
	ErrChunkNotFound   = errors.New("chunk not found")
	ErrInvalidUTF8     = errors.New("chunk data is not valid utf-8")
	ErrIO              = errors.New("i/o error")
)
