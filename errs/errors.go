// Package errs defines the sentinel errors shared across the pbf module.
//
// Every failure returned by this module wraps exactly one of these sentinels,
// so callers can classify errors with errors.Is regardless of the wrapped
// detail or cause.
package errs

import "errors"

var (
	// ErrInvalidBlobHeader is returned when a blob header length prefix is
	// negative or at least 64 KiB.
	ErrInvalidBlobHeader = errors.New("invalid blob header size")

	// ErrInvalidBlobData is returned when a blob's declared payload size is
	// negative or at least 32 MiB, when a blob carries no payload variant,
	// or when it carries the obsolete bzip2 variant.
	ErrInvalidBlobData = errors.New("invalid blob data")

	// ErrParse is returned when protobuf message bytes are malformed at any
	// decode point.
	ErrParse = errors.New("pbf parse error")

	// ErrUnsupportedCompression is returned when a Decompressor does not
	// support the requested compression method.
	ErrUnsupportedCompression = errors.New("unsupported compression method")

	// ErrDecompression is returned when a supported codec fails internally
	// or produces fewer bytes than the declared uncompressed size.
	ErrDecompression = errors.New("decompression failed")

	// ErrLogic is returned when an assumption in the decoded data is
	// violated, such as an out-of-bounds string table index, invalid UTF-8,
	// an unsigned accumulator going negative, or mismatched parallel array
	// lengths.
	ErrLogic = errors.New("logic error")
)
