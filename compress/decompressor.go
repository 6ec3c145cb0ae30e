package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/osmforge/pbf/errs"
	"github.com/osmforge/pbf/format"
)

// Decompressor decompresses one blob payload into a pre-sized output buffer.
//
// The output buffer's length is the blob's declared uncompressed size.
// Implementations must fill it exactly: producing fewer bytes, or any
// internal codec failure, is an error wrapping errs.ErrDecompression.
// A method the implementation does not handle yields an error wrapping
// errs.ErrUnsupportedCompression.
//
// Implementations must be safe for concurrent use; the two provided here are
// stateless.
type Decompressor interface {
	Decompress(method format.CompressionMethod, input []byte, output []byte) error
}

// DefaultDecompressor supports only Zlib, the method used by nearly all OSM
// PBF producers. Use StdDecompressor, or a custom implementation, for files
// compressed with Lz4, Lzma or Zstd.
type DefaultDecompressor struct{}

var _ Decompressor = DefaultDecompressor{}

// Decompress decompresses input into output. Only
// format.CompressionZlib is supported.
func (DefaultDecompressor) Decompress(method format.CompressionMethod, input, output []byte) error {
	if method != format.CompressionZlib {
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, method)
	}

	return zlibDecompress(input, output)
}

func zlibDecompress(input, output []byte) error {
	zr, err := zlib.NewReader(bytes.NewReader(input))
	if err != nil {
		return fmt.Errorf("%w: zlib: %w", errs.ErrDecompression, err)
	}
	defer zr.Close()

	if _, err := io.ReadFull(zr, output); err != nil {
		return fmt.Errorf("%w: zlib produced fewer than %d bytes: %w", errs.ErrDecompression, len(output), err)
	}

	return nil
}
