package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz/lzma"

	"github.com/osmforge/pbf/errs"
	"github.com/osmforge/pbf/format"
)

// StdDecompressor supports every compression method of the PBF format:
// Zlib, Lz4, Lzma and Zstd.
type StdDecompressor struct{}

var _ Decompressor = StdDecompressor{}

// Decompress decompresses input into output, dispatching on method.
func (StdDecompressor) Decompress(method format.CompressionMethod, input, output []byte) error {
	switch method {
	case format.CompressionZlib:
		return zlibDecompress(input, output)
	case format.CompressionLz4:
		return lz4Decompress(input, output)
	case format.CompressionLzma:
		return lzmaDecompress(input, output)
	case format.CompressionZstd:
		return zstdDecompress(input, output)
	default:
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, method)
	}
}

// lz4Decompress decodes one LZ4 block. The PBF format stores lz4_data as a
// single block, not a frame, so the block API applies.
func lz4Decompress(input, output []byte) error {
	n, err := lz4.UncompressBlock(input, output)
	if err != nil {
		return fmt.Errorf("%w: lz4: %w", errs.ErrDecompression, err)
	}
	if n != len(output) {
		return fmt.Errorf("%w: lz4 produced %d bytes, want %d", errs.ErrDecompression, n, len(output))
	}

	return nil
}

func lzmaDecompress(input, output []byte) error {
	lr, err := lzma.NewReader(bytes.NewReader(input))
	if err != nil {
		return fmt.Errorf("%w: lzma: %w", errs.ErrDecompression, err)
	}

	if _, err := io.ReadFull(lr, output); err != nil {
		return fmt.Errorf("%w: lzma produced fewer than %d bytes: %w", errs.ErrDecompression, len(output), err)
	}

	return nil
}
