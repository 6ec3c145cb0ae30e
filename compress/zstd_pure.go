//go:build !gozstd

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/osmforge/pbf/errs"
)

// zstdDecoderPool pools zstd decoders for reuse to eliminate allocation
// overhead. The klauspost/compress/zstd library is explicitly designed for
// decoder reuse: "The decoder has been designed to operate without
// allocations after a warmup."
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1), // Single-threaded for predictable performance
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			// This should never happen with valid options
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

// zstdDecompress decodes Zstandard data into output, which must hold exactly
// the uncompressed size.
func zstdDecompress(input, output []byte) error {
	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	// DecodeAll is stateless, so the pooled decoder stays reusable even when
	// this call fails. Appending to output[:0] reuses the caller's buffer
	// when its capacity suffices.
	out, err := decoder.DecodeAll(input, output[:0])
	if err != nil {
		return fmt.Errorf("%w: zstd: %w", errs.ErrDecompression, err)
	}
	if len(out) != len(output) {
		return fmt.Errorf("%w: zstd produced %d bytes, want %d", errs.ErrDecompression, len(out), len(output))
	}
	if len(out) > 0 && &out[0] != &output[0] {
		copy(output, out)
	}

	return nil
}
