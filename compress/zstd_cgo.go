//go:build gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/osmforge/pbf/errs"
)

// zstdDecompress decodes Zstandard data into output, which must hold exactly
// the uncompressed size. This variant uses the cgo-backed gozstd bindings.
func zstdDecompress(input, output []byte) error {
	out, err := gozstd.Decompress(output[:0], input)
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
