package blob

import (
	"fmt"

	"github.com/osmforge/pbf/compress"
	"github.com/osmforge/pbf/errs"
	"github.com/osmforge/pbf/format"
	"github.com/osmforge/pbf/internal/pool"
	"github.com/osmforge/pbf/wire"
)

// Block is the decoded result of one frame. Exactly one field is set,
// matching the frame's classification.
//
// Unknown is a view into the decoder's internal buffer and is invalidated by
// the decoder's next Decode call; copy it to retain it. Header and Primitive
// own their data and stay valid indefinitely.
type Block struct {
	Header    *wire.HeaderBlock
	Primitive *wire.PrimitiveBlock
	Unknown   []byte
}

// BlockDecoder decompresses raw frames and decodes them into typed blocks.
//
// The decoder owns one growable buffer reused across Decode calls, so a
// long-lived decoder stops allocating once the buffer reaches the stream's
// working-set size.
//
// Note: The BlockDecoder is NOT safe for concurrent use. The intended
// pattern is one decoder per worker; see the package documentation.
type BlockDecoder struct {
	buf          *pool.ByteBuffer
	decompressor compress.Decompressor
}

// NewBlockDecoder creates a BlockDecoder using the given decompressor.
// Passing nil selects compress.DefaultDecompressor, which handles Zlib only.
func NewBlockDecoder(d compress.Decompressor) *BlockDecoder {
	if d == nil {
		d = compress.DefaultDecompressor{}
	}

	return &BlockDecoder{
		buf:          pool.NewByteBuffer(pool.DefaultBufferSize),
		decompressor: d,
	}
}

// Decode decodes one raw frame into a Block.
//
// The frame's payload is parsed as a Blob message; its single payload
// variant is moved into the decoder's buffer, decompressing when needed,
// and the buffer is then decoded per the frame's classification. Failures:
//
//   - malformed Blob or block bytes wrap errs.ErrParse
//   - a missing payload variant, or the obsolete bzip2 variant, wraps
//     errs.ErrInvalidBlobData
//   - decompression failures come from the configured Decompressor,
//     wrapping errs.ErrUnsupportedCompression or errs.ErrDecompression
func (d *BlockDecoder) Decode(raw *RawBlock) (Block, error) {
	b, err := wire.UnmarshalBlob(raw.Data)
	if err != nil {
		return Block{}, err
	}

	// The declared uncompressed size dictates the buffer length; the
	// decompressor must fill it exactly.
	if b.RawSize != nil {
		if *b.RawSize < 0 || *b.RawSize >= format.MaxBlobDataSize {
			return Block{}, fmt.Errorf("%w: raw_size %d out of range", errs.ErrInvalidBlobData, *b.RawSize)
		}
		d.buf.Resize(int(*b.RawSize))
	} else if b.Kind != wire.BlobDataRaw && b.Kind != wire.BlobDataNone {
		return Block{}, fmt.Errorf("%w: compressed blob without raw_size", errs.ErrInvalidBlobData)
	}

	switch b.Kind {
	case wire.BlobDataRaw:
		d.buf.CopyFrom(b.Data)
	case wire.BlobDataZlib:
		err = d.decompressor.Decompress(format.CompressionZlib, b.Data, d.buf.Bytes())
	case wire.BlobDataLzma:
		err = d.decompressor.Decompress(format.CompressionLzma, b.Data, d.buf.Bytes())
	case wire.BlobDataLz4:
		err = d.decompressor.Decompress(format.CompressionLz4, b.Data, d.buf.Bytes())
	case wire.BlobDataZstd:
		err = d.decompressor.Decompress(format.CompressionZstd, b.Data, d.buf.Bytes())
	case wire.BlobDataObsoleteBzip2:
		return Block{}, fmt.Errorf("%w: obsolete bzip2 compression", errs.ErrInvalidBlobData)
	default:
		return Block{}, fmt.Errorf("%w: blob carries no payload", errs.ErrInvalidBlobData)
	}
	if err != nil {
		return Block{}, err
	}

	switch raw.Type {
	case format.BlockHeader:
		header, err := wire.UnmarshalHeaderBlock(d.buf.Bytes())
		if err != nil {
			return Block{}, err
		}

		return Block{Header: header}, nil
	case format.BlockPrimitive:
		primitive, err := wire.UnmarshalPrimitiveBlock(d.buf.Bytes())
		if err != nil {
			return Block{}, err
		}

		return Block{Primitive: primitive}, nil
	default:
		// Valid until the next Decode call.
		return Block{Unknown: d.buf.Bytes()}, nil
	}
}
