package wire

import (
	"github.com/richardartoul/molecule"
	"github.com/richardartoul/molecule/src/codec"
)

// BlobHeader is the framing message preceding every blob. It declares the
// block's type string and the size of the blob message that follows.
type BlobHeader struct {
	Type      string
	IndexData []byte
	Datasize  int32
}

// BlobDataKind identifies which payload variant a Blob carries. A Blob holds
// exactly one variant; the wire format models this as a protobuf oneof.
type BlobDataKind uint8

const (
	BlobDataNone          BlobDataKind = iota // no payload variant present
	BlobDataRaw                               // uncompressed bytes
	BlobDataZlib                              // zlib-compressed bytes
	BlobDataLzma                              // LZMA-compressed bytes
	BlobDataObsoleteBzip2                     // deprecated bzip2 variant, never decoded
	BlobDataLz4                               // LZ4 block-compressed bytes
	BlobDataZstd                              // Zstandard-compressed bytes
)

func (k BlobDataKind) String() string {
	switch k {
	case BlobDataNone:
		return "None"
	case BlobDataRaw:
		return "Raw"
	case BlobDataZlib:
		return "Zlib"
	case BlobDataLzma:
		return "Lzma"
	case BlobDataObsoleteBzip2:
		return "ObsoleteBzip2"
	case BlobDataLz4:
		return "Lz4"
	case BlobDataZstd:
		return "Zstd"
	default:
		return "Invalid"
	}
}

// Blob is the wrapper message carrying one block's bytes, raw or compressed.
//
// Data is a view into the buffer Blob was decoded from, not a copy: a Blob is
// consumed immediately by the block decoder, which moves the bytes into its
// own buffer.
type Blob struct {
	// RawSize is the declared uncompressed size, when present.
	RawSize *int32

	// Kind identifies the payload variant Data belongs to.
	Kind BlobDataKind

	// Data holds the payload bytes of the set variant.
	Data []byte
}

// UnmarshalBlobHeader decodes a BlobHeader message.
func UnmarshalBlobHeader(data []byte) (*BlobHeader, error) {
	h := &BlobHeader{}
	err := molecule.MessageEach(codec.NewBuffer(data), func(fieldNum int32, v molecule.Value) (bool, error) {
		var err error
		switch fieldNum {
		case 1:
			h.Type, err = v.AsStringSafe()
		case 2:
			h.IndexData, err = v.AsBytesSafe()
		case 3:
			h.Datasize, err = v.AsInt32()
		}

		return true, err
	})
	if err != nil {
		return nil, parseError("BlobHeader", err)
	}

	return h, nil
}

// UnmarshalBlob decodes a Blob message. When multiple payload variants are
// present the last one wins, matching protobuf last-field semantics for
// oneof groups.
func UnmarshalBlob(data []byte) (*Blob, error) {
	b := &Blob{}
	err := molecule.MessageEach(codec.NewBuffer(data), func(fieldNum int32, v molecule.Value) (bool, error) {
		var err error
		switch fieldNum {
		case 1:
			b.Kind = BlobDataRaw
			b.Data, err = v.AsBytesUnsafe()
		case 2:
			var n int32
			n, err = v.AsInt32()
			b.RawSize = &n
		case 3:
			b.Kind = BlobDataZlib
			b.Data, err = v.AsBytesUnsafe()
		case 4:
			b.Kind = BlobDataLzma
			b.Data, err = v.AsBytesUnsafe()
		case 5:
			b.Kind = BlobDataObsoleteBzip2
			b.Data, err = v.AsBytesUnsafe()
		case 6:
			b.Kind = BlobDataLz4
			b.Data, err = v.AsBytesUnsafe()
		case 7:
			b.Kind = BlobDataZstd
			b.Data, err = v.AsBytesUnsafe()
		}

		return true, err
	})
	if err != nil {
		return nil, parseError("Blob", err)
	}

	return b, nil
}
