package format

type (
	BlockType         uint8
	CompressionMethod uint8
)

const (
	BlockHeader    BlockType = 0x1 // BlockHeader represents an "OSMHeader" block.
	BlockPrimitive BlockType = 0x2 // BlockPrimitive represents an "OSMData" (primitive) block.
	BlockUnknown   BlockType = 0x3 // BlockUnknown represents a block with an unrecognized type string.

	CompressionLz4  CompressionMethod = 0x1 // CompressionLz4 represents LZ4 block compression.
	CompressionLzma CompressionMethod = 0x2 // CompressionLzma represents LZMA compression.
	CompressionZlib CompressionMethod = 0x3 // CompressionZlib represents zlib (DEFLATE) compression.
	CompressionZstd CompressionMethod = 0x4 // CompressionZstd represents Zstandard compression.
)

// Wire format size limits, enforced before any allocation sized by a length
// read from the stream.
const (
	// MaxBlobHeaderSize is the exclusive upper bound of a blob header's
	// length prefix (64 KiB).
	MaxBlobHeaderSize = 64 * 1024

	// MaxBlobDataSize is the exclusive upper bound of a blob's declared
	// payload size (32 MiB).
	MaxBlobDataSize = 32 * 1024 * 1024
)

// Recognized blob header type strings.
const (
	TypeStringHeader    = "OSMHeader"
	TypeStringPrimitive = "OSMData"
)

// BlockTypeFromString classifies a blob header type string.
// Unrecognized strings classify as BlockUnknown, never as an error.
func BlockTypeFromString(s string) BlockType {
	switch s {
	case TypeStringHeader:
		return BlockHeader
	case TypeStringPrimitive:
		return BlockPrimitive
	default:
		return BlockUnknown
	}
}

func (b BlockType) String() string {
	switch b {
	case BlockHeader:
		return "Header"
	case BlockPrimitive:
		return "Primitive"
	case BlockUnknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

func (c CompressionMethod) String() string {
	switch c {
	case CompressionLz4:
		return "Lz4"
	case CompressionLzma:
		return "Lzma"
	case CompressionZlib:
		return "Zlib"
	case CompressionZstd:
		return "Zstd"
	default:
		return "Unknown"
	}
}
