package blob

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/osmforge/pbf/errs"
	"github.com/osmforge/pbf/format"
	"github.com/osmforge/pbf/wire"
)

// RawBlock is one frame pulled from a PBF stream: the block's classification
// from its header type string, plus the still-encoded (and possibly
// compressed) Blob message bytes. A RawBlock is produced once per stream
// pull and consumed exactly once by BlockDecoder.Decode.
type RawBlock struct {
	// Type classifies the block by the header's type string: "OSMHeader",
	// "OSMData", or anything else as Unknown.
	Type format.BlockType

	// Data holds the frame's payload: a wire-encoded Blob message.
	Data []byte
}

// ReadBlob pulls the next frame from r.
//
// It returns io.EOF only at a clean end of stream, when zero bytes were
// available before the next frame's length prefix. A short read anywhere
// else, including a partial length prefix, is an I/O error, never a clean
// end. Both size bounds of the format are checked before any allocation they
// would size:
//
//   - header length prefix outside [0, 65536) wraps errs.ErrInvalidBlobHeader
//   - declared payload size outside [0, 33554432) wraps errs.ErrInvalidBlobData
//
// Malformed BlobHeader bytes wrap errs.ErrParse.
func ReadBlob(r io.Reader) (*RawBlock, error) {
	var prefix [4]byte

	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		if errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			// True end of stream: no bytes of the next frame were read.
			return nil, io.EOF
		}

		return nil, fmt.Errorf("read blob header size: %w", err)
	}

	headerSize := int32(binary.BigEndian.Uint32(prefix[:]))
	if headerSize < 0 || headerSize >= format.MaxBlobHeaderSize {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidBlobHeader, headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("read blob header: %w", err)
	}

	header, err := wire.UnmarshalBlobHeader(headerBytes)
	if err != nil {
		return nil, err
	}

	if header.Datasize < 0 || header.Datasize >= format.MaxBlobDataSize {
		return nil, fmt.Errorf("%w: declared size %d", errs.ErrInvalidBlobData, header.Datasize)
	}

	data := make([]byte, header.Datasize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("read blob data: %w", err)
	}

	return &RawBlock{
		Type: format.BlockTypeFromString(header.Type),
		Data: data,
	}, nil
}
