package blob

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osmforge/pbf/errs"
	"github.com/osmforge/pbf/format"
)

// Protobuf and frame encoding helpers for building stream fixtures.

func fieldTag(num int, wireType byte) []byte {
	return binary.AppendUvarint(nil, uint64(num)<<3|uint64(wireType))
}

func varintField(num int, v uint64) []byte {
	return binary.AppendUvarint(fieldTag(num, 0), v)
}

func bytesField(num int, data []byte) []byte {
	b := binary.AppendUvarint(fieldTag(num, 2), uint64(len(data)))
	return append(b, data...)
}

func stringField(num int, s string) []byte {
	return bytesField(num, []byte(s))
}

func msg(fields ...[]byte) []byte {
	var b []byte
	for _, f := range fields {
		b = append(b, f...)
	}

	return b
}

// frame assembles one stream frame: length prefix, BlobHeader message, payload.
func frame(typeStr string, payload []byte) []byte {
	header := msg(
		stringField(1, typeStr),
		varintField(3, uint64(len(payload))),
	)

	out := binary.BigEndian.AppendUint32(nil, uint32(len(header)))
	out = append(out, header...)

	return append(out, payload...)
}

func TestReadBlob_OneFrame(t *testing.T) {
	payload := []byte{0xca, 0xfe, 0xba, 0xbe}
	stream := bytes.NewReader(frame("OSMData", payload))

	raw, err := ReadBlob(stream)
	require.NoError(t, err)
	require.Equal(t, format.BlockPrimitive, raw.Type)
	require.Equal(t, payload, raw.Data)

	_, err = ReadBlob(stream)
	require.ErrorIs(t, err, io.EOF)
}

func TestReadBlob_Classification(t *testing.T) {
	cases := []struct {
		typeStr string
		want    format.BlockType
	}{
		{"OSMHeader", format.BlockHeader},
		{"OSMData", format.BlockPrimitive},
		{"SomeFutureBlock", format.BlockUnknown},
		{"", format.BlockUnknown},
	}

	for _, tc := range cases {
		raw, err := ReadBlob(bytes.NewReader(frame(tc.typeStr, nil)))
		require.NoError(t, err)
		require.Equal(t, tc.want, raw.Type, "type string %q", tc.typeStr)
	}
}

func TestReadBlob_CleanEndOfStream(t *testing.T) {
	_, err := ReadBlob(bytes.NewReader(nil))
	require.ErrorIs(t, err, io.EOF)
}

func TestReadBlob_PartialLengthPrefix(t *testing.T) {
	// Bytes of a next frame were consumed, so this is an I/O error, never a
	// clean end of stream.
	_, err := ReadBlob(bytes.NewReader([]byte{0x00, 0x00}))
	require.Error(t, err)
	require.NotErrorIs(t, err, io.EOF)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadBlob_TruncatedHeader(t *testing.T) {
	full := frame("OSMData", nil)
	_, err := ReadBlob(bytes.NewReader(full[:len(full)-3]))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadBlob_TruncatedPayload(t *testing.T) {
	full := frame("OSMData", []byte{1, 2, 3, 4, 5})
	_, err := ReadBlob(bytes.NewReader(full[:len(full)-2]))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.NotErrorIs(t, err, io.EOF)
}

func TestReadBlob_HeaderSizeBounds(t *testing.T) {
	tooLarge := binary.BigEndian.AppendUint32(nil, format.MaxBlobHeaderSize)
	_, err := ReadBlob(bytes.NewReader(tooLarge))
	require.ErrorIs(t, err, errs.ErrInvalidBlobHeader)

	negative := binary.BigEndian.AppendUint32(nil, 0xffffffff) // -1 as big-endian int32
	_, err = ReadBlob(bytes.NewReader(negative))
	require.ErrorIs(t, err, errs.ErrInvalidBlobHeader)

	// One below the bound passes the size check and fails later, on the
	// short header read.
	belowBound := binary.BigEndian.AppendUint32(nil, format.MaxBlobHeaderSize-1)
	_, err = ReadBlob(bytes.NewReader(belowBound))
	require.NotErrorIs(t, err, errs.ErrInvalidBlobHeader)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadBlob_DataSizeBounds(t *testing.T) {
	buildFrame := func(datasize uint64) []byte {
		header := msg(
			stringField(1, "OSMData"),
			varintField(3, datasize),
		)
		out := binary.BigEndian.AppendUint32(nil, uint32(len(header)))

		return append(out, header...)
	}

	_, err := ReadBlob(bytes.NewReader(buildFrame(format.MaxBlobDataSize)))
	require.ErrorIs(t, err, errs.ErrInvalidBlobData)

	_, err = ReadBlob(bytes.NewReader(buildFrame(uint64(18446744073709551615)))) // -1 sign-extended
	require.ErrorIs(t, err, errs.ErrInvalidBlobData)

	// The boundary value just below the limit is accepted; the stream then
	// ends short of the declared payload.
	_, err = ReadBlob(bytes.NewReader(buildFrame(format.MaxBlobDataSize - 1)))
	require.NotErrorIs(t, err, errs.ErrInvalidBlobData)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadBlob_MalformedHeader(t *testing.T) {
	// Declared header length covers garbage protobuf bytes.
	garbage := []byte{0x0a, 0x7f, 0x01}
	out := binary.BigEndian.AppendUint32(nil, uint32(len(garbage)))
	out = append(out, garbage...)

	_, err := ReadBlob(bytes.NewReader(out))
	require.ErrorIs(t, err, errs.ErrParse)
}
