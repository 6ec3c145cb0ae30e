package wire

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osmforge/pbf/errs"
)

// Minimal protobuf wire encoding helpers for building test fixtures.

func fieldTag(num int, wireType byte) []byte {
	return binary.AppendUvarint(nil, uint64(num)<<3|uint64(wireType))
}

func varintField(num int, v uint64) []byte {
	return binary.AppendUvarint(fieldTag(num, 0), v)
}

func svarintField(num int, v int64) []byte {
	return binary.AppendUvarint(fieldTag(num, 0), zigzag(v))
}

func bytesField(num int, data []byte) []byte {
	b := binary.AppendUvarint(fieldTag(num, 2), uint64(len(data)))
	return append(b, data...)
}

func stringField(num int, s string) []byte {
	return bytesField(num, []byte(s))
}

func zigzag(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func packedSint64Field(num int, vals ...int64) []byte {
	var payload []byte
	for _, v := range vals {
		payload = binary.AppendUvarint(payload, zigzag(v))
	}

	return bytesField(num, payload)
}

func packedSint32Field(num int, vals ...int32) []byte {
	var payload []byte
	for _, v := range vals {
		payload = binary.AppendUvarint(payload, zigzag(int64(v)))
	}

	return bytesField(num, payload)
}

func packedInt32Field(num int, vals ...int32) []byte {
	var payload []byte
	for _, v := range vals {
		payload = binary.AppendUvarint(payload, uint64(int64(v)))
	}

	return bytesField(num, payload)
}

func packedUint32Field(num int, vals ...uint32) []byte {
	var payload []byte
	for _, v := range vals {
		payload = binary.AppendUvarint(payload, uint64(v))
	}

	return bytesField(num, payload)
}

func packedBoolField(num int, vals ...bool) []byte {
	var payload []byte
	for _, v := range vals {
		var bit uint64
		if v {
			bit = 1
		}
		payload = binary.AppendUvarint(payload, bit)
	}

	return bytesField(num, payload)
}

func msg(fields ...[]byte) []byte {
	var b []byte
	for _, f := range fields {
		b = append(b, f...)
	}

	return b
}

// === BlobHeader Tests ===

func TestUnmarshalBlobHeader(t *testing.T) {
	data := msg(
		stringField(1, "OSMData"),
		bytesField(2, []byte{0xde, 0xad}),
		varintField(3, 1234),
	)

	h, err := UnmarshalBlobHeader(data)
	require.NoError(t, err)
	require.Equal(t, "OSMData", h.Type)
	require.Equal(t, []byte{0xde, 0xad}, h.IndexData)
	require.Equal(t, int32(1234), h.Datasize)
}

func TestUnmarshalBlobHeader_Malformed(t *testing.T) {
	// Length-delimited field whose declared length exceeds the buffer.
	_, err := UnmarshalBlobHeader([]byte{0x0a, 0x20, 0x01})
	require.ErrorIs(t, err, errs.ErrParse)
}

// === Blob Tests ===

func TestUnmarshalBlob_Raw(t *testing.T) {
	payload := []byte("raw block bytes")
	data := msg(
		bytesField(1, payload),
		varintField(2, uint64(len(payload))),
	)

	b, err := UnmarshalBlob(data)
	require.NoError(t, err)
	require.Equal(t, BlobDataRaw, b.Kind)
	require.Equal(t, payload, b.Data)
	require.NotNil(t, b.RawSize)
	require.Equal(t, int32(len(payload)), *b.RawSize)
}

func TestUnmarshalBlob_CompressedVariants(t *testing.T) {
	cases := []struct {
		fieldNum int
		kind     BlobDataKind
	}{
		{3, BlobDataZlib},
		{4, BlobDataLzma},
		{5, BlobDataObsoleteBzip2},
		{6, BlobDataLz4},
		{7, BlobDataZstd},
	}

	for _, tc := range cases {
		data := msg(
			varintField(2, 100),
			bytesField(tc.fieldNum, []byte{1, 2, 3}),
		)

		b, err := UnmarshalBlob(data)
		require.NoError(t, err)
		require.Equal(t, tc.kind, b.Kind, "field %d", tc.fieldNum)
		require.Equal(t, []byte{1, 2, 3}, b.Data)
	}
}

func TestUnmarshalBlob_NoPayload(t *testing.T) {
	b, err := UnmarshalBlob(msg(varintField(2, 64)))
	require.NoError(t, err)
	require.Equal(t, BlobDataNone, b.Kind)
	require.NotNil(t, b.RawSize)
}

// === HeaderBlock Tests ===

func TestUnmarshalHeaderBlock(t *testing.T) {
	bbox := msg(
		svarintField(1, -1800000000),
		svarintField(2, 1800000000),
		svarintField(3, 900000000),
		svarintField(4, -900000000),
	)
	data := msg(
		bytesField(1, bbox),
		stringField(4, "OsmSchema-V0.6"),
		stringField(4, "DenseNodes"),
		stringField(5, "Sort.Type_then_ID"),
		stringField(16, "osmium"),
		stringField(17, "planet"),
		varintField(32, 1700000000),
		varintField(33, 42),
		stringField(34, "https://planet.openstreetmap.org/replication/"),
	)

	h, err := UnmarshalHeaderBlock(data)
	require.NoError(t, err)
	require.NotNil(t, h.BBox)
	require.Equal(t, int64(-1800000000), h.BBox.Left)
	require.Equal(t, int64(1800000000), h.BBox.Right)
	require.Equal(t, int64(900000000), h.BBox.Top)
	require.Equal(t, int64(-900000000), h.BBox.Bottom)
	require.Equal(t, []string{"OsmSchema-V0.6", "DenseNodes"}, h.RequiredFeatures)
	require.Equal(t, []string{"Sort.Type_then_ID"}, h.OptionalFeatures)
	require.Equal(t, "osmium", h.WritingProgram)
	require.Equal(t, "planet", h.Source)
	require.Equal(t, int64(1700000000), h.OsmosisReplicationTimestamp)
	require.Equal(t, int64(42), h.OsmosisReplicationSequenceNumber)
	require.Equal(t, "https://planet.openstreetmap.org/replication/", h.OsmosisReplicationBaseURL)
}

// === PrimitiveBlock Tests ===

func stringTableMsg(entries ...string) []byte {
	var fields [][]byte
	for _, e := range entries {
		fields = append(fields, stringField(1, e))
	}

	return msg(fields...)
}

func TestUnmarshalPrimitiveBlock_DenseNodes(t *testing.T) {
	dense := msg(
		packedSint64Field(1, 2, -1),
		bytesField(5, msg(
			packedInt32Field(1, 2, 4),
			packedSint64Field(2, 2, 1),
			packedSint64Field(3, 2, -1),
			packedSint32Field(4, 5, -1),
			packedSint32Field(5, 7, 1),
			packedBoolField(6, true, false),
		)),
		packedSint64Field(8, -3, 1),
		packedSint64Field(9, 3, -1),
		packedInt32Field(10, 1, 2, 0, 3, 4, 0),
	)
	data := msg(
		bytesField(1, stringTableMsg("", "highway", "primary", "name", "A1")),
		bytesField(2, msg(bytesField(2, dense))),
		varintField(17, 1000),
		varintField(18, 2000),
		varintField(19, 50),
		varintField(20, 60),
	)

	pb, err := UnmarshalPrimitiveBlock(data)
	require.NoError(t, err)
	require.Equal(t, int32(1000), pb.Granularity)
	require.Equal(t, int32(2000), pb.DateGranularity)
	require.Equal(t, int64(50), pb.LatOffset)
	require.Equal(t, int64(60), pb.LonOffset)
	require.Equal(t, 5, pb.StringTable.Len())

	entry, ok := pb.StringTable.Get(1)
	require.True(t, ok)
	require.Equal(t, []byte("highway"), entry)

	_, ok = pb.StringTable.Get(5)
	require.False(t, ok)
	_, ok = pb.StringTable.Get(-1)
	require.False(t, ok)

	require.Len(t, pb.PrimitiveGroups, 1)
	d := pb.PrimitiveGroups[0].Dense
	require.NotNil(t, d)
	require.Equal(t, []int64{2, -1}, d.ID)
	require.Equal(t, []int64{-3, 1}, d.Lat)
	require.Equal(t, []int64{3, -1}, d.Lon)
	require.Equal(t, []int32{1, 2, 0, 3, 4, 0}, d.KeysVals)
	require.NotNil(t, d.DenseInfo)
	require.Equal(t, []int32{2, 4}, d.DenseInfo.Version)
	require.Equal(t, []int64{2, 1}, d.DenseInfo.Timestamp)
	require.Equal(t, []int64{2, -1}, d.DenseInfo.Changeset)
	require.Equal(t, []int32{5, -1}, d.DenseInfo.UID)
	require.Equal(t, []int32{7, 1}, d.DenseInfo.UserSID)
	require.Equal(t, []bool{true, false}, d.DenseInfo.Visible)
}

func TestUnmarshalPrimitiveBlock_Defaults(t *testing.T) {
	data := msg(bytesField(1, stringTableMsg("")))

	pb, err := UnmarshalPrimitiveBlock(data)
	require.NoError(t, err)
	require.Equal(t, int32(DefaultGranularity), pb.Granularity)
	require.Equal(t, int32(DefaultDateGranularity), pb.DateGranularity)
	require.Zero(t, pb.LatOffset)
	require.Zero(t, pb.LonOffset)
}

func TestUnmarshalPrimitiveBlock_Nodes_UnpackedRepeated(t *testing.T) {
	// Repeated scalars may arrive unpacked: one varint occurrence each.
	node := msg(
		svarintField(1, 1001),
		varintField(2, 1),
		varintField(2, 3),
		varintField(3, 2),
		varintField(3, 4),
		svarintField(8, -77),
		svarintField(9, 88),
		bytesField(4, msg(
			varintField(1, 3),
			varintField(2, 1650000000),
			varintField(4, 99),
			varintField(5, 2),
			varintField(6, 1),
		)),
	)
	data := msg(
		bytesField(1, stringTableMsg("", "k1", "v1", "k2", "v2")),
		bytesField(2, msg(bytesField(1, node))),
	)

	pb, err := UnmarshalPrimitiveBlock(data)
	require.NoError(t, err)
	require.Len(t, pb.PrimitiveGroups, 1)
	require.Len(t, pb.PrimitiveGroups[0].Nodes, 1)

	n := pb.PrimitiveGroups[0].Nodes[0]
	require.Equal(t, int64(1001), n.ID)
	require.Equal(t, []uint32{1, 3}, n.Keys)
	require.Equal(t, []uint32{2, 4}, n.Vals)
	require.Equal(t, int64(-77), n.Lat)
	require.Equal(t, int64(88), n.Lon)
	require.NotNil(t, n.Info)
	require.Equal(t, int32(3), *n.Info.Version)
	require.Equal(t, int64(1650000000), *n.Info.Timestamp)
	require.Nil(t, n.Info.Changeset)
	require.Equal(t, int32(99), *n.Info.UID)
	require.Equal(t, uint32(2), *n.Info.UserSID)
	require.True(t, *n.Info.Visible)
}

func TestUnmarshalPrimitiveBlock_WaysAndRelations(t *testing.T) {
	way := msg(
		varintField(1, 2002),
		packedUint32Field(2, 1),
		packedUint32Field(3, 2),
		packedSint64Field(8, 10, -1, 4, -2),
	)
	relation := msg(
		varintField(1, 3003),
		packedInt32Field(8, 3, 4),
		packedSint64Field(9, 100, -10),
		packedInt32Field(10, 0, 1),
	)
	changeset := msg(varintField(1, 4004))
	data := msg(
		bytesField(1, stringTableMsg("", "k", "v", "outer", "inner")),
		bytesField(2, msg(bytesField(3, way))),
		bytesField(2, msg(
			bytesField(4, relation),
			bytesField(5, changeset),
		)),
	)

	pb, err := UnmarshalPrimitiveBlock(data)
	require.NoError(t, err)
	require.Len(t, pb.PrimitiveGroups, 2)

	require.Len(t, pb.PrimitiveGroups[0].Ways, 1)
	w := pb.PrimitiveGroups[0].Ways[0]
	require.Equal(t, int64(2002), w.ID)
	require.Equal(t, []uint32{1}, w.Keys)
	require.Equal(t, []uint32{2}, w.Vals)
	require.Equal(t, []int64{10, -1, 4, -2}, w.Refs)

	require.Len(t, pb.PrimitiveGroups[1].Relations, 1)
	r := pb.PrimitiveGroups[1].Relations[0]
	require.Equal(t, int64(3003), r.ID)
	require.Equal(t, []int32{3, 4}, r.RolesSID)
	require.Equal(t, []int64{100, -10}, r.MemberIDs)
	require.Equal(t, []MemberType{MemberNode, MemberWay}, r.Types)

	require.Len(t, pb.PrimitiveGroups[1].Changesets, 1)
	require.Equal(t, int64(4004), pb.PrimitiveGroups[1].Changesets[0].ID)
}

func TestUnmarshalPrimitiveBlock_Malformed(t *testing.T) {
	_, err := UnmarshalPrimitiveBlock([]byte{0x0a, 0x7f})
	require.ErrorIs(t, err, errs.ErrParse)
}
