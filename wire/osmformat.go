package wire

import (
	"github.com/richardartoul/molecule"
	"github.com/richardartoul/molecule/src/codec"
)

// Default granularities of a PrimitiveBlock, applied when the fields are
// absent on the wire.
const (
	DefaultGranularity     = 100  // coordinate granularity, in nanodegrees
	DefaultDateGranularity = 1000 // date granularity, in milliseconds
)

// HeaderBBox is the bounding box of a header block, in nanodegrees.
type HeaderBBox struct {
	Left   int64
	Right  int64
	Top    int64
	Bottom int64
}

// HeaderBlock is the decoded content of an "OSMHeader" block.
type HeaderBlock struct {
	BBox             *HeaderBBox
	RequiredFeatures []string
	OptionalFeatures []string
	WritingProgram   string
	Source           string

	// Osmosis replication fields, present in files produced by replication
	// pipelines.
	OsmosisReplicationTimestamp      int64
	OsmosisReplicationSequenceNumber int64
	OsmosisReplicationBaseURL        string
}

// StringTable is a block's deduplicated table of byte strings, referenced
// elsewhere by integer index. Index 0 is always the empty string; dense tag
// runs use it as a terminator.
type StringTable struct {
	S [][]byte
}

// Len returns the number of entries in the table.
func (st *StringTable) Len() int {
	return len(st.S)
}

// Get returns the entry at index i, or false when i is out of bounds.
func (st *StringTable) Get(i int) ([]byte, bool) {
	if i < 0 || i >= len(st.S) {
		return nil, false
	}

	return st.S[i], true
}

// PrimitiveBlock is the decoded content of an "OSMData" block: a string
// table plus groups of entities whose indices point into it.
type PrimitiveBlock struct {
	StringTable     StringTable
	PrimitiveGroups []*PrimitiveGroup

	// Granularity is the resolution of lat/lon values, in units of
	// nanodegrees.
	Granularity int32

	// DateGranularity is the resolution of timestamps, in milliseconds.
	DateGranularity int32

	// LatOffset and LonOffset shift all coordinates in the block, in
	// nanodegrees.
	LatOffset int64
	LonOffset int64
}

// PrimitiveGroup holds entities of exactly one kind. Writers never mix kinds
// within a group.
type PrimitiveGroup struct {
	Nodes      []*Node
	Dense      *DenseNodes
	Ways       []*Way
	Relations  []*Relation
	Changesets []*ChangeSet
}

// Info is optional entity metadata. Fields are pointers because each one may
// be absent independently.
type Info struct {
	Version   *int32
	Timestamp *int64
	Changeset *int64
	UID       *int32
	UserSID   *uint32
	Visible   *bool
}

// Node is a single point entity with dictionary-indexed tags.
type Node struct {
	ID   int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Lat  int64
	Lon  int64
}

// DenseInfo carries delta-coded metadata for a DenseNodes group. Timestamp,
// Changeset, UID and UserSID are delta-coded; Version and Visible are
// positional. Arrays may be shorter than the node count, in which case later
// nodes simply have no value for that field.
type DenseInfo struct {
	Version   []int32
	Timestamp []int64
	Changeset []int64
	UID       []int32
	UserSID   []int32
	Visible   []bool
}

// DenseNodes is the compact encoding of many nodes as parallel delta-coded
// arrays. ID, Lat and Lon must be equal length. KeysVals interleaves
// key/value string table indices for all nodes, each node's run terminated
// by a single 0 entry.
type DenseNodes struct {
	ID        []int64
	DenseInfo *DenseInfo
	Lat       []int64
	Lon       []int64
	KeysVals  []int32
}

// Way is an ordered list of node references with dictionary-indexed tags.
// Refs is delta-coded; decode it with a DeltaReader.
type Way struct {
	ID   int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Refs []int64
}

// MemberType identifies the kind of entity a relation member references.
type MemberType int32

const (
	MemberNode     MemberType = 0
	MemberWay      MemberType = 1
	MemberRelation MemberType = 2
)

func (m MemberType) String() string {
	switch m {
	case MemberNode:
		return "Node"
	case MemberWay:
		return "Way"
	case MemberRelation:
		return "Relation"
	default:
		return "Invalid"
	}
}

// Relation is a group of entity references with roles and dictionary-indexed
// tags. MemberIDs is delta-coded; decode it with a DeltaReader. RolesSID
// indexes the string table.
type Relation struct {
	ID        int64
	Keys      []uint32
	Vals      []uint32
	Info      *Info
	RolesSID  []int32
	MemberIDs []int64
	Types     []MemberType
}

// ChangeSet is a changeset entity. Only the id survives in the PBF format.
type ChangeSet struct {
	ID int64
}

// UnmarshalHeaderBlock decodes a HeaderBlock message.
func UnmarshalHeaderBlock(data []byte) (*HeaderBlock, error) {
	h := &HeaderBlock{}
	err := molecule.MessageEach(codec.NewBuffer(data), func(fieldNum int32, v molecule.Value) (bool, error) {
		var err error
		switch fieldNum {
		case 1:
			var raw []byte
			if raw, err = v.AsBytesUnsafe(); err == nil {
				h.BBox, err = unmarshalHeaderBBox(raw)
			}
		case 4:
			var s string
			if s, err = v.AsStringSafe(); err == nil {
				h.RequiredFeatures = append(h.RequiredFeatures, s)
			}
		case 5:
			var s string
			if s, err = v.AsStringSafe(); err == nil {
				h.OptionalFeatures = append(h.OptionalFeatures, s)
			}
		case 16:
			h.WritingProgram, err = v.AsStringSafe()
		case 17:
			h.Source, err = v.AsStringSafe()
		case 32:
			h.OsmosisReplicationTimestamp, err = v.AsInt64()
		case 33:
			h.OsmosisReplicationSequenceNumber, err = v.AsInt64()
		case 34:
			h.OsmosisReplicationBaseURL, err = v.AsStringSafe()
		}

		return true, err
	})
	if err != nil {
		return nil, parseError("HeaderBlock", err)
	}

	return h, nil
}

func unmarshalHeaderBBox(data []byte) (*HeaderBBox, error) {
	b := &HeaderBBox{}
	err := molecule.MessageEach(codec.NewBuffer(data), func(fieldNum int32, v molecule.Value) (bool, error) {
		var err error
		switch fieldNum {
		case 1:
			b.Left, err = v.AsSint64()
		case 2:
			b.Right, err = v.AsSint64()
		case 3:
			b.Top, err = v.AsSint64()
		case 4:
			b.Bottom, err = v.AsSint64()
		}

		return true, err
	})
	if err != nil {
		return nil, err
	}

	return b, nil
}

// UnmarshalPrimitiveBlock decodes a PrimitiveBlock message. String table
// entries are copied out of data, so the returned block stays valid after
// the input buffer is reused.
func UnmarshalPrimitiveBlock(data []byte) (*PrimitiveBlock, error) {
	pb := &PrimitiveBlock{
		Granularity:     DefaultGranularity,
		DateGranularity: DefaultDateGranularity,
	}
	err := molecule.MessageEach(codec.NewBuffer(data), func(fieldNum int32, v molecule.Value) (bool, error) {
		var err error
		switch fieldNum {
		case 1:
			var raw []byte
			if raw, err = v.AsBytesUnsafe(); err == nil {
				err = unmarshalStringTable(raw, &pb.StringTable)
			}
		case 2:
			var raw []byte
			if raw, err = v.AsBytesUnsafe(); err == nil {
				var group *PrimitiveGroup
				if group, err = unmarshalPrimitiveGroup(raw); err == nil {
					pb.PrimitiveGroups = append(pb.PrimitiveGroups, group)
				}
			}
		case 17:
			pb.Granularity, err = v.AsInt32()
		case 18:
			pb.DateGranularity, err = v.AsInt32()
		case 19:
			pb.LatOffset, err = v.AsInt64()
		case 20:
			pb.LonOffset, err = v.AsInt64()
		}

		return true, err
	})
	if err != nil {
		return nil, parseError("PrimitiveBlock", err)
	}

	return pb, nil
}

func unmarshalStringTable(data []byte, st *StringTable) error {
	return molecule.MessageEach(codec.NewBuffer(data), func(fieldNum int32, v molecule.Value) (bool, error) {
		if fieldNum != 1 {
			return true, nil
		}
		s, err := v.AsBytesSafe()
		if err != nil {
			return false, err
		}
		st.S = append(st.S, s)

		return true, nil
	})
}

func unmarshalPrimitiveGroup(data []byte) (*PrimitiveGroup, error) {
	g := &PrimitiveGroup{}
	err := molecule.MessageEach(codec.NewBuffer(data), func(fieldNum int32, v molecule.Value) (bool, error) {
		if fieldNum < 1 || fieldNum > 5 {
			return true, nil
		}
		raw, err := v.AsBytesUnsafe()
		if err != nil {
			return false, err
		}

		switch fieldNum {
		case 1:
			var node *Node
			if node, err = unmarshalNode(raw); err == nil {
				g.Nodes = append(g.Nodes, node)
			}
		case 2:
			g.Dense, err = unmarshalDenseNodes(raw)
		case 3:
			var way *Way
			if way, err = unmarshalWay(raw); err == nil {
				g.Ways = append(g.Ways, way)
			}
		case 4:
			var rel *Relation
			if rel, err = unmarshalRelation(raw); err == nil {
				g.Relations = append(g.Relations, rel)
			}
		case 5:
			var cs *ChangeSet
			if cs, err = unmarshalChangeSet(raw); err == nil {
				g.Changesets = append(g.Changesets, cs)
			}
		}

		return true, err
	})
	if err != nil {
		return nil, err
	}

	return g, nil
}

func unmarshalNode(data []byte) (*Node, error) {
	n := &Node{}
	err := molecule.MessageEach(codec.NewBuffer(data), func(fieldNum int32, v molecule.Value) (bool, error) {
		var err error
		switch fieldNum {
		case 1:
			n.ID, err = v.AsSint64()
		case 2:
			n.Keys, err = appendUint32(n.Keys, v)
		case 3:
			n.Vals, err = appendUint32(n.Vals, v)
		case 4:
			var raw []byte
			if raw, err = v.AsBytesUnsafe(); err == nil {
				n.Info, err = unmarshalInfo(raw)
			}
		case 8:
			n.Lat, err = v.AsSint64()
		case 9:
			n.Lon, err = v.AsSint64()
		}

		return true, err
	})
	if err != nil {
		return nil, err
	}

	return n, nil
}

func unmarshalInfo(data []byte) (*Info, error) {
	info := &Info{}
	err := molecule.MessageEach(codec.NewBuffer(data), func(fieldNum int32, v molecule.Value) (bool, error) {
		var err error
		switch fieldNum {
		case 1:
			var n int32
			n, err = v.AsInt32()
			info.Version = &n
		case 2:
			var n int64
			n, err = v.AsInt64()
			info.Timestamp = &n
		case 3:
			var n int64
			n, err = v.AsInt64()
			info.Changeset = &n
		case 4:
			var n int32
			n, err = v.AsInt32()
			info.UID = &n
		case 5:
			var n uint32
			n, err = v.AsUint32()
			info.UserSID = &n
		case 6:
			var b bool
			b, err = v.AsBool()
			info.Visible = &b
		}

		return true, err
	})
	if err != nil {
		return nil, err
	}

	return info, nil
}

func unmarshalDenseNodes(data []byte) (*DenseNodes, error) {
	d := &DenseNodes{}
	err := molecule.MessageEach(codec.NewBuffer(data), func(fieldNum int32, v molecule.Value) (bool, error) {
		var err error
		switch fieldNum {
		case 1:
			d.ID, err = appendSint64(d.ID, v)
		case 5:
			var raw []byte
			if raw, err = v.AsBytesUnsafe(); err == nil {
				d.DenseInfo, err = unmarshalDenseInfo(raw)
			}
		case 8:
			d.Lat, err = appendSint64(d.Lat, v)
		case 9:
			d.Lon, err = appendSint64(d.Lon, v)
		case 10:
			d.KeysVals, err = appendInt32(d.KeysVals, v)
		}

		return true, err
	})
	if err != nil {
		return nil, err
	}

	return d, nil
}

func unmarshalDenseInfo(data []byte) (*DenseInfo, error) {
	di := &DenseInfo{}
	err := molecule.MessageEach(codec.NewBuffer(data), func(fieldNum int32, v molecule.Value) (bool, error) {
		var err error
		switch fieldNum {
		case 1:
			di.Version, err = appendInt32(di.Version, v)
		case 2:
			di.Timestamp, err = appendSint64(di.Timestamp, v)
		case 3:
			di.Changeset, err = appendSint64(di.Changeset, v)
		case 4:
			di.UID, err = appendSint32(di.UID, v)
		case 5:
			di.UserSID, err = appendSint32(di.UserSID, v)
		case 6:
			di.Visible, err = appendBool(di.Visible, v)
		}

		return true, err
	})
	if err != nil {
		return nil, err
	}

	return di, nil
}

func unmarshalWay(data []byte) (*Way, error) {
	w := &Way{}
	err := molecule.MessageEach(codec.NewBuffer(data), func(fieldNum int32, v molecule.Value) (bool, error) {
		var err error
		switch fieldNum {
		case 1:
			w.ID, err = v.AsInt64()
		case 2:
			w.Keys, err = appendUint32(w.Keys, v)
		case 3:
			w.Vals, err = appendUint32(w.Vals, v)
		case 4:
			var raw []byte
			if raw, err = v.AsBytesUnsafe(); err == nil {
				w.Info, err = unmarshalInfo(raw)
			}
		case 8:
			w.Refs, err = appendSint64(w.Refs, v)
		}

		return true, err
	})
	if err != nil {
		return nil, err
	}

	return w, nil
}

func unmarshalRelation(data []byte) (*Relation, error) {
	r := &Relation{}
	err := molecule.MessageEach(codec.NewBuffer(data), func(fieldNum int32, v molecule.Value) (bool, error) {
		var err error
		switch fieldNum {
		case 1:
			r.ID, err = v.AsInt64()
		case 2:
			r.Keys, err = appendUint32(r.Keys, v)
		case 3:
			r.Vals, err = appendUint32(r.Vals, v)
		case 4:
			var raw []byte
			if raw, err = v.AsBytesUnsafe(); err == nil {
				r.Info, err = unmarshalInfo(raw)
			}
		case 8:
			r.RolesSID, err = appendInt32(r.RolesSID, v)
		case 9:
			r.MemberIDs, err = appendSint64(r.MemberIDs, v)
		case 10:
			var types []int32
			if types, err = appendInt32(nil, v); err == nil {
				for _, t := range types {
					r.Types = append(r.Types, MemberType(t))
				}
			}
		}

		return true, err
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

func unmarshalChangeSet(data []byte) (*ChangeSet, error) {
	cs := &ChangeSet{}
	err := molecule.MessageEach(codec.NewBuffer(data), func(fieldNum int32, v molecule.Value) (bool, error) {
		var err error
		if fieldNum == 1 {
			cs.ID, err = v.AsInt64()
		}

		return true, err
	})
	if err != nil {
		return nil, err
	}

	return cs, nil
}
