package encoding

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"math"

	"github.com/osmforge/pbf/errs"
	"github.com/osmforge/pbf/wire"
)

// DenseNode is one reconstructed node from a dense group.
//
// Lat and Lon are in the block's raw encoded units; combine them with the
// PrimitiveBlock's granularity and offsets to obtain nanodegrees.
//
// KeyValueIndices aliases the dense group's own KeysVals storage, so unlike
// an unknown block's buffer view it stays valid after the reader advances or
// is discarded. Decode it with a DenseTagReader.
type DenseNode struct {
	ID  int64
	Lat int64
	Lon int64

	// Info is the node's metadata, when the group carries a DenseInfo.
	// Individual fields may still be nil when their array is shorter than
	// the node count.
	Info *wire.Info

	KeyValueIndices []int32
}

// deltaCoded holds the running totals of every delta-coded field.
type deltaCoded struct {
	id        int64
	lat       int64
	lon       int64
	timestamp int64
	changeset int64
	uid       int32
	userSID   uint32
}

// DenseNodeReader reconstructs one node per step from a dense group's
// parallel delta-coded arrays.
//
// The reader is a forward-only, single-pass cursor. A per-node failure (a
// user_sid delta that would take the unsigned accumulator out of range)
// reports an error for that node only; later nodes keep decoding with all
// other accumulators unaffected.
type DenseNodeReader struct {
	nodes     *wire.DenseNodes
	idx       int
	keyValIdx int
	current   deltaCoded
}

// NewDenseNodeReader creates a reader over one dense group. The group's
// id/lat/lon arrays must be equal length; a mismatch fails here, wrapping
// errs.ErrLogic, before any iteration.
func NewDenseNodeReader(nodes *wire.DenseNodes) (*DenseNodeReader, error) {
	if len(nodes.Lat) != len(nodes.ID) || len(nodes.Lon) != len(nodes.ID) {
		return nil, fmt.Errorf("%w: dense node id/lat/lon counts differ: %d/%d/%d",
			errs.ErrLogic, len(nodes.ID), len(nodes.Lat), len(nodes.Lon))
	}

	return &DenseNodeReader{nodes: nodes}, nil
}

// Next decodes the next node. At the end of the group it returns io.EOF.
// Any other error is scoped to this node; keep calling Next to continue with
// the rest of the group.
func (r *DenseNodeReader) Next() (DenseNode, error) {
	if r.idx >= len(r.nodes.ID) {
		return DenseNode{}, io.EOF
	}

	i := r.idx
	r.idx++

	r.current.id += r.nodes.ID[i]
	r.current.lat += r.nodes.Lat[i]
	r.current.lon += r.nodes.Lon[i]

	var info *wire.Info
	if di := r.nodes.DenseInfo; di != nil {
		info = &wire.Info{}

		// user_sid accumulates as an unsigned value. A delta taking it out
		// of range fails this node before any of the remaining metadata
		// accumulators advance, leaving them in place for the next node.
		if i < len(di.UserSID) {
			delta := di.UserSID[i]
			sum := int64(r.current.userSID) + int64(delta)
			if sum < 0 || sum > math.MaxUint32 {
				return DenseNode{}, fmt.Errorf("%w: delta decoding user_sid leaves uint32 range: %d%+d",
					errs.ErrLogic, r.current.userSID, delta)
			}
			r.current.userSID = uint32(sum)
			sid := r.current.userSID
			info.UserSID = &sid
		}

		// version and visible are positional, not delta-coded. Every field
		// extends only as far as its own array; shorter arrays mean "not
		// provided" for later nodes.
		if i < len(di.Version) {
			v := di.Version[i]
			info.Version = &v
		}
		if i < len(di.Timestamp) {
			r.current.timestamp += di.Timestamp[i]
			ts := r.current.timestamp
			info.Timestamp = &ts
		}
		if i < len(di.Changeset) {
			r.current.changeset += di.Changeset[i]
			cs := r.current.changeset
			info.Changeset = &cs
		}
		if i < len(di.UID) {
			r.current.uid += di.UID[i]
			uid := r.current.uid
			info.UID = &uid
		}
		if i < len(di.Visible) {
			vis := di.Visible[i]
			info.Visible = &vis
		}
	}

	return DenseNode{
		ID:              r.current.id,
		Lat:             r.current.lat,
		Lon:             r.current.lon,
		Info:            info,
		KeyValueIndices: r.nextTagRun(),
	}, nil
}

// nextTagRun slices this node's run out of the shared interleaved key/value
// index array. Runs are terminated by a single 0 entry scanned in 2-wide
// steps, or by the array's end for the last run; the cursor advances past
// the separating zero. An empty shared array means no node has tags.
func (r *DenseNodeReader) nextTagRun() []int32 {
	kv := r.nodes.KeysVals
	if len(kv) == 0 {
		return nil
	}

	start := r.keyValIdx
	i := start
	for i < len(kv) && kv[i] != 0 {
		i += 2
	}

	if i < len(kv) {
		r.keyValIdx = i + 1
	} else {
		r.keyValIdx = len(kv)
	}

	return kv[start:min(i, len(kv))]
}

// All returns an iterator over the remaining (node, error) results. Pairs
// with a non-nil error carry no node; iteration continues past them.
func (r *DenseNodeReader) All() iter.Seq2[DenseNode, error] {
	return func(yield func(DenseNode, error) bool) {
		for {
			node, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(node, err) {
				return
			}
		}
	}
}
