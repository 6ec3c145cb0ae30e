package encoding

import (
	"fmt"
	"iter"
	"unicode/utf8"

	"github.com/osmforge/pbf/errs"
	"github.com/osmforge/pbf/wire"
)

// Tag is one decoded key/value pair. The two halves resolve independently: a
// bad index or invalid UTF-8 on one side fills that side's error without
// affecting the other.
type Tag struct {
	Key      string
	Value    string
	KeyErr   error
	ValueErr error
}

// decodeString resolves one string table index to text, validating that the
// index is non-negative, within bounds, and refers to valid UTF-8.
func decodeString(st *wire.StringTable, index int64) (string, error) {
	if index < 0 {
		return "", fmt.Errorf("%w: string table index %d is invalid", errs.ErrLogic, index)
	}
	raw, ok := st.Get(int(index))
	if !ok {
		return "", fmt.Errorf("%w: string table index %d is out of bounds (%d)", errs.ErrLogic, index, st.Len())
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: string at index %d is not valid UTF-8", errs.ErrLogic, index)
	}

	return string(raw), nil
}

// TagReader decodes the tags of a Node, Way or Relation from its parallel
// key/value index arrays and the block's string table.
type TagReader struct {
	stringTable *wire.StringTable
	keys        []uint32
	vals        []uint32
	idx         int
}

// NewTagReader creates a TagReader from parallel key and value index slices.
// The two slices must be equal length; a mismatch is a construction-time
// error wrapping errs.ErrLogic, never a per-item one.
func NewTagReader(keys, vals []uint32, stringTable *wire.StringTable) (*TagReader, error) {
	if len(keys) != len(vals) {
		return nil, fmt.Errorf("%w: tag key/value counts differ: %d/%d", errs.ErrLogic, len(keys), len(vals))
	}

	return &TagReader{
		stringTable: stringTable,
		keys:        keys,
		vals:        vals,
	}, nil
}

// Next decodes the next key/value pair. ok is false once all pairs have been
// produced.
func (r *TagReader) Next() (tag Tag, ok bool) {
	if r.idx >= len(r.keys) {
		return Tag{}, false
	}

	tag.Key, tag.KeyErr = decodeString(r.stringTable, int64(r.keys[r.idx]))
	tag.Value, tag.ValueErr = decodeString(r.stringTable, int64(r.vals[r.idx]))
	r.idx++

	return tag, true
}

// All returns an iterator over the remaining pairs.
func (r *TagReader) All() iter.Seq[Tag] {
	return func(yield func(Tag) bool) {
		for {
			tag, ok := r.Next()
			if !ok || !yield(tag) {
				return
			}
		}
	}
}

// DenseTagReader decodes the tags of a single dense node from its slice of
// interleaved (key index, value index) pairs, as produced by
// DenseNode.KeyValueIndices. A trailing unpaired index is ignored.
type DenseTagReader struct {
	stringTable *wire.StringTable
	indices     []int32
}

// NewDenseTagReader creates a DenseTagReader over one node's interleaved
// key/value indices.
func NewDenseTagReader(stringTable *wire.StringTable, keyValueIndices []int32) *DenseTagReader {
	return &DenseTagReader{
		stringTable: stringTable,
		indices:     keyValueIndices,
	}
}

// Next decodes the next key/value pair. ok is false once fewer than two
// indices remain.
func (r *DenseTagReader) Next() (tag Tag, ok bool) {
	if len(r.indices) < 2 {
		return Tag{}, false
	}

	tag.Key, tag.KeyErr = decodeString(r.stringTable, int64(r.indices[0]))
	tag.Value, tag.ValueErr = decodeString(r.stringTable, int64(r.indices[1]))
	r.indices = r.indices[2:]

	return tag, true
}

// All returns an iterator over the remaining pairs.
func (r *DenseTagReader) All() iter.Seq[Tag] {
	return func(yield func(Tag) bool) {
		for {
			tag, ok := r.Next()
			if !ok || !yield(tag) {
				return
			}
		}
	}
}
