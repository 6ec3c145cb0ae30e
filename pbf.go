// Package pbf is a low-level reader for OSM data in PBF format.
//
// A PBF stream is a sequence of length-prefixed, possibly-compressed blobs,
// each wrapping a header block or a primitive block holding delta-coded and
// dictionary-compressed entities at scale. This package decodes that
// pipeline: frame reading, pluggable decompression, buffer-reused block
// decoding, and lazy reconstruction of dense nodes, tags and delta-coded
// reference lists. It does not normalize coordinates, resolve references
// between entities, or write the format.
//
// # Basic Usage
//
// Pull frames, decode blocks, then walk the decoded arrays lazily:
//
//	f, _ := os.Open("some.osm.pbf")
//	defer f.Close()
//
//	decoder := pbf.NewBlockDecoder()
//	for {
//	    raw, err := pbf.ReadBlob(f)
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//
//	    block, err := decoder.Decode(raw)
//	    if err != nil {
//	        return err
//	    }
//	    if block.Primitive == nil {
//	        continue
//	    }
//
//	    st := &block.Primitive.StringTable
//	    for _, group := range block.Primitive.PrimitiveGroups {
//	        if group.Dense == nil {
//	            continue
//	        }
//	        nodes, err := encoding.NewDenseNodeReader(group.Dense)
//	        if err != nil {
//	            return err
//	        }
//	        for node, err := range nodes.All() {
//	            if err != nil {
//	                continue // scoped to this node only
//	            }
//	            for tag := range encoding.NewDenseTagReader(st, node.KeyValueIndices).All() {
//	                fmt.Println(tag.Key, tag.Value)
//	            }
//	        }
//	    }
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the blob
// package. The subpackages carry the pipeline: blob (frames and block
// decoding), compress (decompression strategies), wire (the protobuf
// messages), and encoding (delta, tag and dense node readers).
//
// # Concurrency
//
// Everything here is synchronous and pull-based. A BlockDecoder's internal
// buffer makes it single-owner; to parse in parallel, read frames
// sequentially and hand them to workers that each own a decoder.
package pbf

import (
	"io"

	"github.com/osmforge/pbf/blob"
	"github.com/osmforge/pbf/compress"
)

// ReadBlob pulls the next frame from r. It returns io.EOF only at a clean
// end of stream, before any byte of a next frame was consumed.
func ReadBlob(r io.Reader) (*blob.RawBlock, error) {
	return blob.ReadBlob(r)
}

// NewBlockDecoder creates a block decoder using the default decompressor,
// which supports Zlib-compressed and uncompressed blobs.
func NewBlockDecoder() *blob.BlockDecoder {
	return blob.NewBlockDecoder(nil)
}

// NewStdBlockDecoder creates a block decoder supporting every compression
// method of the format: Zlib, Lz4, Lzma and Zstd.
func NewStdBlockDecoder() *blob.BlockDecoder {
	return blob.NewBlockDecoder(compress.StdDecompressor{})
}
