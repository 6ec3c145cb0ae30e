// Package blob reads and decodes the framing layer of the OSM PBF format.
//
// A PBF stream is a sequence of frames, each a 4-byte big-endian length
// prefix, a BlobHeader message, and a Blob message carrying one block's raw
// or compressed bytes. ReadBlob pulls one frame at a time; BlockDecoder
// turns a frame into a decoded header, primitive, or unknown block.
//
// Frame pulling is inherently sequential per stream. To parse with multiple
// workers, read frames on one goroutine and distribute them; give each
// worker its own BlockDecoder so every internal buffer has a single owner.
package blob
