// Package compress provides pluggable blob decompression for the pbf module.
//
// A blob declares its compression method and its uncompressed size; the
// block decoder sizes an output buffer accordingly and delegates to a
// Decompressor, which must fill that buffer exactly or fail. The interface
// is a strategy: the block decoder never inspects compressed bytes itself,
// so swapping implementations changes the supported method set without
// touching any other component.
//
// Two implementations ship with the module:
//
//   - DefaultDecompressor handles Zlib only, which covers the overwhelming
//     majority of OSM PBF files in circulation.
//   - StdDecompressor handles Zlib, Lz4, Lzma and Zstd.
//
// Zstandard decompression uses github.com/klauspost/compress/zstd by
// default. Building with the `gozstd` tag switches to the cgo-backed
// github.com/valyala/gozstd for higher throughput.
package compress
