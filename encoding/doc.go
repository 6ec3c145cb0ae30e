// Package encoding reconstructs individual entities from the delta-coded
// and dictionary-compressed arrays of a decoded primitive block.
//
// All readers here are lazy pull-based cursors: each exposes a Next method
// producing one item or reporting the end, plus an All iterator for range
// loops. Sequences are finite, forward-only, single-pass and non-restartable,
// and must not be shared across concurrent consumers. Laziness means
// on-demand computation only; nothing here suspends or spawns goroutines.
//
// Per-item semantic failures (an out-of-range string index, an unsigned
// accumulator underflow) are scoped to the single item that produced them;
// iteration continues with the next item.
package encoding
