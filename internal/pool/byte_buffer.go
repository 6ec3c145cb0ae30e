package pool

// DefaultBufferSize is the initial capacity of a ByteBuffer. Most OSM PBF
// blocks decompress to well under 32 MiB, but starting smaller keeps idle
// decoders cheap.
const DefaultBufferSize = 1024 * 16 // 16KiB

// ByteBuffer is a growable byte buffer designed for in-place reuse across
// repeated decode calls. Resizing reallocates only when capacity is
// insufficient, so a buffer that has grown to the working-set size stops
// allocating entirely.
//
// ByteBuffer is not safe for concurrent use.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
//
// The returned slice aliases the buffer's storage and is invalidated by the
// next Resize or CopyFrom call.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Reset resets the buffer to be empty, but retains the allocated memory for
// reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Resize sets the buffer's length to n, reallocating only when the current
// capacity is insufficient. Existing content is not preserved across a
// reallocation; callers overwrite the full length after resizing.
//
// Panics if n is negative.
func (bb *ByteBuffer) Resize(n int) {
	if n < 0 {
		panic("pool.ByteBuffer.Resize: negative length")
	}
	if n <= cap(bb.B) {
		bb.B = bb.B[:n]
		return
	}

	bb.B = make([]byte, n)
}

// CopyFrom replaces the buffer's contents with a copy of data.
func (bb *ByteBuffer) CopyFrom(data []byte) {
	bb.Resize(len(data))
	copy(bb.B, data)
}
