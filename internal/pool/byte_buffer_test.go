package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_New(t *testing.T) {
	bb := NewByteBuffer(64)

	require.Equal(t, 0, bb.Len())
	require.Equal(t, 64, bb.Cap())
	require.Empty(t, bb.Bytes())
}

func TestByteBuffer_ResizeWithinCapacity(t *testing.T) {
	bb := NewByteBuffer(64)

	bb.Resize(32)
	require.Equal(t, 32, bb.Len())
	require.Equal(t, 64, bb.Cap())
}

func TestByteBuffer_ResizeGrows(t *testing.T) {
	bb := NewByteBuffer(8)

	bb.Resize(1024)
	require.Equal(t, 1024, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 1024)
}

func TestByteBuffer_ResizeNegativePanics(t *testing.T) {
	bb := NewByteBuffer(8)

	require.Panics(t, func() { bb.Resize(-1) })
}

func TestByteBuffer_ShrinkKeepsCapacity(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.Resize(1024)
	grown := bb.Cap()

	// Shrinking must reuse storage, not reallocate.
	bb.Resize(16)
	require.Equal(t, 16, bb.Len())
	require.Equal(t, grown, bb.Cap())
}

func TestByteBuffer_CopyFrom(t *testing.T) {
	bb := NewByteBuffer(8)

	bb.CopyFrom([]byte("payload"))
	require.Equal(t, []byte("payload"), bb.Bytes())

	bb.CopyFrom([]byte("xy"))
	require.Equal(t, []byte("xy"), bb.Bytes())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.CopyFrom([]byte("payload"))

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), len("payload"))
}
