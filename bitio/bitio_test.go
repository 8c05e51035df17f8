package bitio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamf-tools/go-iamf/bitio"
)

func TestUleb128RoundTripMinimum(t *testing.T) {
	for _, v := range []uint32{0, 1, 127, 128, 16384, 1<<21 - 1, 1 << 28, 0xffffffff} {
		w := bitio.NewWriter(bitio.NewMinimumGenerator())
		require.NoError(t, w.WriteUleb128(v))
		data, err := w.Bytes()
		require.NoError(t, err)

		r := bitio.NewReader(data)
		got, err := r.ReadUleb128()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestUleb128FixedSizeRoundTrip(t *testing.T) {
	for n := 1; n <= bitio.MaxLeb128Size; n++ {
		v := uint32(42)
		w := bitio.NewWriter(bitio.NewFixedSizeGenerator(n))
		require.NoError(t, w.WriteUleb128(v))
		data, err := w.Bytes()
		require.NoError(t, err)
		assert.Len(t, data, n)

		r := bitio.NewReader(data)
		got, err := r.ReadUleb128()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestUleb128FixedSizeTooSmallFails(t *testing.T) {
	w := bitio.NewWriter(bitio.NewFixedSizeGenerator(1))
	err := w.WriteUleb128(200)
	require.Error(t, err)
}

func TestSleb128RoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 63, -64, 64, -65, 1 << 20, -(1 << 20)} {
		w := bitio.NewWriter(bitio.NewMinimumGenerator())
		require.NoError(t, w.WriteSleb128(v))
		data, err := w.Bytes()
		require.NoError(t, err)

		r := bitio.NewReader(data)
		got, err := r.ReadSleb128()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestWriteUintReadUintRoundTrip(t *testing.T) {
	w := bitio.NewWriter(bitio.NewMinimumGenerator())
	require.NoError(t, w.WriteUint(5, 3))
	w.WriteBool(true)
	require.NoError(t, w.WriteUint(0, 4))
	data, err := w.Bytes()
	require.NoError(t, err)
	require.Len(t, data, 1)

	r := bitio.NewReader(data)
	v, err := r.ReadUint(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v)

	b, err := r.ReadBool()
	require.NoError(t, err)
	assert.True(t, b)
}

func TestBytesFailsWhenNotByteAligned(t *testing.T) {
	w := bitio.NewWriter(bitio.NewMinimumGenerator())
	w.WriteBit(1)
	_, err := w.Bytes()
	require.Error(t, err)
}

func TestStringRoundTrip(t *testing.T) {
	w := bitio.NewWriter(bitio.NewMinimumGenerator())
	require.NoError(t, w.WriteString("hello", bitio.MaxStringSize))
	data, err := w.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello\x00"), data)

	r := bitio.NewReader(data)
	s, err := r.ReadString(bitio.MaxStringSize)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestReadUleb128TruncatedFails(t *testing.T) {
	r := bitio.NewReader([]byte{0x80})
	_, err := r.ReadUleb128()
	require.Error(t, err)
}
