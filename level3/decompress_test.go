package level3

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbologyBufferPlain(t *testing.T) {
	buf := []byte{1, 2, 3, 0xff, 0xff, 0x00, 0x01}

	sym, compressed, err := symbologyBuffer(buf, 3, maxSymbologySize)
	require.NoError(t, err)
	assert.False(t, compressed)
	assert.Equal(t, []byte{0xff, 0xff, 0x00, 0x01}, sym)
}

func TestSymbologyBufferCompressed(t *testing.T) {
	payload := bytes.Repeat([]byte("symbology"), 100)
	buf := append([]byte{1, 2, 3}, compressBzip2(t, payload)...)

	sym, compressed, err := symbologyBuffer(buf, 3, maxSymbologySize)
	require.NoError(t, err)
	assert.True(t, compressed)
	assert.Equal(t, payload, sym)
}

func TestSymbologyBufferNotBzip2(t *testing.T) {
	_, compressed, err := symbologyBuffer([]byte("BZh9 not a bzip2 block"), 0, maxSymbologySize)
	assert.True(t, compressed)
	assert.True(t, errors.Is(err, ErrDecompressionFailure), "%v", err)
}

func TestSymbologyBufferTooLarge(t *testing.T) {
	buf := compressBzip2(t, bytes.Repeat([]byte{0}, 65))
	_, _, err := symbologyBuffer(buf, 0, 64)
	assert.True(t, errors.Is(err, ErrDecompressionFailure), "%v", err)

	buf = compressBzip2(t, bytes.Repeat([]byte{0}, 64))
	sym, _, err := symbologyBuffer(buf, 0, 64)
	require.NoError(t, err)
	assert.Len(t, sym, 64)
}

func TestSymbologyBufferPastEnd(t *testing.T) {
	_, _, err := symbologyBuffer([]byte{1, 2}, 3, maxSymbologySize)
	assert.True(t, errors.Is(err, ErrTruncatedInput))
}
