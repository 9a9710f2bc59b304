package level3

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHeaderLength(t *testing.T) {
	binaryHeader := []byte{0x00, 0x13, 0x40, 0x36, 0x00, 0x00, 0x1d, 0x6a}

	cases := []struct {
		name string
		text string
		want int
	}{
		{"standard", testTextHeader, 30},
		{"noaaport", "\x01\r\r\n123 \r\r\n" + testTextHeader, 41},
		{"none", "", 0},
		{"single line", "SDUS54 KBMX 020205\r\r\n", 21},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := append([]byte(tc.text), binaryHeader...)
			assert.Equal(t, tc.want, textHeaderLength(buf))
		})
	}
}

func TestTextHeaderLengthStopsAtLongSegment(t *testing.T) {
	buf := append([]byte("SDUS54 KBMX 020205\r\r\n"), bytes.Repeat([]byte{'x'}, maxTextLineLength+1)...)
	buf = append(buf, '\n')
	assert.Equal(t, 21, textHeaderLength(buf))
}

func TestTextHeaderLengthLineBreakInBinary(t *testing.T) {
	// time field holds 0x0a a few bytes into the message header
	buf := append([]byte(testTextHeader), 0x00, 0x5e, 0x40, 0x36, 0x00, 0x00, 0x0a, 0x00)
	assert.Equal(t, 30, textHeaderLength(buf))
}

func TestParseTextHeader(t *testing.T) {
	th := parseTextHeader([]byte("\x01\r\r\n123 \r\r\n" + testTextHeader))

	assert.Equal(t, []string{"123", "SDUS54 KBMX 020205", "N0RBMX"}, th.Lines)
	assert.Equal(t, "SDUS54", th.WMOHeading)
	assert.Equal(t, "KBMX", th.Originator)
	assert.Equal(t, "020205", th.Timestamp)
	assert.Equal(t, "N0RBMX", th.AWIPSID)
	assert.Equal(t, "N0R", th.Product())
	assert.Equal(t, "BMX", th.Site())
}

func TestParseTextHeaderEmpty(t *testing.T) {
	th := parseTextHeader(nil)
	assert.Empty(t, th.Lines)
	assert.Empty(t, th.Product())
	assert.Empty(t, th.Site())
}

func TestParseHeaders(t *testing.T) {
	buf := newTestProduct(94, PacketCodeDigitalRadial, 1, denseRadial(0, 10)).bytes(t)

	h, err := parseHeaders(buf)
	require.NoError(t, err)
	assert.Equal(t, int16(94), h.message.Code)
	assert.Equal(t, int16(94), h.description.ProductCode)
	assert.Equal(t, int32(33172), h.description.Latitude)
	assert.Equal(t, 30+MessageHeaderLength+ProductDescriptionLength, h.payloadOffset)
	assert.Equal(t, "N0RBMX", h.text.AWIPSID)
}

func TestParseHeadersUnsupportedCode(t *testing.T) {
	buf := newTestProduct(9999, PacketCodeDigitalRadial, 1, denseRadial(0, 10)).bytes(t)

	h, err := parseHeaders(buf)
	assert.Nil(t, h)
	require.True(t, errors.Is(err, ErrUnsupportedProductCode))

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, int16(9999), de.Code)
	assert.Equal(t, 30, de.Offset)
}

func TestParseHeadersTruncated(t *testing.T) {
	buf := newTestProduct(94, PacketCodeDigitalRadial, 1, denseRadial(0, 10)).bytes(t)

	for _, n := range []int{30 + 10, 30 + MessageHeaderLength + 50} {
		_, err := parseHeaders(buf[:n])
		assert.True(t, errors.Is(err, ErrTruncatedInput), "cut at %d: %v", n, err)
	}
}

func TestParseHeadersBadDivider(t *testing.T) {
	p := newTestProduct(94, PacketCodeDigitalRadial, 1, denseRadial(0, 10))
	p.description.Divider = 0

	_, err := parseHeaders(p.bytes(t))
	assert.True(t, errors.Is(err, ErrBadDivider))
}

func TestMessageCode(t *testing.T) {
	buf := newTestProduct(9999, PacketCodeDigitalRadial, 1, denseRadial(0, 10)).bytes(t)

	code, err := ReadMessageCode(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, int16(9999), code)

	_, err = messageCode([]byte(testTextHeader))
	assert.True(t, errors.Is(err, ErrTruncatedInput))
}
