package level3

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/stretchr/testify/require"
)

const testTextHeader = "SDUS54 KBMX 020205\r\r\nN0RBMX\r\r\n"

// radial is one radial of a test packet: its header and the bytes that follow it.
type radial struct {
	header RadialHeader
	data   []byte
}

// denseRadial is a digital radial (packet 16) holding levels verbatim.
func denseRadial(angle int16, levels ...uint8) radial {
	return radial{
		header: RadialHeader{Length: int16(len(levels)), AngleStart: angle, AngleDelta: 10},
		data:   levels,
	}
}

// rleRadial is a run-length radial (packet AF1F). Odd byte counts are padded with a zero run.
func rleRadial(angle int16, encoded ...uint8) radial {
	if len(encoded)%2 == 1 {
		encoded = append(encoded, 0x00)
	}
	return radial{
		header: RadialHeader{Length: int16(len(encoded) / 2), AngleStart: angle, AngleDelta: 10},
		data:   encoded,
	}
}

// testProduct assembles a complete Level III file.
type testProduct struct {
	text        string
	code        int16
	description ProductDescription
	packetCode  int16
	firstBin    int16
	rangeScale  int16
	bins        int16
	radials     []radial
	compress    bool
}

func newTestProduct(code int16, packetCode int16, bins int16, radials ...radial) *testProduct {
	return &testProduct{
		text: testTextHeader,
		code: code,
		description: ProductDescription{
			Divider:        BlockDivider,
			Latitude:       33172,
			Longitude:      -86770,
			Height:         645,
			ProductCode:    code,
			VolumeScanDate: 16438,
			VolumeScanTime: 7500,
			ProductDate:    16438,
			ProductTime:    7530,
			Halfwords30:    [2]byte{0x00, 0x05},
		},
		packetCode: packetCode,
		rangeScale: 1,
		bins:       bins,
		radials:    radials,
	}
}

func (p *testProduct) withThresholds(td ...byte) *testProduct {
	copy(p.description.ThresholdData[:], td)
	return p
}

func (p *testProduct) symbology(t testing.TB) []byte {
	body := &bytes.Buffer{}
	ph := PacketHeader{
		PacketCode:  p.packetCode,
		FirstBin:    p.firstBin,
		BinCount:    p.bins,
		RangeScale:  p.rangeScale,
		RadialCount: int16(len(p.radials)),
	}
	require.NoError(t, binary.Write(body, binary.BigEndian, ph))
	for _, r := range p.radials {
		require.NoError(t, binary.Write(body, binary.BigEndian, r.header))
		body.Write(r.data)
	}

	sym := &bytes.Buffer{}
	sh := SymbologyHeader{
		Divider:      BlockDivider,
		BlockID:      1,
		BlockLength:  int32(SymbologyHeaderLength + body.Len()),
		LayerCount:   1,
		LayerDivider: BlockDivider,
		LayerLength:  int32(body.Len()),
	}
	require.NoError(t, binary.Write(sym, binary.BigEndian, sh))
	sym.Write(body.Bytes())
	return sym.Bytes()
}

func (p *testProduct) bytes(t testing.TB) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString(p.text)

	mh := MessageHeader{Code: p.code, Date: 16438, Time: 7530, SourceID: 1, BlockCount: 3}
	require.NoError(t, binary.Write(buf, binary.BigEndian, mh))
	require.NoError(t, binary.Write(buf, binary.BigEndian, p.description))

	sym := p.symbology(t)
	if p.compress {
		sym = compressBzip2(t, sym)
	}
	buf.Write(sym)
	return buf.Bytes()
}

func compressBzip2(t testing.TB, data []byte) []byte {
	out := &bytes.Buffer{}
	w, err := bzip2.NewWriter(out, &bzip2.WriterConfig{Level: 9})
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return out.Bytes()
}

func halfwords(values ...int16) []byte {
	b := make([]byte, 2*len(values))
	for i, v := range values {
		binary.BigEndian.PutUint16(b[2*i:], uint16(v))
	}
	return b
}
