package level3

import (
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// radialPacket is the decoded symbology payload.
type radialPacket struct {
	symbology SymbologyHeader
	header    PacketHeader
	radials   []RadialHeader
	grid      *RawGrid
}

func decodeSymbology(buf []byte) (*radialPacket, error) {
	p := &radialPacket{}

	if err := readStruct(buf, 0, &p.symbology); err != nil {
		return nil, err
	}
	if p.symbology.Divider != BlockDivider {
		return nil, newError(ErrBadDivider, 0, "symbology block divider is %d", p.symbology.Divider)
	}
	if p.symbology.LayerDivider != BlockDivider {
		return nil, newError(ErrBadDivider, 10, "symbology layer divider is %d", p.symbology.LayerDivider)
	}

	if err := readStruct(buf, packetOffset, &p.header); err != nil {
		return nil, err
	}

	code := p.header.PacketCode
	if code != PacketCodeDigitalRadial && code != PacketCodeRadialRLE {
		return nil, newCodeError(ErrUnsupportedPacketCode, packetOffset, code, "")
	}
	if p.header.BinCount < 0 || p.header.RadialCount < 0 {
		return nil, newCodeError(ErrMalformedPacket, packetOffset, code, "%d radials of %d bins", p.header.RadialCount, p.header.BinCount)
	}

	nradials, nbins := int(p.header.RadialCount), int(p.header.BinCount)

	// size the grid only once the payload could possibly fill it. A run-length byte covers at
	// most 15 bins.
	perRadial := RadialHeaderLength + nbins
	if code == PacketCodeRadialRLE {
		perRadial = RadialHeaderLength + (nbins+14)/15
	}
	if need := nradials * perRadial; need > remaining(buf, radialsOffset) {
		return nil, newCodeError(ErrTruncatedInput, radialsOffset, code, "%d radials of %d bins need at least %d bytes, have %d", nradials, nbins, need, remaining(buf, radialsOffset))
	}

	p.grid = newRawGrid(nradials, nbins)
	p.radials = make([]RadialHeader, nradials)

	logrus.Tracef("packet %s: %s radials of %s bins",
		packetName(code),
		color.CyanString("%d", nradials),
		color.CyanString("%d", nbins))

	pos := radialsOffset
	for i := 0; i < nradials; i++ {
		if err := readStruct(buf, pos, &p.radials[i]); err != nil {
			return nil, err
		}
		pos += RadialHeaderLength

		var err error
		if code == PacketCodeDigitalRadial {
			pos, err = copyRadial(buf, pos, p.grid.Row(i))
		} else {
			pos, err = expandRadial(buf, pos, int(p.radials[i].Length)*2, p.grid.Row(i))
		}
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// copyRadial copies one digital radial's levels verbatim into row.
func copyRadial(buf []byte, pos int, row []uint8) (int, error) {
	if pos+len(row) > len(buf) {
		return pos, newCodeError(ErrTruncatedInput, pos, PacketCodeDigitalRadial, "need %d bytes of radial data, have %d", len(row), remaining(buf, pos))
	}
	copy(row, buf[pos:pos+len(row)])
	return pos + len(row), nil
}

// expandRadial run-length decodes nbytes of packed (run, level) nibbles into row. The runs must
// fill the row exactly; run 0 bytes are padding.
func expandRadial(buf []byte, pos, nbytes int, row []uint8) (int, error) {
	if nbytes < 0 {
		return pos, newCodeError(ErrMalformedPacket, pos-RadialHeaderLength, PacketCodeRadialRLE, "negative radial length %d", nbytes/2)
	}
	if pos+nbytes > len(buf) {
		return pos, newCodeError(ErrTruncatedInput, pos, PacketCodeRadialRLE, "need %d bytes of run-length data, have %d", nbytes, remaining(buf, pos))
	}

	n := 0
	for _, c := range buf[pos : pos+nbytes] {
		run := int(c >> 4)
		level := c & 0x0f
		if n+run > len(row) {
			return pos, newCodeError(ErrMalformedPacket, pos, PacketCodeRadialRLE, "runs overfill radial of %d bins", len(row))
		}
		for i := 0; i < run; i++ {
			row[n] = level
			n++
		}
	}
	if n != len(row) {
		return pos, newCodeError(ErrMalformedPacket, pos, PacketCodeRadialRLE, "runs fill %d of %d bins", n, len(row))
	}

	return pos + nbytes, nil
}

func packetName(code int16) string {
	switch code {
	case PacketCodeDigitalRadial:
		return "digital radial (16)"
	case PacketCodeRadialRLE:
		return "radial run-length (AF1F)"
	default:
		return "unknown"
	}
}
