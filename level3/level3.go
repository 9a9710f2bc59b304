package level3

import (
	"io"
	"io/ioutil"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Level3File is one decoded Level III product. It is built once by Decode and never modified;
// accessors hand out copies of anything mutable.
type Level3File struct {
	TextHeader         TextHeader
	MessageHeader      MessageHeader
	ProductDescription ProductDescription
	SymbologyHeader    SymbologyHeader
	PacketHeader       PacketHeader

	compressed bool
	params     map[string]int32
	radials    []RadialHeader
	raw        *RawGrid
	scaled     *ScaledField
}

// Decode parses a whole Level III file held in buf. Decoding either fully succeeds or returns a
// *DecodeError; there is no partial result.
func Decode(buf []byte) (*Level3File, error) {
	h, err := parseHeaders(buf)
	if err != nil {
		return nil, err
	}

	code := h.message.Code
	if ProductFamilyOf(code) == FamilyUnsupported {
		return nil, newCodeError(ErrUnsupportedScaling, -1, code, "%s has no scaling rule", ProductName(code))
	}

	sym, compressed, err := symbologyBuffer(buf, h.payloadOffset, maxSymbologySize)
	if err != nil {
		return nil, err
	}

	packet, err := decodeSymbology(sym)
	if err != nil {
		return nil, err
	}

	scaled, err := scaleGrid(code, &h.description, packet.grid)
	if err != nil {
		return nil, err
	}

	l3 := &Level3File{
		TextHeader:         h.text,
		MessageHeader:      h.message,
		ProductDescription: h.description,
		SymbologyHeader:    packet.symbology,
		PacketHeader:       packet.header,
		compressed:         compressed,
		params:             productParameters(code, &h.description),
		radials:            packet.radials,
		raw:                packet.grid,
		scaled:             scaled,
	}

	logrus.Debugf("Level III %s (code %s, %s) %s radials x %s bins",
		ProductName(code),
		color.CyanString("%d", code),
		packetName(packet.header.PacketCode),
		color.CyanString("%d", packet.grid.Radials),
		color.CyanString("%d", packet.grid.Bins))

	return l3, nil
}

// NewLevel3 reads the whole of reader and decodes it.
func NewLevel3(reader io.Reader) (*Level3File, error) {
	buf, err := ioutil.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return Decode(buf)
}

// NewLevel3FromFile decodes the Level III file at filename.
func NewLevel3FromFile(filename string) (*Level3File, error) {
	buf, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Decode(buf)
}

// ReadMessageCode returns the message code of a Level III file without decoding anything else.
// Unsupported codes are returned, not rejected.
func ReadMessageCode(reader io.Reader) (int16, error) {
	buf, err := ioutil.ReadAll(reader)
	if err != nil {
		return 0, err
	}
	return messageCode(buf)
}

// MessageCodeFromFile is ReadMessageCode for a file on disk.
func MessageCodeFromFile(filename string) (int16, error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return ReadMessageCode(f)
}

// Code is the message code.
func (l3 *Level3File) Code() int16 {
	return l3.MessageHeader.Code
}

// Family is the scaling family of the product.
func (l3 *Level3File) Family() Family {
	return ProductFamilyOf(l3.MessageHeader.Code)
}

// IsCompressed reports whether the symbology block was bzip2 compressed.
func (l3 *Level3File) IsCompressed() bool {
	return l3.compressed
}

// Location of the radar: latitude and longitude in degrees, height in feet above mean sea level.
func (l3 *Level3File) Location() (float64, float64, int16) {
	pd := l3.ProductDescription
	return float64(pd.Latitude) * 0.001, float64(pd.Longitude) * 0.001, pd.Height
}

// Azimuth returns the starting azimuth angle of every radial in degrees.
func (l3 *Level3File) Azimuth() []float64 {
	az := make([]float64, len(l3.radials))
	for i, rh := range l3.radials {
		az[i] = float64(rh.AngleStart) * 0.1
	}
	return az
}

// AngleDeltas returns the angular width of every radial in degrees.
func (l3 *Level3File) AngleDeltas() []float64 {
	deltas := make([]float64, len(l3.radials))
	for i, rh := range l3.radials {
		deltas[i] = float64(rh.AngleDelta) * 0.1
	}
	return deltas
}

// Range returns the range of every bin. Fails with ErrUnknownRangeResolution for products without
// a range bin resolution.
func (l3 *Level3File) Range() ([]float64, error) {
	resolution, err := rangeResolution(l3.MessageHeader.Code)
	if err != nil {
		return nil, err
	}

	ph := l3.PacketHeader
	scale := float64(ph.RangeScale) * resolution
	ranges := make([]float64, ph.BinCount)
	for i := range ranges {
		ranges[i] = float64(i)*scale + float64(ph.FirstBin)
	}
	return ranges, nil
}

// Elevation is the sweep elevation angle in degrees (halfword 30).
func (l3 *Level3File) Elevation() float64 {
	return float64(halfword(l3.ProductDescription.Halfwords30[:])) * 0.1
}

// VolumeStartTime is the start of the radar volume scan.
func (l3 *Level3File) VolumeStartTime() time.Time {
	return julianTime(l3.ProductDescription.VolumeScanDate, l3.ProductDescription.VolumeScanTime)
}

// ProductTime is when the product was generated.
func (l3 *Level3File) ProductTime() time.Time {
	return julianTime(l3.ProductDescription.ProductDate, l3.ProductDescription.ProductTime)
}

// MessageTime is the message header's date and time.
func (l3 *Level3File) MessageTime() time.Time {
	return julianTime(l3.MessageHeader.Date, l3.MessageHeader.Time)
}

// julianTime converts the ICD's day count (1 Jan 1970 is day 1) and seconds past midnight.
func julianTime(date int16, seconds int32) time.Time {
	return time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC).
		Add((time.Duration(date) - 1) * time.Hour * 24).
		Add(time.Duration(seconds) * time.Second)
}

// RadialHeaders returns the header of every radial in order.
func (l3 *Level3File) RadialHeaders() []RadialHeader {
	return append([]RadialHeader(nil), l3.radials...)
}

// ProductParameters returns the unscaled product dependent halfwords for the products that
// define them, otherwise an empty map.
func (l3 *Level3File) ProductParameters() map[string]int32 {
	params := make(map[string]int32, len(l3.params))
	for k, v := range l3.params {
		params[k] = v
	}
	return params
}

// RawGrid returns a copy of the unscaled data levels.
func (l3 *Level3File) RawGrid() *RawGrid {
	return l3.raw.clone()
}

// ScaledField returns a copy of the physical values and validity mask.
func (l3 *Level3File) ScaledField() *ScaledField {
	return l3.scaled.clone()
}
