// Package level3 provides structs and functions for decoding NEXRAD Level III product files.
//
// The documents used and referenced in this package:
//  • ICD: https://www.roc.noaa.gov/wsr88d/PublicDocs/ICDs/2620001Y.pdf (RPG to Class 1 User, the bulk of the format)
//  • NOAAPort: https://www.weather.gov/media/tg/noaaport_radar_products.pdf (text header and product list)
package level3

const (
	// MessageHeaderLength is the size of the Message Header Block
	MessageHeaderLength = 18

	// ProductDescriptionLength is the size of the Product Description Block
	ProductDescriptionLength = 102

	// SymbologyHeaderLength is the size of the Product Symbology Block header
	SymbologyHeaderLength = 16

	// PacketHeaderLength is the size of the radial packet header (codes 16 and AF1F)
	PacketHeaderLength = 14

	// RadialHeaderLength sits in front of every radial
	RadialHeaderLength = 6

	// BlockDivider delineates blocks and layers
	BlockDivider = -1

	// PacketCodeDigitalRadial is the Digital Radial Data Array packet (ICD Figure 3-11c)
	PacketCodeDigitalRadial = 16

	// PacketCodeRadialRLE is the Radial Data packet, 0xAF1F read as a signed halfword (ICD Figure 3-10)
	PacketCodeRadialRLE = -20705

	// packet header sits right after the symbology header
	packetOffset = SymbologyHeaderLength

	// first radial header follows the packet header
	radialsOffset = packetOffset + PacketHeaderLength
)

// MessageHeader for every graphic product message (ICD Figure 3-3)
type MessageHeader struct {
	Code       int16 // message code, selects the product
	Date       int16 // days since 1 Jan 1970
	Time       int32 // seconds since midnight GMT
	Length     int32 // length of the message in bytes
	SourceID   int16
	DestID     int16
	BlockCount int16 // number of blocks in the message, inclusive
}

// ProductDescription block (ICD Figure 3-6, halfwords 10-60)
type ProductDescription struct {
	Divider               int16
	Latitude              int32 // millidegrees, + for north
	Longitude             int32 // millidegrees, + for east
	Height                int16 // feet above mean sea level
	ProductCode           int16
	OperationalMode       int16 // 0 = Maintenance, 1 = Clean Air, 2 = Precip
	VolumeCoveragePattern int16
	SequenceNumber        int16
	VolumeScanNumber      int16 // 1 to 80
	VolumeScanDate        int16 // days since 1 Jan 1970, day 1 is the epoch
	VolumeScanTime        int32 // seconds since midnight GMT
	ProductDate           int16
	ProductTime           int32

	Halfwords27_28  [4]byte // product dependent 1 and 2
	ElevationNumber int16
	Halfwords30     [2]byte  // product dependent 3
	ThresholdData   [32]byte // halfwords 31-46, meaning depends on the product
	Halfwords47_53  [14]byte // product dependent 4-10

	Version         uint8
	SpotBlank       uint8 // 1 = on, 0 = off
	SymbologyOffset int32 // halfword offsets
	GraphicOffset   int32
	TabularOffset   int32
}

// SymbologyHeader is the 16 byte header of the Product Symbology Block (ICD Figure 3-6 sheet 8)
type SymbologyHeader struct {
	Divider      int16
	BlockID      int16
	BlockLength  int32
	LayerCount   int16
	LayerDivider int16
	LayerLength  int32
}

// PacketHeader is shared by the digital radial (16) and run-length radial (AF1F) packets.
type PacketHeader struct {
	PacketCode  int16
	FirstBin    int16 // location of first range bin
	BinCount    int16
	ICenter     int16
	JCenter     int16
	RangeScale  int16
	RadialCount int16
}

// RadialHeader precedes each radial of either packet.
type RadialHeader struct {
	Length     int16 // bytes (code 16) or halfwords of run-length data (AF1F)
	AngleStart int16 // tenths of degree
	AngleDelta int16 // tenths of degree
}
