package level3

import "fmt"

// Family groups products that share a threshold data layout and scaling rule.
type Family int

const (
	// FamilyUnsupported products pass the header check but have no scaling rule
	FamilyUnsupported Family = iota

	// FamilyLinear products carry a signed scale and offset in halfwords 31 and 32
	FamilyLinear

	// FamilyDiscreteLevels products carry up to 16 (flag, value) threshold pairs
	FamilyDiscreteLevels

	// FamilyHundredths products are raw counts of 0.01
	FamilyHundredths

	// FamilyScaleOffset products carry a float32 scale and offset in halfwords 31-34
	FamilyScaleOffset

	// FamilyCategorical products are class numbers, 0 is no data
	FamilyCategorical

	// FamilyRaw products are passed through with unknown units
	FamilyRaw

	// FamilyLinearLog products switch from a linear to a log scale at a threshold (ICD page 3-33)
	FamilyLinearLog
)

func (f Family) String() string {
	switch f {
	case FamilyLinear:
		return "linear"
	case FamilyDiscreteLevels:
		return "discrete-levels"
	case FamilyHundredths:
		return "hundredths"
	case FamilyScaleOffset:
		return "scale-offset"
	case FamilyCategorical:
		return "categorical"
	case FamilyRaw:
		return "raw"
	case FamilyLinearLog:
		return "linear-log"
	default:
		return "unsupported"
	}
}

// product is one row of the supported product table (ICD Table III pages 3-15 to 3-22).
type product struct {
	name   string
	family Family

	// range bin resolution multiplier, 0 if unknown
	resolution float64
}

var products = map[int16]product{
	16:  {name: "Base Reflectivity"},
	17:  {name: "Base Reflectivity"},
	18:  {name: "Base Reflectivity"},
	19:  {name: "Base Reflectivity", family: FamilyDiscreteLevels, resolution: 1},
	20:  {name: "Base Reflectivity", family: FamilyDiscreteLevels, resolution: 2},
	21:  {name: "Base Reflectivity"},
	22:  {name: "Base Velocity"},
	23:  {name: "Base Velocity"},
	24:  {name: "Base Velocity"},
	25:  {name: "Base Velocity", family: FamilyDiscreteLevels, resolution: 0.25},
	26:  {name: "Base Velocity"},
	27:  {name: "Base Velocity", family: FamilyDiscreteLevels, resolution: 1},
	28:  {name: "Base Spectrum Width", family: FamilyDiscreteLevels, resolution: 0.25},
	29:  {name: "Base Spectrum Width"},
	30:  {name: "Base Spectrum Width", family: FamilyDiscreteLevels, resolution: 1},
	32:  {name: "Digital Hybrid Scan Reflectivity", family: FamilyLinear, resolution: 1},
	33:  {name: "Hybrid Scan Reflectivity"},
	34:  {name: "Clutter Filter Control", family: FamilyRaw, resolution: 1},
	55:  {name: "Storm Relative Mean Radial Velocity (Region)"},
	56:  {name: "Storm Relative Mean Radial Velocity (Map)", family: FamilyDiscreteLevels, resolution: 1},
	78:  {name: "Surface Rainfall Accumulation (1 hr)", family: FamilyDiscreteLevels, resolution: 1},
	79:  {name: "Surface Rainfall Accumulation (3 hr)", family: FamilyDiscreteLevels, resolution: 1},
	80:  {name: "Storm Total Rainfall Accumulation", family: FamilyDiscreteLevels, resolution: 1},
	93:  {name: "ITWS Digital Base Velocity"},
	94:  {name: "Base Reflectivity Data Array", family: FamilyLinear, resolution: 1},
	99:  {name: "Base Velocity Data Array", family: FamilyLinear, resolution: 0.25},
	132: {name: "Clutter Likelihood Reflectivity"},
	133: {name: "Clutter Likelihood Doppler"},
	134: {name: "High Resolution VIL", family: FamilyLinearLog, resolution: 1},
	135: {name: "Enhanced Echo Tops", resolution: 1},
	137: {name: "User Selectable Layer Composite Reflectivity"},
	138: {name: "Digital Storm Total Precipitation", family: FamilyHundredths, resolution: 1},
	144: {name: "One-hour Snow Water Equivalent"},
	145: {name: "One-hour Snow Depth"},
	146: {name: "Storm Total Snow Water Equivalent"},
	147: {name: "Storm Total Snow Depth"},
	150: {name: "User Selectable Snow Water Equivalent"},
	151: {name: "User Selectable Snow Depth"},
	153: {name: "Super Resolution Reflectivity Data Array"},
	154: {name: "Super Resolution Velocity Data Array"},
	155: {name: "Super Resolution Spectrum Width Data Array"},
	158: {name: "Differential Reflectivity"},
	159: {name: "Digital Differential Reflectivity", family: FamilyScaleOffset, resolution: 0.25},
	160: {name: "Correlation Coefficient"},
	161: {name: "Digital Correlation Coefficient", family: FamilyScaleOffset, resolution: 0.25},
	162: {name: "Specific Differential Phase"},
	163: {name: "Digital Specific Differential Phase", family: FamilyScaleOffset, resolution: 0.25},
	164: {name: "Hydrometeor Classification"},
	165: {name: "Digital Hydrometeor Classification", family: FamilyCategorical, resolution: 0.25},
	169: {name: "One Hour Accumulation", family: FamilyDiscreteLevels, resolution: 1},
	170: {name: "Digital Accumulation Array", family: FamilyScaleOffset, resolution: 1},
	// 171 also fits the scale/offset layout, the discrete table was always checked first
	171: {name: "Storm Total Accumulation", family: FamilyDiscreteLevels, resolution: 1},
	172: {name: "Digital Storm Total Accumulation", family: FamilyScaleOffset, resolution: 1},
	173: {name: "Digital User-Selectable Accumulation", family: FamilyScaleOffset, resolution: 1},
	174: {name: "Digital One-Hour Difference Accumulation", family: FamilyScaleOffset, resolution: 1},
	175: {name: "Digital Storm Total Difference Accumulation", family: FamilyScaleOffset, resolution: 1},
	177: {name: "Hybrid Hydrometeor Classification", family: FamilyCategorical, resolution: 0.25},
	194: {name: "Base Reflectivity Data Array (DoD)"},
	195: {name: "Digital Reflectivity, DQA-Edited Data Array"},
	199: {name: "Base Velocity Data Array (DoD)"},

	// TDWR
	180: {name: "TDWR Base Reflectivity"},
	181: {name: "TDWR Base Reflectivity", family: FamilyDiscreteLevels, resolution: 150},
	182: {name: "TDWR Base Velocity", family: FamilyLinear, resolution: 150},
	183: {name: "TDWR Base Velocity"},
	185: {name: "TDWR Base Spectrum Width"},
	186: {name: "TDWR Base Reflectivity", family: FamilyLinear, resolution: 300},
	187: {name: "TDWR Base Reflectivity"},
}

// IsSupported reports whether the message code is in the supported product list.
func IsSupported(code int16) bool {
	_, ok := products[code]
	return ok
}

// ProductName returns the descriptive name of a product code.
func ProductName(code int16) string {
	if p, ok := products[code]; ok {
		return p.name
	}
	return fmt.Sprintf("Unknown Product %d", code)
}

// ProductFamilyOf returns the scaling family of a product code.
func ProductFamilyOf(code int16) Family {
	return products[code].family
}

// rangeResolution returns the range bin resolution multiplier for a code. 134 and 135 are
// reported in kilometers and get converted here.
func rangeResolution(code int16) (float64, error) {
	p, ok := products[code]
	if !ok || p.resolution == 0 {
		return 0, newCodeError(ErrUnknownRangeResolution, -1, code, "no range bin resolution for %s", ProductName(code))
	}
	if code == 134 || code == 135 {
		return p.resolution * 1000, nil
	}
	return p.resolution, nil
}
