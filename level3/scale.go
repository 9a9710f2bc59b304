package level3

import (
	"encoding/binary"
	"math"
)

// scaleGrid converts raw levels to physical values and a validity mask using the threshold data
// layout of the product's family.
func scaleGrid(code int16, pd *ProductDescription, grid *RawGrid) (*ScaledField, error) {
	field := newScaledField(grid.Radials, grid.Bins)
	td := pd.ThresholdData[:]

	switch family := ProductFamilyOf(code); family {
	case FamilyLinear:
		scaleLinear(code, td, grid, field)
	case FamilyDiscreteLevels:
		scaleDiscrete(td, grid, field)
	case FamilyHundredths:
		for idx, raw := range grid.Data {
			field.set(idx, float64(raw)*0.01)
		}
	case FamilyScaleOffset:
		scaleFloat32(code, td, grid, field)
	case FamilyCategorical:
		for idx, raw := range grid.Data {
			if raw == 0 {
				field.mask(idx)
				continue
			}
			field.set(idx, float64(raw))
		}
	case FamilyRaw:
		for idx, raw := range grid.Data {
			field.set(idx, float64(raw))
		}
	case FamilyLinearLog:
		scaleLinearLog(td, grid, field)
	default:
		return nil, newCodeError(ErrUnsupportedScaling, -1, code, "%s has no %s scaling rule", ProductName(code), family)
	}

	return field, nil
}

// scaleLinear handles halfword 31 (offset, tenths) and 32 (increment, tenths). Levels 0 and 1 are
// below threshold and range folded. Product 32 starts counting at level 0.
func scaleLinear(code int16, td []byte, grid *RawGrid, field *ScaledField) {
	offset := float64(halfword(td[0:2])) / 10
	increment := float64(halfword(td[2:4])) / 10

	first := 2.0
	if code == 32 {
		first = 0
	}

	for idx, raw := range grid.Data {
		if raw < 2 {
			field.mask(idx)
			continue
		}
		field.set(idx, (float64(raw)-first)*increment+offset)
	}
}

// discreteLevels builds the level lookup from the 16 (flag, value) threshold pairs. The first
// flag byte selects the scale for every level: 0x20 is 1/20, 0x10 is 1/10 and wins over 0x20.
// A level flagged 0x80 has no value. Raw values beyond the table have no value either.
func discreteLevels(td []byte) (levels [256]float64, valid [256]bool) {
	scale := 1.0
	if td[0]&0x20 != 0 {
		scale = 1. / 20
	}
	if td[0]&0x10 != 0 {
		scale = 1. / 10
	}

	for i := 0; i < len(td)/2; i++ {
		flag, value := td[2*i], td[2*i+1]
		if flag&0x80 != 0 {
			continue
		}
		sign := 1.0
		if flag&0x01 != 0 {
			sign = -1
		}
		levels[i] = float64(value) * sign * scale
		valid[i] = true
	}
	return levels, valid
}

func scaleDiscrete(td []byte, grid *RawGrid, field *ScaledField) {
	levels, valid := discreteLevels(td)
	for idx, raw := range grid.Data {
		if !valid[raw] {
			field.mask(idx)
			continue
		}
		field.set(idx, levels[raw])
	}
}

// scaleFloat32 handles the float32 scale and offset in halfwords 31-34: F = (N - OFFSET) / SCALE.
// Accumulation products (170+) are in hundredths of an inch.
func scaleFloat32(code int16, td []byte, grid *RawGrid, field *ScaledField) {
	scale := float64(math.Float32frombits(binary.BigEndian.Uint32(td[0:4])))
	offset := float64(math.Float32frombits(binary.BigEndian.Uint32(td[4:8])))

	var maskAtOrBelow uint8 = 2
	units := 1.0
	if code >= 170 {
		maskAtOrBelow = 1
		units = 0.01
	}

	for idx, raw := range grid.Data {
		if raw <= maskAtOrBelow {
			field.mask(idx)
			continue
		}
		field.set(idx, (float64(raw)-offset)/scale*units)
	}
}

// scaleLinearLog handles the High Resolution VIL encoding (ICD page 3-33). Halfwords 31, 32, 34
// and 35 are Float16; 33 is the raw level where the log scale starts.
func scaleLinearLog(td []byte, grid *RawGrid, field *ScaledField) {
	linearScale := Float16(binary.BigEndian.Uint16(td[0:2]))
	linearOffset := Float16(binary.BigEndian.Uint16(td[2:4]))
	logStart := int(halfword(td[4:6]))
	logScale := Float16(binary.BigEndian.Uint16(td[6:8]))
	logOffset := Float16(binary.BigEndian.Uint16(td[8:10]))

	for idx, raw := range grid.Data {
		if raw < 2 {
			field.mask(idx)
			continue
		}
		n := float64(raw)
		if int(raw) < logStart {
			field.set(idx, (n-linearOffset)/linearScale)
		} else {
			field.set(idx, math.Exp((n-logOffset)/logScale))
		}
	}
}
