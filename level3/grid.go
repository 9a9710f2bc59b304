package level3

import "math"

// RawGrid is the dense radials x bins matrix of 8 bit data levels, one row per radial in the
// order they were encountered.
type RawGrid struct {
	Radials int
	Bins    int
	Data    []uint8 // row-major
}

func newRawGrid(radials, bins int) *RawGrid {
	return &RawGrid{
		Radials: radials,
		Bins:    bins,
		Data:    make([]uint8, radials*bins),
	}
}

// Row returns the levels of one radial. The slice aliases the grid.
func (g *RawGrid) Row(radial int) []uint8 {
	return g.Data[radial*g.Bins : (radial+1)*g.Bins]
}

// At returns the level at a radial and bin.
func (g *RawGrid) At(radial, bin int) uint8 {
	return g.Data[radial*g.Bins+bin]
}

func (g *RawGrid) clone() *RawGrid {
	c := *g
	c.Data = append([]uint8(nil), g.Data...)
	return &c
}

// ScaledField holds physical values in the same shape as the RawGrid it came from. Valid is the
// mask: a cell with Valid false has no physical value and its entry in Values is NaN.
type ScaledField struct {
	Radials int
	Bins    int
	Values  []float64
	Valid   []bool
}

func newScaledField(radials, bins int) *ScaledField {
	return &ScaledField{
		Radials: radials,
		Bins:    bins,
		Values:  make([]float64, radials*bins),
		Valid:   make([]bool, radials*bins),
	}
}

// At returns the value at a radial and bin and whether it is valid.
func (f *ScaledField) At(radial, bin int) (float64, bool) {
	idx := radial*f.Bins + bin
	return f.Values[idx], f.Valid[idx]
}

func (f *ScaledField) set(idx int, v float64) {
	f.Values[idx] = v
	f.Valid[idx] = true
}

func (f *ScaledField) mask(idx int) {
	f.Values[idx] = math.NaN()
	f.Valid[idx] = false
}

func (f *ScaledField) clone() *ScaledField {
	c := *f
	c.Values = append([]float64(nil), f.Values...)
	c.Valid = append([]bool(nil), f.Valid...)
	return &c
}

// FieldStats summarizes the valid cells of a ScaledField.
type FieldStats struct {
	Valid  int
	Masked int
	Min    float64
	Max    float64
}

// Stats counts valid and masked cells and finds the extremes of the valid ones. Min and Max are
// NaN when nothing is valid.
func (f *ScaledField) Stats() FieldStats {
	s := FieldStats{Min: math.NaN(), Max: math.NaN()}
	for idx, ok := range f.Valid {
		if !ok {
			s.Masked++
			continue
		}
		v := f.Values[idx]
		if s.Valid == 0 || v < s.Min {
			s.Min = v
		}
		if s.Valid == 0 || v > s.Max {
			s.Max = v
		}
		s.Valid++
	}
	return s
}
