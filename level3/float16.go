package level3

import "math"

// Float16 converts the 16 bit float used by the High Resolution VIL threshold data (ICD page 3-33).
// It is not IEEE half precision: the exponent bias is 16 and the denormal form has a leading factor of 2.
func Float16(v uint16) float64 {
	s := (v & 0x8000) >> 15
	e := int((v & 0x7c00) >> 10)
	f := float64(v&0x03ff) / 1024

	sign := 1.0
	if s == 1 {
		sign = -1
	}

	if e == 0 {
		return sign * 2 * f
	}
	return sign * math.Ldexp(1+f, e-16)
}
