package level3

// paramField locates one product dependent parameter by its halfword number (ICD Table V).
type paramField struct {
	name     string
	halfword int
	words    int // 1 = int16, 2 = int32 spanning two halfwords
}

// elevation angle is always halfword 30 and compression details always 51-53
var (
	elevationAngle   = paramField{"elevation_angle", 30, 1}
	compressed       = paramField{"compressed", 51, 1}
	uncompressedSize = paramField{"uncompressed_size", 52, 2}
)

// Table V, pages 3-43 to 3-64. Only the digital products are filled in.
var productParams = map[int16][]paramField{
	32: {
		{"max_reflectivity", 47, 1},
		compressed,
		uncompressedSize,
	},
	94: {
		elevationAngle,
		{"max_reflectivity", 47, 1},
		compressed,
		uncompressedSize,
	},
	99: {
		elevationAngle,
		{"max_negative_velocity", 47, 1},
		{"max_positive_velocity", 48, 1},
		compressed,
		uncompressedSize,
	},
	159: dualPolParams,
	161: dualPolParams,
	163: dualPolParams,
	165: {elevationAngle, compressed, uncompressedSize},
	177: {elevationAngle, compressed, uncompressedSize},
}

var dualPolParams = []paramField{
	elevationAngle,
	{"max_value", 47, 1},
	{"min_value", 48, 1},
	compressed,
	uncompressedSize,
}

// productParameters extracts the product dependent halfwords (27, 28, 30, 47-53) for the
// products that have a table entry. Values are unscaled.
func productParameters(code int16, pd *ProductDescription) map[string]int32 {
	fields, ok := productParams[code]
	if !ok {
		return map[string]int32{}
	}

	params := make(map[string]int32, len(fields))
	for _, f := range fields {
		b := halfwordBytes(pd, f.halfword, f.words)
		if b == nil {
			continue
		}
		if f.words == 2 {
			params[f.name] = fullword(b)
		} else {
			params[f.name] = int32(halfword(b))
		}
	}
	return params
}

// halfwordBytes returns the bytes of words consecutive halfwords starting at halfword n, nil when
// they are not all product dependent.
func halfwordBytes(pd *ProductDescription, n, words int) []byte {
	switch {
	case n >= 27 && n+words-1 <= 28:
		return pd.Halfwords27_28[(n-27)*2 : (n-27+words)*2]
	case n == 30 && words == 1:
		return pd.Halfwords30[:]
	case n >= 47 && n+words-1 <= 53:
		return pd.Halfwords47_53[(n-47)*2 : (n-47+words)*2]
	}
	return nil
}
