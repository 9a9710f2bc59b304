package level3

import (
	"bytes"
	"encoding/binary"
)

// readStruct unpacks the fixed big-endian structure v from buf at offset. The struct's field
// layout is the schema; every structure in this package goes through here.
func readStruct(buf []byte, offset int, v interface{}) error {
	size := binary.Size(v)
	if offset < 0 || offset+size > len(buf) {
		return newError(ErrTruncatedInput, offset, "need %d bytes for %T, have %d", size, v, remaining(buf, offset))
	}
	return binary.Read(bytes.NewReader(buf[offset:offset+size]), binary.BigEndian, v)
}

func remaining(buf []byte, offset int) int {
	if offset < 0 || offset > len(buf) {
		return 0
	}
	return len(buf) - offset
}

func halfword(b []byte) int16 {
	return int16(binary.BigEndian.Uint16(b))
}

func fullword(b []byte) int32 {
	return int32(binary.BigEndian.Uint32(b))
}
