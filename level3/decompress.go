package level3

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/dsnet/compress/bzip2"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// maxSymbologySize caps the decompressed symbology payload.
const maxSymbologySize = 64 << 20

var bzip2Magic = []byte("BZ")

// isCompressed reports whether the payload starting at offset is a bzip2 stream.
func isCompressed(buf []byte, offset int) bool {
	return offset+len(bzip2Magic) <= len(buf) && bytes.Equal(buf[offset:offset+len(bzip2Magic)], bzip2Magic)
}

// symbologyBuffer returns the (decompressed if necessary) payload after the product description,
// refusing decompressed payloads over limit bytes. All later offsets are relative to the returned
// buffer.
func symbologyBuffer(buf []byte, offset int, limit int64) ([]byte, bool, error) {
	if offset > len(buf) {
		return nil, false, newError(ErrTruncatedInput, offset, "no symbology payload")
	}
	if !isCompressed(buf, offset) {
		return buf[offset:], false, nil
	}

	bzipReader, err := bzip2.NewReader(bytes.NewReader(buf[offset:]), nil)
	if err != nil {
		return nil, true, newError(ErrDecompressionFailure, offset, "%v", err)
	}
	defer bzipReader.Close()

	// read one byte past the cap so an oversize payload is detectable
	out, err := ioutil.ReadAll(io.LimitReader(bzipReader, limit+1))
	if err != nil {
		return nil, true, newError(ErrDecompressionFailure, offset, "%v", err)
	}
	if int64(len(out)) > limit {
		return nil, true, newError(ErrDecompressionFailure, offset, "payload exceeds %d bytes", limit)
	}

	logrus.Debugf("bzip2 symbology block (%s -> %s bytes)",
		color.CyanString("%d", len(buf)-offset),
		color.CyanString("%d", len(out)))
	return out, true, nil
}
