package level3

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedProductCode means the message code is not in the supported product list.
	ErrUnsupportedProductCode = errors.New("unsupported product code")

	// ErrUnsupportedPacketCode means the symbology block does not start with a radial packet we can decode.
	ErrUnsupportedPacketCode = errors.New("unsupported packet code")

	// ErrTruncatedInput means fewer bytes remain than a fixed structure requires.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrDecompressionFailure means the bzip2 symbology payload could not be decompressed.
	ErrDecompressionFailure = errors.New("decompression failure")

	// ErrMalformedPacket means a radial packet is internally inconsistent.
	ErrMalformedPacket = errors.New("malformed packet")

	// ErrBadDivider means a block or layer divider was not -1.
	ErrBadDivider = errors.New("bad block divider")

	// ErrUnsupportedScaling means the product is accepted but has no scaling rule.
	ErrUnsupportedScaling = errors.New("unsupported scaling")

	// ErrUnknownRangeResolution means the product has no range bin resolution entry.
	ErrUnknownRangeResolution = errors.New("unknown range resolution")
)

// DecodeError carries the failing structure's location. It unwraps to one of the Err* sentinels.
type DecodeError struct {
	Kind    error
	Offset  int   // byte offset into the buffer being read, -1 if not applicable
	Code    int16 // message or packet code involved, meaningful only when HasCode is set
	HasCode bool
	Detail  string
}

func (e *DecodeError) Error() string {
	msg := e.Kind.Error()
	if e.HasCode {
		msg = fmt.Sprintf("%s %d", msg, e.Code)
	}
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s at offset %d", msg, e.Offset)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}

func newError(kind error, offset int, format string, args ...interface{}) *DecodeError {
	return &DecodeError{
		Kind:   kind,
		Offset: offset,
		Detail: fmt.Sprintf(format, args...),
	}
}

// newCodeError is newError for failures tied to a message or packet code.
func newCodeError(kind error, offset int, code int16, format string, args ...interface{}) *DecodeError {
	e := newError(kind, offset, format, args...)
	e.Code, e.HasCode = code, true
	return e
}
