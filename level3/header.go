package level3

import (
	"bytes"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// maxTextLineLength is the longest line-break delimited segment still treated as text header.
// The WMO heading "SDUS54 KBMX 020205\r\r" is 20 bytes.
const maxTextLineLength = 40

// TextHeader is the WMO/AWIPS preamble in front of the message header, e.g.
//
//	SDUS54 KBMX 020205\r\r\nN0RBMX\r\r\n
//
// Files pulled from NOAAPort may carry extra short lines (SOH, sequence number) in front.
type TextHeader struct {
	Raw   []byte
	Lines []string

	WMOHeading string // SDUS54
	Originator string // KBMX
	Timestamp  string // DDHHMM
	AWIPSID    string // N0RBMX
}

// Product is the 3 character product identifier from the AWIPS ID (N0R).
func (th TextHeader) Product() string {
	if len(th.AWIPSID) < 3 {
		return ""
	}
	return th.AWIPSID[:3]
}

// Site is the 3 character radar identifier from the AWIPS ID (BMX).
func (th TextHeader) Site() string {
	if len(th.AWIPSID) < 6 {
		return ""
	}
	return th.AWIPSID[3:6]
}

// textHeaderLength walks consecutive line-break delimited segments and returns where the binary
// message header begins. A segment longer than maxTextLineLength or holding a NUL byte is binary;
// the message code's high byte is always 0 so the message header never passes for text.
func textHeaderLength(buf []byte) int {
	pos := 0
	for {
		idx := bytes.IndexByte(buf[pos:], '\n')
		if idx < 0 || idx > maxTextLineLength {
			return pos
		}
		if bytes.IndexByte(buf[pos:pos+idx], 0) >= 0 {
			return pos
		}
		pos += idx + 1
	}
}

func parseTextHeader(raw []byte) TextHeader {
	th := TextHeader{Raw: append([]byte(nil), raw...)}
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(strings.Trim(line, "\r\x01"))
		if line == "" {
			continue
		}
		th.Lines = append(th.Lines, line)

		fields := strings.Fields(line)
		switch {
		case len(fields) >= 3 && len(fields[0]) == 6 && len(fields[2]) == 6:
			th.WMOHeading, th.Originator, th.Timestamp = fields[0], fields[1], fields[2]
		case len(fields) == 1 && len(fields[0]) == 6 && th.WMOHeading != "":
			th.AWIPSID = fields[0]
		}
	}
	return th
}

// headers are the fixed structures in front of the symbology payload.
type headers struct {
	text        TextHeader
	message     MessageHeader
	description ProductDescription

	// offset of the first byte after the product description
	payloadOffset int
}

func parseHeaders(buf []byte) (*headers, error) {
	h := &headers{}

	pos := textHeaderLength(buf)
	h.text = parseTextHeader(buf[:pos])
	logrus.Tracef("text header %q (%s bytes)", h.text.Lines, color.CyanString("%d", pos))

	if err := readStruct(buf, pos, &h.message); err != nil {
		return nil, err
	}
	if !IsSupported(h.message.Code) {
		return nil, newCodeError(ErrUnsupportedProductCode, pos, h.message.Code, "")
	}
	pos += MessageHeaderLength
	logrus.Tracef("message header: %+v", h.message)

	if err := readStruct(buf, pos, &h.description); err != nil {
		return nil, err
	}
	if h.description.Divider != BlockDivider {
		return nil, newCodeError(ErrBadDivider, pos, h.message.Code, "product description divider is %d", h.description.Divider)
	}
	pos += ProductDescriptionLength
	logrus.Tracef("product description: %+v", h.description)

	h.payloadOffset = pos
	return h, nil
}

// messageCode reads only the message code, skipping the text header.
func messageCode(buf []byte) (int16, error) {
	pos := textHeaderLength(buf)
	if pos+2 > len(buf) {
		return 0, newError(ErrTruncatedInput, pos, "need 2 bytes for message code, have %d", remaining(buf, pos))
	}
	return halfword(buf[pos:]), nil
}
