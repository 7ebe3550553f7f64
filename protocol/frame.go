// Package protocol implements the XBee API frame envelope and the
// table-driven command/response codec layered on top of it.
package protocol

import "bytes"

// Wire framing constants.
const (
	// StartDelimiter opens every API frame.
	StartDelimiter = 0x7E
	// EscapeMarker prefixes an escaped byte in API mode 2.
	EscapeMarker = 0x7D
	// XOn and XOff are the flow control bytes reserved by the radio.
	XOn  = 0x11
	XOff = 0x13

	// escapeXor is applied to a byte following the escape marker.
	escapeXor = 0x20

	// frameOverhead is delimiter + 2 length bytes + checksum.
	frameOverhead = 4
)

// FrameCodec wraps and unwraps the wire envelope around a payload:
// start delimiter, big-endian 2-byte payload length, payload bytes,
// checksum. With Escaped set (API mode 2) every reserved byte in the
// length/payload/checksum region is emitted as the escape marker
// followed by the byte XORed with 0x20. The leading delimiter itself
// is never escaped. The length field always counts unescaped payload
// bytes.
type FrameCodec struct {
	Escaped bool
}

func reservedByte(b byte) bool {
	switch b {
	case StartDelimiter, EscapeMarker, XOn, XOff:
		return true
	}
	return false
}

// Wrap frames a payload for transmission. A zero-length payload is
// valid and wraps to delimiter, 0x00 0x00, checksum 0xFF.
func (c FrameCodec) Wrap(payload []byte) []byte {
	body := make([]byte, 0, len(payload)+frameOverhead-1)
	body = append(body, byte(len(payload)>>8), byte(len(payload)))
	body = append(body, payload...)
	body = append(body, Checksum(payload))

	out := make([]byte, 1, len(body)+1)
	out[0] = StartDelimiter
	if !c.Escaped {
		return append(out, body...)
	}
	for _, b := range body {
		if reservedByte(b) {
			out = append(out, EscapeMarker, b^escapeXor)
		} else {
			out = append(out, b)
		}
	}
	return out
}

// Unwrap extracts one payload from buf. Bytes before the first
// delimiter are skipped, which is where a caller resynchronizes after
// a bad frame. The consumed count tells the caller how many leading
// bytes of buf are spent regardless of outcome:
//
//   - success: the whole frame is consumed and its payload returned
//   - ErrNeedMoreData: only the garbage before the delimiter is
//     consumed; retry with the partial frame plus new bytes
//   - ErrChecksum: the complete bad frame is consumed so the next call
//     starts clean
func (c FrameCodec) Unwrap(buf []byte) (payload []byte, consumed int, err error) {
	start := bytes.IndexByte(buf, StartDelimiter)
	if start < 0 {
		return nil, len(buf), ErrNeedMoreData
	}

	pos := start + 1
	next := func() (byte, bool) {
		if pos >= len(buf) {
			return 0, false
		}
		b := buf[pos]
		pos++
		if c.Escaped && b == EscapeMarker {
			if pos >= len(buf) {
				return 0, false
			}
			b = buf[pos] ^ escapeXor
			pos++
		}
		return b, true
	}

	hi, ok := next()
	if !ok {
		return nil, start, ErrNeedMoreData
	}
	lo, ok := next()
	if !ok {
		return nil, start, ErrNeedMoreData
	}
	length := int(hi)<<8 | int(lo)

	payload = make([]byte, 0, length)
	for i := 0; i < length; i++ {
		b, ok := next()
		if !ok {
			return nil, start, ErrNeedMoreData
		}
		payload = append(payload, b)
	}

	sum, ok := next()
	if !ok {
		return nil, start, ErrNeedMoreData
	}
	if !VerifyChecksum(payload, sum) {
		return nil, pos, ErrChecksum
	}
	return payload, pos, nil
}
