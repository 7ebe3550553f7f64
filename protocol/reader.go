package protocol

import (
	"errors"
	"io"
)

// FrameReader pulls complete frames out of a byte stream. It keeps a
// carry buffer of partial frame bytes between reads, so short reads
// from a slow serial link are fine.
type FrameReader struct {
	r     io.Reader
	codec FrameCodec
	buf   []byte
}

// NewFrameReader wraps a byte stream with a frame codec.
func NewFrameReader(r io.Reader, codec FrameCodec) *FrameReader {
	return &FrameReader{r: r, codec: codec}
}

// ReadFrame blocks until one complete frame is available and returns
// its payload. A checksum failure consumes the bad frame and is
// surfaced as ErrChecksum; the reader stays usable and picks up at the
// next delimiter. Stream errors (including io.EOF) are returned as-is.
func (fr *FrameReader) ReadFrame() ([]byte, error) {
	var chunk [256]byte
	for {
		payload, consumed, err := fr.codec.Unwrap(fr.buf)
		fr.buf = fr.buf[consumed:]
		if err == nil {
			return payload, nil
		}
		if !errors.Is(err, ErrNeedMoreData) {
			return nil, err
		}

		n, rerr := fr.r.Read(chunk[:])
		if n > 0 {
			fr.buf = append(fr.buf, chunk[:n]...)
			continue
		}
		if rerr != nil {
			return nil, rerr
		}
	}
}

// Close closes the underlying stream when it supports closing, which
// unblocks a pending ReadFrame.
func (fr *FrameReader) Close() error {
	if c, ok := fr.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
