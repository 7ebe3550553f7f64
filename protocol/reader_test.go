package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// chunkReader hands out at most n bytes per Read, like a slow serial
// link.
type chunkReader struct {
	data []byte
	n    int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		return 0, io.EOF
	}
	n := c.n
	if n > len(c.data) {
		n = len(c.data)
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, c.data[:n])
	c.data = c.data[n:]
	return n, nil
}

func TestFrameReaderReassemblesChunkedFrames(t *testing.T) {
	codec := FrameCodec{}
	stream := codec.Wrap([]byte{0x8A, 0x00})
	stream = append(stream, codec.Wrap([]byte{0x8A, 0x06})...)

	fr := NewFrameReader(&chunkReader{data: stream, n: 3}, codec)

	first, err := fr.ReadFrame()
	if err != nil {
		t.Fatalf("first ReadFrame: %v", err)
	}
	if !bytes.Equal(first, []byte{0x8A, 0x00}) {
		t.Fatalf("first payload % X", first)
	}

	second, err := fr.ReadFrame()
	if err != nil {
		t.Fatalf("second ReadFrame: %v", err)
	}
	if !bytes.Equal(second, []byte{0x8A, 0x06}) {
		t.Fatalf("second payload % X", second)
	}

	if _, err := fr.ReadFrame(); err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestFrameReaderSurvivesChecksumError(t *testing.T) {
	codec := FrameCodec{}
	bad := codec.Wrap([]byte{0x8A, 0x06})
	bad[len(bad)-1] ^= 0x80
	stream := append(bad, codec.Wrap([]byte{0x8A, 0x02})...)

	fr := NewFrameReader(bytes.NewReader(stream), codec)

	if _, err := fr.ReadFrame(); !errors.Is(err, ErrChecksum) {
		t.Fatalf("err = %v, want ErrChecksum", err)
	}

	payload, err := fr.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame after bad frame: %v", err)
	}
	if !bytes.Equal(payload, []byte{0x8A, 0x02}) {
		t.Fatalf("payload % X", payload)
	}
}

func TestFrameReaderSkipsLineNoise(t *testing.T) {
	codec := FrameCodec{}
	stream := append([]byte{0xDE, 0xAD, 0xBE, 0xEF}, codec.Wrap([]byte{0x8A, 0x00})...)

	fr := NewFrameReader(&chunkReader{data: stream, n: 2}, codec)
	payload, err := fr.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(payload, []byte{0x8A, 0x00}) {
		t.Fatalf("payload % X", payload)
	}
}
