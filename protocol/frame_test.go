package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestWrapKnownFrame(t *testing.T) {
	codec := FrameCodec{}
	got := codec.Wrap([]byte{0x08, 0x41, 0x44, 0x48})
	want := []byte{0x7E, 0x00, 0x04, 0x08, 0x41, 0x44, 0x48, 0x2A}
	if !bytes.Equal(got, want) {
		t.Fatalf("Wrap = % X, want % X", got, want)
	}
}

func TestWrapZeroLengthPayload(t *testing.T) {
	codec := FrameCodec{}
	frame := codec.Wrap(nil)
	want := []byte{0x7E, 0x00, 0x00, 0xFF}
	if !bytes.Equal(frame, want) {
		t.Fatalf("Wrap(nil) = % X, want % X", frame, want)
	}

	payload, consumed, err := codec.Unwrap(frame)
	if err != nil {
		t.Fatalf("Unwrap of empty frame: %v", err)
	}
	if len(payload) != 0 || consumed != len(frame) {
		t.Fatalf("Unwrap of empty frame = % X (consumed %d)", payload, consumed)
	}
}

func TestWrapEscaped(t *testing.T) {
	codec := FrameCodec{Escaped: true}
	// 0x23 + 0x7E sums to 0xA1, so the checksum is 0x5E and the 0x7E
	// payload byte must go out as 7D 5E.
	got := codec.Wrap([]byte{0x23, 0x7E})
	want := []byte{0x7E, 0x00, 0x02, 0x23, 0x7D, 0x5E, 0x5E}
	if !bytes.Equal(got, want) {
		t.Fatalf("Wrap = % X, want % X", got, want)
	}
}

func TestEscapedLengthField(t *testing.T) {
	// A 17-byte payload puts the reserved XOn byte (0x11) into the
	// length field itself; the length must be escaped too.
	codec := FrameCodec{Escaped: true}
	payload := bytes.Repeat([]byte{0x42}, 0x11)
	frame := codec.Wrap(payload)

	if frame[1] != 0x00 || frame[2] != EscapeMarker || frame[3] != 0x11^0x20 {
		t.Fatalf("length field not escaped: % X", frame[:4])
	}

	got, consumed, err := codec.Unwrap(frame)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if consumed != len(frame) || !bytes.Equal(got, payload) {
		t.Fatalf("round trip failed: got % X", got)
	}
}

func TestUnwrapRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		{0x00},
		{0x7E, 0x7D, 0x11, 0x13}, // every reserved byte
		{0x88, 0x01, 0x49, 0x44, 0x00},
		bytes.Repeat([]byte{0xA5}, 300), // length high byte in use
	}

	for _, escaped := range []bool{false, true} {
		codec := FrameCodec{Escaped: escaped}
		for i, p := range payloads {
			frame := codec.Wrap(p)
			got, consumed, err := codec.Unwrap(frame)
			if err != nil {
				t.Errorf("escaped=%v case %d: Unwrap: %v", escaped, i, err)
				continue
			}
			if consumed != len(frame) {
				t.Errorf("escaped=%v case %d: consumed %d of %d", escaped, i, consumed, len(frame))
			}
			if !bytes.Equal(got, p) {
				t.Errorf("escaped=%v case %d: payload % X, want % X", escaped, i, got, p)
			}
		}
	}
}

func TestUnwrapNeedMoreData(t *testing.T) {
	codec := FrameCodec{}
	frame := codec.Wrap([]byte{0x8A, 0x06})

	for cut := 0; cut < len(frame); cut++ {
		_, consumed, err := codec.Unwrap(frame[:cut])
		if !errors.Is(err, ErrNeedMoreData) {
			t.Fatalf("cut=%d: err = %v, want ErrNeedMoreData", cut, err)
		}
		if consumed != 0 {
			t.Fatalf("cut=%d: partial frame must not be consumed, got %d", cut, consumed)
		}
	}

	// Retrying with the full frame succeeds.
	payload, _, err := codec.Unwrap(frame)
	if err != nil || !bytes.Equal(payload, []byte{0x8A, 0x06}) {
		t.Fatalf("retry failed: % X, %v", payload, err)
	}
}

func TestUnwrapSkipsGarbageBeforeDelimiter(t *testing.T) {
	codec := FrameCodec{}
	frame := codec.Wrap([]byte{0x8A, 0x06})
	buf := append([]byte{0x01, 0x02, 0x03}, frame...)

	payload, consumed, err := codec.Unwrap(buf)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if consumed != len(buf) {
		t.Fatalf("consumed %d, want %d", consumed, len(buf))
	}
	if !bytes.Equal(payload, []byte{0x8A, 0x06}) {
		t.Fatalf("payload % X", payload)
	}
}

func TestUnwrapChecksumErrorConsumesFrame(t *testing.T) {
	codec := FrameCodec{}
	bad := codec.Wrap([]byte{0x8A, 0x06})
	bad[len(bad)-1] ^= 0x01 // flip one checksum bit
	good := codec.Wrap([]byte{0x8A, 0x00})
	buf := append(bad, good...)

	_, consumed, err := codec.Unwrap(buf)
	if !errors.Is(err, ErrChecksum) {
		t.Fatalf("err = %v, want ErrChecksum", err)
	}
	if consumed != len(bad) {
		t.Fatalf("consumed %d, want %d", consumed, len(bad))
	}

	// The loop recovers and parses the next well-formed frame.
	payload, _, err := codec.Unwrap(buf[consumed:])
	if err != nil {
		t.Fatalf("recovery Unwrap: %v", err)
	}
	if !bytes.Equal(payload, []byte{0x8A, 0x00}) {
		t.Fatalf("recovered payload % X", payload)
	}
}
