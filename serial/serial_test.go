package serial

import "testing"

func TestDefaultConfigUsesBlockingReads(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyUSB0")

	// A nonzero read timeout makes an idle port surface timed-out
	// reads as io.EOF, which a frame reader takes for end-of-stream;
	// the defaults must keep reads blocking so a monitor only stops
	// on Close.
	if cfg.ReadTimeout != 0 {
		t.Fatalf("ReadTimeout = %d, want 0 (blocking)", cfg.ReadTimeout)
	}
	if cfg.Baud != 9600 {
		t.Errorf("Baud = %d, want 9600", cfg.Baud)
	}
	if cfg.Device != "/dev/ttyUSB0" {
		t.Errorf("Device = %q", cfg.Device)
	}
}
