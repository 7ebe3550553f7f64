package tables

import (
	"bytes"
	"testing"

	"beewire/protocol"
)

func TestZigBeeTablesBuildEngine(t *testing.T) {
	commands, responses := ZigBee()
	engine, err := protocol.NewEngine(commands, responses, protocol.FrameCodec{})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	frame, err := engine.Build("at", map[string][]byte{"command": []byte("MY")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// id 0x08, default frame_id 0x01, "MY", empty parameter.
	want := []byte{0x7E, 0x00, 0x04, 0x08, 0x01, 0x4D, 0x59, 0x50}
	if !bytes.Equal(frame, want) {
		t.Fatalf("frame % X, want % X", frame, want)
	}
}

func TestZigBeeRemoteAtDefaults(t *testing.T) {
	commands, responses := ZigBee()
	engine, err := protocol.NewEngine(commands, responses, protocol.FrameCodec{})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	frame, err := engine.Build("remote_at", map[string][]byte{"command": []byte("D0")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	payload, _, err := engine.Codec().Unwrap(frame)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	want := []byte{
		0x17, 0x00, // id, frame_id
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // dest_addr_long
		0xFF, 0xFE, // dest_addr
		0x02,       // options (apply changes)
		0x44, 0x30, // "D0"
	}
	if !bytes.Equal(payload, want) {
		t.Fatalf("payload % X, want % X", payload, want)
	}
}

func TestZigBeeParsesRx(t *testing.T) {
	commands, responses := ZigBee()
	engine, err := protocol.NewEngine(commands, responses, protocol.FrameCodec{})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	payload := []byte{
		0x90,                                           // rx
		0x00, 0x13, 0xA2, 0x00, 0x40, 0x52, 0x2B, 0xAA, // source_addr_long
		0x7D, 0x84, // source_addr
		0x01,             // options
		0x52, 0x78, 0x44, // rf_data
	}
	msg, err := engine.Parse(engine.Codec().Wrap(payload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if msg.Name != "rx" {
		t.Errorf("Name = %q", msg.Name)
	}
	if !bytes.Equal(msg.Field("rf_data"), []byte{0x52, 0x78, 0x44}) {
		t.Errorf("rf_data % X", msg.Field("rf_data"))
	}
}

func TestZigBeeIOSamples(t *testing.T) {
	commands, responses := ZigBee()
	engine, err := protocol.NewEngine(commands, responses, protocol.FrameCodec{})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	payload := []byte{
		0x92,                                           // rx_io_data_long_addr
		0x00, 0x13, 0xA2, 0x00, 0x40, 0x52, 0x2B, 0xAA, // source_addr_long
		0x7D, 0x84, // source_addr
		0x01,                   // options
		0x01, 0x00, 0x1C, 0x02, // sample header
		0x00, 0x14, // record 0
		0x02, 0x25, // record 1
	}
	msg, err := engine.Parse(engine.Codec().Wrap(payload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	block := msg.Block("samples")
	if block == nil {
		t.Fatal("no samples block")
	}
	if block.Count() != 2 {
		t.Fatalf("Count = %d, want 2", block.Count())
	}
	if !bytes.Equal(block.Record(1), []byte{0x02, 0x25}) {
		t.Errorf("record 1 = % X", block.Record(1))
	}
}

func TestSeries1TablesBuildEngine(t *testing.T) {
	commands, responses := Series1()
	engine, err := protocol.NewEngine(commands, responses, protocol.FrameCodec{})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	payload := []byte{
		0x81,       // rx
		0x12, 0x34, // source_addr
		0x28,       // rssi
		0x00,       // options
		0x68, 0x69, // rf_data
	}
	msg, err := engine.Parse(engine.Codec().Wrap(payload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if msg.Name != "rx" {
		t.Errorf("Name = %q", msg.Name)
	}
	if !bytes.Equal(msg.Field("source_addr"), []byte{0x12, 0x34}) {
		t.Errorf("source_addr % X", msg.Field("source_addr"))
	}
}
