// Package tables ships frame table contents for common XBee firmware
// variants and a loader for externally defined tables. Table contents
// are configuration data consumed by protocol.NewEngine, not code: a
// new firmware variant is a new table, not a new codec.
package tables

import "beewire/protocol"

// ZigBee returns the command and response layouts for XBee ZB (S2)
// modules with recent firmware.
func ZigBee() (protocol.CommandTable, protocol.ResponseTable) {
	commands := protocol.CommandTable{
		"at": {ID: 0x08, Fields: []protocol.FieldSpec{
			{Name: "frame_id", Len: protocol.Fixed(1), Default: []byte{0x01}},
			{Name: "command", Len: protocol.Fixed(2)},
			{Name: "parameter", Len: protocol.Remaining(), Default: []byte{}},
		}},
		"queued_at": {ID: 0x09, Fields: []protocol.FieldSpec{
			{Name: "frame_id", Len: protocol.Fixed(1), Default: []byte{0x01}},
			{Name: "command", Len: protocol.Fixed(2)},
			{Name: "parameter", Len: protocol.Remaining(), Default: []byte{}},
		}},
		"remote_at": {ID: 0x17, Fields: []protocol.FieldSpec{
			{Name: "frame_id", Len: protocol.Fixed(1), Default: []byte{0x00}},
			{Name: "dest_addr_long", Len: protocol.Fixed(8), Default: make([]byte, 8)},
			{Name: "dest_addr", Len: protocol.Fixed(2), Default: []byte{0xFF, 0xFE}},
			{Name: "options", Len: protocol.Fixed(1), Default: []byte{0x02}},
			{Name: "command", Len: protocol.Fixed(2)},
			{Name: "parameter", Len: protocol.Remaining(), Default: []byte{}},
		}},
		"tx": {ID: 0x10, Fields: []protocol.FieldSpec{
			{Name: "frame_id", Len: protocol.Fixed(1), Default: []byte{0x01}},
			{Name: "dest_addr_long", Len: protocol.Fixed(8)},
			{Name: "dest_addr", Len: protocol.Fixed(2)},
			{Name: "broadcast_radius", Len: protocol.Fixed(1), Default: []byte{0x00}},
			{Name: "options", Len: protocol.Fixed(1), Default: []byte{0x00}},
			{Name: "data", Len: protocol.Remaining(), Default: []byte{}},
		}},
		"tx_explicit": {ID: 0x11, Fields: []protocol.FieldSpec{
			{Name: "frame_id", Len: protocol.Fixed(1), Default: []byte{0x00}},
			{Name: "dest_addr_long", Len: protocol.Fixed(8)},
			{Name: "dest_addr", Len: protocol.Fixed(2)},
			{Name: "src_endpoint", Len: protocol.Fixed(1)},
			{Name: "dest_endpoint", Len: protocol.Fixed(1)},
			{Name: "cluster", Len: protocol.Fixed(1)},
			{Name: "profile", Len: protocol.Fixed(1)},
			{Name: "broadcast_radius", Len: protocol.Fixed(1), Default: []byte{0x00}},
			{Name: "options", Len: protocol.Fixed(1), Default: []byte{0x00}},
			{Name: "data", Len: protocol.Remaining(), Default: []byte{}},
		}},
	}

	responses := protocol.ResponseTable{
		0x90: {Name: "rx", Fields: []protocol.FieldSpec{
			{Name: "source_addr_long", Len: protocol.Fixed(8)},
			{Name: "source_addr", Len: protocol.Fixed(2)},
			{Name: "options", Len: protocol.Fixed(1)},
			{Name: "rf_data", Len: protocol.Remaining()},
		}},
		0x91: {Name: "rx_explicit", Fields: []protocol.FieldSpec{
			{Name: "source_addr_long", Len: protocol.Fixed(8)},
			{Name: "source_addr", Len: protocol.Fixed(2)},
			{Name: "source_endpoint", Len: protocol.Fixed(1)},
			{Name: "dest_endpoint", Len: protocol.Fixed(1)},
			{Name: "cluster", Len: protocol.Fixed(2)},
			{Name: "profile", Len: protocol.Fixed(2)},
			{Name: "options", Len: protocol.Fixed(1)},
			{Name: "rf_data", Len: protocol.Remaining()},
		}},
		// Sample block sizing (4-byte header of count + digital mask +
		// analog mask, 2-byte samples) tracks the S2 datasheet. Verify
		// against your hardware before trusting the record split; it
		// is table data, adjust here or ship a TOML override.
		0x92: {Name: "rx_io_data_long_addr", Fields: []protocol.FieldSpec{
			{Name: "source_addr_long", Len: protocol.Fixed(8)},
			{Name: "source_addr", Len: protocol.Fixed(2)},
			{Name: "options", Len: protocol.Fixed(1)},
			{Name: "samples", Len: protocol.Repeated(4, 2)},
		}},
		0x8B: {Name: "tx_status", Fields: []protocol.FieldSpec{
			{Name: "frame_id", Len: protocol.Fixed(1)},
			{Name: "dest_addr", Len: protocol.Fixed(2)},
			{Name: "retries", Len: protocol.Fixed(1)},
			{Name: "deliver_status", Len: protocol.Fixed(1)},
			{Name: "discover_status", Len: protocol.Fixed(1)},
		}},
		0x8A: {Name: "status", Fields: []protocol.FieldSpec{
			{Name: "status", Len: protocol.Fixed(1)},
		}},
		0x88: {Name: "at_response", Fields: []protocol.FieldSpec{
			{Name: "frame_id", Len: protocol.Fixed(1)},
			{Name: "command", Len: protocol.Fixed(2)},
			{Name: "status", Len: protocol.Fixed(1)},
			{Name: "parameter", Len: protocol.Remaining()},
		}},
		0x97: {Name: "remote_at_response", Fields: []protocol.FieldSpec{
			{Name: "frame_id", Len: protocol.Fixed(1)},
			{Name: "source_addr_long", Len: protocol.Fixed(8)},
			{Name: "source_addr", Len: protocol.Fixed(2)},
			{Name: "command", Len: protocol.Fixed(2)},
			{Name: "status", Len: protocol.Fixed(1)},
			{Name: "parameter", Len: protocol.Remaining()},
		}},
		0x95: {Name: "node_id_indicator", Fields: []protocol.FieldSpec{
			{Name: "sender_addr_long", Len: protocol.Fixed(8)},
			{Name: "sender_addr", Len: protocol.Fixed(2)},
			{Name: "options", Len: protocol.Fixed(1)},
			{Name: "source_addr", Len: protocol.Fixed(2)},
			{Name: "source_addr_long", Len: protocol.Fixed(8)},
			{Name: "node_id", Len: protocol.Fixed(0)},
			{Name: "parent_source_addr", Len: protocol.Fixed(2)},
			{Name: "device_type", Len: protocol.Fixed(1)},
			{Name: "source_event", Len: protocol.Fixed(1)},
			{Name: "digi_profile_id", Len: protocol.Fixed(2)},
			{Name: "manufacturer_id", Len: protocol.Fixed(2)},
		}},
	}

	return commands, responses
}
