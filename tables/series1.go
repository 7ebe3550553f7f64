package tables

import "beewire/protocol"

// Series1 returns the command and response layouts for 802.15.4
// (Series 1) XBee modules.
func Series1() (protocol.CommandTable, protocol.ResponseTable) {
	commands := protocol.CommandTable{
		"at": {ID: 0x08, Fields: []protocol.FieldSpec{
			{Name: "frame_id", Len: protocol.Fixed(1), Default: []byte{0x00}},
			{Name: "command", Len: protocol.Fixed(2)},
			{Name: "parameter", Len: protocol.Remaining(), Default: []byte{}},
		}},
		"queued_at": {ID: 0x09, Fields: []protocol.FieldSpec{
			{Name: "frame_id", Len: protocol.Fixed(1), Default: []byte{0x00}},
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
		"tx_long_addr": {ID: 0x00, Fields: []protocol.FieldSpec{
			{Name: "frame_id", Len: protocol.Fixed(1), Default: []byte{0x00}},
			{Name: "dest_addr", Len: protocol.Fixed(8)},
			{Name: "options", Len: protocol.Fixed(1), Default: []byte{0x00}},
			{Name: "data", Len: protocol.Remaining(), Default: []byte{}},
		}},
		"tx": {ID: 0x01, Fields: []protocol.FieldSpec{
			{Name: "frame_id", Len: protocol.Fixed(1), Default: []byte{0x00}},
			{Name: "dest_addr", Len: protocol.Fixed(2)},
			{Name: "options", Len: protocol.Fixed(1), Default: []byte{0x00}},
			{Name: "data", Len: protocol.Remaining(), Default: []byte{}},
		}},
	}

	// Series 1 sample blocks lead with a count byte and a 2-byte
	// channel mask; samples are 2 bytes each.
	ioSamples := protocol.Repeated(3, 2)

	responses := protocol.ResponseTable{
		0x80: {Name: "rx_long_addr", Fields: []protocol.FieldSpec{
			{Name: "source_addr", Len: protocol.Fixed(8)},
			{Name: "rssi", Len: protocol.Fixed(1)},
			{Name: "options", Len: protocol.Fixed(1)},
			{Name: "rf_data", Len: protocol.Remaining()},
		}},
		0x81: {Name: "rx", Fields: []protocol.FieldSpec{
			{Name: "source_addr", Len: protocol.Fixed(2)},
			{Name: "rssi", Len: protocol.Fixed(1)},
			{Name: "options", Len: protocol.Fixed(1)},
			{Name: "rf_data", Len: protocol.Remaining()},
		}},
		0x82: {Name: "rx_io_data_long_addr", Fields: []protocol.FieldSpec{
			{Name: "source_addr", Len: protocol.Fixed(8)},
			{Name: "rssi", Len: protocol.Fixed(1)},
			{Name: "options", Len: protocol.Fixed(1)},
			{Name: "samples", Len: ioSamples},
		}},
		0x83: {Name: "rx_io_data", Fields: []protocol.FieldSpec{
			{Name: "source_addr", Len: protocol.Fixed(2)},
			{Name: "rssi", Len: protocol.Fixed(1)},
			{Name: "options", Len: protocol.Fixed(1)},
			{Name: "samples", Len: ioSamples},
		}},
		0x89: {Name: "tx_status", Fields: []protocol.FieldSpec{
			{Name: "frame_id", Len: protocol.Fixed(1)},
			{Name: "status", Len: protocol.Fixed(1)},
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
	}

	return commands, responses
}
