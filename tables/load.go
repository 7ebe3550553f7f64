package tables

import (
	"encoding/hex"
	"fmt"

	"github.com/BurntSushi/toml"

	"beewire/protocol"
)

// File mirrors the on-disk table definition:
//
//	[[command]]
//	name = "at"
//	id = 0x08
//	  [[command.field]]
//	  name = "frame_id"
//	  len = 1
//	  default = "01"
//
//	[[response]]
//	id = 0x92
//	name = "rx_io_data_long_addr"
//	  [[response.field]]
//	  name = "samples"
//	  repeat = { header = 4, record = 2 }
//
// Field lengths are one of `len = n`, `rest = true`, or
// `repeat = { header, record }`. Defaults are hex strings.
type File struct {
	Commands  []CommandDef  `toml:"command"`
	Responses []ResponseDef `toml:"response"`
}

// CommandDef is one sendable message type definition.
type CommandDef struct {
	Name   string     `toml:"name"`
	ID     int        `toml:"id"`
	Fields []FieldDef `toml:"field"`
}

// ResponseDef is one receivable message type definition.
type ResponseDef struct {
	ID     int        `toml:"id"`
	Name   string     `toml:"name"`
	Fields []FieldDef `toml:"field"`
}

// FieldDef is one field of a command or response layout.
type FieldDef struct {
	Name    string     `toml:"name"`
	Len     int        `toml:"len"`
	Rest    bool       `toml:"rest"`
	Repeat  *RepeatDef `toml:"repeat"`
	Default string     `toml:"default"`
}

// RepeatDef sizes a repeated-record field.
type RepeatDef struct {
	Header int `toml:"header"`
	Record int `toml:"record"`
}

// Load reads a TOML table definition from disk.
func Load(path string) (protocol.CommandTable, protocol.ResponseTable, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, nil, fmt.Errorf("parse tables %s: %w", path, err)
	}
	return f.Tables()
}

// Tables converts the raw definition into engine tables. Layout
// validation beyond the conversion itself happens in
// protocol.NewEngine.
func (f *File) Tables() (protocol.CommandTable, protocol.ResponseTable, error) {
	commands := make(protocol.CommandTable, len(f.Commands))
	for _, c := range f.Commands {
		if c.Name == "" {
			return nil, nil, fmt.Errorf("command with id 0x%02X has no name", c.ID)
		}
		if _, dup := commands[c.Name]; dup {
			return nil, nil, fmt.Errorf("duplicate command %q", c.Name)
		}
		id, err := idByte(c.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("command %q: %w", c.Name, err)
		}
		fields, err := fieldSpecs(c.Fields)
		if err != nil {
			return nil, nil, fmt.Errorf("command %q: %w", c.Name, err)
		}
		commands[c.Name] = protocol.CommandSpec{ID: id, Fields: fields}
	}

	responses := make(protocol.ResponseTable, len(f.Responses))
	for _, r := range f.Responses {
		id, err := idByte(r.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("response %q: %w", r.Name, err)
		}
		if _, dup := responses[id]; dup {
			return nil, nil, fmt.Errorf("duplicate response id 0x%02X", id)
		}
		fields, err := fieldSpecs(r.Fields)
		if err != nil {
			return nil, nil, fmt.Errorf("response %q: %w", r.Name, err)
		}
		responses[id] = protocol.ResponseSpec{Name: r.Name, Fields: fields}
	}

	return commands, responses, nil
}

func idByte(id int) (byte, error) {
	if id < 0 || id > 0xFF {
		return 0, fmt.Errorf("id 0x%X out of byte range", id)
	}
	return byte(id), nil
}

func fieldSpecs(defs []FieldDef) ([]protocol.FieldSpec, error) {
	specs := make([]protocol.FieldSpec, 0, len(defs))
	for _, d := range defs {
		spec := protocol.FieldSpec{Name: d.Name}

		switch {
		case d.Repeat != nil:
			if d.Rest || d.Len != 0 {
				return nil, fmt.Errorf("field %q mixes repeat with len/rest", d.Name)
			}
			spec.Len = protocol.Repeated(d.Repeat.Header, d.Repeat.Record)
			spec.Default = []byte{}
		case d.Rest:
			if d.Len != 0 {
				return nil, fmt.Errorf("field %q mixes rest with len", d.Name)
			}
			spec.Len = protocol.Remaining()
			spec.Default = []byte{}
		default:
			spec.Len = protocol.Fixed(d.Len)
		}

		if d.Default != "" {
			value, err := hex.DecodeString(d.Default)
			if err != nil {
				return nil, fmt.Errorf("field %q default %q: %w", d.Name, d.Default, err)
			}
			spec.Default = value
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
