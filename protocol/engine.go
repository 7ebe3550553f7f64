package protocol

import "fmt"

// CommandSpec describes one sendable message type. ID is the fixed
// first payload byte identifying the type on the wire; Fields lay out
// the caller-supplied portion after it.
type CommandSpec struct {
	ID     byte
	Fields []FieldSpec
}

// ResponseSpec describes one receivable message type. It is keyed in
// the response table by the leading payload byte.
type ResponseSpec struct {
	Name   string
	Fields []FieldSpec
}

// CommandTable maps symbolic command names to their wire layout.
type CommandTable map[string]CommandSpec

// ResponseTable maps response type id bytes to their wire layout.
type ResponseTable map[byte]ResponseSpec

// Message is one decoded inbound frame.
type Message struct {
	// Name is the symbolic response name from the table.
	Name string
	// Fields holds the raw bytes of every field by name.
	Fields map[string][]byte
	// Blocks holds the decoded form of repeated-record fields, if the
	// response declares any.
	Blocks map[string]*RecordBlock
}

// Field returns the raw bytes of a named field, or nil if the message
// has no such field.
func (m *Message) Field(name string) []byte { return m.Fields[name] }

// Block returns the decoded repeated-record field by name, or nil.
func (m *Message) Block(name string) *RecordBlock { return m.Blocks[name] }

// Engine binds a command table and a response table to the frame and
// field codecs. Tables are validated and copied at construction and
// never mutated afterwards, so a single engine is safe to share across
// goroutines.
type Engine struct {
	commands  CommandTable
	responses ResponseTable
	codec     FrameCodec
}

// NewEngine validates both tables and returns an engine using them.
func NewEngine(commands CommandTable, responses ResponseTable, codec FrameCodec) (*Engine, error) {
	e := &Engine{
		commands:  make(CommandTable, len(commands)),
		responses: make(ResponseTable, len(responses)),
		codec:     codec,
	}
	for name, spec := range commands {
		if name == "" {
			return nil, fmt.Errorf("command with id 0x%02X has no name", spec.ID)
		}
		if err := validateLayout(spec.Fields); err != nil {
			return nil, fmt.Errorf("command %q: %w", name, err)
		}
		e.commands[name] = spec
	}
	for id, spec := range responses {
		if spec.Name == "" {
			return nil, fmt.Errorf("response 0x%02X has no name", id)
		}
		if err := validateLayout(spec.Fields); err != nil {
			return nil, fmt.Errorf("response %q: %w", spec.Name, err)
		}
		e.responses[id] = spec
	}
	return e, nil
}

// Build looks up name in the command table, packs params per its
// layout and wraps the result into a complete wire frame. The id byte
// comes from the table, never from params.
func (e *Engine) Build(name string, params map[string][]byte) ([]byte, error) {
	spec, ok := e.commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	packed, err := Pack(spec.Fields, params)
	if err != nil {
		return nil, fmt.Errorf("command %q: %w", name, err)
	}
	payload := make([]byte, 0, len(packed)+1)
	payload = append(payload, spec.ID)
	payload = append(payload, packed...)
	return e.codec.Wrap(payload), nil
}

// Parse unwraps one complete raw frame and decodes its payload.
func (e *Engine) Parse(frame []byte) (*Message, error) {
	payload, _, err := e.codec.Unwrap(frame)
	if err != nil {
		return nil, err
	}
	return e.Decode(payload)
}

// Decode interprets an already unwrapped payload: the first byte
// selects the response layout, the remainder is split per its field
// table.
func (e *Engine) Decode(payload []byte) (*Message, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrTruncatedPayload)
	}
	id := payload[0]
	spec, ok := e.responses[id]
	if !ok {
		return nil, fmt.Errorf("%w: id 0x%02X", ErrUnknownResponse, id)
	}
	fields, blocks, err := Unpack(spec.Fields, payload[1:])
	if err != nil {
		return nil, fmt.Errorf("response %q: %w", spec.Name, err)
	}
	return &Message{Name: spec.Name, Fields: fields, Blocks: blocks}, nil
}

// Codec returns the frame codec the engine wraps and unwraps with.
func (e *Engine) Codec() FrameCodec { return e.codec }
