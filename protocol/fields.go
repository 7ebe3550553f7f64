package protocol

import "fmt"

// LengthKind discriminates how a field's byte count is determined.
type LengthKind int

const (
	// LengthFixed fields occupy an exact byte count.
	LengthFixed LengthKind = iota
	// LengthRemaining fields absorb every byte left in the payload.
	LengthRemaining
	// LengthRepeated fields absorb the rest of the payload and decode
	// it as a fixed header followed by fixed-size records.
	LengthRepeated
)

// FieldLen is a closed variant over field length policies.
type FieldLen struct {
	Kind      LengthKind
	Size      int // byte count for LengthFixed
	HeaderLen int // leading header bytes for LengthRepeated
	RecordLen int // bytes per record for LengthRepeated
}

// Fixed is a field of exactly n bytes.
func Fixed(n int) FieldLen { return FieldLen{Kind: LengthFixed, Size: n} }

// Remaining is a field absorbing the rest of the payload. Only legal
// as the last field of a layout.
func Remaining() FieldLen { return FieldLen{Kind: LengthRemaining} }

// Repeated is a field absorbing the rest of the payload as a
// headerLen-byte header followed by recordLen-byte records. Only legal
// as the last field of a layout. The record count is derived from the
// byte count, never from a count field.
func Repeated(headerLen, recordLen int) FieldLen {
	return FieldLen{Kind: LengthRepeated, HeaderLen: headerLen, RecordLen: recordLen}
}

// FieldSpec names one slice of a payload. A nil Default marks the
// field required on pack; a non-nil empty Default makes it optional.
type FieldSpec struct {
	Name    string
	Len     FieldLen
	Default []byte
}

// RecordBlock holds a decoded repeated-record field: a raw header and
// a run of fixed-size records. Blocks are immutable, so the record
// sequence can be walked any number of times.
type RecordBlock struct {
	header    []byte
	body      []byte
	recordLen int
}

func newRecordBlock(data []byte, headerLen, recordLen int) (*RecordBlock, error) {
	if len(data) < headerLen {
		return nil, fmt.Errorf("%w: record header wants %d bytes, have %d",
			ErrTruncatedPayload, headerLen, len(data))
	}
	body := data[headerLen:]
	if len(body)%recordLen != 0 {
		return nil, fmt.Errorf("%w: %d record bytes do not divide into %d-byte records",
			ErrTruncatedPayload, len(body), recordLen)
	}
	return &RecordBlock{header: data[:headerLen], body: body, recordLen: recordLen}, nil
}

// Header returns the raw leading header bytes. Its interpretation
// (sample counts, channel masks) belongs to the table that declared
// the field, not to the codec.
func (b *RecordBlock) Header() []byte { return b.header }

// Count returns the number of records.
func (b *RecordBlock) Count() int { return len(b.body) / b.recordLen }

// Record returns the i-th record. It panics when i is out of range,
// like a slice index.
func (b *RecordBlock) Record(i int) []byte {
	off := i * b.recordLen
	return b.body[off : off+b.recordLen]
}

// Records materializes all records in order.
func (b *RecordBlock) Records() [][]byte {
	out := make([][]byte, b.Count())
	for i := range out {
		out[i] = b.Record(i)
	}
	return out
}

// validateLayout rejects field layouts that cannot be packed or
// unpacked unambiguously. Called once when an Engine adopts a table.
func validateLayout(specs []FieldSpec) error {
	seen := make(map[string]bool, len(specs))
	for i, spec := range specs {
		if spec.Name == "" {
			return fmt.Errorf("field %d has no name", i)
		}
		if seen[spec.Name] {
			return fmt.Errorf("duplicate field %q", spec.Name)
		}
		seen[spec.Name] = true

		switch spec.Len.Kind {
		case LengthFixed:
			if spec.Len.Size < 0 {
				return fmt.Errorf("field %q has negative length", spec.Name)
			}
			if spec.Default != nil && len(spec.Default) != spec.Len.Size {
				return fmt.Errorf("field %q default is %d bytes, want %d",
					spec.Name, len(spec.Default), spec.Len.Size)
			}
		case LengthRemaining:
			if i != len(specs)-1 {
				return fmt.Errorf("variable-length field %q must be last", spec.Name)
			}
		case LengthRepeated:
			if i != len(specs)-1 {
				return fmt.Errorf("repeated-record field %q must be last", spec.Name)
			}
			if spec.Len.RecordLen <= 0 {
				return fmt.Errorf("field %q has no record size", spec.Name)
			}
			if spec.Len.HeaderLen < 0 {
				return fmt.Errorf("field %q has negative header size", spec.Name)
			}
		default:
			return fmt.Errorf("field %q has unknown length kind %d", spec.Name, spec.Len.Kind)
		}
	}
	return nil
}

// Pack emits one byte region per field, in layout order. Each field
// takes the caller-supplied value if present, else its default, else
// fails with ErrMissingField. Fixed-length fields reject values of the
// wrong size with ErrFieldLength; variable-length fields accept any
// size and are emitted as-is. Pack assumes a validated layout.
func Pack(specs []FieldSpec, params map[string][]byte) ([]byte, error) {
	out := make([]byte, 0, 16)
	for _, spec := range specs {
		value, ok := params[spec.Name]
		if !ok {
			if spec.Default == nil {
				return nil, fmt.Errorf("%w: %q", ErrMissingField, spec.Name)
			}
			value = spec.Default
		}
		if spec.Len.Kind == LengthFixed && len(value) != spec.Len.Size {
			return nil, fmt.Errorf("%w: %q wants %d bytes, got %d",
				ErrFieldLength, spec.Name, spec.Len.Size, len(value))
		}
		out = append(out, value...)
	}
	return out, nil
}

// Unpack consumes payload left to right per the field layout. Field
// values alias the payload, which is treated as immutable once
// received. Repeated-record fields are returned both raw (in the field
// map) and decoded (in the block map).
func Unpack(specs []FieldSpec, payload []byte) (map[string][]byte, map[string]*RecordBlock, error) {
	fields := make(map[string][]byte, len(specs))
	var blocks map[string]*RecordBlock

	rest := payload
	for _, spec := range specs {
		switch spec.Len.Kind {
		case LengthFixed:
			if len(rest) < spec.Len.Size {
				return nil, nil, fmt.Errorf("%w: field %q wants %d bytes, have %d",
					ErrTruncatedPayload, spec.Name, spec.Len.Size, len(rest))
			}
			fields[spec.Name] = rest[:spec.Len.Size]
			rest = rest[spec.Len.Size:]
		case LengthRemaining:
			fields[spec.Name] = rest
			rest = nil
		case LengthRepeated:
			block, err := newRecordBlock(rest, spec.Len.HeaderLen, spec.Len.RecordLen)
			if err != nil {
				return nil, nil, fmt.Errorf("field %q: %w", spec.Name, err)
			}
			if blocks == nil {
				blocks = make(map[string]*RecordBlock, 1)
			}
			blocks[spec.Name] = block
			fields[spec.Name] = rest
			rest = nil
		}
	}
	if len(rest) != 0 {
		return nil, nil, fmt.Errorf("%w: %d bytes", ErrTrailingBytes, len(rest))
	}
	return fields, blocks, nil
}
