package protocol

import "errors"

var (
	// ErrNeedMoreData means the buffer ends before a complete frame.
	// It is a retry signal, not a failure: call again once more bytes
	// have arrived.
	ErrNeedMoreData = errors.New("incomplete frame, need more data")

	// ErrChecksum means a complete frame arrived but its checksum byte
	// does not verify. The bad frame has been consumed.
	ErrChecksum = errors.New("frame checksum mismatch")

	// ErrTruncatedPayload means a payload ended before a fixed-length
	// field was satisfied.
	ErrTruncatedPayload = errors.New("truncated payload")

	// ErrTrailingBytes means a payload had bytes left over after the
	// last field of its layout.
	ErrTrailingBytes = errors.New("trailing bytes after last field")

	// ErrFieldLength means a supplied value does not match its field's
	// fixed byte count.
	ErrFieldLength = errors.New("field length mismatch")

	// ErrMissingField means a required field had neither a supplied
	// value nor a default.
	ErrMissingField = errors.New("missing required field")

	// ErrUnknownCommand means the command name is not in the command
	// table.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUnknownResponse means the leading payload byte is not in the
	// response table.
	ErrUnknownResponse = errors.New("unknown response type")
)
