package catalog

import "errors"

// Fatal compile failures. Call sites wrap these with line and key context via
// fmt.Errorf("...: %w", ...); callers classify with errors.Is.
var (
	// ErrMalformedInput marks structurally broken input: a key/value line
	// before any block header, a CRC line without its two hex halves, or a
	// corrupt binary artifact.
	ErrMalformedInput = errors.New("malformed input")

	// ErrOutOfRange marks a numeric field outside its declared range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidLiteral marks a field whose value must be one exact literal.
	ErrInvalidLiteral = errors.New("invalid literal")

	// ErrUnknownEnumVariant marks an unrecognized SaveType vocabulary entry.
	ErrUnknownEnumVariant = errors.New("unknown enum variant")

	// ErrCapacityExceeded marks overflow of a bounded table, such as the
	// 31-entry patch table or the 16-bit record count.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrConflictingForm marks a record that declares both an alias target
	// and explicit direct-form configuration.
	ErrConflictingForm = errors.New("conflicting record form")
)
