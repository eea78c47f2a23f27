package bitattr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDefinition = errors.New("invalid bitmask definition")
	ErrUnsupportedValue  = errors.New("unsupported value")
	ErrInvalidMask       = errors.New("invalid mask")

	// ErrUnknownAttr is returned by row operations for an attribute that is
	// not defined on the record or has no field in the row struct.
	ErrUnknownAttr = errors.New("unknown attribute")
)

// DefinitionError reports a malformed attribute definition: duplicate or
// blank symbols, too many symbols, a clashing zero value, or a layout that
// would move existing bits.
type DefinitionError struct {
	Record string
	Attr   string
	Msg    string
}

func defErrf(record, attr string, format string, args ...any) error {
	return &DefinitionError{record, attr, fmt.Sprintf(format, args...)}
}

func (e *DefinitionError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

func (e *DefinitionError) Error() string {
	var buf strings.Builder
	writeAttrPrefix(&buf, e.Record, e.Attr)
	buf.WriteString(ErrInvalidDefinition.Error())
	if e.Msg != "" {
		buf.WriteString(": ")
		buf.WriteString(e.Msg)
	}
	return buf.String()
}

// UnsupportedValueError is returned when a value is not part of
// the attribute's vocabulary.
type UnsupportedValueError struct {
	Attr  string
	Value string
}

func (e *UnsupportedValueError) Is(target error) bool {
	return target == ErrUnsupportedValue
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("unsupported value for %s: %q", e.Attr, e.Value)
}

// MaskError is returned for a raw mask that is negative or has bits set
// above the highest defined symbol.
type MaskError struct {
	Attr string
	Mask int64
	Max  int64
}

func (e *MaskError) Is(target error) bool {
	return target == ErrInvalidMask
}

func (e *MaskError) Error() string {
	return fmt.Sprintf("%s: %v %d, must be between 0 and %d", e.Attr, ErrInvalidMask, e.Mask, e.Max)
}

func writeAttrPrefix(buf *strings.Builder, record, attr string) {
	if record == "" && attr == "" {
		return
	}
	buf.WriteString(record)
	if attr != "" {
		if record != "" {
			buf.WriteByte('.')
		}
		buf.WriteString(attr)
	}
	buf.WriteString(": ")
}
