package trajectory

import "fmt"

// FormatError reports a log that does not have the expected shape: a row
// with the wrong number of fields, unreadable CSV, or a file that cannot be
// opened. Nothing from a log that produced a FormatError is kept.
type FormatError struct {
	Path   string // file path, empty when parsing a reader
	Line   int    // 1-based line number, 0 when not line specific
	Fields int    // observed field count for field-count errors
	Err    error  // underlying cause, nil for field-count errors
}

func (e *FormatError) Error() string {
	where := e.Path
	if where == "" {
		where = "trajectory log"
	}
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", where, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("wrong file format: %s: %v", where, e.Err)
	}
	return fmt.Sprintf("wrong file format: %s: got %d fields, want %d", where, e.Fields, FieldCount)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ParseError reports a field that could not be converted to a number. It
// means the input is corrupt, so the whole load fails.
type ParseError struct {
	Path  string
	Line  int
	Field int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "trajectory log"
	}
	return fmt.Sprintf("parse %s:%d field %d %q: %v", where, e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
