// Package diagnostics implements the parser's error taxonomy: a closed set
// of status codes, and a formatter that turns a status plus a byte offset
// into the source into a human-readable message with a line, a column, and
// a short excerpt of the offending input.
package diagnostics

import (
	"fmt"

	"github.com/pkg/errors"
)

// Status is the closed set of outcomes a parse can end in.
type Status int

const (
	OK Status = iota
	FileNotFound
	IOError
	OutOfMemory
	InternalError
	UnrecognizedTag
	BadPI
	BadComment
	BadCData
	BadDoctype
	BadPCData
	BadStartElement
	BadAttribute
	BadEndElement
	EndElementMismatch
)

// String returns the description sentence for a status, independent of any
// particular failure's line/column/context.
func (s Status) String() string {
	switch s {
	case OK:
		return "No error."
	case FileNotFound:
		return "File was not found."
	case IOError:
		return "Error reading from file/stream."
	case OutOfMemory:
		return "Could not allocate memory."
	case InternalError:
		return "Internal error occurred."
	case UnrecognizedTag:
		return "Could not determine tag type."
	case BadPI:
		return "Error parsing document declaration/processing instruction."
	case BadComment:
		return "Error parsing comment."
	case BadCData:
		return "Error parsing CDATA section."
	case BadDoctype:
		return "Error parsing document type declaration."
	case BadPCData:
		return "Error parsing PCDATA section."
	case BadStartElement:
		return "Error parsing start element tag."
	case BadAttribute:
		return "Error parsing element attribute."
	case BadEndElement:
		return "Error parsing end element tag."
	case EndElementMismatch:
		return "Start-end tags mismatch."
	default:
		return "Unknown error."
	}
}

// contextBytes is how many bytes of trailing source are quoted in a message.
const contextBytes = 20

// Error is a positioned parse failure: a status, the line/column it
// occurred at, and up to 20 bytes of source starting at the failure point.
type Error struct {
	Status  Status
	Line    int
	Column  int
	Context string
	Extra   string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s %s", e.Status.String(), e.cause.Error())
	}
	msg := fmt.Sprintf("%s Line: %d, column: %d: '%s...'.", e.Status.String(), e.Line, e.Column, e.Context)
	if e.Extra != "" {
		msg += " " + e.Extra
	}
	return msg
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// New builds a positioned error from a byte offset into input.
func New(status Status, input []byte, pos int, extra string) *Error {
	line, col := locate(input, pos)
	return &Error{
		Status:  status,
		Line:    line,
		Column:  col,
		Context: context(input, pos),
		Extra:   extra,
	}
}

// Wrap builds an unpositioned error (I/O, allocation) around a cause,
// preserving a stack trace via pkg/errors.
func Wrap(status Status, cause error) *Error {
	return &Error{Status: status, cause: errors.WithStack(cause)}
}

// locate counts newlines strictly before pos to produce a 0-based line
// number and a column measured from the start of input or from the most
// recent newline before pos, whichever is closer.
func locate(input []byte, pos int) (line, col int) {
	if pos > len(input) {
		pos = len(input)
	}
	lastNewline := 0
	for i := 0; i < pos; i++ {
		if input[i] == '\n' {
			line++
			lastNewline = i
		}
	}
	return line, pos - lastNewline
}

// context returns up to contextBytes of input starting at pos.
func context(input []byte, pos int) string {
	if pos < 0 {
		pos = 0
	}
	if pos > len(input) {
		pos = len(input)
	}
	end := pos + contextBytes
	if end > len(input) {
		end = len(input)
	}
	return string(input[pos:end])
}
