package rle

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownHeader is returned for a character that cannot start a header line.
	ErrUnknownHeader = errors.New("unrecognized header character")
	// ErrDuplicateHeader is returned when a second "x = ..." line follows the first.
	ErrDuplicateHeader = errors.New("duplicate header")
	// ErrUnexpectedChar is returned for a character that is not valid in the current field.
	ErrUnexpectedChar = errors.New("unexpected character")
	// ErrInvalidNumber is returned when an accumulated numeral does not parse.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrInvalidDimension is returned for a zero or oversized declared dimension.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrOutOfBounds is returned for a run that starts below the last declared row.
	ErrOutOfBounds = errors.New("run outside declared bounds")
	// ErrMissingHeader is returned when the input ends before the header is complete.
	ErrMissingHeader = errors.New("missing header")
)

// DecodeError describes why decoding stopped. Decoding never recovers, so
// the first DecodeError aborts the whole pattern.
type DecodeError struct {
	State  ParseState
	Char   rune // 0 when the input ended
	Line   int  // 1-based
	Column int  // 1-based, counted in characters
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Char == 0 {
		return fmt.Sprintf("rle: end of input in %s state: %v", e.State, e.Err)
	}
	return fmt.Sprintf("rle: line %d, column %d: %q in %s state: %v",
		e.Line, e.Column, e.Char, e.State, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
