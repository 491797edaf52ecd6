package rle

import "fmt"

// ParseState is the decoder's position in the pattern grammar. Exactly one
// state is active at a time and it changes one input character at a time.
type ParseState int

const (
	// Begin expects a comment line or the "x = ..." header.
	Begin ParseState = iota
	// Comment skips a '#' line.
	Comment
	// Width accumulates the value of "x = <n>".
	Width
	// Height accumulates the value of "y = <n>".
	Height
	// Rule skips the optional rule field up to the end of the header line.
	Rule
	// RunTag decodes the run body.
	RunTag
)

var stateNames = [...]string{
	Begin:   "Begin",
	Comment: "Comment",
	Width:   "Width",
	Height:  "Height",
	Rule:    "Rule",
	RunTag:  "RunTag",
}

func (s ParseState) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("ParseState(%d)", int(s))
}

// transition handles one character in a given state and returns the next state.
type transition func(d *decoder, c rune) (ParseState, error)

var transitions = [...]transition{
	Begin:   (*decoder).begin,
	Comment: (*decoder).comment,
	Width:   (*decoder).width,
	Height:  (*decoder).height,
	Rule:    (*decoder).rule,
	RunTag:  (*decoder).runTag,
}
