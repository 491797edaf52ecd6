// Package rle decodes Game of Life patterns in the run-length encoded text
// format:
//
//	#C optional comment lines
//	x = 3, y = 3, rule = B3/S23
//	bo$2bo$3o!
//
// 'b' is a run of dead cells, 'o' a run of alive cells, '$' ends one or more
// rows and '!' ends the pattern. A numeral before a tag repeats it.
package rle

import (
	"os"
	"strconv"
	"unicode"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-rle/model"
)

// MaxCells caps the declared rows x columns of a pattern.
const MaxCells = 1 << 26

// Pattern is a decoded pattern: its declared dimensions and initial grid.
type Pattern struct {
	Rows    int
	Columns int
	Grid    *model.Grid
}

type decoder struct {
	widthDigits  []byte
	heightDigits []byte
	runCount     []byte

	rows, columns int
	row, col      int
	grid          *model.Grid
	done          bool
}

// Decode parses a complete pattern. On error no grid is returned.
func Decode(blob string) (*Pattern, error) {
	var (
		d     decoder
		state = Begin
		line  = 1
		col   = 0
	)
	for _, c := range blob {
		col++
		if unicode.IsSpace(c) && c != '\n' {
			continue
		}
		next, err := transitions[state](&d, c)
		if err != nil {
			return nil, &DecodeError{State: state, Char: c, Line: line, Column: col, Err: err}
		}
		state = next
		if d.done {
			break
		}
		if c == '\n' {
			line++
			col = 0
		}
	}
	if state == Height && d.grid == nil && len(d.heightDigits) > 0 {
		// A header line without a trailing newline still declares the grid.
		if err := d.closeHeader(); err != nil {
			return nil, &DecodeError{State: state, Err: err}
		}
	}
	if d.grid == nil {
		return nil, &DecodeError{State: state, Err: ErrMissingHeader}
	}
	return &Pattern{Rows: d.rows, Columns: d.columns, Grid: d.grid}, nil
}

// DecodeBytes is Decode for a byte slice.
func DecodeBytes(blob []byte) (*Pattern, error) {
	return Decode(string(blob))
}

// DecodeFile reads and decodes the pattern stored at path.
func DecodeFile(path string) (*Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[DecodeFile] failed to read file: %+v", path)
	}
	p, err := DecodeBytes(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "[DecodeFile] failed to decode file: %+v", path)
	}
	return p, nil
}

func isNumeral(c rune) bool { return c >= '0' && c <= '9' }

func isBodyChar(c rune) bool {
	return isNumeral(c) || c == 'b' || c == 'o' || c == '$' || c == '!'
}

func (d *decoder) begin(c rune) (ParseState, error) {
	switch {
	case c == '#':
		return Comment, nil
	case c == 'x' && d.grid == nil:
		return Width, nil
	case c == 'x':
		return Begin, ErrDuplicateHeader
	case d.grid != nil && c == '\n':
		return Begin, nil
	case d.grid != nil && isBodyChar(c):
		// The header line had no rule field; the body starts here.
		return d.runTag(c)
	}
	return Begin, ErrUnknownHeader
}

func (d *decoder) comment(c rune) (ParseState, error) {
	if c == '\n' {
		return Begin, nil
	}
	return Comment, nil
}

func (d *decoder) width(c rune) (ParseState, error) {
	switch {
	case isNumeral(c):
		d.widthDigits = append(d.widthDigits, byte(c))
		return Width, nil
	case c == '=':
		return Width, nil
	case c == ',':
		n, err := parseDimension(d.widthDigits)
		if err != nil {
			return Width, err
		}
		d.columns = n
		return Height, nil
	}
	return Width, errors.WithMessage(ErrUnexpectedChar, "width must be a number")
}

func (d *decoder) height(c rune) (ParseState, error) {
	switch {
	case isNumeral(c):
		d.heightDigits = append(d.heightDigits, byte(c))
		return Height, nil
	case c == '=' || c == 'y':
		return Height, nil
	case c == ',':
		return Rule, d.closeHeader()
	case c == '\n':
		return Begin, d.closeHeader()
	}
	return Height, errors.WithMessage(ErrUnexpectedChar, "height must be a number")
}

func (d *decoder) closeHeader() error {
	n, err := parseDimension(d.heightDigits)
	if err != nil {
		return err
	}
	if d.columns > MaxCells/n {
		return errors.WithMessagef(ErrInvalidDimension, "%dx%d exceeds %d cells", n, d.columns, MaxCells)
	}
	d.rows = n
	d.grid = model.NewGrid(d.rows, d.columns)
	return nil
}

func (d *decoder) rule(c rune) (ParseState, error) {
	if c == '\n' {
		return RunTag, nil
	}
	return Rule, nil
}

func (d *decoder) runTag(c rune) (ParseState, error) {
	if isNumeral(c) {
		d.runCount = append(d.runCount, byte(c))
		return RunTag, nil
	}

	switch c {
	case 'b', 'o', '$':
		n, err := d.takeRunCount()
		if err != nil {
			return RunTag, err
		}
		switch c {
		case 'b':
			return RunTag, d.writeRun(n, model.Dead)
		case 'o':
			return RunTag, d.writeRun(n, model.Alive)
		default:
			d.endRows(n)
			return RunTag, nil
		}
	case '!':
		d.runCount = d.runCount[:0]
		d.done = true
		return RunTag, nil
	case '\n':
		return RunTag, nil
	}
	return RunTag, errors.WithMessage(ErrUnexpectedChar, "not valid in run body")
}

// takeRunCount consumes the accumulated numeral, 1 when none was given.
func (d *decoder) takeRunCount() (int, error) {
	if len(d.runCount) == 0 {
		return 1, nil
	}
	s := string(d.runCount)
	d.runCount = d.runCount[:0]
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.WithMessagef(ErrInvalidNumber, "run count %q: %v", s, err)
	}
	return n, nil
}

// writeRun writes n cells at the cursor. The part of the run that would pass
// the last column is dropped.
func (d *decoder) writeRun(n int, cell model.Cell) error {
	if n == 0 {
		return nil
	}
	if d.row >= d.rows {
		return errors.WithMessagef(ErrOutOfBounds, "row %d of %d", d.row+1, d.rows)
	}
	n = min(n, d.columns-d.col)
	row := d.grid.Row(d.row)
	for i := range n {
		row[d.col+i] = cell
	}
	d.col += n
	return nil
}

// endRows clears the rest of the current row, then moves down n rows.
func (d *decoder) endRows(n int) {
	if d.row < d.rows {
		clear(d.grid.Row(d.row)[d.col:])
	}
	if n >= d.rows-d.row {
		d.row = d.rows
	} else {
		d.row += n
	}
	d.col = 0
}

func parseDimension(digits []byte) (int, error) {
	if len(digits) == 0 {
		return 0, errors.WithMessage(ErrInvalidNumber, "empty dimension")
	}
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, errors.WithMessagef(ErrInvalidNumber, "dimension %q: %v", digits, err)
	}
	if n <= 0 || n > MaxCells {
		return 0, errors.WithMessagef(ErrInvalidDimension, "dimension %d", n)
	}
	return n, nil
}
