// Package engine advances a fixed-size Game of Life board one generation at a
// time using two equally shaped buffers. Cells beyond the board edge count as
// dead; nothing wraps around.
package engine

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol-rle/model"
	"github.com/sheikhrachel/go-gol-rle/rules"
)

// ShapeMismatchError reports two generation buffers of different shapes.
// It signals a programming error, never bad input.
type ShapeMismatchError struct {
	CurrentRows, CurrentColumns int
	NextRows, NextColumns       int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("engine: shape mismatch: current is %dx%d, next is %dx%d",
		e.CurrentRows, e.CurrentColumns, e.NextRows, e.NextColumns)
}

func checkShape(current, next *model.Grid) error {
	if current.SameShape(next) {
		return nil
	}
	return &ShapeMismatchError{
		CurrentRows:    current.Rows(),
		CurrentColumns: current.Columns(),
		NextRows:       next.Rows(),
		NextColumns:    next.Columns(),
	}
}

// advanceRows writes rows [startRow, endRow) of the next generation.
func advanceRows(current, next *model.Grid, startRow, endRow, startCol, endCol int) {
	for r := startRow; r < endRow; r++ {
		src, dst := current.Row(r), next.Row(r)
		for c := startCol; c < endCol; c++ {
			dst[c] = rules.ApplyConwayRules(current.CountNeighbors(r, c), src[c])
		}
	}
}

// Advance writes the generation following current into next. current is
// only read; every cell of next is overwritten.
func Advance(current, next *model.Grid) error {
	if err := checkShape(current, next); err != nil {
		return err
	}
	advanceRows(current, next, 0, current.Rows(), 0, current.Columns())
	next.Invalidate()
	return nil
}

// AdvanceParallel produces the same result as Advance, splitting the rows
// into one band per CPU.
func AdvanceParallel(current, next *model.Grid) error {
	if err := checkShape(current, next); err != nil {
		return err
	}

	var (
		eg            errgroup.Group
		rows          = current.Rows()
		numWorkers    = runtime.NumCPU()
		rowsPerWorker = (rows + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, rows)
		)
		if startRow >= rows {
			break
		}

		eg.Go(func() error {
			advanceRows(current, next, startRow, endRow, 0, current.Columns())
			return nil
		})
	}

	err := eg.Wait()
	next.Invalidate()
	return err
}

// AdvanceBounded produces the same result as Advance but only evaluates the
// bounding box of living cells plus a one cell margin. Everything outside
// that box is necessarily dead in the next generation.
func AdvanceBounded(current, next *model.Grid) error {
	if err := checkShape(current, next); err != nil {
		return err
	}

	next.Clear()
	minRow, maxRow, minCol, maxCol, ok := current.ActiveBounds()
	if !ok {
		return nil
	}

	advanceRows(current, next,
		max(0, minRow-1), min(current.Rows(), maxRow+2),
		max(0, minCol-1), min(current.Columns(), maxCol+2))
	next.Invalidate()
	return nil
}
