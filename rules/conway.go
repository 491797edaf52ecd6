package rules

import "github.com/sheikhrachel/go-gol-rle/model"

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

An alive cell survives with 2 or 3 neighbors and dies otherwise.
A dead cell is born with exactly 3 neighbors and stays dead otherwise.
*/
func ApplyConwayRules(neighbors int, cell model.Cell) model.Cell {
	if cell == model.Alive {
		switch {
		case neighbors < 2:
			return model.Dead
		case neighbors < 4:
			return model.Alive
		default:
			return model.Dead
		}
	}
	if neighbors == 3 {
		return model.Alive
	}
	return model.Dead
}
