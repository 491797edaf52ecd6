package model

// historySize is how many recent states are kept to detect cycles
const historySize = 5

// History remembers the hashes of recently displayed grids so still lifes
// and short oscillators can be recognised. It never touches the grids.
type History struct {
	hashes []string
}

// IsStagnant reports whether g repeats one of the last three recorded
// states, i.e. a still life or an oscillator of period <= 3. g itself must
// not have been recorded yet.
func (h *History) IsStagnant(g *Grid) bool {
	if len(h.hashes) < 3 {
		return false
	}

	currentHash := g.GetGridHash()
	for i := 1; i <= 3; i++ {
		if h.hashes[len(h.hashes)-i] == currentHash {
			return true
		}
	}
	return false
}

// Update adds the state of g to the history and maintains its size
func (h *History) Update(g *Grid) {
	h.hashes = append(h.hashes, g.GetGridHash())
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// Reset forgets all recorded states
func (h *History) Reset() {
	h.hashes = nil
}
