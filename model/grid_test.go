package model

import (
	"bytes"
	"strings"
	"testing"
)

func TestGridBounds(t *testing.T) {
	g := NewGrid(2, 3)
	g.Set(-1, 0, Alive)
	g.Set(0, 3, Alive)
	g.Set(2, 0, Alive)
	if n := g.CountLivingCells(); n != 0 {
		t.Fatalf("out of range Set changed the grid: %d living cells", n)
	}
	if g.Get(-1, -1) != Dead || g.Get(5, 5) != Dead {
		t.Fatal("out of range Get should report Dead")
	}
	g.Set(1, 2, Alive)
	if g.Get(1, 2) != Alive {
		t.Fatal("expected (1,2) to be alive")
	}
}

func TestCountNeighbors(t *testing.T) {
	g := FromRows(
		"ooo",
		"ooo",
		"ooo",
	)
	tests := []struct {
		row, col, want int
	}{
		{0, 0, 3},
		{0, 1, 5},
		{1, 1, 8},
		{2, 2, 3},
		{1, 2, 5},
	}
	for _, tc := range tests {
		if got := g.CountNeighbors(tc.row, tc.col); got != tc.want {
			t.Fatalf("cell (%d,%d) has %d neighbors, expected %d", tc.row, tc.col, got, tc.want)
		}
	}
}

func TestActiveBounds(t *testing.T) {
	g := NewGrid(6, 6)
	if g.GetBoundingBoxSize() != 0 {
		t.Fatal("empty grid should have no bounding box")
	}
	g.Set(1, 2, Alive)
	g.Set(3, 4, Alive)
	minRow, maxRow, minCol, maxCol, ok := g.ActiveBounds()
	if !ok || minRow != 1 || maxRow != 3 || minCol != 2 || maxCol != 4 {
		t.Fatalf("bounds = (%d..%d, %d..%d, %v)", minRow, maxRow, minCol, maxCol, ok)
	}
	if size := g.GetBoundingBoxSize(); size != 9 {
		t.Fatalf("bounding box size = %d, expected 9", size)
	}
}

func TestCloneAndEqual(t *testing.T) {
	g := FromRows(".o", "o.")
	c := g.Clone()
	if !c.Equal(g) {
		t.Fatal("clone should equal original")
	}
	c.Set(0, 0, Alive)
	if c.Equal(g) || g.Get(0, 0) != Dead {
		t.Fatal("clone must not share cells with the original")
	}
	if g.Equal(NewGrid(2, 3)) {
		t.Fatal("grids of different shape must not be equal")
	}
}

func TestHistoryStagnation(t *testing.T) {
	var h History
	g := FromRows("oo", "oo")
	before := g.Clone()
	for i := 0; i < 3; i++ {
		if h.IsStagnant(g) {
			t.Fatalf("stagnant with only %d recorded states", i)
		}
		h.Update(g)
	}
	if !h.IsStagnant(g) {
		t.Fatal("unchanged grid should be stagnant")
	}
	if !g.Equal(before) {
		t.Fatal("history must not modify the grid")
	}
	g.Set(0, 0, Dead)
	if h.IsStagnant(g) {
		t.Fatal("changed grid should not be stagnant")
	}
	h.Reset()
	if h.IsStagnant(FromRows("oo", "oo")) {
		t.Fatal("reset history should not report stagnation")
	}
}

func TestHistoryDetectsOscillator(t *testing.T) {
	var h History
	vertical := FromRows(".o.", ".o.", ".o.")
	horizontal := FromRows("...", "ooo", "...")
	h.Update(vertical)
	h.Update(horizontal)
	h.Update(vertical)
	if !h.IsStagnant(horizontal) {
		t.Fatal("period 2 oscillator should be stagnant")
	}
}

func TestGridPool(t *testing.T) {
	pool := NewGridPool()
	src := FromRows("o..", ".o.")
	cp := pool.CopyOf(src)
	if !cp.Equal(src) {
		t.Fatalf("pooled copy differs:\n%s", cp)
	}
	GridToPool(cp, pool)

	fresh := pool.Get(4, 1)
	if fresh.Rows() != 4 || fresh.Columns() != 1 || fresh.CountLivingCells() != 0 {
		t.Fatalf("pool returned %dx%d grid with %d living cells", fresh.Rows(), fresh.Columns(), fresh.CountLivingCells())
	}
	GridToPool(fresh, nil)
}

func TestTerminalRendererDisplay(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalRenderer{Out: &buf}
	if err := r.Display(FromRows("o.", ".o")); err != nil {
		t.Fatal(err)
	}
	want := "|" + gridPosBlock + gridPosEmpty + "|\n" +
		"|" + gridPosEmpty + gridPosBlock + "|\n"
	if buf.String() != want {
		t.Fatalf("Display wrote %q, expected %q", buf.String(), want)
	}

	buf.Reset()
	r.Clear()
	r.Status("Gen: %d", 4)
	if !strings.HasPrefix(buf.String(), ansiClearHome) || !strings.HasSuffix(buf.String(), "Gen: 4\n") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestString(t *testing.T) {
	if got := FromRows("o.", ".*").String(); got != "o.\n.o\n" {
		t.Fatalf("String() = %q", got)
	}
}
