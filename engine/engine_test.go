package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/sheikhrachel/go-gol-rle/model"
)

var modes = []Mode{Serial, Parallel, Bounded}

func expectGrid(t *testing.T, got *model.Grid, want ...string) {
	t.Helper()
	expected := model.FromRows(want...)
	if got.Equal(expected) {
		return
	}
	for r := 0; r < expected.Rows(); r++ {
		for c := 0; c < expected.Columns(); c++ {
			if got.Get(r, c) != expected.Get(r, c) {
				t.Fatalf("cell (%d,%d) = %d, expected %d\n got:\n%s want:\n%s",
					r, c, got.Get(r, c), expected.Get(r, c), got, expected)
			}
		}
	}
	t.Fatalf("grid shape %dx%d, expected %dx%d", got.Rows(), got.Columns(), expected.Rows(), expected.Columns())
}

func TestAllDeadStaysDead(t *testing.T) {
	for _, mode := range modes {
		for _, size := range [][2]int{{1, 1}, {3, 7}, {16, 16}} {
			e := New(model.NewGrid(size[0], size[1]), WithMode(mode))
			e.Step()
			if n := e.Current().CountLivingCells(); n != 0 {
				t.Fatalf("%s %dx%d: %d living cells after one step", mode, size[0], size[1], n)
			}
		}
	}
}

func TestUnderpopulation(t *testing.T) {
	for _, mode := range modes {
		e := New(model.FromRows(
			"...",
			".o.",
			"...",
		), WithMode(mode))
		e.Step()
		expectGrid(t, e.Current(),
			"...",
			"...",
			"...",
		)
	}
}

func TestOverpopulation(t *testing.T) {
	for _, mode := range modes {
		e := New(model.FromRows(
			"ooo",
			"ooo",
			"ooo",
		), WithMode(mode))
		e.Step()
		// Corners have 3 neighbours, edges 5, the centre 8.
		expectGrid(t, e.Current(),
			"o.o",
			"...",
			"o.o",
		)
	}
}

func TestBlockStillLife(t *testing.T) {
	for _, mode := range modes {
		block := model.FromRows(
			"....",
			".oo.",
			".oo.",
			"....",
		)
		e := New(block, WithMode(mode))
		for i := 0; i < 10; i++ {
			e.Step()
			if !e.Current().Equal(block) {
				t.Fatalf("%s: block changed after %d steps:\n%s", mode, i+1, e.Current())
			}
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	vertical := []string{
		".....",
		"..o..",
		"..o..",
		"..o..",
		".....",
	}
	horizontal := []string{
		".....",
		".....",
		".ooo.",
		".....",
		".....",
	}
	for _, mode := range modes {
		e := New(model.FromRows(vertical...), WithMode(mode))
		for i := 1; i <= 6; i++ {
			e.Step()
			if i%2 == 1 {
				expectGrid(t, e.Current(), horizontal...)
			} else {
				expectGrid(t, e.Current(), vertical...)
			}
		}
		if e.Generation() != 6 {
			t.Fatalf("generation = %d, expected 6", e.Generation())
		}
	}
}

func TestEdgeIsNotToroidal(t *testing.T) {
	// On a torus the blinker in the top row would survive; here it is clipped.
	e := New(model.FromRows(
		"ooo",
		"...",
		"...",
	))
	e.Step()
	expectGrid(t, e.Current(),
		".o.",
		".o.",
		"...",
	)
	e.Step()
	expectGrid(t, e.Current(),
		"...",
		"...",
		"...",
	)
}

func TestAdvanceDoesNotMutateCurrent(t *testing.T) {
	current := model.FromRows(
		".o.",
		".o.",
		".o.",
	)
	before := current.Clone()
	next := model.NewGrid(3, 3)
	if err := Advance(current, next); err != nil {
		t.Fatal(err)
	}
	if !current.Equal(before) {
		t.Fatalf("current was mutated:\n%s", current)
	}
	expectGrid(t, next,
		"...",
		"ooo",
		"...",
	)
}

func TestShapeMismatch(t *testing.T) {
	advances := map[string]func(current, next *model.Grid) error{
		"serial":   Advance,
		"parallel": AdvanceParallel,
		"bounded":  AdvanceBounded,
	}
	for name, advance := range advances {
		err := advance(model.NewGrid(3, 4), model.NewGrid(4, 3))
		var sme *ShapeMismatchError
		if !errors.As(err, &sme) {
			t.Fatalf("%s: expected *ShapeMismatchError, got %v", name, err)
		}
		if sme.CurrentRows != 3 || sme.NextColumns != 3 {
			t.Fatalf("%s: unexpected error fields %+v", name, sme)
		}
	}
}

func TestModesAgree(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	initial := model.NewGrid(37, 53)
	for r := 0; r < initial.Rows(); r++ {
		for c := 0; c < initial.Columns(); c++ {
			if rng.IntN(3) == 0 {
				initial.Set(r, c, model.Alive)
			}
		}
	}

	serial := New(initial)
	parallel := New(initial, WithParallel())
	bounded := New(initial, WithBounded())
	for i := 0; i < 40; i++ {
		serial.Step()
		parallel.Step()
		bounded.Step()
		if !serial.Current().Equal(parallel.Current()) {
			t.Fatalf("parallel diverged from serial at generation %d", i+1)
		}
		if !serial.Current().Equal(bounded.Current()) {
			t.Fatalf("bounded diverged from serial at generation %d", i+1)
		}
	}
}

func TestNewCopiesInitial(t *testing.T) {
	initial := model.FromRows("ooo")
	e := New(initial)
	e.Step()
	expectGrid(t, initial, "ooo")
	expectGrid(t, e.Current(), ".o.")
}

func TestSnapshotIsIndependent(t *testing.T) {
	for _, pool := range []*model.GridPool{nil, model.NewGridPool()} {
		e := New(model.FromRows(
			"...",
			"ooo",
			"...",
		))
		snap := e.Snapshot(pool)
		e.Step()
		expectGrid(t, snap,
			"...",
			"ooo",
			"...",
		)
		model.GridToPool(snap, pool)
	}
}

func TestModeString(t *testing.T) {
	for mode, want := range map[Mode]string{Serial: "serial", Parallel: "parallel", Bounded: "bounded", Mode(9): "Mode(9)"} {
		if got := fmt.Sprint(mode); got != want {
			t.Fatalf("Mode(%d).String() = %q, expected %q", int(mode), got, want)
		}
	}
}

func TestSwappedBuffersWithBoundedAdvance(t *testing.T) {
	blinker := model.FromRows(
		".....",
		".....",
		".ooo.",
		".....",
		".....",
	)
	// next starts out holding cells whose bounds have already been cached.
	next := model.FromRows(
		"o....",
		".....",
		".....",
		".....",
		".....",
	)
	next.ActiveBounds()

	advances := []func(current, next *model.Grid) error{Advance, AdvanceParallel, AdvanceBounded}
	for _, first := range advances {
		current, buf := blinker.Clone(), next.Clone()
		buf.ActiveBounds()
		if err := first(current, buf); err != nil {
			t.Fatal(err)
		}
		current, buf = buf, current

		if err := AdvanceBounded(current, buf); err != nil {
			t.Fatal(err)
		}
		expectGrid(t, buf,
			".....",
			".....",
			".ooo.",
			".....",
			".....",
		)

		reference := model.NewGrid(5, 5)
		if err := Advance(current, reference); err != nil {
			t.Fatal(err)
		}
		expectGrid(t, current,
			".....",
			"..o..",
			"..o..",
			"..o..",
			".....",
		)
		if !reference.Equal(buf) {
			t.Fatalf("bounded advance after a swap differs from serial:\n%s vs\n%s", buf, reference)
		}
	}
}
