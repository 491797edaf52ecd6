package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "
	gridBorder   = '|'

	unixClearCmd  = "clear"
	ansiClearHome = "\x1b[2J\x1b[H"
)

// TerminalRenderer draws grids as text. Out defaults to os.Stdout.
type TerminalRenderer struct {
	Out io.Writer
}

func (r *TerminalRenderer) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// Display renders the grid, one bordered line per row
func (r *TerminalRenderer) Display(g *Grid) error {
	w := bufio.NewWriter(r.out())
	for row := range g.Rows() {
		w.WriteRune(gridBorder)
		for _, cell := range g.Row(row) {
			if cell == Alive {
				w.WriteString(gridPosBlock)
			} else {
				w.WriteString(gridPosEmpty)
			}
		}
		w.WriteRune(gridBorder)
		w.WriteByte('\n')
	}
	return w.Flush()
}

// Status prints a single status line above the grid
func (r *TerminalRenderer) Status(format string, args ...any) {
	fmt.Fprintf(r.out(), format+"\n", args...)
}

// Clear clears the terminal screen. When writing somewhere other than
// stdout, or when the clear command is unavailable, it emits ANSI escapes.
func (r *TerminalRenderer) Clear() {
	if r.Out != nil && r.Out != os.Stdout || runtime.GOOS == "windows" {
		fmt.Fprint(r.out(), ansiClearHome)
		return
	}
	cmd := exec.Command(unixClearCmd)
	cmd.Stdout = os.Stdout
	if err := cmd.Run(); err != nil {
		fmt.Fprint(os.Stdout, ansiClearHome)
	}
}
