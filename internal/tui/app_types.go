package tui

type view int

const (
	viewPicker view = iota
	viewGame
)

// pickerTop is the first screen line of the picker list.
const pickerTop = 3

type resizeDoneMsg struct{ seq int }

// frameMsg applies the latest coalesced pointer move.
type frameMsg struct{ seq int }

// flashMsg advances the rejection shake of the flashed item.
type flashMsg struct {
	seq  int
	step int
}

type noticeDoneMsg struct{ seq int }

// shakeOffsets is the horizontal offset per flash step.
var shakeOffsets = []int{-1, 1, -1, 1, -1, 0}
