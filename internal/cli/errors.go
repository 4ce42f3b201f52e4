package cli

import "fmt"

type flagRangeError struct {
	flag string
	got  int
	lo   int
	hi   int
}

func (e flagRangeError) Error() string {
	return fmt.Sprintf("invalid --%s %d (expected %d..%d)", e.flag, e.got, e.lo, e.hi)
}

func errFlagRange(flag string, got, lo, hi int) error {
	return flagRangeError{flag: flag, got: got, lo: lo, hi: hi}
}
