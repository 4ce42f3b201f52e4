package tui

import (
	"strings"
	"sync"
)

// Terminal fonts vary; the board can draw its affordances with Unicode or
// plain ASCII glyphs.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference takes the configured name (MATCHGAMES_GLYPHS or
// --glyphs). Unknown values are ignored.
func applyGlyphPreference(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphCheck() string {
	if glyphs() == glyphSetASCII {
		return "ok"
	}
	return "✓"
}

func glyphCross() string {
	if glyphs() == glyphSetASCII {
		return "x"
	}
	return "✗"
}

func glyphSlot() string {
	if glyphs() == glyphSetASCII {
		return "_"
	}
	return "┈"
}

func glyphSep() string {
	if glyphs() == glyphSetASCII {
		return "|"
	}
	return "│"
}
