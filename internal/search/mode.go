// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"strings"
)

// Mode selects where a fetch gets its payload from.
type Mode int

const (
	// ModeLive calls the upstream search API.
	ModeLive Mode = iota
	// ModeFixture reads the local fixture document.
	ModeFixture
)

func (m Mode) String() string {
	switch m {
	case ModeLive:
		return "live"
	case ModeFixture:
		return "fixture"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ModeFor maps the debug/fixture toggle onto a Mode.
func ModeFor(fixture bool) Mode {
	if fixture {
		return ModeFixture
	}
	return ModeLive
}

// ParseMode parses "live" or "fixture" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "live":
		return ModeLive, nil
	case "fixture":
		return ModeFixture, nil
	default:
		return ModeLive, fmt.Errorf("unknown search mode %q (want live or fixture)", s)
	}
}
