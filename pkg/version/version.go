// Package version provides the tool version and firmware version parsing.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Tool is the version of rcigen recorded in generated artifacts.
const Tool = "1.0.0"

// Firmware is a 32-bit firmware version in the "a.b.c.d" form, one byte per
// component, most significant first.
type Firmware uint32

// ParseFirmware parses "a.b.c.d" (each component 0-255), a 0x-prefixed hex
// value or a decimal value.
func ParseFirmware(s string) (Firmware, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid firmware version: empty")
	}

	if !strings.Contains(s, ".") {
		v, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid firmware version %q: %w", s, err)
		}
		return Firmware(v), nil
	}

	parts := strings.Split(s, ".")
	if len(parts) > 4 {
		return 0, fmt.Errorf("invalid firmware version %q: expected at most 4 components", s)
	}

	var v uint32
	for i := 0; i < 4; i++ {
		var c uint64
		if i < len(parts) {
			var err error
			c, err = strconv.ParseUint(parts[i], 10, 8)
			if err != nil || parts[i] == "" {
				return 0, fmt.Errorf("invalid firmware version %q: bad component %d", s, i+1)
			}
		}
		v = v<<8 | uint32(c)
	}
	return Firmware(v), nil
}

// String returns the version as "a.b.c.d".
func (f Firmware) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(f>>24), byte(f>>16), byte(f>>8), byte(f))
}

// Hex returns the version as a C hex literal.
func (f Firmware) Hex() string {
	return fmt.Sprintf("0x%X", uint32(f))
}
