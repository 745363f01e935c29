// Package color converts between normalized RGBA values and the string forms
// used in snapshots and exported documents.
package color

import (
	"fmt"
	"math"
	"strings"

	"bennypowers.dev/dtexport/internal/variables"
	"github.com/mazznoer/csscolorparser"
)

// Fallback is written in place of any color that could not be resolved
const Fallback = "#FF00FF"

// ToHex encodes c as upper-case #RRGGBB, or #RRGGBBAA when an alpha below 1 is set
func ToHex(c variables.RGBA) string {
	hex := "#" + channelToHex(c.R) + channelToHex(c.G) + channelToHex(c.B)
	if c.A != nil && *c.A < 1 {
		hex += channelToHex(*c.A)
	}
	return hex
}

// channelToHex scales a 0..1 channel to a two-digit hex byte
func channelToHex(v float64) string {
	v = math.Max(0, math.Min(1, v))
	return fmt.Sprintf("%02X", int(math.Round(v*255)))
}

// Parse reads any CSS color string (hex, rgb(), hsl(), named colors, ...) into RGBA.
// Alpha is left unset for opaque colors.
func Parse(value string) (variables.RGBA, error) {
	parsed, err := csscolorparser.Parse(strings.TrimSpace(value))
	if err != nil {
		return variables.RGBA{}, fmt.Errorf("unsupported color format: %s", value)
	}

	c := variables.RGBA{R: parsed.R, G: parsed.G, B: parsed.B}
	if parsed.A < 1 {
		a := parsed.A
		c.A = &a
	}
	return c, nil
}
