package terminal

import "strings"

// Bar characters.
const (
	BarFilled = "█"
	BarEmpty  = "░"
)

// DrawBar draws a bar of the given width filled to value, clamped to [0, 1].
func DrawBar(value float64, width int) string {
	if width <= 0 {
		return ""
	}

	value = min(max(value, 0), 1)
	filled := int(value * float64(width))

	return strings.Repeat(BarFilled, filled) + strings.Repeat(BarEmpty, width-filled)
}
