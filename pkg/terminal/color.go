package terminal

import "github.com/fatih/color"

// Color names a terminal color role.
type Color int

// Color roles.
const (
	ColorNone Color = iota
	ColorGreen
	ColorYellow
	ColorRed
	ColorBlue
	ColorGray
	ColorBold
)

var attributes = map[Color]color.Attribute{
	ColorGreen:  color.FgGreen,
	ColorYellow: color.FgYellow,
	ColorRed:    color.FgRed,
	ColorBlue:   color.FgBlue,
	ColorGray:   color.FgHiBlack,
	ColorBold:   color.Bold,
}

// Colorize applies color to text. With NoColor set the text is returned
// unchanged.
func (c Config) Colorize(text string, role Color) string {
	attr, ok := attributes[role]
	if c.NoColor || !ok {
		return text
	}

	painter := color.New(attr)
	painter.EnableColor()

	return painter.Sprint(text)
}
