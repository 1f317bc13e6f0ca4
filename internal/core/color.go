package core

// Color represents a foreground color for a screen cell.
// Values below ColorLevel0 map to ANSI 256-color codes; level colors map to
// the truecolor palette in LevelPalette.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightCyan
	ColorBrightWhite
	ColorGray
	ColorLevel0
)

// LevelPalette holds the hex colors of the levels, lowest first.
// Levels past the end share the last color.
var LevelPalette = [...]string{
	"#ee0000",
	"#eeaa00",
	"#efef00",
	"#00ee00",
	"#00eeee",
	"#ee00ee",
	"#ff7777",
	"#007700",
	"#0077ee",
	"#666666",
}

// LevelColor returns the cell color for a level.
func LevelColor(level int) Color {
	idx := Clamp(level, 0, len(LevelPalette)-1)
	return ColorLevel0 + Color(idx)
}

// IsLevel reports whether c is one of the level palette colors.
func (c Color) IsLevel() bool {
	return c >= ColorLevel0 && int(c-ColorLevel0) < len(LevelPalette)
}

// Hex returns the palette entry for a level color, or "" otherwise.
func (c Color) Hex() string {
	if !c.IsLevel() {
		return ""
	}
	return LevelPalette[c-ColorLevel0]
}
