package core

// Color is the foreground of a screen cell. Games pick colors by what they
// draw (ground, coins, the runner); the terminal front end turns them into
// ANSI 256-color codes with ANSI.
type Color uint8

const (
	ColorDefault      Color = iota
	ColorRed                // bricks
	ColorGreen              // hills and bushes
	ColorYellow             // coins
	ColorBlue
	ColorCyan               // HUD
	ColorWhite              // clouds
	ColorBrightRed          // the runner
	ColorBrightGreen        // pipes
	ColorBrightYellow       // question blocks
	ColorBrightWhite        // goal flag
	ColorBrown              // ground
	ColorGray               // unknown tiles and rules

	numColors
)

var ansiCodes = [numColors]string{
	ColorRed:          "1",
	ColorGreen:        "2",
	ColorYellow:       "3",
	ColorBlue:         "4",
	ColorCyan:         "6",
	ColorWhite:        "7",
	ColorBrightRed:    "9",
	ColorBrightGreen:  "10",
	ColorBrightYellow: "11",
	ColorBrightWhite:  "15",
	ColorBrown:        "130",
	ColorGray:         "245",
}

// ANSI returns the 256-color code for c, or "" for the terminal default.
// Out-of-range values fall back to the default.
func (c Color) ANSI() string {
	if c >= numColors {
		return ""
	}
	return ansiCodes[c]
}
