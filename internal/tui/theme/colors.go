package theme

import "charm.land/lipgloss/v2"

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

var (
	ColorTeal    = lipgloss.Color("#00F19F") // highlights, good state
	ColorStrain  = lipgloss.Color("#0093E7") // activity and training load
	ColorNeutral = lipgloss.Color("#67AEE6") // data without valuation
	ColorGood    = lipgloss.Color("#16EC06")
	ColorWarn    = lipgloss.Color("#FFDE00")
	ColorBad     = lipgloss.Color("#FF0026")
	ColorSleep   = lipgloss.Color("#7BA1BB") // sleep related data
	ColorExcess  = lipgloss.Color("#FF7A00") // intake beyond target
)

var (
	ColorBgDark  = lipgloss.Color("#101518") // darker end of gradient
	ColorBgLight = lipgloss.Color("#283339") // lighter end of gradient
)
