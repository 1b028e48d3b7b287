package footer

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/healthmesh/internal/tui/theme"
)

type Footer struct {
	rightContent string
	width        int
	padding      int
}

func New(rightContent string, width int) Footer {
	return Footer{
		rightContent: rightContent,
		width:        width,
		padding:      2,
	}
}

// Hint is a single key binding shown in the footer.
type Hint struct {
	Key    string
	Action string
}

var (
	hintKeyStyle    = lipgloss.NewStyle().Foreground(theme.ColorTeal).Bold(true)
	hintActionStyle = lipgloss.NewStyle().Foreground(theme.ColorDim)
)

// Hints renders bindings as "r sync · q quit".
func Hints(hints ...Hint) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = hintKeyStyle.Render(h.Key) + " " + hintActionStyle.Render(h.Action)
	}
	return strings.Join(parts, hintActionStyle.Render(" · "))
}

func (f Footer) Render() string {
	leftContent := f.leftContent()

	leftWidth := lipgloss.Width(leftContent)
	rightWidth := lipgloss.Width(f.rightContent)
	spacerWidth := max(f.width-leftWidth-rightWidth-(f.padding*2), 1)

	return lipgloss.NewStyle().
		PaddingLeft(f.padding).
		PaddingRight(f.padding).
		Render(leftContent + strings.Repeat(" ", spacerWidth) + f.rightContent)
}
