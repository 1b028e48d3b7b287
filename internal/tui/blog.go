package tui

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/healthmesh/internal/blog"
	"github.com/garrettladley/healthmesh/internal/tui/theme"
)

const blogPaneWidth = 36

type BlogState struct {
	Visible bool
	Posts   []blog.Post
}

var (
	postTitleStyle = palette.TextAccent()
	postDateStyle  = palette.Dim()
)

func (m *Model) BlogView() string {
	lines := []string{headingStyle.Render("BLOG")}

	if len(m.state.blog.Posts) == 0 {
		lines = append(lines, dimStyle.Render("No posts yet"))
	}
	for _, p := range m.state.blog.Posts {
		lines = append(lines, "", postTitleStyle.Render(p.Title))
		if !p.PublishedAt.IsZero() {
			lines = append(lines, postDateStyle.Render(p.PublishedAt.Format("Jan 2, 2006")))
		}
		if p.Description != "" {
			lines = append(lines, textStyle.Render(p.Description))
		}
	}

	return lipgloss.NewStyle().
		Width(blogPaneWidth).
		Border(lipgloss.RoundedBorder(), false, false, false, true).
		BorderForeground(theme.ColorBgLight).
		PaddingLeft(2).
		Render(strings.Join(lines, "\n"))
}
