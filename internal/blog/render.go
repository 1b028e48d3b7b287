package blog

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Render formats a post as styled terminal markdown wrapped at width.
func Render(p Post, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}

	out, err := r.Render(Markdown(p))
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", p.Slug, err)
	}
	return out, nil
}

// Markdown is the post with its metadata as a heading and byline.
func Markdown(p Post) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)

	var byline []string
	if p.Date != "" {
		byline = append(byline, p.Date)
	}
	if p.Author != "" {
		byline = append(byline, p.Author)
	}
	if len(p.Tags) > 0 {
		byline = append(byline, strings.Join(p.Tags, ", "))
	}
	if len(byline) > 0 {
		fmt.Fprintf(&b, "*%s*\n\n", strings.Join(byline, " · "))
	}

	b.WriteString(p.Body)
	return b.String()
}
