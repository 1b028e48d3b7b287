package blog

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var frontmatterRe = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n(.*)$`)

// Metadata is the frontmatter block of a post.
type Metadata struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Description string   `yaml:"description"`
	Author      string   `yaml:"author"`
	Tags        []string `yaml:"tags"`
}

// ParseFrontmatter splits src into metadata and body. Without a frontmatter block the whole
// source is the body. Blocks that are not valid YAML are read line by line as "key: value".
func ParseFrontmatter(src string) (Metadata, string) {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	m := frontmatterRe.FindStringSubmatch(src)
	if m == nil {
		return Metadata{}, src
	}

	var meta Metadata
	if err := yaml.Unmarshal([]byte(m[1]), &meta); err != nil {
		meta = parseLines(m[1])
	}
	return meta, m[2]
}

func parseLines(block string) Metadata {
	var meta Metadata
	for line := range strings.SplitSeq(block, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "title":
			meta.Title = value
		case "date":
			meta.Date = value
		case "description":
			meta.Description = value
		case "author":
			meta.Author = value
		case "tags":
			meta.Tags = splitTags(value)
		}
	}
	return meta
}

func splitTags(s string) []string {
	s = strings.Trim(s, "[]")
	var tags []string
	for t := range strings.SplitSeq(s, ",") {
		if t = strings.Trim(strings.TrimSpace(t), `"'`); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
