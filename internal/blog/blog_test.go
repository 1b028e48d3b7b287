package blog

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseFrontmatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		wantMeta Metadata
		wantBody string
	}{
		{
			name:     "no frontmatter",
			src:      "# Hello\n\nworld",
			wantBody: "# Hello\n\nworld",
		},
		{
			name: "yaml",
			src:  "---\ntitle: First run\ndate: 2024-05-01\ntags: [running, zone2]\n---\nBody here\n",
			wantMeta: Metadata{
				Title: "First run",
				Date:  "2024-05-01",
				Tags:  []string{"running", "zone2"},
			},
			wantBody: "Body here\n",
		},
		{
			name: "invalid yaml falls back to lines",
			src:  "---\ntitle: Recovery: what HRV tells you\ndate: 2024-06-02\nauthor: Me\n---\ntext",
			wantMeta: Metadata{
				Title:  "Recovery: what HRV tells you",
				Date:   "2024-06-02",
				Author: "Me",
			},
			wantBody: "text",
		},
		{
			name:     "crlf",
			src:      "---\r\ntitle: Windows\r\n---\r\nbody",
			wantMeta: Metadata{Title: "Windows"},
			wantBody: "body",
		},
		{
			name:     "unterminated block",
			src:      "---\ntitle: nope\n",
			wantBody: "---\ntitle: nope\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			meta, body := ParseFrontmatter(tt.src)
			if diff := cmp.Diff(tt.wantMeta, meta); diff != "" {
				t.Errorf("metadata mismatch (-want +got):\n%s", diff)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"older.md":   {Data: []byte("---\ntitle: Older\ndate: 2024-01-10\n---\nold")},
		"newer.md":   {Data: []byte("---\ntitle: Newer\ndate: 2024-03-02\ndescription: fresh\n---\nnew")},
		"undated.md": {Data: []byte("no metadata at all")},
		"same-b.md":  {Data: []byte("---\ntitle: B\ndate: January 10, 2024\n---\nb")},
		"notes.txt":  {Data: []byte("ignored")},
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	posts, err := Load(testFS())
	require.NoError(t, err)

	slugs := make([]string, len(posts))
	for i, p := range posts {
		slugs[i] = p.Slug
	}
	require.Equal(t, []string{"newer", "older", "same-b", "undated"}, slugs)

	require.Equal(t, "fresh", posts[0].Description)
	require.Equal(t, untitled, posts[3].Title)
	require.Equal(t, "no metadata at all", posts[3].Body)
	require.True(t, posts[3].PublishedAt.IsZero())
}

func TestIndex(t *testing.T) {
	t.Parallel()

	fsys := testFS()
	idx, err := NewIndex(fsys)
	require.NoError(t, err)
	require.Equal(t, 4, idx.Len())

	require.Len(t, idx.Recent(2), 2)
	require.Len(t, idx.Recent(10), 4)
	require.Empty(t, idx.Recent(-1))

	p, ok := idx.Find("older")
	require.True(t, ok)
	require.Equal(t, "Older", p.Title)

	_, ok = idx.Find("missing")
	require.False(t, ok)

	fsys["latest.md"] = &fstest.MapFile{Data: []byte("---\ntitle: Latest\ndate: 2025-01-01\n---\n")}
	require.NoError(t, idx.Reload())
	require.Equal(t, "latest", idx.All()[0].Slug)
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	got := Markdown(Post{
		Title:  "Zone 2",
		Date:   "2024-05-01",
		Author: "Me",
		Tags:   []string{"running"},
		Body:   "Easy miles.",
	})
	require.Equal(t, "# Zone 2\n\n*2024-05-01 · Me · running*\n\nEasy miles.", got)
}

func TestRender(t *testing.T) {
	t.Parallel()

	out, err := Render(Post{Slug: "zone-2", Title: "Zone 2", Body: "Easy miles."}, 60)
	require.NoError(t, err)
	require.Contains(t, out, "Zone 2")
	require.Contains(t, out, "Easy miles.")
}
