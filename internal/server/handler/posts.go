package handler

import (
	"net/http"
	"strconv"

	"github.com/garrettladley/healthmesh/internal/blog"
	"github.com/garrettladley/healthmesh/internal/xerrors"
	"github.com/garrettladley/healthmesh/internal/xhttp"
	"github.com/garrettladley/healthmesh/internal/xslog"
)

// PostIndex is satisfied by *blog.Index.
type PostIndex interface {
	All() []blog.Post
	Recent(n int) []blog.Post
	Find(slug string) (blog.Post, bool)
}

type Posts struct {
	index PostIndex
}

func NewPosts(index PostIndex) *Posts {
	return &Posts{index: index}
}

// HandleList handles GET /api/posts.
// Query params: limit (positive int, default all). Bodies are omitted.
func (h *Posts) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	posts := h.index.All()
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			xerrors.WriteError(ctx, w, xerrors.BadRequest(xerrors.WithMessage("invalid limit parameter (expected positive integer)")))
			return
		}
		posts = h.index.Recent(limit)
	}

	out := make([]blog.Post, len(posts))
	for i, p := range posts {
		out[i] = p.Summary()
	}

	xslog.FromContext(ctx).DebugContext(ctx, "listed posts", xslog.Count(len(out)))
	xhttp.WriteOK(w, out)
}

// HandleGet handles GET /api/posts/{slug}.
func (h *Posts) HandleGet(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	post, ok := h.index.Find(slug)
	if !ok {
		xslog.FromContext(r.Context()).DebugContext(r.Context(), "post not found", xslog.Slug(slug))
		xerrors.WriteError(r.Context(), w, xerrors.NotFound(xerrors.WithMessage("post not found")))
		return
	}
	xhttp.WriteOK(w, post)
}
