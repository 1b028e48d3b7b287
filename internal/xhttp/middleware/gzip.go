package middleware

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync"

	"github.com/garrettladley/healthmesh/internal/xhttp"
)

const (
	gzipMinSize  = 1024
	gzipEncoding = "gzip"
)

// only view models and post bodies are worth compressing
var compressibleTypes = map[string]struct{}{
	"application/json": {},
	"text/markdown":    {},
	"text/plain":       {},
}

var uncompressedPaths = map[string]struct{}{
	"/health": {},
}

var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(nil)
	},
}

// gzipResponseWriter buffers until gzipMinSize bytes are written, then
// commits to either a gzip stream or a passthrough.
type gzipResponseWriter struct {
	http.ResponseWriter
	status    int
	pending   bytes.Buffer
	committed bool
	zw        *gzip.Writer
}

var (
	_ http.ResponseWriter = (*gzipResponseWriter)(nil)
	_ http.Flusher        = (*gzipResponseWriter)(nil)
	_ io.Closer           = (*gzipResponseWriter)(nil)
)

func (g *gzipResponseWriter) WriteHeader(code int) {
	if !g.committed {
		g.status = code
	}
}

func (g *gzipResponseWriter) Write(b []byte) (int, error) {
	if g.committed {
		return g.write(b)
	}

	g.pending.Write(b)
	if g.pending.Len() < gzipMinSize {
		return len(b), nil
	}

	if err := g.commit(g.shouldCompress()); err != nil {
		return 0, err
	}
	return len(b), nil
}

func (g *gzipResponseWriter) write(b []byte) (int, error) {
	if g.zw != nil {
		n, err := g.zw.Write(b)
		if err != nil {
			return n, fmt.Errorf("failed to write gzip: %w", err)
		}
		return n, nil
	}
	n, err := g.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("failed to write response: %w", err)
	}
	return n, nil
}

func (g *gzipResponseWriter) shouldCompress() bool {
	h := g.ResponseWriter.Header()
	if h.Get(xhttp.ContentEncoding) != "" {
		return false
	}
	ct := h.Get(xhttp.ContentType)
	if ct == "" {
		ct = http.DetectContentType(g.pending.Bytes())
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	_, ok := compressibleTypes[mediaType]
	return ok
}

// commit sends the status line and drains the pending buffer.
func (g *gzipResponseWriter) commit(compress bool) error {
	g.committed = true

	if compress {
		g.ResponseWriter.Header().Set(xhttp.ContentEncoding, gzipEncoding)
		g.ResponseWriter.Header().Del(xhttp.ContentLength)
		g.zw = gzipWriterPool.Get().(*gzip.Writer)
		g.zw.Reset(g.ResponseWriter)
	}
	g.ResponseWriter.WriteHeader(g.status)

	if g.pending.Len() == 0 {
		return nil
	}
	_, err := g.write(g.pending.Bytes())
	g.pending.Reset()
	return err
}

func (g *gzipResponseWriter) Close() error {
	if !g.committed {
		return g.commit(false)
	}
	if g.zw == nil {
		return nil
	}

	err := g.zw.Close()
	gzipWriterPool.Put(g.zw)
	g.zw = nil
	if err != nil {
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return nil
}

func (g *gzipResponseWriter) Flush() {
	if g.zw != nil {
		_ = g.zw.Flush()
	}
	if f, ok := g.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (g *gzipResponseWriter) Unwrap() http.ResponseWriter {
	return g.ResponseWriter
}

// Gzip compresses JSON and text responses of at least 1KB for clients that accept it.
func Gzip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, skip := uncompressedPaths[r.URL.Path]; skip || !acceptsGzip(r) {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Add(xhttp.Vary, xhttp.AcceptEncoding)

		gw := &gzipResponseWriter{ResponseWriter: w, status: http.StatusOK}
		defer gw.Close() //nolint:errcheck

		next.ServeHTTP(gw, r)
	})
}

func acceptsGzip(r *http.Request) bool {
	for part := range strings.SplitSeq(r.Header.Get(xhttp.AcceptEncoding), ",") {
		coding, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.EqualFold(coding, gzipEncoding) {
			return true
		}
	}
	return false
}
