// Package server is the backend-for-frontend: it serves the assembled dashboard, sync, posts and
// assistant over JSON, guarded by the shared access key.
package server

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/healthmesh/internal/server/handler"
	servermw "github.com/garrettladley/healthmesh/internal/server/middleware"
	"github.com/garrettladley/healthmesh/internal/storage"
	"github.com/garrettladley/healthmesh/internal/xhttp/middleware"
)

const syncBucket = "sync"

type Deps struct {
	Logger       *slog.Logger
	Passphrase   string
	Backend      storage.Backend
	Loader       handler.Loader
	Posts        handler.PostIndex
	Conversation handler.Conversation
}

func NewHandler(d Deps) http.Handler {
	healthHandler := handler.NewHealth(d.Backend)
	dashboardHandler := handler.NewDashboard(d.Loader, d.Backend)
	postsHandler := handler.NewPosts(d.Posts)
	assistantHandler := handler.NewAssistant(d.Conversation)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.HandleHealth)

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /api/dashboard", dashboardHandler.HandleLoad)
	apiMux.HandleFunc("GET /api/dashboard/latest", dashboardHandler.HandleLatest)
	apiMux.Handle("POST /api/sync/{kind}", middleware.Chain(
		http.HandlerFunc(dashboardHandler.HandleSync),
		servermw.RateLimit(d.Backend, syncBucket),
	))
	apiMux.HandleFunc("GET /api/posts", postsHandler.HandleList)
	apiMux.HandleFunc("GET /api/posts/{slug}", postsHandler.HandleGet)
	apiMux.HandleFunc("GET /api/assistant", assistantHandler.HandleMessages)
	apiMux.HandleFunc("POST /api/assistant", assistantHandler.HandleSend)
	apiMux.HandleFunc("POST /api/assistant/{id}/approve", assistantHandler.HandleApprove)
	mux.Handle("/api/", middleware.Chain(apiMux,
		servermw.APIKeyAuth(d.Passphrase),
	))

	return middleware.Chain(mux,
		middleware.Recovery,
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.ClientVersion,
		middleware.Logging,
		middleware.SecurityHeaders,
		middleware.Gzip,
	)
}
