// Package server assembles the reference remote service: the SQLite
// entity store behind the engine's wire contract, for development and
// end-to-end tests.
package server

import (
	"log/slog"
	"net/http"

	"github.com/clinicore/syncengine/internal/server/handlers"
	"github.com/clinicore/syncengine/internal/server/middleware"
	"github.com/clinicore/syncengine/internal/server/storage"
)

// NewRouter builds the full HTTP handler: entity endpoints plus
// health, wrapped in recovery and request logging.
func NewRouter(logger *slog.Logger, store storage.EntityStorage) http.Handler {
	mux := http.NewServeMux()

	handlers.NewEntitiesHandler(logger, store).Register(mux)
	mux.HandleFunc("GET /healthz", handlers.NewHealthHandler(logger).Health)

	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(logger, []string{"/healthz"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)
	return handler
}
