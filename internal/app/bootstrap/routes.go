// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	clubsfeature "github.com/dalemusser/clubhub/internal/app/features/clubs"
	eventsfeature "github.com/dalemusser/clubhub/internal/app/features/events"
	healthfeature "github.com/dalemusser/clubhub/internal/app/features/health"
	"github.com/dalemusser/clubhub/internal/app/relation"
	cascadestore "github.com/dalemusser/clubhub/internal/app/store/cascades"
	clubstore "github.com/dalemusser/clubhub/internal/app/store/clubs"
	eventstore "github.com/dalemusser/clubhub/internal/app/store/events"
	userstore "github.com/dalemusser/clubhub/internal/app/store/users"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/journal"
	"github.com/dalemusser/clubhub/internal/app/system/txn"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app. WAFFLE calls this after configuration, DB connections, schema
// setup, and the Startup hook have completed.
//
// ClubHub wires the Mongo-backed stores into the relationship maintainer,
// applies session middleware, and mounts the health, clubs, and events
// routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fresh user data on every request: super-admin grants and
	// revocations take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	core := relation.New(
		clubstore.New(deps.MongoDatabase),
		eventstore.New(deps.MongoDatabase),
		userstore.New(deps.MongoDatabase),
		journal.New(cascadestore.New(deps.MongoDatabase), logger),
		txn.New(deps.MongoClient, logger),
		logger,
	)

	r := chi.NewRouter()

	// Global auth middleware: loads the session user into context so
	// handlers can read it via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	clubsHandler := clubsfeature.NewHandler(core, logger)
	r.Mount("/clubs", clubsfeature.Routes(clubsHandler))

	eventsHandler := eventsfeature.NewHandler(core, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler))

	return r, nil
}
