package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/rohits-web03/meshvault/docs"
	"github.com/rohits-web03/meshvault/internal/api/handlers"
	"github.com/rohits-web03/meshvault/internal/api/middleware"
	"github.com/rohits-web03/meshvault/internal/api/services"
	"github.com/rohits-web03/meshvault/internal/config"
)

// Dependencies are the constructed services the router exposes.
type Dependencies struct {
	Config     *config.Config
	Log        *zap.Logger
	Sessions   *services.SessionManager
	Identity   *services.IdentityService
	Provider   services.IdentityProvider
	Models     *services.ModelService
	Categories *services.CategoryService
	Uploader   *services.Uploader
	// CookieStore holds the short-lived OAuth state cookie.
	CookieStore sessions.Store
}

func SetupRouter(deps Dependencies) http.Handler {
	log := deps.Log
	mainMux := http.NewServeMux()
	c := cors.New(deps.Config.CorsConfig())

	modelHandler := handlers.NewModelHandler(deps.Models, log)
	uploadHandler := handlers.NewUploadHandler(deps.Uploader, log)
	categoryHandler := handlers.NewCategoryHandler(deps.Categories, log)
	authHandler := handlers.NewAuthHandler(deps.Provider, deps.Identity, deps.Sessions, deps.CookieStore, handlers.AuthSettings{
		FrontendURL: deps.Config.FrontendURL,
		Secure:      deps.Config.IsProduction(),
	}, log)

	mainMux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	authMux := http.NewServeMux()
	authMux.HandleFunc("GET /google/login", authHandler.GoogleLogin)
	authMux.HandleFunc("GET /google/callback", authHandler.GoogleCallback)
	authMux.HandleFunc("GET /session", authHandler.Session)
	authMux.HandleFunc("POST /logout", authHandler.Logout)

	categoryMux := http.NewServeMux()
	categoryMux.HandleFunc("GET /{$}", categoryHandler.List)
	categoryMux.HandleFunc("GET /{slug}/fields", categoryHandler.Fields)

	modelMux := http.NewServeMux()
	modelMux.HandleFunc("GET /{$}", modelHandler.ListMine)
	modelMux.HandleFunc("POST /{$}", modelHandler.Create)
	modelMux.HandleFunc("GET /public", modelHandler.ListPublic)
	modelMux.HandleFunc("POST /upload", uploadHandler.Upload)
	modelMux.HandleFunc("GET /{id}", modelHandler.Get)
	modelMux.HandleFunc("PUT /{id}", modelHandler.Update)
	modelMux.HandleFunc("DELETE /{id}", modelHandler.Delete)
	modelMux.HandleFunc("GET /{id}/download", modelHandler.Download)

	mainMux.Handle("/api/auth/", http.StripPrefix("/api/auth", authMux))
	mainMux.Handle("/api/categories", rootPath(http.StripPrefix("/api/categories", categoryMux)))
	mainMux.Handle("/api/categories/", http.StripPrefix("/api/categories", categoryMux))
	mainMux.Handle("/api/models", rootPath(http.StripPrefix("/api/models", modelMux)))
	mainMux.Handle("/api/models/", http.StripPrefix("/api/models", modelMux))

	log.Info("router initialized")
	var handler http.Handler = mainMux
	handler = middleware.AccessGate(deps.Sessions, log)(handler)
	handler = c.Handler(handler)
	handler = middleware.RequestLogger(log)(handler)
	handler = middleware.Recoverer(log)(handler)
	return handler
}

// rootPath maps a collection path without a trailing slash onto the sub-mux root,
// so /api/models and /api/models/ reach the same handler.
func rootPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r2 := r.Clone(r.Context())
		r2.URL.Path = r.URL.Path + "/"
		if r.URL.RawPath != "" {
			r2.URL.RawPath = r.URL.RawPath + "/"
		}
		next.ServeHTTP(w, r2)
	})
}
