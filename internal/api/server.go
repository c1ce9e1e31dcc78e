package api

import (
	"net/http"
	"sejf-plikow/internal/account"
	"sejf-plikow/internal/auth"
	"sejf-plikow/internal/config"
	"sejf-plikow/internal/database"
	"sejf-plikow/internal/tree"
	"sejf-plikow/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	gorillaws "github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const maxJSONBodyBytes = 1 << 20

type Server struct {
	config   *config.Config
	store    *database.Store
	accounts *account.Service
	tree     *tree.Service
	keys     *auth.KeyManager
	wsHub    *websocket.Hub
	upgrader *gorillaws.Upgrader
	logger   *zap.Logger
}

func NewServer(cfg *config.Config, store *database.Store, accounts *account.Service, files *tree.Service, keys *auth.KeyManager, wsHub *websocket.Hub, logger *zap.Logger) *Server {
	return &Server{
		config:   cfg,
		store:    store,
		accounts: accounts,
		tree:     files,
		keys:     keys,
		wsHub:    wsHub,
		upgrader: websocket.NewUpgrader(cfg.Server.CORSOrigins),
		logger:   logger,
	}
}

// Routes builds the full HTTP surface of the server.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/health", s.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", s.ServeWsHandler)

	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/public-key", s.PublicKeyHandler)
		r.Post("/register", s.RegisterHandler)
		r.Post("/login", s.LoginHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Get("/me", s.GetCurrentUserHandler)
			r.Patch("/me", s.UpdateCurrentUserHandler)
			r.Post("/logout", s.LogoutHandler)
		})
	})

	r.Route("/api/fs", func(r chi.Router) {
		r.Use(s.AuthMiddleware)

		r.Get("/root/children", s.ListRootChildrenHandler)
		r.Post("/folders", s.CreateFolderHandler)
		r.Get("/folders/{folderId}", s.GetFolderHandler)
		r.Patch("/folders/{folderId}", s.UpdateFolderHandler)
		r.Delete("/folders/{folderId}", s.DeleteFolderHandler)
		r.Get("/folders/{folderId}/children", s.ListFolderChildrenHandler)

		r.Post("/files", s.UploadFileHandler)
		r.Get("/files/{fileId}", s.GetFileHandler)
		r.Patch("/files/{fileId}", s.UpdateFileHandler)
		r.Delete("/files/{fileId}", s.DeleteFileHandler)
		r.Get("/files/{fileId}/download", s.DownloadFileHandler)

		r.Get("/events", s.GetEventsHandler)
	})

	return r
}
