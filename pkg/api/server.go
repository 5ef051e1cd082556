package api

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/cbodonnell/lastone/pkg/api/handlers"
	"github.com/cbodonnell/lastone/pkg/api/middleware"
	"github.com/cbodonnell/lastone/pkg/clients"
	"github.com/cbodonnell/lastone/pkg/log"
	"github.com/cbodonnell/lastone/pkg/repositories"
	"github.com/cbodonnell/lastone/pkg/state"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Addr        string
	TLS         *TLSConfig
	AllowOrigin string
	Repository  repositories.Repository
	// Standings and Spectators are optional; their routes are only
	// registered when a set can be running in the same process
	Standings  state.StandingsManager
	Spectators *clients.SpectatorManager
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	return &APIServer{
		server: &http.Server{
			Addr:    opts.Addr,
			Handler: NewRouter(opts),
		},
		tls: opts.TLS,
	}
}

// NewRouter builds the API routes.
func NewRouter(opts NewAPIServerOptions) *mux.Router {
	allowOrigin := opts.AllowOrigin
	if allowOrigin == "" {
		allowOrigin = "*"
	}

	r := mux.NewRouter()
	r.Use(middleware.NewLoggingMiddleware())

	read := r.NewRoute().Subrouter()
	read.Use(middleware.NewCORSMiddleware(allowOrigin))
	read.HandleFunc("/sets", handlers.HandleListSets(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
	read.HandleFunc("/sets/{id}", handlers.HandleGetSet(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
	read.HandleFunc("/players/{name}", handlers.HandleGetPlayer(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
	if opts.Standings != nil {
		read.HandleFunc("/standings", handlers.HandleGetStandings(opts.Standings)).Methods(http.MethodGet, http.MethodOptions)
	}

	if opts.Spectators != nil {
		r.HandleFunc("/feed", handlers.HandleFeed(opts.Spectators)).Methods(http.MethodGet)
	}

	return r
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Serve serves on an existing listener until Stop is called.
func (s *APIServer) Serve(l net.Listener) error {
	if err := s.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
