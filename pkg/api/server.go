package api

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/marketbay/marketbay/pkg/accounts"
	"github.com/marketbay/marketbay/pkg/auth"
	"github.com/marketbay/marketbay/pkg/middleware"
	"github.com/marketbay/marketbay/pkg/observability"
	"github.com/marketbay/marketbay/pkg/rbac"
)

// RoleLister provides read access to role reference data.
type RoleLister interface {
	ListRoles(ctx context.Context) ([]rbac.Role, error)
}

// Server is the HTTP API server
type Server struct {
	router   *mux.Router
	accounts *accounts.Service
	roles    RoleLister
	resolver *rbac.Resolver
	tokens   *auth.TokenService
	log      *logrus.Logger
}

// NewServer creates the API server and registers all routes.
func NewServer(db *sql.DB, accountSvc *accounts.Service, roleStore RoleLister, resolver *rbac.Resolver, tokens *auth.TokenService, metrics *observability.Metrics, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}

	s := &Server{
		router:   mux.NewRouter(),
		accounts: accountSvc,
		roles:    roleStore,
		resolver: resolver,
		tokens:   tokens,
		log:      log,
	}

	s.router.Use(
		observability.Recovery(log),
		observability.RequestLogging(log),
		metrics.Middleware(routeTemplate),
	)

	// public auth routes
	s.router.HandleFunc("/auth/register", s.register).Methods("POST")
	s.router.HandleFunc("/auth/login", s.login).Methods("POST")

	// identity route: authentication guard only
	authenticate := middleware.Authenticate(tokens)
	s.router.Handle("/auth/profile", authenticate(http.HandlerFunc(s.profile))).Methods("GET")
	s.router.Handle("/auth/profile", authenticate(http.HandlerFunc(s.updateProfile))).Methods("PUT")

	// reference data: read-only, Admin and Analyst
	s.router.Handle("/api/roles",
		authenticate(middleware.RequireRoles(resolver, "Admin", "Analyst")(http.HandlerFunc(s.listRoles))),
	).Methods("GET")

	// operational endpoints
	s.router.HandleFunc("/healthz", observability.HealthHandler(db)).Methods("GET")
	s.router.Handle("/metrics", metrics.Handler()).Methods("GET")

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routeTemplate returns the matched route pattern for metric labels,
// keeping label cardinality bounded.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
