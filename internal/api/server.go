// Package api exposes the todolist HTTP/JSON surface on a gin router.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/todolist/internal/auth"
	"github.com/mmynk/todolist/internal/middleware"
	"github.com/mmynk/todolist/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the server is built from.
type Deps struct {
	Users  *service.UserService
	Groups *service.TodoGroupService
	Todos  *service.TodoService
	Store  Pinger

	JWTManager *auth.JWTManager
	// RequireToken puts every mutating todo and todo group route behind
	// a Bearer token. Sign-up and sign-in stay public.
	RequireToken bool

	// StoreTimeout bounds each request's context. Zero disables it.
	StoreTimeout time.Duration

	// Metrics and MetricsHandler are optional; both nil disables /metrics.
	Metrics        *middleware.Metrics
	MetricsHandler http.Handler

	Logger *slog.Logger
}

// Server holds the router and the services behind it.
type Server struct {
	router   *gin.Engine
	users    *service.UserService
	groups   *service.TodoGroupService
	todos    *service.TodoService
	store    Pinger
	validate *validator.Validate
	logger   *slog.Logger
}

// NewServer builds the router with middleware and routes registered.
func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		users:    deps.Users,
		groups:   deps.Groups,
		todos:    deps.Todos,
		store:    deps.Store,
		validate: newValidator(),
		logger:   logger,
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(s.notFound)
	router.NoMethod(s.methodNotAllowed)

	if deps.Metrics != nil {
		router.Use(deps.Metrics.Handler())
	}
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))
	if deps.StoreTimeout > 0 {
		router.Use(middleware.Timeout(deps.StoreTimeout))
	}

	s.router = router
	s.registerRoutes(deps)
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes(deps Deps) {
	r := s.router

	r.GET("/healthz", s.healthCheck)
	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	// Account routes never require a token.
	r.POST("/signUp", s.signUp)
	r.POST("/signIn", s.signIn)

	public := r.Group("/")
	public.Use(middleware.OptionalAuth(deps.JWTManager))
	{
		public.GET("/user/todoGroups/:owner", s.listTodoGroups)
		public.GET("/todos/:todoGroup", s.listTodos)
		public.GET("/user/:email", s.findUsers)
	}

	writes := public
	if deps.RequireToken {
		writes = r.Group("/")
		writes.Use(middleware.RequireAuth(deps.JWTManager))
	}
	{
		writes.POST("/todo/create/:owner/:group", s.createTodo)
		writes.PUT("/todo/update/:id", s.updateTodo)
		writes.DELETE("/todo/delete/:id", s.deleteTodo)

		writes.POST("/todoGroup/create/:owner", s.createTodoGroup)
		writes.PUT("/todoGroup/update/:id", s.updateTodoGroup)
		writes.DELETE("/todoGroup/delete/:id", s.deleteTodoGroup)
	}
}
