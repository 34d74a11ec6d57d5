// Package httpapi exposes the daily diet services over HTTP using gin.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dailydiet/internal/logging"
	"github.com/dmitrijs2005/dailydiet/internal/server/auth"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
	"github.com/dmitrijs2005/dailydiet/internal/server/services"
	"github.com/dmitrijs2005/dailydiet/internal/server/telemetry"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type AccountService interface {
	Register(ctx context.Context, name, email, password string) (*services.Session, error)
	Authenticate(ctx context.Context, email, password string) (*services.Session, error)
	Logout(ctx context.Context, account *models.Account) error
}

type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.Account, error)
}

type MealService interface {
	Create(ctx context.Context, account *models.Account, in services.NewMeal) (*models.Meal, error)
	List(ctx context.Context, account *models.Account) ([]*models.Meal, error)
	Get(ctx context.Context, account *models.Account, id string) (*models.Meal, error)
	Update(ctx context.Context, account *models.Account, id string, patch models.MealPatch) error
	Delete(ctx context.Context, account *models.Account, id string) error
	Metrics(ctx context.Context, account *models.Account) (*models.Metrics, error)
}

type Server struct {
	address   string
	router    *gin.Engine
	logger    logging.Logger
	metrics   *telemetry.Metrics
	accounts  AccountService
	sessions  SessionResolver
	meals     MealService
	jwtSecret []byte
}

// NewServer fails when session cookies cannot be signed with secretKey, so
// that a registration is never stored without a cookie to hand back.
func NewServer(addr string, l logging.Logger, m *telemetry.Metrics, as AccountService, sr SessionResolver, ms MealService, secretKey string) (*Server, error) {
	if secretKey == "" {
		return nil, errors.New("session secret key is empty")
	}
	if _, err := auth.GenerateToken("startup-check", []byte(secretKey), time.Minute); err != nil {
		return nil, fmt.Errorf("session cookie signing: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		address:   addr,
		router:    gin.New(),
		logger:    l.With("module", "http_server"),
		metrics:   m,
		accounts:  as,
		sessions:  sr,
		meals:     ms,
		jwtSecret: []byte(secretKey),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router
	r.Use(gin.Recovery(), s.requestLogger(), s.metrics.Middleware())

	r.GET("/healthz", s.handlePing)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	users := r.Group("/users")
	{
		users.POST("", s.handleRegister)
		users.POST("/sessions", s.handleCreateSession)
		users.DELETE("/sessions", s.sessionRequired(), s.handleDeleteSession)
	}

	meals := r.Group("/meals", s.sessionRequired())
	{
		meals.GET("", s.handleListMeals)
		meals.POST("", s.handleCreateMeal)
		meals.GET("/metrics", s.handleMealMetrics)
		meals.GET("/:id", s.handleGetMeal)
		meals.PUT("/:id", s.handleUpdateMeal)
		meals.DELETE("/:id", s.handleDeleteMeal)
	}
}

// Handler returns the routed gin engine.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.router, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
