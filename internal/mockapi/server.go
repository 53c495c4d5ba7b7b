package mockapi

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"nexus/internal/logging"
)

const (
	// DefaultTokenTTL matches the backend's access token lifetime.
	DefaultTokenTTL = 30 * time.Minute
	// DefaultSecret is only suitable for local development.
	DefaultSecret = "your-secret-key-for-development"

	maxBodySize = 1 << 20
)

// Config configures the mock backend.
type Config struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
	Debug      bool
}

// Server is an in-memory implementation of the finance backend.
type Server struct {
	cfg        Config
	engine     *gin.Engine
	store      *memoryStore
	log        *slog.Logger
	now        func() time.Time
	generation atomic.Int64
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithClock overrides the time source used for token expiry and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer builds the engine and registers every route.
func NewServer(cfg Config, opts ...Option) *Server {
	if cfg.Secret == "" {
		cfg.Secret = DefaultSecret
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:   cfg,
		store: newMemoryStore(),
		log:   logging.Discard(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logging.For(s.log, logging.ComponentMockAPI)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.requestLogger())
	engine.Use(jsonBodyLimit(maxBodySize))
	s.engine = engine

	s.setupRoutes()
	return s
}

// Handler exposes the engine for http.Server or httptest.
func (s *Server) Handler() http.Handler { return s.engine }

// RevokeTokens invalidates every token issued so far.
func (s *Server) RevokeTokens() {
	s.generation.Add(1)
	s.log.Info("tokens revoked", "generation", s.generation.Load())
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := s.engine.Group("/api/v1")
	{
		v1.POST("/register", s.register)
		v1.POST("/login", s.login)

		v1.GET("/ml/predict-category", s.predictCategory)
		v1.GET("/ml/model-info", s.modelInfo)
	}

	authed := v1.Group("")
	authed.Use(s.authRequired())
	{
		authed.GET("/accounts", s.listAccounts)
		authed.POST("/accounts", s.createAccount)

		authed.GET("/transactions", s.listTransactions)
		authed.POST("/transactions", s.createTransaction)

		authed.GET("/budgets", s.listBudgets)
		authed.POST("/budgets", s.createBudget)
		authed.DELETE("/budgets/:id", s.deleteBudget)

		authed.GET("/goals", s.listGoals)
		authed.POST("/goals", s.createGoal)
		authed.PUT("/goals/:id", s.updateGoal)

		authed.GET("/investments", s.listInvestments)
		authed.POST("/investments", s.createInvestment)
		authed.DELETE("/investments/:id", s.deleteInvestment)

		authed.GET("/notifications", s.listNotifications)
		authed.PUT("/notifications/read-all", s.markAllRead)
		authed.PUT("/notifications/:id/read", s.markRead)

		authed.GET("/recurring-transactions", s.listRecurring)

		authed.GET("/analytics/spending-insights", s.spendingInsights)
		authed.GET("/analytics/cash-flow-forecast", s.cashFlowForecast)
		authed.GET("/analytics/financial-health", s.financialHealth)
	}

	s.engine.NoRoute(func(c *gin.Context) {
		detail(c, http.StatusNotFound, "Not Found")
	})
}

// requestLogger records one line per request, tagged with the caller's
// request ID or a fresh one.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)

		c.Next()

		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"duration", time.Since(start),
			"request_id", id,
		)
	}
}

func jsonBodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut {
			if c.Request.ContentLength > maxBytes {
				detail(c, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
