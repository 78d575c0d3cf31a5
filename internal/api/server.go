package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/monopolybot/backend/internal/api/handlers"
	"github.com/monopolybot/backend/internal/api/middleware/auth"
	"github.com/monopolybot/backend/internal/config"
	"github.com/monopolybot/backend/internal/game/engine"
	"github.com/monopolybot/backend/internal/game/websocket"
	"github.com/monopolybot/backend/internal/journal"
)

// CustomValidator is the request validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Server is the observability and admin HTTP surface. Gameplay never
// goes through it; commands arrive via the chat transport.
type Server struct {
	echo        *echo.Echo
	cfg         *config.Config
	engine      *engine.Engine
	hub         *websocket.Hub
	logger      *zap.SugaredLogger
	mongoClient *mongo.Client
	redisClient *redis.Client
}

// NewServer creates the API server. The Mongo and Redis clients and
// the journal are optional and may be nil.
func NewServer(cfg *config.Config, eng *engine.Engine, hub *websocket.Hub, jrnl *journal.Journal, mongoClient *mongo.Client, redisClient *redis.Client, logger *zap.SugaredLogger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	server := &Server{
		echo:        e,
		cfg:         cfg,
		engine:      eng,
		hub:         hub,
		logger:      logger,
		mongoClient: mongoClient,
		redisClient: redisClient,
	}

	server.configureMiddleware()
	server.configureRoutes(jrnl)

	return server
}

// configureMiddleware sets up Echo middleware
func (s *Server) configureMiddleware() {
	s.echo.Use(middleware.Logger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())
	s.echo.Use(middleware.RequestID())
}

// configureRoutes sets up API routes
func (s *Server) configureRoutes(jrnl *journal.Journal) {
	sessionHandler := handlers.NewSessionHandler(s.engine, jrnl, s.logger)
	healthHandler := handlers.NewHealthHandler(s.mongoClient, s.redisClient, s.logger)

	s.echo.GET("/health", healthHandler.Check)

	apiV1 := s.echo.Group("/api/v1")
	apiV1.GET("/session", sessionHandler.GetSession)
	apiV1.GET("/session/journal", sessionHandler.GetJournal)

	jwtMiddleware := auth.JWTMiddleware(s.cfg.JWT.Secret)
	adminGroup := apiV1.Group("/admin", jwtMiddleware)
	adminGroup.POST("/reset", sessionHandler.ResetSession)

	s.echo.GET("/ws/spectate", func(c echo.Context) error {
		return s.hub.ServeWS(c.Response(), c.Request())
	})
}

// Start starts the API server
func (s *Server) Start() error {
	address := s.cfg.Server.Host + ":" + strconv.Itoa(s.cfg.Server.Port)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the API server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
