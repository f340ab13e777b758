package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Mayron603/painel-ssp/internal/config"
	"github.com/Mayron603/painel-ssp/internal/db"
	"github.com/Mayron603/painel-ssp/internal/redis"
	"github.com/Mayron603/painel-ssp/internal/security"
	"github.com/Mayron603/painel-ssp/internal/storage"
	"github.com/Mayron603/painel-ssp/internal/store"
)

type Server struct {
	log      *slog.Logger
	db       *db.DB
	store    *store.Store
	redis    *redis.Client // pode ser nil; o limiter em processo assume
	cfg      config.Config
	loc      *time.Location
	router   *gin.Engine
	limiter  *security.LimiterStore
	archiver storage.Archiver
}

func NewServer(log *slog.Logger, dbConn *db.DB, redisClient *redis.Client, archiver storage.Archiver, cfg config.Config) *Server {
	if archiver == nil {
		archiver = storage.NoopArchiver{}
	}

	s := &Server{
		log:      log,
		db:       dbConn,
		store:    store.New(dbConn),
		redis:    redisClient,
		cfg:      cfg,
		loc:      cfg.Location(),
		router:   gin.New(),
		limiter:  security.NewLimiterStore(rate.Limit(1000.0/(15*60)), 50, 30*time.Minute),
		archiver: archiver,
	}

	gin.SetMode(gin.ReleaseMode)
	r := s.router
	r.Use(gin.Recovery())
	r.Use(s.corsMiddleware())
	r.Use(s.loggingMiddleware())
	r.Use(s.inputValidationMiddleware())
	r.Use(s.rateLimitMiddleware())

	api := r.Group("/api")
	{
		api.GET("/members", s.getMembers)
		api.GET("/members/:discordUserId", s.getMember)
		api.POST("/members/:discordUserId/observations", s.addObservation)
		api.GET("/members/:discordUserId/stats", s.getMemberStats)

		api.GET("/ranking", s.getRanking)
		api.GET("/registros", s.getRegistros)
		api.GET("/registros/export", s.exportRegistros)
		api.PUT("/registros/:pontoId", s.updatePonto)
		api.DELETE("/registros/:pontoId", s.deletePonto)

		api.GET("/unique-users", s.getUniqueUsers)
		api.GET("/dashboard/summary", s.getDashboardSummary)
		api.GET("/alerts", s.getAlerts)
		api.GET("/health", s.health)
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 15*time.Second)
}
