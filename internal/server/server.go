package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/workbenchhq/workbench/internal/auth"
	authdomain "github.com/workbenchhq/workbench/internal/auth/domain"
	"github.com/workbenchhq/workbench/internal/auth/session"
	"github.com/workbenchhq/workbench/internal/config"
	"github.com/workbenchhq/workbench/internal/observability"
	obslogger "github.com/workbenchhq/workbench/internal/observability/logger"
	obsmetrics "github.com/workbenchhq/workbench/internal/observability/metrics"
	obstracing "github.com/workbenchhq/workbench/internal/observability/tracing"
	"github.com/workbenchhq/workbench/internal/organization"
	orgdomain "github.com/workbenchhq/workbench/internal/organization/domain"
	"github.com/workbenchhq/workbench/internal/project"
	projectdomain "github.com/workbenchhq/workbench/internal/project/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	session.Module,
	organization.Module,
	project.Module,
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	log        *zap.Logger
	authsvc    authdomain.Service
	sessions   *session.Manager
	orgSvc     orgdomain.Service
	projectSvc projectdomain.Service
	metrics    *obsmetrics.Metrics
	genID      *snowflake.Node
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	Authsvc    authdomain.Service
	Sessions   *session.Manager
	OrgSvc     orgdomain.Service
	ProjectSvc projectdomain.Service
	Metrics    *obsmetrics.Metrics `optional:"true"`
	GenID      *snowflake.Node
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		log:        p.Log.Named("server"),
		authsvc:    p.Authsvc,
		sessions:   p.Sessions,
		orgSvc:     p.OrgSvc,
		projectSvc: p.ProjectSvc,
		metrics:    p.Metrics,
		genID:      p.GenID,
	}
}

func registerRoutes(s *Server) {
	s.RegisterRoutes()
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// RegisterRoutes wires the HTTP surface onto the engine.
func (s *Server) RegisterRoutes() {
	r := s.engine

	r.POST("/login/", s.Login)
	r.POST("/logout/", s.Logout)
	r.POST("/token/refresh/", s.Refresh)

	r.GET("/user/", s.AuthRequired(), s.CurrentUser)

	projects := r.Group("/projects", s.AuthRequired())
	{
		projects.GET("/", s.ListProjects)
		projects.POST("/create/", s.CreateProject)
	}
}
