package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/growthlab/boostup/docs"
	"github.com/growthlab/boostup/internal/app/api/handlers"
	"github.com/growthlab/boostup/internal/app/service/ads"
	"github.com/growthlab/boostup/internal/app/service/billing"
	"github.com/growthlab/boostup/internal/app/service/content"
	"github.com/growthlab/boostup/internal/app/service/engagement"
	"github.com/growthlab/boostup/internal/app/service/eventlog"
	"github.com/growthlab/boostup/internal/app/service/leaderboard"
	"github.com/growthlab/boostup/internal/app/service/ledger"
	"github.com/growthlab/boostup/internal/app/service/progression"
	"github.com/growthlab/boostup/internal/app/service/statistics"
	cfgpkg "github.com/growthlab/boostup/pkg/config"

	mw "github.com/growthlab/boostup/internal/app/api/middleware"

	metrics "github.com/growthlab/boostup/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

type routeDeps struct {
	fx.In

	Log         *zap.SugaredLogger
	Cfg         *cfgpkg.Config
	Auth        *mw.AuthMiddleware
	Ledger      *ledger.Service
	Progression *progression.Service
	Engagement  *engagement.Service
	Content     *content.Service
	Billing     *billing.Service
	Gateway     billing.Gateway
	EventLog    *eventlog.Service
	Leaderboard *leaderboard.Service
	Statistics  *statistics.Service
	Ads         *ads.Service
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	// Prometheus metrics
	if d.Cfg != nil && d.Cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: d.Log,
		})
		p.SetListenAddress(d.Cfg.MetricsAddr)
		p.Use(r)

		d.Log.Infow("metrics started", "addr", d.Cfg.MetricsAddr)
	}
	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(d.Log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Provider webhook: signature-verified, no user auth
	webhook := r.Group("/api/v1")
	webhook.Use(mw.RequestLoggerMiddleware(d.Log), mw.AccessLogMiddleware())
	handlers.RegisterBillingWebhookRoutes(webhook, d.Gateway, d.Billing, d.EventLog, d.Log)

	// Authenticated user APIs
	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(d.Log), mw.AccessLogMiddleware(), d.Auth.RequireAuth())
	handlers.RegisterProgressionRoutes(apiV1, d.Ledger, d.Progression, d.Billing, d.Leaderboard)
	handlers.RegisterEngagementRoutes(apiV1, d.Engagement)
	handlers.RegisterContentRoutes(apiV1, d.Content)
	handlers.RegisterBillingRoutes(apiV1, d.Billing)
	handlers.RegisterAdRoutes(apiV1, d.Ads)

	// Admin APIs behind the allow-list
	admin := apiV1.Group("/admin")
	admin.Use(d.Auth.RequireAdmin())
	handlers.RegisterAdminRoutes(admin, d.Statistics, d.Ledger, d.Billing, d.Ads, d.Log)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Provide(mw.NewAuthMiddleware),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
