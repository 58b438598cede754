package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"syscall"

	"github.com/bassista/go_sitedesk/internal/api/middleware"
	route "github.com/bassista/go_sitedesk/internal/api/route"
	appctx "github.com/bassista/go_sitedesk/internal/app"
	"github.com/bassista/go_sitedesk/internal/config"
	"github.com/bassista/go_sitedesk/internal/logger"
	"github.com/gin-gonic/gin"

	"github.com/enrichman/httpgrace"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithComponent("main").Fatalf("configuration error: %v", err)
	}

	if err := logger.SetLevel(cfg.Misc.LogLevel); err != nil {
		logger.WithComponent("main").Warnf("invalid log level '%s', keeping '%s': %v", cfg.Misc.LogLevel, logger.Logger.GetLevel(), err)
	}
	if cfg.Misc.LogFormat == "json" {
		logger.UseJSON()
	}
	logger.WithComponent("main").Debugf("log level set to: %s", logger.Logger.GetLevel())
	logger.WithComponent("main").Infof("Upstream API: %s", cfg.Upstream.BaseURL)
	logger.WithComponent("main").Infof("App will run on port: %d", cfg.Server.Port)

	app, err := appctx.New(cfg)
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot init app: %v", err)
	}
	defer app.Shutdown()

	if err := app.StartWatchers(); err != nil {
		logger.WithComponent("main").Fatalf("cannot start watchers: %v", err)
	}

	gin.SetMode(cfg.Misc.GinMode)
	gin.DefaultWriter = logger.Logger.Writer()
	gin.DefaultErrorWriter = logger.Logger.Writer()

	r := newEngine(app, os.Getenv("HONEYBADGER_API_KEY"), os.Getenv("GO_ENV"))
	mainSrv := createGraceHttpServer(app.BaseCtx, "main-server", app.Config.Server, r)

	if err := mainSrv.ListenAndServe(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithComponent("main").Fatal(err)
	}
}

// newEngine builds the gin engine with the middleware chain and every route.
func newEngine(app *appctx.App, honeybadgerKey, env string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.HoneybadgerMiddleware(logger.WithComponent("honeybadger"), honeybadgerKey, env))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(app.Config.Server.CORSAllowedOrigins))

	route.SetupRoutes(r, app)
	return r
}

func createGraceHttpServer(ctx context.Context, name string, serverConfig config.ServerConfig, r *gin.Engine) *httpgrace.Server {
	slogLogger := slog.New(slog.NewTextHandler(logger.Logger.Writer(), nil))

	srv := httpgrace.NewServer(r,
		httpgrace.WithTimeout(serverConfig.ShutDownTimeout),
		httpgrace.WithSignals(syscall.SIGTERM, syscall.SIGINT),
		httpgrace.WithLogger(slogLogger),
		httpgrace.WithBeforeShutdown(func() {
			logger.WithComponent("http").Infof("Shutting down %s server....", name)
		}),
		httpgrace.WithServerOptions(
			httpgrace.WithReadTimeout(serverConfig.ReadTimeout),
			httpgrace.WithWriteTimeout(serverConfig.WriteTimeout),
			httpgrace.WithIdleTimeout(serverConfig.IdleTimeout),
			func(srv *http.Server) {
				srv.BaseContext = func(_ net.Listener) context.Context {
					return ctx
				}
			},
			func(srv *http.Server) {
				srv.ErrorLog = log.New(logger.Logger.Writer(), fmt.Sprintf("[%s] ", name), log.LstdFlags)
			},
		),
	)
	return srv
}
