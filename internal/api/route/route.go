package route

import (
	"net/http"

	"github.com/bassista/go_sitedesk/internal/app"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(r *gin.Engine, appCtx *app.App) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "UP",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(appCtx.Registry, promhttp.HandlerOpts{})))

	publicRouter := r.Group("")

	// All Public APIs
	timeout := appCtx.Config.Server.RequestTimeout
	// manual refresh waits on upstream too
	refreshTimeout := timeout + appCtx.Config.Upstream.Timeout

	NewSiteRouter(timeout, publicRouter, appCtx.Store)
	NewClientRouter(timeout, publicRouter, appCtx.Store)
	NewUserRouter(timeout, publicRouter, appCtx.Store)
	NewRefreshRouter(timeout, refreshTimeout, publicRouter, appCtx.Refresher)
	NewConfigurationRouter(timeout, publicRouter, appCtx.Config)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}
