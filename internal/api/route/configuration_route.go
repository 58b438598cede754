package route

import (
	"time"

	"github.com/bassista/go_sitedesk/internal/api/controller"
	"github.com/bassista/go_sitedesk/internal/api/middleware"
	"github.com/bassista/go_sitedesk/internal/config"
	"github.com/gin-gonic/gin"
)

// NewConfigurationRouter exposes the non-secret settings the frontend needs.
func NewConfigurationRouter(timeout time.Duration, group *gin.RouterGroup, cfg *config.Config) {
	cc := controller.NewConfigurationController(cfg)
	timeoutMiddleware := middleware.RequestTimeout(timeout)

	group.GET("configuration", timeoutMiddleware, cc.GetConfiguration)
}
