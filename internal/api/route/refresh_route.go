package route

import (
	"time"

	"github.com/bassista/go_sitedesk/internal/api/controller"
	"github.com/bassista/go_sitedesk/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// NewRefreshRouter sets up the fetcher status and manual refresh routes.
// refreshTimeout applies to POST /refresh only.
func NewRefreshRouter(timeout, refreshTimeout time.Duration, group *gin.RouterGroup, r controller.Refresher) {
	rc := controller.NewRefreshController(r)

	group.GET("status", middleware.RequestTimeout(timeout), rc.Status)
	group.POST("refresh", middleware.RequestTimeout(refreshTimeout), rc.Refresh)
}
