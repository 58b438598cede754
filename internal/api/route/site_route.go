package route

import (
	"time"

	"github.com/bassista/go_sitedesk/internal/api/controller"
	"github.com/bassista/go_sitedesk/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

func NewSiteRouter(timeout time.Duration, group *gin.RouterGroup, store controller.SiteStore) {
	sc := controller.NewSiteController(store)
	timeoutMiddleware := middleware.RequestTimeout(timeout)

	group.GET("sites", timeoutMiddleware, sc.AllSites)
	group.GET("sites/:id", timeoutMiddleware, sc.GetSite)
	group.GET("sites/:id/card", timeoutMiddleware, sc.SiteCard)
}
