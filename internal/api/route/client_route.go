package route

import (
	"time"

	"github.com/bassista/go_sitedesk/internal/api/controller"
	"github.com/bassista/go_sitedesk/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

func NewClientRouter(timeout time.Duration, group *gin.RouterGroup, store controller.ClientStore) {
	cc := controller.NewClientController(store)
	timeoutMiddleware := middleware.RequestTimeout(timeout)

	group.GET("clients", timeoutMiddleware, cc.AllClients)
	group.GET("clients/options", timeoutMiddleware, cc.ClientOptions)
	group.GET("tags/options", timeoutMiddleware, cc.TagOptions)
}

func NewUserRouter(timeout time.Duration, group *gin.RouterGroup, store controller.UserStore) {
	uc := controller.NewUserController(store)

	group.GET("user", middleware.RequestTimeout(timeout), uc.GetUser)
}
