package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/bassista/go_sitedesk/internal/logger"
	"github.com/bassista/go_sitedesk/internal/refresh"
	"github.com/gin-gonic/gin"
)

// StatusSource reports the state of the upstream fetchers.
type StatusSource interface {
	Status() refresh.Status
}

// Refresher pulls fresh data from upstream on demand.
type Refresher interface {
	StatusSource
	SetPage(page int) error
	RefreshOnce(ctx context.Context) error
}

type RefreshController struct {
	refresher Refresher
}

func NewRefreshController(r Refresher) *RefreshController {
	return &RefreshController{refresher: r}
}

// Status returns the fetcher state of every resource.
func (rc *RefreshController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, rc.refresher.Status())
}

// Refresh pulls every resource now. An optional ?page=N selects the sites page
// for this and later refreshes. Upstream failures answer 502 with the status.
func (rc *RefreshController) Refresh(c *gin.Context) {
	if p := c.Query("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
			return
		}
		if err := rc.refresher.SetPage(page); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := rc.refresher.RefreshOnce(c.Request.Context()); err != nil {
		logger.WithComponent("refresh_controller").Warnf("manual refresh failed: %v", err)
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, refreshResponse{Error: err.Error(), Status: rc.refresher.Status()})
		return
	}
	c.JSON(http.StatusOK, refreshResponse{Status: rc.refresher.Status()})
}

type refreshResponse struct {
	Error  string         `json:"error,omitempty"`
	Status refresh.Status `json:"status"`
}
