package controller

import (
	"net/http"

	"github.com/bassista/go_sitedesk/internal/config"
	"github.com/gin-gonic/gin"
)

// ConfigurationResponse is the non-secret part of the configuration exposed to the frontend.
type ConfigurationResponse struct {
	UpstreamBaseURL    string `json:"upstreamBaseUrl"`
	PageSize           int    `json:"pageSize"`
	RefreshEnabled     bool   `json:"refreshEnabled"`
	RefreshIntervalSec int    `json:"refreshIntervalSec"`
}

// ConfigurationController handles configuration-related API endpoints.
type ConfigurationController struct {
	config *config.Config
}

// NewConfigurationController creates a new ConfigurationController.
func NewConfigurationController(cfg *config.Config) *ConfigurationController {
	return &ConfigurationController{
		config: cfg,
	}
}

// GetConfiguration returns the application configuration for the frontend.
// The upstream token is never included.
func (cc *ConfigurationController) GetConfiguration(c *gin.Context) {
	response := ConfigurationResponse{
		UpstreamBaseURL:    cc.config.Upstream.BaseURL,
		PageSize:           cc.config.Upstream.PageSize,
		RefreshEnabled:     cc.config.Refresh.Enabled,
		RefreshIntervalSec: int(cc.config.Refresh.Interval.Seconds()),
	}
	c.JSON(http.StatusOK, response)
}
