package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bassista/go_sitedesk/internal/config"
	"github.com/gin-gonic/gin"
)

func TestConfigurationController_GetConfiguration(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		cfg          config.Config
		expectedBody ConfigurationResponse
	}{
		{
			name: "refresh enabled",
			cfg: config.Config{
				Upstream: config.UpstreamConfig{BaseURL: "https://api.example.com", PageSize: 20},
				Refresh:  config.RefreshConfig{Enabled: true, Interval: 90 * time.Second},
			},
			expectedBody: ConfigurationResponse{UpstreamBaseURL: "https://api.example.com", PageSize: 20, RefreshEnabled: true, RefreshIntervalSec: 90},
		},
		{
			name: "refresh disabled",
			cfg: config.Config{
				Upstream: config.UpstreamConfig{BaseURL: "http://localhost:3000", PageSize: 5},
			},
			expectedBody: ConfigurationResponse{UpstreamBaseURL: "http://localhost:3000", PageSize: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := NewConfigurationController(&tt.cfg)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/configuration", nil)

			cc.GetConfiguration(c)

			if w.Code != http.StatusOK {
				t.Errorf("expected status 200, got %d", w.Code)
			}
			var got ConfigurationResponse
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if got != tt.expectedBody {
				t.Errorf("expected %+v, got %+v", tt.expectedBody, got)
			}
		})
	}
}

func TestConfigurationController_OmitsToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Upstream: config.UpstreamConfig{BaseURL: "https://api.example.com", Token: "s3cret"}}
	cc := NewConfigurationController(cfg)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/configuration", nil)

	cc.GetConfiguration(c)

	if strings.Contains(w.Body.String(), "s3cret") {
		t.Error("response must not contain the upstream token")
	}
}
