package controller

import (
	"net/http"
	"strconv"

	"github.com/bassista/go_sitedesk/internal/display"
	"github.com/bassista/go_sitedesk/internal/model"
	"github.com/gin-gonic/gin"
)

// SiteStore is the part of the store the site endpoints read.
type SiteStore interface {
	Sites() []model.Site
	TotalCount() (int, bool)
	SitesLink() string
	SiteByID() map[string]model.Site
}

type SiteController struct {
	store SiteStore
}

func NewSiteController(store SiteStore) *SiteController {
	return &SiteController{store: store}
}

// AllSites returns the cached page of sites with the upstream pagination headers.
func (sc *SiteController) AllSites(c *gin.Context) {
	if total, ok := sc.store.TotalCount(); ok {
		c.Header("X-Total-Count", strconv.Itoa(total))
	}
	if link := sc.store.SitesLink(); link != "" {
		c.Header("Link", link)
	}
	writeList(c, sc.store.Sites())
}

func (sc *SiteController) GetSite(c *gin.Context) {
	site, ok := sc.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, site)
}

// SiteCard returns the display strings of a site.
func (sc *SiteController) SiteCard(c *gin.Context) {
	site, ok := sc.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, display.Card(site))
}

func (sc *SiteController) lookup(c *gin.Context) (model.Site, bool) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing site id"})
		return model.Site{}, false
	}
	site, ok := sc.store.SiteByID()[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "site not found"})
		return model.Site{}, false
	}
	return site, true
}
