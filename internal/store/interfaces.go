package store

import "github.com/bassista/go_sitedesk/internal/model"

// ReadOnlyStore is the store API for views that only read.
type ReadOnlyStore interface {
	Sites() []model.Site
	TotalCount() (int, bool)
	SitesLink() string
	Clients() []model.Client
	User() (model.User, bool)
	SiteByID() map[string]model.Site
	ClientOptions() []model.Option
	TagOptions() []string
	Snapshot() (Snapshot, error)
}

// SiteWriter replaces the site list.
type SiteWriter interface {
	SetSites(sites []model.Site, totalCount int) error
	SetSitesPage(sites []model.Site, totalCount int, link string) error
}

// ClientWriter replaces the client list.
type ClientWriter interface {
	SetClients(clients []model.Client) error
}

// UserWriter replaces the session user.
type UserWriter interface {
	SetUser(user *model.User) error
}

// Writer is the store API needed by the refresher.
type Writer interface {
	SiteWriter
	ClientWriter
	UserWriter
}

// AppStore is the store contract the application container exposes.
type AppStore interface {
	ReadOnlyStore
	Writer
	Subscribe(fn func(Snapshot)) func()
}

var _ AppStore = (*Store)(nil)
