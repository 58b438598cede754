package refresh

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/bassista/go_sitedesk/internal/fetch"
	"github.com/bassista/go_sitedesk/internal/logger"
	"github.com/bassista/go_sitedesk/internal/model"
	"github.com/bassista/go_sitedesk/internal/query"
	"github.com/bassista/go_sitedesk/internal/store"
	"golang.org/x/sync/errgroup"
)

// Resource names used in Status and error messages.
const (
	ResourceSites   = "sites"
	ResourceClients = "clients"
	ResourceUser    = "user"
)

// Options locates the upstream resources.
type Options struct {
	SitesPath   string
	ClientsPath string
	UserPath    string
	PageSize    int
}

// ResourceStatus is the fetcher state of one resource, without its data.
type ResourceStatus struct {
	IsLoading    bool        `json:"isLoading"`
	HasError     bool        `json:"hasError"`
	ErrorMessage string      `json:"errorMessage"`
	Meta         *fetch.Meta `json:"meta"`
}

// Status describes the last refresh.
type Status struct {
	Page        int                       `json:"page"`
	LastRefresh time.Time                 `json:"lastRefresh"`
	Resources   map[string]ResourceStatus `json:"resources"`
}

// Refresher pulls sites, clients and the session user from upstream and
// pushes them into the store. Each resource has its own Fetcher, so one
// failing resource leaves the others (and its own last good data) untouched.
type Refresher struct {
	sites   *fetch.Fetcher[[]model.Site]
	clients *fetch.Fetcher[[]model.Client]
	user    *fetch.Fetcher[model.User]
	store   store.Writer
	opts    Options

	// runMu serializes refreshes so each reads back its own settlement
	runMu sync.Mutex

	mu          sync.Mutex
	page        int
	lastRefresh time.Time
	// rejected holds payloads that were fetched but not stored, by resource
	rejected map[string]string
}

func NewRefresher(client *fetch.Client, w store.Writer, opts Options) *Refresher {
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	return &Refresher{
		sites:    fetch.New[[]model.Site](client),
		clients:  fetch.New[[]model.Client](client),
		user:     fetch.New[model.User](client),
		store:    w,
		opts:     opts,
		page:     1,
		rejected: map[string]string{},
	}
}

// SetPage selects the sites page pulled by the next refresh. Pages start at 1.
func (r *Refresher) SetPage(page int) error {
	if page < 1 {
		return fmt.Errorf("invalid page %d", page)
	}
	r.mu.Lock()
	r.page = page
	r.mu.Unlock()
	return nil
}

func (r *Refresher) Page() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page
}

// RefreshOnce fetches every resource concurrently and stores the valid ones.
// The returned error joins the failures of all resources.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	log := logger.WithComponent("refresh")
	page := r.Page()
	log.Debugf("refresh started (page %d)", page)

	var (
		g    errgroup.Group
		errs [3]error
	)
	g.Go(func() error {
		errs[0] = r.refreshSites(ctx, page)
		return errs[0]
	})
	g.Go(func() error {
		errs[1] = r.refreshClients(ctx)
		return errs[1]
	})
	g.Go(func() error {
		errs[2] = r.refreshUser(ctx)
		return errs[2]
	})
	_ = g.Wait()

	r.mu.Lock()
	r.lastRefresh = time.Now()
	r.mu.Unlock()

	if err := errors.Join(errs[:]...); err != nil {
		log.Warnf("refresh finished with errors: %v", err)
		return err
	}
	log.Info("refresh completed")
	return nil
}

func (r *Refresher) refreshSites(ctx context.Context, page int) error {
	params := query.New("page", strconv.Itoa(page), "limit", strconv.Itoa(r.opts.PageSize))
	r.sites.FetchData(ctx, r.opts.SitesPath, params)

	st := r.sites.State()
	if st.HasError {
		_ = r.settle(ResourceSites, nil)
		return fmt.Errorf("%s: %s", ResourceSites, st.ErrorMessage)
	}
	if err := model.ValidateSites(st.Data); err != nil {
		return r.settle(ResourceSites, err)
	}

	total, link := len(st.Data), ""
	if st.Meta != nil {
		if st.Meta.Count > 0 {
			total = st.Meta.Count
		}
		link = st.Meta.Link
	}
	return r.settle(ResourceSites, r.store.SetSitesPage(st.Data, total, link))
}

func (r *Refresher) refreshClients(ctx context.Context) error {
	r.clients.FetchData(ctx, r.opts.ClientsPath, query.New())

	st := r.clients.State()
	if st.HasError {
		_ = r.settle(ResourceClients, nil)
		return fmt.Errorf("%s: %s", ResourceClients, st.ErrorMessage)
	}
	if err := model.ValidateClients(st.Data); err != nil {
		return r.settle(ResourceClients, err)
	}
	return r.settle(ResourceClients, r.store.SetClients(st.Data))
}

func (r *Refresher) refreshUser(ctx context.Context) error {
	r.user.FetchData(ctx, r.opts.UserPath, query.New())

	st := r.user.State()
	if st.HasError {
		_ = r.settle(ResourceUser, nil)
		return fmt.Errorf("%s: %s", ResourceUser, st.ErrorMessage)
	}
	if err := model.ValidateUser(st.Data); err != nil {
		return r.settle(ResourceUser, err)
	}
	user := st.Data
	return r.settle(ResourceUser, r.store.SetUser(&user))
}

// settle records whether a fetched payload was stored. A non-nil err marks the
// resource as failed in Status even though its fetch succeeded.
func (r *Refresher) settle(name string, err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.rejected, name)
		return nil
	}
	r.rejected[name] = err.Error()
	return fmt.Errorf("%s: %w", name, err)
}

// Status reports the fetcher state of every resource.
func (r *Refresher) Status() Status {
	resources := map[string]ResourceStatus{
		ResourceSites:   statusOf(r.sites.State()),
		ResourceClients: statusOf(r.clients.State()),
		ResourceUser:    statusOf(r.user.State()),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, msg := range r.rejected {
		rs := resources[name]
		rs.HasError = true
		rs.ErrorMessage = msg
		resources[name] = rs
	}

	return Status{
		Page:        r.page,
		LastRefresh: r.lastRefresh,
		Resources:   resources,
	}
}

func statusOf[T any](s fetch.State[T]) ResourceStatus {
	return ResourceStatus{
		IsLoading:    s.IsLoading,
		HasError:     s.HasError,
		ErrorMessage: s.ErrorMessage,
		Meta:         s.Meta,
	}
}

// Start refreshes immediately, then every interval until ctx is cancelled.
// Returns a channel that is closed when the loop has stopped.
func (r *Refresher) Start(ctx context.Context, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	logger.WithComponent("refresh").Debugf("starting refresh loop with interval: %v", interval)
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()

		_ = r.RefreshOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				logger.WithComponent("refresh").Info("refresh loop stopped")
				return
			case <-ticker.C:
				logger.WithComponent("refresh").Tracef("refresh tick")
				_ = r.RefreshOnce(ctx)
			}
		}
	}()
	return done
}
