package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/bassista/go_sitedesk/internal/model"
)

// ErrDuplicateSiteID is returned by SetSites when two sites share an id.
var ErrDuplicateSiteID = errors.New("duplicate site id")

// Snapshot is the full content of the store at one point in time.
// Nil fields have never been set.
type Snapshot struct {
	Sites      []model.Site   `json:"sites"`
	TotalCount *int           `json:"totalCount"`
	Link       string         `json:"link,omitempty"`
	Clients    []model.Client `json:"clients"`
	User       *model.User    `json:"user"`
}

// Store is the shared cache of entities fetched by independent views.
// Mutators replace whole fields; derived views are recomputed on every read.
type Store struct {
	// writeMu orders mutations together with their notifications
	writeMu sync.Mutex
	mu      sync.RWMutex
	data    Snapshot

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// New creates an empty store.
func New() *Store {
	return &Store{subs: map[int]func(Snapshot){}}
}

// Sites returns the current sites, or nil if never set.
// Elements share nested maps and slices with the store and must not be modified.
func (s *Store) Sites() []model.Site {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.Sites == nil {
		return nil
	}
	out := make([]model.Site, len(s.data.Sites))
	copy(out, s.data.Sites)
	return out
}

// TotalCount returns the count set alongside the current sites.
func (s *Store) TotalCount() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.TotalCount == nil {
		return 0, false
	}
	return *s.data.TotalCount, true
}

// SitesLink returns the upstream Link header stored with the current sites.
func (s *Store) SitesLink() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Link
}

// Clients returns the current clients, or nil if never set.
func (s *Store) Clients() []model.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.Clients == nil {
		return nil
	}
	out := make([]model.Client, len(s.data.Clients))
	copy(out, s.data.Clients)
	return out
}

// User returns the session user.
func (s *Store) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.User == nil {
		return model.User{}, false
	}
	return *s.data.User, true
}

// SiteByID indexes the current sites by id. It never returns nil.
func (s *Store) SiteByID() map[string]model.Site {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]model.Site, len(s.data.Sites))
	for _, site := range s.data.Sites {
		out[site.ID] = site
	}
	return out
}

// ClientOptions lists clients as title/value pairs in client order.
func (s *Store) ClientOptions() []model.Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Option, 0, len(s.data.Clients))
	for _, c := range s.data.Clients {
		out = append(out, model.Option{Title: c.GivenName, Value: c.ID})
	}
	return out
}

// TagOptions concatenates the tags of every client in client order.
// Duplicates are kept.
func (s *Store) TagOptions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []string{}
	for _, c := range s.data.Clients {
		out = append(out, c.Tags...)
	}
	return out
}

// Snapshot returns a deep copy of the store content.
func (s *Store) Snapshot() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneJSON(s.data)
}

// SetSites replaces sites and totalCount together and clears the page link.
// On ErrDuplicateSiteID nothing changes.
func (s *Store) SetSites(sites []model.Site, totalCount int) error {
	return s.SetSitesPage(sites, totalCount, "")
}

// SetSitesPage replaces sites, totalCount and the upstream page link together.
// On ErrDuplicateSiteID nothing changes.
func (s *Store) SetSitesPage(sites []model.Site, totalCount int, link string) error {
	seen := make(map[string]struct{}, len(sites))
	for _, site := range sites {
		if _, ok := seen[site.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateSiteID, site.ID)
		}
		seen[site.ID] = struct{}{}
	}

	cloned, err := cloneJSON(sites)
	if err != nil {
		return err
	}
	if cloned == nil {
		cloned = []model.Site{}
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.data.Sites = cloned
	s.data.TotalCount = &totalCount
	s.data.Link = link
	view := s.data
	s.mu.Unlock()

	s.notify(view)
	return nil
}

// SetClients replaces clients.
func (s *Store) SetClients(clients []model.Client) error {
	cloned, err := cloneJSON(clients)
	if err != nil {
		return err
	}
	if cloned == nil {
		cloned = []model.Client{}
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.data.Clients = cloned
	view := s.data
	s.mu.Unlock()

	s.notify(view)
	return nil
}

// SetUser replaces the session user. A nil user clears it.
func (s *Store) SetUser(user *model.User) error {
	var stored *model.User
	if user != nil {
		u := *user
		stored = &u
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.data.User = stored
	view := s.data
	s.mu.Unlock()

	s.notify(view)
	return nil
}

// Subscribe calls fn after every mutation with the new content, in mutation order.
// The snapshot passed to fn shares memory with the store and must not be modified.
// fn may read the store but must not call a mutator.
// The returned func unregisters fn.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(view Snapshot) {
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(view)
	}
}

// cloneJSON deep-copies v to avoid shared slices and maps between store and callers.
func cloneJSON[T any](v T) (T, error) {
	var out T
	bytes, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(bytes, &out); err != nil {
		return out, err
	}
	return out, nil
}
