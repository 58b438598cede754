package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/bassista/go_sitedesk/internal/logger"
	"github.com/bassista/go_sitedesk/internal/query"
)

// Meta is the pagination info read from response headers.
type Meta struct {
	Count int    `json:"count"`
	Link  string `json:"link"`
}

// State is the observable state of a Fetcher.
// Data and Meta keep their last successful values across later failures.
type State[T any] struct {
	IsLoading    bool   `json:"isLoading"`
	HasError     bool   `json:"hasError"`
	ErrorMessage string `json:"errorMessage"`
	Data         T      `json:"data"`
	Meta         *Meta  `json:"meta"`
}

// Fetcher wraps repeated calls to one resource and exposes their outcome as State.
// Failures never escape FetchData; read State().HasError instead.
//
// Overlapping calls on the same Fetcher are sequenced: only the most recently
// started call may settle the state, earlier ones are discarded when they finish.
type Fetcher[T any] struct {
	client *Client

	mu      sync.Mutex
	state   State[T]
	seq     uint64
	subs    map[int]func(State[T])
	nextSub int
}

// New creates an idle Fetcher bound to client.
func New[T any](client *Client) *Fetcher[T] {
	return &Fetcher[T]{client: client, subs: map[int]func(State[T]){}}
}

// State returns the current state.
func (f *Fetcher[T]) State() State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Subscribe registers fn to receive every state change. fn runs on the
// goroutine that changed the state and must not call back into the Fetcher
// synchronously with a blocking fetch. The returned func unregisters fn.
func (f *Fetcher[T]) Subscribe(fn func(State[T])) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}

// FetchData requests target with params and records the outcome in the state.
// It blocks until the request settles.
func (f *Fetcher[T]) FetchData(ctx context.Context, target string, params query.Params, opts ...RequestOption) {
	id := f.begin()
	f.run(ctx, id, target, params, opts)
}

// FetchAsync marks the state loading before returning and performs the request
// on a new goroutine. The returned channel is closed once the state has settled.
func (f *Fetcher[T]) FetchAsync(ctx context.Context, target string, params query.Params, opts ...RequestOption) <-chan struct{} {
	id := f.begin()
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.run(ctx, id, target, params, opts)
	}()
	return done
}

func (f *Fetcher[T]) begin() uint64 {
	f.mu.Lock()
	f.seq++
	id := f.seq
	f.state.IsLoading = true
	snap, subs := f.state, f.subscribers()
	f.mu.Unlock()

	notify(subs, snap)
	return id
}

func (f *Fetcher[T]) run(ctx context.Context, id uint64, target string, params query.Params, opts []RequestOption) {
	var (
		data   T
		header http.Header
		err    error
	)
	// settle runs on every exit, panics in the transport included
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch %s: panic: %v", target, r)
		}
		f.settle(id, target, data, header, err)
	}()

	data, header, err = get[T](ctx, f.client, target, params, opts)
}

func (f *Fetcher[T]) settle(id uint64, target string, data T, header http.Header, err error) {
	log := logger.WithComponent("fetch")

	f.mu.Lock()
	if id != f.seq {
		f.mu.Unlock()
		log.Debugf("discarding stale result for %s (call %d superseded)", target, id)
		return
	}

	f.state.IsLoading = false
	if err != nil {
		f.state.HasError = true
		f.state.ErrorMessage = MessageOf(err)
	} else {
		f.state.HasError = false
		f.state.ErrorMessage = ""
		f.state.Data = data
		f.state.Meta = &Meta{
			Count: parseCount(header.Get("X-Total-Count")),
			Link:  header.Get("Link"),
		}
	}
	snap, subs := f.state, f.subscribers()
	f.mu.Unlock()

	if err != nil {
		log.Warnf("fetch %s failed: %v", target, err)
	}
	notify(subs, snap)
}

// subscribers must be called with f.mu held.
func (f *Fetcher[T]) subscribers() []func(State[T]) {
	if len(f.subs) == 0 {
		return nil
	}
	out := make([]func(State[T]), 0, len(f.subs))
	for i := 0; i < f.nextSub; i++ {
		if fn, ok := f.subs[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify[T any](subs []func(State[T]), s State[T]) {
	for _, fn := range subs {
		fn(s)
	}
}

// parseCount reads the leading decimal integer of v, ignoring leading spaces
// and any trailing garbage. Missing, unparsable or negative values give 0.
func parseCount(v string) int {
	i := 0
	for i < len(v) && (v[i] == ' ' || v[i] == '\t') {
		i++
	}
	if i < len(v) && v[i] == '+' {
		i++
	}
	j := i
	for j < len(v) && v[j] >= '0' && v[j] <= '9' {
		j++
	}
	n, err := strconv.Atoi(v[i:j])
	if err != nil {
		return 0
	}
	return n
}
