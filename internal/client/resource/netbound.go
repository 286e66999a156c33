package resource

import (
	"context"
	"sync"

	"github.com/apolyakov/reelmark/internal/client/livedata"
	"github.com/apolyakov/reelmark/internal/client/remote"
	"github.com/apolyakov/reelmark/internal/logging"
)

// NetworkBoundOptions parameterizes one reconciliation: how to read the
// local store, whether the local value warrants a remote fetch, how to fetch,
// and how to write the fetched result back locally.
type NetworkBoundOptions[L, R any] struct {
	// LoadLocal opens a live query over the local store. It is invoked for
	// the initial fetch decision and again for the terminal forwarding
	// subscription.
	LoadLocal func() *livedata.LiveData[L]

	// ShouldFetch decides, from the first local emission, whether to refresh
	// from the network.
	ShouldFetch func(local L) bool

	// Fetch performs the remote call, reporting exactly one terminal outcome.
	Fetch func(ctx context.Context) *livedata.LiveData[remote.Response[R]]

	// SaveResult persists a successful fetch into the local store.
	SaveResult func(ctx context.Context, body R) error

	// Process optionally transforms the raw response before SaveResult.
	// Defaults to extracting the body.
	Process func(resp remote.Response[R]) R
}

// NewNetworkBound starts one reconciliation and returns its envelope stream.
//
// The stream emits LOADING(zero) immediately, decides on the first local
// emission, and then either forwards local values as SUCCESS, or fetches
// first: LOADING(local) during the call, then SUCCESS after write-back, or
// ERROR(local, message) when the fetch fails. Local data is never discarded
// on failure. Structurally equal consecutive envelopes are suppressed.
func NewNetworkBound[L, R any](ctx context.Context, log logging.Logger, opts NetworkBoundOptions[L, R]) *livedata.LiveData[Resource[L]] {
	nb := &netBound[L, R]{
		ctx:  ctx,
		log:  log,
		opts: opts,
		out:  livedata.New[Resource[L]](),
	}

	var zero L
	nb.emit(Loading(zero))

	// The decision subscription is dropped before any fetch is issued so the
	// write-back cannot feed back into it.
	observeOnce(opts.LoadLocal(), nb.decide)

	return nb.out
}

type netBound[L, R any] struct {
	ctx  context.Context
	log  logging.Logger
	opts NetworkBoundOptions[L, R]
	out  *livedata.LiveData[Resource[L]]

	mu      sync.Mutex
	last    Resource[L]
	hasLast bool
}

func (nb *netBound[L, R]) decide(local L) {
	if !nb.opts.ShouldFetch(local) {
		nb.forwardLocal(StatusSuccess, "")
		return
	}

	nb.emit(Loading(local))

	observeOnce(nb.opts.Fetch(nb.ctx), func(resp remote.Response[R]) {
		if !resp.OK() {
			nb.log.Warn(nb.ctx, "remote fetch failed", "code", resp.Code, "error", resp.Message)
			nb.forwardLocal(StatusError, resp.Message)
			return
		}

		body := resp.Body
		if nb.opts.Process != nil {
			body = nb.opts.Process(resp)
		}
		if err := nb.opts.SaveResult(nb.ctx, body); err != nil {
			nb.log.Error(nb.ctx, "write-back failed", "error", err)
			nb.forwardLocal(StatusError, err.Error())
			return
		}

		nb.forwardLocal(StatusSuccess, "")
	})
}

// forwardLocal re-subscribes to the local live query and forwards every
// emission under the given terminal status until the stream loses its last
// observer.
func (nb *netBound[L, R]) forwardLocal(status Status, msg string) {
	local := nb.opts.LoadLocal()
	cancel := local.Observe(func(v L) {
		if status == StatusError {
			nb.emit(Error(v, msg))
			return
		}
		nb.emit(Success(v))
	})
	nb.out.SetOnInactive(cancel)
}

func (nb *netBound[L, R]) emit(r Resource[L]) {
	nb.mu.Lock()
	if nb.hasLast && nb.last.Equal(r) {
		nb.mu.Unlock()
		return
	}
	nb.last = r
	nb.hasLast = true
	nb.mu.Unlock()

	nb.out.Set(r)
}

// observeOnce delivers the first emission of d to fn, guaranteeing the
// subscription is cancelled before fn runs.
func observeOnce[X any](d *livedata.LiveData[X], fn func(X)) {
	var mu sync.Mutex
	var fired bool
	var first X
	var cancel func()

	c := d.Observe(func(v X) {
		mu.Lock()
		if fired {
			mu.Unlock()
			return
		}
		fired = true
		first = v
		cf := cancel
		mu.Unlock()

		// cf is nil when this is the synchronous replay during Observe;
		// that case is completed below once the cancel handle exists.
		if cf != nil {
			cf()
			fn(v)
		}
	})

	mu.Lock()
	if fired && cancel == nil {
		mu.Unlock()
		c()
		fn(first)
		return
	}
	cancel = c
	mu.Unlock()
}
