package storage

import "sync"

// Table names used for invalidation.
const (
	TableAccounts       = "accounts"
	TableAssets         = "assets"
	TableUserSentiments = "user_sentiments"
)

// Notifier fans table-invalidation signals out to live-query subscribers.
// Every repository mutation calls Invalidate with the touched tables so that
// queries observing those tables re-run. Callbacks run synchronously on the
// invalidating goroutine and must be cheap.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]subscription
}

type subscription struct {
	tables map[string]struct{}
	fn     func()
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]subscription)}
}

// Subscribe registers fn to run whenever any of the given tables is
// invalidated. The returned function cancels the subscription; it is safe to
// call more than once.
func (n *Notifier) Subscribe(fn func(), tables ...string) (cancel func()) {
	set := make(map[string]struct{}, len(tables))
	for _, t := range tables {
		set[t] = struct{}{}
	}

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = subscription{tables: set, fn: fn}
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

// Invalidate notifies every subscriber observing at least one of tables.
func (n *Notifier) Invalidate(tables ...string) {
	n.mu.Lock()
	var fns []func()
	for _, sub := range n.subs {
		for _, t := range tables {
			if _, ok := sub.tables[t]; ok {
				fns = append(fns, sub.fn)
				break
			}
		}
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
