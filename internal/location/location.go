// Package location holds the console's current path and search parameters,
// the single source of truth for every view's filter, sort and page state.
package location

import (
	"net/url"
	"sync"

	"github.com/five82/storefront/internal/query"
)

// Snapshot is a copy of the location at a point in time.
type Snapshot struct {
	Path   string
	Values url.Values
	// Navigations counts every Navigate call since startup.
	Navigations int
}

// Listener receives the new location after each navigation.
type Listener func(Snapshot)

// Location coordinates navigation and change notification.
type Location struct {
	mu          sync.RWMutex
	path        string
	values      url.Values
	navigations int

	notifyMu  sync.Mutex
	listeners map[int]Listener
	order     []int
	nextID    int
}

// New returns a Location at path with no parameters.
func New(path string) *Location {
	return &Location{path: path, values: url.Values{}, listeners: map[int]Listener{}}
}

// Current returns a copy of the location.
func (l *Location) Current() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Snapshot{Path: l.path, Values: query.Clone(l.values), Navigations: l.navigations}
}

// Values returns a copy of the current search parameters.
func (l *Location) Values() url.Values {
	return l.Current().Values
}

// Navigate replaces path and parameters and notifies listeners in
// subscription order. An empty path keeps the current one.
func (l *Location) Navigate(path string, values url.Values) {
	l.mu.Lock()
	if path != "" {
		l.path = path
	}
	l.values = query.Clone(values)
	l.navigations++
	snap := Snapshot{Path: l.path, Values: query.Clone(l.values), Navigations: l.navigations}
	l.mu.Unlock()

	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()
	for _, id := range l.order {
		if fn, ok := l.listeners[id]; ok {
			fn(Snapshot{Path: snap.Path, Values: query.Clone(snap.Values), Navigations: snap.Navigations})
		}
	}
}

// SetParams navigates to the current path with new parameters.
func (l *Location) SetParams(values url.Values) {
	l.Navigate("", values)
}

// Subscribe registers fn and returns a function that removes it. Listeners
// run on the navigating goroutine and must not navigate themselves.
func (l *Location) Subscribe(fn Listener) func() {
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	l.order = append(l.order, id)

	return func() {
		l.notifyMu.Lock()
		defer l.notifyMu.Unlock()
		delete(l.listeners, id)
		for i, v := range l.order {
			if v == id {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	}
}
