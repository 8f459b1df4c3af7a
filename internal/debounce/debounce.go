// Package debounce holds keyword input and commits it to the URL only after
// a quiet window with no further edits.
package debounce

import (
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/storefront/internal/logging"
	"github.com/five82/storefront/internal/query"
)

// DefaultWindow is the quiet period before a keyword is committed.
const DefaultWindow = 700 * time.Millisecond

// Timer is a cancellable scheduled task.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler is backed by time.AfterFunc.
var RealScheduler Scheduler = realScheduler{}

// Navigator reads and writes the URL search parameters.
type Navigator interface {
	Values() url.Values
	SetParams(url.Values)
}

// Options configure a Buffer.
type Options struct {
	Window    time.Duration // zero uses DefaultWindow
	Scheduler Scheduler     // nil uses RealScheduler
	Logger    logrus.FieldLogger
}

// Buffer absorbs keystrokes and writes the keyword parameter once input
// settles. Each Set cancels the pending commit and schedules a new one.
type Buffer struct {
	nav    Navigator
	window time.Duration
	sched  Scheduler
	log    logrus.FieldLogger

	mu        sync.Mutex
	text      string
	committed string
	timer     Timer
	gen       uint64
	closed    bool
	commits   int
}

// New returns a Buffer committing to nav.
func New(nav Navigator, opts Options) *Buffer {
	window := opts.Window
	if window <= 0 {
		window = DefaultWindow
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = RealScheduler
	}
	b := &Buffer{
		nav:    nav,
		window: window,
		sched:  sched,
		log:    logging.OrDiscard(opts.Logger),
	}
	b.text = nav.Values().Get(query.ParamKeyword)
	b.committed = b.text
	return b
}

// Text returns the buffered value.
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Set buffers text and restarts the quiet window. Ignored after Close.
func (b *Buffer) Set(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.text = text
	b.reschedule()
}

// Sync replaces the buffered text with the URL's keyword without scheduling
// a commit, so external navigation (clear filters, back) shows in the input.
// The echo of the buffer's own last commit is ignored so typing that
// continued after a commit is not overwritten.
func (b *Buffer) Sync(values url.Values) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	keyword := values.Get(query.ParamKeyword)
	if keyword == b.committed {
		return
	}
	b.text = keyword
	b.committed = keyword
	b.stop()
}

// Pending reports whether a commit is scheduled.
func (b *Buffer) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.timer != nil
}

// Commits returns how many navigations the buffer has issued.
func (b *Buffer) Commits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.commits
}

// Close cancels any pending commit. A commit whose timer already fired is
// dropped as well.
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.stop()
}

func (b *Buffer) reschedule() {
	b.stop()
	b.gen++
	gen := b.gen
	b.timer = b.sched.AfterFunc(b.window, func() { b.fire(gen) })
}

func (b *Buffer) stop() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.gen++
}

func (b *Buffer) fire(gen uint64) {
	b.mu.Lock()
	if b.closed || gen != b.gen {
		b.mu.Unlock()
		return
	}
	b.timer = nil
	text := b.text
	b.mu.Unlock()

	current := b.nav.Values()
	if current.Get(query.ParamKeyword) == text {
		return
	}

	b.mu.Lock()
	if b.closed || gen != b.gen {
		b.mu.Unlock()
		return
	}
	b.commits++
	b.committed = text
	b.mu.Unlock()

	b.log.WithField("keyword", text).Debug("keyword committed")
	b.nav.SetParams(query.WithKeyword(current, text))
}
