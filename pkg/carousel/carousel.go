// Package carousel implements the auto-advancing image gallery controller.
//
// The gallery advances one image per interval while running. Any manual
// navigation pauses auto-advance and (re)arms a cooldown; when the cooldown
// expires the gallery resumes with a fresh interval. An empty gallery is
// inert: it never schedules anything.
package carousel

import (
	"time"

	"github.com/vanderheijden86/mahar/pkg/timer"
)

const (
	// DefaultInterval is the auto-advance period.
	DefaultInterval = 5 * time.Second
	// DefaultCooldown is how long manual navigation pauses auto-advance.
	DefaultCooldown = 3 * time.Second
)

// State is a snapshot of the gallery.
type State struct {
	Index  int
	Total  int
	Paused bool
}

// Option configures a Gallery.
type Option func(*Gallery)

// WithInterval sets the auto-advance period.
func WithInterval(d time.Duration) Option {
	return func(g *Gallery) {
		if d > 0 {
			g.interval = d
		}
	}
}

// WithCooldown sets the pause after manual navigation.
func WithCooldown(d time.Duration) Option {
	return func(g *Gallery) {
		if d > 0 {
			g.cooldown = d
		}
	}
}

// WithOnChange registers a callback invoked after every transition.
func WithOnChange(fn func(State)) Option {
	return func(g *Gallery) {
		g.onChange = fn
	}
}

// Gallery is the carousel controller. It is not safe for concurrent use;
// drive it from a single event loop (see timer.Dispatched).
type Gallery struct {
	items    []string
	current  int
	paused   bool
	running  bool
	interval time.Duration
	cooldown time.Duration
	onChange func(State)

	tick   *timer.Slot
	resume *timer.Slot
}

// New creates a gallery over items. The slice is copied.
func New(items []string, clock timer.Clock, opts ...Option) *Gallery {
	g := &Gallery{
		items:    append([]string(nil), items...),
		interval: DefaultInterval,
		cooldown: DefaultCooldown,
		onChange: func(State) {},
		tick:     timer.NewSlot(clock),
		resume:   timer.NewSlot(clock),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Start begins auto-advance. It is a no-op for an empty gallery.
func (g *Gallery) Start() {
	if len(g.items) == 0 || g.running {
		return
	}
	g.running = true
	if g.paused {
		g.resume.Schedule(g.cooldown, g.unpause)
		return
	}
	g.scheduleTick()
}

// Stop cancels all pending timers. The gallery can be started again.
func (g *Gallery) Stop() {
	g.running = false
	g.tick.Cancel()
	g.resume.Cancel()
}

// Len returns the number of images.
func (g *Gallery) Len() int {
	return len(g.items)
}

// Inert reports whether the gallery has nothing to show.
func (g *Gallery) Inert() bool {
	return len(g.items) == 0
}

// Index returns the current image index.
func (g *Gallery) Index() int {
	return g.current
}

// Current returns the current image reference.
func (g *Gallery) Current() (string, bool) {
	if len(g.items) == 0 {
		return "", false
	}
	return g.items[g.current], true
}

// Paused reports whether auto-advance is paused by manual navigation.
func (g *Gallery) Paused() bool {
	return g.paused
}

// State returns a snapshot.
func (g *Gallery) State() State {
	return State{Index: g.current, Total: len(g.items), Paused: g.paused}
}

// GoTo jumps to image i. Out-of-range indexes wrap modulo the image count.
func (g *Gallery) GoTo(i int) {
	if len(g.items) == 0 {
		return
	}
	g.current = wrap(i, len(g.items))
	g.pause()
}

// Next moves one image forward, wrapping to the first.
func (g *Gallery) Next() {
	if len(g.items) == 0 {
		return
	}
	g.current = wrap(g.current+1, len(g.items))
	g.pause()
}

// Previous moves one image back, wrapping to the last.
func (g *Gallery) Previous() {
	if len(g.items) == 0 {
		return
	}
	g.current = wrap(g.current-1, len(g.items))
	g.pause()
}

func (g *Gallery) advance() {
	if g.paused || len(g.items) == 0 {
		return
	}
	g.current = wrap(g.current+1, len(g.items))
	g.scheduleTick()
	g.onChange(g.State())
}

func (g *Gallery) pause() {
	g.paused = true
	g.tick.Cancel()
	if g.running {
		g.resume.Schedule(g.cooldown, g.unpause)
	}
	g.onChange(g.State())
}

func (g *Gallery) unpause() {
	g.paused = false
	if g.running {
		g.scheduleTick()
	}
	g.onChange(g.State())
}

func (g *Gallery) scheduleTick() {
	g.tick.Schedule(g.interval, g.advance)
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
