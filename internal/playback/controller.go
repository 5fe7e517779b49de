// Package playback owns the single audio output resource used for
// synthesized narration. At most one clip plays at a time: starting a
// new clip unconditionally stops the current one first.
package playback

import (
	"fmt"
	"sync"

	"github.com/jesstingley17/luna-ai/internal/audio"
)

// Driver starts playback of decoded clips on some output resource.
type Driver interface {
	Start(clip audio.Clip) (Handle, error)
}

// Handle is one playing clip.
type Handle interface {
	// Done is closed when the clip ends naturally or is stopped.
	Done() <-chan struct{}

	// Stop halts playback. Stopping a finished clip is a no-op.
	Stop()
}

// Event marks a playback state transition, for observers.
type Event int

const (
	EventStarted Event = iota
	EventEnded
)

// Controller serializes access to the playback resource.
type Controller struct {
	driver Driver
	notify func(Event)

	mu      sync.Mutex
	current Handle
	gen     int
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotify registers an observer for start/end transitions. Events
// for one clip are ordered: its end is always observable before the
// next clip's start.
func WithNotify(fn func(Event)) Option {
	return func(c *Controller) { c.notify = fn }
}

// New creates a Controller over the given driver.
func New(driver Driver, opts ...Option) *Controller {
	c := &Controller{driver: driver}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Play stops whatever is playing, then starts the clip.
func (c *Controller) Play(clip audio.Clip) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()

	h, err := c.driver.Start(clip)
	if err != nil {
		return fmt.Errorf("start playback: %w", err)
	}

	c.current = h
	c.gen++
	gen := c.gen
	c.emit(EventStarted)

	go c.watch(h, gen)
	return nil
}

// PlayNarration decodes a base64 narration payload and plays it.
func (c *Controller) PlayNarration(encoded string) error {
	clip, err := audio.DecodeNarration(encoded)
	if err != nil {
		return fmt.Errorf("decode narration: %w", err)
	}
	return c.Play(clip)
}

// Stop halts the current clip. Stopping when nothing is playing is a
// no-op; IsPlaying reports false as soon as Stop returns.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// IsPlaying reports whether a clip is currently active.
func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != nil
}

// watch waits for natural completion. The generation counter prevents a
// stale watcher from ending a clip that replaced its own.
func (c *Controller) watch(h Handle, gen int) {
	<-h.Done()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen == gen && c.current != nil {
		c.current = nil
		c.emit(EventEnded)
	}
}

func (c *Controller) stopLocked() {
	if c.current == nil {
		return
	}
	c.current.Stop()
	c.current = nil
	c.emit(EventEnded)
}

func (c *Controller) emit(e Event) {
	if c.notify != nil {
		c.notify(e)
	}
}
