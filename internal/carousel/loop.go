package carousel

import (
	"context"
	"sync"
	"time"
)

// FrameInterval is the default time between frames, one display refresh at 60 Hz.
const FrameInterval = time.Second / 60

// Ticker delivers frame signals.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every interval.
type TickerFunc func(interval time.Duration) Ticker

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(interval time.Duration) Ticker {
	return timeTicker{time.NewTicker(interval)}
}

// Loop advances a strip once per frame until it is stopped.
type Loop struct {
	strip    *Strip
	step     float64
	interval time.Duration
	ticker   TickerFunc
	onFrame  func(State)

	stopMu  sync.Mutex
	mutex   sync.RWMutex
	state   State
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	updates chan State
}

// Option configures a Loop.
type Option func(*Loop)

// WithStep sets the number of pixels moved per frame.
func WithStep(step float64) Option {
	return func(l *Loop) { l.step = step }
}

// WithInterval sets the time between frames.
func WithInterval(interval time.Duration) Option {
	return func(l *Loop) { l.interval = interval }
}

// WithTicker replaces the frame source.
func WithTicker(fn TickerFunc) Option {
	return func(l *Loop) { l.ticker = fn }
}

// WithFrameHook registers a function called from the loop goroutine after
// every frame, paused or not.
func WithFrameHook(fn func(State)) Option {
	return func(l *Loop) { l.onFrame = fn }
}

// NewLoop creates a stopped loop over strip.
func NewLoop(strip *Strip, opts ...Option) (*Loop, error) {
	if strip == nil || strip.Len() == 0 {
		return nil, ErrEmptyStrip
	}

	l := &Loop{
		strip:    strip,
		step:     DefaultStep,
		interval: FrameInterval,
		ticker:   newTimeTicker,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		updates:  make(chan State, 1),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.step <= 0 {
		return nil, ErrInvalidStep
	}
	if l.interval <= 0 {
		return nil, ErrInvalidInterval
	}

	return l, nil
}

// Start begins the per-frame update cycle. The loop ends when Stop is called
// or ctx is cancelled; a loop ended by its context can be started again.
func (l *Loop) Start(ctx context.Context) error {
	l.stopMu.Lock()
	defer l.stopMu.Unlock()

	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.running {
		select {
		case <-l.doneCh:
			l.stopCh = make(chan struct{})
			l.doneCh = make(chan struct{})
		default:
			return ErrAlreadyRunning
		}
	}

	l.running = true
	go l.run(ctx, l.stopCh, l.doneCh)

	return nil
}

// Stop cancels the frame cycle and waits for the loop goroutine to exit.
func (l *Loop) Stop() error {
	l.stopMu.Lock()
	defer l.stopMu.Unlock()

	l.mutex.Lock()
	if !l.running {
		l.mutex.Unlock()
		return ErrNotRunning
	}
	stopCh, doneCh := l.stopCh, l.doneCh
	l.mutex.Unlock()

	select {
	case <-doneCh:
	default:
		close(stopCh)
	}
	<-doneCh

	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.running = false
	l.stopCh = make(chan struct{})
	l.doneCh = make(chan struct{})

	return nil
}

// IsRunning returns true while the loop goroutine is active.
func (l *Loop) IsRunning() bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if !l.running {
		return false
	}
	select {
	case <-l.doneCh:
		return false
	default:
		return true
	}
}

// Pause stops the strip from moving. Frames keep arriving, so Resume picks
// up at exactly the paused position.
func (l *Loop) Pause() { l.SetPaused(true) }

// Resume lets the strip move again.
func (l *Loop) Resume() { l.SetPaused(false) }

// SetPaused sets the paused flag, typically from pointer enter/leave events.
func (l *Loop) SetPaused(paused bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.state.Paused = paused
}

// State returns the current scroll state.
func (l *Loop) State() State {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.state
}

// Strip returns the strip the loop scrolls.
func (l *Loop) Strip() *Strip {
	return l.strip
}

// Updates delivers the state after each frame. Only the latest state is
// kept, so a slow reader never holds up the loop.
func (l *Loop) Updates() <-chan State {
	return l.updates
}

// Tick runs a single frame and returns the new state.
func (l *Loop) Tick() State {
	l.mutex.Lock()
	l.state = l.strip.Advance(l.state, l.step)
	st := l.state
	l.mutex.Unlock()

	l.publish(st)
	if l.onFrame != nil {
		l.onFrame(st)
	}
	return st
}

func (l *Loop) publish(st State) {
	select {
	case l.updates <- st:
		return
	default:
	}
	// Drop the stale state and replace it.
	select {
	case <-l.updates:
	default:
	}
	select {
	case l.updates <- st:
	default:
	}
}

func (l *Loop) run(ctx context.Context, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := l.ticker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C():
			l.Tick()
		}
	}
}
