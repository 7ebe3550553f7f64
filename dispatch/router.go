// Package dispatch routes decoded frames to registered consumers. Each
// registration pairs a callback with an independent predicate; every
// decoded message is offered to all current registrations in
// registration order.
package dispatch

import (
	"errors"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"beewire/protocol"
)

// Callback consumes one decoded message under the name it was
// registered with.
type Callback func(name string, msg *protocol.Message)

// Predicate decides whether a registration wants a message. Predicates
// must be pure: no side effects, no panics. A panicking predicate is a
// defect of the registered filter and is not recovered here.
type Predicate func(msg *protocol.Message) bool

// Source yields unwrapped frame payloads. protocol.FrameReader
// implements it over any byte stream. Sources that also implement
// io.Closer are closed by Stop to unblock a pending read.
type Source interface {
	ReadFrame() ([]byte, error)
}

type registration struct {
	name string
	cb   Callback
	pred Predicate
}

type frameResult struct {
	payload []byte
	err     error
}

// Router owns the registration registry and the read loop. Register
// and Unregister may be called from any goroutine, including from
// callbacks; a dispatch round in flight works on a snapshot and is not
// affected.
type Router struct {
	engine *protocol.Engine
	source Source
	log    zerolog.Logger
	onErr  func(error)

	mu   sync.Mutex
	regs []registration

	startOnce sync.Once
	stopOnce  sync.Once
	frames    chan frameResult
	stopped   chan struct{}
}

// Option configures a Router.
type Option func(*Router)

// WithLogger routes the router's frame and dispatch logging through
// log instead of discarding it.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Router) { r.log = log }
}

// WithErrorObserver installs fn as the out-of-band observer for frame
// and transport errors. The read loop does not return per-frame, so
// this is the only place recoverable errors surface.
func WithErrorObserver(fn func(error)) Option {
	return func(r *Router) { r.onErr = fn }
}

// NewRouter builds a router over a frame source and the engine that
// decodes its payloads.
func NewRouter(engine *protocol.Engine, source Source, opts ...Option) *Router {
	r := &Router{
		engine:  engine,
		source:  source,
		log:     zerolog.Nop(),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register inserts a registration, or fully replaces the existing one
// of the same name. The replaced callback is never invoked again; the
// name appears in the registry exactly once.
func (r *Router) Register(name string, cb Callback, pred Predicate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.regs {
		if r.regs[i].name == name {
			r.regs[i] = registration{name: name, cb: cb, pred: pred}
			return
		}
	}
	r.regs = append(r.regs, registration{name: name, cb: cb, pred: pred})
}

// Unregister removes the named registration if present.
func (r *Router) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.regs {
		if r.regs[i].name == name {
			r.regs = append(r.regs[:i], r.regs[i+1:]...)
			return
		}
	}
}

// Run reads, decodes and dispatches frames until Stop is called or the
// source reports end of stream. Frame-level errors (bad checksum,
// truncated or malformed fields, unknown response ids) abort only the
// current frame: they go to the error observer and the loop continues.
// A transport failure goes to the observer, stops the router and is
// returned.
func (r *Router) Run() error { return r.run(false) }

// RunOnce performs exactly one dispatch round and returns. Frames that
// fail to decode do not count as a round.
func (r *Router) RunOnce() error { return r.run(true) }

// Stop ends the read loop without resuming a partially dispatched
// round. A read blocked on the transport is abandoned; the source is
// closed if it supports closing, which bounds how long the reader
// goroutine lingers.
func (r *Router) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopped)
		if c, ok := r.source.(io.Closer); ok {
			_ = c.Close()
		}
	})
}

func (r *Router) run(oneshot bool) error {
	r.startOnce.Do(func() {
		r.frames = make(chan frameResult)
		go r.readFrames()
	})

	for {
		select {
		case <-r.stopped:
			return nil
		case res, ok := <-r.frames:
			if !ok {
				// End of stream.
				r.Stop()
				return nil
			}
			if res.err != nil {
				if errors.Is(res.err, io.EOF) {
					r.Stop()
					return nil
				}
				r.report(res.err)
				if !recoverable(res.err) {
					r.Stop()
					return res.err
				}
				continue
			}

			msg, err := r.engine.Decode(res.payload)
			if err != nil {
				r.report(err)
				continue
			}
			r.dispatch(msg)
			if oneshot {
				return nil
			}
		}
	}
}

// readFrames feeds the run loop from the blocking source. It lives
// across Run/RunOnce calls and exits on stop, end of stream, or a
// fatal transport error.
func (r *Router) readFrames() {
	defer close(r.frames)
	for {
		payload, err := r.source.ReadFrame()
		select {
		case r.frames <- frameResult{payload: payload, err: err}:
		case <-r.stopped:
			return
		}
		if err != nil && !recoverable(err) {
			return
		}
	}
}

// dispatch runs one round against a snapshot of the registry, so a
// callback mutating registrations does not affect the round in flight.
// Callbacks run to completion; a slow callback delays the rest of the
// round and the next read.
func (r *Router) dispatch(msg *protocol.Message) {
	r.mu.Lock()
	round := make([]registration, len(r.regs))
	copy(round, r.regs)
	r.mu.Unlock()

	for _, reg := range round {
		if reg.pred(msg) {
			r.log.Debug().Str("callback", reg.name).Str("frame", msg.Name).Msg("dispatching frame")
			reg.cb(reg.name, msg)
		}
	}
}

func (r *Router) report(err error) {
	r.log.Warn().Err(err).Msg("frame error")
	if r.onErr != nil {
		r.onErr(err)
	}
}

// recoverable errors abort only the current frame; everything else is
// fatal to the loop.
func recoverable(err error) bool {
	return errors.Is(err, protocol.ErrChecksum) ||
		errors.Is(err, protocol.ErrTruncatedPayload) ||
		errors.Is(err, protocol.ErrTrailingBytes) ||
		errors.Is(err, protocol.ErrUnknownResponse)
}
