package tnc

import (
	"net"
	"strconv"
	"sync"

	"github.com/rs/xid"

	"github.com/vk7ntk/ax25kiss/ax25"
	"github.com/vk7ntk/ax25kiss/internal/logging"
)

var tncLog = logging.For("tnc")

// subscriberQueueLen bounds each subscription's channel. A subscriber
// that falls this far behind is treated as disconnected and dropped —
// the background reader never blocks on a slow consumer. See DESIGN.md
// for why this, rather than an unbounded queue, resolves the spec's
// open question about backpressure.
const subscriberQueueLen = 256

// Result is delivered to every subscription: exactly one of Frame or
// Err is meaningful, mirroring the shared Result<Ax25Frame, SharedError>
// of spec.md §4.8.
type Result struct {
	Frame ax25.Frame
	Err   error
}

// Tnc is a shareable handle wrapping one Transport: it runs a
// background receive loop and multicasts every received frame (or a
// terminal error) to any number of subscribers created with Incoming.
// The zero value is not usable; construct with Open or New.
type Tnc struct {
	transport Transport
	metrics   *Metrics

	mu          sync.Mutex
	subscribers map[xid.ID]chan Result
	done        bool

	readerWG sync.WaitGroup
}

// Option configures optional ambient behavior of a Tnc.
type Option func(*Tnc)

// WithMetrics registers Prometheus counters/gauges for this handle. See
// metrics.go; this is entirely optional ambient instrumentation, never
// required for correct operation.
func WithMetrics(m *Metrics) Option {
	return func(t *Tnc) { t.metrics = m }
}

// Open dials or binds the transport named by addr and returns a running
// Tnc handle.
func Open(addr Address, opts ...Option) (*Tnc, error) {
	switch addr.Kind {
	case KindTCPKISS:
		var hostport = net.JoinHostPort(addr.Host, strconv.Itoa(int(addr.Port)))

		var transport, err = DialTCPKISS(hostport)
		if err != nil {
			return nil, err
		}

		return New(transport, opts...), nil

	case KindLinuxInterface:
		return openLinuxInterfaceByCallsign(addr.Callsign, opts...)

	default:
		return nil, &AddressError{Kind: ErrUnknownType, Msg: "unrecognised tnc address kind"}
	}
}

// New wraps an already-constructed Transport in a Tnc handle and starts
// its background reader.
func New(transport Transport, opts ...Option) *Tnc {
	var t = &Tnc{
		transport:   transport,
		subscribers: make(map[xid.ID]chan Result),
	}

	for _, opt := range opts {
		opt(t)
	}

	t.readerWG.Add(1)
	go t.readLoop()

	return t
}

// SendFrame encodes frame and forwards it to the transport.
func (t *Tnc) SendFrame(frame ax25.Frame) error {
	var err = t.transport.SendFrame(frame.ToBytes())
	if err == nil && t.metrics != nil {
		t.metrics.framesSent.Inc()
	}

	return err
}

// Subscription is one subscriber's view of a Tnc's received frames.
// Every subscription observes the same sequence of frames, in the same
// order they arrived on the wire.
type Subscription struct {
	id  xid.ID
	ch  chan Result
	tnc *Tnc
}

// Frames returns the channel of received frames/errors for this
// subscription. It is closed when the Tnc shuts down or this
// subscription falls too far behind and is dropped.
func (s *Subscription) Frames() <-chan Result { return s.ch }

// Close unregisters the subscription. Idempotent.
func (s *Subscription) Close() {
	s.tnc.removeSubscriber(s.id)
}

// Incoming registers a fresh subscription. It receives a copy of every
// frame delivered after registration — frames delivered before it
// registered are not replayed.
func (t *Tnc) Incoming() *Subscription {
	var id = xid.New()
	var ch = make(chan Result, subscriberQueueLen)

	t.mu.Lock()
	if t.done {
		close(ch)
	} else {
		t.subscribers[id] = ch
	}
	if t.metrics != nil {
		t.metrics.subscriberCount.Set(float64(len(t.subscribers)))
	}
	t.mu.Unlock()

	return &Subscription{id: id, ch: ch, tnc: t}
}

func (t *Tnc) removeSubscriber(id xid.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ch, ok := t.subscribers[id]; ok {
		delete(t.subscribers, id)
		close(ch)
	}

	if t.metrics != nil {
		t.metrics.subscriberCount.Set(float64(len(t.subscribers)))
	}
}

// Shutdown tears down the transport, which unblocks the background
// reader with an error; that error is broadcast to all subscribers and
// every subscription channel is then closed. Shutdown blocks until the
// reader has finished.
func (t *Tnc) Shutdown() error {
	var err = t.transport.Shutdown()
	t.readerWG.Wait()

	return err
}

func (t *Tnc) readLoop() {
	defer t.readerWG.Done()

	for {
		var raw, err = t.transport.ReceiveFrame()
		if err != nil {
			tncLog.Error("transport receive failed, terminating fan-out", "err", err)
			t.broadcast(Result{Err: err})
			t.closeAll()

			return
		}

		var frame, parseErr = ax25.FromBytes(raw)
		if parseErr != nil {
			tncLog.Debug("skipping unparseable frame", "err", parseErr)

			if t.metrics != nil {
				t.metrics.parseFailuresSkipped.Inc()
			}

			continue
		}

		if t.metrics != nil {
			t.metrics.framesReceived.Inc()
		}

		t.broadcast(Result{Frame: frame})
	}
}

// broadcast delivers result to every current subscriber. A subscriber
// whose channel is full (i.e. has stopped keeping up) is dropped rather
// than allowed to stall the whole fan-out.
func (t *Tnc) broadcast(result Result) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, ch := range t.subscribers {
		select {
		case ch <- result:
		default:
			tncLog.Warn("subscriber queue full, dropping subscription", "id", id)
			delete(t.subscribers, id)
			close(ch)

			if t.metrics != nil {
				t.metrics.subscribersEvicted.Inc()
				t.metrics.subscriberCount.Set(float64(len(t.subscribers)))
			}
		}
	}
}

func (t *Tnc) closeAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.done = true
	for id, ch := range t.subscribers {
		close(ch)
		delete(t.subscribers, id)
	}

	if t.metrics != nil {
		t.metrics.subscriberCount.Set(0)
	}
}
