// Package ioloop implements the I/O event loop described in
// SPEC_FULL.md §4.8: it multiplexes readable interfaces, hands frames
// to the dispatcher, and services transmit queues. Spec §5 describes
// the original as "single-threaded cooperative" with exactly one task
// touching shared state; this is rendered in idiomatic Go as one
// reader goroutine per socket (pure I/O, no shared state) feeding a
// single dispatcher goroutine that is the only thing which ever reads
// or writes index.Tables or face.Table, and the only producer onto a
// per-interface outbound queue (each queue is drained by that
// interface's own writer goroutine). golang.org/x/sync/errgroup
// supervises the reader/writer
// goroutines' lifetimes against the halt signal, mirroring how the
// teacher's own (indirect) golang.org/x/sync dependency is meant to be
// used for exactly this kind of goroutine-group lifecycle.
package ioloop

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/repodigest/repod/internal/face"
	"github.com/repodigest/repod/internal/metrics"
	"github.com/repodigest/repod/internal/repolog"
	"github.com/repodigest/repod/internal/resolve"
	"github.com/repodigest/repod/internal/transport"
	"github.com/repodigest/repod/internal/wire"
)

// readErrorBackoff bounds how often a recoverable read error can spin
// before readLoop retries, so a persistently failing socket logs and
// burns CPU at a fixed, bounded rate instead of busy-looping.
const readErrorBackoff = 500 * time.Millisecond

// outboundQueueSize bounds how many replies can be queued per
// interface before the writer goroutine drains them (spec §5: a
// bounded per-interface maximum; here applied to the queue depth
// rather than a byte budget).
const outboundQueueSize = 256

// Loop is the server's event loop: a set of transports, a face table,
// and a resolver, wired together per spec §4.8.
type Loop struct {
	Transports []transport.Interface
	Faces      *face.Table
	Resolver   *resolve.Resolver
	Stats      *metrics.Counters

	frames chan face.Frame
	queues map[int]chan face.Outbound // by transport.Index()
}

// New returns a Loop ready to Run.
func New(transports []transport.Interface, resolver *resolve.Resolver) *Loop {
	l := &Loop{
		Transports: transports,
		Faces:      face.NewTable(),
		Resolver:   resolver,
		Stats:      resolver.Stats,
		frames:     make(chan face.Frame, outboundQueueSize),
		queues:     make(map[int]chan face.Outbound, len(transports)),
	}
	for _, t := range transports {
		l.queues[t.Index()] = make(chan face.Outbound, outboundQueueSize)
	}
	return l
}

// Run drives the event loop until ctx is cancelled (the halt flag in
// spec §5 terms). On cancellation every transport is closed, which
// unblocks any ReadFrom still waiting for a datagram; no new work is
// dispatched once ctx is done, and Run returns once all reader/writer
// goroutines have unwound.
func (l *Loop) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, t := range l.Transports {
		t := t
		g.Go(func() error { return l.readLoop(gctx, t) })
		g.Go(func() error { return l.writeLoop(gctx, t) })
	}
	g.Go(func() error { return l.dispatchLoop(gctx) })

	// A blocking ReadFrom can't observe ctx cancellation on its own;
	// closing the socket is what actually unblocks it, mirroring how
	// a real select-based loop would stop waiting on a closed fd.
	g.Go(func() error {
		<-ctx.Done()
		for _, t := range l.Transports {
			_ = t.Close()
		}
		return nil
	})

	return g.Wait()
}

// readLoop is a per-socket goroutine: pure I/O, it never touches
// shared state directly, only ever producing onto l.frames. A
// transport that can never succeed (transport.ErrUnsupported, e.g. an
// Ethernet device with no AF_PACKET socket behind it) is dropped after
// logging once rather than retried; any other read error is logged
// and retried after readErrorBackoff so a persistently failing socket
// can't pin a CPU core or flood the log.
func (l *Loop) readLoop(ctx context.Context, t transport.Interface) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		payload, peerAddr, err := t.ReadFrom()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, transport.ErrUnsupported) {
				repolog.Error.Printf("ioloop: %s does not support reading, dropping interface: %v", t.Name(), err)
				return nil
			}
			repolog.Error.Printf("ioloop: socket error on %s: %v", t.Name(), err)
			l.Stats.Inc(metrics.DropsDiskError) // socket errors share the "recoverable, logged" bucket
			select {
			case <-time.After(readErrorBackoff):
			case <-ctx.Done():
				return nil
			}
			continue
		}
		frame := face.Frame{
			Face:    face.ID{InterfaceIndex: t.Index(), PeerAddr: peerAddr},
			Payload: payload,
		}
		select {
		case l.frames <- frame:
		case <-ctx.Done():
			return nil
		}
	}
}

// dispatchLoop is the single goroutine that owns every piece of
// mutable state: the face table and (transitively, via l.Resolver) the
// index tables. Ordering: frames are processed in arrival order across
// the shared channel; a reply is appended to its originating
// interface's queue in resolution order (spec §5).
func (l *Loop) dispatchLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case frame := <-l.frames:
			l.dispatch(frame)
		}
	}
}

// dispatch iterates the parser facade over one datagram's payload,
// resolving each concatenated Interest in turn (spec §4.8 step 4, §8
// scenario 6) and enqueuing replies on the originating face's queue.
func (l *Loop) dispatch(frame face.Frame) {
	id, _ := l.Faces.Lookup(frame.Face)

	offset := 0
	for offset < len(frame.Payload) {
		pkt, next, err := wire.Parse(frame.Payload, offset)
		if err != nil {
			repolog.Debug.Printf("ioloop: parse failure from %s at offset %d: %v", id, offset, err)
			return // trailing bytes are discarded on parse failure
		}
		if pkt.Type == wire.Interest {
			if reply, ok := l.Resolver.Resolve(pkt); ok {
				l.enqueue(id, reply)
			}
		}
		if next <= offset {
			return // defensive: codec must advance the offset
		}
		offset = next
	}
}

func (l *Loop) enqueue(id face.ID, data []byte) {
	q, ok := l.queues[id.InterfaceIndex]
	if !ok {
		return
	}
	select {
	case q <- face.Outbound{Face: id, Data: data}:
	default:
		repolog.Error.Printf("ioloop: outbound queue full for interface %d, dropping reply", id.InterfaceIndex)
	}
}

// writeLoop drains one outbound buffer at a time for t, per spec §4.8
// step 5. Once t reports transport.ErrUnsupported it never becomes
// writable again, so further replies are dropped silently instead of
// logging the same failure for every queued reply.
func (l *Loop) writeLoop(ctx context.Context, t transport.Interface) error {
	q := l.queues[t.Index()]
	unsupported := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case out := <-q:
			if unsupported {
				continue
			}
			if err := t.WriteTo(out.Data, out.Face.PeerAddr); err != nil {
				if errors.Is(err, transport.ErrUnsupported) {
					repolog.Error.Printf("ioloop: %s does not support writing, dropping its replies: %v", t.Name(), err)
					unsupported = true
					continue
				}
				repolog.Error.Printf("ioloop: write error on %s: %v", t.Name(), err)
			}
		}
	}
}
