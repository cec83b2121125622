package alder

import "time"

// Handler is a subscriber callback. Arguments are whatever the emit site
// passed; handlers assert the payload types they expect.
type Handler func(args ...any)

// DefaultMaintenanceBudget bounds a single Maintain pass when the caller
// passes a non-positive budget.
const DefaultMaintenanceBudget = 5 * time.Millisecond

type subscription struct {
	fn        Handler
	once      bool
	destroyed bool
}

// Emitter is a synchronous publish/subscribe bus keyed by event name.
//
// Emit delivers to handlers on the caller's stack, in subscription order.
// Unsubscribing marks the handler destroyed immediately (it will not fire
// again, even later in the emit that unsubscribed it), but the slot stays in
// the subscriber list until a Maintain pass compacts it. That keeps
// unsubscription cheap and keeps emits free of mid-iteration splices.
//
// An Emitter is not safe for concurrent use. All calls must come from the
// driver goroutine.
type Emitter[K comparable] struct {
	subs      map[K][]*subscription
	dirty     map[K]struct{}
	destroyed bool

	// Tap, when set, observes every Emit before handlers run, including
	// emits with no subscribers. Bridges use it to mirror traffic into an
	// external system.
	Tap func(event K, args []any)
}

// NewEmitter creates an empty emitter.
func NewEmitter[K comparable]() *Emitter[K] {
	return &Emitter[K]{
		subs:  make(map[K][]*subscription),
		dirty: make(map[K]struct{}),
	}
}

// On subscribes fn to event and returns an unsubscribe function. The
// unsubscribe function is idempotent and safe to call from inside fn.
// A nil fn is ignored and yields a no-op unsubscribe.
func (e *Emitter[K]) On(event K, fn Handler) func() {
	return e.subscribe(event, fn, false)
}

// Once subscribes fn to fire at most one time. The subscription is destroyed
// before fn runs, so an emit from inside fn cannot trigger it again.
func (e *Emitter[K]) Once(event K, fn Handler) func() {
	return e.subscribe(event, fn, true)
}

func (e *Emitter[K]) subscribe(event K, fn Handler, once bool) func() {
	if e.destroyed || fn == nil {
		return func() {}
	}
	sub := &subscription{fn: fn, once: once}
	e.subs[event] = append(e.subs[event], sub)
	return func() {
		if sub.destroyed {
			return
		}
		sub.destroyed = true
		sub.fn = nil
		e.markDirty(event)
	}
}

func (e *Emitter[K]) markDirty(event K) {
	if !e.destroyed {
		e.dirty[event] = struct{}{}
	}
}

// Emit delivers args to every live subscriber of event, synchronously and in
// subscription order. Handlers subscribed during the emit do not run until
// the next emit; handlers unsubscribed during the emit are skipped if they
// have not run yet.
func (e *Emitter[K]) Emit(event K, args ...any) {
	if e.destroyed {
		return
	}
	if e.Tap != nil {
		e.Tap(event, args)
	}
	list := e.subs[event]
	for i := 0; i < len(list); i++ {
		sub := list[i]
		if sub.destroyed {
			continue
		}
		fn := sub.fn
		if sub.once {
			// Destroy before invoking so a re-entrant emit from inside
			// fn cannot fire this subscription a second time.
			sub.destroyed = true
			sub.fn = nil
			e.markDirty(event)
		}
		fn(args...)
	}
}

// Off destroys every subscription for event. Like individual unsubscribes,
// the slots linger until the next Maintain pass.
func (e *Emitter[K]) Off(event K) {
	if e.destroyed {
		return
	}
	list, ok := e.subs[event]
	if !ok {
		return
	}
	for _, sub := range list {
		sub.destroyed = true
		sub.fn = nil
	}
	e.markDirty(event)
}

// Reset drops every subscription for every event immediately. Unlike Off,
// nothing is deferred: the subscriber lists and the pending compaction queue
// are released synchronously.
func (e *Emitter[K]) Reset() {
	if e.destroyed {
		return
	}
	for _, list := range e.subs {
		for _, sub := range list {
			sub.destroyed = true
			sub.fn = nil
		}
	}
	e.subs = make(map[K][]*subscription)
	e.dirty = make(map[K]struct{})
}

// Maintain compacts subscriber lists that have accumulated destroyed slots,
// stopping once budget elapses. A non-positive budget means
// DefaultMaintenanceBudget. At least one event is compacted per call when
// work is pending. It reports whether pending work remains.
//
// Drivers call this from a low-priority scheduler entry so compaction rides
// idle frame time instead of delaying emits.
func (e *Emitter[K]) Maintain(budget time.Duration) bool {
	if e.destroyed || len(e.dirty) == 0 {
		return false
	}
	if budget <= 0 {
		budget = DefaultMaintenanceBudget
	}
	deadline := time.Now().Add(budget)
	for event := range e.dirty {
		e.compact(event)
		delete(e.dirty, event)
		if time.Now().After(deadline) {
			break
		}
	}
	return len(e.dirty) > 0
}

func (e *Emitter[K]) compact(event K) {
	list := e.subs[event]
	live := 0
	for _, sub := range list {
		if !sub.destroyed {
			live++
		}
	}
	if live == 0 {
		delete(e.subs, event)
		return
	}
	// A fresh slice, not an in-place splice: an emit interrupted by a
	// handler that calls Maintain keeps iterating its own snapshot.
	kept := make([]*subscription, 0, live)
	for _, sub := range list {
		if !sub.destroyed {
			kept = append(kept, sub)
		}
	}
	e.subs[event] = kept
}

// NumHandlers reports the number of live subscriptions for event. Destroyed
// slots awaiting compaction are not counted.
func (e *Emitter[K]) NumHandlers(event K) int {
	n := 0
	for _, sub := range e.subs[event] {
		if !sub.destroyed {
			n++
		}
	}
	return n
}

// Destroy permanently shuts the emitter down. Every subscription is dropped
// and all further calls become no-ops. Destroy is idempotent.
func (e *Emitter[K]) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	for _, list := range e.subs {
		for _, sub := range list {
			sub.destroyed = true
			sub.fn = nil
		}
	}
	e.subs = nil
	e.dirty = nil
	e.Tap = nil
}
