package alder

// Priority orders scheduler entries. Lower values run earlier within a tick.
type Priority uint8

const (
	PriorityHighest Priority = iota // camera motion and other per-tick producers
	PriorityHigh                    // input follow-up work (drag synthesis)
	PriorityMedium                  // application logic (default)
	PriorityLow                     // deferred application work
	PriorityLowest                  // maintenance (event bus compaction)

	numPriorities
)

// Updater is a unit of per-tick work registered with a Scheduler.
type Updater interface {
	PerformUpdate(dt float64)
}

// UpdaterFunc adapts a plain function to the Updater interface.
type UpdaterFunc func(dt float64)

// PerformUpdate calls f(dt).
func (f UpdaterFunc) PerformUpdate(dt float64) { f(dt) }

type schedulerEntry struct {
	id uint64
	u  Updater
}

// Scheduler runs registered updaters once per tick, grouped into priority
// tiers. Tiers execute from PriorityHighest to PriorityLowest; within a tier,
// entries run in registration order. The same updater may be registered more
// than once and will run once per registration.
//
// Each tier is snapshotted before it runs, so an updater may add or remove
// entries freely during its own execution: removals take effect for the next
// tick, and additions to a tier that has not yet run this tick execute in the
// same tick.
//
// A Scheduler is not safe for concurrent use. All calls must come from the
// driver goroutine.
type Scheduler struct {
	tiers   [numPriorities][]schedulerEntry
	scratch []schedulerEntry
	nextID  uint64
	ticking bool
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Add registers u at the given priority and returns a removal function.
// The removal function is idempotent: calling it more than once, or after the
// scheduler no longer holds the entry, has no effect.
//
// Add panics if u is nil or the priority is out of range.
func (s *Scheduler) Add(u Updater, priority Priority) func() {
	if u == nil {
		panic("alder: cannot add nil updater to scheduler")
	}
	if priority >= numPriorities {
		panic("alder: invalid scheduler priority")
	}
	s.nextID++
	id := s.nextID
	s.tiers[priority] = append(s.tiers[priority], schedulerEntry{id: id, u: u})
	return func() {
		s.remove(priority, id)
	}
}

func (s *Scheduler) remove(priority Priority, id uint64) {
	tier := s.tiers[priority]
	for i := range tier {
		if tier[i].id == id {
			copy(tier[i:], tier[i+1:])
			tier[len(tier)-1] = schedulerEntry{}
			s.tiers[priority] = tier[:len(tier)-1]
			return
		}
	}
}

// Tick runs every registered updater once, in tier order. dt is the elapsed
// time in seconds since the previous tick.
//
// A panicking updater does not abort the tick: the panic is recovered, a
// warning is printed to stderr, and the entry stays registered. Callers that
// want a failing updater gone must remove it themselves.
//
// Re-entrant ticks are caller errors. If an updater calls Tick, the nested
// call prints a warning and returns without running anything.
func (s *Scheduler) Tick(dt float64) {
	if s.ticking {
		warnf("scheduler: re-entrant Tick ignored")
		return
	}
	s.ticking = true
	defer func() { s.ticking = false }()

	for p := range s.tiers {
		s.scratch = append(s.scratch[:0], s.tiers[p]...)
		for i := range s.scratch {
			runUpdater(s.scratch[i].u, dt)
		}
	}
}

func runUpdater(u Updater, dt float64) {
	defer func() {
		if r := recover(); r != nil {
			warnf("scheduler: updater panicked: %v", r)
		}
	}()
	u.PerformUpdate(dt)
}

// Len reports the total number of registered entries across all tiers.
func (s *Scheduler) Len() int {
	n := 0
	for p := range s.tiers {
		n += len(s.tiers[p])
	}
	return n
}
