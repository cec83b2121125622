package alder

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Channel pairs a value range with the setter that receives each frame's
// interpolated value.
type Channel struct {
	From, To float64
	Apply    func(float64)
}

// Animation drives up to 4 float64 values through a scheduler entry. It
// registers itself on creation and removes its entry when every channel
// finishes or Stop is called, so callers never manage per-frame updates
// themselves.
type Animation struct {
	tweens  [4]*gween.Tween
	applies [4]func(float64)
	count   int
	remove  func()

	// Done is true once the animation finished or was stopped.
	Done bool
	// OnDone runs once when every channel reaches its target. It does not
	// run after Stop.
	OnDone func()
}

// StartAnimation creates an animation over duration seconds using the given
// easing function and registers it with the scheduler at the given priority.
// Panics if no channels are given, more than 4 are given, or a channel has a
// nil Apply.
func StartAnimation(sched *Scheduler, priority Priority, duration float32, fn ease.TweenFunc, channels ...Channel) *Animation {
	if len(channels) == 0 || len(channels) > 4 {
		panic("alder: animation needs 1 to 4 channels")
	}
	a := &Animation{count: len(channels)}
	for i, ch := range channels {
		if ch.Apply == nil {
			panic("alder: animation channel has nil Apply")
		}
		a.tweens[i] = gween.New(float32(ch.From), float32(ch.To), duration, fn)
		a.applies[i] = ch.Apply
	}
	a.remove = sched.Add(UpdaterFunc(a.update), priority)
	return a
}

// update advances all channels by dt seconds and applies the values.
func (a *Animation) update(dt float64) {
	if a.Done {
		return
	}
	allDone := true
	for i := 0; i < a.count; i++ {
		val, finished := a.tweens[i].Update(float32(dt))
		a.applies[i](float64(val))
		if !finished {
			allDone = false
		}
	}
	if allDone {
		a.finish(true)
	}
}

// Stop cancels the animation and releases its scheduler entry. Values stay
// wherever the last update left them; OnDone does not run.
func (a *Animation) Stop() {
	if !a.Done {
		a.finish(false)
	}
}

func (a *Animation) finish(completed bool) {
	a.Done = true
	if a.remove != nil {
		a.remove()
		a.remove = nil
	}
	if completed && a.OnDone != nil {
		a.OnDone()
	}
}
