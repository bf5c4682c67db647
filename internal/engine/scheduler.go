package engine

import "time"

// The scheduler owns everything that happens "later": rant lines, countdown
// seconds, mole spawns, cutscene phases, the camera window. Watchers inspect
// every state transition and register pending continuations; each pending
// carries a guard that is re-checked against the live snapshot when it comes
// due, so a continuation armed against a world that has since moved on is
// silently discarded instead of fired.

// pending is one armed continuation.
type pending struct {
	fireAt time.Time
	guard  func(State) bool
	apply  func(State, time.Time) (State, []Command)
}

// watcher inspects one transition and returns continuations to arm.
type watcher func(prev, next State, now time.Time) []pending

// Scheduler holds the armed continuations. It is not safe for concurrent
// use; the runtime is its single caller.
type Scheduler struct {
	watchers []watcher
	queue    []pending
}

func NewScheduler() *Scheduler {
	return &Scheduler{watchers: defaultWatchers()}
}

// Observe feeds one transition to every watcher. The runtime calls this
// after each Apply, and Tick calls it after each fired continuation, so
// chained sequences re-arm themselves.
func (sc *Scheduler) Observe(prev, next State, now time.Time) {
	for _, w := range sc.watchers {
		sc.queue = append(sc.queue, w(prev, next, now)...)
	}
}

// Tick fires every due continuation whose guard still holds. While the terms
// sheet is open the story clock pauses: nothing fires, nothing is lost.
func (sc *Scheduler) Tick(s State, now time.Time) (State, []Command) {
	if s.TermsOpen {
		return s, nil
	}
	due := sc.queue
	sc.queue = nil
	var cmds []Command
	for _, p := range due {
		if now.Before(p.fireAt) {
			sc.queue = append(sc.queue, p)
			continue
		}
		if p.guard != nil && !p.guard(s) {
			continue
		}
		prev := s
		next, out := p.apply(s, now)
		next, post := settle(prev, next, now)
		s = next
		cmds = append(cmds, out...)
		cmds = append(cmds, post...)
		sc.Observe(prev, s, now)
	}
	return s, cmds
}

// Pending reports how many continuations are armed. Used by the console's
// status page and by tests.
func (sc *Scheduler) Pending() int { return len(sc.queue) }

// revealEndsAt is the instant the snapshot's current reveal completes.
func revealEndsAt(s State, now time.Time) time.Time {
	if !s.IsTyping {
		return now
	}
	return s.TypingStarted.Add(RevealDuration(s, s.FullMessage))
}
