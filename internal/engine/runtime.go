package engine

import (
	"context"
	"log/slog"
	"time"
)

// Effects is the boundary between the pure state machine and the world.
// Every implementation must be fast or internally asynchronous; the runtime
// executes effects inline on the event loop.
type Effects interface {
	Persist(key, value string)
	Vibrate(d time.Duration, intensity float64)
	ScheduleNotification(delay time.Duration)
	OpenCamera()
	CloseCamera()
	WriteArtifact(name, content string)
}

// NopEffects discards every side effect. Useful headless and in tests.
type NopEffects struct{}

func (NopEffects) Persist(string, string)             {}
func (NopEffects) Vibrate(time.Duration, float64)     {}
func (NopEffects) ScheduleNotification(time.Duration) {}
func (NopEffects) OpenCamera()                        {}
func (NopEffects) CloseCamera()                       {}
func (NopEffects) WriteArtifact(string, string)       {}

// tickInterval is the event loop cadence. Fast enough for the typing reveal
// and the mole windows, slow enough to stay invisible in a process list.
const tickInterval = 50 * time.Millisecond

// Runtime owns the live snapshot and runs the event loop: external events
// in, snapshots out, side effects executed in order. Single goroutine; the
// snapshot channel always carries the newest state.
type Runtime struct {
	state  State
	sched  *Scheduler
	fx     Effects
	log    *slog.Logger
	events chan Event
	snaps  chan State
}

func NewRuntime(initial State, fx Effects, log *slog.Logger) *Runtime {
	if fx == nil {
		fx = NopEffects{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runtime{
		state:  initial,
		sched:  NewScheduler(),
		fx:     fx,
		log:    log,
		events: make(chan Event, 64),
		snaps:  make(chan State, 1),
	}
}

// Events is the input side: the UI sends presses and gestures here.
func (r *Runtime) Events() chan<- Event { return r.events }

// Snapshots carries the latest state after each change. Single-slot with
// replacement: a slow consumer sees the newest snapshot, never a backlog.
func (r *Runtime) Snapshots() <-chan State { return r.snaps }

// Run drives the loop until the context is canceled.
func (r *Runtime) Run(ctx context.Context) error {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	// Boot observation: a resumed snapshot can carry armed timer state
	// (countdown, rant, cutscene phases). Watchers key on transitions, so
	// feed them one from a blank state or those timers would never fire.
	r.sched.Observe(NewState(), r.state, time.Now())
	r.publish(r.state)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-r.events:
			r.step(ev, time.Now())
		case now := <-ticker.C:
			r.step(Tick{Now: now}, now)
		}
	}
}

func (r *Runtime) step(ev Event, now time.Time) {
	prev := r.state
	next, cmds := Apply(prev, ev)
	r.sched.Observe(prev, next, now)
	if _, isTick := ev.(Tick); isTick {
		var more []Command
		next, more = r.sched.Tick(next, now)
		cmds = append(cmds, more...)
	}
	r.state = next
	if next.Step != prev.Step {
		r.log.Info("step", "from", prev.Step, "to", next.Step)
	}
	for _, c := range cmds {
		r.execute(c)
	}
	r.publish(next)
}

func (r *Runtime) execute(c Command) {
	r.log.Debug("command", "cmd", c.String())
	switch cmd := c.(type) {
	case CmdPersist:
		r.fx.Persist(cmd.Key, cmd.Value)
	case CmdVibrate:
		if !r.state.Muted {
			r.fx.Vibrate(cmd.Duration, cmd.Intensity)
		}
	case CmdNotify:
		r.fx.ScheduleNotification(cmd.Delay)
	case CmdCamera:
		if cmd.Open {
			r.fx.OpenCamera()
		} else {
			r.fx.CloseCamera()
		}
	case CmdArtifact:
		r.fx.WriteArtifact(cmd.Name, cmd.Content)
	}
}

// publish replaces whatever snapshot is waiting with the newest one.
func (r *Runtime) publish(s State) {
	for {
		select {
		case r.snaps <- s:
			return
		default:
			select {
			case <-r.snaps:
			default:
			}
		}
	}
}
