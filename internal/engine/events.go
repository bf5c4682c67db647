package engine

import (
	"fmt"
	"time"
)

// Events are the inputs to the reducer: button presses, minigame gestures
// and clock ticks. Commands are the side effects the reducer requests; the
// runtime is the only place that executes them.

// Event is the input to Apply.
type Event interface {
	eventMarker()
}

// Tick is emitted by the runtime at a fixed cadence. It drives the typing
// reveal, timer expiry and the auto-progression scheduler.
type Tick struct {
	Now time.Time
}

func (Tick) eventMarker() {}

// ButtonPress is a raw calculator pad press.
type ButtonPress struct {
	Label string
	At    time.Time
}

func (ButtonPress) eventMarker() {}

// CellTap toggles a word-game grid cell in the selection set.
type CellTap struct {
	Row, Col int
	At       time.Time
}

func (CellTap) eventMarker() {}

// WordConfirm submits the current word-game selection for validation.
type WordConfirm struct {
	At time.Time
}

func (WordConfirm) eventMarker() {}

// ChaosPick selects one of the floating chaos letters by index.
type ChaosPick struct {
	Index int
	At    time.Time
}

func (ChaosPick) eventMarker() {}

// ScramblePick places the scramble letter at Index into the next open slot.
type ScramblePick struct {
	Index int
	At    time.Time
}

func (ScramblePick) eventMarker() {}

// TermsAccept closes the terms sheet and persists acceptance.
type TermsAccept struct {
	At time.Time
}

func (TermsAccept) eventMarker() {}

// Command represents an external side effect requested by a transition.
type Command interface {
	commandMarker()
	String() string
}

// CmdPersist upserts one key of the durable snapshot. Fire-and-forget,
// no transactional grouping.
type CmdPersist struct {
	Key   string
	Value string
}

func (CmdPersist) commandMarker() {}
func (c CmdPersist) String() string {
	return fmt.Sprintf("CmdPersist(%s=%s)", c.Key, c.Value)
}

// CmdVibrate plays a haptic pulse.
type CmdVibrate struct {
	Duration  time.Duration
	Intensity float64 // 0..1
}

func (CmdVibrate) commandMarker() {}
func (c CmdVibrate) String() string {
	return fmt.Sprintf("CmdVibrate(%s,%.2f)", c.Duration, c.Intensity)
}

// CmdNotify schedules a one-shot local notification.
type CmdNotify struct {
	Delay time.Duration
}

func (CmdNotify) commandMarker()   {}
func (c CmdNotify) String() string { return fmt.Sprintf("CmdNotify(%s)", c.Delay) }

// CmdCamera opens or closes the camera preview.
type CmdCamera struct {
	Open bool
}

func (CmdCamera) commandMarker()   {}
func (c CmdCamera) String() string { return fmt.Sprintf("CmdCamera(open=%v)", c.Open) }

// CmdArtifact drops the one-shot "found" text file.
type CmdArtifact struct {
	Name    string
	Content string
}

func (CmdArtifact) commandMarker()   {}
func (c CmdArtifact) String() string { return fmt.Sprintf("CmdArtifact(%s)", c.Name) }

// Persisted key space. Keys are independently overwritten; absent keys mean
// defaults. There is no schema version.
const (
	KeyStep           = "conversation_step"
	KeyInConversation = "in_conversation"
	KeyEqualsCount    = "equals_count"
	KeyMuted          = "muted"
	KeyInverted       = "inverted_colors"
	KeyMinusDamaged   = "minus_damaged"
	KeyMinusBroken    = "minus_broken"
	KeyNeedsRestart   = "needs_restart"
	KeyDarkButtons    = "dark_buttons"
	KeyScreenTimeMs   = "screen_time_ms"
	KeyCalculations   = "total_calculations"
	KeyTermsAccepted  = "terms_accepted"
)

func boolVal(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// PersistDiff compares two snapshots and emits upserts for every durable
// key whose value changed. Funnelling all persistence through this diff
// keeps writes consistent with transitions without scattering store calls.
func PersistDiff(prev, next State) []Command {
	var cmds []Command
	put := func(key, value string) {
		cmds = append(cmds, CmdPersist{Key: key, Value: value})
	}
	if prev.Step != next.Step {
		put(KeyStep, fmt.Sprint(next.Step))
	}
	if prev.InConversation != next.InConversation {
		put(KeyInConversation, boolVal(next.InConversation))
	}
	if prev.EqualsCount != next.EqualsCount {
		put(KeyEqualsCount, fmt.Sprint(next.EqualsCount))
	}
	if prev.Muted != next.Muted {
		put(KeyMuted, boolVal(next.Muted))
	}
	if prev.InvertedColors != next.InvertedColors {
		put(KeyInverted, boolVal(next.InvertedColors))
	}
	if prev.MinusDamaged != next.MinusDamaged {
		put(KeyMinusDamaged, boolVal(next.MinusDamaged))
	}
	if prev.MinusBroken != next.MinusBroken {
		put(KeyMinusBroken, boolVal(next.MinusBroken))
	}
	if prev.NeedsRestart != next.NeedsRestart {
		put(KeyNeedsRestart, boolVal(next.NeedsRestart))
	}
	if prev.JoinDark() != next.JoinDark() {
		put(KeyDarkButtons, next.JoinDark())
	}
	// Screen time accrues every tick; writing each change would hammer the
	// store, so it persists on five-second boundaries.
	if prev.ScreenTimeMs/5000 != next.ScreenTimeMs/5000 {
		put(KeyScreenTimeMs, fmt.Sprint(next.ScreenTimeMs))
	}
	if prev.Calculations != next.Calculations {
		put(KeyCalculations, fmt.Sprint(next.Calculations))
	}
	if prev.TermsAccepted != next.TermsAccepted {
		put(KeyTermsAccepted, boolVal(next.TermsAccepted))
	}
	return cmds
}
