package engine

import (
	"strconv"
	"time"
)

// Snapshot load/save: the durable state is a flat key/value map. Loading is
// forgiving by design; a missing or garbled value falls back to its default
// rather than failing the launch.

// FromSnapshot rebuilds a State from the persisted keys. The narrative
// program counter is sanitized: steps that cannot be resumed clamp to the
// nearest safe one.
func FromSnapshot(kv map[string]string) State {
	s := NewState()
	s.InConversation = kv[KeyInConversation] == "1"
	s.EqualsCount = atoiOr(kv[KeyEqualsCount], 0)
	s.Muted = kv[KeyMuted] == "1"
	s.InvertedColors = kv[KeyInverted] == "1"
	s.MinusDamaged = kv[KeyMinusDamaged] == "1"
	s.MinusBroken = kv[KeyMinusBroken] == "1"
	s.TermsAccepted = kv[KeyTermsAccepted] == "1"
	s.DarkButtons = SplitDark(kv[KeyDarkButtons])
	s.ScreenTimeMs = atoi64Or(kv[KeyScreenTimeMs], 0)
	s.Calculations = atoiOr(kv[KeyCalculations], 0)

	step := atoiOr(kv[KeyStep], 0)
	if s.InConversation {
		if kv[KeyNeedsRestart] == "1" {
			step = NearestSafeStep(step)
		}
		s.Step = SanitizeStep(step)
	} else {
		s.Step = step
	}
	if s.Step >= StepFinale {
		s.StoryComplete = true
	}
	return s
}

// Resume re-enters the saved step so its prompt, gates and entry hooks are
// live again. Hook commands are dropped; re-vibrating or re-writing an
// artifact on launch would give the resume away. The runtime's boot
// observation arms the scheduler for any timers the hooks set.
func Resume(s State, now time.Time) State {
	if s.InConversation && !s.StoryComplete {
		s = s.EnterStep(s.Step, now)
		s, _ = applyStepEntry(s, now)
	}
	return s
}

// ToSnapshot renders the durable keys of a State. The inverse of
// FromSnapshot; PersistDiff keeps the store current incrementally, this is
// the full dump.
func ToSnapshot(s State) map[string]string {
	return map[string]string{
		KeyStep:           strconv.Itoa(s.Step),
		KeyInConversation: boolVal(s.InConversation),
		KeyEqualsCount:    strconv.Itoa(s.EqualsCount),
		KeyMuted:          boolVal(s.Muted),
		KeyInverted:       boolVal(s.InvertedColors),
		KeyMinusDamaged:   boolVal(s.MinusDamaged),
		KeyMinusBroken:    boolVal(s.MinusBroken),
		KeyNeedsRestart:   boolVal(s.NeedsRestart),
		KeyDarkButtons:    s.JoinDark(),
		KeyScreenTimeMs:   strconv.FormatInt(s.ScreenTimeMs, 10),
		KeyCalculations:   strconv.Itoa(s.Calculations),
		KeyTermsAccepted:  boolVal(s.TermsAccepted),
	}
}

func atoiOr(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func atoi64Or(v string, def int64) int64 {
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}
