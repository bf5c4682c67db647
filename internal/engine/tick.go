package engine

import "time"

// applyTick advances the continuous per-tick mechanics: typing reveal,
// screen-time accrual, double-press window expiry and the cosmetic chaos
// rotation. One-shot delayed work lives in the scheduler instead.
func applyTick(s State, now time.Time) (State, []Command) {
	if !s.LastTick.IsZero() && now.After(s.LastTick) {
		s.ScreenTimeMs += now.Sub(s.LastTick).Milliseconds()
	}
	s.LastTick = now

	s = RevealAt(s, now)

	if s.PendingPress != "" && now.Sub(s.PendingPressAt) > DoublePressWindow {
		s.PendingPress = ""
		s.PendingPressAt = time.Time{}
	}

	if s.Chaos.Active {
		s = chaosRotate(s)
	}
	return s, nil
}
