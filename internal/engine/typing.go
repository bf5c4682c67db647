package engine

import "time"

// Typing adapter: turns FullMessage into an incrementally revealed Message.
// The revealed prefix is a pure function of elapsed time and message length,
// so replaying the same snapshot at the same instant yields the same text.

const (
	typingInterval          = 45 * time.Millisecond
	typingIntervalLaggy     = 150 * time.Millisecond
	typingIntervalSuperFast = 12 * time.Millisecond
)

func typingStride(s State) time.Duration {
	switch {
	case s.SuperFastTyping:
		return typingIntervalSuperFast
	case s.LaggyTyping:
		return typingIntervalLaggy
	default:
		return typingInterval
	}
}

// RevealAt advances the revealed prefix for the given instant. Downstream
// consumers read only Message; when the reveal completes IsTyping drops,
// which is what the auto-progression watchers key on.
func RevealAt(s State, now time.Time) State {
	if !s.IsTyping {
		return s
	}
	runes := []rune(s.FullMessage)
	elapsed := now.Sub(s.TypingStarted)
	if elapsed < 0 {
		elapsed = 0
	}
	n := int(elapsed / typingStride(s))
	if n >= len(runes) {
		s.Message = s.FullMessage
		s.IsTyping = false
		return s
	}
	s.Message = string(runes[:n])
	return s
}

// RevealDuration reports how long the full reveal of text takes for the
// snapshot's active speed modifier.
func RevealDuration(s State, text string) time.Duration {
	return time.Duration(len([]rune(text))) * typingStride(s)
}
