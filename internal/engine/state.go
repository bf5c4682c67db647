package engine

import (
	"strings"
	"time"
)

// State is the single source of truth for the whole machine: calculator
// registers, narrative position, interaction gates, timers, cosmetic flags,
// minigame sub-states and persistent counters. It is treated as an immutable
// snapshot; every producer takes a State by value and returns a replacement.
// Slices held here are never mutated in place; mutators copy first.
type State struct {
	// Calculator registers. Expression mode and traditional mode are
	// mutually exclusive: once Expression is non-empty all input appends
	// to it until cleared.
	Number1        string
	Number2        string
	Op             string
	Expression     string
	LastExpression string
	History        []string
	Display        string // last evaluated result or the Error token

	// Narrative position.
	Step            int
	InConversation  bool
	EqualsCount     int
	Message         string // revealed prefix of FullMessage
	FullMessage     string
	IsTyping        bool
	LaggyTyping     bool
	SuperFastTyping bool
	TypingStarted   time.Time

	// One-shot deferred transition, queued to fire once the current
	// message finishes revealing. PendingAutoStep < 0 means none.
	WaitingForAutoProgress bool
	PendingAutoMessage     string
	PendingAutoStep        int

	// Interaction gates. While any is set, raw digit input is narrative
	// input rather than calculator input.
	AwaitingNumber bool
	ExpectedNumber string
	AwaitingChoice bool
	ValidChoices   []string

	// Timers, absolute deadlines against wall clock.
	TimeoutUntil  time.Time
	SilentUntil   time.Time
	CameraStarted time.Time
	CameraOpen    bool
	Countdown     int // seconds remaining in an on-screen countdown, 0 = off

	// Double-press bookkeeping: the last single operator press awaiting
	// its pair within the 600 ms window.
	PendingPress   string
	PendingPressAt time.Time

	// Story mode flags.
	Muted         bool
	StoryComplete bool
	RantActive    bool
	RantStep      int
	TermsAccepted bool
	TermsOpen     bool
	NeedsRestart  bool

	// Damage / cosmetic presentation state. No branching logic of its own.
	MinusDamaged     bool
	MinusBroken      bool
	InvertedColors   bool
	DarkButtons      []string
	FlickeringButton string
	ShakeIntensity   int
	TensionLevel     int
	VibrationLevel   int
	ScreenBlackout   bool
	FlickerEffect    bool

	// Admin console.
	Console ConsoleState

	// Cutscene phase counters. 0 = idle.
	BrowserPhase int
	SearchTyped  string
	ChaosPhase   int

	// Minigame sub-states.
	Word     WordGameState
	Mole     MoleState
	Scramble ScrambleState
	Chaos    ChaosState

	// Persistent counters, monotonically increasing.
	ScreenTimeMs int64
	Calculations int

	// LastTick is the previous clock tick, used to accrue screen time.
	// Not persisted.
	LastTick time.Time
}

// DoublePressWindow is the gesture window for the accept/decline protocol:
// two presses of the same operator within this window form a double-press.
const DoublePressWindow = 600 * time.Millisecond

// ConversationThreshold is the number of raw calculator evaluations before
// the narrative activates.
const ConversationThreshold = 13

// NewState returns the fresh first-run snapshot.
func NewState() State {
	return State{
		Step:            0,
		PendingAutoStep: -1,
	}
}

// ClearEntry wipes the calculator registers but leaves narrative fields.
func (s State) ClearEntry() State {
	s.Number1 = ""
	s.Number2 = ""
	s.Op = ""
	s.Expression = ""
	s.Display = ""
	return s
}

// CurrentEntry returns the number currently being typed.
func (s State) CurrentEntry() string {
	if s.Op != "" {
		return s.Number2
	}
	return s.Number1
}

// ShowMessage starts revealing text character by character. Reveal speed
// modifiers carry over from the snapshot.
func (s State) ShowMessage(text string, now time.Time) State {
	s.FullMessage = text
	s.Message = ""
	s.IsTyping = text != ""
	s.TypingStarted = now
	return s
}

// ShowInstant sets a message with no reveal animation.
func (s State) ShowInstant(text string) State {
	s.FullMessage = text
	s.Message = text
	s.IsTyping = false
	return s
}

// QueueAuto arms the one-shot deferred transition that fires after the
// current reveal completes.
func (s State) QueueAuto(message string, step int) State {
	s.WaitingForAutoProgress = true
	s.PendingAutoMessage = message
	s.PendingAutoStep = step
	return s
}

// ClearAuto disarms any queued deferred transition.
func (s State) ClearAuto() State {
	s.WaitingForAutoProgress = false
	s.PendingAutoMessage = ""
	s.PendingAutoStep = -1
	return s
}

// EnterStep moves the program counter and applies the step's gates and
// prompt. It does not touch minigame state; designated steps initialize
// their minigames explicitly in the reducer.
func (s State) EnterStep(step int, now time.Time) State {
	s.Step = step
	s = s.ClearAuto()
	s.AwaitingNumber = false
	s.ExpectedNumber = ""
	s.AwaitingChoice = false
	s.ValidChoices = nil
	cfg, ok := Script[step]
	if !ok {
		return s
	}
	if cfg.Prompt != "" {
		s = s.ShowMessage(cfg.Prompt, now)
	}
	if cfg.ExpectedNumber != "" || cfg.AgeBranching {
		s.AwaitingNumber = true
		s.ExpectedNumber = cfg.ExpectedNumber
	}
	if len(cfg.Choices) > 0 {
		s.AwaitingChoice = true
		s.ValidChoices = append([]string(nil), cfg.Choices...)
	}
	return s
}

// WithDarkButton returns a snapshot with label added to the disabled-looking
// button set.
func (s State) WithDarkButton(label string) State {
	for _, b := range s.DarkButtons {
		if b == label {
			return s
		}
	}
	next := make([]string, 0, len(s.DarkButtons)+1)
	next = append(next, s.DarkButtons...)
	next = append(next, label)
	s.DarkButtons = next
	return s
}

// WithoutDarkButtons clears the disabled-looking set.
func (s State) WithoutDarkButtons() State {
	s.DarkButtons = nil
	return s
}

// IsButtonDark reports whether label is in the disabled-looking set.
func (s State) IsButtonDark(label string) bool {
	for _, b := range s.DarkButtons {
		if b == label {
			return true
		}
	}
	return false
}

// JoinDark renders the dark-button set for persistence.
func (s State) JoinDark() string { return strings.Join(s.DarkButtons, ",") }

// SplitDark parses the persisted dark-button list.
func SplitDark(v string) []string {
	if v == "" {
		return nil
	}
	return strings.Split(v, ",")
}

// AppendHistory records an evaluated expression, keeping the log bounded.
func (s State) AppendHistory(entry string) State {
	const maxHistory = 50
	next := make([]string, 0, len(s.History)+1)
	next = append(next, s.History...)
	next = append(next, entry)
	if len(next) > maxHistory {
		next = next[len(next)-maxHistory:]
	}
	s.History = next
	return s
}
