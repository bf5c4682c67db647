package engine

// The script table maps every narrative step to its immutable StepConfig.
// Steps are looked up read-only; nothing here mutates at runtime.

// StepKind tags how a step gates input. Special-cased steps carry an
// explicit kind instead of being matched by bare numeric checks.
type StepKind int

const (
	// StepSequential waits for a plain accept/decline double-press.
	StepSequential StepKind = iota
	// StepChoice waits for a number from ValidChoices plus accept.
	StepChoice
	// StepNumber waits for a specific numeric answer plus accept.
	StepNumber
	// StepMinigame waits for accept to hand control to a minigame.
	StepMinigame
	// StepConsole waits for a numeric service code plus accept.
	StepConsole
)

// Minigame identifies which controller a StepMinigame starts.
type Minigame int

const (
	GameNone Minigame = iota
	GameWord
	GameMole
	GameScramble
	GameChaos
)

// ChoiceOutcome is the per-choice response for a StepChoice.
type ChoiceOutcome struct {
	Message string
	Next    int
	// Optional second message chained after the first finishes revealing.
	AutoMessage string
	AutoStep    int
}

// StepConfig is the immutable per-step record.
type StepConfig struct {
	Kind          StepKind
	Prompt        string
	Success       string
	Decline       string
	NextOnSuccess int // -1 when unset
	NextOnDecline int // -1 when unset

	ExpectedNumber string
	WrongNumber    string
	WrongMinus     string
	AgeBranching   bool
	TimeoutMinutes int

	Choices        []string
	ChoiceOutcomes map[string]ChoiceOutcome

	Game  Minigame
	Round int

	// ChainNext marks the fixed whitelist of steps whose success message
	// must fully reveal and then auto-advance to the next step's prompt.
	// The script author wrote non-adjacent prompts there; this is an
	// explicit list, never inferred.
	ChainNext bool

	ContinueConversation bool
	RequestsCamera       bool
}

// Named sub-states living outside the dense step ranges.
const (
	StepCamera        = 191
	StepNotifyWait    = 991
	StepNotifyReturn  = 992
	StepConsoleIntro  = 111
	StepConsoleEntry  = 112
	StepMoleStart     = 96
	StepMoleRoundTwo  = 99
	StepCountdownPick = 89
	StepFightBranch   = 91
	StepFinale        = 210
)

// ConsoleServiceCode is the per-step code accepted at StepConsoleEntry.
const ConsoleServiceCode = "4815"

// SecretConsoleCode opens the admin console from anywhere when entered and
// confirmed with a plus double-press.
const SecretConsoleCode = "742900318655"

// SafeSteps is the precomputed ordered list of well-known interactive steps
// used to repair soft-locked accepts and sanitize loaded snapshots.
var SafeSteps = []int{1, 5, 8, 15, 85, StepCountdownPick, StepMoleStart, StepMoleRoundTwo, 102, StepConsoleIntro, 120, 140, 170, 200}

// NearestSafeStep returns the safe step closest to step (ties resolve to
// the lower step). An accept must never strand the user at a dead end.
func NearestSafeStep(step int) int {
	best := SafeSteps[0]
	bestDist := abs(step - best)
	for _, s := range SafeSteps[1:] {
		d := abs(step - s)
		if d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}

// IsSafeStep reports membership in the safe list.
func IsSafeStep(step int) bool {
	for _, s := range SafeSteps {
		if s == step {
			return true
		}
	}
	return false
}

// SanitizeStep repairs a loaded program counter: unknown steps and steps
// that cannot be resumed mid-sequence clamp to the nearest safe step.
func SanitizeStep(step int) int {
	cfg, ok := Script[step]
	if !ok {
		return NearestSafeStep(step)
	}
	// Camera and notification substates do not survive a restart.
	if cfg.RequestsCamera || step == StepNotifyWait {
		return NearestSafeStep(step)
	}
	return step
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
