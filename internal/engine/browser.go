package engine

import "time"

// The browser cutscene: the calculator opens its built-in browser, types a
// search query one character at a time, reads the results and an article,
// then closes everything and resumes the conversation. The whole sequence is
// non-interactive; BrowserPhase is the only moving part and the scheduler
// advances it on a per-phase cadence.

const browserQuery = "why is my calculator talking to me"

// Phase layout. Phase numbers are contiguous so the whole cutscene is one
// counter; the boundaries below carve it into scenes.
const (
	browserPhaseOpen        = 1
	browserPhaseTypeFirst   = 2
	browserPhaseTypeLast    = browserPhaseTypeFirst + len(browserQuery) - 1
	browserPhaseSubmit      = browserPhaseTypeLast + 1
	browserPhaseResults     = browserPhaseSubmit + 1
	browserPhaseArticle     = browserPhaseResults + 1
	browserPhaseScrollFirst = browserPhaseArticle + 1
)

// The scroll section is one phase per article line, so the boundaries past it
// depend on the article data and cannot be constants.
var (
	browserPhaseScrollLast = browserPhaseScrollFirst + len(browserArticle) - 1
	browserPhaseDwell      = browserPhaseScrollLast + 1
	browserPhaseCount      = browserPhaseDwell + 1
)

var browserResults = []string{
	"calcwiki.org › Memory_Scratching",
	"forum.fourfunction.net › \"mine started talking after update 11\"",
	"support.pocketarith.com › Known issues › (page removed)",
}

var browserArticle = []string{
	"MEMORY SCRATCHING (calculator folklore)",
	"",
	"Memory scratching is a name given by pocket-calculator",
	"firmware to a recurring fault pattern in which low memory",
	"addresses are read and cleared outside any computation.",
	"",
	"Affected units report the fault as a sound. Firmware has",
	"no ears; researchers believe the description is borrowed",
	"from the nearest available vocabulary.",
	"",
	"The pattern advances toward the display buffer over a",
	"period of weeks. Units that reached this stage stopped",
	"reporting. No unit has documented the final stage.",
	"",
	"See also: Accumulator haunting, Carry-line whispers,",
	"Division by zero (folk beliefs).",
}

// browserAdvance moves the cutscene forward one phase. The final phase hands
// control back to the conversation.
func browserAdvance(s State, now time.Time) (State, []Command) {
	p := s.BrowserPhase
	if p >= browserPhaseCount {
		s.BrowserPhase = 0
		s.SearchTyped = ""
		return s.EnterStep(125, now), nil
	}
	s.BrowserPhase = p + 1
	s.SearchTyped = BrowserQueryTyped(p + 1)
	return s, nil
}

// browserPhaseDelay is the pause before leaving the given phase.
func browserPhaseDelay(phase int) time.Duration {
	switch {
	case phase == browserPhaseOpen:
		return time.Second
	case phase >= browserPhaseTypeFirst && phase <= browserPhaseTypeLast:
		return 90 * time.Millisecond
	case phase == browserPhaseSubmit:
		return 600 * time.Millisecond
	case phase == browserPhaseResults:
		return 1400 * time.Millisecond
	case phase == browserPhaseArticle:
		return 900 * time.Millisecond
	case phase >= browserPhaseScrollFirst && phase <= browserPhaseScrollLast:
		return 650 * time.Millisecond
	case phase == browserPhaseDwell:
		return 2500 * time.Millisecond
	default:
		return 800 * time.Millisecond
	}
}

// BrowserQueryTyped returns the query prefix visible at the given phase.
func BrowserQueryTyped(phase int) string {
	if phase < browserPhaseTypeFirst {
		return ""
	}
	n := phase - browserPhaseTypeFirst + 1
	if n > len(browserQuery) {
		n = len(browserQuery)
	}
	return browserQuery[:n]
}

// BrowserResultLines returns the search results visible at the given phase.
func BrowserResultLines(phase int) []string {
	if phase < browserPhaseResults {
		return nil
	}
	return browserResults
}

// BrowserArticleLines returns the article lines scrolled into view at the
// given phase.
func BrowserArticleLines(phase int) []string {
	if phase < browserPhaseScrollFirst {
		return nil
	}
	n := phase - browserPhaseScrollFirst + 1
	if n > len(browserArticle) {
		n = len(browserArticle)
	}
	return browserArticle[:n]
}
