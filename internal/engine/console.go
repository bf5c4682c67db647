package engine

import (
	"fmt"
	"time"
)

// The admin console is a small nested state machine reachable from anywhere
// via the 12-digit secret, or in-story at the console-entry step. Digits
// accumulate into a code; a plus double-press submits it. Code 88 navigates
// back, 99 exits.

// ConsolePage identifies the active console screen.
type ConsolePage int

const (
	ConsoleRoot ConsolePage = iota
	ConsoleStatus
	ConsoleFlags
	ConsoleJump
	ConsoleCounters
)

// ConsoleState is the console's slice of the snapshot.
type ConsoleState struct {
	Open   bool
	Page   ConsolePage
	Entry  string
	Notice string
}

const (
	consoleCodeBack = "88"
	consoleCodeExit = "99"
)

// openConsole resets the console to its root page.
func openConsole(s State) State {
	s.Console = ConsoleState{Open: true, Page: ConsoleRoot, Notice: consoleMenu(ConsoleRoot)}
	s.Number1, s.Number2, s.Op, s.Expression = "", "", "", ""
	return s
}

func closeConsole(s State) State {
	s.Console = ConsoleState{}
	return s
}

func consoleMenu(p ConsolePage) string {
	switch p {
	case ConsoleRoot:
		return "SERVICE CONSOLE\n1 status  2 flags  3 jump  4 counters\n88 back  99 exit"
	case ConsoleFlags:
		return "FLAGS\n1 mute  2 invert  3 minus  4 clear dark\n88 back  99 exit"
	case ConsoleJump:
		return "JUMP\nenter step number\n88 back  99 exit"
	case ConsoleCounters:
		return "COUNTERS\n1 zero calculations  2 zero screen time\n88 back  99 exit"
	}
	return ""
}

// consoleSubmit interprets an accumulated code against the console grammar.
func consoleSubmit(s State, code string, now time.Time) State {
	c := s.Console
	c.Entry = ""
	if code == consoleCodeExit {
		return closeConsole(s)
	}
	if code == consoleCodeBack {
		if c.Page == ConsoleRoot {
			return closeConsole(s)
		}
		c.Page = ConsoleRoot
		c.Notice = consoleMenu(ConsoleRoot)
		s.Console = c
		return s
	}
	switch c.Page {
	case ConsoleRoot:
		switch code {
		case "1":
			c.Page = ConsoleStatus
			c.Notice = fmt.Sprintf("STATUS\nstep %d  conv %v  muted %v\ncalcs %d  screen %dms\n88 back  99 exit",
				s.Step, s.InConversation, s.Muted, s.Calculations, s.ScreenTimeMs)
		case "2":
			c.Page = ConsoleFlags
			c.Notice = consoleMenu(ConsoleFlags)
		case "3":
			c.Page = ConsoleJump
			c.Notice = consoleMenu(ConsoleJump)
		case "4":
			c.Page = ConsoleCounters
			c.Notice = consoleMenu(ConsoleCounters)
		default:
			c.Notice = "unknown code\n" + consoleMenu(ConsoleRoot)
		}
	case ConsoleStatus:
		c.Notice = "88 back  99 exit"
	case ConsoleFlags:
		switch code {
		case "1":
			s.Muted = !s.Muted
			c.Notice = fmt.Sprintf("muted=%v", s.Muted)
		case "2":
			s.InvertedColors = !s.InvertedColors
			c.Notice = fmt.Sprintf("inverted=%v", s.InvertedColors)
		case "3":
			s.MinusBroken = !s.MinusBroken
			c.Notice = fmt.Sprintf("minus_broken=%v", s.MinusBroken)
		case "4":
			s = s.WithoutDarkButtons()
			c.Notice = "dark buttons cleared"
		default:
			c.Notice = "unknown flag\n" + consoleMenu(ConsoleFlags)
		}
	case ConsoleJump:
		step, err := parseStep(code)
		if err != nil {
			c.Notice = "no such step"
			break
		}
		s.Console = ConsoleState{}
		s = s.EnterStep(step, now)
		s.InConversation = true
		return s
	case ConsoleCounters:
		switch code {
		case "1":
			s.Calculations = 0
			c.Notice = "calculations zeroed"
		case "2":
			s.ScreenTimeMs = 0
			c.Notice = "screen time zeroed"
		default:
			c.Notice = "unknown code\n" + consoleMenu(ConsoleCounters)
		}
	}
	s.Console = c
	return s
}

func parseStep(code string) (int, error) {
	var step int
	if _, err := fmt.Sscanf(code, "%d", &step); err != nil {
		return 0, err
	}
	if _, ok := Script[step]; !ok {
		return 0, fmt.Errorf("unknown step %d", step)
	}
	return step, nil
}
