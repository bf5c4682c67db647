package engine

import (
	"strings"
	"time"
)

// Apply is the conversation state machine: it interprets one event against
// the current snapshot and returns the replacement snapshot plus requested
// side effects. It never performs I/O and never blocks.
func Apply(s State, ev Event) (State, []Command) {
	prev := s
	var cmds []Command
	switch e := ev.(type) {
	case Tick:
		s, cmds = applyTick(s, e.Now)
	case ButtonPress:
		s, cmds = applyButton(s, e.Label, e.At)
	case CellTap:
		s = toggleCell(s, e.Row, e.Col)
	case WordConfirm:
		s = applyWordConfirm(s, e.At)
	case ChaosPick:
		s = chaosPick(s, e.Index, e.At)
	case ScramblePick:
		s = scramblePick(s, e.Index, e.At)
	case TermsAccept:
		if s.TermsOpen {
			s.TermsOpen = false
			s.TermsAccepted = true
			s = s.EnterStep(21, e.At)
		}
	}
	var post []Command
	s, post = settle(prev, s, ev.(timestamped).when())
	return s, append(cmds, post...)
}

// settle runs the post-transition bookkeeping shared by Apply and the
// scheduler: step-entry hooks and the persistence diff.
func settle(prev, next State, now time.Time) (State, []Command) {
	var cmds []Command
	if next.Step != prev.Step {
		var entry []Command
		next, entry = applyStepEntry(next, now)
		cmds = append(cmds, entry...)
	}
	cmds = append(cmds, PersistDiff(prev, next)...)
	return next, cmds
}

type timestamped interface{ when() time.Time }

func (e Tick) when() time.Time         { return e.Now }
func (e ButtonPress) when() time.Time  { return e.At }
func (e CellTap) when() time.Time      { return e.At }
func (e WordConfirm) when() time.Time  { return e.At }
func (e ChaosPick) when() time.Time    { return e.At }
func (e ScramblePick) when() time.Time { return e.At }
func (e TermsAccept) when() time.Time  { return e.At }

// applyButton resolves one pad press. Dispatch order matters: many substates
// can be simultaneously true, and the first matching gate wins.
func applyButton(s State, label string, now time.Time) (State, []Command) {
	// 1. Narrative-disabled shortcuts.
	if s.RantActive {
		return s, nil // full lockout
	}
	if s.StoryComplete {
		return calcButton(s, label, now), nil
	}
	if s.TermsOpen {
		return s, nil // the sheet has its own accept control
	}

	// 2. Console-open capture.
	if s.Console.Open {
		return consoleButton(s, label, now), nil
	}

	// 3. Universal cheat-code detection, from anywhere.
	if label == BtnPlus && s.CurrentEntry() == SecretConsoleCode {
		var fired bool
		s, fired = registerPress(s, label, now)
		if fired {
			return openConsole(s), nil
		}
		return s, nil
	}

	cfg, hasCfg := Script[s.Step]

	// 4. Step-specific hard gates.
	if hasCfg && s.InConversation {
		switch cfg.Kind {
		case StepConsole:
			return consoleEntryStep(s, cfg, label, now)
		case StepMinigame:
			if !minigameRunning(s) {
				return minigameGate(s, cfg, label, now)
			}
		}
	}

	// 5. Mute passthrough.
	if s.Muted {
		return calcButton(s, label, now), nil
	}

	// 6. Hardware-damage gate.
	if s.MinusBroken && label == BtnMinus {
		return s, nil
	}

	// 7. Active-minigame capture: whack-a-mole claims raw presses.
	if s.Mole.Active {
		return molePress(s, label, now), nil
	}

	// 8. Timed lockouts with a double-= escape after expiry.
	if locked, handled := timedLockout(&s, label, now); locked {
		if handled {
			return s, nil
		}
		return calcButton(s, label, now), nil
	}

	// 9. General narrative dispatch.
	if s.InConversation && hasCfg {
		return narrativeButton(s, cfg, label, now)
	}

	// 10. Plain calculator.
	return calcButton(s, label, now), nil
}

// registerPress implements the 600 ms same-operator double-press protocol.
// The second identical press within the window fires and clears the marker;
// anything else becomes the new pending single press.
func registerPress(s State, label string, now time.Time) (State, bool) {
	if s.PendingPress == label && now.Sub(s.PendingPressAt) <= DoublePressWindow {
		s.PendingPress = ""
		s.PendingPressAt = time.Time{}
		return s, true
	}
	s.PendingPress = label
	s.PendingPressAt = now
	return s, false
}

func minigameRunning(s State) bool {
	return s.Mole.Active || s.Word.Active || s.Scramble.Active || s.Chaos.Active
}

// consoleButton feeds the open console: digits accumulate, a plus
// double-press submits, DEL and C edit the entry.
func consoleButton(s State, label string, now time.Time) State {
	switch {
	case IsDigit(label):
		c := s.Console
		if len(c.Entry) < 6 {
			c.Entry += label
		}
		s.Console = c
	case label == BtnDelete:
		c := s.Console
		if c.Entry != "" {
			c.Entry = c.Entry[:len(c.Entry)-1]
		}
		s.Console = c
	case label == BtnClear:
		c := s.Console
		c.Entry = ""
		s.Console = c
	case label == BtnPlus:
		var fired bool
		s, fired = registerPress(s, label, now)
		if fired && s.Console.Entry != "" {
			s = consoleSubmit(s, s.Console.Entry, now)
		}
	}
	return s
}

// consoleEntryStep is the in-story service-code gate.
func consoleEntryStep(s State, cfg StepConfig, label string, now time.Time) (State, []Command) {
	switch {
	case IsDigit(label):
		s.Number1 = appendDigit(s.Number1, label)
	case label == BtnDelete:
		s = calcDelete(s)
	case label == BtnClear:
		s = s.ClearEntry()
	case label == BtnPlus:
		var fired bool
		s, fired = registerPress(s, label, now)
		if !fired {
			return s, nil
		}
		if s.Number1 == cfg.ExpectedNumber {
			s.Number1 = ""
			s = s.ShowInstant(cfg.Success)
			s = openConsole(s)
			s.Step = 113 // console exit resumes here
			return s, nil
		}
		s.Number1 = ""
		s = s.ShowMessage(cfg.WrongNumber, now)
	}
	return s, nil
}

// minigameGate waits for the confirm double-press, then hands control to
// the configured controller.
func minigameGate(s State, cfg StepConfig, label string, now time.Time) (State, []Command) {
	if label != BtnPlus {
		// The gates ignore everything but the confirm gesture.
		if IsOperator(label) {
			s, _ = registerPress(s, label, now)
		}
		return s, nil
	}
	var fired bool
	s, fired = registerPress(s, label, now)
	if !fired {
		return s, nil
	}
	if cfg.Success != "" {
		s = s.ShowInstant(cfg.Success)
	}
	seed := uint64(now.UnixNano())
	switch cfg.Game {
	case GameMole:
		s = startMoleRound(s, cfg.Round, seed)
	case GameWord:
		s = startWordGame(s, wordQuestionForStep(s.Step), seed)
	case GameScramble:
		s = startScramble(s, seed)
	case GameChaos:
		s = startChaos(s, seed)
	}
	return s, nil
}

func wordQuestionForStep(step int) WordQuestion {
	switch step {
	case 104:
		return QuestionColor
	case 106:
		return QuestionSeason
	case 108:
		return QuestionCuisine
	default:
		return QuestionMood
	}
}

// timedLockout reports whether a silent-treatment or timeout window is in
// force. While locked, narrative input is swallowed but raw calculator use
// still works; a double-= after the deadline resumes the conversation.
func timedLockout(s *State, label string, now time.Time) (locked, handled bool) {
	deadline := s.TimeoutUntil
	silent := false
	if deadline.IsZero() && !s.SilentUntil.IsZero() {
		deadline = s.SilentUntil
		silent = true
	}
	if deadline.IsZero() {
		return false, false
	}
	if label == BtnEquals {
		next, fired := registerPress(*s, label, now)
		*s = next
		if fired && now.After(deadline) {
			if silent {
				s.SilentUntil = time.Time{}
				cfg := Script[s.Step]
				if cfg.NextOnSuccess >= 0 {
					*s = s.EnterStep(cfg.NextOnSuccess, now)
				}
			} else {
				s.TimeoutUntil = time.Time{}
				*s = s.EnterStep(s.Step, now)
			}
			return true, true
		}
		// A single = inside the window still works as a calculator key.
		return true, false
	}
	if IsDigit(label) || IsOperator(label) || label == BtnClear || label == BtnDelete || label == BtnPercent || label == BtnParens {
		return true, false
	}
	return true, true
}

// narrativeButton is the general conversation dispatch: digits feed the
// gated entry, a plus double-press accepts, a minus double-press declines.
func narrativeButton(s State, cfg StepConfig, label string, now time.Time) (State, []Command) {
	switch {
	case IsDigit(label) || label == ".":
		if s.AwaitingNumber || s.AwaitingChoice {
			// Starting a fresh narrative number clears calculator leftovers.
			if s.Display != "" {
				s.Display = ""
				s.Op = ""
				s.Number2 = ""
				s.Number1 = ""
			}
			s.Number1 = appendDigit(s.Number1, label)
			return s, nil
		}
		return calcButton(s, label, now), nil

	case label == BtnPlus:
		var fired bool
		s, fired = registerPress(s, label, now)
		if !fired {
			return s, nil
		}
		return narrativeAccept(s, cfg, now)

	case label == BtnMinus:
		if cfg.WrongMinus != "" && s.MinusDamaged {
			return s.ShowMessage(cfg.WrongMinus, now), nil
		}
		var fired bool
		s, fired = registerPress(s, label, now)
		if !fired {
			if s.Step == 22 {
				// The script asks for a single gentle press here.
				return stepSuccess(s, cfg, now)
			}
			return s, nil
		}
		return narrativeDecline(s, cfg, now)

	case IsOperator(label):
		s, _ = registerPress(s, label, now)
		return s, nil

	case label == BtnClear:
		s.Number1 = ""
		return s, nil

	case label == BtnDelete:
		if s.Number1 != "" {
			s.Number1 = s.Number1[:len(s.Number1)-1]
		}
		return s, nil

	case label == BtnEquals:
		if !s.AwaitingNumber && !s.AwaitingChoice {
			return calcButton(s, label, now), nil
		}
		return s, nil
	}
	return s, nil
}

// narrativeAccept resolves the confirm gesture per step kind.
func narrativeAccept(s State, cfg StepConfig, now time.Time) (State, []Command) {
	if cfg.RequestsCamera && !s.CameraOpen {
		s.CameraOpen = true
		s.CameraStarted = now
		return s, []Command{CmdCamera{Open: true}}
	}
	switch cfg.Kind {
	case StepChoice:
		return resolveChoice(s, cfg, now)
	case StepNumber:
		return resolveNumber(s, cfg, now)
	default:
		return stepSuccess(s, cfg, now)
	}
}

// resolveChoice matches the entered number against the valid choices and
// applies the per-choice outcome.
func resolveChoice(s State, cfg StepConfig, now time.Time) (State, []Command) {
	entry := strings.TrimSuffix(s.Number1, ".")
	s.Number1 = ""
	valid := false
	for _, c := range cfg.Choices {
		if c == entry {
			valid = true
			break
		}
	}
	if !valid {
		return s.ShowMessage(cfg.WrongNumber, now), nil
	}
	out := cfg.ChoiceOutcomes[entry]
	if s.Step == StepCountdownPick {
		s.Countdown = 0
	}
	s.AwaitingChoice = false
	s.ValidChoices = nil
	s = s.ShowMessage(out.Message, now)
	if out.AutoMessage != "" {
		s = s.QueueAuto(out.AutoMessage, out.AutoStep)
	} else {
		s = s.QueueAuto("", out.Next)
	}
	return s, nil
}

// resolveNumber compares the entered number against the expected answer,
// with the age question branching into buckets instead.
func resolveNumber(s State, cfg StepConfig, now time.Time) (State, []Command) {
	entry := strings.TrimSuffix(s.Number1, ".")
	s.Number1 = ""
	if cfg.AgeBranching {
		return resolveAge(s, cfg, entry, now)
	}
	if entry != cfg.ExpectedNumber {
		return s.ShowMessage(cfg.WrongNumber, now), nil
	}
	s.AwaitingNumber = false
	s.ExpectedNumber = ""
	return stepSuccess(s, cfg, now)
}

func resolveAge(s State, cfg StepConfig, entry string, now time.Time) (State, []Command) {
	age, ok := parseWholeNumber(entry)
	if !ok {
		s = s.ShowMessage(cfg.WrongNumber, now)
		if cfg.TimeoutMinutes > 0 {
			s.TimeoutUntil = now.Add(time.Duration(cfg.TimeoutMinutes) * time.Minute)
		}
		return s, nil
	}
	s.AwaitingNumber = false
	switch {
	case age <= ageGoodbyeMax:
		// Terminal branch: the narrative exits entirely.
		s.InConversation = false
		return s.ShowMessage(ageGoodbyeText, now), nil
	case age >= ageLiarMin:
		s.AwaitingNumber = true
		return s.ShowMessage(ageLiarText, now), nil
	case age <= ageTeenMax:
		s = s.ShowMessage(ageTeenText, now)
		return s.QueueAuto("", 7), nil
	default:
		s = s.ShowMessage(ageAdultText, now)
		return s.QueueAuto("", 7), nil
	}
}

func parseWholeNumber(entry string) (int, bool) {
	if entry == "" {
		return 0, false
	}
	n := 0
	for _, r := range entry {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
		if n > 1000 {
			return n, true
		}
	}
	return n, true
}

// stepSuccess applies the accept path: success message and next step. When
// the script author left a gap, redirect to the nearest safe interactive
// step instead of stranding the player.
func stepSuccess(s State, cfg StepConfig, now time.Time) (State, []Command) {
	if cfg.Success == "" && cfg.NextOnSuccess < 0 {
		return s.EnterStep(NearestSafeStep(s.Step), now), nil
	}
	if cfg.Success == "" {
		return s.EnterStep(cfg.NextOnSuccess, now), nil
	}
	s = s.ShowMessage(cfg.Success, now)
	if cfg.ChainNext && cfg.NextOnSuccess >= 0 {
		return s.QueueAuto("", cfg.NextOnSuccess), nil
	}
	if cfg.NextOnSuccess >= 0 {
		// Transition message shown; the program counter still moves.
		s.Step = cfg.NextOnSuccess
		s, cmds := applyStepGates(s, cfg.NextOnSuccess)
		return s, cmds
	}
	return s, nil
}

// applyStepGates arms the gates of a step whose prompt is deliberately not
// re-shown (the success message doubles as the scene text).
func applyStepGates(s State, step int) (State, []Command) {
	cfg, ok := Script[step]
	if !ok {
		return s, nil
	}
	s.AwaitingNumber = cfg.ExpectedNumber != "" || cfg.AgeBranching
	s.ExpectedNumber = cfg.ExpectedNumber
	s.AwaitingChoice = len(cfg.Choices) > 0
	if s.AwaitingChoice {
		s.ValidChoices = append([]string(nil), cfg.Choices...)
	}
	return s, nil
}

// narrativeDecline applies the decline path.
func narrativeDecline(s State, cfg StepConfig, now time.Time) (State, []Command) {
	if cfg.Decline == "" && cfg.NextOnDecline < 0 {
		return s, nil
	}
	if cfg.Decline != "" {
		s = s.ShowMessage(cfg.Decline, now)
	}
	if cfg.NextOnDecline >= 0 {
		if cfg.Decline != "" {
			s = s.QueueAuto("", cfg.NextOnDecline)
		} else {
			s = s.EnterStep(cfg.NextOnDecline, now)
		}
	}
	return s, nil
}

// applyWordConfirm validates the word-game selection and, on success, hands
// control back to the conversation at the round's dialogue step.
func applyWordConfirm(s State, now time.Time) State {
	ret := s.Word.ReturnStep
	next, ok := confirmWord(s)
	if !ok {
		return next
	}
	return next.EnterStep(ret, now)
}

// calcButton is the ordinary calculator fallback.
func calcButton(s State, label string, now time.Time) State {
	switch {
	case IsDigit(label) || label == ".":
		return calcDigit(s, label)
	case IsOperator(label):
		return calcOperator(s, label)
	case label == BtnEquals:
		before := s.Calculations
		s = calcEquals(s)
		if s.Calculations > before && !s.InConversation && !s.StoryComplete {
			s.EqualsCount++
			if s.EqualsCount >= ConversationThreshold {
				s.InConversation = true
				s = s.EnterStep(0, now)
			}
		}
		return s
	case label == BtnClear:
		return s.ClearEntry()
	case label == BtnDelete:
		return calcDelete(s)
	case label == BtnPercent:
		return calcPercent(s)
	case label == BtnParens:
		return calcParens(s)
	}
	return s
}
