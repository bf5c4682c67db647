package engine

import "time"

// The watcher table. Each watcher looks at one transition and arms the
// continuations that transition implies. Guards capture just enough of the
// triggering snapshot to recognize the world they were armed in.

const (
	autoProgressPause = 1200 * time.Millisecond
	rantLinePause     = 900 * time.Millisecond
	deadEndPause      = 2500 * time.Millisecond
	chaosPhaseGap     = 1800 * time.Millisecond
	wordFallInterval  = 350 * time.Millisecond
	cameraWindow      = 10 * time.Second
	notifyReturnDelay = 35 * time.Second
)

func defaultWatchers() []watcher {
	return []watcher{
		watchAutoProgress,
		watchDeadEnds,
		watchRant,
		watchCountdown,
		watchMole,
		watchWordFall,
		watchChaosPhases,
		watchBrowser,
		watchCamera,
		watchNotifyReturn,
	}
}

// watchAutoProgress fires the one-shot deferred transition once the current
// reveal has finished and a beat has passed.
func watchAutoProgress(prev, next State, now time.Time) []pending {
	if !next.WaitingForAutoProgress {
		return nil
	}
	if prev.WaitingForAutoProgress &&
		prev.PendingAutoStep == next.PendingAutoStep &&
		prev.FullMessage == next.FullMessage {
		return nil
	}
	full := next.FullMessage
	msg := next.PendingAutoMessage
	step := next.PendingAutoStep
	return []pending{{
		fireAt: revealEndsAt(next, now).Add(autoProgressPause),
		guard: func(s State) bool {
			return s.WaitingForAutoProgress && s.PendingAutoStep == step && s.FullMessage == full
		},
		apply: func(s State, at time.Time) (State, []Command) {
			s = s.ClearAuto()
			if msg != "" {
				s = s.ShowMessage(msg, at)
				if step >= 0 {
					// Chained: the interstitial shows, then the step follows.
					s = s.QueueAuto("", step)
				}
				return s, nil
			}
			if step >= 0 {
				return s.EnterStep(step, at), nil
			}
			return s, nil
		},
	}}
}

// watchDeadEnds routes the known terminal messages back into the story.
func watchDeadEnds(prev, next State, now time.Time) []pending {
	if prev.FullMessage == next.FullMessage {
		return nil
	}
	target, ok := deadEndRedirects[next.FullMessage]
	if !ok {
		return nil
	}
	msg := next.FullMessage
	return []pending{{
		fireAt: revealEndsAt(next, now).Add(deadEndPause),
		guard: func(s State) bool {
			return s.FullMessage == msg && !s.WaitingForAutoProgress
		},
		apply: func(s State, at time.Time) (State, []Command) {
			if s.InConversation {
				return s.EnterStep(target, at), nil
			}
			// The goodbye branch left the conversation. Reset the trigger
			// counter so a later equals streak starts the story over.
			s.EqualsCount = 0
			return s.ShowInstant(""), nil
		},
	}}
}

// watchRant plays the rant one line at a time, escalating the shake, until
// the script runs out and the calculator collects itself.
func watchRant(prev, next State, now time.Time) []pending {
	if !next.RantActive {
		return nil
	}
	if prev.RantActive && prev.RantStep == next.RantStep {
		return nil
	}
	i := next.RantStep
	return []pending{{
		fireAt: revealEndsAt(next, now).Add(rantLinePause),
		guard:  func(s State) bool { return s.RantActive && s.RantStep == i },
		apply: func(s State, at time.Time) (State, []Command) {
			if i >= len(rantLines) {
				return s.EnterStep(68, at), nil
			}
			s = s.ShowMessage(rantLines[i], at)
			s.RantStep = i + 1
			s.ShakeIntensity = 1 + i
			s.VibrationLevel = 2 + i/2
			cmd := CmdVibrate{
				Duration:  time.Duration(150+60*i) * time.Millisecond,
				Intensity: 0.5 + 0.08*float64(i),
			}
			return s, []Command{cmd}
		},
	}}
}

// countdownExpiredText is forced when the sixty seconds run out before the
// player picks.
const countdownExpiredText = "too slow. it's in the accumulator.\n\ni'm hiding us both. NOW."

// watchCountdown decrements the on-screen countdown once per second and
// forces the hide branch when it reaches zero during the decision.
func watchCountdown(prev, next State, now time.Time) []pending {
	if next.Countdown <= 0 || next.Countdown == prev.Countdown {
		return nil
	}
	c := next.Countdown
	return []pending{{
		fireAt: now.Add(time.Second),
		guard:  func(s State) bool { return s.Countdown == c },
		apply: func(s State, at time.Time) (State, []Command) {
			s.Countdown--
			if s.Countdown > 0 {
				return s, nil
			}
			if s.Step == 88 || s.Step == StepCountdownPick {
				s.AwaitingChoice = false
				s.ValidChoices = nil
				s = s.ShowMessage(countdownExpiredText, at)
				s = s.QueueAuto("", 90)
			}
			return s, nil
		},
	}}
}

// watchMole drives the whack-a-mole clock: the 3-2-1 countdown, target
// timeouts, the gap before each spawn and the delayed same-round restart
// after a loss.
func watchMole(prev, next State, now time.Time) []pending {
	var ps []pending
	m := next.Mole

	if m.Active && m.Countdown > 0 && (!prev.Mole.Active || prev.Mole.Countdown != m.Countdown) {
		c := m.Countdown
		ps = append(ps, pending{
			fireAt: now.Add(time.Second),
			guard:  func(s State) bool { return s.Mole.Active && s.Mole.Countdown == c },
			apply: func(s State, at time.Time) (State, []Command) {
				mm := s.Mole
				mm.Countdown--
				s.Mole = mm
				if mm.Countdown == 0 {
					s = moleSpawnTarget(s, at)
				}
				return s, nil
			},
		})
	}

	if m.Active && m.Target != "" && prev.Mole.TargetSeq != m.TargetSeq {
		seq := m.TargetSeq
		ps = append(ps, pending{
			fireAt: m.TargetDeadline,
			guard: func(s State) bool {
				return s.Mole.Active && s.Mole.Target != "" && s.Mole.TargetSeq == seq
			},
			apply: func(s State, at time.Time) (State, []Command) {
				s = moleTimeout(s, at)
				return s, []Command{CmdVibrate{Duration: 80 * time.Millisecond, Intensity: 0.3}}
			},
		})
	}

	if m.Active && m.Countdown == 0 && m.Target == "" && prev.Mole.Target != "" {
		seq := m.TargetSeq
		ps = append(ps, pending{
			fireAt: now.Add(moleSpawnGap(m.Round)),
			guard: func(s State) bool {
				return s.Mole.Active && s.Mole.Target == "" && s.Mole.Countdown == 0 && s.Mole.TargetSeq == seq
			},
			apply: func(s State, at time.Time) (State, []Command) {
				return moleSpawnTarget(s, at), nil
			},
		})
	}

	if !m.Active && m.Round > 0 && prev.Mole.Active {
		round := m.Round
		ps = append(ps, pending{
			fireAt: now.Add(moleRestartDelay),
			guard: func(s State) bool {
				return !s.Mole.Active && s.Mole.Round == round && !s.StoryComplete
			},
			apply: func(s State, at time.Time) (State, []Command) {
				return startMoleRound(s, round, s.Mole.Rng), nil
			},
		})
	}
	return ps
}

// watchWordFall steps the falling letter on a fixed cadence while a word
// round is live.
func watchWordFall(prev, next State, now time.Time) []pending {
	w := next.Word
	if !w.Active {
		return nil
	}
	if prev.Word.Active && prev.Word.FallRow == w.FallRow &&
		prev.Word.HasFalling == w.HasFalling && prev.Word.FallCol == w.FallCol {
		return nil
	}
	row, col, falling := w.FallRow, w.FallCol, w.HasFalling
	return []pending{{
		fireAt: now.Add(wordFallInterval),
		guard: func(s State) bool {
			return s.Word.Active && s.Word.FallRow == row &&
				s.Word.FallCol == col && s.Word.HasFalling == falling
		},
		apply: func(s State, at time.Time) (State, []Command) {
			return wordTick(s), nil
		},
	}}
}

const chaosPhaseMax = 5

// chaosPhaseLines corrupt the display as the breakdown deepens. Shown
// instantly; typing them out would imply the typist is still intact.
var chaosPhaseLines = []string{
	"i can't hold the gl#phs t0geth",
	"ev3ry+hing i5 c0m1ng apar+",
	"7 t1me5 8 i5 5ti11 56. 7 t1me5 8 i5",
	"A   B   A   C   U   S",
}

// watchChaosPhases escalates the breakdown until the reassembly puzzle
// takes over.
func watchChaosPhases(prev, next State, now time.Time) []pending {
	if next.ChaosPhase <= 0 || next.ChaosPhase == prev.ChaosPhase {
		return nil
	}
	p := next.ChaosPhase
	return []pending{{
		fireAt: revealEndsAt(next, now).Add(chaosPhaseGap),
		guard: func(s State) bool {
			return s.Step == 170 && s.ChaosPhase == p && !s.Chaos.Active
		},
		apply: func(s State, at time.Time) (State, []Command) {
			if p >= chaosPhaseMax {
				return s.EnterStep(172, at), nil
			}
			s.ChaosPhase = p + 1
			s.ShakeIntensity = p
			s = s.ShowInstant(chaosPhaseLines[p-1])
			cmd := CmdVibrate{
				Duration:  time.Duration(200+80*p) * time.Millisecond,
				Intensity: 0.5 + 0.1*float64(p),
			}
			return s, []Command{cmd}
		},
	}}
}

// watchBrowser paces the browser cutscene.
func watchBrowser(prev, next State, now time.Time) []pending {
	if next.BrowserPhase <= 0 || next.BrowserPhase == prev.BrowserPhase {
		return nil
	}
	p := next.BrowserPhase
	return []pending{{
		fireAt: revealEndsAt(next, now).Add(browserPhaseDelay(p)),
		guard:  func(s State) bool { return s.BrowserPhase == p },
		apply:  browserAdvance,
	}}
}

// watchCamera closes the ten-second camera window.
func watchCamera(prev, next State, now time.Time) []pending {
	if !next.CameraOpen || prev.CameraOpen {
		return nil
	}
	return []pending{{
		fireAt: now.Add(cameraWindow),
		guard:  func(s State) bool { return s.CameraOpen },
		apply: func(s State, at time.Time) (State, []Command) {
			s.CameraOpen = false
			s.CameraStarted = time.Time{}
			s = s.EnterStep(192, at)
			return s, []Command{CmdCamera{Open: false}}
		},
	}}
}

// watchNotifyReturn brings the story back after the scheduled reminder.
func watchNotifyReturn(prev, next State, now time.Time) []pending {
	if next.Step != StepNotifyWait || prev.Step == StepNotifyWait {
		return nil
	}
	return []pending{{
		fireAt: now.Add(notifyReturnDelay),
		guard:  func(s State) bool { return s.Step == StepNotifyWait },
		apply: func(s State, at time.Time) (State, []Command) {
			return s.EnterStep(StepNotifyReturn, at), nil
		},
	}}
}
