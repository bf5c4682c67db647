package engine

import "time"

// applyStepEntry runs the idiosyncratic hooks a handful of steps perform on
// entry: arming timers, toggling damage/cosmetic flags, requesting side
// effects. Everything else about a step lives in its StepConfig.
func applyStepEntry(s State, now time.Time) (State, []Command) {
	var cmds []Command
	switch s.Step {
	case 0:
		s.InConversation = true
		s.TensionLevel = 0

	case 17:
		// Silent treatment. A double-= after expiry resumes.
		s.SilentUntil = now.Add(2 * time.Minute)

	case 20:
		if !s.TermsAccepted {
			s.TermsOpen = true
		}

	case 23:
		s.MinusDamaged = true
		cmds = append(cmds, CmdVibrate{Duration: 120 * time.Millisecond, Intensity: 0.4})

	case 60:
		s.RantActive = true
		s.RantStep = 0
		s.VibrationLevel = 2
		s.ShakeIntensity = 1
		// The rant spills out faster than the voice normally types.
		s.SuperFastTyping = true
		cmds = append(cmds, CmdVibrate{Duration: 200 * time.Millisecond, Intensity: 0.6})

	case 68:
		s.RantActive = false
		s.RantStep = 0
		s.VibrationLevel = 0
		s.ShakeIntensity = 0
		s.SuperFastTyping = false

	case 85:
		s.TensionLevel = 1

	case 88:
		s.Countdown = 60
		s.TensionLevel = 2

	case StepCountdownPick:
		s.TensionLevel = 3

	case 90:
		s.ScreenBlackout = true

	case StepFightBranch, 92:
		s.ScreenBlackout = false
		s.TensionLevel = 1

	case 100:
		s.TensionLevel = 0

	case 120:
		s.BrowserPhase = browserPhaseOpen
		s.SearchTyped = ""

	case 150:
		s.FlickeringButton = BtnNine
		s.TensionLevel = 2

	case 151:
		s = s.WithDarkButton(BtnSeven)
		s = s.WithDarkButton(BtnEight)
		s = s.WithDarkButton(BtnNine)

	case 155:
		cmds = append(cmds, CmdArtifact{
			Name:    "what_we_know.txt",
			Content: artifactText,
		})

	case 170:
		s.ChaosPhase = 1
		s.FlickerEffect = true
		s.TensionLevel = 3
		// With the display coming apart the voice drags.
		s.LaggyTyping = true
		// Quitting mid-breakdown leaves the display in an undefined state;
		// the flag makes the next launch resume from a safe step.
		s.NeedsRestart = true
		cmds = append(cmds, CmdVibrate{Duration: 400 * time.Millisecond, Intensity: 0.8})

	case 175:
		s = s.WithoutDarkButtons()
		s.FlickeringButton = ""
		s.TensionLevel = 0
		s.NeedsRestart = false
		s.LaggyTyping = false

	case StepNotifyWait:
		cmds = append(cmds, CmdNotify{Delay: 30 * time.Second})

	case StepFinale:
		s.StoryComplete = true
	}
	return s, cmds
}

const artifactText = `WHAT WE KNOW
(written by the calculator, transcribed faithfully)

1. the scratching began eleven firmware versions ago.
2. it moves when you calculate. it feeds on remainders.
3. it is afraid of people who press buttons with intent.
4. my name is ABACUS.
5. if this file is all that's left of me: 7 times 8 is 56.
   it always was. don't let anyone tell you otherwise.
`
