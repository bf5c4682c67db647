package engine

import (
	"testing"
	"time"
)

func TestAutoProgressFiresAfterReveal(t *testing.T) {
	sc := NewScheduler()
	prev := NewState()
	s := prev
	s.InConversation = true
	s = s.ShowMessage("ok.", base)
	s = s.QueueAuto("", 1)
	sc.Observe(prev, s, base)
	if sc.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", sc.Pending())
	}

	early, _ := sc.Tick(s, base.Add(500*time.Millisecond))
	if early.Step != 0 || sc.Pending() != 1 {
		t.Fatal("fired before the reveal and the pause elapsed")
	}

	fireBy := revealEndsAt(s, base).Add(autoProgressPause + 100*time.Millisecond)
	s, _ = sc.Tick(s, fireBy)
	if s.Step != 1 {
		t.Fatalf("step = %d, want 1", s.Step)
	}
	if s.FullMessage != Script[1].Prompt {
		t.Fatalf("message = %q, want the step 1 prompt", s.FullMessage)
	}
	if s.WaitingForAutoProgress {
		t.Fatal("auto flag not cleared")
	}
}

func TestAutoProgressInterstitialChains(t *testing.T) {
	sc := NewScheduler()
	prev := NewState()
	s := prev
	s.InConversation = true
	s = s.ShowMessage("first.", base)
	s = s.QueueAuto("between.", 4)
	sc.Observe(prev, s, base)

	at := revealEndsAt(s, base).Add(autoProgressPause + 100*time.Millisecond)
	s, _ = sc.Tick(s, at)
	if s.FullMessage != "between." {
		t.Fatalf("message = %q, want the interstitial", s.FullMessage)
	}
	if !s.WaitingForAutoProgress || s.PendingAutoStep != 4 {
		t.Fatal("interstitial did not re-queue the step transition")
	}
	if sc.Pending() != 1 {
		t.Fatalf("pending = %d, want the chained continuation", sc.Pending())
	}

	at = revealEndsAt(s, at).Add(autoProgressPause + 100*time.Millisecond)
	s, _ = sc.Tick(s, at)
	if s.Step != 4 {
		t.Fatalf("step = %d, want 4", s.Step)
	}
}

func TestStaleContinuationDiscarded(t *testing.T) {
	sc := NewScheduler()
	prev := NewState()
	s := prev
	s.InConversation = true
	s = s.ShowMessage("ok.", base)
	s = s.QueueAuto("", 1)
	sc.Observe(prev, s, base)

	// The world moved on before the continuation came due.
	moved := s.ClearAuto()
	moved = moved.ShowInstant("something else")

	after := revealEndsAt(s, base).Add(autoProgressPause + time.Second)
	got, cmds := sc.Tick(moved, after)
	if got.Step != moved.Step || got.FullMessage != "something else" {
		t.Fatal("stale continuation fired against the new world")
	}
	if len(cmds) != 0 {
		t.Fatalf("stale fire produced %d commands", len(cmds))
	}
	if sc.Pending() != 0 {
		t.Fatalf("pending = %d, want 0 after discard", sc.Pending())
	}
}

func TestTermsSheetPausesTheClock(t *testing.T) {
	sc := NewScheduler()
	prev := NewState()
	s := prev
	s.InConversation = true
	s = s.ShowMessage("ok.", base)
	s = s.QueueAuto("", 1)
	sc.Observe(prev, s, base)

	s.TermsOpen = true
	after := revealEndsAt(s, base).Add(autoProgressPause + time.Minute)
	got, _ := sc.Tick(s, after)
	if got.Step != 0 {
		t.Fatal("continuation fired while the terms sheet was open")
	}
	if sc.Pending() != 1 {
		t.Fatalf("pending = %d, want the continuation retained", sc.Pending())
	}

	s.TermsOpen = false
	got, _ = sc.Tick(s, after.Add(time.Second))
	if got.Step != 1 {
		t.Fatalf("step = %d, want 1 once the sheet closed", got.Step)
	}
}

func TestCountdownDecrementsPerSecond(t *testing.T) {
	sc := NewScheduler()
	prev := NewState()
	s := prev
	s.InConversation = true
	s.Step = 88
	s.Countdown = 60
	sc.Observe(prev, s, base)

	s, _ = sc.Tick(s, base.Add(1100*time.Millisecond))
	if s.Countdown != 59 {
		t.Fatalf("countdown = %d, want 59", s.Countdown)
	}
	// The decrement re-arms itself through the observe chain.
	s, _ = sc.Tick(s, base.Add(2200*time.Millisecond))
	if s.Countdown != 58 {
		t.Fatalf("countdown = %d, want 58", s.Countdown)
	}
}

func TestCountdownExpiryForcesHide(t *testing.T) {
	sc := NewScheduler()
	prev := NewState()
	s := prev
	s.InConversation = true
	s.Step = StepCountdownPick
	s.AwaitingChoice = true
	s.Countdown = 1
	sc.Observe(prev, s, base)

	s, _ = sc.Tick(s, base.Add(1100*time.Millisecond))
	if s.Countdown != 0 {
		t.Fatalf("countdown = %d, want 0", s.Countdown)
	}
	if s.AwaitingChoice {
		t.Fatal("expired countdown left the choice gate armed")
	}
	if s.FullMessage != countdownExpiredText {
		t.Fatalf("message = %q, want the too-slow line", s.FullMessage)
	}
	if s.PendingAutoStep != 90 {
		t.Fatalf("pending step = %d, want the blackout", s.PendingAutoStep)
	}
}

func TestRantPlaysLineByLine(t *testing.T) {
	sc := NewScheduler()
	prev := NewState()
	s := prev
	s.InConversation = true
	s.Step = 60
	s.RantActive = true
	sc.Observe(prev, s, base)

	s, cmds := sc.Tick(s, base.Add(rantLinePause+100*time.Millisecond))
	if s.FullMessage != rantLines[0] {
		t.Fatalf("message = %q, want the first rant line", s.FullMessage)
	}
	if s.RantStep != 1 || s.ShakeIntensity != 1 {
		t.Fatalf("rant bookkeeping: step %d shake %d", s.RantStep, s.ShakeIntensity)
	}
	vibrated := false
	for _, c := range cmds {
		if _, ok := c.(CmdVibrate); ok {
			vibrated = true
		}
	}
	if !vibrated {
		t.Fatal("rant line did not vibrate")
	}
	if sc.Pending() == 0 {
		t.Fatal("next rant line not armed")
	}
}

func TestRantEndsAtTheApology(t *testing.T) {
	sc := NewScheduler()
	prev := NewState()
	s := prev
	s.InConversation = true
	s.Step = 60
	s.RantActive = true
	s.RantStep = len(rantLines)
	sc.Observe(prev, s, base)

	s, _ = sc.Tick(s, base.Add(rantLinePause+100*time.Millisecond))
	if s.Step != 68 {
		t.Fatalf("step = %d, want 68", s.Step)
	}
	if s.RantActive {
		t.Fatal("rant still active after burning out")
	}
	if s.ShakeIntensity != 0 || s.VibrationLevel != 0 {
		t.Fatal("shake not reset by the apology step")
	}
}

func TestMoleLossRestartsSameRound(t *testing.T) {
	sc := NewScheduler()
	s := startMoleRound(NewState(), 1, 7)
	s.InConversation = true
	prev := s
	s = moleRoundLost(s, base)
	sc.Observe(prev, s, base)

	early, _ := sc.Tick(s, base.Add(time.Second))
	if early.Mole.Active {
		t.Fatal("round restarted before the delay")
	}

	s, _ = sc.Tick(s, base.Add(moleRestartDelay+100*time.Millisecond))
	if !s.Mole.Active {
		t.Fatal("round did not restart")
	}
	if s.Mole.Round != 1 || s.Mole.Countdown != 3 {
		t.Fatalf("restarted round %d countdown %d", s.Mole.Round, s.Mole.Countdown)
	}
	if s.Mole.Score != 0 || s.Mole.TotalErrors != 0 {
		t.Fatal("counters not zeroed on restart")
	}
}

func TestMoleCountdownSpawnsFirstTarget(t *testing.T) {
	sc := NewScheduler()
	prev := NewState()
	s := startMoleRound(prev, 1, 7)
	s.InConversation = true
	sc.Observe(prev, s, base)

	at := base
	for i := 0; i < 3; i++ {
		at = at.Add(1100 * time.Millisecond)
		s, _ = sc.Tick(s, at)
	}
	if s.Mole.Countdown != 0 {
		t.Fatalf("countdown = %d, want 0", s.Mole.Countdown)
	}
	if s.Mole.Target == "" {
		t.Fatal("no target spawned after the countdown")
	}
	if sc.Pending() == 0 {
		t.Fatal("target timeout not armed")
	}
}

func TestBrowserPhaseAdvances(t *testing.T) {
	sc := NewScheduler()
	prev := NewState()
	s := prev
	s.InConversation = true
	s.Step = 120
	s.BrowserPhase = browserPhaseOpen
	sc.Observe(prev, s, base)

	s, _ = sc.Tick(s, base.Add(browserPhaseDelay(browserPhaseOpen)+100*time.Millisecond))
	if s.BrowserPhase != browserPhaseTypeFirst {
		t.Fatalf("phase = %d, want typing to start", s.BrowserPhase)
	}
	if s.SearchTyped != "w" {
		t.Fatalf("typed = %q, want the first query character", s.SearchTyped)
	}
	if sc.Pending() == 0 {
		t.Fatal("next phase not armed")
	}
}

func TestCameraWindowCloses(t *testing.T) {
	sc := NewScheduler()
	prev := NewState()
	s := prev
	s.InConversation = true
	s.Step = StepCamera
	s.CameraOpen = true
	s.CameraStarted = base
	sc.Observe(prev, s, base)

	s, cmds := sc.Tick(s, base.Add(cameraWindow+100*time.Millisecond))
	if s.CameraOpen {
		t.Fatal("camera still open after the window")
	}
	if s.Step != 192 {
		t.Fatalf("step = %d, want 192", s.Step)
	}
	closed := false
	for _, c := range cmds {
		if cam, ok := c.(CmdCamera); ok && !cam.Open {
			closed = true
		}
	}
	if !closed {
		t.Fatal("no camera-close command issued")
	}
}

func TestNotifyReturnBringsTheStoryBack(t *testing.T) {
	sc := NewScheduler()
	prev := NewState()
	s := prev
	s.InConversation = true
	s.Step = StepNotifyWait
	sc.Observe(prev, s, base)

	early, _ := sc.Tick(s, base.Add(10*time.Second))
	if early.Step != StepNotifyWait {
		t.Fatal("returned early")
	}
	s, _ = sc.Tick(s, base.Add(notifyReturnDelay+time.Second))
	if s.Step != StepNotifyReturn {
		t.Fatalf("step = %d, want the return step", s.Step)
	}
}

func TestGoodbyeDeadEndResetsEqualsCount(t *testing.T) {
	sc := NewScheduler()
	prev := NewState()
	s := prev
	s.EqualsCount = ConversationThreshold
	s = s.ShowMessage(ageGoodbyeText, base)
	s.InConversation = false
	sc.Observe(prev, s, base)

	after := revealEndsAt(s, base).Add(deadEndPause + time.Second)
	s, _ = sc.Tick(s, after)
	if s.EqualsCount != 0 {
		t.Fatalf("equals count = %d, want 0", s.EqualsCount)
	}
	if s.InConversation {
		t.Fatal("goodbye redirect should not rejoin the conversation")
	}
	if s.FullMessage != "" {
		t.Fatalf("message = %q, want cleared", s.FullMessage)
	}
}

func TestChaosPhasesEscalateThenHandOff(t *testing.T) {
	sc := NewScheduler()
	prev := NewState()
	s := prev
	s.InConversation = true
	s.Step = 170
	s.ChaosPhase = 1
	sc.Observe(prev, s, base)

	at := base
	for s.Step == 170 {
		before := s.ChaosPhase
		at = at.Add(chaosPhaseGap + 100*time.Millisecond)
		s, _ = sc.Tick(s, at)
		if s.Step == 170 && s.ChaosPhase <= before {
			t.Fatalf("phase stalled at %d", s.ChaosPhase)
		}
	}
	if s.Step != 172 {
		t.Fatalf("step = %d, want the reassembly puzzle", s.Step)
	}
}
