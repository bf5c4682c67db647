package engine

import (
	"testing"
	"time"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func pressAt(t *testing.T, s State, label string, at time.Time) State {
	t.Helper()
	next, _ := Apply(s, ButtonPress{Label: label, At: at})
	return next
}

// tapTwice performs the accept/decline gesture: two presses 100 ms apart.
func tapTwice(t *testing.T, s State, label string, at time.Time) State {
	t.Helper()
	s = pressAt(t, s, label, at)
	return pressAt(t, s, label, at.Add(100*time.Millisecond))
}

func typeDigits(t *testing.T, s State, digits string, at time.Time) State {
	t.Helper()
	for _, d := range digits {
		s = pressAt(t, s, string(d), at)
		at = at.Add(50 * time.Millisecond)
	}
	return s
}

func TestDoublePressWindow(t *testing.T) {
	s, fired := registerPress(NewState(), BtnPlus, base)
	if fired {
		t.Fatal("first press fired")
	}
	if _, fired = registerPress(s, BtnPlus, base.Add(300*time.Millisecond)); !fired {
		t.Fatal("second press inside the window did not fire")
	}
	if _, fired = registerPress(s, BtnPlus, base.Add(700*time.Millisecond)); fired {
		t.Fatal("second press outside the window fired")
	}
	if _, fired = registerPress(s, BtnMinus, base.Add(100*time.Millisecond)); fired {
		t.Fatal("different operator fired")
	}
}

func TestEqualsStreakStartsConversation(t *testing.T) {
	s := NewState()
	at := base
	for i := 0; i < ConversationThreshold; i++ {
		for _, label := range []string{"7", BtnTimes, "8", BtnEquals} {
			s = pressAt(t, s, label, at)
			at = at.Add(time.Second)
		}
	}
	if !s.InConversation {
		t.Fatal("conversation did not start")
	}
	if s.Step != 0 {
		t.Fatalf("step = %d, want 0", s.Step)
	}
	if s.FullMessage != Script[0].Prompt {
		t.Fatalf("message = %q, want the opening prompt", s.FullMessage)
	}
	if s.EqualsCount != ConversationThreshold {
		t.Fatalf("equals count = %d", s.EqualsCount)
	}
}

func TestEqualsBelowThresholdStaysQuiet(t *testing.T) {
	s := NewState()
	at := base
	for i := 0; i < ConversationThreshold-1; i++ {
		for _, label := range []string{"2", BtnPlus, "2", BtnEquals} {
			s = pressAt(t, s, label, at)
			at = at.Add(time.Second)
		}
	}
	if s.InConversation {
		t.Fatal("conversation started one evaluation early")
	}
}

func TestAcceptAdvancesWithChainedSuccess(t *testing.T) {
	s := NewState()
	s.InConversation = true
	s = s.EnterStep(0, base)
	s = tapTwice(t, s, BtnPlus, base.Add(time.Second))
	if s.FullMessage != Script[0].Success {
		t.Fatalf("message = %q, want the success line", s.FullMessage)
	}
	if !s.WaitingForAutoProgress || s.PendingAutoStep != 1 {
		t.Fatalf("auto progress not queued: waiting=%v step=%d", s.WaitingForAutoProgress, s.PendingAutoStep)
	}
}

func TestDeclineReentersStep(t *testing.T) {
	s := NewState()
	s.InConversation = true
	s = s.EnterStep(1, base)
	s = tapTwice(t, s, BtnMinus, base.Add(time.Second))
	if s.FullMessage != Script[1].Decline {
		t.Fatalf("message = %q, want the decline line", s.FullMessage)
	}
	if !s.WaitingForAutoProgress || s.PendingAutoStep != 1 {
		t.Fatalf("decline should loop back to step 1, got pending %d", s.PendingAutoStep)
	}
}

func TestChoiceStepValidAndInvalid(t *testing.T) {
	s := NewState()
	s.InConversation = true
	s = s.EnterStep(5, base)
	if !s.AwaitingChoice {
		t.Fatal("choice gate not armed")
	}

	wrong := typeDigits(t, s, "7", base.Add(time.Second))
	wrong = tapTwice(t, wrong, BtnPlus, base.Add(2*time.Second))
	if wrong.FullMessage != Script[5].WrongNumber {
		t.Fatalf("message = %q, want the wrong-choice line", wrong.FullMessage)
	}
	if wrong.Step != 5 {
		t.Fatalf("wrong choice moved the step to %d", wrong.Step)
	}

	s = typeDigits(t, s, "2", base.Add(time.Second))
	s = tapTwice(t, s, BtnPlus, base.Add(2*time.Second))
	if s.FullMessage != Script[5].ChoiceOutcomes["2"].Message {
		t.Fatalf("message = %q, want the operator outcome", s.FullMessage)
	}
	if s.PendingAutoStep != 6 {
		t.Fatalf("pending step = %d, want 6", s.PendingAutoStep)
	}
	if s.AwaitingChoice {
		t.Fatal("choice gate still armed after a valid pick")
	}
}

func TestAgeBuckets(t *testing.T) {
	enter := func() State {
		s := NewState()
		s.InConversation = true
		return s.EnterStep(6, base)
	}

	kid := typeDigits(t, enter(), "9", base.Add(time.Second))
	kid = tapTwice(t, kid, BtnPlus, base.Add(2*time.Second))
	if kid.InConversation {
		t.Fatal("goodbye branch should leave the conversation")
	}
	if kid.FullMessage != ageGoodbyeText {
		t.Fatalf("message = %q, want the goodbye text", kid.FullMessage)
	}

	liar := typeDigits(t, enter(), "150", base.Add(time.Second))
	liar = tapTwice(t, liar, BtnPlus, base.Add(2*time.Second))
	if liar.FullMessage != ageLiarText {
		t.Fatalf("message = %q, want the liar text", liar.FullMessage)
	}
	if !liar.AwaitingNumber {
		t.Fatal("liar branch should re-ask for a number")
	}

	teen := typeDigits(t, enter(), "15", base.Add(time.Second))
	teen = tapTwice(t, teen, BtnPlus, base.Add(2*time.Second))
	if teen.FullMessage != ageTeenText || teen.PendingAutoStep != 7 {
		t.Fatalf("teen branch: message %q pending %d", teen.FullMessage, teen.PendingAutoStep)
	}

	adult := typeDigits(t, enter(), "30", base.Add(time.Second))
	adult = tapTwice(t, adult, BtnPlus, base.Add(2*time.Second))
	if adult.FullMessage != ageAdultText || adult.PendingAutoStep != 7 {
		t.Fatalf("adult branch: message %q pending %d", adult.FullMessage, adult.PendingAutoStep)
	}
}

func TestExpectedNumberStep(t *testing.T) {
	s := NewState()
	s.InConversation = true
	s = s.EnterStep(11, base)
	s = typeDigits(t, s, "55", base.Add(time.Second))
	s = tapTwice(t, s, BtnPlus, base.Add(2*time.Second))
	if s.FullMessage != Script[11].WrongNumber {
		t.Fatalf("message = %q, want the wrong-answer line", s.FullMessage)
	}
	s = typeDigits(t, s, "56", base.Add(3*time.Second))
	s = tapTwice(t, s, BtnPlus, base.Add(4*time.Second))
	if s.Step != 12 {
		t.Fatalf("step = %d, want 12", s.Step)
	}
}

func TestCountdownChoiceClearsCountdown(t *testing.T) {
	s := NewState()
	s.InConversation = true
	s = s.EnterStep(StepCountdownPick, base)
	s.Countdown = 60
	s = typeDigits(t, s, "2", base.Add(time.Second))
	s = tapTwice(t, s, BtnPlus, base.Add(2*time.Second))
	if s.Countdown != 0 {
		t.Fatalf("countdown = %d, want 0 after the pick", s.Countdown)
	}
	if s.PendingAutoStep != StepFightBranch {
		t.Fatalf("pending step = %d, want the fight branch", s.PendingAutoStep)
	}
}

func TestSecretCodeOpensConsole(t *testing.T) {
	s := NewState()
	s = typeDigits(t, s, SecretConsoleCode, base)
	s = tapTwice(t, s, BtnPlus, base.Add(time.Second))
	if !s.Console.Open {
		t.Fatal("console did not open")
	}
	if s.Console.Page != ConsoleRoot {
		t.Fatalf("page = %d, want root", s.Console.Page)
	}
	if s.Number1 != "" {
		t.Fatalf("entry not cleared: %q", s.Number1)
	}
}

func TestConsoleFlagsToggleMute(t *testing.T) {
	s := openConsole(NewState())
	s = pressAt(t, s, "2", base)
	s = tapTwice(t, s, BtnPlus, base.Add(time.Second))
	if s.Console.Page != ConsoleFlags {
		t.Fatalf("page = %d, want flags", s.Console.Page)
	}
	s = pressAt(t, s, "1", base.Add(2*time.Second))
	s = tapTwice(t, s, BtnPlus, base.Add(3*time.Second))
	if !s.Muted {
		t.Fatal("mute flag not toggled")
	}
}

func TestConsoleExitCode(t *testing.T) {
	s := openConsole(NewState())
	s = typeDigits(t, s, "99", base)
	s = tapTwice(t, s, BtnPlus, base.Add(time.Second))
	if s.Console.Open {
		t.Fatal("console still open after exit code")
	}
}

func TestConsoleJump(t *testing.T) {
	s := openConsole(NewState())
	s = pressAt(t, s, "3", base)
	s = tapTwice(t, s, BtnPlus, base.Add(time.Second))
	s = typeDigits(t, s, "85", base.Add(2*time.Second))
	s = tapTwice(t, s, BtnPlus, base.Add(3*time.Second))
	if s.Console.Open {
		t.Fatal("console should close on jump")
	}
	if s.Step != 85 || !s.InConversation {
		t.Fatalf("jump landed on step %d conv %v", s.Step, s.InConversation)
	}
}

func TestServiceCodeStep(t *testing.T) {
	s := NewState()
	s.InConversation = true
	s = s.EnterStep(StepConsoleEntry, base)

	wrong := typeDigits(t, s, "1234", base.Add(time.Second))
	wrong = tapTwice(t, wrong, BtnPlus, base.Add(2*time.Second))
	if wrong.FullMessage != Script[StepConsoleEntry].WrongNumber {
		t.Fatalf("message = %q, want the wrong-code line", wrong.FullMessage)
	}

	s = typeDigits(t, s, ConsoleServiceCode, base.Add(time.Second))
	s = tapTwice(t, s, BtnPlus, base.Add(2*time.Second))
	if !s.Console.Open {
		t.Fatal("console did not open on the service code")
	}
	if s.Step != 113 {
		t.Fatalf("resume step = %d, want 113", s.Step)
	}
}

func TestSilentTreatmentLockout(t *testing.T) {
	s := NewState()
	s.InConversation = true
	s = s.EnterStep(17, base)
	s.SilentUntil = base.Add(2 * time.Minute)

	// The calculator still calculates during the silence.
	locked := pressAt(t, s, "5", base.Add(time.Second))
	if locked.Number1 != "5" {
		t.Fatalf("digit swallowed during lockout: %q", locked.Number1)
	}

	// A double-= before the deadline does nothing narrative.
	early := tapTwice(t, s, BtnEquals, base.Add(time.Second))
	if early.Step != 17 {
		t.Fatalf("early escape moved to step %d", early.Step)
	}

	// After expiry the gesture resumes the question.
	s = tapTwice(t, s, BtnEquals, base.Add(3*time.Minute))
	if s.Step != 15 {
		t.Fatalf("step = %d, want 15 after the silence", s.Step)
	}
	if !s.SilentUntil.IsZero() {
		t.Fatal("silence deadline not cleared")
	}
}

func TestCameraRequestOpensBeforeAdvancing(t *testing.T) {
	s := NewState()
	s.InConversation = true
	s = s.EnterStep(StepCamera, base)
	s = pressAt(t, s, BtnPlus, base.Add(time.Second))
	next, cmds := Apply(s, ButtonPress{Label: BtnPlus, At: base.Add(1100 * time.Millisecond)})
	if !next.CameraOpen {
		t.Fatal("camera did not open")
	}
	found := false
	for _, c := range cmds {
		if cam, ok := c.(CmdCamera); ok && cam.Open {
			found = true
		}
	}
	if !found {
		t.Fatal("no camera-open command issued")
	}
	if next.Step != StepCamera {
		t.Fatalf("accept moved the step to %d; the timer owns that transition", next.Step)
	}
}

func TestCameraDecline(t *testing.T) {
	s := NewState()
	s.InConversation = true
	s = s.EnterStep(StepCamera, base)
	s = tapTwice(t, s, BtnMinus, base.Add(time.Second))
	if s.CameraOpen {
		t.Fatal("decline opened the camera")
	}
	if s.PendingAutoStep != 200 {
		t.Fatalf("pending step = %d, want 200", s.PendingAutoStep)
	}
}

func TestBrokenMinusSwallowed(t *testing.T) {
	s := NewState()
	s.MinusBroken = true
	s = pressAt(t, s, BtnMinus, base)
	if s.Number1 != "" || s.PendingPress != "" {
		t.Fatal("broken minus should be inert")
	}
}

func TestRantLockout(t *testing.T) {
	s := NewState()
	s.InConversation = true
	s.RantActive = true
	s.Step = 60
	for _, label := range []string{"7", BtnPlus, BtnEquals, BtnClear} {
		next := pressAt(t, s, label, base)
		if next.Number1 != "" || next.Step != 60 {
			t.Fatalf("press %q leaked through the rant lockout", label)
		}
	}
}

func TestTermsAcceptEvent(t *testing.T) {
	s := NewState()
	s.InConversation = true
	s.Step = 20
	s.TermsOpen = true
	s, _ = Apply(s, TermsAccept{At: base})
	if s.TermsOpen || !s.TermsAccepted {
		t.Fatal("terms state not updated")
	}
	if s.Step != 21 {
		t.Fatalf("step = %d, want 21", s.Step)
	}
	if s.FullMessage != Script[21].Prompt {
		t.Fatalf("message = %q, want the binding line", s.FullMessage)
	}
}

func TestStoryCompleteIsPlainCalculator(t *testing.T) {
	s := NewState()
	s.StoryComplete = true
	s.InConversation = true
	s.Step = StepFinale
	s = pressAt(t, s, "6", base)
	s = pressAt(t, s, BtnTimes, base.Add(time.Second))
	s = pressAt(t, s, "7", base.Add(2*time.Second))
	s = pressAt(t, s, BtnEquals, base.Add(3*time.Second))
	if s.Display != "42" {
		t.Fatalf("display = %q, want 42", s.Display)
	}
	if s.Step != StepFinale {
		t.Fatalf("finished story moved to step %d", s.Step)
	}
}

func TestSoftLockRepairOnGapStep(t *testing.T) {
	// A sequential step with no success text and no next step must not
	// strand the player; the accept routes to the nearest safe step.
	s := NewState()
	s.InConversation = true
	s.Step = 13
	cfg := StepConfig{Kind: StepSequential, NextOnSuccess: -1}
	next, _ := stepSuccess(s, cfg, base)
	if !IsSafeStep(next.Step) {
		t.Fatalf("gap accept landed on unsafe step %d", next.Step)
	}
}
