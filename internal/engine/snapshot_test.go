package engine

import (
	"testing"
	"time"
)

func TestFromSnapshotEmptyIsFreshState(t *testing.T) {
	s := FromSnapshot(map[string]string{})
	if s.Step != 0 || s.InConversation || s.StoryComplete {
		t.Fatalf("empty snapshot: step %d conv %v complete %v", s.Step, s.InConversation, s.StoryComplete)
	}
	if s.PendingAutoStep != -1 {
		t.Fatal("auto step not defaulted")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewState()
	s.Step = 102
	s.InConversation = true
	s.EqualsCount = 13
	s.Muted = true
	s.MinusDamaged = true
	s.TermsAccepted = true
	s = s.WithDarkButton(BtnSeven)
	s = s.WithDarkButton(BtnEight)
	s.ScreenTimeMs = 123456
	s.Calculations = 42

	got := FromSnapshot(ToSnapshot(s))
	if got.Step != s.Step || got.InConversation != s.InConversation {
		t.Fatalf("position lost: step %d conv %v", got.Step, got.InConversation)
	}
	if got.EqualsCount != 13 || got.Calculations != 42 || got.ScreenTimeMs != 123456 {
		t.Fatal("counters lost")
	}
	if !got.Muted || !got.MinusDamaged || !got.TermsAccepted {
		t.Fatal("flags lost")
	}
	if !got.IsButtonDark(BtnSeven) || !got.IsButtonDark(BtnEight) {
		t.Fatal("dark buttons lost")
	}
}

func TestFromSnapshotGarbledValuesFallBack(t *testing.T) {
	s := FromSnapshot(map[string]string{
		KeyStep:         "banana",
		KeyEqualsCount:  "-",
		KeyScreenTimeMs: "???",
	})
	if s.Step != 0 || s.EqualsCount != 0 || s.ScreenTimeMs != 0 {
		t.Fatal("garbled values did not fall back to defaults")
	}
}

func TestNeedsRestartClampsToSafeStep(t *testing.T) {
	s := FromSnapshot(map[string]string{
		KeyStep:           "172",
		KeyInConversation: "1",
		KeyNeedsRestart:   "1",
	})
	if !IsSafeStep(s.Step) {
		t.Fatalf("restart landed on unsafe step %d", s.Step)
	}
}

func TestCameraStepDoesNotSurviveRestart(t *testing.T) {
	s := FromSnapshot(map[string]string{
		KeyStep:           "191",
		KeyInConversation: "1",
	})
	if s.Step == StepCamera {
		t.Fatal("camera substate survived the restart")
	}
	if !IsSafeStep(s.Step) {
		t.Fatalf("sanitized to unsafe step %d", s.Step)
	}
}

func TestFinishedStoryStaysFinished(t *testing.T) {
	s := FromSnapshot(map[string]string{
		KeyStep: "210",
	})
	if !s.StoryComplete {
		t.Fatal("finale step did not mark the story complete")
	}
}

func TestResumeRearmsEntryHooks(t *testing.T) {
	s := FromSnapshot(map[string]string{
		KeyStep:           "88",
		KeyInConversation: "1",
	})
	s = Resume(s, base)
	if s.FullMessage != Script[88].Prompt {
		t.Fatalf("resume message = %q, want the step prompt", s.FullMessage)
	}
	if s.Countdown != 60 {
		t.Fatalf("countdown = %d, want re-armed at 60", s.Countdown)
	}
}

func TestResumeOutsideConversationIsInert(t *testing.T) {
	s := FromSnapshot(map[string]string{KeyStep: "5"})
	got := Resume(s, base)
	if got.FullMessage != "" || got.AwaitingChoice {
		t.Fatal("resume touched a non-conversation snapshot")
	}
}

func TestPersistDiffEmitsOnlyChanges(t *testing.T) {
	prev := NewState()
	next := prev
	next.Muted = true
	next.Step = 5
	cmds := PersistDiff(prev, next)
	keys := map[string]string{}
	for _, c := range cmds {
		p, ok := c.(CmdPersist)
		if !ok {
			t.Fatalf("unexpected command %T", c)
		}
		keys[p.Key] = p.Value
	}
	if keys[KeyMuted] != "1" || keys[KeyStep] != "5" {
		t.Fatalf("diff missing changes: %v", keys)
	}
	if _, ok := keys[KeyEqualsCount]; ok {
		t.Fatal("diff emitted an unchanged key")
	}
}

func TestPersistDiffThrottlesScreenTime(t *testing.T) {
	prev := NewState()
	next := prev
	next.ScreenTimeMs = 4900
	if len(PersistDiff(prev, next)) != 0 {
		t.Fatal("screen time written inside the throttle window")
	}
	next.ScreenTimeMs = 5100
	found := false
	for _, c := range PersistDiff(prev, next) {
		if p, ok := c.(CmdPersist); ok && p.Key == KeyScreenTimeMs {
			found = true
		}
	}
	if !found {
		t.Fatal("screen time not written across the boundary")
	}
}

func TestResumeTimeIsWallClockAgnostic(t *testing.T) {
	kv := map[string]string{KeyStep: "15", KeyInConversation: "1"}
	a := Resume(FromSnapshot(kv), base)
	b := Resume(FromSnapshot(kv), base.Add(48*time.Hour))
	if a.Step != b.Step || a.FullMessage != b.FullMessage {
		t.Fatal("resume depends on the wall clock")
	}
}
