package engine

import (
	"testing"
	"time"
)

func TestScrambleNeverStartsSolved(t *testing.T) {
	for seed := uint64(1); seed < 200; seed++ {
		s := startScramble(NewState(), seed)
		if string(s.Scramble.Letters) == ScrambleTarget {
			t.Fatalf("seed %d dealt the solved order", seed)
		}
	}
}

func TestScrambleSolveEntersReveal(t *testing.T) {
	s := startScramble(NewState(), 7)
	s.InConversation = true
	order := indexOrder(s.Scramble.Letters, ScrambleTarget)
	for _, i := range order {
		s = scramblePick(s, i, base)
	}
	if s.Scramble.Active {
		t.Fatal("puzzle still active after solving")
	}
	if s.Step != 142 {
		t.Fatalf("step = %d, want the name reveal", s.Step)
	}
}

func TestScrambleWrongAnswerResets(t *testing.T) {
	s := startScramble(NewState(), 7)
	s.InConversation = true
	// Pick the dealt order; the shuffle guarantees it is not the answer.
	for i := range s.Scramble.Letters {
		s = scramblePick(s, i, base)
	}
	if !s.Scramble.Active {
		t.Fatal("puzzle ended on a wrong answer")
	}
	if len(s.Scramble.Slots) != 0 {
		t.Fatal("slots not cleared")
	}
	if s.Scramble.Notice == "" {
		t.Fatal("no retry notice")
	}
	for i, used := range s.Scramble.Used {
		if used {
			t.Fatalf("letter %d still marked used", i)
		}
	}
}

func TestScrambleIgnoresUsedLetters(t *testing.T) {
	s := startScramble(NewState(), 7)
	s = scramblePick(s, 0, base)
	slots := len(s.Scramble.Slots)
	s = scramblePick(s, 0, base.Add(time.Second))
	if len(s.Scramble.Slots) != slots {
		t.Fatal("re-picking a used letter added a slot")
	}
}

// indexOrder maps each letter of target to an unused index in dealt.
func indexOrder(dealt []rune, target string) []int {
	used := make([]bool, len(dealt))
	var order []int
	for _, ch := range target {
		for i, d := range dealt {
			if !used[i] && d == ch {
				used[i] = true
				order = append(order, i)
				break
			}
		}
	}
	return order
}

func TestChaosPickInOrderReassembles(t *testing.T) {
	s := startChaos(NewState(), 7)
	s.InConversation = true
	s.Step = 172
	s.ChaosPhase = 5
	s.FlickerEffect = true

	dealt := make([]rune, len(s.Chaos.Letters))
	for i, l := range s.Chaos.Letters {
		dealt[i] = l.Ch
	}
	for _, i := range indexOrder(dealt, ScrambleTarget) {
		s = chaosPick(s, i, base)
	}
	if s.Chaos.Active {
		t.Fatal("chaos still active after reassembly")
	}
	if s.Step != 175 {
		t.Fatalf("step = %d, want the recovery scene", s.Step)
	}
	if s.ChaosPhase != 0 || s.FlickerEffect {
		t.Fatal("breakdown cosmetics not cleared")
	}
}

func TestChaosWrongPickResetsProgress(t *testing.T) {
	s := startChaos(NewState(), 7)
	dealt := make([]rune, len(s.Chaos.Letters))
	for i, l := range s.Chaos.Letters {
		dealt[i] = l.Ch
	}
	order := indexOrder(dealt, ScrambleTarget)
	s = chaosPick(s, order[0], base)
	if s.Chaos.Progress != 1 {
		t.Fatalf("progress = %d, want 1", s.Chaos.Progress)
	}

	// Find a letter that is not the next target letter.
	wrong := -1
	for i, l := range s.Chaos.Letters {
		if !l.Picked && l.Ch != []rune(ScrambleTarget)[1] {
			wrong = i
			break
		}
	}
	if wrong < 0 {
		t.Skip("seed dealt no wrong option")
	}
	s = chaosPick(s, wrong, base.Add(time.Second))
	if s.Chaos.Progress != 0 {
		t.Fatalf("progress = %d, want 0 after a wrong pick", s.Chaos.Progress)
	}
	for i, l := range s.Chaos.Letters {
		if l.Picked {
			t.Fatalf("letter %d still picked after the reset", i)
		}
	}
	if s.Chaos.Notice == "" {
		t.Fatal("no wrong-pick notice")
	}
}

func TestChaosRotateOnlySpinsUnpicked(t *testing.T) {
	s := startChaos(NewState(), 7)
	dealt := make([]rune, len(s.Chaos.Letters))
	for i, l := range s.Chaos.Letters {
		dealt[i] = l.Ch
	}
	first := indexOrder(dealt, ScrambleTarget)[0]
	s = chaosPick(s, first, base)
	before := make([]float64, len(s.Chaos.Letters))
	for i, l := range s.Chaos.Letters {
		before[i] = l.Rot
	}
	s = chaosRotate(s)
	for i, l := range s.Chaos.Letters {
		if l.Picked && l.Rot != before[i] {
			t.Fatal("picked glyph kept spinning")
		}
		if !l.Picked && l.Rot == before[i] {
			t.Fatal("unpicked glyph did not spin")
		}
	}
}
