package engine

import "time"

// Scramble puzzle: the calculator's old name, letters shuffled; the player
// places them back in order.

// ScrambleTarget is the word being reassembled.
const ScrambleTarget = "ABACUS"

// ScrambleState is the scramble slice of the snapshot.
type ScrambleState struct {
	Active  bool
	Letters []rune
	Used    []bool
	Slots   []rune
	Notice  string
}

func startScramble(s State, seed uint64) State {
	r := seed | 1
	letters := shuffleLetters([]rune(ScrambleTarget), &r)
	// A shuffle that lands on the answer spoils the puzzle; rotate once.
	if string(letters) == ScrambleTarget {
		letters = append(letters[1:], letters[0])
	}
	s.Scramble = ScrambleState{
		Active:  true,
		Letters: letters,
		Used:    make([]bool, len(letters)),
	}
	return s
}

// scramblePick places letter index i into the next open slot. A full wrong
// answer clears the slots and re-prompts.
func scramblePick(s State, i int, now time.Time) State {
	sc := s.Scramble
	if !sc.Active || i < 0 || i >= len(sc.Letters) || sc.Used[i] {
		return s
	}
	used := append([]bool(nil), sc.Used...)
	used[i] = true
	sc.Used = used
	sc.Slots = append(append([]rune(nil), sc.Slots...), sc.Letters[i])
	sc.Notice = ""
	if len(sc.Slots) == len(sc.Letters) {
		if string(sc.Slots) == ScrambleTarget {
			s.Scramble = ScrambleState{}
			return s.EnterStep(142, now)
		}
		sc.Slots = nil
		sc.Used = make([]bool, len(sc.Letters))
		sc.Notice = "no... that's not me. try again."
	}
	s.Scramble = sc
	return s
}
