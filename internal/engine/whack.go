package engine

import "time"

// Whack-a-mole: a button lights up, the player must hit it before it goes
// dark. Three consecutive timeouts or five total errors abort the round and
// restart the same round from its countdown.

const (
	MoleMaxConsecutive = 3
	MoleMaxTotal       = 5
	moleTargetScore    = 8
)

// MoleFailureText is shown verbatim when a round is lost.
const MoleFailureText = "you lost the momentum. it slipped back into the memory banks.\n\nagain. from the top."

// moleRestartDelay separates the failure message from the round restart.
const moleRestartDelay = 3 * time.Second

// MoleState is the whack-a-mole slice of the snapshot.
type MoleState struct {
	Active            bool
	Round             int
	Countdown         int // 3-2-1 before targets start
	Target            string
	TargetDeadline    time.Time
	TargetSeq         int // increments per spawned target; guards stale timeouts
	Score             int
	ConsecutiveMisses int
	TotalErrors       int
	Rng               uint64
}

// moleRoundDone maps a finished round to the step control returns to.
var moleRoundDone = map[int]int{1: 97, 2: 100}

// moleTargetWindow is how long a target stays lit, per round.
func moleTargetWindow(round int) time.Duration {
	if round >= 2 {
		return 900 * time.Millisecond
	}
	return 1400 * time.Millisecond
}

// moleSpawnGap is the pause between a resolved target and the next one.
func moleSpawnGap(round int) time.Duration {
	if round >= 2 {
		return 400 * time.Millisecond
	}
	return 700 * time.Millisecond
}

func startMoleRound(s State, round int, seed uint64) State {
	s.Mole = MoleState{
		Active:    true,
		Round:     round,
		Countdown: 3,
		Rng:       seed | 1,
	}
	return s
}

// moleSpawnTarget lights a fresh target button.
func moleSpawnTarget(s State, now time.Time) State {
	m := s.Mole
	if !m.Active {
		return s
	}
	m.Target = AllButtons[int(lcg(&m.Rng))%len(AllButtons)]
	m.TargetDeadline = now.Add(moleTargetWindow(m.Round))
	m.TargetSeq++
	s.Mole = m
	return s
}

// molePress consumes any pad press while the game is active.
func molePress(s State, label string, now time.Time) State {
	m := s.Mole
	if !m.Active || m.Target == "" {
		return s
	}
	if label == m.Target && now.Before(m.TargetDeadline) {
		m.Score++
		m.ConsecutiveMisses = 0
		m.Target = ""
		s.Mole = m
		if m.Score >= moleTargetScore {
			return moleRoundWon(s, now)
		}
		return s
	}
	m.TotalErrors++
	s.Mole = m
	if m.TotalErrors >= MoleMaxTotal {
		return moleRoundLost(s, now)
	}
	return s
}

// moleTimeout registers a target that was allowed to go dark.
func moleTimeout(s State, now time.Time) State {
	m := s.Mole
	if !m.Active || m.Target == "" {
		return s
	}
	m.Target = ""
	m.ConsecutiveMisses++
	m.TotalErrors++
	s.Mole = m
	if m.ConsecutiveMisses >= MoleMaxConsecutive || m.TotalErrors >= MoleMaxTotal {
		return moleRoundLost(s, now)
	}
	return s
}

func moleRoundWon(s State, now time.Time) State {
	round := s.Mole.Round
	s.Mole = MoleState{}
	if next, ok := moleRoundDone[round]; ok {
		s = s.EnterStep(next, now)
	}
	return s
}

// moleRoundLost shows the failure message; the scheduler restarts the same
// round, counters zeroed, after the fixed delay.
func moleRoundLost(s State, now time.Time) State {
	round := s.Mole.Round
	rng := s.Mole.Rng
	s.Mole = MoleState{Round: round, Rng: rng} // Active false: round is parked
	s = s.ShowMessage(MoleFailureText, now)
	return s
}
