package engine

import "time"

// Chaos letters: the display "comes apart" into floating 3D glyphs and the
// player picks them back in order. Positions and rotation are plain data;
// rendering them is somebody else's problem.

// ChaosLetter is one floating glyph.
type ChaosLetter struct {
	Ch      rune
	X, Y, Z float64
	Rot     float64
	Picked  bool
}

// ChaosState is the chaos puzzle slice of the snapshot.
type ChaosState struct {
	Active   bool
	Letters  []ChaosLetter
	Progress int // letters of the target matched so far
	Notice   string
}

func startChaos(s State, seed uint64) State {
	r := seed | 1
	target := []rune(ScrambleTarget)
	order := shuffleLetters(target, &r)
	letters := make([]ChaosLetter, len(order))
	for i, ch := range order {
		letters[i] = ChaosLetter{
			Ch:  ch,
			X:   float64(int(lcg(&r)%200)) / 100 * 2 - 2,
			Y:   float64(int(lcg(&r)%200)) / 100 * 2 - 2,
			Z:   float64(int(lcg(&r)%100)) / 100 * 3,
			Rot: float64(int(lcg(&r) % 360)),
		}
	}
	s.Chaos = ChaosState{Active: true, Letters: letters}
	return s
}

// chaosPick matches the picked glyph against the next target letter. Any
// wrong pick resets progress and unpicks everything.
func chaosPick(s State, i int, now time.Time) State {
	c := s.Chaos
	if !c.Active || i < 0 || i >= len(c.Letters) || c.Letters[i].Picked {
		return s
	}
	target := []rune(ScrambleTarget)
	letters := append([]ChaosLetter(nil), c.Letters...)
	if letters[i].Ch == target[c.Progress] {
		letters[i].Picked = true
		c.Letters = letters
		c.Progress++
		c.Notice = ""
		if c.Progress == len(target) {
			s.Chaos = ChaosState{}
			s.ChaosPhase = 0
			s.ScreenBlackout = false
			s.FlickerEffect = false
			return s.EnterStep(175, now)
		}
		s.Chaos = c
		return s
	}
	for j := range letters {
		letters[j].Picked = false
	}
	c.Letters = letters
	c.Progress = 0
	c.Notice = "wrong piece. it hurts. start over."
	s.Chaos = c
	return s
}

// chaosRotate spins the unpicked glyphs a little each tick. Cosmetic only.
func chaosRotate(s State) State {
	c := s.Chaos
	if !c.Active {
		return s
	}
	letters := append([]ChaosLetter(nil), c.Letters...)
	for i := range letters {
		if !letters[i].Picked {
			letters[i].Rot += 3
			if letters[i].Rot >= 360 {
				letters[i].Rot -= 360
			}
		}
	}
	c.Letters = letters
	s.Chaos = c
	return s
}
