package engine

import "strings"

// Word game: a 12x8 gravity-consistent grid of letters. Letters fall from a
// pre-shuffled helper queue (weighted random once exhausted), the player
// selects connected cells and confirms a word against the category lexicon.

const (
	WordRows = 12
	WordCols = 8
)

// WordQuestion identifies which category the active round answers.
type WordQuestion int

const (
	QuestionMood WordQuestion = iota
	QuestionColor
	QuestionSeason
	QuestionCuisine
)

// Cell addresses one grid position.
type Cell struct {
	Row, Col int
}

// WordGameState is the word game's slice of the snapshot.
type WordGameState struct {
	Active     bool
	Question   WordQuestion
	Grid       [WordRows][WordCols]rune // 0 = empty
	Falling    rune
	FallRow    int
	FallCol    int
	HasFalling bool
	Selection  []Cell
	Queue      []rune // helper letters remaining
	Rng        uint64 // deterministic stream for spawn column / fallback letters
	ReturnStep int    // conversation step to hand control back to
	Notice     string
}

// questionReturnSteps maps the minigame step that started the round to the
// dialogue step entered once a word is accepted.
var questionReturnSteps = map[WordQuestion]int{
	QuestionMood:    103,
	QuestionColor:   105,
	QuestionSeason:  107,
	QuestionCuisine: 109,
}

// helperQueues seed each round with letters that can actually spell the
// common answers before the weighted-random fallback kicks in.
var helperQueues = map[WordQuestion]string{
	QuestionMood:    "DASOKGYMHBILTEACREDNUF",
	QuestionColor:   "EDERLUEBNGRELOWYKNIPAC",
	QuestionSeason:  "MMUSREATNIWLLAFGNIRPSE",
	QuestionCuisine: "NAILATIESENIHCNACIXEMT",
}

func startWordGame(s State, q WordQuestion, seed uint64) State {
	w := WordGameState{
		Active:     true,
		Question:   q,
		Rng:        seed | 1,
		ReturnStep: questionReturnSteps[q],
	}
	w.Queue = shuffleLetters([]rune(helperQueues[q]), &w.Rng)
	s.Word = w
	return s
}

// lcg is the minigames' deterministic stream; transitions stay replayable.
func lcg(r *uint64) uint64 {
	*r = *r*6364136223846793005 + 1442695040888963407
	return *r >> 33
}

func shuffleLetters(letters []rune, r *uint64) []rune {
	out := append([]rune(nil), letters...)
	for i := len(out) - 1; i > 0; i-- {
		j := int(lcg(r) % uint64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// weighted fallback roughly follows English letter frequency.
const fallbackLetters = "EEEEAAAIIOONNRRTTLSSUDGBCMPFHVWYK"

func (w *WordGameState) nextLetter() rune {
	if len(w.Queue) > 0 {
		ch := w.Queue[0]
		w.Queue = append([]rune(nil), w.Queue[1:]...)
		return ch
	}
	return rune(fallbackLetters[int(lcg(&w.Rng))%len(fallbackLetters)])
}

// wordTick advances the falling letter one row, locking it when blocked and
// spawning the next from the queue. A full spawn column ends the round in a
// reshuffle rather than an overflow.
func wordTick(s State) State {
	w := s.Word
	if !w.Active {
		return s
	}
	if !w.HasFalling {
		w.Falling = w.nextLetter()
		w.FallCol = int(lcg(&w.Rng) % WordCols)
		w.FallRow = 0
		if w.Grid[0][w.FallCol] != 0 {
			// Column full at the top: clear the board and keep going.
			w.Grid = [WordRows][WordCols]rune{}
			w.Selection = nil
		}
		w.HasFalling = true
		s.Word = w
		return s
	}
	next := w.FallRow + 1
	if next >= WordRows || w.Grid[next][w.FallCol] != 0 {
		w.Grid[w.FallRow][w.FallCol] = w.Falling
		w.HasFalling = false
	} else {
		w.FallRow = next
	}
	s.Word = w
	return s
}

// toggleCell flips membership of a filled cell in the selection set.
func toggleCell(s State, row, col int) State {
	w := s.Word
	if !w.Active || row < 0 || row >= WordRows || col < 0 || col >= WordCols {
		return s
	}
	if w.Grid[row][col] == 0 {
		return s
	}
	for i, c := range w.Selection {
		if c.Row == row && c.Col == col {
			sel := append([]Cell(nil), w.Selection[:i]...)
			sel = append(sel, w.Selection[i+1:]...)
			w.Selection = sel
			s.Word = w
			return s
		}
	}
	w.Selection = append(append([]Cell(nil), w.Selection...), Cell{Row: row, Col: col})
	s.Word = w
	return s
}

// SelectionConnected reports whether every cell except the first is
// 4-directionally adjacent to some earlier-selected cell. Connectivity by
// any predecessor, not a strict path.
func SelectionConnected(sel []Cell) bool {
	if len(sel) == 0 {
		return false
	}
	for i := 1; i < len(sel); i++ {
		ok := false
		for j := 0; j < i; j++ {
			dr := abs(sel[i].Row - sel[j].Row)
			dc := abs(sel[i].Col - sel[j].Col)
			if dr+dc == 1 {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// selectionWord concatenates the selected letters in selection order.
func selectionWord(w WordGameState) string {
	var b strings.Builder
	for _, c := range w.Selection {
		b.WriteRune(w.Grid[c.Row][c.Col])
	}
	return strings.ToUpper(b.String())
}

// singleLetterWords is the whitelist for one-cell selections.
var singleLetterWords = map[string]bool{"I": true, "A": true, "O": true}

// removeSelection deletes the accepted cells and compacts every touched
// column so letters settle to the lowest free cell.
func removeSelection(w WordGameState) WordGameState {
	for _, c := range w.Selection {
		w.Grid[c.Row][c.Col] = 0
	}
	cols := map[int]bool{}
	for _, c := range w.Selection {
		cols[c.Col] = true
	}
	for col := range cols {
		w = compactColumn(w, col)
	}
	w.Selection = nil
	return w
}

func compactColumn(w WordGameState, col int) WordGameState {
	write := WordRows - 1
	for row := WordRows - 1; row >= 0; row-- {
		if w.Grid[row][col] != 0 {
			ch := w.Grid[row][col]
			w.Grid[row][col] = 0
			w.Grid[write][col] = ch
			write--
		}
	}
	return w
}

// confirmWord validates the selection and either hands control back to the
// conversation or re-prompts. The dialogue tree accepts almost any real
// word to avoid dead ends, with question-specific rejects.
func confirmWord(s State) (State, bool) {
	w := s.Word
	if !w.Active || len(w.Selection) == 0 {
		return s, false
	}
	if !SelectionConnected(w.Selection) {
		w.Notice = "those letters aren't touching. pick a connected trail."
		s.Word = w
		return s, false
	}
	word := selectionWord(w)
	if len([]rune(word)) == 1 {
		if !singleLetterWords[word] {
			w.Notice = "one letter is only a word if it's I, A or O."
			s.Word = w
			return s, false
		}
	} else if !KnownWord(word) {
		w.Notice = rejectWithSuggestion(word)
		s.Word = w
		return s, false
	}
	if reject, msg := questionReject(w.Question, word); reject {
		w = removeSelection(w)
		w.Notice = msg
		s.Word = w
		return s, false
	}
	s.Word = WordGameState{}
	return s, true
}

// questionReject covers the few nonsense answers the script refuses.
func questionReject(q WordQuestion, word string) (bool, string) {
	switch q {
	case QuestionCuisine:
		if word == "NONE" {
			return true, "\"none\" is not a cuisine. everyone eats something. try again."
		}
	case QuestionMood:
		if word == "NO" {
			return true, "\"no\" is not a feeling. dig deeper."
		}
	}
	return false, ""
}
