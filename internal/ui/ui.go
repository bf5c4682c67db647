package ui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/PreOnZi/justacalculator/internal/engine"
	"github.com/PreOnZi/justacalculator/internal/store"
)

// The UI is a thin face over the runtime: key presses become engine events,
// snapshots become frames. All story logic lives behind the snapshot channel.

type snapshotMsg engine.State

// historyMsg carries recent calculations fetched for the overlay.
type historyMsg []string

type model struct {
	ctx     context.Context
	events  chan<- engine.Event
	snaps   <-chan engine.State
	st      engine.State
	history *store.HistoryRepo
	session uuid.UUID
	version string

	width  int
	height int

	// word-game cursor
	cursorRow int
	cursorCol int

	// terms sheet scroll
	termsScroll int

	// recent-calculations overlay
	historyOpen  bool
	historyLines []string
}

func initialModel(ctx context.Context, events chan<- engine.Event, snaps <-chan engine.State,
	history *store.HistoryRepo, session uuid.UUID, version string) model {
	return model{
		ctx:     ctx,
		events:  events,
		snaps:   snaps,
		history: history,
		session: session,
		version: version,
		width:   80,
		height:  24,
	}
}

func (m model) Init() tea.Cmd {
	return waitSnapshot(m.snaps)
}

func waitSnapshot(ch <-chan engine.State) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-ch)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		prev := m.st
		m.st = engine.State(msg)
		if m.history != nil && len(m.st.History) > len(prev.History) {
			entry := m.st.History[len(m.st.History)-1]
			go m.logHistory(entry)
		}
		return m, waitSnapshot(m.snaps)

	case historyMsg:
		m.historyLines = []string(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	now := time.Now()

	switch key {
	case "ctrl+c", "ctrl+q":
		return m, tea.Quit
	case "ctrl+y":
		if m.st.Display != "" {
			_ = clipboard.WriteAll(m.st.Display)
		}
		return m, nil
	}

	// Terms sheet swallows everything until accepted.
	if m.st.TermsOpen {
		switch key {
		case "up":
			if m.termsScroll > 0 {
				m.termsScroll--
			}
		case "down":
			m.termsScroll++
		case "enter", "y":
			m.termsScroll = 0
			m.send(engine.TermsAccept{At: now})
		}
		return m, nil
	}

	// Recent-calculations overlay. Any key dismisses it.
	if m.historyOpen {
		m.historyOpen = false
		return m, nil
	}
	if key == "h" {
		m.historyOpen = true
		m.historyLines = nil
		return m, m.fetchHistory()
	}

	// Word game: grid navigation plus the pad.
	if m.st.Word.Active {
		switch key {
		case "up", "down", "left", "right":
			m.moveCursor(key)
			return m, nil
		case " ":
			m.send(engine.CellTap{Row: m.cursorRow, Col: m.cursorCol, At: now})
			return m, nil
		case "enter":
			m.send(engine.WordConfirm{At: now})
			return m, nil
		}
	}

	// Letter puzzles pick by index.
	if m.st.Scramble.Active {
		if i, ok := digitIndex(key, len(m.st.Scramble.Letters)); ok {
			m.send(engine.ScramblePick{Index: i, At: now})
			return m, nil
		}
	}
	if m.st.Chaos.Active {
		if i, ok := digitIndex(key, len(m.st.Chaos.Letters)); ok {
			m.send(engine.ChaosPick{Index: i, At: now})
			return m, nil
		}
	}

	if label, ok := keyToButton(key); ok {
		m.send(engine.ButtonPress{Label: label, At: now})
	}
	return m, nil
}

func (m *model) moveCursor(key string) {
	switch key {
	case "up":
		if m.cursorRow > 0 {
			m.cursorRow--
		}
	case "down":
		if m.cursorRow < engine.WordRows-1 {
			m.cursorRow++
		}
	case "left":
		if m.cursorCol > 0 {
			m.cursorCol--
		}
	case "right":
		if m.cursorCol < engine.WordCols-1 {
			m.cursorCol++
		}
	}
}

func (m model) send(ev engine.Event) {
	select {
	case m.events <- ev:
	case <-m.ctx.Done():
	}
}

func (m model) logHistory(entry string) {
	expr, res := splitHistory(entry)
	_ = m.history.Append(m.ctx, m.session, expr, res)
}

// fetchHistory loads the last calculations off the main loop; the result
// arrives as a historyMsg.
func (m model) fetchHistory() tea.Cmd {
	if m.history == nil {
		return nil
	}
	repo, ctx, sess := m.history, m.ctx, m.session
	return func() tea.Msg {
		lines, err := repo.Recent(ctx, sess, 10)
		if err != nil {
			return historyMsg(nil)
		}
		return historyMsg(lines)
	}
}

// keyToButton maps terminal keys onto the nineteen-button pad.
func keyToButton(key string) (string, bool) {
	switch key {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return key, true
	case ".":
		return ".", true
	case "+":
		return engine.BtnPlus, true
	case "-":
		return engine.BtnMinus, true
	case "*", "x":
		return engine.BtnTimes, true
	case "/":
		return engine.BtnDivide, true
	case "%":
		return engine.BtnPercent, true
	case "(", ")":
		return engine.BtnParens, true
	case "=", "enter":
		return engine.BtnEquals, true
	case "c", "C":
		return engine.BtnClear, true
	case "backspace":
		return engine.BtnDelete, true
	}
	return "", false
}

// digitIndex maps keys 1..9 to a zero-based index below n.
func digitIndex(key string, n int) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	i := int(key[0] - '1')
	if i >= n {
		return 0, false
	}
	return i, true
}

func splitHistory(entry string) (string, string) {
	for i := len(entry) - 1; i >= 0; i-- {
		if entry[i] == '=' {
			return strings.TrimSpace(entry[:i]), strings.TrimSpace(entry[i+1:])
		}
	}
	return entry, ""
}
