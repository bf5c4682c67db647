package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/PreOnZi/justacalculator/internal/engine"
	"github.com/PreOnZi/justacalculator/internal/text"
)

func (m model) View() string {
	s := m.st
	p := paletteFor(s.InvertedColors)

	if s.ScreenBlackout {
		return m.viewBlackout(p)
	}
	if s.TermsOpen {
		return m.viewTerms(p)
	}
	if s.Console.Open {
		return m.viewConsole(p)
	}
	if m.historyOpen {
		return m.viewHistory(p)
	}
	if s.BrowserPhase > 0 {
		return m.viewBrowser(p)
	}
	if s.CameraOpen {
		return m.viewCamera(p)
	}

	var b strings.Builder
	b.WriteString(m.viewTitle(p))
	b.WriteString("\n")
	b.WriteString(m.viewMessage(p))
	b.WriteString("\n")
	b.WriteString(m.viewDisplay(p))
	b.WriteString("\n")

	switch {
	case s.Word.Active:
		b.WriteString(m.viewWordGame(p))
	case s.Scramble.Active:
		b.WriteString(m.viewScramble(p))
	case s.Chaos.Active:
		b.WriteString(m.viewChaos(p))
	default:
		b.WriteString(m.viewPad(p))
	}

	out := b.String()
	if s.ShakeIntensity > 0 {
		out = shake(out, s)
	}
	if s.FlickerEffect && (s.ScreenTimeMs/180)%7 == 0 {
		out = lipgloss.NewStyle().Foreground(p.Muted).Render(stripANSI(out))
	}
	return out
}

// viewHistory lists the last evaluated expressions, newest first.
func (m model) viewHistory(p palette) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(p.Accent).Render("HISTORY"))
	b.WriteString("\n\n")
	if len(m.historyLines) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(p.Muted).Render("nothing yet. calculate something."))
	}
	for _, line := range m.historyLines {
		b.WriteString(lipgloss.NewStyle().Foreground(p.Text).Render("  " + line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(p.Muted).Render("press any key to go back"))
	return lipgloss.NewStyle().
		Background(p.Surface).
		Padding(1, 2).
		Width(padWidth(m.width)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Render(b.String())
}

func (m model) viewTitle(p palette) string {
	title := lipgloss.NewStyle().Foreground(p.Muted).Render("just a calculator " + m.version)
	if m.st.Muted {
		title += lipgloss.NewStyle().Foreground(p.Danger).Render("  [muted]")
	}
	return title
}

// viewMessage renders the conversation panel: the revealed prefix plus a
// cursor while typing.
func (m model) viewMessage(p palette) string {
	s := m.st
	msg := s.Message
	if s.IsTyping {
		msg += "▌"
	}
	if msg == "" && !s.InConversation {
		return ""
	}
	style := lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Surface).
		Padding(0, 1).
		Width(padWidth(m.width)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border)
	body := msg
	if s.Countdown > 0 {
		body += lipgloss.NewStyle().Foreground(p.Danger).Render(fmt.Sprintf("\n\n  %d", s.Countdown))
	}
	return style.Render(body)
}

func (m model) viewDisplay(p palette) string {
	s := m.st
	line := s.Expression
	if line == "" {
		line = s.Number1
		if s.Op != "" {
			line += " " + s.Op + " " + s.Number2
		}
	}
	if line == "" {
		line = "0"
	}
	result := s.Display
	style := lipgloss.NewStyle().
		Foreground(p.Display).
		Background(p.Surface).
		Padding(0, 1).
		Width(padWidth(m.width)).
		Align(lipgloss.Right).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border)
	if result == engine.ErrorToken {
		style = style.Foreground(p.Danger)
	}
	body := line
	if result != "" {
		body += "\n" + result
	}
	return style.Render(body)
}

// viewPad draws the nineteen-button grid, four per row.
func (m model) viewPad(p palette) string {
	s := m.st
	var rows []string
	var row []string
	for _, label := range engine.AllButtons {
		row = append(row, m.renderKey(p, label))
		if len(row) == 4 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	pad := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if s.Mole.Active {
		status := fmt.Sprintf("score %d/%d   misses %d   errors %d",
			s.Mole.Score, 8, s.Mole.ConsecutiveMisses, s.Mole.TotalErrors)
		if s.Mole.Countdown > 0 {
			status = fmt.Sprintf("get ready... %d", s.Mole.Countdown)
		}
		pad += "\n" + lipgloss.NewStyle().Foreground(p.Accent).Render(status)
	}
	return pad
}

func (m model) renderKey(p palette, label string) string {
	s := m.st
	style := lipgloss.NewStyle().
		Width(6).
		Align(lipgloss.Center).
		Padding(0, 1).
		Margin(0, 1, 0, 0).
		Foreground(p.Text).
		Background(p.KeyFace)
	switch {
	case s.Mole.Active && s.Mole.Target == label:
		style = style.Background(p.KeyLit).Foreground(p.Background).Bold(true)
	case s.IsButtonDark(label):
		style = style.Background(p.KeyDark).Foreground(p.Muted)
	case s.FlickeringButton == label && (s.ScreenTimeMs/250)%2 == 0:
		style = style.Background(p.KeyDark).Foreground(p.Muted)
	case s.PendingPress == label:
		style = style.Background(p.Accent).Foreground(p.Background)
	case s.MinusDamaged && label == engine.BtnMinus:
		style = style.Foreground(p.Danger)
	}
	return style.Render(label)
}

func (m model) viewWordGame(p palette) string {
	s := m.st
	w := s.Word
	selected := map[engine.Cell]bool{}
	for _, c := range w.Selection {
		selected[c] = true
	}
	var b strings.Builder
	for r := 0; r < engine.WordRows; r++ {
		for c := 0; c < engine.WordCols; c++ {
			ch := w.Grid[r][c]
			if w.HasFalling && r == w.FallRow && c == w.FallCol {
				ch = w.Falling
			}
			cell := " ."
			if ch != 0 {
				cell = " " + string(ch)
			}
			style := lipgloss.NewStyle().Foreground(p.Text)
			switch {
			case selected[engine.Cell{Row: r, Col: c}]:
				style = style.Foreground(p.Background).Background(p.Accent)
			case r == m.cursorRow && c == m.cursorCol:
				style = style.Background(p.Surface).Foreground(p.AccentAlt)
			case ch == 0:
				style = style.Foreground(p.Muted)
			}
			b.WriteString(style.Render(cell))
		}
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.Muted).
		Render("arrows move · space selects · enter spells"))
	if w.Notice != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(p.Danger).Render(w.Notice))
	}
	return b.String()
}

func (m model) viewScramble(p palette) string {
	sc := m.st.Scramble
	var b strings.Builder
	for i, ch := range sc.Letters {
		style := lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
		if sc.Used[i] {
			style = lipgloss.NewStyle().Foreground(p.Muted)
		}
		b.WriteString(style.Render(fmt.Sprintf(" %d:%c", i+1, ch)))
	}
	b.WriteString("\n\n")
	slots := string(sc.Slots)
	for len(slots) < len(sc.Letters) {
		slots += "_"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.Display).Bold(true).Render("  " + spread(slots)))
	b.WriteString("\n" + lipgloss.NewStyle().Foreground(p.Muted).Render("press a number to place that letter"))
	if sc.Notice != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(p.Danger).Render(sc.Notice))
	}
	return b.String()
}

func (m model) viewChaos(p palette) string {
	c := m.st.Chaos
	var b strings.Builder
	for i, l := range c.Letters {
		style := lipgloss.NewStyle().Foreground(p.AccentAlt).Bold(true)
		mark := " "
		if l.Picked {
			style = lipgloss.NewStyle().Foreground(p.Muted)
			mark = "*"
		}
		b.WriteString(style.Render(fmt.Sprintf(" %d:%c%s (%.1f,%.1f,%.1f r%03.0f)",
			i+1, l.Ch, mark, l.X, l.Y, l.Z, l.Rot)))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.Accent).
		Render(fmt.Sprintf("reassembled %d/%d", c.Progress, len(engine.ScrambleTarget))))
	if c.Notice != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(p.Danger).Render(c.Notice))
	}
	return b.String()
}

func (m model) viewTerms(p palette) string {
	body := text.Render(text.Terms(), padWidth(m.width))
	lines := strings.Split(body, "\n")
	visible := m.height - 3
	if visible < 5 {
		visible = 5
	}
	start := m.termsScroll
	if start > len(lines)-1 {
		start = len(lines) - 1
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}
	footer := lipgloss.NewStyle().Foreground(p.Muted).
		Render("↑/↓ scroll · enter accepts")
	return strings.Join(lines[start:end], "\n") + "\n" + footer
}

func (m model) viewConsole(p palette) string {
	c := m.st.Console
	style := lipgloss.NewStyle().
		Foreground(p.Display).
		Background(lipgloss.Color("#000000")).
		Padding(1, 2).
		Width(padWidth(m.width)).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(p.Border)
	body := c.Notice
	if c.Entry != "" {
		body += "\n\n> " + c.Entry
	} else {
		body += "\n\n> _"
	}
	return style.Render(body)
}

func (m model) viewBrowser(p palette) string {
	s := m.st
	var b strings.Builder
	bar := lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Surface).
		Padding(0, 1).
		Width(padWidth(m.width)).
		Render("🔍 " + s.SearchTyped + "▌")
	b.WriteString(lipgloss.NewStyle().Foreground(p.Muted).Render("firmware browser v0.2 (never used)"))
	b.WriteString("\n" + bar + "\n")
	for _, line := range engine.BrowserResultLines(s.BrowserPhase) {
		b.WriteString(lipgloss.NewStyle().Foreground(p.Accent).Render("  "+line) + "\n")
	}
	article := engine.BrowserArticleLines(s.BrowserPhase)
	if len(article) > 0 {
		b.WriteString("\n")
		for _, line := range article {
			b.WriteString(lipgloss.NewStyle().Foreground(p.Text).Render("  "+line) + "\n")
		}
	}
	return b.String()
}

func (m model) viewCamera(p palette) string {
	frame := lipgloss.NewStyle().
		Foreground(p.Accent).
		Border(lipgloss.ThickBorder()).
		BorderForeground(p.Danger).
		Padding(1, 4).
		Render("●  REC\n\n   ( you )\n\nten seconds. i just want to look.")
	return frame
}

func (m model) viewBlackout(p palette) string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#2a2a2a"))
	msg := m.st.Message
	if m.st.IsTyping {
		msg += "▌"
	}
	return dim.Render(msg)
}

func padWidth(width int) int {
	w := width - 4
	if w < 24 {
		w = 24
	}
	if w > 72 {
		w = 72
	}
	return w
}

func spread(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// shake nudges lines sideways based on elapsed time. Cheap, but the effect
// reads as intended at terminal refresh rates.
func shake(view string, s engine.State) string {
	offset := int(s.ScreenTimeMs/90) % (s.ShakeIntensity + 1)
	pad := strings.Repeat(" ", offset)
	lines := strings.Split(view, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case inEsc:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEsc = false
			}
		case r == 0x1b:
			inEsc = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
