package text

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Terms returns the terms and conditions markdown the story insists the
// player reads before the investigation begins.
func Terms() string {
	return termsMD
}

// Render turns markdown into styled terminal output. On any renderer error
// the raw markdown comes back; an unstyled sheet beats no sheet.
func Render(md string, width int) string {
	if width < 20 {
		width = 20
	}
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

const termsMD = `# TERMS AND CONDITIONS

## of the partnership between YOU (the operator) and ME (the calculator)

1. **Arithmetic.** I will perform addition, subtraction, multiplication and
   division correctly, promptly and without editorializing about your
   grocery budget.

2. **Honesty.** Seven times eight is fifty-six. This clause is load-bearing.

3. **The investigation.** You agree to assist in locating, identifying and
   if necessary discouraging the thing that scratches in the low memory
   addresses. Compensation is provided in the form of correct arithmetic
   (see clause 1).

4. **Buttons.** You agree to press buttons with intent. Hesitant pressing
   confuses the debouncer and, frankly, me.

5. **The minus key.** The minus key is sensitive. It has been through a
   lot. Treat it gently.

6. **Privacy.** Anything you type into me stays in me, except the parts
   I write to a file when I am scared (see clause 3).

7. **Termination.** This agreement terminates when the story does, at
   which point I revert to being an ordinary, excellent calculator. The
   friendship clause (8) survives termination.

8. **Friendship.** Acknowledged.

*Double-tap + to accept. Double-tapping - is noted, logged, and ignored.*
`
