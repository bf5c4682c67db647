package text

import (
	"strings"
	"testing"
)

func TestTermsCarryTheLoadBearingClause(t *testing.T) {
	md := Terms()
	if !strings.Contains(md, "fifty-six") {
		t.Fatal("the honesty clause is missing")
	}
	if !strings.Contains(md, "# TERMS AND CONDITIONS") {
		t.Fatal("not a markdown document")
	}
}

func TestRenderNeverReturnsEmpty(t *testing.T) {
	for _, width := range []int{0, 10, 40, 120} {
		out := Render(Terms(), width)
		if out == "" {
			t.Fatalf("width %d rendered nothing", width)
		}
	}
}

func TestRenderKeepsTheContent(t *testing.T) {
	out := Render("plain *emphasis* text", 60)
	if !strings.Contains(out, "emphasis") {
		t.Fatalf("content lost in rendering: %q", out)
	}
}
