package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{120, 40, false},
		{79, 24, true},
		{80, 23, true},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderMinSizeMessage(t *testing.T) {
	out := RenderMinSizeMessage(40, 10)
	for _, want := range []string{"Terminal too small", "80x24", "40x10"} {
		if !strings.Contains(out, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestFrame_Render(t *testing.T) {
	f := Frame{
		Title:    "Interview Quiz",
		Identity: "user-42 · api.example",
		Status:   "Q2/10 · 1 answered",
		Hints:    []KeyHint{{Key: "Enter", Description: "Next"}, {Key: "Esc", Description: "Leave"}},
	}
	out := f.Render("question body", 100, 30)

	for _, want := range []string{"Coach", "Interview Quiz", "user-42", "Q2/10 · 1 answered", "Enter", "Leave", "question body"} {
		if !strings.Contains(out, want) {
			t.Errorf("frame missing %q", want)
		}
	}
	if got := lipgloss.Height(out); got != 30 {
		t.Errorf("frame height = %d, want 30", got)
	}
}

func TestFrame_BodyHeight(t *testing.T) {
	f := Frame{Title: "Home"}
	body := f.BodyHeight(100, 30)
	if body <= 0 || body >= 30 {
		t.Fatalf("body height = %d, want within (0, 30)", body)
	}

	tall := strings.Repeat("line\n", 100)
	if got := lipgloss.Height(f.Render(tall, 100, 30)); got != 30 {
		t.Errorf("overflowing content height = %d, want 30", got)
	}

	if got := f.BodyHeight(100, 2); got != 0 {
		t.Errorf("body height in tiny terminal = %d, want 0", got)
	}
}
