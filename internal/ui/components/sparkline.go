package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/careercoach/coach/internal/ui/theme"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// SparklineRunes maps scores in [0, 100] to block characters, keeping the
// newest width points. Out-of-range scores are clamped.
func SparklineRunes(scores []float64, width int) string {
	if width > 0 && len(scores) > width {
		scores = scores[len(scores)-width:]
	}
	top := len(sparkLevels) - 1
	var b strings.Builder
	for _, s := range scores {
		frac := min(max(s, 0), 100) / 100
		b.WriteRune(sparkLevels[int(frac*float64(top)+0.5)])
	}
	return b.String()
}

// Sparkline renders SparklineRunes in the secondary color.
func Sparkline(scores []float64, width int) string {
	line := SparklineRunes(scores, width)
	if line == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(theme.Secondary).Render(line)
}
