// Package layout draws the chrome around the active screen: a header bar
// with the screen title and signed-in identity, and a footer bar with key
// hints on the left and the screen's status on the right.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/careercoach/coach/internal/ui/theme"
)

// Smallest terminal the framed UI renders in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Frame holds what the chrome shows for the current screen.
type Frame struct {
	Title    string
	Identity string
	Status   string
	Hints    []KeyHint
}

var barStyle = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage explains the size requirement, centered.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small\n\nCoach needs %dx%d, this one is %dx%d.",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Hint.Align(lipgloss.Center).Render(msg))
}

// BodyHeight returns the rows left for screen content once the header and
// footer are drawn at width.
func (f Frame) BodyHeight(width, height int) int {
	chrome := lipgloss.Height(f.header(width)) + lipgloss.Height(f.footer(width))
	return max(height-chrome, 0)
}

// Render stacks header, content and footer into exactly height rows.
// Content taller than the body is cut.
func (f Frame) Render(content string, width, height int) string {
	header := f.header(width)
	footer := f.footer(width)
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content = lipgloss.NewStyle().
		Width(width).
		Height(body).
		MaxHeight(body).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (f Frame) header(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Coach")
	if f.Title != "" {
		left += theme.Hint.Render(" / ") + lipgloss.NewStyle().Foreground(theme.Text).Render(f.Title)
	}
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(f.Identity)
	return bar(left, right, width)
}

func (f Frame) footer(width int) string {
	parts := make([]string, 0, len(f.Hints))
	for _, h := range f.Hints {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+
			" "+lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	left := strings.Join(parts, theme.Hint.Render("  ·  "))
	right := lipgloss.NewStyle().Foreground(theme.Secondary).Render(f.Status)
	return bar(left, right, width)
}

// bar puts left and right at the two ends of a bordered one-line bar.
func bar(left, right string, width int) string {
	inner := max(width-4, 0) // border and one space each side
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return barStyle.Width(width).Render(" " + left + strings.Repeat(" ", gap) + right + " ")
}
