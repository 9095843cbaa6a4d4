package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// NoticeCard renders an alert-style card: a title, the message and a
// dismiss hint inside a rounded border.
func NoticeCard(title, message, hint string, border lipgloss.Color) string {
	body := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n" + message
	if hint != "" {
		body += "\n\n" + lipgloss.NewStyle().Faint(true).Render(hint)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Render(body)
}

// Overlay centres card on top of base within a width x height canvas.
// Rows of base outside the card are kept as-is. Without a known canvas
// size the card is appended below base instead.
func Overlay(base, card string, width, height int) string {
	if width <= 0 || height <= 0 {
		return base + "\n\n" + card
	}

	rows := strings.Split(base, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}

	cardRows := strings.Split(card, "\n")
	cardWidth := 0
	for _, r := range cardRows {
		cardWidth = max(cardWidth, ansi.StringWidth(r))
	}
	x := max(0, (width-cardWidth)/2)
	y := max(0, (height-len(cardRows))/2)

	for i, cr := range cardRows {
		row := y + i
		if row >= height {
			break
		}
		rows[row] = splice(rows[row], cr, x, cardWidth, width)
	}
	return strings.Join(rows, "\n")
}

// splice replaces columns [x, x+w) of line with seg, keeping ANSI
// sequences on both sides intact.
func splice(line, seg string, x, w, width int) string {
	line = fill(line, width)
	left := ansi.Truncate(line, x, "")
	right := ansi.TruncateLeft(line, x+w, "")
	return ansi.Truncate(left+fill(seg, w)+right, width, "")
}

func fill(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
