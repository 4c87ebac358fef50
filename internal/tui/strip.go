package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/soham247/stellar-portfolio/internal/carousel"
)

// Card geometry in terminal cells.
const (
	cardWidth  = 30
	cardGap    = 2
	cardHeight = 5

	// ItemWidth is the strip width of one card including the gap.
	ItemWidth = cardWidth + cardGap

	// FrameInterval is slower than a browser frame; a terminal cell is
	// much wider than a pixel.
	FrameInterval = 80 * time.Millisecond
)

// NewLoop creates the carousel loop for items, one cell per frame.
func NewLoop(items []carousel.Item, opts ...carousel.Option) (*carousel.Loop, error) {
	opts = append([]carousel.Option{
		carousel.WithStep(1),
		carousel.WithInterval(FrameInterval),
	}, opts...)
	return carousel.NewLoop(carousel.NewStrip(items, ItemWidth), opts...)
}

// wrap splits s into lines of at most width cells, breaking on spaces.
func wrap(s string, width int) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(s) {
		word = ansi.Truncate(word, width, "…")
		switch {
		case line == "":
			line = word
		case lipgloss.Width(line)+1+lipgloss.Width(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// pad fills s with spaces up to width cells.
func pad(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	return pad(ansi.Truncate(s, width, "…"), width)
}

// cardRows draws one card as plain text rows, gap included.
func cardRows(item carousel.Item) [cardHeight]string {
	inner := cardWidth - 4
	desc := wrap(item.Description, inner)
	if len(desc) > 2 {
		desc = desc[:2]
		desc[1] = ansi.Truncate(desc[1], inner-1, "") + "…"
	}
	for len(desc) < 2 {
		desc = append(desc, "")
	}

	gap := strings.Repeat(" ", cardGap)
	return [cardHeight]string{
		"╭" + strings.Repeat("─", cardWidth-2) + "╮" + gap,
		"│ " + fit(item.Title, inner) + " │" + gap,
		"│ " + fit(desc[0], inner) + " │" + gap,
		"│ " + fit(desc[1], inner) + " │" + gap,
		"╰" + strings.Repeat("─", cardWidth-2) + "╯" + gap,
	}
}

// renderStrip draws the visible window of the strip: the cards in their
// rotated order, shifted left by the offset and clipped to width cells. A
// wide character cut by either edge is replaced with padding.
func renderStrip(strip *carousel.Strip, st carousel.State, width int) []string {
	var rows [cardHeight]strings.Builder
	for _, item := range strip.Order(st) {
		card := cardRows(item)
		for i := range rows {
			rows[i].WriteString(card[i])
		}
	}

	offset := int(st.Offset)
	out := make([]string, cardHeight)
	for i := range rows {
		row := rows[i].String()
		visible := min(width, max(0, lipgloss.Width(row)-offset))
		out[i] = clip(row, offset, visible)
	}
	return out
}

// clip returns width cells of row starting at cell left.
func clip(row string, left, width int) string {
	if width <= 0 {
		return ""
	}
	var lead string
	if lipgloss.Width(ansi.Truncate(row, left, "")) < left {
		lead = " "
		left++
		width--
	}
	return lead + pad(ansi.Cut(row, left, left+width), width)
}
