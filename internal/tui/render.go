package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/gallery/internal/core/photos"
	"github.com/colonyops/gallery/internal/core/styles"
)

const (
	// stripHeight is the thumbnail cell height including its border.
	stripHeight = 3

	msgLoading = "Loading…"
	msgFailed  = "No Data, Check API Configuration."
	msgEmpty   = "No photos found."
)

// renderPage renders record i as a full page of exactly w×h cells.
func renderPage(rec photos.Record, i, n, w, h int) string {
	textWidth := max(w-4, 1)

	title := rec.Alt
	if title == "" {
		title = "Photo " + rec.ID
	}

	lines := []string{
		styles.PageTitleStyle.Render(ansi.Truncate(title, textWidth, "…")),
		"",
	}
	if rec.Photographer != "" {
		lines = append(lines, ansi.Truncate(
			styles.PageLabelStyle.Render("by ")+styles.PageValueStyle.Render(rec.Photographer),
			textWidth, "…"))
	}
	lines = append(lines,
		ansi.Truncate(styles.PageLabelStyle.Render("id ")+styles.PageValueStyle.Render(rec.ID), textWidth, "…"),
		styles.PageURIStyle.Render(ansi.Truncate(rec.PortraitURI, textWidth, "…")),
		"",
		styles.PageCounterStyle.Render(fmt.Sprintf("%d / %d", i+1, n)),
	)

	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, block)
}

// renderDetail renders the w-wide window of the page row starting at column
// offset. When the window straddles two pages both are visible, so a swipe
// in flight slides.
func renderDetail(seq []photos.Record, offset, w, h int) string {
	if w <= 0 || h <= 0 || len(seq) == 0 {
		return ""
	}

	first := min(offset/w, len(seq)-1)
	local := offset - first*w

	left := strings.Split(renderPage(seq[first], first, len(seq), w, h), "\n")
	if local == 0 || first+1 >= len(seq) {
		return strings.Join(left, "\n")
	}

	right := strings.Split(renderPage(seq[first+1], first+1, len(seq), w, h), "\n")
	rows := make([]string, len(left))
	for r := range left {
		var next string
		if r < len(right) {
			next = right[r]
		}
		rows[r] = ansi.Cut(left[r]+next, local, local+w)
	}
	return strings.Join(rows, "\n")
}

// stripContentWidth is the full width of the thumbnail row, including the
// leading and trailing padding.
func stripContentWidth(n, itemSize, spacing int) int {
	if n == 0 {
		return 0
	}
	return spacing + n*itemSize + (n-1)*spacing + spacing
}

// renderStrip renders the w-wide window of the thumbnail row starting at
// column offset.
func renderStrip(n, active, offset, w, itemSize, spacing int) string {
	rows := make([]strings.Builder, stripHeight)
	pad := strings.Repeat(" ", spacing)

	for r := range rows {
		rows[r].WriteString(pad)
	}

	for i := range n {
		style := styles.ThumbStyle
		if i == active {
			style = styles.ThumbActiveStyle
		}
		label := ansi.Truncate(fmt.Sprintf("%d", i+1), max(itemSize-2, 1), "")
		cell := strings.Split(style.Width(max(itemSize-2, 1)).Render(label), "\n")

		for r := range rows {
			if r < len(cell) {
				rows[r].WriteString(cell[r])
			}
			if i < n-1 {
				rows[r].WriteString(pad)
			}
		}
	}

	out := make([]string, stripHeight)
	for r := range rows {
		rows[r].WriteString(pad)
		out[r] = ansi.Cut(rows[r].String(), offset, offset+w)
	}
	return strings.Join(out, "\n")
}

// thumbAt maps a column inside the strip to a thumbnail index. Clicks on
// padding or gaps between cells hit nothing.
func thumbAt(x, offset, n, itemSize, spacing int) (int, bool) {
	stride := itemSize + spacing
	if stride <= 0 {
		return 0, false
	}

	contentX := x + offset - spacing
	if contentX < 0 || contentX%stride >= itemSize {
		return 0, false
	}

	idx := contentX / stride
	if idx >= n {
		return 0, false
	}
	return idx, true
}
