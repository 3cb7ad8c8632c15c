package tui

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/dewakost/dewakost/internal/history"
	"github.com/dewakost/dewakost/internal/listing"
)

// formatPrice formats a monthly rent as "Rp 700.000"
func formatPrice(v int64) string {
	return history.FormatRupiah(v)
}

// truncateStr truncates a string to maxLen runes with ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// splitList parses a comma-separated form value
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parsePrice accepts "700000", "700.000" or "Rp 700.000"
func parsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "Rp"), "rp")
	s = strings.NewReplacer(".", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price: %q", s)
	}
	return v, nil
}

// pagerView renders the page window, e.g. "‹ 1 … 4 [5] 6 … 10 ›"
func pagerView(current, total int) string {
	if total <= 1 {
		return ""
	}
	var b strings.Builder
	b.WriteString("‹ ")
	for i, n := range listing.PageNumbers(current, total) {
		if i > 0 {
			b.WriteString(" ")
		}
		switch n {
		case listing.Ellipsis:
			b.WriteString("…")
		case current:
			b.WriteString(activeStyle.Render(fmt.Sprintf("[%d]", n)))
		default:
			b.WriteString(strconv.Itoa(n))
		}
	}
	b.WriteString(" ›")
	return b.String()
}

// newInput builds a text input the way every form here uses them
func newInput(placeholder string, limit, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = width
	return ti
}

var (
	mdRendererMu sync.Mutex
	// keyed by wrap width; a fixed style avoids terminal background queries
	mdRenderers = map[int]*glamour.TermRenderer{}
)

// renderMarkdown renders a listing description for the detail view
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}

	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()

	r := mdRenderers[width]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[width] = rr
		r = rr
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// formView renders labelled inputs with a focus marker
func formView(labels []string, fields []textinput.Model, focus int) string {
	var b strings.Builder
	for i, label := range labels {
		indicator := "  "
		style := subtitleStyle
		if i == focus {
			indicator = "> "
			style = focusLabel
		}
		fmt.Fprintf(&b, "%s%s\n  %s\n\n", indicator, style.Render(label), fields[i].View())
	}
	return b.String()
}

// cycleFocus moves focus by delta within fields and returns the focus cmd
func cycleFocus(fields []textinput.Model, focus *int, delta int) tea.Cmd {
	fields[*focus].Blur()
	*focus = (*focus + delta + len(fields)) % len(fields)
	return fields[*focus].Focus()
}
