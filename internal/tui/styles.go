package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hivecastapp/hivecast/pkg/domain"
)

// Shimmer animation for the HIVECAST logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "H I V E C A S T" as a flowing wave of amber
// light, deep honey (#4a3208) -> bright amber (#fbbf24). No hue drift.
func renderShimmerLogo(frame int) string {
	const text = "HIVECAST"
	n := len(text)

	var out string
	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		// One smooth wave advancing through the text
		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(74 + b*(251-74))
		g := clampByte(50 + b*(191-50))
		bl := clampByte(8 + b*(36-8))

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)
		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color))
		out += s.Render(string(text[i]))

		if i < n-1 {
			out += "  "
		}
	}
	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

// The style set is rebuilt whenever the theme setting changes; applyTheme
// swaps the whole palette in place so views never branch on the theme.
var (
	dimStyle              lipgloss.Style
	normalStyle           lipgloss.Style
	selectedStyle         lipgloss.Style
	metaStyle             lipgloss.Style
	accentStyle           lipgloss.Style
	okStyle               lipgloss.Style
	warnStyle             lipgloss.Style
	dangerStyle           lipgloss.Style
	helpKeyStyle          lipgloss.Style
	helpLabelStyle        lipgloss.Style
	sectionHeaderStyle    lipgloss.Style
	inputPromptStyle      lipgloss.Style
	inputPlaceholderStyle lipgloss.Style
)

func init() {
	applyTheme(domain.ThemeDark)
}

// applyTheme installs the palette for the given theme. Unknown themes fall
// back to dark.
func applyTheme(theme string) {
	if theme == domain.ThemeLight {
		dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#707a88"))
		normalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#30343c"))
		selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#101418")).Bold(true)
		metaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9aa2b0"))
		accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#b45309"))
		okStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#15803d"))
		warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#b45309"))
		dangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#b91c1c"))
		helpKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#707a88"))
		helpLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9aa2b0"))
		sectionHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#848c9a"))
		inputPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#b45309")).Bold(true)
		inputPlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#b8c0cc"))
		return
	}
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0"))
	normalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0c4d0"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e4e4ec")).Bold(true)
	metaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#505868"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24"))
	okStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b"))
	dangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#b45555"))
	helpKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0"))
	helpLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#505868"))
	sectionHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#606878"))
	inputPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24")).Bold(true)
	inputPlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#343c4a"))
}

// categoryColors maps project categories to chip colors.
var categoryColors = map[string]lipgloss.Color{
	"film":        lipgloss.Color("#e06060"),
	"music":       lipgloss.Color("#b080d0"),
	"documentary": lipgloss.Color("#60a0e0"),
	"commercial":  lipgloss.Color("#f0944a"),
	"animation":   lipgloss.Color("#3ecce4"),
}

// CategoryStyle returns a bold style colored for the given category.
func CategoryStyle(category string) lipgloss.Style {
	if c, ok := categoryColors[category]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
}

// StatusStyle returns a style for a project lifecycle status.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case domain.StatusCompleted:
		return okStyle
	case domain.StatusInProgress:
		return warnStyle
	default:
		return dimStyle
	}
}

// eventTypeColors maps event types to chip colors.
var eventTypeColors = map[string]lipgloss.Color{
	"meeting":    lipgloss.Color("#60a0e0"),
	"shoot":      lipgloss.Color("#e06060"),
	"workshop":   lipgloss.Color("#f0944a"),
	"networking": lipgloss.Color("#b080d0"),
	"screening":  lipgloss.Color("#3ecce4"),
}

// EventTypeStyle returns a bold style colored for the given event type.
func EventTypeStyle(eventType string) lipgloss.Style {
	if c, ok := eventTypeColors[eventType]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	url   string
}

var helpItems = []helpItem{
	{"Website", "hivecast.app", "https://hivecast.app"},
	{"Help Center", "hivecast.app/help", "https://hivecast.app/help"},
	{"Terms of Service", "hivecast.app/terms", "https://hivecast.app/terms"},
	{"Privacy Policy", "hivecast.app/privacy", "https://hivecast.app/privacy"},
}

// helpView renders the interactive help overlay with a cursor.
func helpView(cursor int) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fbbf24")).
		Bold(true).
		Render("H I V E C A S T")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("the production desk for independent creators")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fbbf24"))
	linkDescStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	commands := []struct{ cmd, desc string }{
		{"hivecast", "Open the dashboard (interactive TUI)"},
		{"hivecast export", "Export projects, events, and settings to JSON"},
		{"hivecast version", "Show version"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n  %s\n\n", title, tagline)

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Links (enter to open)"))
	for i, item := range helpItems {
		label := cmdStyle.Render(fmt.Sprintf("%-20s", item.label))
		prefix := "    "
		if i == cursor {
			label = cursorStyle.Render(fmt.Sprintf("%-20s", item.label))
			prefix = "  > "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, linkDescStyle.Render(item.desc))
	}
	return b.String()
}
