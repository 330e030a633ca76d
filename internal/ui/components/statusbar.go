package components

import "github.com/charmbracelet/lipgloss"

var (
	hintDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
	keyCapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16161d")).
			Background(lipgloss.Color("#888ba4")).
			Bold(true).
			Padding(0, 1)
	statusTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf")).
			PaddingLeft(2).
			PaddingTop(1)
)

// StatusBar renders the bottom bar: a status word on the left, key hints
// after it.
func StatusBar(status string, hints []string, width int) string {
	parts := make([]string, 0, len(hints)+1)
	if status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, hints...)

	content := ""
	for i, p := range parts {
		if i > 0 {
			content += "   "
		}
		content += p
	}
	if width > 0 {
		return statusTextStyle.Width(width).Render(content)
	}
	return statusTextStyle.Render(content)
}

// Hint formats a single keybind hint like "tab next slot".
func Hint(key, desc string) string {
	return keyCapStyle.Render(key) + hintDescStyle.Render(" "+desc)
}
