package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	normalTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1)

	destructiveTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#E5484D")).
				Padding(0, 1)

	descriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#A1A1AA")).
				PaddingLeft(1)
)

// Terminal prints styled notifications to a writer.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTerminal returns a terminal notifier writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

// Notify renders n as a styled block.
func (t *Terminal) Notify(_ context.Context, n Notification) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprintln(t.out, Format(n))
	return err
}

// Format renders n with lipgloss styles.
func Format(n Notification) string {
	style := normalTitleStyle
	if n.Severity == SeverityDestructive {
		style = destructiveTitleStyle
	}
	title := style.Render(n.Title)
	if n.Description == "" {
		return title
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, descriptionStyle.Render(n.Description))
}
