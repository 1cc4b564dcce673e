package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chipi-ai/chipi/internal/client"
)

// Run starts the interactive client against the backend reached through c
// and blocks until the user quits.
func Run(c *client.Client) error {
	p := tea.NewProgram(NewAppModel(c), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}
