package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RuleWidth is the width of the rules printed around the AI reply.
const RuleWidth = 60

// StyleConfig defines visual styles
type StyleConfig struct {
	Title   lipgloss.Style
	Subtle  lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Command lipgloss.Style
}

// DefaultStyleConfig returns the default style configuration
func DefaultStyleConfig() *StyleConfig {
	return &StyleConfig{
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true), // Blue
		Subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),          // Grey
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),  // Red
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true), // Green
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true), // Yellow
		Command: lipgloss.NewStyle().Bold(true),
	}
}

// Rule returns a horizontal rule of RuleWidth '=' characters.
func (s *StyleConfig) Rule() string {
	return s.Subtle.Render(strings.Repeat("=", RuleWidth))
}
