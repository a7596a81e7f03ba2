package commands

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/saycalc/internal/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	statusStyles = map[domain.HealthStatus]lipgloss.Style{
		domain.HealthOK:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		domain.HealthWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		domain.HealthError: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
)
