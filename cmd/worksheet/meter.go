package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gompdf/worksheet/internal/capacity"
)

const meterWidth = 30

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	stateStyle = map[capacity.State]lipgloss.Style{
		capacity.StateFits:       lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a")),
		capacity.StateNearlyFull: lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706")),
		capacity.StateFull:       lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")),
	}
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// renderMeter draws the capacity bar, the per activity breakdown and the
// overflow warning.
func renderMeter(title string, est capacity.Estimation) string {
	m := capacity.NewMeter(est)
	style := stateStyle[m.State]

	filled := m.Percentage * meterWidth / 100
	bar := style.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", meterWidth-filled))

	lines := []string{
		titleStyle.Render(title),
		fmt.Sprintf("%s %s", bar, style.Render(fmt.Sprintf("%d%%", m.Percentage))),
		dimStyle.Render(fmt.Sprintf("%.0f / %.0f px, sisa %.0f px", est.TotalHeight, est.AvailableHeight, est.RemainingHeight)),
	}
	for _, b := range est.Breakdown {
		lines = append(lines, fmt.Sprintf("  %-24s %6.0f px", b.Activity, b.Height))
	}
	if m.Warning != "" {
		lines = append(lines, style.Render(m.Warning))
	}
	return boxStyle.BorderForeground(style.GetForeground()).Render(strings.Join(lines, "\n"))
}
