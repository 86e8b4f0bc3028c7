package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cargostow/loadengine/internal/engine"
	"github.com/cargostow/loadengine/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginTop(1).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00D9FF"))

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// renderReport formats a PackingResult as a human-readable summary:
// placed/unplaced counts per cargo item and overall volumetric fill.
func renderReport(container model.Container, manifest []model.CargoItem, result model.PackingResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Load plan — %s", container.TypeTag)))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Item"))
	b.WriteString("\n")

	for _, c := range engine.CountsByName(manifest, result) {
		line := fmt.Sprintf("  %-24s placed %-4d unplaced %d", c.DisplayName, c.Placed, c.Unplaced)
		if c.Unplaced > 0 {
			b.WriteString(warningStyle.Render(line))
		} else {
			b.WriteString(successStyle.Render(line))
		}
		b.WriteString("\n")
	}

	fill := engine.VolumetricFill(container, result.Placed) * 100
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Volumetric fill: %.1f%%", fill)))
	b.WriteString("\n")

	return b.String()
}
