package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/swasthaai/swastha-cli/internal/medalert"
)

// RenderCategory renders one category card.
func RenderCategory(c medalert.Category) string {
	var b strings.Builder
	name := c.Name
	if c.Color != "" {
		name = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Bold(true).Render(c.Name)
	} else {
		name = valueStyle.Render(name)
	}
	b.WriteString(name)
	if c.Description != "" {
		b.WriteString("\n" + labelStyle.Render(c.Description))
	}
	return cardStyle.Render(b.String())
}

// RenderReminder renders one reminder card. A reminder without time slots
// renders no time-slot line at all.
func RenderReminder(r medalert.Reminder) string {
	var b strings.Builder

	name := valueStyle.Render(r.MedicineName)
	if r.IsPaused {
		name += pausedStyle.Render("  (paused)")
	}
	b.WriteString(name)
	b.WriteString("\n" + labelStyle.Render("Dosage: ") + r.Dosage)
	b.WriteString("\n" + labelStyle.Render("Frequency: ") + r.Frequency)
	if slots := r.FormatTimeSlots(); slots != "" {
		b.WriteString("\n" + labelStyle.Render("Times: ") + slots)
	}
	if r.Notes != "" {
		b.WriteString("\n" + labelStyle.Render("Notes: ") + r.Notes)
	}

	return cardStyle.Render(b.String())
}

// RenderMedAlerts renders the full MedAlert view from the local cache.
func RenderMedAlerts(cache *medalert.Cache) string {
	var b strings.Builder

	categories := cache.Categories()
	b.WriteString(titleStyle.Render(fmt.Sprintf("Categories (%d)", len(categories))))
	b.WriteString("\n")
	for _, c := range categories {
		b.WriteString(RenderCategory(c))
		b.WriteString("\n")
	}

	reminders := cache.Reminders()
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("Reminders (%d)", len(reminders))))
	b.WriteString("\n")
	for _, r := range reminders {
		b.WriteString(RenderReminder(r))
		b.WriteString("\n")
	}

	return b.String()
}
