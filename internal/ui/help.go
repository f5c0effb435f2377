package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	groups := []struct {
		title string
		keys  []key.Binding
	}{
		{"Global", []key.Binding{
			m.keys.Help, m.keys.CycleTheme, m.keys.NextTab, m.keys.PrevTab,
			m.keys.Escape, m.keys.Quit,
		}},
		{"Main", []key.Binding{
			m.keys.OpenAnalysis, m.keys.OpenDescription, m.keys.OpenProcessing,
		}},
		{"Archive", []key.Binding{
			m.keys.Up, m.keys.Down, m.keys.Top, m.keys.Bottom,
			m.keys.Confirm, m.keys.ClearProcessed,
		}},
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Render("Keyboard shortcuts"))
	b.WriteString("\n")
	for _, group := range groups {
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(group.title))
		b.WriteString("\n")
		for _, binding := range group.keys {
			help := binding.Help()
			b.WriteString("  ")
			b.WriteString(styles.InfoText.Render(padRight(help.Key, 12)))
			b.WriteString(styles.MutedText.Render(help.Desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Press any key to close"))
	return styles.Panel.Render(b.String())
}
