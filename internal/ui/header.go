package ui

import (
	"fmt"
	"strings"

	"github.com/seo-ai/seodesk/internal/nav"
)

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	left := styles.Logo.Render(" SEO-AI ") + styles.MutedText.Render(" seodesk")

	var right string
	switch {
	case m.snapshot.IsOffline():
		right = styles.DangerText.Render("OFFLINE")
	case !m.snapshot.LastUpdated.IsZero():
		right = styles.FaintText.Render("updated " + m.snapshot.LastUpdated.Format("15:04:05"))
	default:
		right = styles.FaintText.Render("connecting...")
	}

	gap := m.width - visibleWidth(left) - visibleWidth(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderTabBar() string {
	styles := m.theme.Styles()
	active := m.nav.Section()

	parts := make([]string, 0, 6)
	for i, section := range nav.Sections() {
		label := fmt.Sprintf("%d %s", i+1, titleCase(section.String()))
		if section == active {
			parts = append(parts, styles.TabActive.Render(label))
		} else {
			parts = append(parts, styles.TabInactive.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	hints := []string{"?" + " help", "tab sections", "T theme", "q quit"}
	if m.nav.Panel() != nav.PanelNone {
		hints = append([]string{"esc close"}, hints...)
	}

	bar := styles.FaintText.Render(strings.Join(hints, " · "))
	if m.snapshot.LastError != nil && !m.snapshot.IsOffline() {
		bar += "  " + styles.WarningText.Render("last poll failed")
	}
	return bar
}
