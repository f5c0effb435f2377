package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/seo-ai/seodesk/internal/nav"
	"github.com/seo-ai/seodesk/internal/seoai"
)

// filteredArchive returns the archive entries for cards this client
// submitted, in server order. Entries for other sessions of the same account
// stay hidden until the processed-id set learns about them.
func (m Model) filteredArchive() []seoai.ArchiveItem {
	if m.ids == nil {
		return m.snapshot.Archive
	}
	owned := m.ids.Snapshot()
	var out []seoai.ArchiveItem
	for _, item := range m.snapshot.Archive {
		if _, ok := owned[item.CardID]; ok {
			out = append(out, item)
		}
	}
	return out
}

func (m *Model) clampArchiveRow() {
	n := len(m.filteredArchive())
	if n == 0 {
		m.archiveRow = 0
		return
	}
	if m.archiveRow >= n {
		m.archiveRow = n - 1
	}
	if m.archiveRow < 0 {
		m.archiveRow = 0
	}
}

func (m Model) handleArchiveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.filteredArchive()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.archiveRow > 0 {
			m.archiveRow--
		}
	case key.Matches(msg, m.keys.Down):
		if m.archiveRow < len(items)-1 {
			m.archiveRow++
		}
	case key.Matches(msg, m.keys.Top):
		m.archiveRow = 0
	case key.Matches(msg, m.keys.Bottom):
		if len(items) > 0 {
			m.archiveRow = len(items) - 1
		}
	case key.Matches(msg, m.keys.ClearProcessed):
		if m.ids != nil {
			if err := m.ids.Clear(); err != nil {
				m.logger.Warn("clear processed ids", "err", err)
			}
		}
		m.archiveRow = 0
	case key.Matches(msg, m.keys.Confirm):
		if m.archiveRow < len(items) {
			item := items[m.archiveRow]
			if m.nav.OpenPanel(nav.PanelArchiveItem, &item) {
				m.archiveViewport.SetContent(archiveItemBody(item))
				m.archiveViewport.GotoTop()
			}
		}
	}
	return m, nil
}

func (m Model) renderArchiveSection() string {
	styles := m.theme.Styles()
	items := m.filteredArchive()

	var b strings.Builder
	b.WriteString(styles.AccentText.Render("Archive"))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("%d item(s)", len(items))))
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString(styles.MutedText.Render("No completed jobs yet."))
	}
	for i, item := range items {
		row := m.renderArchiveRow(item)
		if i == m.archiveRow {
			row = styles.Selected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter open · x clear my submissions"))
	return styles.Panel.Render(b.String())
}

func (m Model) renderArchiveRow(item seoai.ArchiveItem) string {
	name := item.Name
	if name == "" {
		name = item.SKU
	}
	when := ""
	if t := item.ParsedCompletedAt(); !t.IsZero() {
		when = t.Format("2006-01-02 15:04")
	}
	return fmt.Sprintf(" %s %s %s  %s",
		padRight(fmt.Sprintf("#%d", item.CardID), 8),
		padRight(item.Kind, 12),
		padRight(truncate(name, 36), 36),
		when,
	)
}

func (m Model) renderArchiveItem() string {
	styles := m.theme.Styles()
	item := m.nav.SelectedArchiveItem()
	if item == nil {
		return styles.PanelFocus.Render(styles.MutedText.Render("Nothing selected."))
	}

	var b strings.Builder
	title := item.Name
	if title == "" {
		title = item.SKU
	}
	b.WriteString(styles.AccentText.Render(fmt.Sprintf("#%d %s", item.CardID, truncate(title, 48))))
	b.WriteString("\n\n")
	b.WriteString(m.archiveViewport.View())
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("j/k scroll · esc close"))
	return styles.PanelFocus.Render(b.String())
}

func archiveItemBody(item seoai.ArchiveItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SKU: %s\n", item.SKU)
	if item.Article != "" {
		fmt.Fprintf(&b, "Article: %s\n", item.Article)
	}
	if t := item.ParsedCompletedAt(); !t.IsZero() {
		fmt.Fprintf(&b, "Completed: %s\n", t.Format("2006-01-02 15:04:05"))
	}
	if item.Analysis != "" {
		b.WriteString("\n--- Analysis ---\n")
		b.WriteString(item.Analysis)
		b.WriteString("\n")
	}
	if item.Description != "" {
		b.WriteString("\n--- Description ---\n")
		b.WriteString(item.Description)
		b.WriteString("\n")
	}
	return b.String()
}
