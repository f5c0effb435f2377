package ui

import (
	"fmt"
	"strings"

	"github.com/seo-ai/seodesk/internal/queue"
)

// mergedJobs reconciles local submissions with the latest server poll. The
// archive ids from the same snapshot tell the merge which cards are already
// done.
func (m Model) mergedJobs() []queue.Job {
	if m.recon == nil {
		return nil
	}
	archived := make(map[int64]struct{}, len(m.snapshot.Archive))
	for _, item := range m.snapshot.Archive {
		if item.CardID > 0 {
			archived[item.CardID] = struct{}{}
		}
	}
	return m.recon.Merge(m.snapshot.Jobs, archived)
}

func (m Model) renderProcessing() string {
	styles := m.theme.Styles()
	jobs := m.mergedJobs()

	var b strings.Builder
	b.WriteString(styles.AccentText.Render("Processing queue"))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("%d item(s)", len(jobs))))
	b.WriteString("\n\n")

	if len(jobs) == 0 {
		b.WriteString(styles.MutedText.Render("Nothing in progress. Completed jobs appear in the archive."))
	} else {
		for _, job := range jobs {
			b.WriteString(m.renderJobRow(job))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("esc close"))
	return styles.PanelFocus.Render(b.String())
}

func (m Model) renderJobRow(job queue.Job) string {
	styles := m.theme.Styles()

	id := "pending"
	if job.CardID > 0 {
		id = fmt.Sprintf("#%d", job.CardID)
	}

	name := job.Payload.Name
	if name == "" {
		name = job.SKUPair.SKU
	}

	age := ""
	if !job.CreatedAt.IsZero() {
		age = formatAge(m.lastUpdated.Sub(job.CreatedAt))
	}

	return strings.Join([]string{
		m.spin.View(),
		styles.Text.Render(padRight(id, 8)),
		styles.InfoText.Render(padRight(job.Kind.String(), 12)),
		styles.Text.Render(truncate(name, 36)),
		styles.FaintText.Render(age),
	}, " ")
}
