package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/seo-ai/seodesk/internal/nav"
)

// handlePanelKey routes keys while an overlay panel is open.
func (m Model) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.nav.Panel() {
	case nav.PanelProductAnalysis:
		return m.handleWizardStepKey(nav.WizardAnalysis, msg)
	case nav.PanelProductDescription:
		return m.handleWizardStepKey(nav.WizardDescription, msg)
	case nav.PanelArchiveItem:
		var cmd tea.Cmd
		m.archiveViewport, cmd = m.archiveViewport.Update(msg)
		return m, cmd
	}
	// Remaining panels are static; esc closes them via the global handler.
	return m, nil
}

// handleSectionKey routes keys when no panel is open.
func (m Model) handleSectionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.nav.Section() {
	case nav.SectionMain:
		switch {
		case key.Matches(msg, m.keys.OpenAnalysis):
			m.openWizard(nav.PanelProductAnalysis)
		case key.Matches(msg, m.keys.OpenDescription):
			m.openWizard(nav.PanelProductDescription)
		case key.Matches(msg, m.keys.OpenProcessing):
			m.nav.OpenPanel(nav.PanelProcessing, nil)
		}
		return m, nil

	case nav.SectionArchive:
		return m.handleArchiveKey(msg)

	case nav.SectionCabinet:
		switch msg.String() {
		case "b":
			m.nav.OpenPanel(nav.PanelBalanceTopup, nil)
		case "h":
			m.nav.OpenPanel(nav.PanelBalanceHistory, nil)
		case "t":
			m.nav.OpenPanel(nav.PanelTariff, nil)
		case "o":
			m.nav.OpenPanel(nav.PanelBonuses, nil)
		case "v":
			m.nav.OpenPanel(nav.PanelDevices, nil)
		case "f":
			m.nav.OpenPanel(nav.PanelFAQ, nil)
		}
		return m, nil

	case nav.SectionPartner:
		switch msg.String() {
		case "r":
			m.nav.OpenPanel(nav.PanelReferral, nil)
		case "s":
			m.nav.OpenPanel(nav.PanelReferralStats, nil)
		}
		return m, nil

	case nav.SectionFeedback:
		if key.Matches(msg, m.keys.Confirm) || msg.String() == "f" {
			m.nav.OpenPanel(nav.PanelFeedbackForm, nil)
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) openWizard(panel nav.Panel) {
	if m.nav.OpenPanel(panel, nil) {
		m.resetWizardInputs()
	}
}

// renderContent draws the active section body, or the open panel over it.
func (m Model) renderContent() string {
	switch m.nav.Panel() {
	case nav.PanelProductAnalysis:
		return m.renderWizard(nav.WizardAnalysis)
	case nav.PanelProductDescription:
		return m.renderWizard(nav.WizardDescription)
	case nav.PanelProcessing:
		return m.renderProcessing()
	case nav.PanelArchiveItem:
		return m.renderArchiveItem()
	case nav.PanelNone:
	default:
		return m.renderStaticPanel(m.nav.Panel())
	}

	switch m.nav.Section() {
	case nav.SectionMain:
		return m.renderMainSection()
	case nav.SectionArchive:
		return m.renderArchiveSection()
	case nav.SectionNotifications:
		return m.renderNotificationsSection()
	case nav.SectionCabinet:
		return m.renderCabinetSection()
	case nav.SectionPartner:
		return m.renderPartnerSection()
	case nav.SectionFeedback:
		return m.renderFeedbackSection()
	}
	return ""
}

func (m Model) renderMainSection() string {
	styles := m.theme.Styles()

	jobs := m.mergedJobs()
	inFlight := fmt.Sprintf("%d job(s) in flight", len(jobs))
	if len(jobs) == 0 {
		inFlight = "No jobs in flight"
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Render("SEO-AI Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render("a  Product analysis"))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render("d  Product description"))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render("p  Processing queue"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render(inFlight))
	if m.snapshot.IsOffline() {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render("Server unreachable; showing last known data."))
	}
	return styles.Panel.Render(b.String())
}

func (m Model) renderNotificationsSection() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Render("Notifications"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("No new notifications."))
	return styles.Panel.Render(b.String())
}

func (m Model) renderCabinetSection() string {
	styles := m.theme.Styles()
	rows := []string{
		styles.AccentText.Render("Cabinet"),
		"",
		styles.Text.Render("b  Top up balance"),
		styles.Text.Render("h  Balance history"),
		styles.Text.Render("t  Tariff"),
		styles.Text.Render("o  Bonuses"),
		styles.Text.Render("v  Devices"),
		styles.Text.Render("f  FAQ"),
	}
	return styles.Panel.Render(strings.Join(rows, "\n"))
}

func (m Model) renderPartnerSection() string {
	styles := m.theme.Styles()
	rows := []string{
		styles.AccentText.Render("Partner program"),
		"",
		styles.Text.Render("r  Referral link"),
		styles.Text.Render("s  Referral statistics"),
	}
	return styles.Panel.Render(strings.Join(rows, "\n"))
}

func (m Model) renderFeedbackSection() string {
	styles := m.theme.Styles()
	rows := []string{
		styles.AccentText.Render("Feedback"),
		"",
		styles.Text.Render("f  Leave feedback"),
	}
	return styles.Panel.Render(strings.Join(rows, "\n"))
}

var staticPanelBodies = map[nav.Panel][2]string{
	nav.PanelNotificationItem: {"Notification", "Nothing to show."},
	nav.PanelBalanceTopup:     {"Top up balance", "Top-ups are handled on the billing site."},
	nav.PanelBalanceHistory:   {"Balance history", "No transactions yet."},
	nav.PanelTariff:           {"Tariff", "Current plan: Free."},
	nav.PanelBonuses:          {"Bonuses", "No active bonuses."},
	nav.PanelDevices:          {"Devices", "This terminal session."},
	nav.PanelFAQ:              {"FAQ", "Submit a SKU on the main tab to start an analysis or description job."},
	nav.PanelReferral:         {"Referral link", "Referral links are issued per account on the partner site."},
	nav.PanelReferralStats:    {"Referral statistics", "No referrals yet."},
	nav.PanelFeedbackForm:     {"Feedback", "Write to support@seo-ai.example with your account id."},
}

func (m Model) renderStaticPanel(panel nav.Panel) string {
	styles := m.theme.Styles()
	body, ok := staticPanelBodies[panel]
	if !ok {
		return styles.Panel.Render("")
	}
	var b strings.Builder
	b.WriteString(styles.AccentText.Render(body[0]))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render(body[1]))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("esc close"))
	return styles.PanelFocus.Render(b.String())
}
