package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/seo-ai/seodesk/internal/nav"
	"github.com/seo-ai/seodesk/internal/queue"
	"github.com/seo-ai/seodesk/internal/seoai"
)

// activeWizard returns the wizard owning the open panel, if any.
func (m Model) activeWizard() (nav.WizardKind, bool) {
	switch m.nav.Panel() {
	case nav.PanelProductAnalysis:
		return nav.WizardAnalysis, true
	case nav.PanelProductDescription:
		return nav.WizardDescription, true
	}
	return nav.WizardAnalysis, false
}

// inWizardForm reports whether a wizard form step currently owns the
// keyboard.
func (m Model) inWizardForm() bool {
	kind, ok := m.activeWizard()
	return ok && m.nav.Step(kind) == nav.StepForm
}

// handleWizardFormKey processes input while the SKU form is active.
func (m Model) handleWizardFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kind, _ := m.activeWizard()

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.closePanel()
		return m, nil

	case "tab", "shift+tab", "up", "down":
		m.toggleFormFocus()
		return m, nil

	case "enter":
		if m.submitting {
			return m, nil
		}
		sku := strings.TrimSpace(m.skuInput.Value())
		if sku == "" {
			m.wizardErr = requiredSKUText(m.language())
			return m, nil
		}
		draft := nav.FormDraft{
			SKU:           sku,
			CompetitorSKU: strings.TrimSpace(m.compInput.Value()),
		}
		m.nav.SetDraft(draft)
		m.submitting = true
		m.wizardErr = ""
		return m, createCardCmd(m.ctx, m.api, kind, draft)
	}

	var cmd tea.Cmd
	if m.focusIdx == 0 {
		m.skuInput, cmd = m.skuInput.Update(msg)
	} else {
		m.compInput, cmd = m.compInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleFormFocus() {
	if m.focusIdx == 0 {
		m.focusIdx = 1
		m.skuInput.Blur()
		m.compInput.Focus()
	} else {
		m.focusIdx = 0
		m.compInput.Blur()
		m.skuInput.Focus()
	}
}

// handleWizardStepKey processes input for the details and modal steps.
func (m Model) handleWizardStepKey(kind nav.WizardKind, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := m.nav.Step(kind)

	switch step {
	case nav.StepDetails:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.wizardErr = ""
			_ = m.nav.Advance(kind, nav.StepModal)
		case key.Matches(msg, m.keys.Back):
			// Back to the form with the draft intact.
			_ = m.nav.Advance(kind, nav.StepForm)
			draft := m.nav.Draft()
			m.skuInput.SetValue(draft.SKU)
			m.compInput.SetValue(draft.CompetitorSKU)
		}
		return m, nil

	case nav.StepModal:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			// No card id means the create step never completed; starting
			// would enqueue unconfirmable work.
			if m.starting || m.createdCard.ID == 0 {
				return m, nil
			}
			m.starting = true
			m.wizardErr = ""
			return m, startCmd(m.ctx, m.api, kind, m.createdCard, m.nav.Draft())
		case key.Matches(msg, m.keys.Back):
			m.wizardErr = ""
			_ = m.nav.Advance(kind, nav.StepDetails)
		}
		return m, nil
	}

	return m, nil
}

// handleCardCreated advances the wizard once the server has the card.
func (m Model) handleCardCreated(msg cardCreatedMsg) (tea.Model, tea.Cmd) {
	m.submitting = false

	// The response may land after the user closed the panel or switched
	// sections; a stale success must not reopen the wizard.
	kind, ok := m.activeWizard()
	if !ok || kind != msg.kind {
		return m, nil
	}

	m.createdCard = msg.card
	m.wizardErr = ""
	if err := m.nav.Advance(msg.kind, nav.StepDetails); err != nil {
		m.logger.Debug("card created outside form step", "err", err)
	}
	return m, nil
}

// handleStartDone enqueues the confirmed job and hands off to the
// processing panel.
func (m Model) handleStartDone(msg startDoneMsg) (tea.Model, tea.Cmd) {
	m.starting = false

	kind, ok := m.activeWizard()
	if !ok || kind != msg.kind || m.nav.Step(msg.kind) != nav.StepModal {
		return m, nil
	}

	qkind := queue.KindAnalysis
	terminal := nav.StepResults
	if msg.kind == nav.WizardDescription {
		qkind = queue.KindDescription
		terminal = nav.StepProcessing
	}
	m.recon.Enqueue(qkind, queue.SKUPair{
		SKU:           msg.pair.SKU,
		CompetitorSKU: msg.pair.CompetitorSKU,
	}, msg.card.ID, msg.card.Payload)

	_ = m.nav.Advance(msg.kind, terminal)
	m.nav.ClosePanel()
	m.nav.OpenPanel(nav.PanelProcessing, nil)
	m.resetWizardInputs()
	return m, nil
}

// errorText localizes an error for inline display.
func (m Model) errorText(err error) string {
	var apiErr *seoai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Localized(m.language())
	}
	return networkErrorText(m.language())
}

func (m Model) language() string {
	if m.cfg != nil {
		return m.cfg.Language
	}
	return "en"
}

func networkErrorText(lang string) string {
	switch lang {
	case "ru":
		return "Ошибка сети. Попробуйте ещё раз."
	case "kk":
		return "Желі қатесі. Қайталап көріңіз."
	default:
		return "Network error. Please try again."
	}
}

func requiredSKUText(lang string) string {
	switch lang {
	case "ru":
		return "Укажите SKU товара."
	case "kk":
		return "Тауардың SKU енгізіңіз."
	default:
		return "Enter the product SKU."
	}
}

// Rendering

func wizardTitle(kind nav.WizardKind) string {
	if kind == nav.WizardDescription {
		return "Product Description"
	}
	return "Product Analysis"
}

func (m Model) renderWizard(kind nav.WizardKind) string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.AccentText.Render(wizardTitle(kind)))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render(stepCrumbs(kind, m.nav.Step(kind))))
	b.WriteString("\n\n")

	switch m.nav.Step(kind) {
	case nav.StepForm:
		b.WriteString(m.skuInput.View())
		b.WriteString("\n")
		b.WriteString(m.compInput.View())
		b.WriteString("\n\n")
		if m.submitting {
			b.WriteString(m.spin.View())
			b.WriteString(styles.MutedText.Render(" Creating card..."))
		} else {
			b.WriteString(styles.MutedText.Render("enter submit · tab switch field · esc cancel"))
		}

	case nav.StepDetails:
		b.WriteString(m.renderCardDetails())
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("enter continue · backspace edit · esc cancel"))

	case nav.StepModal:
		action := "start the analysis"
		if kind == nav.WizardDescription {
			action = "generate the description"
		}
		b.WriteString(styles.Text.Render(fmt.Sprintf("Card #%d is ready. Confirm to %s.", m.createdCard.ID, action)))
		b.WriteString("\n\n")
		if m.starting {
			b.WriteString(m.spin.View())
			b.WriteString(styles.MutedText.Render(" Starting..."))
		} else {
			b.WriteString(styles.MutedText.Render("enter confirm · backspace back · esc cancel"))
		}
	}

	if m.wizardErr != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.DangerText.Render(m.wizardErr))
	}

	return styles.PanelFocus.Render(b.String())
}

func (m Model) renderCardDetails() string {
	styles := m.theme.Styles()
	card := m.createdCard
	draft := m.nav.Draft()

	rows := []string{
		styles.Text.Render("Card      #" + fmt.Sprint(card.ID)),
		styles.Text.Render("SKU       " + draft.SKU),
	}
	if draft.CompetitorSKU != "" {
		rows = append(rows, styles.Text.Render("Competitor "+draft.CompetitorSKU))
	}
	if card.Name != "" {
		rows = append(rows, styles.Text.Render("Name      "+truncate(card.Name, 48)))
	}
	if card.Article != "" {
		rows = append(rows, styles.MutedText.Render("Article   "+card.Article))
	}
	if len(card.Images) > 0 {
		rows = append(rows, styles.MutedText.Render(fmt.Sprintf("Images    %d", len(card.Images))))
	}
	return strings.Join(rows, "\n")
}

func stepCrumbs(kind nav.WizardKind, current nav.WizardStep) string {
	steps := []nav.WizardStep{nav.StepForm, nav.StepDetails, nav.StepModal}
	if kind == nav.WizardDescription {
		steps = append(steps, nav.StepProcessing)
	} else {
		steps = append(steps, nav.StepResults)
	}
	parts := make([]string, len(steps))
	for i, s := range steps {
		label := s.String()
		if s == current {
			label = "[" + label + "]"
		}
		parts[i] = label
	}
	return strings.Join(parts, " › ")
}

// Messages

type cardCreatedMsg struct {
	kind nav.WizardKind
	card seoai.Card
}

type cardCreateFailedMsg struct {
	kind nav.WizardKind
	err  error
}

type startDoneMsg struct {
	kind nav.WizardKind
	card seoai.Card
	pair nav.FormDraft
}

type startFailedMsg struct {
	kind nav.WizardKind
	err  error
}

// Commands

func createCardCmd(ctx context.Context, api seoai.API, kind nav.WizardKind, draft nav.FormDraft) tea.Cmd {
	return func() tea.Msg {
		card, err := api.CreateCard(ctx, seoai.CreateCardRequest{
			SKU:           draft.SKU,
			CompetitorSKU: draft.CompetitorSKU,
		})
		if err != nil {
			return cardCreateFailedMsg{kind: kind, err: err}
		}
		return cardCreatedMsg{kind: kind, card: card}
	}
}

func startCmd(ctx context.Context, api seoai.API, kind nav.WizardKind, card seoai.Card, draft nav.FormDraft) tea.Cmd {
	return func() tea.Msg {
		var err error
		if kind == nav.WizardDescription {
			err = api.StartDescription(ctx, card.ID)
		} else {
			err = api.StartAnalysis(ctx, card.ID)
		}
		if err != nil {
			return startFailedMsg{kind: kind, err: err}
		}
		return startDoneMsg{kind: kind, card: card, pair: draft}
	}
}
