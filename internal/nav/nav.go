package nav

import (
	"fmt"
	"strings"

	"github.com/seo-ai/seodesk/internal/seoai"
)

// Section is one of the dashboard's top-level tabs.
type Section int

const (
	SectionMain Section = iota
	SectionArchive
	SectionNotifications
	SectionCabinet
	SectionPartner
	SectionFeedback
)

var sectionNames = map[Section]string{
	SectionMain:          "main",
	SectionArchive:       "archive",
	SectionNotifications: "notifications",
	SectionCabinet:       "cabinet",
	SectionPartner:       "partner",
	SectionFeedback:      "feedback",
}

// String returns the stable section name used by the persisted-section
// channel.
func (s Section) String() string {
	if name, ok := sectionNames[s]; ok {
		return name
	}
	return "main"
}

// ParseSection maps a persisted section name back to a Section. Unknown
// names report ok=false.
func ParseSection(name string) (Section, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	for s, n := range sectionNames {
		if n == trimmed {
			return s, true
		}
	}
	return SectionMain, false
}

// Sections lists the sections in tab order.
func Sections() []Section {
	return []Section{
		SectionMain,
		SectionArchive,
		SectionNotifications,
		SectionCabinet,
		SectionPartner,
		SectionFeedback,
	}
}

// Panel is an overlay opened within a section. PanelNone means only the
// section body is visible.
type Panel int

const (
	PanelNone Panel = iota
	PanelProductAnalysis
	PanelProductDescription
	PanelProcessing
	PanelArchiveItem
	PanelNotificationItem
	PanelBalanceTopup
	PanelBalanceHistory
	PanelTariff
	PanelBonuses
	PanelDevices
	PanelFAQ
	PanelReferral
	PanelReferralStats
	PanelFeedbackForm
)

// panelSections fixes which section each panel belongs to. OpenPanel rejects
// a panel outside its home section, so illegal combinations never reach the
// render dispatch.
var panelSections = map[Panel]Section{
	PanelProductAnalysis:    SectionMain,
	PanelProductDescription: SectionMain,
	PanelProcessing:         SectionMain,
	PanelArchiveItem:        SectionArchive,
	PanelNotificationItem:   SectionNotifications,
	PanelBalanceTopup:       SectionCabinet,
	PanelBalanceHistory:     SectionCabinet,
	PanelTariff:             SectionCabinet,
	PanelBonuses:            SectionCabinet,
	PanelDevices:            SectionCabinet,
	PanelFAQ:                SectionCabinet,
	PanelReferral:           SectionPartner,
	PanelReferralStats:      SectionPartner,
	PanelFeedbackForm:       SectionFeedback,
}

// WizardKind selects one of the two wizard flows.
type WizardKind int

const (
	WizardAnalysis WizardKind = iota
	WizardDescription
)

func (k WizardKind) String() string {
	if k == WizardDescription {
		return "description"
	}
	return "analysis"
}

// WizardStep is a step within a wizard flow. The analysis wizard runs
// form -> details -> modal -> results; the description wizard runs
// form -> details -> modal -> processing.
type WizardStep int

const (
	StepForm WizardStep = iota
	StepDetails
	StepModal
	StepResults
	StepProcessing
)

func (s WizardStep) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepModal:
		return "modal"
	case StepResults:
		return "results"
	case StepProcessing:
		return "processing"
	default:
		return "form"
	}
}

// terminalStep returns the final step of the given wizard.
func terminalStep(kind WizardKind) WizardStep {
	if kind == WizardDescription {
		return StepProcessing
	}
	return StepResults
}

// FormDraft is the SKU pair entered by the user, carried across wizard steps
// until submission completes or the panel closes.
type FormDraft struct {
	SKU           string
	CompetitorSKU string
}

// Navigator is the single authoritative holder of what is currently shown:
// active section, open panel, wizard steps, archive selection and the form
// draft. All transitions go through its methods.
type Navigator struct {
	section         Section
	panel           Panel
	analysisStep    WizardStep
	descriptionStep WizardStep
	archiveItem     *seoai.ArchiveItem
	draft           FormDraft

	onSection func(Section)
}

// New returns a Navigator positioned at the given section with no open panel.
func New(initial Section) *Navigator {
	return &Navigator{
		section:         initial,
		analysisStep:    StepForm,
		descriptionStep: StepForm,
	}
}

// OnSectionChange registers a hook invoked after every section change. Used
// to sync the persisted-section channel.
func (n *Navigator) OnSectionChange(fn func(Section)) {
	n.onSection = fn
}

// Section returns the active section.
func (n *Navigator) Section() Section { return n.section }

// Panel returns the open panel, or PanelNone.
func (n *Navigator) Panel() Panel { return n.panel }

// Step returns the current step of the given wizard.
func (n *Navigator) Step(kind WizardKind) WizardStep {
	if kind == WizardDescription {
		return n.descriptionStep
	}
	return n.analysisStep
}

// Draft returns the current form draft.
func (n *Navigator) Draft() FormDraft { return n.draft }

// SetDraft records the SKU pair entered by the user.
func (n *Navigator) SetDraft(draft FormDraft) {
	n.draft = draft
}

// SelectedArchiveItem returns the archive entry shown by the archive-item
// panel, or nil.
func (n *Navigator) SelectedArchiveItem() *seoai.ArchiveItem {
	return n.archiveItem
}

// SelectSection activates a section. Switching to any section other than
// archive closes the open panel, clears the archive selection and resets
// both wizards. The section-change hook fires even when the section is
// unchanged so the persisted channel stays in sync.
func (n *Navigator) SelectSection(section Section) {
	n.section = section
	if section != SectionArchive {
		n.resetPanelState()
	}
	if n.onSection != nil {
		n.onSection(section)
	}
}

// OpenPanel opens an overlay panel within the active section. Opening a
// wizard panel resets that wizard to the form step; opening the archive-item
// panel with a non-nil item records the selection. Panels outside their home
// section are rejected.
func (n *Navigator) OpenPanel(panel Panel, item *seoai.ArchiveItem) bool {
	if panel == PanelNone {
		n.ClosePanel()
		return true
	}
	if home, ok := panelSections[panel]; !ok || home != n.section {
		return false
	}

	n.panel = panel
	switch panel {
	case PanelProductAnalysis:
		n.analysisStep = StepForm
	case PanelProductDescription:
		n.descriptionStep = StepForm
	case PanelArchiveItem:
		if item != nil {
			n.archiveItem = item
		}
	}
	return true
}

// ClosePanel closes any open panel, resets both wizards to the form step,
// clears the archive selection and discards the draft. Idempotent.
func (n *Navigator) ClosePanel() {
	n.panel = PanelNone
	n.analysisStep = StepForm
	n.descriptionStep = StepForm
	n.archiveItem = nil
	n.draft = FormDraft{}
}

// Advance moves the given wizard to next. The step sequence is a strict
// state machine: forward moves advance one step at a time, backward moves
// from details to form and modal to details are always legal, and the
// terminal step is reachable only from the modal. Callers gate forward moves
// on API success; Advance only checks legality.
func (n *Navigator) Advance(kind WizardKind, next WizardStep) error {
	current := n.Step(kind)
	if !legalTransition(kind, current, next) {
		return fmt.Errorf("illegal %s wizard transition %s -> %s", kind, current, next)
	}
	if kind == WizardDescription {
		n.descriptionStep = next
	} else {
		n.analysisStep = next
	}
	return nil
}

func legalTransition(kind WizardKind, from, to WizardStep) bool {
	switch from {
	case StepForm:
		return to == StepDetails
	case StepDetails:
		return to == StepModal || to == StepForm
	case StepModal:
		return to == StepDetails || to == terminalStep(kind)
	default:
		return false
	}
}

func (n *Navigator) resetPanelState() {
	n.panel = PanelNone
	n.analysisStep = StepForm
	n.descriptionStep = StepForm
	n.archiveItem = nil
	n.draft = FormDraft{}
}
