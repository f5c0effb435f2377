package nav

import (
	"testing"

	"github.com/seo-ai/seodesk/internal/seoai"
)

func TestSelectSection_ResetsPanelStateExceptArchive(t *testing.T) {
	for _, target := range Sections() {
		t.Run(target.String(), func(t *testing.T) {
			n := New(SectionMain)
			if !n.OpenPanel(PanelProductAnalysis, nil) {
				t.Fatalf("OpenPanel(analysis) rejected")
			}
			if err := n.Advance(WizardAnalysis, StepDetails); err != nil {
				t.Fatalf("Advance: %v", err)
			}
			n.SetDraft(FormDraft{SKU: "12345"})

			n.SelectSection(target)

			if target == SectionArchive {
				if n.Panel() != PanelProductAnalysis {
					t.Fatalf("panel = %v, want analysis panel kept on archive switch", n.Panel())
				}
				if n.Step(WizardAnalysis) != StepDetails {
					t.Fatalf("step = %v, want details kept on archive switch", n.Step(WizardAnalysis))
				}
				return
			}
			if n.Panel() != PanelNone {
				t.Fatalf("panel = %v, want none after switching to %s", n.Panel(), target)
			}
			if n.Step(WizardAnalysis) != StepForm || n.Step(WizardDescription) != StepForm {
				t.Fatalf("wizard steps not reset after switching to %s", target)
			}
			if n.SelectedArchiveItem() != nil {
				t.Fatalf("archive selection not cleared after switching to %s", target)
			}
		})
	}
}

func TestSelectSection_FiresHook(t *testing.T) {
	n := New(SectionMain)
	var got []Section
	n.OnSectionChange(func(s Section) { got = append(got, s) })

	n.SelectSection(SectionCabinet)
	n.SelectSection(SectionCabinet)
	n.SelectSection(SectionArchive)

	want := []Section{SectionCabinet, SectionCabinet, SectionArchive}
	if len(got) != len(want) {
		t.Fatalf("hook fired %d times, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("hook[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestClosePanel_Idempotent(t *testing.T) {
	n := New(SectionMain)
	n.OpenPanel(PanelProductDescription, nil)
	n.SetDraft(FormDraft{SKU: "12345", CompetitorSKU: "777"})
	if err := n.Advance(WizardDescription, StepDetails); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	n.ClosePanel()
	first := *n
	n.ClosePanel()

	if n.Panel() != PanelNone || n.Step(WizardDescription) != StepForm {
		t.Fatalf("ClosePanel left panel=%v step=%v", n.Panel(), n.Step(WizardDescription))
	}
	if n.Draft() != (FormDraft{}) {
		t.Fatalf("ClosePanel left draft = %#v", n.Draft())
	}
	if first.panel != n.panel || first.analysisStep != n.analysisStep ||
		first.descriptionStep != n.descriptionStep || first.draft != n.draft {
		t.Fatalf("second ClosePanel changed state")
	}
}

func TestOpenPanel_RejectsForeignSection(t *testing.T) {
	n := New(SectionMain)
	if n.OpenPanel(PanelTariff, nil) {
		t.Fatalf("OpenPanel(tariff) accepted under main, want rejection")
	}
	if n.Panel() != PanelNone {
		t.Fatalf("panel = %v after rejected open, want none", n.Panel())
	}

	n.SelectSection(SectionCabinet)
	if !n.OpenPanel(PanelTariff, nil) {
		t.Fatalf("OpenPanel(tariff) rejected under cabinet")
	}
}

func TestOpenPanel_ArchiveItemRecordsSelection(t *testing.T) {
	n := New(SectionArchive)
	item := &seoai.ArchiveItem{CardID: 42, SKU: "12345"}
	if !n.OpenPanel(PanelArchiveItem, item) {
		t.Fatalf("OpenPanel(archive-item) rejected")
	}
	if got := n.SelectedArchiveItem(); got == nil || got.CardID != 42 {
		t.Fatalf("SelectedArchiveItem = %#v, want card 42", got)
	}
}

func TestOpenPanel_WizardResetsStep(t *testing.T) {
	n := New(SectionMain)
	n.OpenPanel(PanelProductAnalysis, nil)
	if err := n.Advance(WizardAnalysis, StepDetails); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	n.OpenPanel(PanelProductAnalysis, nil)
	if n.Step(WizardAnalysis) != StepForm {
		t.Fatalf("step = %v after reopening wizard, want form", n.Step(WizardAnalysis))
	}
}

func TestAdvance_StrictSequences(t *testing.T) {
	cases := []struct {
		name  string
		kind  WizardKind
		path  []WizardStep
		legal bool
	}{
		{"analysis full forward", WizardAnalysis, []WizardStep{StepDetails, StepModal, StepResults}, true},
		{"description full forward", WizardDescription, []WizardStep{StepDetails, StepModal, StepProcessing}, true},
		{"analysis wrong terminal", WizardAnalysis, []WizardStep{StepDetails, StepModal, StepProcessing}, false},
		{"description wrong terminal", WizardDescription, []WizardStep{StepDetails, StepModal, StepResults}, false},
		{"skip details", WizardAnalysis, []WizardStep{StepModal}, false},
		{"skip to terminal", WizardAnalysis, []WizardStep{StepResults}, false},
		{"backward from details", WizardAnalysis, []WizardStep{StepDetails, StepForm}, true},
		{"backward from modal", WizardAnalysis, []WizardStep{StepDetails, StepModal, StepDetails}, true},
		{"form to form", WizardAnalysis, []WizardStep{StepForm}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := New(SectionMain)
			var err error
			for _, step := range tc.path {
				if err = n.Advance(tc.kind, step); err != nil {
					break
				}
			}
			if tc.legal && err != nil {
				t.Fatalf("path %v returned error: %v", tc.path, err)
			}
			if !tc.legal && err == nil {
				t.Fatalf("path %v accepted, want rejection", tc.path)
			}
		})
	}
}

func TestAdvance_TerminalIsFinal(t *testing.T) {
	n := New(SectionMain)
	for _, step := range []WizardStep{StepDetails, StepModal, StepResults} {
		if err := n.Advance(WizardAnalysis, step); err != nil {
			t.Fatalf("Advance(%v): %v", step, err)
		}
	}
	if err := n.Advance(WizardAnalysis, StepModal); err == nil {
		t.Fatalf("Advance out of terminal step accepted, want rejection")
	}
}

func TestParseSection_RoundTrip(t *testing.T) {
	for _, s := range Sections() {
		parsed, ok := ParseSection(s.String())
		if !ok || parsed != s {
			t.Fatalf("ParseSection(%q) = %v, %v", s.String(), parsed, ok)
		}
	}
	if _, ok := ParseSection("bogus"); ok {
		t.Fatalf("ParseSection(bogus) ok = true, want false")
	}
	if parsed, ok := ParseSection(" Cabinet "); !ok || parsed != SectionCabinet {
		t.Fatalf("ParseSection with whitespace/case = %v, %v", parsed, ok)
	}
}
