// Package ui provides the Bubble Tea terminal UI for seodesk.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/seo-ai/seodesk/internal/config"
	"github.com/seo-ai/seodesk/internal/nav"
	"github.com/seo-ai/seodesk/internal/prefs"
	"github.com/seo-ai/seodesk/internal/queue"
	"github.com/seo-ai/seodesk/internal/seoai"
	"github.com/seo-ai/seodesk/internal/state"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Client     seoai.API
	Store      *state.Store
	Reconciler *queue.Reconciler
	IDs        *queue.IDSet
	Config     *config.Config
	Logger     *log.Logger
	ThemeName  string
	Section    string
	PrefsPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	api       seoai.API
	store     *state.Store
	recon     *queue.Reconciler
	ids       *queue.IDSet
	cfg       *config.Config
	logger    *log.Logger
	prefsPath string
	keys      keyMap

	// Navigation state
	nav *nav.Navigator

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Wizard state
	skuInput    textinput.Model
	compInput   textinput.Model
	focusIdx    int // 0 = sku, 1 = competitor sku
	submitting  bool
	starting    bool
	wizardErr   string
	createdCard seoai.Card

	// Archive state
	archiveRow      int
	archiveViewport viewport.Model

	// Misc
	spin     spinner.Model
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	initial, _ := nav.ParseSection(opts.Section)
	navigator := nav.New(initial)

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	skuInput := textinput.New()
	skuInput.Placeholder = "SKU"
	skuInput.CharLimit = 32
	skuInput.Focus()

	compInput := textinput.New()
	compInput.Placeholder = "Competitor SKU (optional)"
	compInput.CharLimit = 32

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		api:       opts.Client,
		store:     opts.Store,
		recon:     opts.Reconciler,
		ids:       opts.IDs,
		cfg:       opts.Config,
		logger:    logger,
		prefsPath: prefsPath,
		keys:      DefaultKeyMap(),
		nav:       navigator,
		theme:     GetTheme(themeName),
		skuInput:  skuInput,
		compInput: compInput,
		spin:      spin,
	}

	// Persist the active section, standing in for the URL fragment the web
	// dashboard writes on every tab change. The hook must not capture model
	// state: the model is copied on every Update, so it re-reads the prefs
	// file and rewrites only the section. Theme saves belong to the key
	// handler.
	navigator.OnSectionChange(func(s nav.Section) {
		p, _ := prefs.Load(prefsPath)
		p.Section = s.String()
		_ = prefs.Save(prefsPath, p)
	})

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(uiRefreshInterval),
		m.spin.Tick,
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

const uiRefreshInterval = time.Second

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.archiveViewport = viewport.New(msg.Width-8, msg.Height-8)
		} else {
			m.archiveViewport.Width = msg.Width - 8
			m.archiveViewport.Height = msg.Height - 8
		}
		m.ready = true
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		cmds = append(cmds, tickCmd(uiRefreshInterval))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampArchiveRow()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case cardCreatedMsg:
		return m.handleCardCreated(msg)

	case cardCreateFailedMsg:
		m.submitting = false
		m.wizardErr = m.errorText(msg.err)
		return m, nil

	case startDoneMsg:
		return m.handleStartDone(msg)

	case startFailedMsg:
		m.starting = false
		m.wizardErr = m.errorText(msg.err)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// Wizard form owns the keyboard while a text input is focused.
	if m.inWizardForm() {
		return m.handleWizardFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Section: m.nav.Section().String()})
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.selectSection(nextSection(m.nav.Section()))
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.selectSection(prevSection(m.nav.Section()))
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.closePanel()
		return m, nil
	}

	// Direct section selection with number keys.
	if section, ok := sectionForDigit(msg.String()); ok {
		m.selectSection(section)
		return m, nil
	}

	if m.nav.Panel() != nav.PanelNone {
		return m.handlePanelKey(msg)
	}
	return m.handleSectionKey(msg)
}

func (m *Model) selectSection(section nav.Section) {
	m.nav.SelectSection(section)
	// The navigator keeps panel and wizard state on a switch to archive;
	// the model-side wizard state must survive with it.
	if section != nav.SectionArchive {
		m.resetWizardInputs()
	}
}

func (m *Model) closePanel() {
	m.nav.ClosePanel()
	m.resetWizardInputs()
}

func (m *Model) resetWizardInputs() {
	m.skuInput.SetValue("")
	m.compInput.SetValue("")
	m.focusIdx = 0
	m.skuInput.Focus()
	m.compInput.Blur()
	m.submitting = false
	m.starting = false
	m.wizardErr = ""
	m.createdCard = seoai.Card{}
}

func sectionForDigit(key string) (nav.Section, bool) {
	sections := nav.Sections()
	switch key {
	case "1", "2", "3", "4", "5", "6":
		idx := int(key[0] - '1')
		if idx < len(sections) {
			return sections[idx], true
		}
	}
	return nav.SectionMain, false
}

func nextSection(current nav.Section) nav.Section {
	sections := nav.Sections()
	for i, s := range sections {
		if s == current {
			return sections[(i+1)%len(sections)]
		}
	}
	return sections[0]
}

func prevSection(current nav.Section) nav.Section {
	sections := nav.Sections()
	for i, s := range sections {
		if s == current {
			return sections[(i+len(sections)-1)%len(sections)]
		}
	}
	return sections[0]
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
