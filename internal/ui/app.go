package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/repolist/internal/api"
	"github.com/five82/repolist/internal/collection"
	"github.com/five82/repolist/internal/prefs"
	"github.com/five82/repolist/internal/reposync"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *reposync.Controller
	Logger     *slog.Logger
	ThemeName  string
	PrefsPath  string
	Locale     string
	NewRepoURL string
	Source     string // shown in the header, usually the API base URL
	Now        func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	controller *reposync.Controller
	logger     *slog.Logger
	prefsPath  string
	locale     string
	newRepoURL string
	source     string
	now        func() time.Time

	// Store subscription
	changes <-chan collection.Snapshot
	cancel  func()

	// Components
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	prompt  textinput.Model

	// UI state
	theme     Theme
	width     int
	height    int
	ready     bool
	showHelp  bool
	prompting bool

	// Data state
	snapshot    collection.Snapshot
	selectedRow int
	selectedID  api.ID

	// Operation state
	pending int
	notice  string
	lastErr error
}

// New creates a new Bubble Tea model subscribed to the controller's store.
// Close releases the subscription.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	ti := textinput.New()
	ti.Prompt = "Title: "
	ti.CharLimit = 120

	m := Model{
		ctx:        ctx,
		controller: opts.Controller,
		logger:     logger,
		prefsPath:  prefsPath,
		locale:     opts.Locale,
		newRepoURL: opts.NewRepoURL,
		source:     opts.Source,
		now:        now,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		spinner:    sp,
		prompt:     ti,
		theme:      GetTheme(themeName),
		cancel:     func() {},
	}
	if m.controller != nil {
		store := m.controller.Store()
		m.snapshot = store.Snapshot()
		m.changes, m.cancel = store.Subscribe()
		m.pending = 1 // Init issues the first load
	}
	m.applyTheme()
	return m
}

// Close cancels the store subscription.
func (m Model) Close() {
	m.cancel()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.controller == nil {
		return nil
	}
	return tea.Batch(
		waitForChangeCmd(m.changes),
		m.spinner.Tick,
		loadCmd(m.ctx, m.controller),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.prompt.Width = max(msg.Width-len(m.prompt.Prompt)-4, 10)
		m.ready = true
		return m, nil

	case snapshotMsg:
		m.applySnapshot(collection.Snapshot(msg))
		return m, waitForChangeCmd(m.changes)

	case opDoneMsg:
		return m.handleOpDone(msg), nil

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.prompting {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
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
	if m.prompting {
		b.WriteString(m.renderPrompt())
	} else {
		b.WriteString(m.renderCommandBar())
	}
	b.WriteString("\n")
	b.WriteString(m.renderList(m.width, m.contentHeight()))
	return b.String()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.prompting {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.logger.Warn("save prefs", "error", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		if m.controller == nil {
			return m, nil
		}
		m.prompting = true
		m.prompt.SetValue("")
		m.prompt.Placeholder = m.defaultTitle()
		return m, m.prompt.Focus()

	case key.Matches(msg, m.keys.Like):
		repo, ok := m.selected()
		if !ok || m.controller == nil {
			return m, nil
		}
		return m.start(likeCmd(m.ctx, m.controller, repo.ID))

	case key.Matches(msg, m.keys.Reload):
		if m.controller == nil {
			return m, nil
		}
		return m.start(loadCmd(m.ctx, m.controller))

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(m.selectedRow - 1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(m.selectedRow + 1)
	case key.Matches(msg, m.keys.Top):
		m.moveSelection(0)
	case key.Matches(msg, m.keys.Bottom):
		m.moveSelection(m.snapshot.Items.Len() - 1)
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.prompting = false
		m.prompt.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		title := strings.TrimSpace(m.prompt.Value())
		if title == "" {
			title = m.prompt.Placeholder
		}
		m.prompting = false
		m.prompt.Blur()
		payload := api.NewRepository{Title: title, URL: m.newRepoURL, Techs: []string{}}
		return m.start(addCmd(m.ctx, m.controller, payload))
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// start marks an operation in flight and restarts the spinner when it was idle.
func (m Model) start(op tea.Cmd) (tea.Model, tea.Cmd) {
	m.pending++
	if m.pending == 1 {
		return m, tea.Batch(op, m.spinner.Tick)
	}
	return m, op
}

func (m Model) handleOpDone(msg opDoneMsg) Model {
	if m.pending > 0 {
		m.pending--
	}
	if msg.err != nil {
		m.lastErr = msg.err
		m.notice = ""
		return m
	}
	m.lastErr = nil
	// The store has already published this result; take it now so the
	// selection below sees the new record.
	m.applySnapshot(m.controller.Store().Snapshot())
	switch msg.op {
	case opAdd:
		m.notice = "Added " + msg.record.Title
		m.selectedID = msg.record.ID
		m.syncSelection()
	case opLike:
		m.notice = fmt.Sprintf("Liked %s (%s)", msg.record.Title, LikesLabel(msg.record.Likes, m.locale))
	case opLoad:
		m.notice = ""
	}
	return m
}

// applySnapshot swaps in a newer snapshot, keeping the selection on the
// same repository id when it still exists.
func (m *Model) applySnapshot(snap collection.Snapshot) {
	if snap.Version < m.snapshot.Version {
		return
	}
	m.snapshot = snap
	m.syncSelection()
}

func (m *Model) syncSelection() {
	items := m.snapshot.Items
	if items.Len() == 0 {
		m.selectedRow = 0
		m.selectedID = ""
		return
	}
	if m.selectedID != "" {
		if idx := items.Index(m.selectedID); idx >= 0 {
			m.selectedRow = idx
			return
		}
	}
	m.moveSelection(m.selectedRow)
}

func (m *Model) moveSelection(row int) {
	n := m.snapshot.Items.Len()
	if n == 0 {
		m.selectedRow = 0
		m.selectedID = ""
		return
	}
	m.selectedRow = min(max(row, 0), n-1)
	m.selectedID = m.snapshot.Items.At(m.selectedRow).ID
}

func (m Model) selected() (api.Repository, bool) {
	if m.snapshot.Items.Len() == 0 {
		return api.Repository{}, false
	}
	return m.snapshot.Items.Get(m.selectedID)
}

func (m Model) defaultTitle() string {
	return fmt.Sprintf("New repo %d", m.now().UnixMilli())
}

func (m Model) contentHeight() int {
	return max(m.height-2, 1)
}

func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.spinner.Style = styles.AccentText
	m.prompt.PromptStyle = styles.AccentText
	m.prompt.TextStyle = styles.Text
	m.prompt.PlaceholderStyle = styles.FaintText
	m.help.Styles.FullKey = styles.WarningText
	m.help.Styles.FullDesc = styles.Text
	m.help.Styles.FullSeparator = styles.FaintText
	m.help.Styles.ShortKey = styles.AccentText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
}

// Messages

type snapshotMsg collection.Snapshot

type opKind int

const (
	opLoad opKind = iota
	opAdd
	opLike
)

type opDoneMsg struct {
	op     opKind
	record api.Repository
	err    error
}

// Commands

func waitForChangeCmd(changes <-chan collection.Snapshot) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-changes
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

func loadCmd(ctx context.Context, c *reposync.Controller) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: opLoad, err: c.LoadAll(ctx)}
	}
}

func addCmd(ctx context.Context, c *reposync.Controller, payload api.NewRepository) tea.Cmd {
	return func() tea.Msg {
		record, err := c.AddRepository(ctx, payload)
		return opDoneMsg{op: opAdd, record: record, err: err}
	}
}

func likeCmd(ctx context.Context, c *reposync.Controller, id api.ID) tea.Cmd {
	return func() tea.Msg {
		record, err := c.LikeRepository(ctx, id)
		return opDoneMsg{op: opLike, record: record, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
		opts.Context = ctx
	}
	m := New(opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
