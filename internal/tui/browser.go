package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/dirnav/internal/contents"
	"github.com/HaiFongPan/dirnav/internal/events"
	"github.com/HaiFongPan/dirnav/internal/listing"
	"github.com/HaiFongPan/dirnav/internal/navigation"
	"github.com/HaiFongPan/dirnav/internal/pathutil"
	tuiconfig "github.com/HaiFongPan/dirnav/internal/tui/config"
	"github.com/HaiFongPan/dirnav/internal/tui/messaging"
	"github.com/HaiFongPan/dirnav/internal/tui/theme"
	"github.com/HaiFongPan/dirnav/internal/utils"
)

// Entry is one row of the browser table.
type Entry struct {
	Name     string
	Path     string
	IsDir    bool
	Size     int64
	Modified time.Time
	Category string
}

// entriesFrom flattens a listing into rows, directories first.
func entriesFrom(c *listing.DirectoryContents) []Entry {
	if c == nil {
		return nil
	}
	rows := make([]Entry, 0, c.Len())
	for _, d := range c.Directories {
		rows = append(rows, Entry{
			Name:     d.Name,
			Path:     d.Path,
			IsDir:    true,
			Category: utils.CategoryDirectory,
		})
	}
	for _, f := range c.Files {
		rows = append(rows, Entry{
			Name:     f.Name,
			Path:     f.Path,
			IsDir:    f.IsDirectory,
			Size:     f.Size,
			Modified: f.LastModified,
			Category: utils.FileCategory(f.Name),
		})
	}
	return rows
}

// Message types for tea.Cmd communication
type invalidatedMsg struct {
	path string
}

type eventsClosedMsg struct{}

type contentsLoadedMsg struct {
	result contents.Result
}

type clearStatusMsg struct{}

// BrowserModel is the interactive directory browser. Navigation goes
// through the controller; listings are reloaded when the controller
// signals invalidation on the event channel.
type BrowserModel struct {
	nav    *navigation.Controller
	loader *contents.Loader
	events <-chan events.Event
	ctx    context.Context
	title  string

	entries   []Entry
	shownPath string
	loading   bool
	err       error

	fileTable    table.Model
	keyMap       KeyMap
	help         help.Model
	spinner      spinner.Model
	gotoInput    textinput.Model
	status       messaging.StatusManager
	showHelp     bool
	prompting    bool
	windowWidth  int
	windowHeight int

	copyToClipboard func(string) error
}

// NewBrowserModel creates a browser over nav. eventCh is a subscription to
// the bus the controller invalidates through.
func NewBrowserModel(ctx context.Context, nav *navigation.Controller, loader *contents.Loader, eventCh <-chan events.Event, title string) *BrowserModel {
	columns := []table.Column{
		{Title: "NAME", Width: tuiconfig.DefaultColumnNameWidth},
		{Title: "SIZE", Width: tuiconfig.DefaultColumnSizeWidth},
		{Title: "TYPE", Width: tuiconfig.DefaultColumnTypeWidth},
		{Title: "MODIFIED", Width: tuiconfig.DefaultColumnModifiedWidth},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(tuiconfig.DefaultTableHeight),
		table.WithFocused(true),
		table.WithStyles(theme.CreateTableStyles()),
	)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.CreateLoadingStyle()

	ti := textinput.New()
	ti.Placeholder = "/absolute/path or relative/path"
	ti.Prompt = "go to: "
	ti.CharLimit = 4096

	h := help.New()
	h.ShowAll = false

	if ctx == nil {
		ctx = context.Background()
	}

	return &BrowserModel{
		nav:             nav,
		loader:          loader,
		events:          eventCh,
		ctx:             ctx,
		title:           title,
		loading:         true,
		fileTable:       t,
		keyMap:          DefaultKeyMap(),
		help:            h,
		spinner:         s,
		gotoInput:       ti,
		status:          messaging.NewStatusManager(),
		windowWidth:     tuiconfig.DefaultWindowWidth,
		windowHeight:    tuiconfig.DefaultWindowHeight,
		copyToClipboard: utils.CopyToClipboard,
	}
}

// Init implements the bubbletea.Model interface
func (m *BrowserModel) Init() tea.Cmd {
	return tea.Batch(m.reload(m.nav.CurrentPath()), m.waitForInvalidation(), m.spinner.Tick)
}

// Update implements the bubbletea.Model interface
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompting {
			return m.handlePrompt(msg)
		}
		return m.handleKey(msg)

	case invalidatedMsg:
		return m, tea.Batch(m.reload(msg.path), m.waitForInvalidation())

	case eventsClosedMsg:
		logrus.Debug("browser: event channel closed")
		return m, nil

	case contentsLoadedMsg:
		if msg.result.Stale(m.loader) {
			logrus.Debugf("browser: dropping stale listing of %s", msg.result.Path)
			return m, nil
		}
		m.loading = false
		m.err = msg.result.Err
		m.shownPath = msg.result.Path
		if m.err != nil {
			m.entries = nil
		} else {
			m.entries = entriesFrom(msg.result.Contents)
		}
		m.updateTable()
		m.fileTable.SetCursor(0)
		return m, nil

	case clearStatusMsg:
		if m.status.Expired(tuiconfig.StatusMessageTTL) {
			m.status.ClearMessage()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.updateTableSize(msg.Width, msg.Height-tuiconfig.ChromeHeight)
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keyMap.Help) || key.Matches(msg, m.keyMap.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Up), key.Matches(msg, m.keyMap.Down):
		var cmd tea.Cmd
		m.fileTable, cmd = m.fileTable.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keyMap.Open):
		// rows belong to the shown listing, which lags behind a navigation
		if !m.listingCurrent() {
			return m, nil
		}
		if e, ok := m.selected(); ok && e.IsDir {
			target := e.Path
			if !pathutil.IsAbsolute(target) {
				target = pathutil.Join(m.shownPath, e.Name)
			}
			m.nav.NavigateToPath(target)
		}

	case key.Matches(msg, m.keyMap.Parent):
		m.nav.NavigateUp()

	case key.Matches(msg, m.keyMap.Back):
		if !m.nav.NavigateBack() {
			return m, m.setStatus("No previous directory", messaging.MessageWarning)
		}

	case key.Matches(msg, m.keyMap.Forward):
		if !m.nav.NavigateForward() {
			return m, m.setStatus("No next directory", messaging.MessageWarning)
		}

	case key.Matches(msg, m.keyMap.Home):
		m.nav.NavigateHome()

	case key.Matches(msg, m.keyMap.Breadcrumb):
		i, _ := strconv.Atoi(msg.String())
		if !m.nav.NavigateToBreadcrumb(i - 1) {
			return m, m.setStatus(fmt.Sprintf("No breadcrumb %d", i), messaging.MessageWarning)
		}

	case key.Matches(msg, m.keyMap.Goto):
		m.prompting = true
		m.gotoInput.SetValue("")
		return m, m.gotoInput.Focus()

	case key.Matches(msg, m.keyMap.Refresh):
		return m, m.reload(m.nav.CurrentPath())

	case key.Matches(msg, m.keyMap.Copy):
		p := m.nav.CurrentPath()
		if err := m.copyToClipboard(p); err != nil {
			logrus.WithError(err).Warn("browser: copy failed")
			return m, m.setStatus(err.Error(), messaging.MessageError)
		}
		return m, m.setStatus("Copied "+p, messaging.MessageSuccess)

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = true

	default:
		var cmd tea.Cmd
		m.fileTable, cmd = m.fileTable.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *BrowserModel) handlePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		m.prompting = false
		m.gotoInput.Blur()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		m.prompting = false
		m.gotoInput.Blur()
		if input := strings.TrimSpace(m.gotoInput.Value()); input != "" {
			m.nav.NavigateToPath(input)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

// listingCurrent reports whether the table shows the current directory.
func (m *BrowserModel) listingCurrent() bool {
	return !m.loading && m.shownPath == m.nav.CurrentPath()
}

// reload starts a listing of path. The request becomes current immediately,
// so any listing still in flight is ignored when it lands.
func (m *BrowserModel) reload(path string) tea.Cmd {
	req := m.loader.Begin(path)
	m.loading = true
	m.err = nil
	ctx := m.ctx
	loader := m.loader
	return func() tea.Msg {
		return contentsLoadedMsg{result: loader.Fetch(ctx, req)}
	}
}

// waitForInvalidation blocks on the event channel until the controller
// reports a navigation.
func (m *BrowserModel) waitForInvalidation() tea.Cmd {
	ch := m.events
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		for ev := range ch {
			if inv, ok := ev.(events.InvalidationEvent); ok {
				return invalidatedMsg{path: inv.Path}
			}
		}
		return eventsClosedMsg{}
	}
}

func (m *BrowserModel) setStatus(message string, t messaging.MessageType) tea.Cmd {
	m.status.SetMessage(message, t)
	return tea.Tick(tuiconfig.StatusMessageTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m *BrowserModel) selected() (Entry, bool) {
	i := m.fileTable.Cursor()
	if i < 0 || i >= len(m.entries) {
		return Entry{}, false
	}
	return m.entries[i], true
}

func (m *BrowserModel) updateTable() {
	rows := make([]table.Row, len(m.entries))
	nameWidth := m.fileTable.Columns()[0].Width
	for i, e := range m.entries {
		name := e.Name
		if e.IsDir {
			name += "/"
		}
		name = truncate(name, nameWidth-3)

		size := "-"
		if !e.IsDir {
			size = humanize.IBytes(uint64(e.Size))
		}
		modified := ""
		if !e.Modified.IsZero() {
			modified = e.Modified.Format(tuiconfig.ModifiedLayout)
		}

		rows[i] = table.Row{
			theme.GetFileIcon(e.Category) + " " + name,
			size,
			strings.ToUpper(e.Category),
			modified,
		}
	}
	m.fileTable.SetRows(rows)
}

func (m *BrowserModel) updateTableSize(width, height int) {
	fixed := tuiconfig.DefaultColumnSizeWidth + tuiconfig.DefaultColumnTypeWidth + tuiconfig.DefaultColumnModifiedWidth
	nameWidth := width - fixed - 8
	if nameWidth < tuiconfig.MinColumnNameWidth {
		nameWidth = tuiconfig.MinColumnNameWidth
	} else if nameWidth > tuiconfig.MaxColumnNameWidth {
		nameWidth = tuiconfig.MaxColumnNameWidth
	}
	m.fileTable.SetColumns([]table.Column{
		{Title: "NAME", Width: nameWidth},
		{Title: "SIZE", Width: tuiconfig.DefaultColumnSizeWidth},
		{Title: "TYPE", Width: tuiconfig.DefaultColumnTypeWidth},
		{Title: "MODIFIED", Width: tuiconfig.DefaultColumnModifiedWidth},
	})
	if height > 3 {
		m.fileTable.SetHeight(height)
	}
	m.updateTable()
}

// View implements the bubbletea.Model interface
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(theme.CreateHeaderStyle().Render(m.headerLine()))
	b.WriteString("\n")
	b.WriteString(" " + m.renderBreadcrumb())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(theme.CreateLoadingStyle().Render(fmt.Sprintf(" %s Loading %s...", m.spinner.View(), m.nav.CurrentPath())))
	case m.err != nil:
		b.WriteString(theme.CreateErrorStyle().Render(fmt.Sprintf(" Error: %v", m.err)))
	case len(m.entries) == 0:
		b.WriteString(theme.CreateSecondaryTextStyle().Render(" Empty directory"))
	default:
		b.WriteString(m.fileTable.View())
		b.WriteString("\n")
		b.WriteString(theme.CreateSecondaryTextStyle().Render(m.countLine()))
	}
	b.WriteString("\n")

	if m.prompting {
		b.WriteString(" " + m.gotoInput.View())
		b.WriteString("\n")
	} else if m.status.HasMessage() {
		b.WriteString(" " + m.status.RenderMessage())
		b.WriteString("\n")
	}

	b.WriteString(theme.CreateFooterStyle().Render(m.help.ShortHelpView(m.keyMap.ShortHelp())))

	if m.showHelp {
		return m.renderHelpDialog()
	}
	return b.String()
}

func (m *BrowserModel) headerLine() string {
	h := "dirnav"
	if m.title != "" {
		h += " - " + m.title
	}
	var arrows []string
	if m.nav.CanNavigateBack() {
		arrows = append(arrows, "←")
	}
	if m.nav.CanNavigateForward() {
		arrows = append(arrows, "→")
	}
	if len(arrows) > 0 {
		h += "  " + strings.Join(arrows, " ")
	}
	return h
}

// renderBreadcrumb shows the current path as numbered segments; segment n
// is reachable with digit key n.
func (m *BrowserModel) renderBreadcrumb() string {
	parts := m.nav.PathParts()
	segs := []string{theme.CreateBreadcrumbStyle(len(parts) == 0).Render(pathutil.Root)}
	for i, p := range parts {
		label := p
		if i < tuiconfig.MaxBreadcrumbShortcuts {
			label = fmt.Sprintf("%d:%s", i+1, p)
		}
		segs = append(segs, theme.CreateBreadcrumbStyle(i == len(parts)-1).Render(label))
	}
	return strings.Join(segs, " › ")
}

func (m *BrowserModel) countLine() string {
	dirs := 0
	for _, e := range m.entries {
		if e.IsDir {
			dirs++
		}
	}
	return fmt.Sprintf(" %d directories, %d files", dirs, len(m.entries)-dirs)
}

func (m *BrowserModel) renderHelpDialog() string {
	width := tuiconfig.DialogLargeWidth
	if m.windowWidth-10 < width {
		width = m.windowWidth - 10
	}
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.ColorBrightYellow)).
		Render("dirnav - Help")
	full := help.New()
	full.ShowAll = true
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		full.FullHelpView(m.keyMap.FullHelp()),
		"",
		theme.CreateSecondaryTextStyle().Render("Press ? or esc to close"),
	)
	dialog := theme.CreateDialogStyle(width, theme.ColorBrightYellow).Render(body)
	return lipgloss.Place(m.windowWidth, m.windowHeight, lipgloss.Center, lipgloss.Center, dialog)
}

// Entries returns the rows currently shown.
func (m *BrowserModel) Entries() []Entry {
	return m.entries
}

// ShownPath is the path of the listing currently displayed.
func (m *BrowserModel) ShownPath() string {
	return m.shownPath
}

func truncate(s string, n int) string {
	if n <= 3 || len([]rune(s)) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}
