// Package ui is the terminal front end: a bubbletea model that renders the editor
// controller's state and turns key presses into controller messages.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"xedit/internal/editor"
	"xedit/internal/filetree"
	"xedit/internal/gateway"
)

// Styles
var (
	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("203")).
				Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Padding(0, 1)

	flashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("221")).
			Padding(0, 1)

	dialogStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	dialogTitleStyle = lipgloss.NewStyle().Bold(true)

	dialogHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const maxSidebarWidth = 32

type focus int

const (
	focusEditor focus = iota
	focusSidebar
)

// Option configures a Model.
type Option func(*Model)

// WithTheme selects the starting theme by name.
func WithTheme(name string) Option {
	return func(m *Model) { m.themes = NewThemeManager(name) }
}

// WithTabWidth sets how many columns a tab stop spans.
func WithTabWidth(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.tabWidth = n
		}
	}
}

// WithHighlighting configures syntax highlighting.
func WithHighlighting(style string, enabled bool) Option {
	return func(m *Model) { m.hl = NewHighlighter(style, enabled) }
}

// WithShowHidden controls whether the pickers list dot files.
func WithShowHidden(show bool) Option {
	return func(m *Model) { m.showHidden = show }
}

// WithStartup sends msg to the controller when the program starts.
func WithStartup(msg editor.Msg) Option {
	return func(m *Model) { m.startup = msg }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(m *Model) {
		if log != nil {
			m.log = log
		}
	}
}

// Model is the bubbletea model.
type Model struct {
	ctrl   *editor.Controller
	env    editor.Env
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger

	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	spinning bool
	themes   *ThemeManager
	hl       *Highlighter
	md       *markdownRenderer

	preview    viewport.Model
	previewing bool

	focus      focus
	treeCursor int
	treeTop    int
	top, left  int

	dialog     *dialog
	showHidden bool
	tabWidth   int
	startup    editor.Msg
	flash      string
	quitArmed  bool

	width  int
	height int
	ready  bool
}

// New returns a model driving ctrl. Commands run against env until the model quits.
func New(ctrl *editor.Controller, env editor.Env, opts ...Option) Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		ctrl:       ctrl,
		env:        env,
		ctx:        ctx,
		cancel:     cancel,
		log:        zap.NewNop(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		themes:     NewThemeManager(""),
		hl:         NewHighlighter("monokai", true),
		md:         &markdownRenderer{},
		preview:    viewport.New(0, 0),
		showHidden: true,
		tabWidth:   4,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.startup == nil {
		return nil
	}
	startup := m.startup
	return func() tea.Msg { return startup }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = max(msg.Width-2, 0)
		m.ready = true
		m.scroll()
		if m.previewing {
			m.refreshPreview()
		}
		return m, nil

	case pickRequestMsg:
		return m.openDialog(msg)

	case editor.Msg:
		return m, m.send(msg)

	case clipboardMsg:
		return m.clipboardDone(msg)

	case spinner.TickMsg:
		if m.ctrl.Pending() == 0 {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.dialog != nil {
			return m.updateDialog(msg)
		}
		return m.handleKey(msg)
	}

	// Directory reads and cursor blinks of the open dialog
	if m.dialog != nil {
		return m.updateDialog(msg)
	}
	if m.previewing {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	return m, nil
}

// send applies msg to the controller and returns the resulting work as a tea.Cmd.
func (m *Model) send(msg editor.Msg) tea.Cmd {
	selected := m.selectedPath()
	cmds := m.ctrl.Update(msg)
	m.followSelection(selected)
	m.scroll()
	if m.previewing {
		m.refreshPreview()
	}
	return m.run(cmds)
}

func (m *Model) run(cmds []editor.Command) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	ctx, env := m.ctx, m.env
	batch := make([]tea.Cmd, 0, len(cmds)+1)
	for _, c := range cmds {
		batch = append(batch, func() tea.Msg {
			return c.Run(ctx, env)
		})
	}
	if !m.spinning {
		m.spinning = true
		batch = append(batch, m.spinner.Tick)
	}
	return tea.Batch(batch...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""
	if !key.Matches(msg, m.keys.Quit) {
		m.quitArmed = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.ctrl.Snapshot().Document.Dirty() && !m.quitArmed {
			m.quitArmed = true
			m.flash = "Unsaved changes. Press ctrl+q again to quit."
			return m, nil
		}
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Open):
		return m, m.send(editor.OpenFile{})
	case key.Matches(msg, m.keys.OpenDir):
		return m, m.send(editor.OpenDirectory{})
	case key.Matches(msg, m.keys.New):
		m.focus = focusEditor
		return m, m.send(editor.NewFile{})
	case key.Matches(msg, m.keys.Save):
		return m, m.send(editor.Save{})
	case key.Matches(msg, m.keys.SaveAs):
		return m, m.send(editor.Save{As: true})
	case key.Matches(msg, m.keys.Reload):
		return m, m.send(editor.Reload{})
	case key.Matches(msg, m.keys.SwitchFocus):
		if m.focus == focusEditor {
			m.focus = focusSidebar
		} else {
			m.focus = focusEditor
		}
		return m, nil
	case key.Matches(msg, m.keys.Preview):
		m.togglePreview()
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.themes.NextTheme()
		return m, nil
	case key.Matches(msg, m.keys.ThemePrev):
		m.themes.PreviousTheme()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.scroll()
		return m, nil
	}

	if m.focus == focusSidebar {
		return m.sidebarKey(msg)
	}
	if m.previewing {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	if next, cmd, ok := m.clipboardKey(msg); ok {
		return next, cmd
	}
	_, textH := m.textSize()
	if a, ok := editAction(msg, textH); ok {
		return m, m.send(editor.Edit{Action: a})
	}
	return m, nil
}

func (m Model) sidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.ctrl.Snapshot().Tree.Rows()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.treeCursor > 0 {
			m.treeCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.treeCursor < len(rows)-1 {
			m.treeCursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.treeCursor >= len(rows) {
			return m, nil
		}
		row := rows[m.treeCursor]
		switch {
		case row.IsDir():
			return m, m.send(editor.ToggleDirectory{Path: row.Path})
		case row.IsPlaceholder():
			m.focus = focusEditor
		default:
			m.focus = focusEditor
			return m, m.send(editor.SelectFile{Path: row.Path})
		}
	}
	m.scroll()
	return m, nil
}

func (m Model) openDialog(req pickRequestMsg) (tea.Model, tea.Cmd) {
	if m.dialog != nil {
		req.reply <- pickResult{err: gateway.ErrDialogClosed}
		return m, nil
	}
	d, cmd := newDialog(req, m.pickerBase(), m.showHidden, m.height-12)
	m.dialog = d
	return m, cmd
}

func (m Model) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, cmd := m.dialog.update(msg)
	if done {
		m.dialog = nil
	}
	return m, cmd
}

// pickerBase is where dialogs start: next to the document, else the open folder.
func (m Model) pickerBase() string {
	snap := m.ctrl.Snapshot()
	if path, ok := snap.Document.Path(); ok {
		return gateway.ParentDirectory(path)
	}
	if root := snap.Tree.Root(); root != "" {
		return root
	}
	return gateway.ParentDirectory("")
}

func (m *Model) togglePreview() {
	if m.previewing {
		m.previewing = false
		return
	}
	path, _ := m.ctrl.Snapshot().Document.Path()
	if !isMarkdown(path) {
		m.flash = "Preview is only available for Markdown files."
		return
	}
	m.previewing = true
	m.preview.GotoTop()
	m.refreshPreview()
}

func (m *Model) refreshPreview() {
	doc := m.ctrl.Snapshot().Document
	if path, _ := doc.Path(); !isMarkdown(path) {
		m.previewing = false
		return
	}
	w, h := m.paneSize()
	m.preview.Width = w
	m.preview.Height = h
	out, err := m.md.render(doc.Text(), w)
	if err != nil {
		m.log.Warn("markdown preview failed", zap.Error(err))
		out = doc.Text()
	}
	m.preview.SetContent(out)
}

func (m Model) selectedPath() string {
	rows := m.ctrl.Snapshot().Tree.Rows()
	if m.treeCursor < len(rows) {
		return rows[m.treeCursor].Path
	}
	return ""
}

// followSelection keeps the sidebar cursor on path when the rows change.
func (m *Model) followSelection(path string) {
	rows := m.ctrl.Snapshot().Tree.Rows()
	for i, r := range rows {
		if path != "" && r.Path == path {
			m.treeCursor = i
			return
		}
	}
	if m.treeCursor >= len(rows) {
		m.treeCursor = max(len(rows)-1, 0)
	}
}

// Layout

func (m Model) bodyHeight() int {
	used := lipgloss.Height(m.headerView()) + lipgloss.Height(m.statusView()) + lipgloss.Height(m.footerView())
	return max(m.height-used, 3)
}

func (m Model) sidebarWidth() int {
	return min(maxSidebarWidth, m.width/3)
}

// paneSize is the editor pane inside its border.
func (m Model) paneSize() (int, int) {
	return max(m.width-m.sidebarWidth()-2, 1), max(m.bodyHeight()-2, 1)
}

// textSize is the part of the editor pane right of the line numbers.
func (m Model) textSize() (int, int) {
	w, h := m.paneSize()
	gw := gutterWidth(m.ctrl.Snapshot().Document.LineCount())
	return max(w-gw, 1), h
}

// scroll moves the editor and sidebar windows so both cursors stay visible.
func (m *Model) scroll() {
	snap := m.ctrl.Snapshot()
	textW, textH := m.textSize()

	cur := snap.Document.Cursor()
	if cur.Line < m.top {
		m.top = cur.Line
	}
	if cur.Line >= m.top+textH {
		m.top = cur.Line - textH + 1
	}
	col := visualCol([]rune(snap.Document.Line(cur.Line)), cur.Col, m.tabWidth)
	if col < m.left {
		m.left = col
	}
	if col >= m.left+textW {
		m.left = col - textW + 1
	}

	offset := 0
	if snap.Tree.Root() != "" {
		offset = 1
	}
	line := m.treeCursor + offset
	if m.treeCursor == 0 {
		line = 0
	}
	sideH := max(m.bodyHeight()-2, 1)
	if line < m.treeTop {
		m.treeTop = line
	}
	if line >= m.treeTop+sideH {
		m.treeTop = line - sideH + 1
	}
}

// Views

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	if m.dialog != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.dialog.view())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), m.editorView())
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.statusView(), m.footerView())
}

func (m Model) headerView() string {
	doc := m.ctrl.Snapshot().Document
	title := fmt.Sprintf("xedit - %s", doc.Title())
	if doc.Dirty() {
		title += " ●"
	}
	return m.themes.HeaderStyle().Width(m.width).Render(title)
}

func (m Model) sidebarView() string {
	w := max(m.sidebarWidth()-2, 1)
	h := max(m.bodyHeight()-2, 1)
	focused := m.focus == focusSidebar

	view := m.ctrl.Snapshot().Tree
	var selected filetree.NodeID
	if rows := view.Rows(); m.treeCursor < len(rows) {
		selected = rows[m.treeCursor].ID
	}
	content, _ := renderSidebar(view, selected, m.themes.SelectionStyle(focused))

	lines := strings.Split(content, "\n")
	lines = lines[min(m.treeTop, len(lines)):]
	if len(lines) > h {
		lines = lines[:h]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, w, "…")
	}
	return m.themes.PaneStyle(focused).Width(w).Height(h).Render(strings.Join(lines, "\n"))
}

func (m Model) editorView() string {
	w, h := m.paneSize()
	focused := m.focus == focusEditor
	if m.previewing {
		return m.themes.PaneStyle(focused).Width(w).Height(h).Render(m.preview.View())
	}

	doc := m.ctrl.Snapshot().Document
	path, _ := doc.Path()
	content := renderEditor(doc, frame{
		top:        m.top,
		left:       m.left,
		width:      w,
		height:     h,
		tabWidth:   m.tabWidth,
		showCursor: focused,
	}, m.hl, path)
	return m.themes.PaneStyle(focused).Width(w).Height(h).Render(content)
}

func (m Model) statusView() string {
	snap := m.ctrl.Snapshot()
	doc := snap.Document

	left := doc.Status()
	if doc.Err() != nil {
		left = statusErrorStyle.Render(left)
	}
	if snap.Pending > 0 {
		left = m.spinner.View() + " " + left
	}
	if snap.Notice != "" {
		left += " · " + snap.Notice
	}

	cur := doc.Cursor()
	right := fmt.Sprintf("Ln %d, Col %d", cur.Line+1, cur.Col+1)
	if m.previewing {
		right = "Preview · " + right
	}

	inner := max(m.width-2, 0)
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		left = ansi.Truncate(left, max(inner-lipgloss.Width(right)-1, 0), "…")
		gap = max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	}
	return statusStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) footerView() string {
	if m.flash != "" {
		return flashStyle.Width(m.width).Render(m.flash)
	}
	return footerStyle.Width(m.width).Render(m.help.View(m.keys))
}
