package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"xedit/internal/document"
)

// KeyMap defines the application key bindings. Editing keys are not listed here;
// anything that is not a binding goes to the focused pane.
type KeyMap struct {
	Open        key.Binding
	OpenDir     key.Binding
	New         key.Binding
	Save        key.Binding
	SaveAs      key.Binding
	Reload      key.Binding
	SwitchFocus key.Binding
	Preview     key.Binding
	Theme       key.Binding
	ThemePrev   key.Binding
	Help        key.Binding
	Quit        key.Binding

	// Editor
	Copy  key.Binding
	Cut   key.Binding
	Paste key.Binding

	// Sidebar
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open file"),
		),
		OpenDir: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "open folder"),
		),
		New: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		SaveAs: key.NewBinding(
			key.WithKeys("alt+s"),
			key.WithHelp("alt+s", "save as"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload folder"),
		),
		SwitchFocus: key.NewBinding(
			key.WithKeys("ctrl+b", "shift+tab"),
			key.WithHelp("ctrl+b", "sidebar/editor"),
		),
		Preview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "markdown preview"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		ThemePrev: key.NewBinding(
			key.WithKeys("alt+t"),
			key.WithHelp("alt+t", "previous theme"),
		),
		Copy: key.NewBinding(
			key.WithKeys("alt+c"),
			key.WithHelp("alt+c", "copy"),
		),
		Cut: key.NewBinding(
			key.WithKeys("alt+x"),
			key.WithHelp("alt+x", "cut"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "paste"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open/expand"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Save, k.SwitchFocus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.OpenDir, k.New, k.Reload},
		{k.Save, k.SaveAs, k.Preview, k.Theme, k.ThemePrev},
		{k.SwitchFocus, k.Up, k.Down, k.Toggle},
		{k.Copy, k.Cut, k.Paste},
		{k.Help, k.Quit},
	}
}

// editAction maps a key press in the editor pane to a document action.
func editAction(msg tea.KeyMsg, page int) (document.Action, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return document.Action{}, false
		}
		text := string(msg.Runes)
		if msg.Paste {
			text = normalizeNewlines(text)
		}
		return document.Insert(text), true
	case tea.KeySpace:
		return document.Insert(" "), true
	case tea.KeyTab:
		return document.Insert("\t"), true
	case tea.KeyEnter:
		return document.Insert("\n"), true
	case tea.KeyBackspace, tea.KeyCtrlH:
		return document.Backspace(), true
	case tea.KeyDelete:
		return document.Delete(), true
	case tea.KeyCtrlA:
		return document.SelectAll(), true

	case tea.KeyLeft:
		return document.Move(document.MotionLeft), true
	case tea.KeyRight:
		return document.Move(document.MotionRight), true
	case tea.KeyUp:
		return document.Move(document.MotionUp), true
	case tea.KeyDown:
		return document.Move(document.MotionDown), true
	case tea.KeyHome:
		return document.Move(document.MotionLineStart), true
	case tea.KeyEnd:
		return document.Move(document.MotionLineEnd), true
	case tea.KeyCtrlHome:
		return document.Move(document.MotionDocStart), true
	case tea.KeyCtrlEnd:
		return document.Move(document.MotionDocEnd), true
	case tea.KeyCtrlLeft:
		return document.Move(document.MotionWordLeft), true
	case tea.KeyCtrlRight:
		return document.Move(document.MotionWordRight), true
	case tea.KeyPgUp:
		return document.MoveBy(document.MotionUp, page), true
	case tea.KeyPgDown:
		return document.MoveBy(document.MotionDown, page), true

	case tea.KeyShiftLeft:
		return document.Extend(document.MotionLeft), true
	case tea.KeyShiftRight:
		return document.Extend(document.MotionRight), true
	case tea.KeyShiftUp:
		return document.Extend(document.MotionUp), true
	case tea.KeyShiftDown:
		return document.Extend(document.MotionDown), true
	case tea.KeyShiftHome:
		return document.Extend(document.MotionLineStart), true
	case tea.KeyShiftEnd:
		return document.Extend(document.MotionLineEnd), true
	case tea.KeyCtrlShiftHome:
		return document.Extend(document.MotionDocStart), true
	case tea.KeyCtrlShiftEnd:
		return document.Extend(document.MotionDocEnd), true
	case tea.KeyCtrlShiftLeft:
		return document.Extend(document.MotionWordLeft), true
	case tea.KeyCtrlShiftRight:
		return document.Extend(document.MotionWordRight), true
	}
	return document.Action{}, false
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
