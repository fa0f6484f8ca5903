package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Item is one selectable entry.
type Item struct {
	Label       string
	Description string
}

// Mode chooses between picking one item and picking any number of items.
type Mode int

const (
	ModeSingle Mode = iota
	ModeMulti
)

func (m Mode) String() string {
	if m == ModeMulti {
		return "multi"
	}
	return "single"
}

// State is the selector's lifecycle position.
type State int

const (
	StateIdle State = iota
	StateAwaitingKey
	StateConfirmed
	StateCancelled
)

const defaultListHeight = 10

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#EEEEEE"})
	filterStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"})
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	checkedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	descStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#777777"})
	emptyStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	scrollerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	All       key.Binding
	Confirm   key.Binding
	Backspace key.Binding
	Cancel    key.Binding
	Interrupt key.Binding
	multi     bool
}

func newKeyMap(mode Mode) keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		All:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear/cancel")),
		Interrupt: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		multi:     mode == ModeMulti,
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	if k.multi {
		return []key.Binding{k.Up, k.Down, k.Toggle, k.All, k.Confirm, k.Cancel}
	}
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Interrupt}}
}

// Selector is a Bubble Tea component that picks items from a filtered list.
//
// Typing narrows the list to items whose label or description contains the
// filter text, case-insensitively. In multi mode space toggles the item under
// the cursor and "a" (with an empty filter) selects everything; enter
// confirms, and if nothing was ever toggled it selects the item under the
// cursor first. Esc clears a non-empty filter, otherwise it cancels with an
// empty selection. Ctrl+C cancels and marks the selector interrupted.
type Selector struct {
	title string
	items []Item
	mode  Mode
	keys  keyMap
	help  help.Model

	state       State
	interrupted bool

	filter   string
	visible  []int
	cursor   int
	offset   int
	selected map[int]bool
	touched  bool

	width  int
	height int
}

// Ensure Selector satisfies the tea.Model interface at compile time.
var _ tea.Model = (*Selector)(nil)

// NewSelector creates a Selector over items.
func NewSelector(title string, items []Item, mode Mode) *Selector {
	s := &Selector{
		title:    title,
		items:    items,
		mode:     mode,
		keys:     newKeyMap(mode),
		help:     help.New(),
		selected: make(map[int]bool),
	}
	s.refilter()
	return s
}

// State returns the current lifecycle state.
func (s *Selector) State() State { return s.state }

// Done reports whether the selector reached a terminal state.
func (s *Selector) Done() bool {
	return s.state == StateConfirmed || s.state == StateCancelled
}

// Cancelled reports whether the user backed out.
func (s *Selector) Cancelled() bool { return s.state == StateCancelled }

// Interrupted reports whether the user pressed Ctrl+C.
func (s *Selector) Interrupted() bool { return s.interrupted }

// Filter returns the current filter text.
func (s *Selector) Filter() string { return s.filter }

// Cursor returns the cursor position within Visible.
func (s *Selector) Cursor() int { return s.cursor }

// Visible returns the indices of the items matching the filter, in list order.
func (s *Selector) Visible() []int {
	out := make([]int, len(s.visible))
	copy(out, s.visible)
	return out
}

// Selected returns the chosen item indices in list order. It is empty unless
// the selector was confirmed.
func (s *Selector) Selected() []int {
	if s.state != StateConfirmed {
		return nil
	}
	out := make([]int, 0, len(s.selected))
	for i := range s.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Init implements tea.Model. Returns nil (no initial command).
func (s *Selector) Init() tea.Cmd {
	s.state = StateAwaitingKey
	return nil
}

// Update implements tea.Model.
func (s *Selector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s.Done() {
		return s, nil
	}
	s.state = StateAwaitingKey

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.help.Width = msg.Width
		s.scroll()
	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *Selector) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Interrupt):
		s.interrupted = true
		return s.cancel()
	case key.Matches(msg, s.keys.Cancel):
		if s.filter != "" {
			s.setFilter("")
			return nil
		}
		return s.cancel()
	case key.Matches(msg, s.keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, s.keys.Down):
		if s.cursor < len(s.visible)-1 {
			s.cursor++
		}
	case key.Matches(msg, s.keys.Confirm):
		return s.confirm()
	case key.Matches(msg, s.keys.Backspace):
		if s.filter != "" {
			r := []rune(s.filter)
			s.setFilter(string(r[:len(r)-1]))
		}
	case s.mode == ModeMulti && key.Matches(msg, s.keys.Toggle):
		if len(s.visible) > 0 {
			i := s.visible[s.cursor]
			if s.selected[i] {
				delete(s.selected, i)
			} else {
				s.selected[i] = true
			}
			s.touched = true
		}
	case s.mode == ModeMulti && s.filter == "" && key.Matches(msg, s.keys.All):
		for i := range s.items {
			s.selected[i] = true
		}
		s.touched = true
	case msg.Type == tea.KeyRunes && !msg.Alt:
		s.setFilter(s.filter + string(msg.Runes))
	case msg.Type == tea.KeySpace:
		s.setFilter(s.filter + " ")
	}
	s.scroll()
	return nil
}

func (s *Selector) confirm() tea.Cmd {
	switch s.mode {
	case ModeSingle:
		if len(s.visible) == 0 {
			return nil
		}
		s.selected = map[int]bool{s.visible[s.cursor]: true}
	case ModeMulti:
		if !s.touched {
			if len(s.visible) == 0 {
				return nil
			}
			s.selected[s.visible[s.cursor]] = true
		}
	}
	s.state = StateConfirmed
	return tea.Quit
}

func (s *Selector) cancel() tea.Cmd {
	s.selected = make(map[int]bool)
	s.state = StateCancelled
	return tea.Quit
}

func (s *Selector) setFilter(filter string) {
	s.filter = filter
	s.cursor = 0
	s.offset = 0
	s.refilter()
}

func (s *Selector) refilter() {
	s.visible = s.visible[:0]
	needle := strings.ToLower(s.filter)
	for i, item := range s.items {
		if needle == "" ||
			strings.Contains(strings.ToLower(item.Label), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle) {
			s.visible = append(s.visible, i)
		}
	}
	if s.cursor >= len(s.visible) {
		s.cursor = max(len(s.visible)-1, 0)
	}
}

func (s *Selector) listHeight() int {
	if s.height <= 0 {
		return defaultListHeight
	}
	// Title, filter, blank, help, and the two scroll markers.
	return max(s.height-6, 1)
}

func (s *Selector) scroll() {
	h := s.listHeight()
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+h {
		s.offset = s.cursor - h + 1
	}
	s.offset = min(s.offset, max(len(s.visible)-h, 0))
}

// View implements tea.Model.
func (s *Selector) View() string {
	if s.Done() {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(s.title))
	b.WriteString("\n")
	if s.filter != "" {
		b.WriteString(filterStyle.Render("Filter: " + s.filter))
	} else {
		b.WriteString(filterStyle.Render("Type to filter"))
	}
	b.WriteString("\n")

	if len(s.visible) == 0 {
		b.WriteString(emptyStyle.Render("  no matches"))
		b.WriteString("\n")
	}

	h := s.listHeight()
	end := min(s.offset+h, len(s.visible))
	if s.offset > 0 {
		b.WriteString(scrollerStyle.Render(fmt.Sprintf("  ↑ %d more", s.offset)))
		b.WriteString("\n")
	}
	for pos := s.offset; pos < end; pos++ {
		b.WriteString(s.renderRow(pos))
		b.WriteString("\n")
	}
	if end < len(s.visible) {
		b.WriteString(scrollerStyle.Render(fmt.Sprintf("  ↓ %d more", len(s.visible)-end)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.help.View(s.keys))
	b.WriteString("\n")
	return b.String()
}

func (s *Selector) renderRow(pos int) string {
	i := s.visible[pos]
	item := s.items[i]

	prefix := "  "
	if pos == s.cursor {
		prefix = cursorStyle.Render("> ")
	}
	if s.mode == ModeMulti {
		if s.selected[i] {
			prefix += checkedStyle.Render("[x] ")
		} else {
			prefix += "[ ] "
		}
	}

	label := item.Label
	if pos == s.cursor {
		label = cursorStyle.Render(label)
	}
	row := prefix + label
	if item.Description == "" {
		return row
	}

	room := 60
	if s.width > 0 {
		room = s.width - lipgloss.Width(row) - 3
	}
	if room < 10 {
		return row
	}
	return row + " " + descStyle.Render(ansi.Truncate(item.Description, room, "…"))
}
