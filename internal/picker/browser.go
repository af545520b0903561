package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/forgeworks/forge-cli/internal/catalog"
	"github.com/forgeworks/forge-cli/internal/paths"
)

// --- Styles (mirrors internal/ui/styles.go) ---

var (
	browserTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#9D61FF"))

	browserSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#9D61FF")).
				Bold(true)

	browserNormalStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#E5E7EB"))

	browserDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	browserMarkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#22C55E"))

	browserHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6B7280"))
)

// --- Key map ---

type browserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Enter  key.Binding
	Back   key.Binding
	Finish key.Binding
	Quit   key.Binding
}

var browserKeys = browserKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Enter:  key.NewBinding(key.WithKeys("enter", "l", "right"), key.WithHelp("enter", "open")),
	Back:   key.NewBinding(key.WithKeys("esc", "h", "left", "backspace"), key.WithHelp("esc", "back")),
	Finish: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finish")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "cancel")),
}

// --- Model ---

// browserModel is the hierarchical browser state: one cursor inside the
// current folder, a breadcrumb of entered folders, and one flat marked
// leaf-id set shared across the whole tree.
type browserModel struct {
	root       *MenuNode
	breadcrumb []*MenuNode
	cursor     int
	marked     map[string]bool
	finished   bool
	cancelled  bool
	width      int
}

// newBrowserModel creates a browser over a tree whose root has at least
// one child.
func newBrowserModel(root *MenuNode) browserModel {
	return browserModel{
		root:   root,
		marked: map[string]bool{},
	}
}

// current returns the folder whose children are on screen: the last
// breadcrumb entry, or the tree root when the breadcrumb is empty.
func (m browserModel) current() *MenuNode {
	if len(m.breadcrumb) == 0 {
		return m.root
	}
	return m.breadcrumb[len(m.breadcrumb)-1]
}

// Init implements tea.Model.
func (m browserModel) Init() tea.Cmd { return nil }

// Update implements tea.Model. Navigation wraps modulo the child count;
// folders are guaranteed non-empty by construction (BuildTree omits
// empty folders).
func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		children := m.current().Children
		switch {
		case key.Matches(msg, browserKeys.Quit):
			m.cancelled = true
			return m, tea.Quit

		case key.Matches(msg, browserKeys.Finish):
			m.finished = true
			return m, tea.Quit

		case key.Matches(msg, browserKeys.Up):
			m.cursor = (m.cursor - 1 + len(children)) % len(children)

		case key.Matches(msg, browserKeys.Down):
			m.cursor = (m.cursor + 1) % len(children)

		case key.Matches(msg, browserKeys.Toggle):
			node := children[m.cursor]
			if node.Kind == KindLeaf {
				m = m.toggle(node.ID)
			} else {
				m = m.enter(node)
			}

		case key.Matches(msg, browserKeys.Enter):
			node := children[m.cursor]
			if node.Kind == KindFolder {
				m = m.enter(node)
			} else {
				m = m.toggle(node.ID)
			}

		case key.Matches(msg, browserKeys.Back):
			m = m.leave()
		}
	}
	return m, nil
}

// toggle XORs a leaf id in the shared marked set.
func (m browserModel) toggle(id string) browserModel {
	if m.marked[id] {
		delete(m.marked, id)
	} else {
		m.marked[id] = true
	}
	return m
}

// enter pushes a folder on the breadcrumb and resets the cursor.
func (m browserModel) enter(node *MenuNode) browserModel {
	m.breadcrumb = append(m.breadcrumb, node)
	m.cursor = 0
	return m
}

// leave pops the breadcrumb, restoring the parent's child list and
// placing the cursor on the folder just left. At the root it is a
// no-op.
func (m browserModel) leave() browserModel {
	if len(m.breadcrumb) == 0 {
		return m
	}
	left := m.breadcrumb[len(m.breadcrumb)-1]
	m.breadcrumb = m.breadcrumb[:len(m.breadcrumb)-1]
	m.cursor = 0
	for i, child := range m.current().Children {
		if child.ID == left.ID {
			m.cursor = i
			break
		}
	}
	return m
}

// markedCount returns how many leaves are currently marked.
func (m browserModel) markedCount() int {
	return len(m.marked)
}

// subtreeMarked counts marked leaves beneath a folder, for the folder
// badge.
func (m browserModel) subtreeMarked(node *MenuNode) int {
	n := 0
	for _, leaf := range node.Leaves() {
		if m.marked[leaf.ID] {
			n++
		}
	}
	return n
}

// View implements tea.Model.
func (m browserModel) View() string {
	var b strings.Builder

	crumbs := []string{"Components"}
	for _, node := range m.breadcrumb {
		crumbs = append(crumbs, node.Label)
	}
	b.WriteString(browserTitleStyle.Render("FORGE") + "  " +
		browserDimStyle.Render(strings.Join(crumbs, " › ")) + "\n\n")

	for i, child := range m.current().Children {
		cursor := "  "
		if i == m.cursor {
			cursor = browserSelectedStyle.Render("▸ ")
		}

		var line string
		switch child.Kind {
		case KindFolder:
			badge := ""
			if n := m.subtreeMarked(child); n > 0 {
				badge = "  " + browserMarkStyle.Render(fmt.Sprintf("(%d)", n))
			}
			line = browserNormalStyle.Render(child.Label+"/") + badge
		case KindLeaf:
			box := browserDimStyle.Render("[ ]")
			if m.marked[child.ID] {
				box = browserMarkStyle.Render("[x]")
			}
			line = box + " " + browserNormalStyle.Render(child.Label)
		}
		b.WriteString("  " + cursor + line + "\n")
	}

	b.WriteString("\n  " + browserDimStyle.Render(fmt.Sprintf("%d selected", m.markedCount())) + "\n")

	help := []string{
		helpEntry(browserKeys.Up.Help().Key, browserKeys.Up.Help().Desc),
		helpEntry(browserKeys.Toggle.Help().Key, browserKeys.Toggle.Help().Desc),
		helpEntry(browserKeys.Enter.Help().Key, browserKeys.Enter.Help().Desc),
		helpEntry(browserKeys.Back.Help().Key, browserKeys.Back.Help().Desc),
		helpEntry(browserKeys.Finish.Help().Key, browserKeys.Finish.Help().Desc),
		helpEntry(browserKeys.Quit.Help().Key, browserKeys.Quit.Help().Desc),
	}
	b.WriteString("  " + browserHelpStyle.Render(strings.Join(help, "  ")) + "\n")

	return b.String()
}

func helpEntry(k, desc string) string {
	return k + " " + browserDimStyle.Render(desc)
}

// --- Selector ---

// BrowserSelector runs the hierarchical browser in one Bubble Tea
// session. The terminal is restored on every exit path, interrupts
// included -- Bubble Tea owns the raw-mode acquisition and release.
type BrowserSelector struct{}

// Run builds the menu tree, runs the browser, and maps the marked ids
// back to components. Returns ErrCancelled when the session is aborted.
func (BrowserSelector) Run(inv catalog.Inventory, location paths.Location) (catalog.Selection, error) {
	tree := BuildTree(inv, location)
	if len(tree.Children) == 0 {
		return catalog.Selection{}, nil
	}

	out, err := tea.NewProgram(newBrowserModel(tree)).Run()
	if err != nil {
		return catalog.Selection{}, fmt.Errorf("running selection browser: %w", err)
	}

	m, ok := out.(browserModel)
	if !ok || m.cancelled {
		return catalog.Selection{}, ErrCancelled
	}
	return SelectionFromIDs(inv, m.marked), nil
}
