package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/sqltodo/internal/model"
	"github.com/idilsaglam/sqltodo/internal/ui"
)

// Repository is what the browser reads and writes.
type Repository interface {
	Add(ctx context.Context, body string) (model.Todo, error)
	List(ctx context.Context, f model.Filter) ([]model.Todo, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Complete(ctx context.Context, id int64) (int64, error)
	Uncomplete(ctx context.Context, id int64) (int64, error)
}

// listItem adapts a Todo to bubbles/list.Item
type listItem struct{ todo model.Todo }

func (i listItem) Title() string       { return i.todo.Body }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.todo.Body }

type styles struct {
	p                        *ui.Printer
	muted, pending           lipgloss.Style
	doneText, selected       lipgloss.Style
	errText, help            lipgloss.Style
	boxChecked, boxUnchecked string
}

func newStyles(p *ui.Printer) styles {
	r, t := p.Renderer(), p.Theme()
	return styles{
		p:            p,
		muted:        r.NewStyle().Foreground(t.Muted),
		pending:      r.NewStyle().Foreground(t.Pending),
		doneText:     r.NewStyle().Faint(true).Strikethrough(true),
		selected:     r.NewStyle().Bold(true).Reverse(true),
		errText:      r.NewStyle().Foreground(t.Error).Bold(true),
		help:         r.NewStyle().Faint(true),
		boxChecked:   t.BoxChecked,
		boxUnchecked: t.BoxUnchecked,
	}
}

// itemDelegate renders one todo per line.
type itemDelegate struct{ s styles }

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box, text := d.s.pending.Render(d.s.boxUnchecked), it.todo.Body
	if it.todo.Done() {
		box, text = d.s.p.Success(d.s.boxChecked), d.s.doneText.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.s.selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, box, d.s.p.Accent(fmt.Sprintf("%d.", it.todo.ID)), text)
}

// Messages produced by store commands.
type (
	reloadedMsg struct {
		todos  []model.Todo
		status string
	}
	errMsg struct{ err error }
)

var (
	toggleKey = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "do/undo"))
	deleteKey = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	addKey    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	quitKey   = key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit"))
)

// Model is the Bubble Tea model behind `todo browse`. Every action is
// written to the store immediately and the list is reloaded from it.
type Model struct {
	ctx  context.Context
	repo Repository
	s    styles

	list   list.Model
	input  textinput.Model
	adding bool
	status string
	err    error
}

// New loads the current todos into a browser model.
func New(ctx context.Context, repo Repository, p *ui.Printer) (Model, error) {
	todos, err := repo.List(ctx, model.FilterAll)
	if err != nil {
		return Model{}, err
	}
	s := newStyles(p)

	l := list.New(toItems(todos), itemDelegate{s: s}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = p.Renderer().NewStyle() // header is rendered by p.Title
	l.Styles.HelpStyle = s.help
	l.Styles.PaginationStyle = s.help
	l.Styles.StatusBar = s.muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	l.KeyMap.NextPage.SetKeys("right", "l", "pgdown", "f") // "d" deletes
	l.KeyMap.Quit.SetEnabled(false)
	extra := func() []key.Binding { return []key.Binding{toggleKey, deleteKey, addKey} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo..."
	ti.CharLimit = 500

	m := Model{ctx: ctx, repo: repo, s: s, list: l, input: ti}
	m.list.Title = m.header(todos)
	return m, nil
}

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, repo Repository, p *ui.Printer) error {
	m, err := New(ctx, repo, p)
	if err != nil {
		return err
	}
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(p.Out()))
	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case reloadedMsg:
		m.status, m.err = msg.status, nil
		m.list.Title = m.header(msg.todos)
		return m, m.list.SetItems(toItems(msg.todos))

	case errMsg:
		m.err = msg.err
		m.status = ""
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	// let the list own keys while the filter prompt is open
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case k.Type == tea.KeyEsc && m.list.FilterState() == list.FilterApplied:
			m.list.ResetFilter()
			return m, nil
		case key.Matches(k, quitKey):
			return m, tea.Quit
		case key.Matches(k, toggleKey):
			if t, ok := m.selected(); ok {
				return m, m.toggle(t)
			}
			return m, nil
		case key.Matches(k, deleteKey):
			if t, ok := m.selected(); ok {
				return m, m.remove(t)
			}
			return m, nil
		case key.Matches(k, addKey):
			m.adding = true
			m.input.SetValue("")
			return m, m.input.Focus()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEnter:
			body := m.input.Value()
			if strings.TrimSpace(body) == "" {
				m.err = model.ErrEmptyBody
				return m, nil
			}
			m.adding = false
			m.input.Blur()
			m.input.SetValue("")
			return m, m.add(body)
		case tea.KeyEsc:
			m.adding = false
			m.input.Blur()
			m.input.SetValue("")
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	content := m.list.View()
	if m.adding {
		bar := m.s.p.Frame("Add new todo\n" + m.input.View())
		content += "\n" + bar
	}
	switch {
	case m.err != nil:
		content += "\n" + m.s.errText.Render(m.s.p.Theme().SymFail+" "+m.err.Error())
	case m.status != "":
		content += "\n" + m.s.p.Success(m.s.p.Theme().SymOK+" "+m.status)
	}
	return m.s.p.Frame(content)
}

// -------------- store commands ----------------

func (m Model) toggle(t model.Todo) tea.Cmd {
	return func() tea.Msg {
		var err error
		status := fmt.Sprintf("Marking todo complete: %d", t.ID)
		if t.Done() {
			_, err = m.repo.Uncomplete(m.ctx, t.ID)
			status = fmt.Sprintf("Marking todo incomplete: %d", t.ID)
		} else {
			_, err = m.repo.Complete(m.ctx, t.ID)
		}
		if err != nil {
			return errMsg{err}
		}
		return m.reload(status)
	}
}

func (m Model) remove(t model.Todo) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.repo.Delete(m.ctx, t.ID); err != nil {
			return errMsg{err}
		}
		return m.reload(fmt.Sprintf("Deleting Todo: %d", t.ID))
	}
}

func (m Model) add(body string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.repo.Add(m.ctx, body); err != nil {
			return errMsg{err}
		}
		return m.reload("Adding Todo: " + body)
	}
}

func (m Model) reload(status string) tea.Msg {
	todos, err := m.repo.List(m.ctx, model.FilterAll)
	if err != nil {
		return errMsg{err}
	}
	return reloadedMsg{todos: todos, status: status}
}

// -------------- helpers ----------------

func (m Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.todo, ok
}

func (m Model) header(todos []model.Todo) string {
	done := 0
	for _, t := range todos {
		if t.Done() {
			done++
		}
	}
	return m.s.p.Title(fmt.Sprintf("Todos   %s %d  %s %d  Total %d",
		m.s.boxChecked, done, m.s.boxUnchecked, len(todos)-done, len(todos)))
}

func toItems(todos []model.Todo) []list.Item {
	items := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		items = append(items, listItem{todo: t})
	}
	return items
}
