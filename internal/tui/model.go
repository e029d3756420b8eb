// Package tui is the interactive task list: a bubbletea program around a
// todopager.View, with a huh form for adding and editing tasks.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Alp4ka/todopager"
	"github.com/Alp4ka/todopager/internal/log"
	"github.com/Alp4ka/todopager/todos"
	"github.com/Alp4ka/todopager/viewstate"
)

const noticeTimeout = 3 * time.Second

// PageLister serves one page of tasks at a time.
type PageLister interface {
	ListPage(ctx context.Context, filter todos.Filter, page, limit int) (todopager.Page[todos.Task], error)
}

type Options struct {
	Loader  todos.Loader
	Mutator todos.Mutator
	// Pages enables server paging. Day filters still load the whole list
	// because the API cannot filter by day.
	Pages   PageLister
	Compact bool
	// ItemsPerPage overrides the layout page size when positive.
	ItemsPerPage int
	Location     *time.Location
	Now          func() time.Time
	Logger       *slog.Logger
}

type (
	tasksLoadedMsg struct {
		seq   uint64
		tasks []todos.Task
		err   error
	}
	reloadedMsg struct {
		view *todopager.View[todos.Task]
		err  error
	}
	pageLoadedMsg struct {
		view *todopager.View[todos.Task]
		req  todopager.PageRequest
		page todopager.Page[todos.Task]
		err  error
	}
	mutatedMsg struct {
		message  string
		fromForm bool
		err      error
	}
	dismissNoticeMsg struct {
		notice *viewstate.Notice
	}
)

// Model is the bubbletea model of the task list.
type Model struct {
	ctx    context.Context
	opts   Options
	keys   KeyMap
	help   help.Model
	logger *slog.Logger

	state viewstate.State
	view  *todopager.View[todos.Task]

	cursor  int
	loading bool
	loadErr error
	loadSeq uint64

	form    *taskForm
	huhForm *huh.Form

	width int
}

// New builds the model. Loader and Mutator are required.
func New(ctx context.Context, opts Options) *Model {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	state := viewstate.New(opts.Now().In(opts.Location), opts.Compact)
	state.Filter.Location = opts.Location

	m := &Model{
		ctx:    ctx,
		opts:   opts,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		logger: logger,
		state:  state,
	}
	m.view = todopager.NewView[todos.Task](nil, m.itemsPerPage())

	return m
}

// Run starts the program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	_, err := tea.NewProgram(New(ctx, opts), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err //nolint:wrapcheck // Return the original error.
}

// State returns the current view state.
func (m *Model) State() viewstate.State {
	return m.state
}

// Directive returns what the list currently shows.
func (m *Model) Directive() todopager.Directive[todos.Task] {
	_, siblings := m.state.PageLimits()
	return m.view.Render(siblings)
}

func (m *Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) itemsPerPage() int {
	perPage, _ := m.state.PageLimits()
	if m.opts.ItemsPerPage > 0 {
		perPage = m.opts.ItemsPerPage
	}

	return perPage
}

func (m *Model) dispatch(a viewstate.Action) {
	m.state = viewstate.Reduce(m.state, a)
}

// load fetches the list for the current filter. A new dataset always starts
// on page 1.
func (m *Model) load() tea.Cmd {
	ctx := m.ctx
	filter := m.state.Filter
	perPage := m.itemsPerPage()

	m.loading = true
	m.cursor = 0

	if m.opts.Pages != nil && filter.CreatedAt == nil {
		pages := m.opts.Pages
		view := todopager.NewRemoteView(func(ctx context.Context, page, limit int) (todopager.Page[todos.Task], error) {
			return pages.ListPage(ctx, filter, page, limit)
		}, perPage)
		m.view = view

		return func() tea.Msg {
			return reloadedMsg{view: view, err: view.Reload(ctx)}
		}
	}

	if m.view.IsRemote() {
		m.view = todopager.NewView[todos.Task](nil, perPage)
	}

	m.loadSeq++
	seq := m.loadSeq
	loader := m.opts.Loader

	return func() tea.Msg {
		tasks, err := loader.List(ctx, filter)
		return tasksLoadedMsg{seq: seq, tasks: tasks, err: err}
	}
}

func (m *Model) gotoPage(n int) tea.Cmd {
	if !m.view.IsRemote() {
		_ = m.view.RequestPage(m.ctx, n)
		m.cursor = 0

		return nil
	}

	// Out of range pages and requests while one is pending are dropped.
	req, err := m.view.BeginPage(n)
	if err != nil {
		return nil
	}

	ctx := m.ctx
	view := m.view

	return func() tea.Msg {
		page, err := view.FetchPage(ctx, req)
		return pageLoadedMsg{view: view, req: req, page: page, err: err}
	}
}

func (m *Model) notify(kind viewstate.NoticeKind, text string) tea.Cmd {
	m.dispatch(viewstate.Notify{Notice: viewstate.Notice{Kind: kind, Text: text}})
	return m.dismissLater()
}

func (m *Model) dismissLater() tea.Cmd {
	notice := m.state.Notice
	if notice == nil {
		return nil
	}

	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
		return dismissNoticeMsg{notice: notice}
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tasksLoadedMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}

		m.loading = false
		m.loadErr = msg.err
		if msg.err != nil {
			m.logger.Error("load tasks", slog.Any("err", msg.err))
			return m, nil
		}

		m.view.SetItems(msg.tasks)
		m.clampCursor()

		return m, nil

	case reloadedMsg:
		if msg.view != m.view {
			return m, nil
		}

		m.loading = false
		m.loadErr = msg.err
		if msg.err != nil {
			m.logger.Error("load tasks", slog.Any("err", msg.err))
		}

		return m, nil

	case pageLoadedMsg:
		if msg.view != m.view {
			return m, nil
		}

		err := m.view.CompletePage(msg.req, msg.page, msg.err)
		if err != nil {
			m.logger.Error("load page", slog.Int("page", msg.req.Page), slog.Any("err", err))
			return m, m.notify(viewstate.NoticeError, todos.Message(err))
		}

		m.cursor = 0

		return m, nil

	case mutatedMsg:
		return m, m.mutated(msg)

	case dismissNoticeMsg:
		if m.state.Notice == msg.notice {
			m.dispatch(viewstate.DismissNotice{})
		}

		return m, nil

	case tea.KeyMsg:
		if m.huhForm != nil {
			return m, m.updateForm(msg)
		}

		return m, m.handleKey(msg)
	}

	if m.huhForm != nil {
		cmd = m.updateForm(msg)
	}

	return m, cmd
}

func (m *Model) mutated(msg mutatedMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Error("save task", slog.Any("err", msg.err))

		if msg.fromForm {
			m.dispatch(viewstate.SaveFailed{Err: msg.err})
			// Keep what the user typed so they can retry.
			m.huhForm = m.form.huhForm()

			return tea.Batch(m.huhForm.Init(), m.dismissLater())
		}

		return m.notify(viewstate.NoticeError, todos.Message(msg.err))
	}

	if msg.fromForm {
		m.dispatch(viewstate.SaveSucceeded{Message: msg.message})
		m.form = nil

		return tea.Batch(m.load(), m.dismissLater())
	}

	return tea.Batch(m.load(), m.notify(viewstate.NoticeSuccess, msg.message))
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	d := m.Directive()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Close):
		m.dispatch(viewstate.ClosePanel{})

	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)

	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, max(len(d.VisibleItems)-1, 0))

	case key.Matches(msg, m.keys.PrevPage):
		return m.gotoPage(d.CurrentPage - 1)

	case key.Matches(msg, m.keys.NextPage):
		return m.gotoPage(d.CurrentPage + 1)

	case key.Matches(msg, m.keys.FirstPage):
		return m.gotoPage(1)

	case key.Matches(msg, m.keys.LastPage):
		return m.gotoPage(d.TotalPages)

	case key.Matches(msg, m.keys.Open):
		if task, ok := m.cursorTask(); ok {
			m.dispatch(viewstate.SelectTask{Task: task})
		}

	case key.Matches(msg, m.keys.Add):
		m.dispatch(viewstate.OpenAdd{})
		day, ok := m.state.SelectedDay()
		if !ok {
			day = m.opts.Now()
		}

		return m.openForm(newTaskForm(day.In(m.opts.Location)))

	case key.Matches(msg, m.keys.Edit):
		if task, ok := m.cursorTask(); ok && m.state.Selected == nil {
			m.dispatch(viewstate.SelectTask{Task: task})
		}

		m.dispatch(viewstate.OpenEdit{})
		if m.state.Panel == viewstate.PanelEdit {
			return m.openForm(editTaskForm(*m.state.Selected, m.opts.Location))
		}

	case key.Matches(msg, m.keys.Toggle):
		if task, ok := m.cursorTask(); ok {
			return m.mutate("Task updated", func(ctx context.Context) error {
				_, err := m.opts.Mutator.Replace(ctx, todos.ToggleCompletedPatch(task))
				return err
			})
		}

	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.cursorTask(); ok {
			if m.state.IsSelected(task) {
				m.dispatch(viewstate.ClosePanel{})
			}

			return m.mutate("Task deleted", func(ctx context.Context) error {
				_, err := m.opts.Mutator.Delete(ctx, task.ID)
				return err
			})
		}

	case key.Matches(msg, m.keys.PrevDay), key.Matches(msg, m.keys.NextDay):
		day, ok := m.state.SelectedDay()
		if !ok {
			day = m.opts.Now()
		}

		step := 1
		if key.Matches(msg, m.keys.PrevDay) {
			step = -1
		}

		m.dispatch(viewstate.ToggleDay{Day: day.In(m.opts.Location).AddDate(0, 0, step)})

		return m.load()

	case key.Matches(msg, m.keys.ClearDay):
		if day, ok := m.state.SelectedDay(); ok {
			m.dispatch(viewstate.ToggleDay{Day: day})
			return m.load()
		}

	case key.Matches(msg, m.keys.PrevMonth):
		m.dispatch(viewstate.ShiftMonth{Months: -1})

	case key.Matches(msg, m.keys.NextMonth):
		m.dispatch(viewstate.ShiftMonth{Months: 1})

	case key.Matches(msg, m.keys.Completed):
		m.dispatch(viewstate.SetCompleted{Completed: nextCompletedFilter(m.state.Filter.Completed)})
		return m.load()

	case key.Matches(msg, m.keys.Calendar):
		if m.state.Compact {
			m.dispatch(viewstate.OpenCalendar{})
		}

	case key.Matches(msg, m.keys.Layout):
		m.dispatch(viewstate.SetCompact{Compact: !m.state.Compact})
		if m.view.IsRemote() {
			return m.load()
		}

		m.view.SetItemsPerPage(m.itemsPerPage())
		m.cursor = 0

	case key.Matches(msg, m.keys.Refresh):
		return m.load()
	}

	return nil
}

// nextCompletedFilter cycles all → open → completed → all.
func nextCompletedFilter(current *bool) *bool {
	switch {
	case current == nil:
		open := false
		return &open
	case !*current:
		done := true
		return &done
	default:
		return nil
	}
}

func (m *Model) mutate(message string, call func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		return mutatedMsg{message: message, err: call(ctx)}
	}
}

func (m *Model) openForm(f *taskForm) tea.Cmd {
	m.form = f
	m.huhForm = f.huhForm()

	return m.huhForm.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.huhForm = nil
	m.dispatch(viewstate.ClosePanel{})
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.closeForm()
			return nil
		case "ctrl+c":
			return tea.Quit
		}
	}

	model, cmd := m.huhForm.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.huhForm = f
	}

	switch m.huhForm.State {
	case huh.StateCompleted:
		m.huhForm = nil
		return tea.Batch(cmd, m.submitForm())

	case huh.StateAborted:
		m.closeForm()
		return nil

	case huh.StateNormal:
	}

	return cmd
}

func (m *Model) submitForm() tea.Cmd {
	f := m.form

	payload, err := f.payload(m.opts.Location)
	if err != nil {
		m.dispatch(viewstate.SaveFailed{Err: err})
		m.huhForm = f.huhForm()

		return tea.Batch(m.huhForm.Init(), m.dismissLater())
	}

	m.dispatch(viewstate.SaveStarted{})

	ctx := m.ctx
	mutator := m.opts.Mutator

	if f.editing() {
		return func() tea.Msg {
			_, err := mutator.Replace(ctx, todos.ReplacePatch(f.id, payload))
			return mutatedMsg{message: "Task updated", fromForm: true, err: err}
		}
	}

	return func() tea.Msg {
		_, err := mutator.Create(ctx, payload)
		return mutatedMsg{message: "Task added", fromForm: true, err: err}
	}
}

func (m *Model) cursorTask() (todos.Task, bool) {
	items := m.Directive().VisibleItems
	if m.cursor < 0 || m.cursor >= len(items) {
		return todos.Task{}, false
	}

	return items[m.cursor], true
}

func (m *Model) clampCursor() {
	m.cursor = min(m.cursor, max(len(m.view.VisibleItems())-1, 0))
}

func (m *Model) View() string {
	now := m.opts.Now()
	loc := m.opts.Location
	selectedDay := m.state.Filter.CreatedAt

	center := now
	if selectedDay != nil {
		center = *selectedDay
	}

	list := []string{
		titleStyle.Render("My Tasks"),
		RenderDateStrip(center, selectedDay, now, loc),
		"",
	}

	d := m.Directive()

	switch {
	case m.loading:
		list = append(list, pendingStyle.Render("Loading…"))
	case m.loadErr != nil:
		list = append(list, errorStyle.Render(todos.Message(m.loadErr)))
	case len(d.VisibleItems) == 0:
		list = append(list, RenderEmpty(m.state.Empty()))
	default:
		for i, task := range d.VisibleItems {
			list = append(list, RenderTask(task, i == m.cursor || m.state.IsSelected(task), now, loc))
		}
	}

	if pagination := RenderPagination(d); pagination != "" {
		list = append(list, "", pagination)
	}
	if notice := RenderNotice(m.state.Notice); notice != "" {
		list = append(list, "", notice)
	}

	list = append(list, "", m.help.ShortHelpView(m.keys.ShortHelp()))

	main := strings.Join(list, "\n")
	if !m.state.PanelVisible() {
		return main
	}

	panel := panelStyle.Render(m.panelView(now))
	if m.state.Compact {
		return lipgloss.JoinVertical(lipgloss.Left, main, panel)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, main, "  ", panel)
}

func (m *Model) panelView(now time.Time) string {
	loc := m.opts.Location

	switch m.state.Panel {
	case viewstate.PanelAdd, viewstate.PanelEdit:
		if m.state.Saving {
			return pendingStyle.Render("submitting…")
		}
		if m.huhForm != nil {
			return m.huhForm.View()
		}

	case viewstate.PanelPreview:
		if m.state.Selected != nil {
			return RenderPreview(*m.state.Selected, loc)
		}

	case viewstate.PanelDefault, viewstate.PanelCalendar:
	}

	return RenderCalendar(m.state.Month, m.state.Filter.CreatedAt, now, loc)
}
