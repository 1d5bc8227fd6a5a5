package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/pagedtable/internal/logging"
	"github.com/rshade/pagedtable/internal/source"
	"github.com/rshade/pagedtable/internal/table"
)

const (
	defaultWidth  = 120
	defaultHeight = 30
	resizeStep    = 2
	filterPrompt  = "Filter: "
)

// PageLoadedMsg carries the outcome of one fetch back into the update loop.
type PageLoadedMsg struct {
	TableID  string
	Ticket   Ticket
	Query    source.Query
	Result   source.Result
	Err      error
	Duration time.Duration
}

// TableOptions configures a TableModel.
type TableOptions struct {
	Resource        source.Resource
	Loader          source.Loader
	PageSize        int
	PageSizeOptions []int
	FilterMode      table.FilterMode
	MinColumnWidth  int
	StrictOrdering  bool
	InitialFilters  table.FilterState
	Logger          *zerolog.Logger
}

type fetchRequest struct {
	pagination table.PaginationState
	filters    table.FilterState
	fresh      bool
}

// fetchQueue collects the controller's fetch callbacks during one Update so
// they can be returned as commands.
type fetchQueue struct {
	pending []fetchRequest
	fresh   bool
}

func (q *fetchQueue) push(p table.PaginationState, f table.FilterState) {
	q.pending = append(q.pending, fetchRequest{pagination: p, filters: f, fresh: q.fresh})
	q.fresh = false
}

func (q *fetchQueue) drain() []fetchRequest {
	out := q.pending
	q.pending = nil
	return out
}

// TableModel is the Bubble Tea model for one paginated resource. It owns a
// table.Controller and turns its fetch callbacks into asynchronous loads.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type TableModel struct {
	id       string
	ctx      context.Context
	log      zerolog.Logger
	resource source.Resource
	loader   source.Loader

	ctrl  *table.Controller
	queue *fetchQueue
	seq   *Sequencer

	keys    KeyMap
	help    help.Model
	input   textinput.Model
	spinner spinner.Model

	focus      int
	editing    bool
	totalCount int
	err        error
	lastLoad   time.Duration

	width  int
	height int
}

// NewTableModel builds a model for opts.Resource. Nothing is fetched until Init.
func NewTableModel(ctx context.Context, opts TableOptions) TableModel {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	logger = logging.ComponentLogger(logger, "tui").With().Str("resource", opts.Resource.Name).Logger()

	queue := &fetchQueue{}
	ctrl := table.New(table.Options{
		Columns:            opts.Resource.Columns,
		InitialPageSize:    opts.PageSize,
		PageSizeOptions:    opts.PageSizeOptions,
		FilterMode:         opts.FilterMode,
		MinColumnWidth:     opts.MinColumnWidth,
		InitialFilters:     opts.InitialFilters,
		OnPaginationChange: queue.push,
		OnFiltersChange: func(f table.FilterState) {
			logger.Debug().Int("filters", len(f)).Msg("search committed")
		},
		Logger: &logger,
	})

	input := textinput.New()
	input.Prompt = filterPrompt
	input.CharLimit = 100
	_ = input.Cursor.SetMode(cursor.CursorStatic)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = InfoStyle

	return TableModel{
		id:         logging.NewID(),
		ctx:        ctx,
		log:        logger,
		resource:   opts.Resource,
		loader:     opts.Loader,
		ctrl:       ctrl,
		queue:      queue,
		seq:        NewSequencer(opts.StrictOrdering),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		input:      input,
		spinner:    sp,
		totalCount: source.UnknownCount,
		width:      defaultWidth,
		height:     defaultHeight,
	}
}

// Init issues the initial load.
func (m TableModel) Init() tea.Cmd {
	m.ctrl.Refresh()
	return m.flush()
}

// Update handles messages (Bubble Tea interface).
func (m TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case PageLoadedMsg:
		return m.handlePageLoaded(msg)
	case spinner.TickMsg:
		if !m.seq.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		if m.editing {
			return m.handleFilterKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m TableModel) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.TableID != m.id {
		return m, nil
	}
	if !m.seq.Accept(msg.Ticket) {
		m.log.Debug().
			Uint64("seq", msg.Ticket.Seq).
			Uint64("latest", m.seq.Issued()).
			Str("request_id", msg.Ticket.RequestID).
			Msg("discarding stale response")
		return m, nil
	}

	m.lastLoad = msg.Duration
	props := table.Props{IsLoading: m.seq.Loading()}
	if msg.Err != nil {
		m.err = msg.Err
		m.log.Error().Err(msg.Err).Str("request_id", msg.Ticket.RequestID).Msg("page load failed")
		props.Data = []table.Row{}
		props.TotalPageCount = m.ctrl.TotalPageCount()
	} else {
		m.err = nil
		m.totalCount = msg.Result.TotalCount
		props.Data = msg.Result.Rows
		props.TotalPageCount = msg.Result.TotalPageCount
	}

	m.ctrl.Receive(props)
	return m, m.flush()
}

func (m TableModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.ctrl.NextPage()
	case key.Matches(msg, m.keys.Previous):
		m.ctrl.PreviousPage()
	case key.Matches(msg, m.keys.First):
		m.ctrl.FirstPage()
	case key.Matches(msg, m.keys.Last):
		m.ctrl.LastPage()
	case key.Matches(msg, m.keys.Larger):
		m.ctrl.CyclePageSize(1)
	case key.Matches(msg, m.keys.Smaller):
		m.ctrl.CyclePageSize(-1)
	case key.Matches(msg, m.keys.NextColumn):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.PrevColumn):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Filter):
		return m.startEditing()
	case key.Matches(msg, m.keys.Commit):
		m.ctrl.CommitSearch()
	case key.Matches(msg, m.keys.ClearFilter):
		m.ctrl.ClearFilters()
	case key.Matches(msg, m.keys.Narrower):
		m.resizeFocused(-resizeStep)
	case key.Matches(msg, m.keys.Wider):
		m.resizeFocused(resizeStep)
	case key.Matches(msg, m.keys.Reload):
		m.queue.fresh = true
		m.ctrl.Refresh()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, m.flush()
}

func (m TableModel) startEditing() (tea.Model, tea.Cmd) {
	col, ok := m.focusedColumn()
	if !ok {
		return m, nil
	}
	m.editing = true
	m.input.SetValue(m.ctrl.Filters().Get(col.ID))
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

func (m TableModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Commit):
		m.stopEditing()
		m.ctrl.CommitSearch()
		return m, m.flush()
	case key.Matches(msg, m.keys.Cancel):
		m.stopEditing()
		return m, nil
	case key.Matches(msg, m.keys.NextColumn), key.Matches(msg, m.keys.PrevColumn):
		step := 1
		if key.Matches(msg, m.keys.PrevColumn) {
			step = -1
		}
		m.moveFocus(step)
		if col, ok := m.focusedColumn(); ok {
			m.input.SetValue(m.ctrl.Filters().Get(col.ID))
			m.input.CursorEnd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if col, ok := m.focusedColumn(); ok && m.input.Value() != m.ctrl.Filters().Get(col.ID) {
		m.ctrl.EditFilter(col.ID, m.input.Value())
	}
	return m, tea.Batch(cmd, m.flush())
}

func (m *TableModel) stopEditing() {
	m.editing = false
	m.input.Blur()
}

func (m TableModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y != headerLine {
			return m, nil
		}
		if col, ok := m.borderAt(msg.X); ok {
			m.ctrl.BeginResize(col, msg.X)
		}
	case tea.MouseActionMotion:
		if m.ctrl.Resizing() {
			m.ctrl.MoveResize(msg.X)
		}
	case tea.MouseActionRelease:
		if m.ctrl.Resizing() {
			m.ctrl.MoveResize(msg.X)
			m.ctrl.EndResize()
		}
	}
	return m, nil
}

// borderAt returns the column whose right border sits at screen column x.
func (m TableModel) borderAt(x int) (string, bool) {
	edge := -1
	for _, col := range m.ctrl.Columns() {
		edge += m.ctrl.ColumnWidth(col.ID) + separatorWidth
		if x == edge {
			return col.ID, true
		}
		if x < edge {
			break
		}
	}
	return "", false
}

func (m *TableModel) moveFocus(step int) {
	n := len(m.ctrl.Columns())
	if n == 0 {
		return
	}
	m.focus = ((m.focus+step)%n + n) % n
}

func (m TableModel) focusedColumn() (table.Column, bool) {
	cols := m.ctrl.Columns()
	if m.focus < 0 || m.focus >= len(cols) {
		return table.Column{}, false
	}
	return cols[m.focus], true
}

func (m TableModel) resizeFocused(delta int) {
	if col, ok := m.focusedColumn(); ok {
		m.ctrl.ResizeColumn(col.ID, m.ctrl.ColumnWidth(col.ID)+delta)
	}
}

// flush turns queued controller fetches into load commands.
func (m TableModel) flush() tea.Cmd {
	reqs := m.queue.drain()
	if len(reqs) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(reqs)+1)
	for _, r := range reqs {
		ticket := m.seq.Issue()
		q := source.Query{Resource: m.resource.Name, Pagination: r.pagination, Filters: r.filters}
		m.log.Debug().
			Uint64("seq", ticket.Seq).
			Str("request_id", ticket.RequestID).
			Int("page_index", q.Pagination.PageIndex).
			Int("page_size", q.Pagination.PageSize).
			Bool("fresh", r.fresh).
			Msg("dispatching load")
		cmds = append(cmds, m.loadCmd(ticket, q, r.fresh))
	}
	cmds = append(cmds, m.spinner.Tick)
	return tea.Batch(cmds...)
}

func (m TableModel) loadCmd(ticket Ticket, q source.Query, fresh bool) tea.Cmd {
	ctx := logging.ContextWithTraceID(m.log.WithContext(m.ctx), ticket.RequestID)
	if fresh {
		ctx = source.WithFreshLoad(ctx)
	}
	loader, tableID := m.loader, m.id

	return func() tea.Msg {
		start := time.Now()
		res, err := loader.Load(ctx, q)
		return PageLoadedMsg{
			TableID:  tableID,
			Ticket:   ticket,
			Query:    q,
			Result:   res,
			Err:      err,
			Duration: time.Since(start),
		}
	}
}

// Controller exposes the underlying controller.
func (m TableModel) Controller() *table.Controller {
	return m.ctrl
}

// Resource returns the resource being browsed.
func (m TableModel) Resource() source.Resource {
	return m.resource
}

// Editing reports whether the filter input has focus.
func (m TableModel) Editing() bool {
	return m.editing
}

// Loading reports whether the newest load is still outstanding.
func (m TableModel) Loading() bool {
	return m.seq.Loading()
}

// Err returns the error of the last applied load, if any.
func (m TableModel) Err() error {
	return m.err
}
