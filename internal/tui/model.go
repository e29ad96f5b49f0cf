// Package tui is the terminal front-end: a search box, the part form, the
// stock filters and the inventory table, all driven by a controller.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/erazemk/partstock/internal/controller"
	"github.com/erazemk/partstock/internal/model"
	"github.com/erazemk/partstock/internal/notify"
)

type focus int

const (
	focusSearch focus = iota
	focusName
	focusAliases
	focusVehicleStock
	focusWarehouseStock
	focusPrice
	focusTable
	focusCount
)

// formFields maps the form inputs, in order, to draft fields.
var formFields = []model.Field{
	model.FieldName,
	model.FieldAliases,
	model.FieldVehicleStock,
	model.FieldWarehouseStock,
	model.FieldPrice,
}

var fieldLabels = map[model.Field]string{
	model.FieldName:           "Name",
	model.FieldAliases:        "Aliases",
	model.FieldVehicleStock:   "Vehicle stock",
	model.FieldWarehouseStock: "Warehouse stock",
	model.FieldPrice:          "Price",
}

// stateMsg tells the model that the controller published a new state.
type stateMsg struct{}

// notifyMsg tells the model that the notification queue changed.
type notifyMsg struct{}

type tickMsg time.Time

// doneMsg carries the result of a controller call run as a command.
type doneMsg struct {
	err error
}

// Model is the bubbletea model of the inventory screen.
type Model struct {
	ctx    context.Context
	ctrl   *controller.Controller
	center *notify.Center

	state  controller.State
	focus  focus
	search textinput.Model
	inputs []textinput.Model
	cursor int

	// confirming is the row awaiting a delete confirmation.
	confirming *model.Part

	tickAt time.Time

	width  int
	height int
}

// New returns a model bound to ctrl. Notifications are read from center.
func New(ctx context.Context, ctrl *controller.Controller, center *notify.Center) *Model {
	search := textinput.New()
	search.Placeholder = "Search parts by name or alias..."
	search.CharLimit = 100
	search.Width = 50
	search.Focus()

	inputs := make([]textinput.Model, len(formFields))
	for i, f := range formFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 200
		ti.Width = 40
		if f == model.FieldAliases {
			ti.Placeholder = "comma separated"
		}
		if f.Numeric() {
			ti.CharLimit = 18
			ti.Width = 12
		}
		inputs[i] = ti
	}

	return &Model{
		ctx:    ctx,
		ctrl:   ctrl,
		center: center,
		state:  ctrl.State(),
		search: search,
		inputs: inputs,
	}
}

// Init starts the cursor blink and the initial fetch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.run(m.ctrl.Mount))
}

// run executes a controller call off the update loop.
func (m *Model) run(fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return doneMsg{err: fn(ctx)}
	}
}

// Update handles one message from the bubbletea event loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateMsg:
		m.syncState()
		return m, nil

	case notifyMsg:
		return m, m.scheduleTick()

	case tickMsg:
		m.tickAt = time.Time{}
		m.center.Prune()
		return m, m.scheduleTick()

	case doneMsg:
		var dup *controller.DuplicateNameError
		m.syncState()
		if errors.As(msg.err, &dup) {
			m.search.SetValue(m.state.Search)
			m.search.CursorEnd()
		}
		return m, m.scheduleTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isQuit(msg) {
		return m, tea.Quit
	}

	if m.confirming != nil {
		part := *m.confirming
		m.confirming = nil
		if !isConfirm(msg) {
			return m, nil
		}
		return m, m.run(func(ctx context.Context) error {
			return m.ctrl.Delete(ctx, part, func(string) bool { return true })
		})
	}

	switch {
	case isNextFocus(msg):
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case isPrevFocus(msg):
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	case isSubmit(msg):
		return m, m.run(m.ctrl.Submit)
	case isReset(msg):
		m.ctrl.Reset()
		m.syncState()
		return m, nil
	case isToggleLowStock(msg):
		m.ctrl.FlipLowStock()
		m.syncState()
		return m, m.run(m.ctrl.Refresh)
	case isToggleNoVehicleStock(msg):
		m.ctrl.FlipNoVehicleStock()
		m.syncState()
		return m, m.run(m.ctrl.Refresh)
	}

	switch m.focus {
	case focusSearch:
		if isBack(msg) {
			m.search.SetValue("")
			m.ctrl.SetSearchText("")
			m.syncState()
			return m, m.run(m.ctrl.Refresh)
		}
		if msg.Type == tea.KeyDown {
			m.setFocus(focusTable)
			return m, nil
		}
	case focusTable:
		return m.handleTableKey(msg)
	default:
		if isEnter(msg) {
			return m, m.run(m.ctrl.Submit)
		}
		if isBack(msg) {
			m.setFocus(focusSearch)
			return m, nil
		}
	}

	return m.updateFocused(msg)
}

func (m *Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.state.Visible
	switch {
	case isUp(msg):
		if m.cursor > 0 {
			m.cursor--
		}
	case isDown(msg):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case isEnter(msg):
		if len(rows) > 0 {
			m.ctrl.Select(rows[m.cursor])
			m.syncState()
			m.setFocus(focusName)
		}
	case isDelete(msg):
		if len(rows) > 0 {
			part := rows[m.cursor]
			m.confirming = &part
		}
	case isBack(msg):
		m.setFocus(focusSearch)
	}
	return m, nil
}

// updateFocused forwards msg to the focused input and propagates edits to
// the controller.
func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case m.focus == focusSearch:
		prev := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		// Edits are applied here, in key order; only the fetch is async.
		if value := m.search.Value(); value != prev {
			m.ctrl.SetSearchText(value)
			m.syncState()
			return m, tea.Batch(cmd, m.run(m.ctrl.Refresh))
		}

	case m.focus >= focusName && m.focus <= focusPrice:
		i := int(m.focus - focusName)
		prev := m.inputs[i].Value()
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		if value := m.inputs[i].Value(); value != prev {
			if !m.ctrl.SetField(formFields[i], value) {
				m.inputs[i].SetValue(prev)
			}
		}
	}

	return m, cmd
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.search.Blur()
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	switch {
	case f == focusSearch:
		m.search.Focus()
	case f >= focusName && f <= focusPrice:
		m.inputs[f-focusName].Focus()
	}
}

// syncState pulls the latest controller state and mirrors the draft into
// the form inputs.
func (m *Model) syncState() {
	m.state = m.ctrl.State()
	for i, f := range formFields {
		if v := m.state.Draft.Get(f); m.inputs[i].Value() != v {
			m.inputs[i].SetValue(v)
		}
	}
	if m.cursor >= len(m.state.Visible) {
		m.cursor = max(len(m.state.Visible)-1, 0)
	}
}

// scheduleTick arms a single tick for the next notification deadline.
func (m *Model) scheduleTick() tea.Cmd {
	next, ok := m.center.NextDeadline()
	if !ok {
		return nil
	}
	if !m.tickAt.IsZero() && !next.Before(m.tickAt) {
		return nil
	}
	m.tickAt = next
	d := time.Until(next)
	if d < 0 {
		d = 0
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, ctrl *controller.Controller, center *notify.Center, opts ...tea.ProgramOption) error {
	m := New(ctx, ctrl, center)
	p := tea.NewProgram(m, opts...)

	// Callbacks may fire from inside Update, so Send must not block them.
	unsubState := ctrl.Subscribe(func(controller.State) { go p.Send(stateMsg{}) })
	defer unsubState()
	unsubNotify := center.Subscribe(func() { go p.Send(notifyMsg{}) })
	defer unsubNotify()

	_, err := p.Run()
	return err
}
