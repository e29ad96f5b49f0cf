// Package controller owns the form draft and the table state. It mediates
// between row selection and the draft, and issues mutations through the
// record store client, re-fetching after each successful one.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/erazemk/partstock/internal/client"
	"github.com/erazemk/partstock/internal/model"
	"github.com/erazemk/partstock/internal/notify"
	"github.com/erazemk/partstock/internal/query"
)

// HighlightDuration is how long a row stays flagged after an update.
const HighlightDuration = 2 * time.Second

// User-facing messages.
const (
	msgRequired       = "Name and aliases are required."
	msgNameRequired   = "Name is required."
	msgNotNumeric     = "Stock and price must be whole numbers."
	msgRegistered     = "Part registered."
	msgRegisterFailed = "Failed to register part."
	msgUpdated        = "Part updated."
	msgUpdateFailed   = "Failed to update part."
	msgDeleted        = "Part deleted."
	msgDeleteFailed   = "Failed to delete part."
	msgLoadFailed     = "Failed to load parts."
)

// State is a snapshot of everything the view renders.
type State struct {
	Records     []model.Part
	Visible     []model.Part
	Search      string
	Filters     query.Filters
	Draft       model.Draft
	Highlighted int64
	Loading     bool
}

// Editing reports whether the draft holds an existing part.
func (s State) Editing() bool {
	return s.Draft.ID != 0
}

// SubmitLabel is the label of the submit action for the current draft.
func (s State) SubmitLabel() string {
	if s.Editing() {
		return "Save changes"
	}
	return "Register"
}

// Options configures a Controller. Zero values use defaults.
type Options struct {
	Engine    query.Engine
	Scheduler Scheduler
	Logger    *slog.Logger
}

// Controller is safe for concurrent use. Store calls are made without
// holding its lock.
type Controller struct {
	table    client.Table
	notifier notify.Notifier
	engine   query.Engine
	sched    Scheduler
	log      *slog.Logger

	mu       sync.Mutex
	state    State
	fetchSeq uint64
	hlSeq    uint64
	hlTimer  Timer
	closed   bool
	subs     map[int]func(State)
	nextSub  int
}

// New returns a controller with an empty draft. Call Mount to load parts.
func New(table client.Table, notifier notify.Notifier, opts Options) *Controller {
	if opts.Scheduler == nil {
		opts.Scheduler = realScheduler{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Controller{
		table:    table,
		notifier: notifier,
		engine:   opts.Engine,
		sched:    opts.Scheduler,
		log:      opts.Logger,
		state:    State{Records: []model.Part{}, Visible: []model.Part{}},
		subs:     make(map[int]func(State)),
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned function unregisters it.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Close cancels the pending highlight and drops all subscribers.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.hlTimer != nil {
		c.hlTimer.Stop()
		c.hlTimer = nil
	}
	c.hlSeq++
	c.subs = make(map[int]func(State))
}

// Mount performs the initial fetch.
func (c *Controller) Mount(ctx context.Context) error {
	return c.Refresh(ctx)
}

// Refresh fetches the full record set and recomputes the visible rows.
// Only the most recently issued fetch may update state; results of
// superseded fetches are dropped.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.fetchSeq++
	token := c.fetchSeq
	c.state.Loading = true
	c.mu.Unlock()

	parts, err := c.table.ListAll(ctx)

	c.mu.Lock()
	if token != c.fetchSeq {
		c.mu.Unlock()
		if err != nil {
			c.log.Info("superseded fetch failed", "token", token, "error", err)
		}
		return nil
	}
	c.state.Loading = false
	if err == nil {
		c.state.Records = parts
		c.recomputeLocked()
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Error("failed to fetch parts", "error", err)
		c.notifier.Notify(msgLoadFailed, notify.KindError)
	}
	c.publish()
	return err
}

// SetSearchText replaces the search text and recomputes the visible rows
// without fetching. Callers that apply edits in input order and fetch
// asynchronously use it with Refresh.
func (c *Controller) SetSearchText(text string) {
	c.mu.Lock()
	c.state.Search = text
	c.recomputeLocked()
	c.mu.Unlock()
	c.publish()
}

// SetSearch replaces the search text and re-fetches.
func (c *Controller) SetSearch(ctx context.Context, text string) error {
	c.SetSearchText(text)
	return c.Refresh(ctx)
}

// ClearSearch empties the search text and re-fetches.
func (c *Controller) ClearSearch(ctx context.Context) error {
	return c.SetSearch(ctx, "")
}

// SetFilterFlags replaces both stock filters without fetching.
func (c *Controller) SetFilterFlags(f query.Filters) {
	c.updateFilters(func(cur *query.Filters) { *cur = f })
}

// SetFilters replaces both stock filters and re-fetches.
func (c *Controller) SetFilters(ctx context.Context, f query.Filters) error {
	c.SetFilterFlags(f)
	return c.Refresh(ctx)
}

// FlipLowStock flips the low total stock filter without fetching and
// returns the new filters.
func (c *Controller) FlipLowStock() query.Filters {
	return c.updateFilters(func(f *query.Filters) { f.LowStock = !f.LowStock })
}

// FlipNoVehicleStock flips the zero vehicle stock filter without fetching
// and returns the new filters.
func (c *Controller) FlipNoVehicleStock() query.Filters {
	return c.updateFilters(func(f *query.Filters) { f.NoVehicleStock = !f.NoVehicleStock })
}

// ToggleLowStock flips the low total stock filter and re-fetches.
func (c *Controller) ToggleLowStock(ctx context.Context) error {
	c.FlipLowStock()
	return c.Refresh(ctx)
}

// ToggleNoVehicleStock flips the zero vehicle stock filter and re-fetches.
func (c *Controller) ToggleNoVehicleStock(ctx context.Context) error {
	c.FlipNoVehicleStock()
	return c.Refresh(ctx)
}

// updateFilters applies fn to the filters in one critical section.
func (c *Controller) updateFilters(fn func(*query.Filters)) query.Filters {
	c.mu.Lock()
	fn(&c.state.Filters)
	f := c.state.Filters
	c.recomputeLocked()
	c.mu.Unlock()
	c.publish()
	return f
}

// SetField edits one draft field. Numeric fields accept only "" or decimal
// digits; other input is rejected and the previous value kept.
func (c *Controller) SetField(f model.Field, value string) bool {
	if f.Numeric() && !model.IsCountInput(value) {
		return false
	}

	c.mu.Lock()
	c.state.Draft = c.state.Draft.With(f, value)
	c.mu.Unlock()
	c.publish()
	return true
}

// Select replaces the draft with the fields of a table row.
func (c *Controller) Select(p model.Part) {
	c.mu.Lock()
	c.state.Draft = model.DraftFrom(p)
	c.mu.Unlock()
	c.publish()
}

// Reset clears the draft.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.state.Draft = model.Draft{}
	c.mu.Unlock()
	c.publish()
}

// Submit registers the draft as a new part, or saves it over the existing
// part it was loaded from.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	draft := c.state.Draft
	records := c.state.Records
	c.mu.Unlock()

	if draft.ID == 0 {
		return c.create(ctx, draft, records)
	}
	return c.update(ctx, draft)
}

func (c *Controller) create(ctx context.Context, draft model.Draft, records []model.Part) error {
	var missing []model.Field
	if strings.TrimSpace(draft.Name) == "" {
		missing = append(missing, model.FieldName)
	}
	if len(model.SplitAliases(draft.Aliases)) == 0 {
		missing = append(missing, model.FieldAliases)
	}
	if len(missing) > 0 {
		c.notifier.Notify(msgRequired, notify.KindWarning)
		return &ValidationError{Fields: missing, Reason: "required"}
	}

	if existing, ok := findByName(records, draft.Name); ok {
		c.log.Info("duplicate part name", "name", draft.Name, "existing_id", existing.ID)
		c.notifier.Notify(`"`+strings.TrimSpace(existing.Name)+`" is already registered.`, notify.KindWarning)

		c.mu.Lock()
		c.state.Draft = model.Draft{}
		c.state.Search = strings.TrimSpace(existing.Name)
		c.recomputeLocked()
		c.mu.Unlock()
		c.publish()

		_ = c.Refresh(ctx)
		return &DuplicateNameError{Name: draft.Name, Existing: existing}
	}

	part, err := draft.NewPart()
	if err != nil {
		c.notifier.Notify(msgNotNumeric, notify.KindWarning)
		return &ValidationError{Fields: numericFields(), Reason: err.Error()}
	}

	if err := c.table.Insert(ctx, part); err != nil {
		c.log.Error("failed to insert part", "name", part.Name, "error", err)
		c.notifier.Notify(msgRegisterFailed, notify.KindError)
		return err
	}

	c.log.Info("part registered", "name", part.Name)
	c.clearDraft()
	_ = c.Refresh(ctx)
	c.notifier.Notify(msgRegistered, notify.KindSuccess)
	return nil
}

func (c *Controller) update(ctx context.Context, draft model.Draft) error {
	if strings.TrimSpace(draft.Name) == "" {
		c.notifier.Notify(msgNameRequired, notify.KindWarning)
		return &ValidationError{Fields: []model.Field{model.FieldName}, Reason: "required"}
	}

	patch, err := draft.Patch()
	if err != nil {
		c.notifier.Notify(msgNotNumeric, notify.KindWarning)
		return &ValidationError{Fields: numericFields(), Reason: err.Error()}
	}

	if err := c.table.Update(ctx, draft.ID, patch); err != nil {
		c.log.Error("failed to update part", "id", draft.ID, "error", err)
		c.notifier.Notify(msgUpdateFailed, notify.KindError)
		return err
	}

	c.log.Info("part updated", "id", draft.ID)
	c.clearDraft()
	_ = c.Refresh(ctx)
	c.notifier.Notify(msgUpdated, notify.KindSuccess)
	c.highlight(draft.ID)
	return nil
}

// DeletePrompt is the confirmation text for deleting p.
func DeletePrompt(p model.Part) string {
	msg := `Delete "` + p.Name + `"`
	if len(p.Aliases) > 0 {
		msg += " (" + model.JoinAliases(p.Aliases) + ")"
	}
	return msg + "?"
}

// Delete removes p after confirm accepts the prompt. It does not depend on
// the draft. A declined prompt returns ErrCancelled.
func (c *Controller) Delete(ctx context.Context, p model.Part, confirm func(prompt string) bool) error {
	if confirm == nil || !confirm(DeletePrompt(p)) {
		return ErrCancelled
	}

	if err := c.table.Remove(ctx, p.ID); err != nil {
		c.log.Error("failed to delete part", "id", p.ID, "error", err)
		c.notifier.Notify(msgDeleteFailed, notify.KindError)
		return err
	}

	c.log.Info("part deleted", "id", p.ID, "name", p.Name)
	c.clearDraft()
	_ = c.Refresh(ctx)
	c.notifier.Notify(msgDeleted, notify.KindSuccess)
	return nil
}

func (c *Controller) clearDraft() {
	c.mu.Lock()
	c.state.Draft = model.Draft{}
	c.mu.Unlock()
	c.publish()
}

// highlight flags a row for HighlightDuration. A new highlight cancels the
// pending one.
func (c *Controller) highlight(id int64) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.hlTimer != nil {
		c.hlTimer.Stop()
	}
	c.hlSeq++
	seq := c.hlSeq
	c.state.Highlighted = id
	c.hlTimer = c.sched.AfterFunc(HighlightDuration, func() { c.unhighlight(seq) })
	c.mu.Unlock()
	c.publish()
}

func (c *Controller) unhighlight(seq uint64) {
	c.mu.Lock()
	if seq != c.hlSeq {
		c.mu.Unlock()
		return
	}
	c.state.Highlighted = 0
	c.hlTimer = nil
	c.mu.Unlock()
	c.publish()
}

func (c *Controller) recomputeLocked() {
	c.state.Visible = c.engine.Visible(c.state.Records, c.state.Search, c.state.Filters)
}

func (c *Controller) snapshotLocked() State {
	s := c.state
	s.Records = slices.Clone(c.state.Records)
	s.Visible = slices.Clone(c.state.Visible)
	return s
}

func (c *Controller) publish() {
	c.mu.Lock()
	s := c.snapshotLocked()
	subs := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

func findByName(records []model.Part, name string) (model.Part, bool) {
	key := model.NameKey(name)
	for _, p := range records {
		if model.NameKey(p.Name) == key {
			return p, true
		}
	}
	return model.Part{}, false
}

func numericFields() []model.Field {
	return []model.Field{model.FieldVehicleStock, model.FieldWarehouseStock, model.FieldPrice}
}

// IsStoreError reports whether err came from the record store.
func IsStoreError(err error) bool {
	var se *client.StoreError
	return errors.As(err, &se)
}
