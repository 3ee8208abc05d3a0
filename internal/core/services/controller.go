// internal/core/services/controller.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

// Status is the fetch state of a list controller
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Messages are the notices a controller shows for one resource
type Messages struct {
	LoadFailed    string
	SuccessTitle  string
	Created       string
	Updated       string
	SaveFailed    string
	Deleted       string
	DeleteFailed  string
	ErrorTitle    string
	ConfirmDelete ports.Prompt
}

// NewMessages builds the default notices for a resource named singular/plural
func NewMessages(singular, plural string) Messages {
	title := capitalize(singular)
	return Messages{
		LoadFailed:   fmt.Sprintf("Could not load %s", plural),
		SuccessTitle: "Success",
		Created:      fmt.Sprintf("%s created", title),
		Updated:      fmt.Sprintf("%s updated", title),
		SaveFailed:   fmt.Sprintf("Could not save %s", singular),
		Deleted:      fmt.Sprintf("%s deleted", title),
		DeleteFailed: fmt.Sprintf("Could not delete %s", singular),
		ErrorTitle:   "Error",
		ConfirmDelete: ports.Prompt{
			Title:        fmt.Sprintf("Delete %s?", singular),
			Text:         "This action cannot be undone.",
			ConfirmLabel: "Yes, delete",
			CancelLabel:  "Cancel",
		},
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ControllerOptions configures a ListController
type ControllerOptions struct {
	Resource string
	PageSize int
	Messages Messages
}

// State is a point-in-time copy of a controller's list state
type State[T any] struct {
	Items  []T
	Page   domain.PageState
	Search domain.SearchState
	Status Status
	Busy   bool
	Err    error
}

// Empty reports whether the last successful fetch returned no items
func (s State[T]) Empty() bool {
	return s.Status == StatusLoaded && len(s.Items) == 0
}

// ListController owns the paged, searchable view of one remote collection and
// re-fetches it after every successful mutation. It is safe for concurrent use;
// when fetches overlap only the most recently started one is applied.
type ListController[T any, P any] struct {
	gateway   ports.ResourceGateway[T, P]
	notifier  ports.Notifier
	confirmer ports.Confirmer
	logger    *slog.Logger
	pageSize  int
	msgs      Messages

	mu         sync.Mutex
	items      []T
	page       domain.PageState
	search     domain.SearchState
	status     Status
	lastErr    error
	generation uint64
	pending    int
}

// NewListController creates a controller over gateway
func NewListController[T any, P any](
	gateway ports.ResourceGateway[T, P],
	notifier ports.Notifier,
	confirmer ports.Confirmer,
	logger *slog.Logger,
	opts ControllerOptions,
) *ListController[T, P] {
	if opts.PageSize <= 0 {
		opts.PageSize = domain.DefaultPageSize
	}
	if opts.Resource == "" {
		opts.Resource = "item"
	}
	if opts.Messages == (Messages{}) {
		opts.Messages = NewMessages(opts.Resource, opts.Resource+"s")
	}

	return &ListController[T, P]{
		gateway:   gateway,
		notifier:  notifier,
		confirmer: confirmer,
		logger: logger.With(
			slog.String("component", "list_controller"),
			slog.String("resource", opts.Resource),
		),
		pageSize: opts.PageSize,
		msgs:     opts.Messages,
		page:     domain.NewPageState(),
		status:   StatusIdle,
	}
}

// Load performs the initial fetch
func (c *ListController[T, P]) Load(ctx context.Context) error {
	return c.fetch(ctx)
}

// Refresh re-fetches the current page with the committed search
func (c *ListController[T, P]) Refresh(ctx context.Context) error {
	return c.fetch(ctx)
}

// ChangePage moves to page n and fetches it. Pages outside 1..TotalPages are
// rejected without a request; the return value reports whether n was accepted.
func (c *ListController[T, P]) ChangePage(ctx context.Context, n int) bool {
	c.mu.Lock()
	if !c.page.Contains(n) {
		total := c.page.TotalPages
		c.mu.Unlock()
		c.logger.DebugContext(ctx, "page change rejected",
			slog.Int("page", n),
			slog.Int("total_pages", total))
		return false
	}
	c.page.CurrentPage = n
	c.mu.Unlock()

	_ = c.fetch(ctx)
	return true
}

// NextPage moves forward one page if there is one
func (c *ListController[T, P]) NextPage(ctx context.Context) bool {
	c.mu.Lock()
	next := c.page.CurrentPage + 1
	c.mu.Unlock()
	return c.ChangePage(ctx, next)
}

// PrevPage moves back one page if there is one
func (c *ListController[T, P]) PrevPage(ctx context.Context) bool {
	c.mu.Lock()
	prev := c.page.CurrentPage - 1
	c.mu.Unlock()
	return c.ChangePage(ctx, prev)
}

// SetDraft records typed search text without fetching
func (c *ListController[T, P]) SetDraft(query string) {
	c.mu.Lock()
	c.search.Draft = query
	c.mu.Unlock()
}

// CommitSearch resets to page 1, commits the draft query and fetches
func (c *ListController[T, P]) CommitSearch(ctx context.Context) error {
	c.mu.Lock()
	c.page.CurrentPage = 1
	c.search.Committed = c.search.Draft
	c.mu.Unlock()

	return c.fetch(ctx)
}

// Search sets the draft to query and commits it
func (c *ListController[T, P]) Search(ctx context.Context, query string) error {
	c.SetDraft(query)
	return c.CommitSearch(ctx)
}

// Save creates payload when id is empty, otherwise updates item id. It returns
// true once the server accepted the change and the list has been re-fetched.
func (c *ListController[T, P]) Save(ctx context.Context, payload P, id domain.ID) bool {
	if v, ok := any(payload).(ports.Validatable); ok {
		if err := v.Validate(); err != nil {
			c.notifier.Error(ctx, c.msgs.ErrorTitle, domain.UserMessage(err, c.msgs.SaveFailed))
			return false
		}
	}

	c.begin()
	var err error
	if id.IsZero() {
		err = c.gateway.Create(ctx, payload)
	} else {
		err = c.gateway.Update(ctx, id, payload)
	}
	c.end()

	if err != nil {
		c.logger.ErrorContext(ctx, "failed to save",
			slog.String("id", id.String()),
			slog.String("error", err.Error()))
		c.notifier.Error(ctx, c.msgs.ErrorTitle, domain.UserMessage(err, c.msgs.SaveFailed))
		return false
	}

	msg := c.msgs.Created
	if !id.IsZero() {
		msg = c.msgs.Updated
	}
	c.notifier.Success(ctx, c.msgs.SuccessTitle, msg)

	_ = c.fetch(ctx)
	return true
}

// Delete asks for confirmation and removes item id. A declined confirmation
// issues no request and returns false.
func (c *ListController[T, P]) Delete(ctx context.Context, id domain.ID) bool {
	ok, err := c.confirmer.Confirm(ctx, c.msgs.ConfirmDelete)
	if err != nil {
		c.logger.WarnContext(ctx, "confirmation failed",
			slog.String("id", id.String()),
			slog.String("error", err.Error()))
		return false
	}
	if !ok {
		c.logger.DebugContext(ctx, "delete cancelled", slog.String("id", id.String()))
		return false
	}

	c.begin()
	err = c.gateway.Remove(ctx, id)
	c.end()

	if err != nil {
		c.logger.ErrorContext(ctx, "failed to delete",
			slog.String("id", id.String()),
			slog.String("error", err.Error()))
		c.notifier.Error(ctx, c.msgs.ErrorTitle, domain.UserMessage(err, c.msgs.DeleteFailed))
		return false
	}

	c.notifier.Success(ctx, c.msgs.SuccessTitle, c.msgs.Deleted)

	_ = c.fetch(ctx)
	return true
}

// Find returns the first item of the current page matching match
func (c *ListController[T, P]) Find(match func(T) bool) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Snapshot returns a copy of the current state
func (c *ListController[T, P]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]T, len(c.items))
	copy(items, c.items)

	return State[T]{
		Items:  items,
		Page:   c.page,
		Search: c.search,
		Status: c.status,
		Busy:   c.status == StatusLoading || c.pending > 0,
		Err:    c.lastErr,
	}
}

// Busy reports whether a fetch or mutation is in flight
func (c *ListController[T, P]) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status == StatusLoading || c.pending > 0
}

// PageSize returns the number of items requested per page
func (c *ListController[T, P]) PageSize() int {
	return c.pageSize
}

// run wraps a custom mutation so it counts toward Busy and re-fetches on success
func (c *ListController[T, P]) run(ctx context.Context, title, success, fallback string, op func(context.Context) error) bool {
	c.begin()
	err := op(ctx)
	c.end()

	if err != nil {
		c.logger.ErrorContext(ctx, "action failed",
			slog.String("action", title),
			slog.String("error", err.Error()))
		c.notifier.Error(ctx, c.msgs.ErrorTitle, domain.UserMessage(err, fallback))
		return false
	}

	c.notifier.Success(ctx, title, success)

	_ = c.fetch(ctx)
	return true
}

func (c *ListController[T, P]) begin() {
	c.mu.Lock()
	c.pending++
	c.mu.Unlock()
}

func (c *ListController[T, P]) end() {
	c.mu.Lock()
	c.pending--
	c.mu.Unlock()
}

// fetch requests the current page with the committed search and applies the
// result unless a newer fetch was started in the meantime.
func (c *ListController[T, P]) fetch(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	params := domain.ListParams{
		Page:   c.page.CurrentPage,
		Limit:  c.pageSize,
		Search: c.search.Committed,
	}
	c.status = StatusLoading
	c.mu.Unlock()

	page, err := c.gateway.List(ctx, params)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.logger.DebugContext(ctx, "discarding stale page",
			slog.Int("page", params.Page),
			slog.String("search", params.Search))
		return nil
	}

	if err != nil {
		c.status = StatusError
		c.lastErr = err
		c.mu.Unlock()

		c.logger.ErrorContext(ctx, "failed to fetch page",
			slog.Int("page", params.Page),
			slog.String("error", err.Error()))
		c.notifier.Error(ctx, c.msgs.ErrorTitle, domain.UserMessage(err, c.msgs.LoadFailed))
		return fmt.Errorf("failed to fetch page %d: %w", params.Page, err)
	}

	if page == nil {
		page = &domain.Page[T]{}
	}

	c.items = page.Items
	if c.items == nil {
		c.items = []T{}
	}
	c.page.TotalPages = max(page.TotalPages, 1)
	c.page.TotalItems = max(page.TotalItems, 0)
	c.status = StatusLoaded
	c.lastErr = nil

	// keep 1 <= CurrentPage <= TotalPages when the collection shrank under us
	clamped := false
	if c.page.CurrentPage > c.page.TotalPages {
		c.page.CurrentPage = c.page.TotalPages
		clamped = true
	}
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "page loaded",
		slog.Int("page", params.Page),
		slog.Int("items", len(page.Items)),
		slog.Int("total_pages", page.TotalPages))

	if clamped {
		return c.fetch(ctx)
	}
	return nil
}
