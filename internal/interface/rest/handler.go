package rest

import (
	"context"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/journal-playground"
	"github.com/totegamma/journal-playground/internal/domain"
	"github.com/totegamma/journal-playground/internal/interface/rest/presenter"
	"github.com/totegamma/journal-playground/internal/usecase"
)

// RealtimeSource feeds journal events into the websocket endpoint.
type RealtimeSource interface {
	Realtime(ctx context.Context, output chan<- journal.Event)
}

type Handler struct {
	journal  *usecase.JournalUsecase
	realtime RealtimeSource
}

func NewHandler(journalUC *usecase.JournalUsecase, realtime RealtimeSource) *Handler {
	return &Handler{
		journal:  journalUC,
		realtime: realtime,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/notes", h.handleCreateNote)
	e.DELETE("/notes/:id", h.handleDeleteTarget(journal.KindNote))
	e.POST("/tasks", h.handleCreateTask)
	e.DELETE("/tasks/:id", h.handleDeleteTarget(journal.KindTask))
	e.POST("/events", h.handleCreateEvent)
	e.DELETE("/events/:id", h.handleDeleteTarget(journal.KindEvent))

	e.POST("/items", h.handleCreateItem)
	e.GET("/items", h.handleListItems)
	e.GET("/items/:id", h.handleGetItem)
	e.DELETE("/items/:id", h.handleDeleteItem)
	e.GET("/items/:id/summary", h.handleSummary)
	e.POST("/items/:id/children", h.handleAddChild)
	e.GET("/items/:id/children", h.handleChildren)
	e.GET("/items/:id/parent", h.handleParent)

	e.GET("/journal", h.handleResetJournal)
	e.GET("/realtime", h.handleRealtime)
}

func (h *Handler) handleCreateNote(c echo.Context) error {
	ctx := c.Request().Context()

	var req journal.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	note, err := h.journal.CreateNote(ctx, req.Title)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, note)
}

func (h *Handler) handleCreateTask(c echo.Context) error {
	ctx := c.Request().Context()

	var req journal.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	task, err := h.journal.CreateTask(ctx, req.Title, req.Deadline)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, task)
}

func (h *Handler) handleCreateEvent(c echo.Context) error {
	ctx := c.Request().Context()

	var req journal.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	event, err := h.journal.CreateEvent(ctx, req.Title, req.StartDate, req.EndDate)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, event)
}

func (h *Handler) handleDeleteTarget(kind journal.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, err := parseID(c.Param("id"))
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid id")
		}

		if err := h.journal.DeleteTarget(ctx, kind, id); err != nil {
			return respondError(c, err)
		}
		return presenter.OK(c, echo.Map{"status": "ok"})
	}
}

func (h *Handler) handleCreateItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req journal.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	item, err := h.journal.CreateItem(ctx, req.Kind, req.TargetID, req.OwnerID)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, itemToWire(item, nil))
}

func (h *Handler) handleGetItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	item, resolved, err := h.journal.Resolve(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, itemToWire(item, resolved.Value()))
}

func (h *Handler) handleDeleteItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	if err := h.journal.DeleteItem(ctx, id); err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleSummary(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	summary, err := h.journal.Render(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, journal.Summary{ItemID: id, Summary: summary})
}

func (h *Handler) handleListItems(c echo.Context) error {
	ctx := c.Request().Context()

	if ownerParam := c.QueryParam("owner"); ownerParam != "" {
		ownerID, err := parseID(ownerParam)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid owner")
		}
		items, err := h.journal.ListByOwner(ctx, ownerID)
		if err != nil {
			return respondError(c, err)
		}
		return presenter.OK(c, itemsToWire(items))
	}

	kindParam := c.QueryParam("kind")
	targetParam := c.QueryParam("target")
	if kindParam == "" || targetParam == "" {
		return presenter.BadRequestMessage(c, "owner or kind+target query required")
	}

	kind, err := journal.ParseKind(kindParam)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	targetID, err := parseID(targetParam)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid target")
	}

	items, err := h.journal.ListByTarget(ctx, kind, targetID)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, itemsToWire(items))
}

func (h *Handler) handleAddChild(c echo.Context) error {
	ctx := c.Request().Context()

	parentID, err := parseID(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	var req journal.AddChildRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	if err := h.journal.AddChild(ctx, parentID, req.ChildID); err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleChildren(c echo.Context) error {
	ctx := c.Request().Context()

	parentID, err := parseID(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	children, err := h.journal.Children(ctx, parentID)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, itemsToWire(children))
}

func (h *Handler) handleParent(c echo.Context) error {
	ctx := c.Request().Context()

	childID, err := parseID(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	parent, err := h.journal.Parent(ctx, childID)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, itemToWire(parent, nil))
}

// handleResetJournal is demo scaffolding: it wipes every table and
// recreates the fixed sample set, then returns the new envelopes.
func (h *Handler) handleResetJournal(c echo.Context) error {
	ctx := c.Request().Context()

	var ownerID int64
	if ownerParam := c.QueryParam("owner"); ownerParam != "" {
		id, err := parseID(ownerParam)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid owner")
		}
		ownerID = id
	}

	items, err := h.journal.ResetJournal(ctx, ownerID)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, itemsToWire(items))
}

func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingOwner):
		return presenter.BadRequestMessage(c, err.Error())
	case errors.Is(err, domain.ErrKindMismatch):
		return presenter.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrDanglingReference):
		return presenter.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return presenter.NotFound(c, err.Error())
	default:
		return presenter.InternalError(c, err)
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("id must be positive")
	}
	return id, nil
}

func itemToWire(item domain.JournalItem, content any) journal.Item {
	return journal.Item{
		ID:        item.ID,
		Kind:      item.ItemType,
		OwnerID:   item.OwnerID,
		TargetID:  item.TargetID,
		CreatedAt: item.CreatedAt,
		Content:   content,
	}
}

func itemsToWire(items []domain.JournalItem) []journal.Item {
	result := make([]journal.Item, 0, len(items))
	for _, item := range items {
		result = append(result, itemToWire(item, nil))
	}
	return result
}
