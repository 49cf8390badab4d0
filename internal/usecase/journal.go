package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/totegamma/journal-playground"
	"github.com/totegamma/journal-playground/internal/domain"
)

var tracer = otel.Tracer("journal")

// DemoSeed is the fixture written by the demo reset endpoint:
// one event, two tasks and two notes, five envelopes.
var DemoSeed = domain.JournalSeed{
	Events: []string{"Saw a raccoon!"},
	Tasks:  []string{"Walk the dog", "Water the plants"},
	Notes:  []string{"Avoid Main St.", "Bring flashlight"},
}

type JournalUsecase struct {
	targets  TargetRepository
	items    ItemRepository
	users    UserRepository
	registry Registry
	cache    SummaryCache
	signal   EventPublisher
}

func NewJournalUsecase(
	targets TargetRepository,
	items ItemRepository,
	users UserRepository,
	registry Registry,
	cache SummaryCache,
	signal EventPublisher,
) *JournalUsecase {
	return &JournalUsecase{
		targets:  targets,
		items:    items,
		users:    users,
		registry: registry,
		cache:    cache,
		signal:   signal,
	}
}

func (u *JournalUsecase) CreateNote(ctx context.Context, title string) (domain.Note, error) {
	return u.targets.CreateNote(ctx, title)
}

func (u *JournalUsecase) CreateTask(ctx context.Context, title string, deadline *time.Time) (domain.Task, error) {
	return u.targets.CreateTask(ctx, title, deadline)
}

func (u *JournalUsecase) CreateEvent(ctx context.Context, title string, start, end *time.Time) (domain.Event, error) {
	return u.targets.CreateEvent(ctx, title, start, end)
}

// CreateItem wraps an already persisted target into an envelope. The owner
// is mandatory, the kind must be registered, and the target must exist at
// creation time. The target row itself is never touched.
func (u *JournalUsecase) CreateItem(ctx context.Context, kind journal.Kind, targetID, ownerID int64) (domain.JournalItem, error) {
	ctx, span := tracer.Start(ctx, "Journal.Usecase.CreateItem")
	defer span.End()

	if ownerID <= 0 {
		span.RecordError(domain.ErrMissingOwner)
		return domain.JournalItem{}, domain.ErrMissingOwner
	}

	if _, err := u.users.Get(ctx, ownerID); err != nil {
		span.RecordError(errors.Wrap(err, "lookup owner"))
		return domain.JournalItem{}, err
	}

	// Existence check doubles as the kind check: an unregistered kind is a
	// KindMismatch, a missing row a DanglingReference.
	if _, err := u.registry.Resolve(ctx, kind, targetID); err != nil {
		span.RecordError(err)
		return domain.JournalItem{}, err
	}

	item, err := u.items.Create(ctx, domain.JournalItem{
		ItemType: kind,
		OwnerID:  ownerID,
		TargetID: targetID,
	})
	if err != nil {
		span.RecordError(errors.Wrap(err, "create journal item"))
		return domain.JournalItem{}, err
	}

	u.publish(ctx, journal.Event{
		Type: journal.EventItemCreated,
		Item: journal.Item{
			ID:        item.ID,
			Kind:      item.ItemType,
			OwnerID:   item.OwnerID,
			TargetID:  item.TargetID,
			CreatedAt: item.CreatedAt,
		},
	})

	return item, nil
}

func (u *JournalUsecase) GetItem(ctx context.Context, id int64) (domain.JournalItem, error) {
	return u.items.Get(ctx, id)
}

// Resolve loads the envelope and the concrete record it points at. The
// item's type tag must agree with the kind its descriptor names; drift is
// a hard error, not a silently wrong record.
func (u *JournalUsecase) Resolve(ctx context.Context, id int64) (domain.JournalItem, domain.Resolved, error) {
	ctx, span := tracer.Start(ctx, "Journal.Usecase.Resolve")
	defer span.End()

	item, err := u.items.Get(ctx, id)
	if err != nil {
		span.RecordError(errors.Wrap(err, "get journal item"))
		return domain.JournalItem{}, domain.Resolved{}, err
	}

	if item.ItemType != item.Descriptor {
		err := domain.KindMismatchError{Declared: item.ItemType, Registered: item.Descriptor}
		span.RecordError(err)
		return domain.JournalItem{}, domain.Resolved{}, err
	}

	resolved, err := u.registry.Resolve(ctx, item.Descriptor, item.TargetID)
	if err != nil {
		span.RecordError(err)
		return domain.JournalItem{}, domain.Resolved{}, err
	}

	return item, resolved, nil
}

// Render produces the human readable summary for an item. It requires a
// successful resolve; a dangling envelope fails instead of rendering a
// half-empty label.
func (u *JournalUsecase) Render(ctx context.Context, id int64) (string, error) {
	ctx, span := tracer.Start(ctx, "Journal.Usecase.Render")
	defer span.End()

	if u.cache != nil {
		if summary, ok := u.cache.Get(ctx, id); ok {
			return summary, nil
		}
	}

	item, resolved, err := u.Resolve(ctx, id)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	owner, err := u.users.Get(ctx, item.OwnerID)
	if err != nil {
		span.RecordError(errors.Wrap(err, "lookup owner"))
		return "", err
	}

	summary := fmt.Sprintf("%s #%d [%s] %s", owner.Name, item.ID, item.ItemType.Name(), resolved.Label())

	if u.cache != nil {
		u.cache.Set(ctx, id, summary)
	}

	return summary, nil
}

func (u *JournalUsecase) ListByOwner(ctx context.Context, ownerID int64) ([]domain.JournalItem, error) {
	return u.items.ListByOwner(ctx, ownerID)
}

func (u *JournalUsecase) ListByTarget(ctx context.Context, kind journal.Kind, targetID int64) ([]domain.JournalItem, error) {
	if !kind.Valid() {
		return nil, domain.KindMismatchError{Declared: kind}
	}
	return u.items.ListByTarget(ctx, kind, targetID)
}

// DeleteItem removes the envelope only. Its target stays untouched.
func (u *JournalUsecase) DeleteItem(ctx context.Context, id int64) error {
	if err := u.items.Delete(ctx, id); err != nil {
		return err
	}
	if u.cache != nil {
		u.cache.Invalidate(ctx, id)
	}
	return nil
}

// DeleteTarget removes the concrete record without touching envelopes.
// Envelopes still pointing at it become dangling, observable at resolve.
func (u *JournalUsecase) DeleteTarget(ctx context.Context, kind journal.Kind, targetID int64) error {
	switch kind {
	case journal.KindNote:
		return u.targets.DeleteNote(ctx, targetID)
	case journal.KindTask:
		return u.targets.DeleteTask(ctx, targetID)
	case journal.KindEvent:
		return u.targets.DeleteEvent(ctx, targetID)
	}
	return domain.KindMismatchError{Declared: kind}
}

func (u *JournalUsecase) AddChild(ctx context.Context, parentID, childID int64) error {
	if parentID == childID {
		return fmt.Errorf("item %d cannot be its own parent", parentID)
	}
	if _, err := u.items.Get(ctx, parentID); err != nil {
		return err
	}
	if _, err := u.items.Get(ctx, childID); err != nil {
		return err
	}
	return u.items.AddChild(ctx, parentID, childID)
}

func (u *JournalUsecase) Children(ctx context.Context, parentID int64) ([]domain.JournalItem, error) {
	return u.items.Children(ctx, parentID)
}

func (u *JournalUsecase) Parent(ctx context.Context, childID int64) (domain.JournalItem, error) {
	return u.items.Parent(ctx, childID)
}

// ResetJournal wipes all envelopes and targets and recreates the demo
// fixture in one transaction. With ownerID zero the first bootstrap user
// owns the new items. Running it twice yields the same row counts.
func (u *JournalUsecase) ResetJournal(ctx context.Context, ownerID int64) ([]domain.JournalItem, error) {
	ctx, span := tracer.Start(ctx, "Journal.Usecase.ResetJournal")
	defer span.End()

	if ownerID <= 0 {
		owner, err := u.users.First(ctx)
		if err != nil {
			span.RecordError(errors.Wrap(err, "lookup bootstrap user"))
			return nil, err
		}
		ownerID = owner.ID
	}

	items, err := u.items.ResetJournal(ctx, ownerID, DemoSeed)
	if err != nil {
		span.RecordError(errors.Wrap(err, "reset journal"))
		return nil, err
	}

	u.publish(ctx, journal.Event{Type: journal.EventJournalReset})

	return items, nil
}

func (u *JournalUsecase) publish(ctx context.Context, event journal.Event) {
	if u.signal == nil {
		return
	}
	// Best effort: a dropped realtime event never fails the write.
	_ = u.signal.Publish(ctx, event)
}
