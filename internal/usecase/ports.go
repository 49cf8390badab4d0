package usecase

import (
	"context"
	"time"

	"github.com/totegamma/journal-playground"
	"github.com/totegamma/journal-playground/internal/domain"
)

// TargetRepository defines storage operations for the journaled record
// kinds. Targets live and die independently of any envelope.
type TargetRepository interface {
	CreateNote(ctx context.Context, title string) (domain.Note, error)
	GetNote(ctx context.Context, id int64) (domain.Note, error)
	DeleteNote(ctx context.Context, id int64) error

	CreateTask(ctx context.Context, title string, deadline *time.Time) (domain.Task, error)
	GetTask(ctx context.Context, id int64) (domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	CreateEvent(ctx context.Context, title string, start, end *time.Time) (domain.Event, error)
	GetEvent(ctx context.Context, id int64) (domain.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

// ItemRepository defines storage operations for envelopes and their
// parent/child relations.
type ItemRepository interface {
	Create(ctx context.Context, item domain.JournalItem) (domain.JournalItem, error)
	Get(ctx context.Context, id int64) (domain.JournalItem, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.JournalItem, error)
	ListByTarget(ctx context.Context, kind journal.Kind, targetID int64) ([]domain.JournalItem, error)
	Delete(ctx context.Context, id int64) error

	AddChild(ctx context.Context, parentID, childID int64) error
	Children(ctx context.Context, parentID int64) ([]domain.JournalItem, error)
	Parent(ctx context.Context, childID int64) (domain.JournalItem, error)

	// ResetJournal wipes every envelope and target and recreates the seed
	// inside a single transaction, so concurrent readers never observe the
	// empty window between delete and insert.
	ResetJournal(ctx context.Context, ownerID int64, seed domain.JournalSeed) ([]domain.JournalItem, error)
}

// UserRepository looks up owner identities. Users are bootstrap data.
type UserRepository interface {
	Get(ctx context.Context, id int64) (domain.User, error)
	First(ctx context.Context) (domain.User, error)
}

// SummaryCache caches rendered summaries.
type SummaryCache interface {
	Get(ctx context.Context, itemID int64) (string, bool)
	Set(ctx context.Context, itemID int64, summary string)
	Invalidate(ctx context.Context, itemID int64)
}

// EventPublisher fans journal events out to realtime subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event journal.Event) error
}
