package usecase

import (
	"context"
	"errors"

	"github.com/totegamma/journal-playground"
	"github.com/totegamma/journal-playground/internal/domain"
)

// Accessor loads one record of one kind by id.
type Accessor func(ctx context.Context, id int64) (domain.Resolved, error)

// Registry is the explicit kind → accessor mapping. It is built once at
// startup from the target repository and passed to the usecase, instead
// of a hidden global kind-to-table lookup.
type Registry map[journal.Kind]Accessor

func NewRegistry(targets TargetRepository) Registry {
	return Registry{
		journal.KindNote: func(ctx context.Context, id int64) (domain.Resolved, error) {
			note, err := targets.GetNote(ctx, id)
			if err != nil {
				return domain.Resolved{}, err
			}
			return domain.Resolved{Kind: journal.KindNote, Note: &note}, nil
		},
		journal.KindTask: func(ctx context.Context, id int64) (domain.Resolved, error) {
			task, err := targets.GetTask(ctx, id)
			if err != nil {
				return domain.Resolved{}, err
			}
			return domain.Resolved{Kind: journal.KindTask, Task: &task}, nil
		},
		journal.KindEvent: func(ctx context.Context, id int64) (domain.Resolved, error) {
			event, err := targets.GetEvent(ctx, id)
			if err != nil {
				return domain.Resolved{}, err
			}
			return domain.Resolved{Kind: journal.KindEvent, Event: &event}, nil
		},
	}
}

// Resolve dispatches to the accessor for kind. A missing row surfaces as
// DanglingReferenceError, an unregistered kind as KindMismatchError.
func (r Registry) Resolve(ctx context.Context, kind journal.Kind, targetID int64) (domain.Resolved, error) {
	accessor, ok := r[kind]
	if !ok {
		return domain.Resolved{}, domain.KindMismatchError{Declared: kind}
	}

	resolved, err := accessor(ctx, targetID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Resolved{}, domain.DanglingReferenceError{Kind: kind, TargetID: targetID}
		}
		return domain.Resolved{}, err
	}

	return resolved, nil
}
