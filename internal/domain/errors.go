package domain

import (
	"errors"
	"fmt"

	"github.com/totegamma/journal-playground"
)

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// DanglingReferenceError reports an envelope whose (kind, target id) pair
// no longer names an existing record. It is reported to the caller, never
// collapsed into a nil result.
type DanglingReferenceError struct {
	Kind     journal.Kind
	TargetID int64
}

func (e DanglingReferenceError) Error() string {
	return fmt.Sprintf("dangling reference: no %s with id %d", e.Kind.Name(), e.TargetID)
}

func (e DanglingReferenceError) Is(target error) bool {
	_, ok := target.(DanglingReferenceError)
	if ok {
		return true
	}
	_, ok = target.(*DanglingReferenceError)
	return ok
}

var ErrDanglingReference = DanglingReferenceError{}

// KindMismatchError reports disagreement between an item's type tag and
// the kind its descriptor names, or a descriptor for an unregistered kind.
type KindMismatchError struct {
	Declared   journal.Kind
	Registered journal.Kind
}

func (e KindMismatchError) Error() string {
	if e.Registered == "" {
		return fmt.Sprintf("kind mismatch: %q is not a registered kind", string(e.Declared))
	}
	return fmt.Sprintf("kind mismatch: item declares %s but descriptor names %s",
		e.Declared.Name(), e.Registered.Name())
}

func (e KindMismatchError) Is(target error) bool {
	_, ok := target.(KindMismatchError)
	if ok {
		return true
	}
	_, ok = target.(*KindMismatchError)
	return ok
}

var ErrKindMismatch = KindMismatchError{}

// ErrMissingOwner is returned when an envelope is created without an
// owner. Ownership is mandatory.
var ErrMissingOwner = errors.New("journal item requires an owner")
