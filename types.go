package journal

import (
	"fmt"
	"time"
)

// Kind is the one-byte type tag stored on every journal item. It names
// which concrete record category the item's target id belongs to.
type Kind string

const (
	KindNote  Kind = "N"
	KindTask  Kind = "T"
	KindEvent Kind = "E"
)

// Kinds returns every supported kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindNote, KindTask, KindEvent}
}

func (k Kind) Valid() bool {
	switch k {
	case KindNote, KindTask, KindEvent:
		return true
	}
	return false
}

// Name returns the human readable model name for the kind.
func (k Kind) Name() string {
	switch k {
	case KindNote:
		return "Note"
	case KindTask:
		return "Task"
	case KindEvent:
		return "Event"
	}
	return "Unknown"
}

// ParseKind accepts either the stored code ("N") or the model name ("Note").
func ParseKind(s string) (Kind, error) {
	switch s {
	case "N", "Note":
		return KindNote, nil
	case "T", "Task":
		return KindTask, nil
	case "E", "Event":
		return KindEvent, nil
	}
	return "", fmt.Errorf("unknown kind: %q", s)
}

type CreateNoteRequest struct {
	Title string `json:"title"`
}

type CreateTaskRequest struct {
	Title    string     `json:"title"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

type CreateEventRequest struct {
	Title     string     `json:"title"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

type CreateItemRequest struct {
	Kind     Kind  `json:"kind"`
	TargetID int64 `json:"targetID"`
	OwnerID  int64 `json:"ownerID"`
}

type AddChildRequest struct {
	ChildID int64 `json:"childID"`
}

// Item is the wire representation of a journal item. Content carries the
// resolved target record on endpoints that resolve it.
type Item struct {
	ID        int64     `json:"id"`
	Kind      Kind      `json:"kind"`
	OwnerID   int64     `json:"ownerID"`
	TargetID  int64     `json:"targetID"`
	CreatedAt time.Time `json:"createdAt"`
	Content   any       `json:"content,omitempty"`
}

type Summary struct {
	ItemID  int64  `json:"itemID"`
	Summary string `json:"summary"`
}

// Event is pushed to realtime subscribers when the journal changes.
type Event struct {
	Type string `json:"type"`
	Item Item   `json:"item"`
}

const (
	EventItemCreated  = "item.created"
	EventJournalReset = "journal.reset"
)
