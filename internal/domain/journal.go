package domain

import (
	"fmt"
	"time"

	"github.com/totegamma/journal-playground"
)

// Note, Task and Event are created independently and carry no knowledge
// of being journaled.

type Note struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type Task struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	Deadline  *time.Time `json:"deadline,omitempty"`
}

type Event struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// User is the owner identity. Users are managed elsewhere; the journal
// only references them.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// JournalItem is the envelope: a discriminated (descriptor, target id)
// reference to exactly one record of one kind, plus ownership metadata.
// ItemType is the tag written by the creator; Descriptor is the kind the
// registry row actually names. The two must agree, and resolving checks it.
type JournalItem struct {
	ID         int64        `json:"id"`
	ItemType   journal.Kind `json:"itemType"`
	Descriptor journal.Kind `json:"descriptor"`
	OwnerID    int64        `json:"ownerID"`
	TargetID   int64        `json:"targetID"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// Resolved is the tagged union a journal item resolves to. Exactly one of
// Note, Task, Event is non-nil, matching Kind.
type Resolved struct {
	Kind  journal.Kind `json:"kind"`
	Note  *Note        `json:"note,omitempty"`
	Task  *Task        `json:"task,omitempty"`
	Event *Event       `json:"event,omitempty"`
}

func (r Resolved) TargetID() int64 {
	switch r.Kind {
	case journal.KindNote:
		return r.Note.ID
	case journal.KindTask:
		return r.Task.ID
	case journal.KindEvent:
		return r.Event.ID
	}
	return 0
}

func (r Resolved) Title() string {
	switch r.Kind {
	case journal.KindNote:
		return r.Note.Title
	case journal.KindTask:
		return r.Task.Title
	case journal.KindEvent:
		return r.Event.Title
	}
	return ""
}

// Label renders the record the way the records render themselves:
// "<id>. <title>".
func (r Resolved) Label() string {
	return fmt.Sprintf("%d. %s", r.TargetID(), r.Title())
}

// Value returns the concrete record for serialization.
func (r Resolved) Value() any {
	switch r.Kind {
	case journal.KindNote:
		return r.Note
	case journal.KindTask:
		return r.Task
	case journal.KindEvent:
		return r.Event
	}
	return nil
}

// JournalSeed is the fixture written by the demo reset: every title
// becomes a target row wrapped in an envelope, in events, tasks, notes
// order.
type JournalSeed struct {
	Events []string
	Tasks  []string
	Notes  []string
}

func (s JournalSeed) Count() int {
	return len(s.Events) + len(s.Tasks) + len(s.Notes)
}
