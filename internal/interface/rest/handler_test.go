package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/journal-playground"
	"github.com/totegamma/journal-playground/internal/domain"
	"github.com/totegamma/journal-playground/internal/usecase"
)

// --- mocks ---

type stubStore struct {
	notes  map[int64]domain.Note
	tasks  map[int64]domain.Task
	events map[int64]domain.Event
	items  map[int64]domain.JournalItem
	parent map[int64]int64
	nextID int64
}

func newStubStore() *stubStore {
	return &stubStore{
		notes:  map[int64]domain.Note{},
		tasks:  map[int64]domain.Task{},
		events: map[int64]domain.Event{},
		items:  map[int64]domain.JournalItem{},
		parent: map[int64]int64{},
	}
}

func (s *stubStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *stubStore) CreateNote(ctx context.Context, title string) (domain.Note, error) {
	note := domain.Note{ID: s.id(), Title: title}
	s.notes[note.ID] = note
	return note, nil
}

func (s *stubStore) GetNote(ctx context.Context, id int64) (domain.Note, error) {
	note, ok := s.notes[id]
	if !ok {
		return domain.Note{}, domain.NotFoundError{Resource: "note"}
	}
	return note, nil
}

func (s *stubStore) DeleteNote(ctx context.Context, id int64) error {
	delete(s.notes, id)
	return nil
}

func (s *stubStore) CreateTask(ctx context.Context, title string, deadline *time.Time) (domain.Task, error) {
	task := domain.Task{ID: s.id(), Title: title, Deadline: deadline}
	s.tasks[task.ID] = task
	return task, nil
}

func (s *stubStore) GetTask(ctx context.Context, id int64) (domain.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, domain.NotFoundError{Resource: "task"}
	}
	return task, nil
}

func (s *stubStore) DeleteTask(ctx context.Context, id int64) error {
	delete(s.tasks, id)
	return nil
}

func (s *stubStore) CreateEvent(ctx context.Context, title string, start, end *time.Time) (domain.Event, error) {
	event := domain.Event{ID: s.id(), Title: title, StartDate: start, EndDate: end}
	s.events[event.ID] = event
	return event, nil
}

func (s *stubStore) GetEvent(ctx context.Context, id int64) (domain.Event, error) {
	event, ok := s.events[id]
	if !ok {
		return domain.Event{}, domain.NotFoundError{Resource: "event"}
	}
	return event, nil
}

func (s *stubStore) DeleteEvent(ctx context.Context, id int64) error {
	delete(s.events, id)
	return nil
}

func (s *stubStore) Create(ctx context.Context, item domain.JournalItem) (domain.JournalItem, error) {
	item.ID = s.id()
	item.Descriptor = item.ItemType
	item.CreatedAt = time.Now()
	s.items[item.ID] = item
	return item, nil
}

func (s *stubStore) Get(ctx context.Context, id int64) (domain.JournalItem, error) {
	item, ok := s.items[id]
	if !ok {
		return domain.JournalItem{}, domain.NotFoundError{Resource: "journal item"}
	}
	return item, nil
}

func (s *stubStore) ListByOwner(ctx context.Context, ownerID int64) ([]domain.JournalItem, error) {
	var result []domain.JournalItem
	for _, item := range s.items {
		if item.OwnerID == ownerID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (s *stubStore) ListByTarget(ctx context.Context, kind journal.Kind, targetID int64) ([]domain.JournalItem, error) {
	var result []domain.JournalItem
	for _, item := range s.items {
		if item.ItemType == kind && item.TargetID == targetID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (s *stubStore) Delete(ctx context.Context, id int64) error {
	delete(s.items, id)
	return nil
}

func (s *stubStore) AddChild(ctx context.Context, parentID, childID int64) error {
	s.parent[childID] = parentID
	return nil
}

func (s *stubStore) Children(ctx context.Context, parentID int64) ([]domain.JournalItem, error) {
	var result []domain.JournalItem
	for child, parent := range s.parent {
		if parent == parentID {
			result = append(result, s.items[child])
		}
	}
	return result, nil
}

func (s *stubStore) Parent(ctx context.Context, childID int64) (domain.JournalItem, error) {
	parentID, ok := s.parent[childID]
	if !ok {
		return domain.JournalItem{}, domain.NotFoundError{Resource: "parent"}
	}
	return s.items[parentID], nil
}

func (s *stubStore) ResetJournal(ctx context.Context, ownerID int64, seed domain.JournalSeed) ([]domain.JournalItem, error) {
	s.notes = map[int64]domain.Note{}
	s.tasks = map[int64]domain.Task{}
	s.events = map[int64]domain.Event{}
	s.items = map[int64]domain.JournalItem{}
	s.parent = map[int64]int64{}

	var result []domain.JournalItem
	for _, title := range seed.Events {
		event, _ := s.CreateEvent(ctx, title, nil, nil)
		item, _ := s.Create(ctx, domain.JournalItem{ItemType: journal.KindEvent, OwnerID: ownerID, TargetID: event.ID})
		result = append(result, item)
	}
	for _, title := range seed.Tasks {
		task, _ := s.CreateTask(ctx, title, nil)
		item, _ := s.Create(ctx, domain.JournalItem{ItemType: journal.KindTask, OwnerID: ownerID, TargetID: task.ID})
		result = append(result, item)
	}
	for _, title := range seed.Notes {
		note, _ := s.CreateNote(ctx, title)
		item, _ := s.Create(ctx, domain.JournalItem{ItemType: journal.KindNote, OwnerID: ownerID, TargetID: note.ID})
		result = append(result, item)
	}
	return result, nil
}

type stubUsers struct{}

func (stubUsers) Get(ctx context.Context, id int64) (domain.User, error) {
	if id != 1 {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return domain.User{ID: 1, Name: "demo"}, nil
}

func (stubUsers) First(ctx context.Context) (domain.User, error) {
	return domain.User{ID: 1, Name: "demo"}, nil
}

func newTestServer() (*echo.Echo, *stubStore) {
	store := newStubStore()
	uc := usecase.NewJournalUsecase(store, store, stubUsers{}, usecase.NewRegistry(store), nil, nil)

	e := echo.New()
	NewHandler(uc, nil).RegisterRoutes(e)
	return e, store
}

func do(e *echo.Echo, method, path string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)
	return res
}

// --- tests ---

func TestCreateAndGetItem(t *testing.T) {
	e, _ := newTestServer()

	res := do(e, http.MethodPost, "/tasks", journal.CreateTaskRequest{Title: "Walk the dog"})
	if res.Code != http.StatusOK {
		t.Fatalf("create task: expected 200 got %d", res.Code)
	}
	var task domain.Task
	if err := json.Unmarshal(res.Body.Bytes(), &task); err != nil {
		t.Fatalf("decode task: %v", err)
	}

	res = do(e, http.MethodPost, "/items", journal.CreateItemRequest{
		Kind:     journal.KindTask,
		TargetID: task.ID,
		OwnerID:  1,
	})
	if res.Code != http.StatusOK {
		t.Fatalf("create item: expected 200 got %d: %s", res.Code, res.Body.String())
	}
	var item journal.Item
	if err := json.Unmarshal(res.Body.Bytes(), &item); err != nil {
		t.Fatalf("decode item: %v", err)
	}

	res = do(e, http.MethodGet, fmt.Sprintf("/items/%d", item.ID), nil)
	if res.Code != http.StatusOK {
		t.Fatalf("get item: expected 200 got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Walk the dog") {
		t.Fatalf("resolved content missing: %s", res.Body.String())
	}
}

func TestCreateItemMissingOwner(t *testing.T) {
	e, _ := newTestServer()

	res := do(e, http.MethodPost, "/notes", journal.CreateNoteRequest{Title: "Avoid Main St."})
	var note domain.Note
	_ = json.Unmarshal(res.Body.Bytes(), &note)

	res = do(e, http.MethodPost, "/items", journal.CreateItemRequest{
		Kind:     journal.KindNote,
		TargetID: note.ID,
	})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", res.Code)
	}
}

func TestGetItemDangling(t *testing.T) {
	e, _ := newTestServer()

	res := do(e, http.MethodPost, "/notes", journal.CreateNoteRequest{Title: "gone"})
	var note domain.Note
	_ = json.Unmarshal(res.Body.Bytes(), &note)

	res = do(e, http.MethodPost, "/items", journal.CreateItemRequest{
		Kind:     journal.KindNote,
		TargetID: note.ID,
		OwnerID:  1,
	})
	var item journal.Item
	_ = json.Unmarshal(res.Body.Bytes(), &item)

	res = do(e, http.MethodDelete, fmt.Sprintf("/notes/%d", note.ID), nil)
	if res.Code != http.StatusOK {
		t.Fatalf("delete note: expected 200 got %d", res.Code)
	}

	res = do(e, http.MethodGet, fmt.Sprintf("/items/%d", item.ID), nil)
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "dangling reference") {
		t.Fatalf("expected dangling reference error, got %s", res.Body.String())
	}
}

func TestSummary(t *testing.T) {
	e, _ := newTestServer()

	res := do(e, http.MethodPost, "/tasks", journal.CreateTaskRequest{Title: "Walk the dog"})
	var task domain.Task
	_ = json.Unmarshal(res.Body.Bytes(), &task)

	res = do(e, http.MethodPost, "/items", journal.CreateItemRequest{
		Kind:     journal.KindTask,
		TargetID: task.ID,
		OwnerID:  1,
	})
	var item journal.Item
	_ = json.Unmarshal(res.Body.Bytes(), &item)

	res = do(e, http.MethodGet, fmt.Sprintf("/items/%d/summary", item.ID), nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.Code)
	}

	var summary journal.Summary
	if err := json.Unmarshal(res.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	for _, want := range []string{"demo", "Task", "Walk the dog"} {
		if !strings.Contains(summary.Summary, want) {
			t.Fatalf("summary %q missing %q", summary.Summary, want)
		}
	}
}

func TestListItemsByTarget(t *testing.T) {
	e, _ := newTestServer()

	res := do(e, http.MethodPost, "/tasks", journal.CreateTaskRequest{Title: "listed"})
	var task domain.Task
	_ = json.Unmarshal(res.Body.Bytes(), &task)

	do(e, http.MethodPost, "/items", journal.CreateItemRequest{Kind: journal.KindTask, TargetID: task.ID, OwnerID: 1})
	do(e, http.MethodPost, "/items", journal.CreateItemRequest{Kind: journal.KindTask, TargetID: task.ID, OwnerID: 1})

	res = do(e, http.MethodGet, fmt.Sprintf("/items?kind=T&target=%d", task.ID), nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.Code)
	}

	var items []journal.Item
	if err := json.Unmarshal(res.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items got %d", len(items))
	}
}

func TestResetJournalEndpoint(t *testing.T) {
	e, store := newTestServer()

	counts := make([]int, 2)
	for i := range counts {
		res := do(e, http.MethodGet, "/journal", nil)
		if res.Code != http.StatusOK {
			t.Fatalf("reset %d: expected 200 got %d: %s", i, res.Code, res.Body.String())
		}
		var items []journal.Item
		if err := json.Unmarshal(res.Body.Bytes(), &items); err != nil {
			t.Fatalf("decode items: %v", err)
		}
		counts[i] = len(items)
	}

	if counts[0] != counts[1] {
		t.Fatalf("reset is not idempotent: %d then %d", counts[0], counts[1])
	}
	if counts[0] != usecase.DemoSeed.Count() {
		t.Fatalf("expected %d items got %d", usecase.DemoSeed.Count(), counts[0])
	}
	if len(store.events) != 1 || len(store.tasks) != 2 || len(store.notes) != 2 {
		t.Fatalf("unexpected target counts: %d events %d tasks %d notes",
			len(store.events), len(store.tasks), len(store.notes))
	}
}

func TestChildrenEndpoints(t *testing.T) {
	e, _ := newTestServer()

	res := do(e, http.MethodPost, "/tasks", journal.CreateTaskRequest{Title: "parent"})
	var task domain.Task
	_ = json.Unmarshal(res.Body.Bytes(), &task)
	res = do(e, http.MethodPost, "/events", journal.CreateEventRequest{Title: "child"})
	var event domain.Event
	_ = json.Unmarshal(res.Body.Bytes(), &event)

	res = do(e, http.MethodPost, "/items", journal.CreateItemRequest{Kind: journal.KindTask, TargetID: task.ID, OwnerID: 1})
	var parent journal.Item
	_ = json.Unmarshal(res.Body.Bytes(), &parent)
	res = do(e, http.MethodPost, "/items", journal.CreateItemRequest{Kind: journal.KindEvent, TargetID: event.ID, OwnerID: 1})
	var child journal.Item
	_ = json.Unmarshal(res.Body.Bytes(), &child)

	res = do(e, http.MethodPost, fmt.Sprintf("/items/%d/children", parent.ID), journal.AddChildRequest{ChildID: child.ID})
	if res.Code != http.StatusOK {
		t.Fatalf("add child: expected 200 got %d", res.Code)
	}

	res = do(e, http.MethodGet, fmt.Sprintf("/items/%d/children", parent.ID), nil)
	var children []journal.Item
	_ = json.Unmarshal(res.Body.Bytes(), &children)
	if len(children) != 1 || children[0].ID != child.ID {
		t.Fatalf("unexpected children: %+v", children)
	}

	res = do(e, http.MethodGet, fmt.Sprintf("/items/%d/parent", child.ID), nil)
	var gotParent journal.Item
	_ = json.Unmarshal(res.Body.Bytes(), &gotParent)
	if gotParent.ID != parent.ID {
		t.Fatalf("expected parent %d got %d", parent.ID, gotParent.ID)
	}
}
