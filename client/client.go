package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/totegamma/journal-playground"
)

const defaultTimeout = 3 * time.Second

// Client is a typed HTTP client for the journal API. Resolved items and
// summaries are cached in-process for a short while.
type Client struct {
	client  *http.Client
	cache   *cache.Cache
	baseURL string
}

func New(baseURL string) *Client {
	return &Client{
		client:  &http.Client{Timeout: defaultTimeout},
		cache:   cache.New(1*time.Minute, 5*time.Minute),
		baseURL: baseURL,
	}
}

// Note, Task and EventRecord mirror the server's target payloads.
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

type EventRecord struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

func (c *Client) httpRequest(ctx context.Context, method, path string, payload, response any) error {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to perform request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if response == nil {
		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(response)
	if err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}

	return nil
}

// cachedGet serves path from the cache when possible.
func (c *Client) cachedGet(ctx context.Context, path string, response any) error {
	if cached, found := c.cache.Get(path); found {
		raw := cached.([]byte)
		return json.Unmarshal(raw, response)
	}

	if err := c.httpRequest(ctx, http.MethodGet, path, nil, response); err != nil {
		return err
	}

	raw, err := json.Marshal(response)
	if err == nil {
		c.cache.Set(path, raw, cache.DefaultExpiration)
	}
	return nil
}

func (c *Client) CreateNote(ctx context.Context, title string) (Note, error) {
	var note Note
	err := c.httpRequest(ctx, http.MethodPost, "/notes", journal.CreateNoteRequest{Title: title}, &note)
	return note, err
}

func (c *Client) CreateTask(ctx context.Context, title string, deadline *time.Time) (Task, error) {
	var task Task
	err := c.httpRequest(ctx, http.MethodPost, "/tasks", journal.CreateTaskRequest{Title: title, Deadline: deadline}, &task)
	return task, err
}

func (c *Client) CreateEvent(ctx context.Context, title string, start, end *time.Time) (EventRecord, error) {
	var event EventRecord
	err := c.httpRequest(ctx, http.MethodPost, "/events", journal.CreateEventRequest{Title: title, StartDate: start, EndDate: end}, &event)
	return event, err
}

func (c *Client) CreateItem(ctx context.Context, kind journal.Kind, targetID, ownerID int64) (journal.Item, error) {
	var item journal.Item
	err := c.httpRequest(ctx, http.MethodPost, "/items", journal.CreateItemRequest{
		Kind:     kind,
		TargetID: targetID,
		OwnerID:  ownerID,
	}, &item)
	return item, err
}

// GetItem returns the envelope with its resolved content.
func (c *Client) GetItem(ctx context.Context, id int64) (journal.Item, error) {
	var item journal.Item
	err := c.cachedGet(ctx, fmt.Sprintf("/items/%d", id), &item)
	return item, err
}

func (c *Client) GetSummary(ctx context.Context, id int64) (journal.Summary, error) {
	var summary journal.Summary
	err := c.cachedGet(ctx, fmt.Sprintf("/items/%d/summary", id), &summary)
	return summary, err
}

func (c *Client) AddChild(ctx context.Context, parentID, childID int64) error {
	return c.httpRequest(ctx, http.MethodPost, fmt.Sprintf("/items/%d/children", parentID), journal.AddChildRequest{ChildID: childID}, nil)
}

func (c *Client) Children(ctx context.Context, parentID int64) ([]journal.Item, error) {
	var items []journal.Item
	err := c.httpRequest(ctx, http.MethodGet, fmt.Sprintf("/items/%d/children", parentID), nil, &items)
	return items, err
}

// ResetJournal triggers the demo reset and returns the recreated items.
func (c *Client) ResetJournal(ctx context.Context) ([]journal.Item, error) {
	var items []journal.Item
	err := c.httpRequest(ctx, http.MethodGet, "/journal", nil, &items)
	return items, err
}
