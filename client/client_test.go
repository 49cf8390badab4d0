package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/totegamma/journal-playground"
)

func TestGetItemCaches(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/items/1" {
			http.NotFound(w, r)
			return
		}
		hits++
		json.NewEncoder(w).Encode(journal.Item{ID: 1, Kind: journal.KindTask, TargetID: 7, OwnerID: 1})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		item, err := c.GetItem(ctx, 1)
		if err != nil {
			t.Fatalf("get item: %v", err)
		}
		if item.ID != 1 || item.Kind != journal.KindTask {
			t.Fatalf("unexpected item: %+v", item)
		}
	}

	if hits != 1 {
		t.Fatalf("expected 1 upstream hit got %d", hits)
	}
}

func TestCreateItemErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "journal item requires an owner"})
	}))
	defer server.Close()

	c := New(server.URL)

	_, err := c.CreateItem(context.Background(), journal.KindNote, 1, 0)
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := err.Error(); !strings.Contains(got, "requires an owner") {
		t.Fatalf("error %q does not surface server message", got)
	}
}
