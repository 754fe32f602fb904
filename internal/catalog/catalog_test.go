package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/haguru/booknest/internal/interfaces/mocks"
	"github.com/haguru/booknest/internal/models"
)

const volumesPayload = `{
	"items": [
		{
			"id": "b1",
			"volumeInfo": {
				"title": "The Go Programming Language",
				"authors": ["Alan Donovan", "Brian Kernighan"],
				"description": "A book about Go.",
				"imageLinks": {"thumbnail": "http://books.example.com/thumb?id=b1&zoom=1&edge=curl"},
				"infoLink": "http://books.example.com/info?id=b1"
			}
		},
		{
			"id": "b2",
			"volumeInfo": {
				"title": "Untitled Draft"
			}
		}
	]
}`

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "go programming" {
			t.Errorf("query param q = %q, want %q", got, "go programming")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(volumesPayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, mocks.NoopLogger{})
	books, err := client.Search(context.Background(), "go programming")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := []models.Book{
		{
			BookID:      "b1",
			Title:       "The Go Programming Language",
			Authors:     []string{"Alan Donovan", "Brian Kernighan"},
			Description: "A book about Go.",
			Image:       "http://books.example.com/thumb?id=b1&zoom=0&edge=curl",
			Link:        "http://books.example.com/info?id=b1",
		},
		{
			BookID: "b2",
			Title:  "Untitled Draft",
		},
	}
	if !reflect.DeepEqual(books, want) {
		t.Errorf("Search() = %+v, want %+v", books, want)
	}
}

func TestSearch_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, mocks.NoopLogger{})
	books, err := client.Search(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(books) != 0 {
		t.Errorf("Search() returned %d books, want 0", len(books))
	}
}

func TestSearch_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, mocks.NoopLogger{})
	if _, err := client.Search(context.Background(), "anything"); err == nil {
		t.Fatal("Search() expected error on upstream failure, got nil")
	}
}

func TestSearch_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, mocks.NoopLogger{})
	if _, err := client.Search(context.Background(), "anything"); err == nil {
		t.Fatal("Search() expected error on malformed response, got nil")
	}
}
