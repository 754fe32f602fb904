package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/haguru/booknest/internal/models"
)

func TestFromUser(t *testing.T) {
	t.Run("nil user", func(t *testing.T) {
		if got := FromUser(nil); got != nil {
			t.Errorf("FromUser(nil) = %+v, want nil", got)
		}
	})

	t.Run("nil saved list marshals as empty array", func(t *testing.T) {
		user := &models.User{ID: "u1", Username: "alice", Email: "alice@x.com"}
		got := FromUser(user)
		if got.SavedBooks == nil || len(got.SavedBooks) != 0 {
			t.Fatalf("SavedBooks = %+v, want empty slice", got.SavedBooks)
		}

		raw, err := json.Marshal(got)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		if !strings.Contains(string(raw), `"savedBooks":[]`) {
			t.Errorf("marshaled user = %s, want savedBooks as []", raw)
		}
	})

	t.Run("bookCount tracks the saved list", func(t *testing.T) {
		user := &models.User{
			ID:       "u1",
			Username: "alice",
			SavedBooks: []models.Book{
				{BookID: "b1", Title: "One"},
				{BookID: "b2", Title: "Two"},
			},
		}
		got := FromUser(user)
		if got.BookCount != 2 {
			t.Errorf("BookCount = %d, want 2", got.BookCount)
		}
	})

	t.Run("password hash never marshals", func(t *testing.T) {
		user := &models.User{ID: "u1", Username: "alice", HashedPassword: "$2a$10$hash"}
		raw, err := json.Marshal(FromUser(user))
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		if strings.Contains(string(raw), "hash") || strings.Contains(strings.ToLower(string(raw)), "password") {
			t.Errorf("marshaled user leaks password material: %s", raw)
		}
	})
}

func TestFromUsers(t *testing.T) {
	users := []models.User{
		{ID: "u1", Username: "alice"},
		{ID: "u2", Username: "bob", SavedBooks: []models.Book{{BookID: "b1", Title: "One"}}},
	}
	got := FromUsers(users)
	if len(got) != 2 {
		t.Fatalf("FromUsers returned %d entries, want 2", len(got))
	}
	if got[1].BookCount != 1 {
		t.Errorf("BookCount = %d, want 1", got[1].BookCount)
	}
}
