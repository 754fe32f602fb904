package models

import (
	"reflect"
	"testing"
)

func TestNewUser(t *testing.T) {
	got := NewUser("alice", "alice@x.com", "hashed-pw")

	want := &User{
		Username:       "alice",
		Email:          "alice@x.com",
		HashedPassword: "hashed-pw",
		SavedBooks:     []Book{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NewUser() = %+v, want %+v", got, want)
	}
}

func TestUser_BookCount(t *testing.T) {
	tests := []struct {
		name  string
		books []Book
		want  int
	}{
		{name: "nil list", books: nil, want: 0},
		{name: "empty list", books: []Book{}, want: 0},
		{
			name: "two books",
			books: []Book{
				{BookID: "b1", Title: "T1"},
				{BookID: "b2", Title: "T2"},
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{SavedBooks: tt.books}
			if got := u.BookCount(); got != tt.want {
				t.Errorf("BookCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUser_HasBook(t *testing.T) {
	u := &User{SavedBooks: []Book{{BookID: "b1"}, {BookID: "b2"}}}

	if !u.HasBook("b1") {
		t.Error("expected HasBook(b1) to be true")
	}
	if u.HasBook("b3") {
		t.Error("expected HasBook(b3) to be false")
	}
}
