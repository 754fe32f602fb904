package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "validation error with field",
			err:  NewValidation("email", "already taken"),
			want: `validation: already taken (field "email")`,
		},
		{
			name: "authentication error without field",
			err:  NewAuthentication("incorrect password"),
			want: "authentication: incorrect password",
		},
		{
			name: "not found error",
			err:  NewNotFound("user not found"),
			want: "not_found: user not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantOK   bool
	}{
		{
			name:     "direct application error",
			err:      NewAuthentication("not authenticated"),
			wantKind: Authentication,
			wantOK:   true,
		},
		{
			name:     "wrapped application error",
			err:      fmt.Errorf("register: %w", NewValidation("username", "already taken")),
			wantKind: Validation,
			wantOK:   true,
		},
		{
			name:   "plain error",
			err:    errors.New("boom"),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := KindOf(tt.err)
			if ok != tt.wantOK {
				t.Fatalf("KindOf() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && kind != tt.wantKind {
				t.Errorf("KindOf() kind = %v, want %v", kind, tt.wantKind)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("login: %w", NewAuthentication("incorrect password"))

	if !IsKind(err, Authentication) {
		t.Error("expected IsKind to match Authentication")
	}
	if IsKind(err, Validation) {
		t.Error("did not expect IsKind to match Validation")
	}
	if IsKind(errors.New("boom"), NotFound) {
		t.Error("did not expect IsKind to match a plain error")
	}
}
