package interfaces

import (
	"context"

	"github.com/haguru/booknest/internal/models"
)

// UserRepository is the credential store contract: it owns uniqueness
// constraints and the atomic saved-book set operations. Lookups that find
// nothing return (nil, nil); only store failures return an error.
type UserRepository interface {
	// CreateUser persists a new user (password already hashed) and returns
	// it with the store-assigned ID. Duplicate username/email surfaces as
	// an apperror validation error naming the violated field.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)

	// GetUserByID returns the user with the given ID, or nil when absent.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail returns the user with the given email, or nil when absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsers returns all users.
	ListUsers(ctx context.Context) ([]models.User, error)

	// AddSavedBook atomically inserts book into the user's saved list,
	// keyed by BookID; inserting an already-saved BookID is a no-op. The
	// post-update user is returned, or nil when no user matches.
	AddSavedBook(ctx context.Context, userID string, book models.Book) (*models.User, error)

	// RemoveSavedBook atomically removes the entry matching bookID; an
	// absent match is a no-op, not an error. The post-update user is
	// returned, or nil when no user matches.
	RemoveSavedBook(ctx context.Context, userID string, bookID string) (*models.User, error)

	// EnsureIndices creates the unique username/email indexes.
	EnsureIndices(ctx context.Context) error

	Close(ctx context.Context) error
}
