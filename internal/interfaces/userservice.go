package interfaces

import (
	"context"

	"github.com/haguru/booknest/internal/models"
)

// UserService is the domain layer above the credential store.
type UserService interface {
	RegisterUser(ctx context.Context, username, email, password string) (*models.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	SaveBook(ctx context.Context, userID string, book models.Book) (*models.User, error)
	RemoveBook(ctx context.Context, userID, bookID string) (*models.User, error)
}
