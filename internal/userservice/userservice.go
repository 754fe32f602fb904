// userservice.go
package userservice

import (
	"context"
	"fmt"
	"regexp"

	"github.com/haguru/booknest/internal/apperror"
	"github.com/haguru/booknest/internal/interfaces"
	"github.com/haguru/booknest/internal/models"
	"github.com/haguru/booknest/pkg/helper"

	"golang.org/x/crypto/bcrypt"
)

// emailPattern is the basic local@domain.tld check applied on registration.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserService owns the domain rules above the credential store: password
// hashing, credential verification and the saved-book operations.
type UserService struct {
	UserRepo interfaces.UserRepository
	Logger   interfaces.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(repo interfaces.UserRepository, logger interfaces.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		Logger:   logger,
	}
}

// RegisterUser validates the new account, hashes the password and persists
// the user. The plaintext password is hashed exactly once, here; the
// repository only ever sees the hash.
func (s *UserService) RegisterUser(ctx context.Context, username, email, password string) (*models.User, error) {
	funcName := helper.GetFuncName()
	s.Logger.Info("Registering user", "func", funcName, "user", username, "email", email)

	if username == "" {
		return nil, apperror.NewValidation("username", ErrMissingUsername)
	}
	if !emailPattern.MatchString(email) {
		return nil, apperror.NewValidation("email", ErrInvalidEmail)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.Logger.Error(ErrFailedToHashPassword, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToHashPassword, err)
	}

	user := models.NewUser(username, email, string(hashedPassword))

	created, err := s.UserRepo.CreateUser(ctx, *user)
	if err != nil {
		s.Logger.Error(ErrFailedToRegisterUser, "func", funcName, "user", username, "error", err)
		if apperror.IsKind(err, apperror.Validation) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrFailedToRegisterUser, err)
	}

	s.Logger.Info("User registered successfully", "func", funcName, "user", username, "ID", created.ID)
	return created, nil
}

// AuthenticateUser verifies a user's credentials and returns the user. An
// unknown email and a wrong password both fail with an authentication
// error, never a validation one.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	funcName := helper.GetFuncName()

	user, err := s.UserRepo.GetUserByEmail(ctx, email)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "email", email, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if user == nil {
		s.Logger.Warn(ErrNoUserWithEmail, "func", funcName, "email", email)
		return nil, apperror.NewAuthentication(ErrNoUserWithEmail)
	}

	// bcrypt's comparison is constant time.
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		s.Logger.Warn(ErrIncorrectPassword, "func", funcName, "email", email)
		return nil, apperror.NewAuthentication(ErrIncorrectPassword)
	}

	s.Logger.Info("User authenticated successfully", "func", funcName, "user", user.Username)
	return user, nil
}

// GetUser returns the user with the given ID, or nil when absent.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	return user, nil
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.UserRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	return users, nil
}

// SaveBook idempotently adds book to the user's saved list. The userID is
// caller supplied, matching the documented API contract; it is not derived
// from the request identity.
func (s *UserService) SaveBook(ctx context.Context, userID string, book models.Book) (*models.User, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Saving book", "func", funcName, "userID", userID, "bookID", book.BookID)

	user, err := s.UserRepo.AddSavedBook(ctx, userID, book)
	if err != nil {
		s.Logger.Error("Failed to save book", "func", funcName, "userID", userID, "error", err)
		return nil, fmt.Errorf("failed to save book: %w", err)
	}
	return user, nil
}

// RemoveBook removes the saved entry matching bookID; an absent match is a
// no-op.
func (s *UserService) RemoveBook(ctx context.Context, userID, bookID string) (*models.User, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Removing book", "func", funcName, "userID", userID, "bookID", bookID)

	user, err := s.UserRepo.RemoveSavedBook(ctx, userID, bookID)
	if err != nil {
		s.Logger.Error("Failed to remove book", "func", funcName, "userID", userID, "error", err)
		return nil, fmt.Errorf("failed to remove book: %w", err)
	}
	return user, nil
}
