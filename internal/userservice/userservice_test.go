package userservice

import (
	"context"
	"errors"
	"testing"

	"github.com/haguru/booknest/internal/apperror"
	"github.com/haguru/booknest/internal/interfaces/mocks"
	"github.com/haguru/booknest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*UserService, *mocks.MockUserRepository) {
	repo := mocks.NewMockUserRepository(t)
	return NewUserService(repo, mocks.NoopLogger{}), repo
}

func TestRegisterUser(t *testing.T) {
	t.Run("hashes the password exactly once before persistence", func(t *testing.T) {
		service, repo := newTestService(t)

		var persisted models.User
		repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			persisted = u
			return u.Username == "alice" && u.Email == "alice@x.com"
		})).Return(&models.User{ID: "user-1", Username: "alice", Email: "alice@x.com", SavedBooks: []models.Book{}}, nil)

		user, err := service.RegisterUser(context.Background(), "alice", "alice@x.com", "secret123")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "user-1", user.ID)

		// The repository sees a bcrypt hash, never the plaintext.
		assert.NotEqual(t, "secret123", persisted.HashedPassword)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(persisted.HashedPassword), []byte("secret123")))
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		service, _ := newTestService(t)

		tests := []string{"", "plainaddress", "missing@tld", "@no-local.com", "spaces in@x.com"}
		for _, email := range tests {
			_, err := service.RegisterUser(context.Background(), "alice", email, "secret123")
			require.Error(t, err, "email %q", email)
			assert.True(t, apperror.IsKind(err, apperror.Validation), "email %q", email)
		}
	})

	t.Run("rejects missing username", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.RegisterUser(context.Background(), "", "alice@x.com", "secret123")
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.Validation))
	})

	t.Run("duplicate email keeps its validation kind", func(t *testing.T) {
		service, repo := newTestService(t)

		repo.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, apperror.NewValidation("email", "already taken"))

		_, err := service.RegisterUser(context.Background(), "alice", "alice@x.com", "secret123")
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.Validation))
	})
}

func TestAuthenticateUser(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("right-pw"), bcrypt.DefaultCost)
	require.NoError(t, err)

	storedUser := &models.User{
		ID:             "user-1",
		Username:       "alice",
		Email:          "alice@x.com",
		HashedPassword: string(hashed),
		SavedBooks:     []models.Book{},
	}

	t.Run("correct credentials", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.On("GetUserByEmail", mock.Anything, "alice@x.com").Return(storedUser, nil)

		user, err := service.AuthenticateUser(context.Background(), "alice@x.com", "right-pw")
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
	})

	t.Run("unknown email fails with authentication error", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.On("GetUserByEmail", mock.Anything, "ghost@x.com").Return(nil, nil)

		_, err := service.AuthenticateUser(context.Background(), "ghost@x.com", "right-pw")
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.Authentication))
	})

	t.Run("wrong password fails with authentication error, not validation", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.On("GetUserByEmail", mock.Anything, "alice@x.com").Return(storedUser, nil)

		_, err := service.AuthenticateUser(context.Background(), "alice@x.com", "wrong-pw")
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.Authentication))
		assert.False(t, apperror.IsKind(err, apperror.Validation))
	})

	t.Run("store failure propagates uninterpreted", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.On("GetUserByEmail", mock.Anything, "alice@x.com").Return(nil, errors.New("connection reset"))

		_, err := service.AuthenticateUser(context.Background(), "alice@x.com", "right-pw")
		require.Error(t, err)
		_, tagged := apperror.KindOf(err)
		assert.False(t, tagged)
	})
}

func TestSaveBook(t *testing.T) {
	book := models.Book{BookID: "b1", Title: "T", Description: "D"}

	t.Run("passes through to the repository", func(t *testing.T) {
		service, repo := newTestService(t)
		updated := &models.User{ID: "user-1", SavedBooks: []models.Book{book}}
		repo.On("AddSavedBook", mock.Anything, "user-1", book).Return(updated, nil)

		user, err := service.SaveBook(context.Background(), "user-1", book)
		require.NoError(t, err)
		assert.Equal(t, 1, user.BookCount())
	})

	t.Run("unknown user yields nil without error", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.On("AddSavedBook", mock.Anything, "ghost", book).Return(nil, nil)

		user, err := service.SaveBook(context.Background(), "ghost", book)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestRemoveBook(t *testing.T) {
	service, repo := newTestService(t)
	updated := &models.User{ID: "user-1", SavedBooks: []models.Book{}}
	repo.On("RemoveSavedBook", mock.Anything, "user-1", "b1").Return(updated, nil)

	user, err := service.RemoveBook(context.Background(), "user-1", "b1")
	require.NoError(t, err)
	assert.Equal(t, 0, user.BookCount())
}
