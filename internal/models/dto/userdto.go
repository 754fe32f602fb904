package dto

import "github.com/haguru/booknest/internal/models"

// RegisterRequestDTO is the register mutation payload.
type RegisterRequestDTO struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

// LoginRequestDTO is the login mutation payload.
type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GetUserRequestDTO is the getUser query payload.
type GetUserRequestDTO struct {
	ID string `json:"_id" validate:"required"`
}

// UserDTO is the outward user shape. It never carries the password hash,
// and bookCount is computed from the saved list on the way out.
type UserDTO struct {
	ID         string        `json:"_id"`
	Username   string        `json:"username"`
	Email      string        `json:"email"`
	BookCount  int           `json:"bookCount"`
	SavedBooks []models.Book `json:"savedBooks"`
}

// FromUser converts the internal model into its API shape.
func FromUser(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	savedBooks := user.SavedBooks
	if savedBooks == nil {
		savedBooks = []models.Book{}
	}
	return &UserDTO{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		BookCount:  user.BookCount(),
		SavedBooks: savedBooks,
	}
}

// FromUsers converts a user list into its API shape.
func FromUsers(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, *FromUser(&users[i]))
	}
	return out
}

// AuthResponseDTO is returned by register and login: a freshly issued
// session token alongside the user.
type AuthResponseDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// UserResponseDTO wraps a single user result.
type UserResponseDTO struct {
	User *UserDTO `json:"user"`
}

// UsersResponseDTO wraps the listUsers result.
type UsersResponseDTO struct {
	Users []UserDTO `json:"users"`
}

// SavedBooksResponseDTO wraps the listSavedBooks result.
type SavedBooksResponseDTO struct {
	SavedBooks []models.Book `json:"savedBooks"`
}
