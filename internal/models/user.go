package models

// User represents an internal user model for the application/database.
// HashedPassword holds the bcrypt hash only; the plaintext password never
// reaches this struct.
type User struct {
	ID             string `bson:"-" mapstructure:"id" db:"id"`
	Username       string `bson:"username" mapstructure:"username" db:"username"`
	Email          string `bson:"email" mapstructure:"email" db:"email"`
	HashedPassword string `bson:"password" mapstructure:"password" db:"password"`
	SavedBooks     []Book `bson:"savedBooks" mapstructure:"savedBooks" db:"-"`
}

// NewUser creates a new User instance with an empty saved-book list.
// Note: No validation is performed here.
func NewUser(username, email, hashedPassword string) *User {
	return &User{
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		SavedBooks:     []Book{},
	}
}

// BookCount is derived from the saved list; it is never stored.
func (u *User) BookCount() int {
	return len(u.SavedBooks)
}

// HasBook reports whether a book with the given catalog ID is already saved.
func (u *User) HasBook(bookID string) bool {
	for _, b := range u.SavedBooks {
		if b.BookID == bookID {
			return true
		}
	}
	return false
}
