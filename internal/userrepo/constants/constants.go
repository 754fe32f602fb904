package constants

const (
	// UsersCollection is the Mongo collection / Postgres table for users.
	UsersCollection = "users"
	// SavedBooksTable is the Postgres child table holding saved books.
	SavedBooksTable = "saved_books"
)
