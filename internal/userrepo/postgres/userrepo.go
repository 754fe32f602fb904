package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq" // PostgreSQL driver for database/sql

	"github.com/haguru/booknest/internal/apperror"
	"github.com/haguru/booknest/internal/interfaces"
	"github.com/haguru/booknest/internal/models"
	"github.com/haguru/booknest/internal/userrepo/constants"
	"github.com/haguru/booknest/pkg/databases/postgres"

	"github.com/google/uuid"
)

const uniqueViolation = "23505"

// Saved books live in a child table keyed by (user_id, book_id); seq keeps
// insertion order. ON CONFLICT DO NOTHING gives the idempotent-insert
// semantics in a single atomic statement.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS saved_books (
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		book_id TEXT NOT NULL,
		title TEXT NOT NULL,
		authors TEXT[] NOT NULL DEFAULT '{}',
		description TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL DEFAULT '',
		seq BIGSERIAL,
		PRIMARY KEY (user_id, book_id)
	)`,
}

// PostgresUserRepository implements UserRepository for PostgreSQL. It
// depends on the concrete client: the saved-book set operations are plain
// SQL statements, not generic document calls.
type PostgresUserRepository struct {
	dbClient *postgres.PostgresDatabaseClient
}

// NewPostgresUserRepository creates a new PostgreSQL repository instance.
func NewPostgresUserRepository(dbClient *postgres.PostgresDatabaseClient) (interfaces.UserRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &PostgresUserRepository{dbClient: dbClient}, nil
}

// CreateUser saves a new user to PostgreSQL. Duplicate username or email
// surfaces as a validation error naming the violated field.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	id := uuid.New().String()

	query := fmt.Sprintf("INSERT INTO %s (id, username, email, password) VALUES ($1, $2, $3, $4)",
		constants.UsersCollection) // #nosec G201 -- table name is a package constant

	_, err := r.dbClient.DB().ExecContext(ctx, query, id, user.Username, user.Email, user.HashedPassword)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperror.NewValidation(violatedField(pgErr), "already taken")
		}
		return nil, fmt.Errorf("failed to add user to PostgreSQL: %w", err)
	}

	created := user
	created.ID = id
	created.SavedBooks = []models.Book{}
	return &created, nil
}

// GetUserByID retrieves a user with its saved books, or nil when absent.
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		// A malformed ID cannot match any row.
		return nil, nil
	}
	return r.findOne(ctx, "id", id)
}

// GetUserByEmail retrieves a user with its saved books, or nil when absent.
func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, nil
	}
	return r.findOne(ctx, "email", email)
}

func (r *PostgresUserRepository) findOne(ctx context.Context, column, value string) (*models.User, error) {
	query := fmt.Sprintf("SELECT id, username, email, password FROM %s WHERE %s = $1",
		constants.UsersCollection, column) // #nosec G201 -- identifiers are package constants

	var user models.User
	err := r.dbClient.DB().QueryRowContext(ctx, query, value).
		Scan(&user.ID, &user.Username, &user.Email, &user.HashedPassword)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user from PostgreSQL: %w", err)
	}

	books, err := r.savedBooks(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.SavedBooks = books
	return &user, nil
}

// ListUsers returns all users with their saved books.
func (r *PostgresUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	query := fmt.Sprintf("SELECT id, username, email, password FROM %s ORDER BY username",
		constants.UsersCollection) // #nosec G201

	rows, err := r.dbClient.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users from PostgreSQL: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.HashedPassword); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	for i := range users {
		books, err := r.savedBooks(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		users[i].SavedBooks = books
	}
	return users, nil
}

// AddSavedBook inserts book into the user's saved set. The ON CONFLICT
// clause makes the insert idempotent in one atomic statement.
func (r *PostgresUserRepository) AddSavedBook(ctx context.Context, userID string, book models.Book) (*models.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (user_id, book_id, title, authors, description, image, link)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, book_id) DO NOTHING`,
		constants.SavedBooksTable) // #nosec G201

	_, err := r.dbClient.DB().ExecContext(ctx, query,
		userID, book.BookID, book.Title, pq.Array(book.Authors), book.Description, book.Image, book.Link)
	if err != nil {
		var pgErr *pq.Error
		// Foreign key violation means the user does not exist.
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to save book in PostgreSQL: %w", err)
	}

	return r.findOne(ctx, "id", userID)
}

// RemoveSavedBook removes the matching saved entry; an absent match is a
// no-op, not an error.
func (r *PostgresUserRepository) RemoveSavedBook(ctx context.Context, userID string, bookID string) (*models.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, nil
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE user_id = $1 AND book_id = $2",
		constants.SavedBooksTable) // #nosec G201

	if _, err := r.dbClient.DB().ExecContext(ctx, query, userID, bookID); err != nil {
		return nil, fmt.Errorf("failed to remove book in PostgreSQL: %w", err)
	}

	return r.findOne(ctx, "id", userID)
}

func (r *PostgresUserRepository) savedBooks(ctx context.Context, userID string) ([]models.Book, error) {
	query := fmt.Sprintf(`SELECT book_id, title, authors, description, image, link
		FROM %s WHERE user_id = $1 ORDER BY seq`,
		constants.SavedBooksTable) // #nosec G201

	rows, err := r.dbClient.DB().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved books: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		var book models.Book
		var authors pq.StringArray
		if err := rows.Scan(&book.BookID, &book.Title, &authors, &book.Description, &book.Image, &book.Link); err != nil {
			return nil, fmt.Errorf("failed to scan saved book row: %w", err)
		}
		book.Authors = authors
		books = append(books, book)
	}
	return books, rows.Err()
}

// EnsureIndices creates the users and saved_books tables with their unique
// constraints.
func (r *PostgresUserRepository) EnsureIndices(ctx context.Context) error {
	return r.dbClient.EnsureSchema(ctx, schemaStatements...)
}

// Close closes the PostgreSQL database connection.
func (r *PostgresUserRepository) Close(ctx context.Context) error {
	return r.dbClient.Disconnect(ctx)
}

// violatedField maps a unique violation onto the user-facing field name
// using the constraint name.
func violatedField(pgErr *pq.Error) string {
	if strings.Contains(pgErr.Constraint, "email") {
		return "email"
	}
	if strings.Contains(pgErr.Constraint, "username") {
		return "username"
	}
	return ""
}
