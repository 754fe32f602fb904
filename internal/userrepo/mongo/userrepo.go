package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/haguru/booknest/internal/apperror"
	"github.com/haguru/booknest/internal/interfaces"
	"github.com/haguru/booknest/internal/models"
	"github.com/haguru/booknest/internal/userrepo/constants"

	"github.com/go-viper/mapstructure/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	mongoClient "github.com/haguru/booknest/pkg/databases/mongo"
	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoUser is the persisted document shape. The password field holds the
// bcrypt hash; hashing happens in the service layer before the repository
// ever sees the value.
type mongoUser struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Username   string             `bson:"username"`
	Email      string             `bson:"email"`
	Password   string             `bson:"password"`
	SavedBooks []models.Book      `bson:"savedBooks"`
}

func (mu *mongoUser) toModel() *models.User {
	user := &models.User{
		ID:             mu.ID.Hex(),
		Username:       mu.Username,
		Email:          mu.Email,
		HashedPassword: mu.Password,
		SavedBooks:     mu.SavedBooks,
	}
	if user.SavedBooks == nil {
		user.SavedBooks = []models.Book{}
	}
	return user
}

// MongoUserRepository implements UserRepository using the generic DBClient.
type MongoUserRepository struct {
	dbClient interfaces.DBClient
}

// NewMongoUserRepository creates a new MongoDB repository instance.
func NewMongoUserRepository(dbClient interfaces.DBClient) (interfaces.UserRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	// Ensure the dbClient is of type MongoDBClient
	if _, ok := dbClient.(*mongoClient.MongoDBClient); !ok {
		return nil, fmt.Errorf("dbClient must be a MongoDB client")
	}
	return &MongoUserRepository{dbClient: dbClient}, nil
}

// CreateUser saves a new user to MongoDB via DBClient. Duplicate username or
// email surfaces as a validation error naming the violated field.
func (r *MongoUserRepository) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	doc := mongoUser{
		ID:         primitive.NewObjectID(),
		Username:   user.Username,
		Email:      user.Email,
		Password:   user.HashedPassword,
		SavedBooks: []models.Book{},
	}
	if user.SavedBooks != nil {
		doc.SavedBooks = user.SavedBooks
	}

	insertedID, err := r.dbClient.InsertOne(ctx, constants.UsersCollection, doc)
	if err != nil {
		// MongoDB specific duplicate key error check
		if strings.Contains(err.Error(), "E11000 duplicate key error") {
			return nil, apperror.NewValidation(duplicateKeyField(err), "already taken")
		}
		return nil, fmt.Errorf("failed to add user to MongoDB: %w", err)
	}

	objID, ok := insertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to assert inserted ID to ObjectID")
	}
	doc.ID = objID
	return doc.toModel(), nil
}

// GetUserByID retrieves a user from MongoDB by its hex ObjectID.
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed ID cannot match any document.
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// GetUserByEmail retrieves a user from MongoDB by email.
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc mongoUser
	err := r.dbClient.FindOne(ctx, constants.UsersCollection, filter, &doc)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user from MongoDB: %w", err)
	}
	return doc.toModel(), nil
}

// ListUsers returns all users in the collection.
func (r *MongoUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	docs, err := r.dbClient.FindMany(ctx, constants.UsersCollection, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users from MongoDB: %w", err)
	}

	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		user, err := decodeUserDocument(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

// AddSavedBook inserts book into the user's saved list keyed by bookId. The
// guarded $push is a single atomic read-modify-write on the server: the
// filter excludes documents that already hold the bookId, so concurrent
// saves cannot race into duplicates. The current user document is returned
// regardless of whether the insert happened.
func (r *MongoUserRepository) AddSavedBook(ctx context.Context, userID string, book models.Book) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}

	filter := bson.M{
		"_id":              oid,
		"savedBooks.bookId": bson.M{"$ne": book.BookID},
	}
	update := bson.M{"$push": bson.M{"savedBooks": book}}

	if _, err := r.dbClient.UpdateOne(ctx, constants.UsersCollection, filter, update); err != nil {
		return nil, fmt.Errorf("failed to save book in MongoDB: %w", err)
	}

	// Zero matches means either the book was already saved or the user does
	// not exist; the follow-up read distinguishes the two.
	return r.findOne(ctx, bson.M{"_id": oid})
}

// RemoveSavedBook removes the saved entry matching bookID. An absent match
// is a no-op; the post-update user document is returned.
func (r *MongoUserRepository) RemoveSavedBook(ctx context.Context, userID string, bookID string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}

	filter := bson.M{"_id": oid}
	update := bson.M{"$pull": bson.M{"savedBooks": bson.M{"bookId": bookID}}}

	var doc mongoUser
	err = r.dbClient.FindOneAndUpdate(ctx, constants.UsersCollection, filter, update, &doc)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to remove book in MongoDB: %w", err)
	}
	return doc.toModel(), nil
}

// EnsureIndices creates unique indices for username and email.
func (r *MongoUserRepository) EnsureIndices(ctx context.Context) error {
	for _, field := range []string{"username", "email"} {
		indexModel := mongosdk.IndexModel{
			Keys:    bson.M{field: 1},
			Options: options.Index().SetUnique(true),
		}
		if err := r.dbClient.EnsureSchema(ctx, constants.UsersCollection, indexModel); err != nil {
			return err
		}
	}
	return nil
}

// Close disconnects the MongoDB client.
func (r *MongoUserRepository) Close(ctx context.Context) error {
	return r.dbClient.Disconnect(ctx)
}

// decodeUserDocument converts a generic FindMany document into a User. The
// ObjectID is lifted out before mapstructure decodes the remaining fields.
func decodeUserDocument(doc interfaces.Document) (*models.User, error) {
	docMap, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected document type %T", doc)
	}

	var id string
	if oid, ok := docMap["_id"].(primitive.ObjectID); ok {
		id = oid.Hex()
	}

	fields := make(map[string]interface{}, len(docMap))
	for key, value := range docMap {
		if key == "_id" {
			continue
		}
		fields[key] = value
	}

	var user models.User
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "bson",
		WeaklyTypedInput: true,
		Result:           &user,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build document decoder: %w", err)
	}
	if err := decoder.Decode(fields); err != nil {
		return nil, fmt.Errorf("failed to decode user document: %w", err)
	}

	user.ID = id
	if user.SavedBooks == nil {
		user.SavedBooks = []models.Book{}
	}
	return &user, nil
}

// duplicateKeyField maps a Mongo duplicate-key error onto the violated
// field by inspecting the index name in the message.
func duplicateKeyField(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "email") {
		return "email"
	}
	if strings.Contains(msg, "username") {
		return "username"
	}
	return ""
}
