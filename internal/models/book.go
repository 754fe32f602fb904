package models

// Book is a catalog book embedded in a user's saved list. It has no
// lifecycle of its own outside the owning user.
type Book struct {
	BookID      string   `bson:"bookId" json:"bookId" mapstructure:"bookId" db:"book_id"`
	Title       string   `bson:"title" json:"title" mapstructure:"title" db:"title"`
	Authors     []string `bson:"authors" json:"authors" mapstructure:"authors" db:"authors"`
	Description string   `bson:"description" json:"description" mapstructure:"description" db:"description"`
	Image       string   `bson:"image,omitempty" json:"image,omitempty" mapstructure:"image" db:"image"`
	Link        string   `bson:"link,omitempty" json:"link,omitempty" mapstructure:"link" db:"link"`
}
