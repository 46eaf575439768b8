package models

// CategoryKind selects between the two category tables, which share a shape.
type CategoryKind string

const (
	CategoryType   CategoryKind = "type"
	CategoryRegion CategoryKind = "region"
)

func (k CategoryKind) Valid() bool {
	return k == CategoryType || k == CategoryRegion
}

type Category struct {
	ID        int64    `json:"id" bson:"_id" db:"id"`
	Title     string   `json:"title" bson:"title" db:"title"`
	CreatorID *int64   `json:"-" bson:"creator_id" db:"creator_id"`
	Creator   *UserOut `json:"creator" bson:"-"`
}
