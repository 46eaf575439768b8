package models

import "time"

type Reply struct {
	ID          int64      `json:"id" bson:"_id" db:"id"`
	Description *string    `json:"description" bson:"description" db:"description"`
	PostID      int64      `json:"-" bson:"post_id" db:"post_id"`
	CreatorID   *int64     `json:"-" bson:"creator_id" db:"creator_id"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at" bson:"updated_at" db:"updated_at"`

	Creator *UserOut    `json:"creator" bson:"-"`
	Post    *SimplePost `json:"posts" bson:"-"`
}
