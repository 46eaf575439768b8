package models

import "time"

// Progress is the per-post tracking record that owns RoRo lines.
type Progress struct {
	ID        int64      `json:"id" bson:"_id" db:"id"`
	Title     *string    `json:"title" bson:"title" db:"title"`
	PostID    int64      `json:"-" bson:"post_id" db:"post_id"`
	CreatorID *int64     `json:"-" bson:"creator_id" db:"creator_id"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" bson:"updated_at" db:"updated_at"`

	Creator *UserOut        `json:"creator" bson:"-"`
	Post    *SimplePost     `json:"post" bson:"-"`
	RoRo    []*ProgressRoRo `json:"progress_detail_roro" bson:"-"`
}
