package models

import "time"

type Post struct {
	ID               int64      `json:"id" bson:"_id" db:"id"`
	Title            string     `json:"title" bson:"title" db:"title"`
	Description      *string    `json:"description" bson:"description" db:"description"`
	FilePaths        []string   `json:"file_paths" bson:"file_paths" db:"file_paths"`
	TypeCategoryID   *int64     `json:"-" bson:"type_category_id" db:"type_category_id"`
	RegionCategoryID *int64     `json:"-" bson:"region_category_id" db:"region_category_id"`
	CreatorID        *int64     `json:"-" bson:"creator_id" db:"creator_id"`
	CreatedAt        time.Time  `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at" bson:"updated_at" db:"updated_at"`

	Creator        *UserOut  `json:"creator" bson:"-"`
	TypeCategory   *Category `json:"type_category" bson:"-"`
	RegionCategory *Category `json:"region_category" bson:"-"`
}

// SimplePost is the reference to a post embedded in replies and progress.
type SimplePost struct {
	ID int64 `json:"id"`
}

// PostFilter narrows post listings. Zero values disable a filter.
type PostFilter struct {
	CreatorID        int64
	TypeCategoryID   int64
	RegionCategoryID int64
	Search           string
	Page             int
	Size             int
}

// PostChanges carries the optional column updates of a post edit.
type PostChanges struct {
	Title            *string
	Description      *string
	TypeCategoryID   *int64
	RegionCategoryID *int64
	FilePaths        []string
}
