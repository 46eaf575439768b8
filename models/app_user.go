package models

import "time"

const (
	RoleUser  = "user"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

type AppUser struct {
	ID           int64     `json:"id" bson:"_id" db:"id"`
	Username     string    `json:"username" bson:"username" db:"username"`
	Email        string    `json:"email" bson:"email" db:"email"`
	Role         string    `json:"role" bson:"role" db:"role"`
	PasswordHash string    `json:"-" bson:"password_hash" db:"hashed_password"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

// UserOut is the public shape of a user embedded in other responses.
type UserOut struct {
	ID       int64  `json:"id" bson:"_id"`
	Username string `json:"username" bson:"username"`
	Email    string `json:"email" bson:"email"`
	Role     string `json:"role" bson:"role"`
}

func (u *AppUser) Out() *UserOut {
	if u == nil {
		return nil
	}
	return &UserOut{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

// IsStaff reports whether the user may use staff-only endpoints.
func (u *AppUser) IsStaff() bool {
	return u != nil && (u.Role == RoleStaff || u.Role == RoleAdmin)
}

func (u *AppUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the three known tiers.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleStaff, RoleAdmin:
		return true
	}
	return false
}
