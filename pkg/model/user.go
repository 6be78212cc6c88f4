package model

import "time"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User is a staff account. Reservations reference users through
// AssignedEmployers. PasswordHash is bcrypt output and never serialized.
type User struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Username     string    `json:"username" bson:"username" validate:"required,min=3,max=50"`
	PasswordHash string    `json:"-" bson:"password" validate:"required"`
	FullName     string    `json:"fullName,omitempty" bson:"fullName,omitempty" validate:"omitempty,max=100"`
	Role         string    `json:"role" bson:"role" validate:"required,oneof=admin employee"`
	IsActive     *bool     `json:"isActive" bson:"isActive" validate:"omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty" bson:"createdAt" validate:"omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty" bson:"updatedAt" validate:"omitempty"`
}

// NewUserRequest is the create payload; the plaintext password is hashed by
// the service before the User struct is built.
type NewUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"fullName,omitempty" validate:"omitempty,max=100"`
	Role     string `json:"role" validate:"required,oneof=admin employee"`
}
