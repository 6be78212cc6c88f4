package model

import "time"

// TypePhotographie is a category of photography service (wedding, studio,
// outdoor, ...). Names are unique; the uniqueness constraint lives on the
// Mongo collection and surfaces as a duplicate-key error on insert/update.
type TypePhotographie struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	Photo       string    `json:"photo,omitempty" bson:"photo,omitempty" validate:"omitempty,max=1000"`
	IsActive    *bool     `json:"isActive" bson:"isActive" validate:"omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty" bson:"createdAt" validate:"omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" bson:"updatedAt" validate:"omitempty"`
}

type TypePhotographieUpdate struct {
	Name        string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Photo       *string `json:"photo,omitempty" validate:"omitempty,max=1000"`
	IsActive    *bool   `json:"isActive,omitempty" validate:"omitempty"`
}

func (t *TypePhotographie) Active() bool {
	return t.IsActive == nil || *t.IsActive
}
