package model

import "time"

// Pack is a priced bundle of photography features offered to customers.
// Packs are never physically removed; deletion flips IsActive off so that
// existing reservations keep a resolvable reference.
type Pack struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	Price       float64   `json:"price" bson:"price" validate:"min=0"`
	Features    []string  `json:"features" bson:"features" validate:"required,min=1,dive,required"`
	Photo       string    `json:"photo,omitempty" bson:"photo,omitempty" validate:"omitempty"`
	IsActive    *bool     `json:"isActive" bson:"isActive" validate:"omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty" bson:"createdAt" validate:"omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" bson:"updatedAt" validate:"omitempty"`
}

type PackUpdate struct {
	Name        string    `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=500"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,min=0"`
	Features    *[]string `json:"features,omitempty" validate:"omitempty,min=1,dive,required"`
	Photo       *string   `json:"photo,omitempty" validate:"omitempty"`
	IsActive    *bool     `json:"isActive,omitempty" validate:"omitempty"`
}

func (p *Pack) Active() bool {
	return p.IsActive == nil || *p.IsActive
}
