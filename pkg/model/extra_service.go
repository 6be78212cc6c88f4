package model

import "time"

// ExtraService is an add-on offering (prints, albums, drone footage) shown
// alongside packs. Soft-deleted like packs.
type ExtraService struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	Photo       string    `json:"photo,omitempty" bson:"photo,omitempty" validate:"omitempty,max=1000"`
	IsActive    *bool     `json:"isActive" bson:"isActive" validate:"omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty" bson:"createdAt" validate:"omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" bson:"updatedAt" validate:"omitempty"`
}

type ExtraServiceUpdate struct {
	Name        string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Photo       *string `json:"photo,omitempty" validate:"omitempty,max=1000"`
	IsActive    *bool   `json:"isActive,omitempty" validate:"omitempty"`
}

func (s *ExtraService) Active() bool {
	return s.IsActive == nil || *s.IsActive
}
