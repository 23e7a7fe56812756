package model

import (
	"time"
)

type Announcement struct {
	ID        string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title     string     `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Message   string     `json:"message" bson:"message" validate:"required,min=2,max=2000"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
