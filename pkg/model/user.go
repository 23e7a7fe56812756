package model

import (
	"time"
)

type User struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UID       string    `json:"uid" bson:"uid" validate:"required"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,max=100"`
	PhotoURL  string    `json:"photo_url,omitempty" bson:"photo_url,omitempty" validate:"omitempty,url"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
