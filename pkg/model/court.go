package model

import (
	"time"
)

type Court struct {
	ID              string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Type            string     `json:"type" bson:"type" validate:"required,min=2,max=100"`
	TimeSlots       []string   `json:"time_slots" bson:"time_slots" validate:"required,min=1,dive,required"`
	PricePerSession float64    `json:"price_per_session" bson:"price_per_session" validate:"required,gt=0"`
	ImageURL        string     `json:"image_url" bson:"image_url" validate:"required,url"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
