package model

import (
	"time"
)

type Coupon struct {
	ID        string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Code      string     `json:"code" bson:"code" validate:"required,min=2,max=50"`
	Discount  float64    `json:"discount" bson:"discount" validate:"required,gt=0"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// CouponValidation is the advisory answer to a code lookup. The coupon is
// never reserved or consumed.
type CouponValidation struct {
	Valid    bool     `json:"valid"`
	Discount *float64 `json:"discount,omitempty"`
}
