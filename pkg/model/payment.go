package model

import (
	"time"
)

// Payments have a single status; the record is immutable once created.
const PaymentStatusCompleted = "completed"

type Payment struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BookingID   string    `json:"booking_id" bson:"booking_id" validate:"required,mongodb"`
	UserEmail   string    `json:"user_email" bson:"user_email" validate:"required,email"`
	Amount      float64   `json:"amount" bson:"amount" validate:"required,gt=0"`
	CouponCode  string    `json:"coupon_code,omitempty" bson:"coupon_code,omitempty" validate:"omitempty,max=50"`
	SessionDate string    `json:"session_date,omitempty" bson:"session_date,omitempty"`
	Status      string    `json:"status" bson:"status" validate:"omitempty,eq=completed"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// PaymentWithBooking is a payment joined with its booking for history views.
// Booking is nil when the booking has since been deleted.
type PaymentWithBooking struct {
	Payment `bson:",inline"`
	Booking *Booking `json:"booking,omitempty" bson:"booking,omitempty"`
}
