package model

import (
	"time"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusConfirmed BookingStatus = "confirmed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusConfirmed:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from s to next. Statuses
// only ever move forward along pending -> approved -> confirmed; re-applying
// the current approved/confirmed status succeeds again, moving backward never
// does. Confirming straight from pending is allowed: payment processing does
// not require prior approval.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusConfirmed
	case StatusApproved:
		return next == StatusApproved || next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusConfirmed
	}
	return false
}

// Booking ties a user to a court session. PaymentID is set if and only if the
// booking is confirmed.
type Booking struct {
	ID          string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserEmail   string        `json:"user_email" bson:"user_email" validate:"required,email"`
	CourtID     string        `json:"court_id,omitempty" bson:"court_id,omitempty" validate:"omitempty,mongodb"`
	CourtType   string        `json:"court_type,omitempty" bson:"court_type,omitempty" validate:"omitempty,max=100"`
	SessionDate string        `json:"session_date,omitempty" bson:"session_date,omitempty"`
	Slots       []string      `json:"slots,omitempty" bson:"slots,omitempty"`
	Price       float64       `json:"price,omitempty" bson:"price,omitempty" validate:"omitempty,gte=0"`
	Status      BookingStatus `json:"status" bson:"status" validate:"omitempty,oneof=pending approved confirmed"`
	PaymentID   string        `json:"payment_id,omitempty" bson:"payment_id,omitempty" validate:"omitempty,mongodb"`
	ApprovedAt  *time.Time    `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	PaidAt      *time.Time    `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
}
