package model

import "testing"

func TestBookingStatus_Valid(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{StatusPending, true},
		{StatusApproved, true},
		{StatusConfirmed, true},
		{BookingStatus(""), false},
		{BookingStatus("cancelled"), false},
		{BookingStatus("Pending"), false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestBookingStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to pending", StatusPending, StatusPending, false},
		{"approved to confirmed", StatusApproved, StatusConfirmed, true},
		{"re-approve", StatusApproved, StatusApproved, true},
		{"approved back to pending", StatusApproved, StatusPending, false},
		{"re-confirm", StatusConfirmed, StatusConfirmed, true},
		{"confirmed back to approved", StatusConfirmed, StatusApproved, false},
		{"confirmed back to pending", StatusConfirmed, StatusPending, false},
		{"unknown status", BookingStatus("cancelled"), StatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%q -> %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
