package validator

import (
	"strings"
	"testing"

	"squadly/pkg/logger"
	"squadly/pkg/model"
)

func newTestValidator() *BookingValidator {
	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return NewBookingValidator(log)
}

func TestValidateBooking(t *testing.T) {
	validator := newTestValidator()

	tests := []struct {
		name      string
		booking   *model.Booking
		wantError bool
	}{
		{
			name: "minimal valid booking",
			booking: &model.Booking{
				UserEmail: "player@example.com",
			},
			wantError: false,
		},
		{
			name: "full valid booking",
			booking: &model.Booking{
				UserEmail:   "player@example.com",
				CourtID:     "507f1f77bcf86cd799439011",
				CourtType:   "Padel",
				SessionDate: "2026-09-14",
				Slots:       []string{"18:00-19:00"},
				Price:       45.50,
				Status:      model.StatusPending,
			},
			wantError: false,
		},
		{
			name:      "missing email",
			booking:   &model.Booking{CourtType: "Padel"},
			wantError: true,
		},
		{
			name: "malformed email",
			booking: &model.Booking{
				UserEmail: "not-an-email",
			},
			wantError: true,
		},
		{
			name: "malformed court id",
			booking: &model.Booking{
				UserEmail: "player@example.com",
				CourtID:   "abc",
			},
			wantError: true,
		},
		{
			name: "unknown status",
			booking: &model.Booking{
				UserEmail: "player@example.com",
				Status:    model.BookingStatus("cancelled"),
			},
			wantError: true,
		},
		{
			name: "negative price",
			booking: &model.Booking{
				UserEmail: "player@example.com",
				Price:     -10,
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(tt.booking)
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidateBooking_ErrorMessages(t *testing.T) {
	validator := newTestValidator()

	err := validator.Validate(&model.Booking{UserEmail: "nope"})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "valid email") {
		t.Errorf("expected email message, got: %v", err)
	}
}
