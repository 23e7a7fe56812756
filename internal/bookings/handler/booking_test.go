package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "squadly/pkg/errors"
	"squadly/pkg/logger"
	"squadly/pkg/model"
)

// Mock service for testing
type mockBookingService struct {
	createFunc      func(ctx context.Context, booking *model.Booking) error
	listPendingFunc func(ctx context.Context) ([]*model.Booking, error)
	approveFunc     func(ctx context.Context, id string) error
}

func (m *mockBookingService) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingService) ListPending(ctx context.Context) ([]*model.Booking, error) {
	if m.listPendingFunc != nil {
		return m.listPendingFunc(ctx)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingService) ListPendingForUser(ctx context.Context, email string) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingService) ListApprovedForUser(ctx context.Context, email string) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingService) ListConfirmedForUser(ctx context.Context, email string) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingService) Approve(ctx context.Context, id string) error {
	if m.approveFunc != nil {
		return m.approveFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingService) Reject(ctx context.Context, id string) error {
	return nil
}

func (m *mockBookingService) Cancel(ctx context.Context, id string) error {
	return nil
}

func newTestHandler(service *mockBookingService) *BookingHandler {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return NewBookingHandler(service, log)
}

func TestCreate_InvalidBody(t *testing.T) {
	handler := newTestHandler(&mockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCreate_ReturnsCreated(t *testing.T) {
	handler := newTestHandler(&mockBookingService{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			booking.ID = "507f1f77bcf86cd799439011"
			booking.Status = model.StatusPending
			return nil
		},
	})

	body := `{"user_email":"player@example.com","court_type":"Padel"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var got model.Booking
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.ID != "507f1f77bcf86cd799439011" {
		t.Errorf("expected booking ID in response, got %q", got.ID)
	}
	if got.Status != model.StatusPending {
		t.Errorf("expected pending status, got %s", got.Status)
	}
}

func TestApprove_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"not found", apperrors.NotFoundWithID("Booking", "abc"), http.StatusNotFound},
		{"conflict", apperrors.Conflict("Booking cannot be approved from status confirmed"), http.StatusConflict},
		{"invalid id", apperrors.InvalidInput("Invalid booking ID format"), http.StatusBadRequest},
		{"success", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(&mockBookingService{
				approveFunc: func(ctx context.Context, id string) error {
					return tt.serviceErr
				},
			})

			req := httptest.NewRequest(http.MethodPut, "/bookings/abc/approve", nil)
			w := httptest.NewRecorder()

			handler.Approve(w, req, httprouter.Params{{Key: "id", Value: "abc"}})

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestListPending_ReturnsBookings(t *testing.T) {
	handler := newTestHandler(&mockBookingService{
		listPendingFunc: func(ctx context.Context) ([]*model.Booking, error) {
			return []*model.Booking{
				{ID: "1", UserEmail: "a@example.com", Status: model.StatusPending},
				{ID: "2", UserEmail: "b@example.com", Status: model.StatusPending},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/bookings/pending", nil)
	w := httptest.NewRecorder()

	handler.ListPending(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var got []*model.Booking
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 bookings, got %d", len(got))
	}
}
