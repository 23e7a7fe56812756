package kafka

import (
	"encoding/json"
	"testing"
)

func TestMessageBuilder_StampsHeaders(t *testing.T) {
	msg, err := NewMessage().
		WithKey("507f1f77bcf86cd799439011").
		WithEventType("booking.approved").
		WithSource("squadly-api").
		WithSchemaVersion("1").
		WithValue(map[string]string{"id": "507f1f77bcf86cd799439011"}).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg.Key != "507f1f77bcf86cd799439011" {
		t.Errorf("unexpected key: %q", msg.Key)
	}
	if msg.Headers[HeaderEventID] == "" {
		t.Error("expected event-id header to be stamped")
	}
	if msg.Headers[HeaderEventType] != "booking.approved" {
		t.Errorf("unexpected event-type header: %q", msg.Headers[HeaderEventType])
	}
	if msg.Headers[HeaderSource] != "squadly-api" {
		t.Errorf("unexpected source header: %q", msg.Headers[HeaderSource])
	}
	if msg.Headers[HeaderSchemaVersion] != "1" {
		t.Errorf("unexpected schema-version header: %q", msg.Headers[HeaderSchemaVersion])
	}
	if msg.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	var decoded map[string]string
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("value is not valid JSON: %v", err)
	}
	if decoded["id"] != "507f1f77bcf86cd799439011" {
		t.Errorf("unexpected value payload: %v", decoded)
	}
}

func TestMessageBuilder_UniqueEventIDs(t *testing.T) {
	first, err := NewMessage().WithValue("a").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := NewMessage().WithValue("b").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Headers[HeaderEventID] == second.Headers[HeaderEventID] {
		t.Error("expected distinct event-id per message")
	}
}

func TestMessageBuilder_UnmarshalableValue(t *testing.T) {
	_, err := NewMessage().WithValue(make(chan int)).Build()
	if err == nil {
		t.Fatal("expected error for unmarshalable value")
	}
}
