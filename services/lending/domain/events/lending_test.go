package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/circulation/services/lending/domain/events"
)

func TestLoanCreatedEvent_JSONRoundTrip(t *testing.T) {
	original := events.LoanCreatedEvent{
		EventID:    uuid.MustParse("550e8400-e29b-41d4-a716-446655440001"),
		Version:    1,
		LoanID:     uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		UserID:     uuid.MustParse("660e8400-e29b-41d4-a716-446655440000"),
		ItemID:     uuid.MustParse("770e8400-e29b-41d4-a716-446655440000"),
		DueAt:      time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC),
		OccurredAt: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var decoded events.LoanCreatedEvent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}

	if decoded.EventID != original.EventID {
		t.Errorf("EventID: got %v, want %v", decoded.EventID, original.EventID)
	}
	if decoded.LoanID != original.LoanID {
		t.Errorf("LoanID: got %v, want %v", decoded.LoanID, original.LoanID)
	}
	if decoded.ItemID != original.ItemID {
		t.Errorf("ItemID: got %v, want %v", decoded.ItemID, original.ItemID)
	}
	if !decoded.DueAt.Equal(original.DueAt) {
		t.Errorf("DueAt: got %v, want %v", decoded.DueAt, original.DueAt)
	}
	if !decoded.OccurredAt.Equal(original.OccurredAt) {
		t.Errorf("OccurredAt: got %v, want %v", decoded.OccurredAt, original.OccurredAt)
	}
}

func TestLoanReturnedEvent_JSONFieldNames(t *testing.T) {
	// Subscribers parse these payloads by field name; renames break consumers.
	evt := events.LoanReturnedEvent{
		EventID:     uuid.New(),
		Version:     1,
		LoanID:      uuid.New(),
		UserID:      uuid.New(),
		ItemID:      uuid.New(),
		OverdueDays: 3,
		OccurredAt:  time.Now().UTC(),
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}

	for _, field := range []string{"event_id", "version", "loan_id", "user_id", "item_id", "overdue_days", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
}

func TestEventTopics(t *testing.T) {
	tests := []struct {
		evt  events.Event
		want string
	}{
		{events.LoanCreatedEvent{}, "lending.loan.created"},
		{events.LoanReturnedEvent{}, "lending.loan.returned"},
		{events.LoanOverdueEvent{}, "lending.loan.overdue"},
		{events.ReservationCompletedEvent{}, "lending.reservation.completed"},
	}
	for _, tt := range tests {
		if got := tt.evt.Topic(); got != tt.want {
			t.Errorf("Topic(): got %q, want %q", got, tt.want)
		}
	}
}
