package kafka

import "testing"

func TestMessageBuilder(t *testing.T) {
	msg, err := NewMessage().
		WithKey("64a1f0c2e4b0a1b2c3d4e5f7").
		WithEventType(EventVisitScheduled).
		WithSource("visits").
		WithValue(map[string]any{"visit_id": "64a1f0c2e4b0a1b2c3d4e5f7"}).
		Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	if msg.Key != "64a1f0c2e4b0a1b2c3d4e5f7" {
		t.Errorf("unexpected key %q", msg.Key)
	}
	if msg.GetEventType() != EventVisitScheduled {
		t.Errorf("unexpected event type %q", msg.GetEventType())
	}
	if msg.GetEventID() == "" {
		t.Error("expected a generated event id")
	}

	var payload map[string]any
	if err := msg.DecodeValue(&payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload["visit_id"] != "64a1f0c2e4b0a1b2c3d4e5f7" {
		t.Errorf("unexpected payload %v", payload)
	}
}

func TestMessageBuilder_UnencodablePayload(t *testing.T) {
	_, err := NewMessage().
		WithKey("k").
		WithValue(make(chan int)).
		Build()
	if err == nil {
		t.Fatal("expected build error for unencodable payload")
	}
}
