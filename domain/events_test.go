package domain

import (
	"context"
	"errors"
	"testing"
)

func TestAuditEventBuilder(t *testing.T) {
	e := NewAuditEvent(UserLoginEvent, 5).
		WithEmail("a@b.com").
		WithMetadata("purpose", "ACTIVATION").
		WithClientContext(&ClientContext{IPAddress: "10.0.0.1", RequestID: "r1"})

	if !e.Success {
		t.Error("new event should be successful")
	}
	if e.Email != "a@b.com" || e.IPAddress != "10.0.0.1" || e.RequestID != "r1" {
		t.Errorf("unexpected event %+v", e)
	}
	if e.Metadata["purpose"] != "ACTIVATION" {
		t.Error("metadata not set")
	}

	e.WithError(errors.New("boom"))
	if e.Success || e.ErrorMsg != "boom" {
		t.Errorf("expected failed event with message, got %+v", e)
	}
}

func TestClientContextRoundTrip(t *testing.T) {
	if ClientContextFrom(context.Background()) != nil {
		t.Error("empty context should carry no client context")
	}
	cc := &ClientContext{IPAddress: "127.0.0.1"}
	ctx := WithClientContext(context.Background(), cc)
	if got := ClientContextFrom(ctx); got != cc {
		t.Errorf("expected %v, got %v", cc, got)
	}
}
