package httpmiddleware

import (
	"testing"
	"time"
)

func TestTokenBucketExhaustsAndRefills(t *testing.T) {
	l := NewTokenBucket(2, 60)
	now := time.Now()

	if !l.allow("1.2.3.4", now) {
		t.Fatalf("first request should pass")
	}
	if !l.allow("1.2.3.4", now) {
		t.Fatalf("second request should pass")
	}
	if l.allow("1.2.3.4", now) {
		t.Fatalf("third request should be limited")
	}

	// One second at 60/min refills one token.
	if !l.allow("1.2.3.4", now.Add(time.Second)) {
		t.Fatalf("expected refill after one second")
	}
}

func TestTokenBucketIsolatesClients(t *testing.T) {
	l := NewTokenBucket(1, 60)
	now := time.Now()

	if !l.allow("1.1.1.1", now) {
		t.Fatalf("first client should pass")
	}
	if !l.allow("2.2.2.2", now) {
		t.Fatalf("second client should have its own bucket")
	}
	if l.allow("1.1.1.1", now) {
		t.Fatalf("first client should be limited")
	}
}
