package ratelimit_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/k36p/Midad/internal/app/system/ratelimit"
)

func TestAllow_WithinLimit(t *testing.T) {
	l := ratelimit.New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("request over the limit should be denied")
	}
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	l := ratelimit.New(1, time.Minute)

	if !l.Allow("a") {
		t.Fatal("first request for key a should pass")
	}
	if !l.Allow("b") {
		t.Error("key b must not share key a's window")
	}
}

func TestAllow_WindowExpires(t *testing.T) {
	l := ratelimit.New(1, 10*time.Millisecond)

	if !l.Allow("x") {
		t.Fatal("first request should pass")
	}
	if l.Allow("x") {
		t.Fatal("second request inside window should be denied")
	}
	time.Sleep(20 * time.Millisecond)
	if !l.Allow("x") {
		t.Error("request after window expiry should pass")
	}
}

func TestReset(t *testing.T) {
	l := ratelimit.New(1, time.Minute)

	l.Allow("x")
	if l.Allow("x") {
		t.Fatal("limit should be hit")
	}
	l.Reset("x")
	if !l.Allow("x") {
		t.Error("reset should clear the window")
	}
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest("POST", "/auth/login", nil)
	req.RemoteAddr = "192.0.2.7:51234"
	if got := ratelimit.ClientKey(req); got != "192.0.2.7" {
		t.Errorf("ClientKey: got %q, want %q", got, "192.0.2.7")
	}
}
