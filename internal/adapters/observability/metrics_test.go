package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel_booking/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so vectors are exported
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveBooking(3)
	observability.ObserveBookingRejected("invalid")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"hotel_http_requests_total",
		"hotel_bookings_created_total",
		`hotel_bookings_rejected_total{reason="invalid"}`,
		"hotel_booking_nights_bucket",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestNewLogger_Level(t *testing.T) {
	if l := observability.NewLogger("prod", "warn"); l.GetLevel().String() != "warn" {
		t.Fatalf("level = %s", l.GetLevel())
	}
	if l := observability.NewLogger("dev", "bogus"); l.GetLevel().String() != "info" {
		t.Fatalf("level = %s", l.GetLevel())
	}
}
