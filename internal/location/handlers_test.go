package location

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lawmlor123/run-app/internal/shared/geo"
	"github.com/gofiber/fiber/v2"
)

func newTestApp(svc *Service) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/location"), svc)
	return app
}

func TestLocationHandlersPushFix(t *testing.T) {
	svc := NewService(nil, geo.Coordinate{}, time.Second)
	app := newTestApp(svc)

	body, _ := json.Marshal(Fix{Lat: 40.0, Lng: -73.0})
	req := httptest.NewRequest(http.MethodPost, "/location/fixes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusAccepted {
		t.Fatalf("push fix status: %v", err)
	}
}

func TestLocationHandlersPushInvalid(t *testing.T) {
	svc := NewService(nil, geo.Coordinate{}, time.Second)
	app := newTestApp(svc)

	body, _ := json.Marshal(Fix{Lat: 123, Lng: 0})
	req := httptest.NewRequest(http.MethodPost, "/location/fixes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodPost, "/location/fixes", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for malformed body")
	}
}

func TestLocationHandlersCurrentFallback(t *testing.T) {
	svc := NewService(nil, geo.Coordinate{Lat: 51.5, Lng: -0.12}, 10*time.Millisecond)
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/location/current", nil)
	resp, err := app.Test(req, 2000)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("current status: %v", err)
	}

	var out struct {
		Coordinate geo.Coordinate `json:"coordinate"`
		Fallback   bool           `json:"fallback"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Fallback {
		t.Fatalf("expected fallback response")
	}
	if out.Coordinate.Lat != 51.5 {
		t.Fatalf("unexpected coordinate: %+v", out.Coordinate)
	}
}
