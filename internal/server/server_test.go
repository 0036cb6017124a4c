package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lawmlor123/run-app/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		ServerPort:         ":0",
		RoutingBaseURL:     "http://localhost:1",
		RoutingProfile:     "foot-walking",
		DefaultLat:         51.5074,
		DefaultLng:         -0.1278,
		LocationTimeoutSec: 1,
	}
}

func TestHealthRoute(t *testing.T) {
	s := NewServer(testConfig(), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 status")
	}
}

func TestFeatureRoutesRegistered(t *testing.T) {
	s := NewServer(testConfig(), nil, nil)

	body := []byte(`{"lat": 40, "lng": -73}`)
	req := httptest.NewRequest(http.MethodPost, "/location/fixes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App.Test(req)
	if err != nil || resp.StatusCode != http.StatusAccepted {
		t.Fatalf("location route: %v %d", err, resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodPost, "/session/start", bytes.NewReader([]byte(`{"origin":{"lat":40,"lng":-73}}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err = s.App.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("session route: %v %d", err, resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodPost, "/session/stop", nil)
	resp, err = s.App.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("session stop: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/routes/", nil)
	resp, err = s.App.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("routes route: %v", err)
	}
}
