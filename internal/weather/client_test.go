// FilePath: internal/weather/client_test.go
package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(baseURL string) *OpenWeatherMapClient {
	c := NewOpenWeatherMapClient(baseURL, "test-key", 5*time.Second)
	c.backoff = time.Millisecond
	return c
}

func TestGetCurrentWeatherParsesPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("appid"); got != "test-key" {
			t.Errorf("expected api key in query, got %q", got)
		}
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("expected metric units, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"weather": [{"main": "Rain", "description": "light rain"}],
			"main": {"temp": 18.5, "humidity": 82},
			"rain": {"1h": 2.3},
			"dt": 1750000000
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	cc, err := client.GetCurrentWeather(context.Background(), 46.77, 23.59)
	if err != nil {
		t.Fatalf("GetCurrentWeather failed: %v", err)
	}

	if cc.Conditions != "Rain" {
		t.Errorf("expected conditions Rain, got %q", cc.Conditions)
	}
	if cc.Temperature != 18.5 {
		t.Errorf("expected temperature 18.5, got %v", cc.Temperature)
	}
	if cc.Humidity != 82 {
		t.Errorf("expected humidity 82, got %v", cc.Humidity)
	}
	if cc.Rainfall != 2.3 {
		t.Errorf("expected rainfall 2.3, got %v", cc.Rainfall)
	}
}

func TestGetCurrentWeatherDefaultsMissingRainToZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"weather": [{"main": "Clear"}], "main": {"temp": 25, "humidity": 40}, "dt": 1750000000}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	cc, err := client.GetCurrentWeather(context.Background(), 46.77, 23.59)
	if err != nil {
		t.Fatalf("GetCurrentWeather failed: %v", err)
	}
	if cc.Rainfall != 0 {
		t.Errorf("expected rainfall 0 without rain block, got %v", cc.Rainfall)
	}
}

func TestGetCurrentWeatherRetriesTransientFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"weather": [{"main": "Clouds"}], "main": {"temp": 20, "humidity": 60}, "dt": 1750000000}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	cc, err := client.GetCurrentWeather(context.Background(), 46.77, 23.59)
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if cc.Conditions != "Clouds" {
		t.Errorf("expected Clouds, got %q", cc.Conditions)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestGetCurrentWeatherGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.GetCurrentWeather(context.Background(), 46.77, 23.59); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if got := atomic.LoadInt32(&calls); got != 4 {
		t.Errorf("expected 4 attempts (1 + 3 retries), got %d", got)
	}
}

func TestGetCurrentWeatherHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.backoff = time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := client.GetCurrentWeather(ctx, 46.77, 23.59); err == nil {
		t.Fatal("expected cancellation error")
	}
}
