// FilePath: internal/weather/client.go

// Package weather fetches, stores and serves per-user weather samples
// from OpenWeatherMap.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	nuts "github.com/vaudience/go-nuts"
)

// CurrentConditions is the normalized provider reading the rest of the
// service consumes. Rainfall is the last-hour volume in mm (0 when the
// provider omits it).
type CurrentConditions struct {
	Conditions  string
	Temperature float64 // Celsius
	Humidity    float64 // percent
	Rainfall    float64 // mm, last hour
	ObservedAt  time.Time
}

// Client abstracts the upstream weather provider.
type Client interface {
	GetCurrentWeather(ctx context.Context, latitude, longitude float64) (*CurrentConditions, error)
}

var errCircuitOpen = errors.New("weather provider circuit open")

// OpenWeatherMapClient implements Client against the OpenWeatherMap
// current-weather endpoint, with retries and a circuit breaker so a
// flapping provider cannot stall the daily pass.
type OpenWeatherMapClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
	maxRetries int
	backoff    time.Duration
}

func NewOpenWeatherMapClient(baseURL, apiKey string, timeout time.Duration) *OpenWeatherMapClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherMapClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		circuit:    cb,
		maxRetries: 3,
		backoff:    500 * time.Millisecond,
	}
}

// openWeatherMapResponse covers the subset of the current-weather
// payload the service uses. Rain volume comes keyed as "1h".
type openWeatherMapResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Rain *struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	Dt int64 `json:"dt"`
}

func (c *OpenWeatherMapClient) GetCurrentWeather(ctx context.Context, latitude, longitude float64) (*CurrentConditions, error) {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", latitude))
	values.Set("lon", fmt.Sprintf("%f", longitude))
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")
	requestURL := fmt.Sprintf("%s/weather?%s", c.baseURL, values.Encode())

	resp, err := c.doWithResilience(ctx, requestURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload openWeatherMapResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	cc := &CurrentConditions{
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
		ObservedAt:  time.Unix(payload.Dt, 0).UTC(),
	}
	if len(payload.Weather) > 0 {
		cc.Conditions = payload.Weather[0].Main
	}
	if payload.Rain != nil {
		cc.Rainfall = payload.Rain.OneHour
	}

	return cc, nil
}

// doWithResilience executes the request through the circuit breaker
// with exponential backoff on transient failures.
func (c *OpenWeatherMapClient) doWithResilience(ctx context.Context, requestURL string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}

		result, err := c.circuit.Execute(func() (interface{}, error) {
			resp, execErr := c.httpClient.Do(req)
			if execErr != nil {
				return nil, execErr
			}
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, fmt.Errorf("weather provider returned status %d", resp.StatusCode)
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("unexpected weather provider status %d", resp.StatusCode)
			}
			return resp, nil
		})

		if err == nil {
			return result.(*http.Response), nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= c.maxRetries {
			return nil, lastErr
		}

		delay := c.backoff * time.Duration(math.Pow(2, float64(attempt)))
		nuts.L.Warnf("[WeatherClient] Request failed (attempt %d/%d), retrying in %v: %v",
			attempt+1, c.maxRetries, delay, err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
