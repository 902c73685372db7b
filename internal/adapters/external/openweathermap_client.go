package external

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weatherdash.app/internal/core/forecast"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

const (
	DefaultForecastBaseURL = "https://api.openweathermap.org/data/2.5"
	DefaultGeoBaseURL      = "https://api.openweathermap.org/geo/1.0"

	endpointForecast = "forecast"
	endpointReverse  = "reverse_geocode"

	messageLocationLookupFailed = "Unable to fetch location data"
)

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenWeatherMapClient implements ports.WeatherClient against the 5 day / 3 hour
// forecast and reverse geocoding endpoints. Every call is single-shot.
type OpenWeatherMapClient struct {
	apiKey     string
	baseURL    string
	geoBaseURL string
	client     HTTPClient
	logger     ports.Logger
	metrics    ports.MetricsCollector
}

// OpenWeatherMapClientParams holds parameters for creating the client
type OpenWeatherMapClientParams struct {
	APIKey     string
	BaseURL    string
	GeoBaseURL string
	Timeout    time.Duration
	HTTPClient HTTPClient
	Logger     ports.Logger
	Metrics    ports.MetricsCollector
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			TempMin   float64 `json:"temp_min"`
			TempMax   float64 `json:"temp_max"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
	City struct {
		Name string `json:"name"`
	} `json:"city"`
}

type geocodeResponse []struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
}

func NewOpenWeatherMapClient(params OpenWeatherMapClientParams) (*OpenWeatherMapClient, error) {
	if params.APIKey == "" {
		return nil, errors.NewConfigurationError("OpenWeatherMap API key is required", nil)
	}
	if params.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if params.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = DefaultForecastBaseURL
	}
	geoBaseURL := params.GeoBaseURL
	if geoBaseURL == "" {
		geoBaseURL = DefaultGeoBaseURL
	}
	httpClient := params.HTTPClient
	if httpClient == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &OpenWeatherMapClient{
		apiKey:     params.APIKey,
		baseURL:    baseURL,
		geoBaseURL: geoBaseURL,
		client:     httpClient,
		logger:     params.Logger,
		metrics:    params.Metrics,
	}, nil
}

// FetchForecastByCity requests the forecast in metric units.
// Any non-2xx status is reported as city not found.
func (c *OpenWeatherMapClient) FetchForecastByCity(ctx context.Context, city string) (*forecast.CityForecast, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	var payload forecastResponse
	status, err := c.getJSON(ctx, endpointForecast, c.baseURL+"/forecast?"+query.Encode(), &payload)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, errors.NewCityNotFoundError(errors.MessageCityNotFound)
	}

	entries := make(forecast.List, 0, len(payload.List))
	for _, item := range payload.List {
		entry := forecast.Entry{
			Timestamp:   time.Unix(item.Dt, 0).UTC(),
			Temperature: item.Main.Temp,
			FeelsLike:   item.Main.FeelsLike,
			TempMin:     item.Main.TempMin,
			TempMax:     item.Main.TempMax,
			Humidity:    item.Main.Humidity,
			WindSpeed:   item.Wind.Speed,
		}
		if len(item.Weather) > 0 {
			entry.ConditionMain = item.Weather[0].Main
			entry.ConditionDescription = item.Weather[0].Description
		}
		if err := entry.IsValid(); err != nil {
			c.logger.Warn("Invalid forecast entry received",
				ports.F("city", city),
				ports.F("index", len(entries)),
				ports.F("error", err.Error()))
			return nil, errors.NewNetworkError("", fmt.Errorf("entry %d: %w", len(entries), err))
		}
		entries = append(entries, entry)
	}

	name := payload.City.Name
	if name == "" {
		name = city
	}
	return &forecast.CityForecast{City: name, Entries: entries}, nil
}

// ReverseGeocode returns the name of the first place candidate for the coordinates
func (c *OpenWeatherMapClient) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("limit", "1")
	query.Set("appid", c.apiKey)

	var places geocodeResponse
	status, err := c.getJSON(ctx, endpointReverse, c.geoBaseURL+"/reverse?"+query.Encode(), &places)
	if err != nil {
		return "", err
	}
	if !isSuccess(status) {
		return "", errors.NewNetworkError(messageLocationLookupFailed, nil)
	}
	if len(places) == 0 || places[0].Name == "" {
		return "", errors.NewNoLocationFoundError(errors.MessageNoLocationFound)
	}
	return places[0].Name, nil
}

// getJSON performs the request and decodes a 2xx body into target.
// Transport and decode failures are network errors; the status is returned for the caller to classify.
func (c *OpenWeatherMapClient) getJSON(ctx context.Context, endpoint, rawURL string, target interface{}) (int, error) {
	start := time.Now()
	status, err := c.doGetJSON(ctx, rawURL, target)
	c.metrics.RecordUpstreamCall(endpoint, err == nil && isSuccess(status), time.Since(start))
	if err != nil {
		return 0, err
	}
	return status, nil
}

func (c *OpenWeatherMapClient) doGetJSON(ctx context.Context, rawURL string, target interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, errors.NewNetworkError("", fmt.Errorf("build request: %w", err))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// url.Error carries the full URL, including appid.
		var urlErr *url.Error
		if stderrors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return 0, errors.NewNetworkError("", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Failed to close OpenWeatherMap response body", ports.F("error", closeErr))
		}
	}()

	if !isSuccess(resp.StatusCode) {
		c.logger.Debug("OpenWeatherMap returned non-success status", ports.F("status", resp.StatusCode))
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return 0, errors.NewNetworkError("", fmt.Errorf("decode OpenWeatherMap response: %w", err))
	}
	return resp.StatusCode, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
