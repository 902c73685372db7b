package dashboard

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"weatherdash.app/internal/core/forecast"
	"weatherdash.app/internal/mocks"
	"weatherdash.app/internal/ports"
)

const testSessionID = "7f1c2d9e-4a55-4b9c-9a51-2f8e6c1d0b3a"

var baseTime = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

// rawForecast builds n 3-hour entries; the entries that become daily samples 1 and 3 are rainy
func rawForecast(city string, n int) *forecast.CityForecast {
	entries := make(forecast.List, n)
	for i := range entries {
		main := "Clear"
		if i == 8 || i == 24 {
			main = "Rain"
		}
		entries[i] = forecast.Entry{
			Timestamp:            baseTime.Add(time.Duration(i) * 3 * time.Hour),
			Temperature:          10 + float64(i)/4,
			FeelsLike:            9 + float64(i)/4,
			TempMin:              8,
			TempMax:              20,
			Humidity:             65,
			WindSpeed:            4,
			ConditionMain:        main,
			ConditionDescription: "sky " + main,
		}
	}
	return &forecast.CityForecast{City: city, Entries: entries}
}

type memoryFlags struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryFlags() *memoryFlags {
	return &memoryFlags{values: map[string]string{}}
}

func (f *memoryFlags) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[sessionID+"/"+key]
	return v, ok, nil
}

func (f *memoryFlags) Set(ctx context.Context, sessionID, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[sessionID+"/"+key] = value
	return nil
}

func (f *memoryFlags) Delete(ctx context.Context, sessionID, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, sessionID+"/"+key)
	return nil
}

func (f *memoryFlags) value(key string) string {
	v, _, _ := f.Get(context.Background(), testSessionID, key)
	return v
}

type testSession struct {
	*Session
	client  *mocks.WeatherClient
	flags   *memoryFlags
	logger  *mocks.Logger
	metrics *mocks.Metrics
}

func newTestSession(t *testing.T) *testSession {
	return newTestSessionWithClient(t, mocks.NewWeatherClient(t))
}

func newTestSessionWithClient(t *testing.T, client ports.WeatherClient) *testSession {
	flags := newMemoryFlags()
	logger := mocks.NewLogger()
	metrics := mocks.NewMetrics()

	session, err := NewSession(SessionDependencies{
		ID:            testSessionID,
		WeatherClient: client,
		FlagStore:     flags,
		Logger:        logger,
		Metrics:       metrics,
		PageSize:      forecast.DefaultPageSize,
	})
	require.NoError(t, err)

	ts := &testSession{Session: session, flags: flags, logger: logger, metrics: metrics}
	if m, ok := client.(*mocks.WeatherClient); ok {
		ts.client = m
	}
	return ts
}

// gatedClient blocks each city's fetch until its gate is released
type gatedClient struct {
	entered chan string
	gates   map[string]chan struct{}
	results map[string]*forecast.CityForecast
	errs    map[string]error
}

func newGatedClient(cities ...string) *gatedClient {
	c := &gatedClient{
		entered: make(chan string, len(cities)),
		gates:   map[string]chan struct{}{},
		results: map[string]*forecast.CityForecast{},
		errs:    map[string]error{},
	}
	for _, city := range cities {
		c.gates[city] = make(chan struct{})
		c.results[city] = rawForecast(city, 40)
	}
	return c
}

func (c *gatedClient) FetchForecastByCity(ctx context.Context, city string) (*forecast.CityForecast, error) {
	c.entered <- city
	<-c.gates[city]
	if err := c.errs[city]; err != nil {
		return nil, err
	}
	return c.results[city], nil
}

func (c *gatedClient) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	return "", fmt.Errorf("not used")
}

func (c *gatedClient) release(city string) {
	close(c.gates[city])
}
