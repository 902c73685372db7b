// Command mock-owm serves a local fake of the OpenWeatherMap forecast and geocoding endpoints
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"weatherdash.app/internal/testutil/owmfake"
)

func main() {
	_ = godotenv.Load()

	apiKey := os.Getenv("OPENWEATHERMAP_API_KEY")
	if apiKey == "" {
		apiKey = "mock-api-key"
	}
	port := os.Getenv("MOCK_OWM_PORT")
	if port == "" {
		port = "8081"
	}

	fake := owmfake.New(apiKey)

	slog.Info("Mock OpenWeatherMap server starting",
		"port", port,
		"forecast_base_url", fmt.Sprintf("http://localhost:%s%s", port, owmfake.ForecastPath),
		"geo_base_url", fmt.Sprintf("http://localhost:%s%s", port, owmfake.GeoPath))

	if err := http.ListenAndServe(":"+port, fake.Handler()); err != nil {
		slog.Error("Mock server failed", "error", err)
		os.Exit(1)
	}
}
