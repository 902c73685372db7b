// Package ports defines the interfaces between the dashboard core and its adapters.
// Adapters implement them; tests substitute fakes.
package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	WeatherClient WeatherClient

	// Session persistence
	FlagStore FlagStore

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
	Metrics        MetricsCollector
}
