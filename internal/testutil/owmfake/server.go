// Package owmfake serves canned OpenWeatherMap forecast and reverse geocoding
// responses. Tests mount it on httptest; cmd/mock-owm runs it standalone.
package owmfake

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	ForecastPath = "/data/2.5"
	GeoPath      = "/geo/1.0"

	// EntriesPerCity matches the real 5 day / 3 hour feed
	EntriesPerCity = 40

	// Query values that trigger failure modes
	CityServerError = "servererror"
	CityMalformed   = "malformed"
)

// Start of every generated series: Monday 2024-03-04 00:00 UTC
var SeriesStart = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

// City is a place the fake knows about
type City struct {
	Name     string
	Lat      float64
	Lon      float64
	BaseTemp float64
	// Days (0-4) whose entries report rain
	RainyDays []int
}

var DefaultCities = []City{
	{Name: "London", Lat: 51.5074, Lon: -0.1278, BaseTemp: 11, RainyDays: []int{0, 2, 3}},
	{Name: "Paris", Lat: 48.8566, Lon: 2.3522, BaseTemp: 15, RainyDays: []int{1, 3}},
	{Name: "Tokyo", Lat: 35.6762, Lon: 139.6503, BaseTemp: 19, RainyDays: []int{4}},
	{Name: "Lyon", Lat: 45.7640, Lon: 4.8357, BaseTemp: 17},
}

type Server struct {
	apiKey string
	router *gin.Engine

	mu     sync.Mutex
	cities map[string]City
	calls  map[string]int
}

// New creates a fake that accepts only apiKey and knows DefaultCities
func New(apiKey string) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		apiKey: apiKey,
		router: gin.New(),
		cities: make(map[string]City),
		calls:  make(map[string]int),
	}
	for _, city := range DefaultCities {
		s.AddCity(city)
	}

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET(ForecastPath+"/forecast", s.handleForecast)
	s.router.GET(GeoPath+"/reverse", s.handleReverse)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) AddCity(city City) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities[strings.ToLower(city.Name)] = city
}

// Calls returns how many requests reached the endpoint ("forecast" or "reverse")
func (s *Server) Calls(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[endpoint]
}

func (s *Server) countCall(endpoint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[endpoint]++
}

func (s *Server) authorized(c *gin.Context) bool {
	if c.Query("appid") != s.apiKey {
		c.JSON(http.StatusUnauthorized, gin.H{"cod": 401, "message": "Invalid API key"})
		return false
	}
	return true
}

func (s *Server) handleForecast(c *gin.Context) {
	s.countCall("forecast")
	if !s.authorized(c) {
		return
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("q")))
	switch query {
	case "":
		c.JSON(http.StatusBadRequest, gin.H{"cod": "400", "message": "Nothing to geocode"})
		return
	case CityServerError:
		c.JSON(http.StatusInternalServerError, gin.H{"cod": "500", "message": "Internal server error"})
		return
	case CityMalformed:
		c.Data(http.StatusOK, "application/json", []byte(`{"list": [`))
		return
	}

	s.mu.Lock()
	city, ok := s.cities[query]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"cod": "404", "message": "city not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cod":  "200",
		"cnt":  EntriesPerCity,
		"list": Series(city),
		"city": gin.H{"name": city.Name, "coord": gin.H{"lat": city.Lat, "lon": city.Lon}},
	})
}

func (s *Server) handleReverse(c *gin.Context) {
	s.countCall("reverse")
	if !s.authorized(c) {
		return
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"cod": "400", "message": "wrong latitude or longitude"})
		return
	}

	places := []gin.H{}
	if city, ok := s.nearest(lat, lon); ok {
		places = append(places, gin.H{"name": city.Name, "lat": city.Lat, "lon": city.Lon})
	}
	c.JSON(http.StatusOK, places)
}

// nearest returns the closest known city within one degree
func (s *Server) nearest(lat, lon float64) (City, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var best City
	bestDist := math.Inf(1)
	for _, city := range s.cities {
		d := math.Hypot(city.Lat-lat, city.Lon-lon)
		if d < bestDist {
			best, bestDist = city, d
		}
	}
	return best, bestDist <= 1
}

// Series generates the deterministic 3-hour entries served for city
func Series(city City) []gin.H {
	rainy := make(map[int]bool, len(city.RainyDays))
	for _, d := range city.RainyDays {
		rainy[d] = true
	}

	list := make([]gin.H, 0, EntriesPerCity)
	for i := 0; i < EntriesPerCity; i++ {
		day := i / 8
		temp := city.BaseTemp + float64(day) + float64(i%8)/2
		main, description := "Clear", "clear sky"
		if rainy[day] {
			main, description = "Rain", "light rain"
		}
		ts := SeriesStart.Add(time.Duration(i) * 3 * time.Hour)
		list = append(list, gin.H{
			"dt": ts.Unix(),
			"main": gin.H{
				"temp":       temp,
				"feels_like": temp - 1,
				"temp_min":   temp - 2,
				"temp_max":   temp + 2,
				"humidity":   60 + i%8,
			},
			"weather": []gin.H{{"main": main, "description": description}},
			"wind":    gin.H{"speed": 3 + float64(day)/2},
			"dt_txt":  ts.Format("2006-01-02 15:04:05"),
		})
	}
	return list
}
