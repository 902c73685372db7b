package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"weatherdash.app/internal/adapters/external"
	"weatherdash.app/internal/adapters/infrastructure"
	"weatherdash.app/internal/core/dashboard"
	"weatherdash.app/internal/core/forecast"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
	"weatherdash.app/pkg/logger"
)

// Globals are shared by every command
type Globals struct {
	APIKey     string        `name:"api-key" env:"OPENWEATHERMAP_API_KEY" help:"OpenWeatherMap API key."`
	BaseURL    string        `name:"base-url" env:"OPENWEATHERMAP_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5" help:"Forecast API base URL."`
	GeoBaseURL string        `name:"geo-base-url" env:"OPENWEATHERMAP_GEO_BASE_URL" default:"https://api.openweathermap.org/geo/1.0" help:"Geocoding API base URL."`
	Timeout    time.Duration `default:"10s" help:"Upstream request timeout."`
	LogLevel   string        `name:"log-level" env:"LOG_LEVEL" default:"warn" enum:"debug,info,warn,error" help:"Log level for diagnostics on stderr."`
	JSON       bool          `name:"json" help:"Print the full dashboard snapshot as JSON."`
	Unit       string        `default:"metric" enum:"metric,imperial" help:"Display unit."`

	out    io.Writer `kong:"-"`
	errOut io.Writer `kong:"-"`
}

// CLI is the weatherctl command tree
type CLI struct {
	Globals

	Forecast ForecastCmd `cmd:"" help:"Show the forecast dashboard for a city."`
	Locate   LocateCmd   `cmd:"" help:"Show the forecast for the city nearest to coordinates."`
	Chat     ChatCmd     `cmd:"" help:"Ask the weather chatbot a question."`
}

// ViewFlags select the table view
type ViewFlags struct {
	Sort   string `default:"none" enum:"none,asc,desc" help:"Sort rows by temperature."`
	Filter string `default:"none" enum:"none,rain,highest-temp" help:"Filter rows."`
	Page   int    `default:"1" help:"Table page to show."`
}

type ForecastCmd struct {
	City string `arg:"" help:"City name."`
	ViewFlags
}

func (c *ForecastCmd) Run(g *Globals) error {
	ctx := context.Background()
	session, err := g.newSession(ctx)
	if err != nil {
		return err
	}

	snap, err := session.Search(ctx, c.City)
	if err != nil {
		return userError(err)
	}
	return g.render(c.ViewFlags.apply(session, snap))
}

type LocateCmd struct {
	Lat float64 `arg:"" help:"Latitude."`
	Lon float64 `arg:"" help:"Longitude."`
	ViewFlags
}

func (c *LocateCmd) Run(g *Globals) error {
	ctx := context.Background()
	session, err := g.newSession(ctx)
	if err != nil {
		return err
	}

	snap, err := session.LocateByCoordinates(ctx, c.Lat, c.Lon)
	if err != nil {
		return userError(err)
	}
	return g.render(c.ViewFlags.apply(session, snap))
}

type ChatCmd struct {
	Message []string `arg:"" help:"Message for the chatbot."`
	City    string   `help:"Load this city before asking."`
}

func (c *ChatCmd) Run(g *Globals) error {
	ctx := context.Background()
	session, err := g.newSession(ctx)
	if err != nil {
		return err
	}

	if c.City != "" {
		if _, err := session.Search(ctx, c.City); err != nil {
			return userError(err)
		}
	}

	snap, err := session.Chat(ctx, strings.Join(c.Message, " "))
	if err != nil {
		return userError(err)
	}
	if g.JSON {
		return g.render(snap)
	}

	reply := snap.Transcript[len(snap.Transcript)-1]
	_, err = fmt.Fprintln(g.out, reply.Text)
	return err
}

func (v ViewFlags) apply(session *dashboard.Session, snap *dashboard.Snapshot) *dashboard.Snapshot {
	if kind, err := forecast.ParseFilterKind(v.Filter); err == nil && kind != forecast.FilterNone {
		snap = session.ApplyFilter(kind)
	}
	if order, err := forecast.ParseSortOrder(v.Sort); err == nil && order != forecast.SortNone {
		snap = session.ApplySort(order)
	}
	if v.Page > 1 {
		snap = session.Page(v.Page)
	}
	return snap
}

// newSession wires a throwaway session over the real upstream client
func (g *Globals) newSession(ctx context.Context) (*dashboard.Session, error) {
	errOut := g.errOut
	if errOut == nil {
		errOut = io.Discard
	}
	log := logger.NewWithWriter(errOut, logger.ParseLevel(g.LogLevel)).WithField("component", "weatherctl")
	portLogger := infrastructure.NewSlogLoggerAdapter(log.Logger)
	metrics := infrastructure.NewPrometheusMetrics()

	client, err := external.NewOpenWeatherMapClient(external.OpenWeatherMapClientParams{
		APIKey:     g.APIKey,
		BaseURL:    g.BaseURL,
		GeoBaseURL: g.GeoBaseURL,
		Timeout:    g.Timeout,
		Logger:     portLogger,
		Metrics:    metrics,
	})
	if err != nil {
		return nil, err
	}

	flags := external.NewMemoryFlagStore()
	id := uuid.NewString()
	if g.Unit == string(forecast.UnitImperial) {
		if err := flags.Set(ctx, id, ports.FlagTemperatureUnit, g.Unit); err != nil {
			return nil, err
		}
	}

	session, err := dashboard.NewSession(dashboard.SessionDependencies{
		ID:            id,
		WeatherClient: external.NewWeatherClientLoggingDecorator(client, portLogger),
		FlagStore:     flags,
		Logger:        portLogger,
		Metrics:       metrics,
	})
	if err != nil {
		return nil, err
	}
	session.Restore(ctx)
	return session, nil
}

func (g *Globals) render(snap *dashboard.Snapshot) error {
	if g.JSON {
		enc := json.NewEncoder(g.out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	if snap.Current != nil {
		fmt.Fprintf(g.out, "%s\n%s, %s (feels like %s)\nHumidity %s, wind %s\n\n",
			snap.Current.Title, snap.Current.Description, snap.Current.Temperature,
			snap.Current.FeelsLike, snap.Current.Humidity, snap.Current.WindSpeed)
	}

	w := tabwriter.NewWriter(g.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTEMPERATURE\tDESCRIPTION\tHUMIDITY\tWIND")
	for _, row := range snap.Table.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", row.Time, row.Temperature, row.Description, row.Humidity, row.WindSpeed)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(g.out, snap.Table.Page.Label)
	if snap.Table.Notice != "" {
		fmt.Fprintln(g.out, snap.Table.Notice)
	}
	if snap.Table.Highlight != "" {
		fmt.Fprintln(g.out, snap.Table.Highlight)
	}
	return nil
}

// userError reduces an action failure to the message a user would see
func userError(err error) error {
	return fmt.Errorf("%s", errors.UserMessage(err))
}
