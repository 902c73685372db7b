package chat

import (
	"context"
	"strings"

	"weatherdash.app/internal/core/forecast"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

// Context is the forecast data a reply is composed from
type Context struct {
	City  string
	Daily forecast.List
	Mode  forecast.UnitMode
}

// Fetcher fetches and tracks a new city on behalf of the chat
type Fetcher interface {
	LoadCity(ctx context.Context, city string) (Context, error)
}

// Router classifies a message and produces the bot reply
type Router struct {
	fetcher Fetcher
	logger  ports.Logger
}

type RouterDependencies struct {
	Fetcher Fetcher
	Logger  ports.Logger
}

func NewRouter(deps RouterDependencies) (*Router, error) {
	if deps.Fetcher == nil {
		return nil, errors.NewValidationError("forecast fetcher is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	return &Router{fetcher: deps.Fetcher, logger: deps.Logger}, nil
}

// Handle returns the bot reply for text. Fetch errors become FetchFailedMessage.
func (r *Router) Handle(ctx context.Context, text string, current Context) string {
	if !IsWeatherRelated(text) {
		return NotWeatherRelatedMessage
	}

	active := current
	if city, ok := ExtractCity(text); ok && !strings.EqualFold(city, current.City) {
		r.logger.Debug("Chat requested a different city",
			ports.F("city", city),
			ports.F("current_city", current.City))

		loaded, err := r.fetcher.LoadCity(ctx, city)
		if err != nil {
			r.logger.Warn("Chat forecast fetch failed",
				ports.F("city", city),
				ports.F("error", err.Error()))
			return FetchFailedMessage
		}
		active = loaded
	}

	return ComposeResponse(text, active.City, active.Daily, active.Mode)
}
