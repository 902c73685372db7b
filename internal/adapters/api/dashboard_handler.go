package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"weatherdash.app/internal/core/forecast"
	"weatherdash.app/pkg/errors"
)

// SearchRequest represents the HTTP request for a city search
type SearchRequest struct {
	City string `json:"city" form:"city" binding:"required,cityname"`
}

// LocateRequest carries either coordinates or a client-side geolocation error code
type LocateRequest struct {
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	ErrorCode *int     `json:"error_code"`
}

// ViewRequest changes the sort order, the filter, or both
type ViewRequest struct {
	Sort   *string `json:"sort"`
	Filter *string `json:"filter"`
}

// ChatRequest represents one chatbot message
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ConfigResponse exposes client-side settings
type ConfigResponse struct {
	GeolocationTimeoutMS int64 `json:"geolocation_timeout_ms"`
	PageSize             int   `json:"page_size"`
}

// getSession handles GET /api/session requests
func (s *HTTPServerAdapter) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).Snapshot())
}

// search handles POST /api/search requests
func (s *HTTPServerAdapter) search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Debug("Search request rejected", "error", err)
		s.handleError(c, errors.NewInvalidInputError(errors.MessageInvalidCity))
		return
	}

	session := currentSession(c)
	snap, err := session.Search(c.Request.Context(), req.City)
	if err != nil {
		slog.Debug("Search failed", "error", err, "city", req.City, "session_id", session.ID())
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// locate handles POST /api/locate requests
func (s *HTTPServerAdapter) locate(c *gin.Context) {
	var req LocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewInvalidInputError("Invalid coordinates."))
		return
	}

	session := currentSession(c)
	if req.ErrorCode != nil {
		s.handleError(c, session.ReportGeolocationError(*req.ErrorCode))
		return
	}
	if req.Lat == nil || req.Lon == nil {
		s.handleError(c, errors.NewInvalidInputError("Invalid coordinates."))
		return
	}

	snap, err := session.LocateByCoordinates(c.Request.Context(), *req.Lat, *req.Lon)
	if err != nil {
		slog.Debug("Locate failed", "error", err, "session_id", session.ID())
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// applyView handles POST /api/view requests; sort and filter compose
func (s *HTTPServerAdapter) applyView(c *gin.Context) {
	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Sort == nil && req.Filter == nil) {
		s.handleError(c, errors.NewValidationError("sort or filter is required"))
		return
	}

	var (
		order forecast.SortOrder
		kind  forecast.FilterKind
		err   error
	)
	if req.Sort != nil {
		if order, err = forecast.ParseSortOrder(*req.Sort); err != nil {
			s.handleError(c, errors.NewValidationError(err.Error()))
			return
		}
	}
	if req.Filter != nil {
		if kind, err = forecast.ParseFilterKind(*req.Filter); err != nil {
			s.handleError(c, errors.NewValidationError(err.Error()))
			return
		}
	}

	session := currentSession(c)
	if req.Filter != nil {
		session.ApplyFilter(kind)
	}
	if req.Sort != nil {
		session.ApplySort(order)
	}

	c.JSON(http.StatusOK, session.Snapshot())
}

// getTable handles GET /api/table requests
func (s *HTTPServerAdapter) getTable(c *gin.Context) {
	session := currentSession(c)

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			s.handleError(c, errors.NewValidationError("page must be a number"))
			return
		}
		c.JSON(http.StatusOK, session.Page(page).Table)
		return
	}

	switch nav := forecast.Navigation(c.Query("nav")); nav {
	case forecast.NavFirst, forecast.NavPrev, forecast.NavNext, forecast.NavLast:
		c.JSON(http.StatusOK, session.Navigate(nav).Table)
	case "":
		c.JSON(http.StatusOK, session.Snapshot().Table)
	default:
		s.handleError(c, errors.NewValidationError("nav must be one of first, prev, next, last"))
	}
}

// toggleUnit handles POST /api/preferences/unit requests
func (s *HTTPServerAdapter) toggleUnit(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).ToggleUnit(c.Request.Context()))
}

// toggleTheme handles POST /api/preferences/theme requests
func (s *HTTPServerAdapter) toggleTheme(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).ToggleDarkMode(c.Request.Context()))
}

// chat handles POST /api/chat requests
func (s *HTTPServerAdapter) chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewInvalidInputError("Please enter a message."))
		return
	}

	snap, err := currentSession(c).Chat(c.Request.Context(), req.Message)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}
