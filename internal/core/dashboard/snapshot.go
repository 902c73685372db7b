package dashboard

import (
	"weatherdash.app/internal/core/forecast"
)

// Sender identifies who wrote a chat turn
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatTurn is one transcript line
type ChatTurn struct {
	Text   string `json:"text"`
	Sender Sender `json:"sender"`
}

// Snapshot is everything a renderer needs to draw the dashboard
type Snapshot struct {
	SessionID       string                `json:"session_id"`
	City            string                `json:"city,omitempty"`
	Unit            forecast.UnitMode     `json:"unit"`
	UnitToggleLabel string                `json:"unit_toggle_label"`
	DarkMode        bool                  `json:"dark_mode"`
	Current         *forecast.CurrentCard `json:"current,omitempty"`
	Charts          forecast.Charts       `json:"charts"`
	Table           TableView             `json:"table"`
	Transcript      []ChatTurn            `json:"transcript"`
}

// TableView is the paged table with its view parameters
type TableView struct {
	Rows      []forecast.TableRow `json:"rows"`
	Page      forecast.PageInfo   `json:"page"`
	View      forecast.ViewState  `json:"view"`
	Notice    string              `json:"notice,omitempty"`
	Highlight string              `json:"highlight,omitempty"`
}

// snapshotLocked must be called with s.mu held
func (s *Session) snapshotLocked() *Snapshot {
	working := s.store.Working()

	snap := &Snapshot{
		SessionID:       s.id,
		City:            s.city,
		Unit:            s.unit,
		UnitToggleLabel: s.unit.ToggleLabel(),
		DarkMode:        s.darkMode,
		Charts:          forecast.DashboardCharts(s.daily, s.unit),
		Transcript:      append([]ChatTurn{}, s.transcript...),
		Table: TableView{
			Rows: forecast.TableRows(s.store.CurrentPage(), s.unit),
			Page: forecast.NewPageInfo(s.store.View().PageIndex, s.store.TotalPages()),
			View: s.store.View(),
		},
	}

	if len(s.daily) > 0 {
		card := forecast.CurrentConditions(s.daily[0], s.city, s.unit)
		snap.Current = &card
	}

	switch s.store.View().Filter {
	case forecast.FilterRain:
		if len(working) == 0 && len(s.daily) > 0 {
			snap.Table.Notice = forecast.NoRainyDaysNotice
		}
	case forecast.FilterHighestTemp:
		if summary, ok := forecast.HighestTemperatureSummary(working, s.unit); ok {
			snap.Table.Highlight = summary
		}
	}

	return snap
}
