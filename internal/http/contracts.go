package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sawpanic/cea/internal/alerts"
	"github.com/sawpanic/cea/internal/companies"
	"github.com/sawpanic/cea/internal/domain/sectors"
)

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // Set for transport-level failures only
}

// CEARequest is the body of POST /api/cea
type CEARequest struct {
	UserType string `json:"userType"`
	Sector   string `json:"sector"`
	Problem  string `json:"problem"`
}

// RefusalResponse answers a suspicious problem
type RefusalResponse struct {
	Suspicious bool   `json:"suspicious"`
	Message    string `json:"message"`
}

// CEAResponse carries advice and the sector's trajectory after the learning step
type CEAResponse struct {
	Suspicious    bool                       `json:"suspicious"`
	Header        string                     `json:"header"`
	Advice        string                     `json:"advice"`
	Problem       string                     `json:"problem"`
	Sector        string                     `json:"sector"`
	UserType      string                     `json:"userType"`
	Years         [sectors.SeriesLen]int     `json:"years"`
	Baseline      [sectors.SeriesLen]float64 `json:"baseline"`
	WithCEA       [sectors.SeriesLen]float64 `json:"withCEA"`
	LearningUsage int                        `json:"learningUsage"`
	Label         string                     `json:"label"`
}

// AlertsResponse lists alerts in insertion order
type AlertsResponse struct {
	Alerts []alerts.Alert `json:"alerts"`
}

// CompanyRequest is the body of POST /api/companies
type CompanyRequest struct {
	Name    string       `json:"name"`
	Sector  string       `json:"sector"`
	Revenue RevenueField `json:"revenue"`
}

// RevenueField accepts a JSON string or number and keeps its text form. null reads as
// empty.
type RevenueField string

func (f *RevenueField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = RevenueField(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("revenue must be a string or number: %w", err)
	}
	*f = RevenueField(n.String())
	return nil
}

// CompaniesResponse lists companies in insertion order
type CompaniesResponse struct {
	Companies []companies.Company `json:"companies"`
}

// SectorsResponse lists every sector's current trajectories
type SectorsResponse struct {
	Years   [sectors.SeriesLen]int `json:"years"`
	Sectors []sectors.Snapshot     `json:"sectors"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status          string    `json:"status"`
	Timestamp       time.Time `json:"timestamp"`
	Uptime          string    `json:"uptime"`
	Version         string    `json:"version"`
	Alerts          int       `json:"alerts"`
	Companies       int       `json:"companies"`
	AlertForwarding string    `json:"alert_forwarding"` // disabled, or the breaker state
}
