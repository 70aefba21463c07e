// Package companies stores user-submitted companies and their simulated revenue growth.
package companies

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/sawpanic/cea/internal/domain/sectors"
	"github.com/sawpanic/cea/internal/domain/validation"
)

// DefaultSector is used when a company is submitted without one.
const DefaultSector = "General"

// Validation messages returned to API callers verbatim.
const (
	MsgNameAndRevenueRequired = "Name and revenue are required."
	MsgRevenueNotPositive     = "Revenue must be a positive number."
)

// Company is an immutable registry entry.
type Company struct {
	ID           int                        `json:"id"`
	Name         string                     `json:"name"`
	Sector       string                     `json:"sector"`
	StartRevenue float64                    `json:"startRevenue"`
	Years        [sectors.SeriesLen]int     `json:"years"`
	Baseline     [sectors.SeriesLen]float64 `json:"baseline"`
	Projected    [sectors.SeriesLen]float64 `json:"withCEA"`
}

// Registry is the in-memory company store. Ids start at 1 and are never reused.
type Registry struct {
	mu     sync.Mutex
	byID   map[int]Company
	order  []int
	nextID int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[int]Company), nextID: 1}
}

// Create validates the submission, projects growth and stores the company. Rejected input
// returns a *validation.Error and leaves the registry and id counter untouched.
func (r *Registry) Create(name, sector, revenueText string) (Company, error) {
	name = strings.TrimSpace(name)
	sector = strings.TrimSpace(sector)
	revenueText = strings.TrimSpace(revenueText)

	if name == "" || revenueText == "" {
		return Company{}, validation.New(MsgNameAndRevenueRequired)
	}

	revenue, err := ParseRevenue(revenueText)
	if err != nil {
		return Company{}, err
	}

	if sector == "" {
		sector = DefaultSector
	}
	growth := ProjectGrowth(revenue)

	r.mu.Lock()
	defer r.mu.Unlock()

	c := Company{
		ID:           r.nextID,
		Name:         name,
		Sector:       sector,
		StartRevenue: revenue,
		Years:        sectors.Years,
		Baseline:     growth.Baseline,
		Projected:    growth.Projected,
	}
	r.nextID++
	r.byID[c.ID] = c
	r.order = append(r.order, c.ID)
	return c, nil
}

// ParseRevenue parses a trimmed revenue string that must be a finite number above zero.
func ParseRevenue(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, validation.New(MsgRevenueNotPositive)
	}
	return v, nil
}

// List returns all companies in insertion order.
func (r *Registry) List() []Company {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Company, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Get looks up a company by id.
func (r *Registry) Get(id int) (Company, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	return c, ok
}

// Len returns the number of stored companies.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}
