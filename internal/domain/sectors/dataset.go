package sectors

import (
	"fmt"
	"sync"
)

// SeriesLen is the number of yearly points in every trajectory.
const SeriesLen = 5

// Years are the calendar years every series is aligned to.
var Years = [SeriesLen]int{2023, 2024, 2025, 2026, 2027}

// Learning parameters
const (
	baseStep = 0.5
	maxGap   = 20.0
	indexMax = 100.0
	indexMin = 0.0
)

// Sector keys in display order
const (
	Housing        = "housing"
	Education      = "education"
	Healthcare     = "healthcare"
	Infrastructure = "infrastructure"
	Agriculture    = "agriculture"
	Energy         = "energy"
	Waste          = "waste"
)

// Keys lists the known sectors in a stable order.
var Keys = []string{Housing, Education, Healthcare, Infrastructure, Agriculture, Energy, Waste}

// Record is one sector's index trajectories.
type Record struct {
	Label          string             `json:"label"`
	Baseline       [SeriesLen]float64 `json:"baseline"`
	Projected      [SeriesLen]float64 `json:"withCEA"`
	HigherIsBetter bool               `json:"higherIsBetter"`
}

// Snapshot is a point-in-time copy of a sector and its usage count.
type Snapshot struct {
	Sector string `json:"sector"`
	Record
	Usage int `json:"learningUsage"`
}

// UnknownSectorError reports a sector key outside the fixed set.
type UnknownSectorError struct {
	Sector string
}

func (e *UnknownSectorError) Error() string {
	return fmt.Sprintf("Unknown sector: %s", e.Sector)
}

// Outcome tags the result of a learning step.
type Outcome string

const (
	OutcomeApplied        Outcome = "applied"
	OutcomeSectorNotFound Outcome = "sector_not_found"
)

// StepResult is returned by ApplyLearningStep. Snapshot is only set when Outcome is
// OutcomeApplied.
type StepResult struct {
	Outcome  Outcome
	Snapshot Snapshot
}

func defaultRecords() map[string]*Record {
	return map[string]*Record{
		Housing: {
			Label:          "Projected Housing Stress Index (lower is better) – CEA reduces stress over time.",
			Baseline:       [SeriesLen]float64{72, 74, 75, 76, 77},
			Projected:      [SeriesLen]float64{72, 70, 67, 64, 60},
			HigherIsBetter: false,
		},
		Education: {
			Label:          "Projected Education Access & Quality Index (higher is better) – CEA improves targeting.",
			Baseline:       [SeriesLen]float64{65, 66, 67, 68, 68},
			Projected:      [SeriesLen]float64{65, 68, 71, 74, 77},
			HigherIsBetter: true,
		},
		Healthcare: {
			Label:          "Projected Healthcare Capacity Index (higher is better) – CEA supports planning.",
			Baseline:       [SeriesLen]float64{60, 61, 61, 62, 62},
			Projected:      [SeriesLen]float64{60, 63, 66, 68, 70},
			HigherIsBetter: true,
		},
		Infrastructure: {
			Label:          "Infrastructure Efficiency Index (higher is better) – better project selection with CEA.",
			Baseline:       [SeriesLen]float64{58, 59, 59, 60, 61},
			Projected:      [SeriesLen]float64{58, 62, 66, 69, 72},
			HigherIsBetter: true,
		},
		Agriculture: {
			Label:          "Sustainable Agriculture Index (higher is better) – more circular, climate‑smart.",
			Baseline:       [SeriesLen]float64{55, 56, 57, 58, 59},
			Projected:      [SeriesLen]float64{55, 59, 63, 66, 70},
			HigherIsBetter: true,
		},
		Energy: {
			Label:          "Clean Energy Share Index (higher is better) – renewables plus circular management.",
			Baseline:       [SeriesLen]float64{50, 52, 53, 54, 55},
			Projected:      [SeriesLen]float64{50, 55, 60, 65, 70},
			HigherIsBetter: true,
		},
		Waste: {
			Label:          "Waste Diversion from Landfill Index (higher is better) – core circular marketplace impact.",
			Baseline:       [SeriesLen]float64{40, 41, 42, 43, 44},
			Projected:      [SeriesLen]float64{40, 48, 55, 60, 65},
			HigherIsBetter: true,
		},
	}
}

// Dataset owns the sector table and usage counters. All access goes through its mutex so a
// learning step is a single serialized write.
type Dataset struct {
	mu      sync.Mutex
	records map[string]*Record
	usage   map[string]int
}

// NewDataset returns a dataset seeded with the built-in sector constants and zero usage.
func NewDataset() *Dataset {
	records := defaultRecords()
	usage := make(map[string]int, len(records))
	for key := range records {
		usage[key] = 0
	}
	return &Dataset{records: records, usage: usage}
}

// Known reports whether sector is one of the fixed keys.
func (d *Dataset) Known(sector string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.records[sector]
	return ok
}

// Validate returns an *UnknownSectorError for keys outside the fixed set.
func (d *Dataset) Validate(sector string) error {
	if !d.Known(sector) {
		return &UnknownSectorError{Sector: sector}
	}
	return nil
}

// ApplyLearningStep nudges the projected series of sector one increment toward its target
// and bumps the sector's usage count. Unknown sectors leave everything untouched.
func (d *Dataset) ApplyLearningStep(sector string) StepResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec, ok := d.records[sector]
	if !ok {
		return StepResult{Outcome: OutcomeSectorNotFound}
	}

	d.usage[sector]++
	for i := range rec.Projected {
		rec.Projected[i] = learningStep(rec.Baseline[i], rec.Projected[i], i, rec.HigherIsBetter)
	}

	return StepResult{
		Outcome:  OutcomeApplied,
		Snapshot: Snapshot{Sector: sector, Record: *rec, Usage: d.usage[sector]},
	}
}

// learningStep moves current toward the clamp target for index i. Later years move faster.
func learningStep(base, current float64, i int, higherIsBetter bool) float64 {
	progress := float64(i+1) / SeriesLen
	step := baseStep * progress

	if higherIsBetter {
		target := min(indexMax, base+maxGap)
		if current < target {
			current = min(target, current+step)
		}
		return current
	}

	target := max(indexMin, base-maxGap)
	if current > target {
		current = max(target, current-step)
	}
	return current
}

// Snapshot returns a copy of one sector.
func (d *Dataset) Snapshot(sector string) (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec, ok := d.records[sector]
	if !ok {
		return Snapshot{}, &UnknownSectorError{Sector: sector}
	}
	return Snapshot{Sector: sector, Record: *rec, Usage: d.usage[sector]}, nil
}

// All returns copies of every sector in Keys order.
func (d *Dataset) All() []Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Snapshot, 0, len(Keys))
	for _, key := range Keys {
		rec := d.records[key]
		out = append(out, Snapshot{Sector: key, Record: *rec, Usage: d.usage[key]})
	}
	return out
}

// Usage returns the number of applied learning steps for sector.
func (d *Dataset) Usage(sector string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.usage[sector]
}
