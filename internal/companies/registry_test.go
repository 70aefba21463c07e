package companies

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/cea/internal/domain/validation"
)

func TestProjectGrowth_Thousand(t *testing.T) {
	p := ProjectGrowth(1000.0)

	assert.Equal(t, [5]float64{1000, 1020, 1040.4, 1061.21, 1082.43}, p.Baseline)
	assert.Equal(t, 1000.0, p.Projected[0])
	assert.Equal(t, 1050.0, p.Projected[1])
	assert.Equal(t, 1102.5, p.Projected[2])
	// 1157.625 is an exact tie and rounds to even
	assert.Equal(t, 1157.62, p.Projected[3])
	assert.Equal(t, 1215.51, p.Projected[4])
}

func TestProjectGrowth_RoundsOnlyRecordedValues(t *testing.T) {
	// 0.014 is recorded as 0.01, but compounding continues from 0.014:
	// 0.014 * 1.05^4 = 0.0170 -> 0.02, where 0.01 * 1.05^4 would give 0.01
	p := ProjectGrowth(0.014)
	assert.Equal(t, 0.01, p.Baseline[0])
	assert.Equal(t, 0.02, p.Projected[4])

	p = ProjectGrowth(123.456)
	assert.Equal(t, 123.46, p.Baseline[0])
	// 123.456 * 1.02 = 125.92512
	assert.Equal(t, 125.93, p.Baseline[1])
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, round2(1.234))
	assert.Equal(t, 1.24, round2(1.236))
	// exact binary ties go to even
	assert.Equal(t, 0.12, round2(0.125))
	assert.Equal(t, 0.38, round2(0.375))
	// 2.675 is stored just below the tie
	assert.Equal(t, 2.67, round2(2.675))
}

func TestCreate_DefaultsSectorAndAssignsIDs(t *testing.T) {
	r := NewRegistry()

	c, err := r.Create("Acme", "", "500")
	require.NoError(t, err)
	assert.Equal(t, 1, c.ID)
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, DefaultSector, c.Sector)
	assert.Equal(t, 500.0, c.StartRevenue)
	assert.Equal(t, [5]int{2023, 2024, 2025, 2026, 2027}, c.Years)
	assert.Equal(t, 500.0, c.Baseline[0])
	assert.Equal(t, 510.0, c.Baseline[1])
	assert.Equal(t, 525.0, c.Projected[1])

	c2, err := r.Create("  Beta Pty  ", " energy ", " 12.5 ")
	require.NoError(t, err)
	assert.Equal(t, 2, c2.ID)
	assert.Equal(t, "Beta Pty", c2.Name)
	assert.Equal(t, "energy", c2.Sector)
	assert.Equal(t, 12.5, c2.StartRevenue)
}

func TestCreate_ValidationFailuresDoNotMutate(t *testing.T) {
	tests := []struct {
		name, company, sector, revenue, want string
	}{
		{"missing name", "", "", "500", MsgNameAndRevenueRequired},
		{"blank name", "   ", "", "500", MsgNameAndRevenueRequired},
		{"missing revenue", "Acme", "", "", MsgNameAndRevenueRequired},
		{"negative revenue", "Acme", "", "-5", MsgRevenueNotPositive},
		{"zero revenue", "Acme", "", "0", MsgRevenueNotPositive},
		{"not a number", "Acme", "", "abc", MsgRevenueNotPositive},
		{"infinite", "Acme", "", "inf", MsgRevenueNotPositive},
		{"nan", "Acme", "", "NaN", MsgRevenueNotPositive},
	}

	r := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Create(tt.company, tt.sector, tt.revenue)
			verr, ok := validation.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, verr.Message)
		})
	}

	assert.Zero(t, r.Len())
	c, err := r.Create("Acme", "", "500")
	require.NoError(t, err)
	assert.Equal(t, 1, c.ID, "failed submissions must not consume ids")
}

func TestListAndGet(t *testing.T) {
	r := NewRegistry()
	assert.NotNil(t, r.List())
	assert.Empty(t, r.List())

	for _, name := range []string{"A", "B", "C"} {
		_, err := r.Create(name, "", "100")
		require.NoError(t, err)
	}

	list := r.List()
	require.Len(t, list, 3)
	for i, c := range list {
		assert.Equal(t, i+1, c.ID)
	}

	c, ok := r.Get(2)
	require.True(t, ok)
	assert.Equal(t, "B", c.Name)

	_, ok = r.Get(99)
	assert.False(t, ok)
}

func TestCreate_ConcurrentIDsAreUnique(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Create("Acme", "", "10")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	seen := map[int]bool{}
	for _, c := range r.List() {
		assert.False(t, seen[c.ID], "duplicate id %d", c.ID)
		seen[c.ID] = true
	}
	assert.Len(t, seen, 50)
}
