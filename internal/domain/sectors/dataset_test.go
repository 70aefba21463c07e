package sectors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyLearningStep_HousingFirstStep(t *testing.T) {
	d := NewDataset()

	res := d.ApplyLearningStep(Housing)
	require.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, 1, res.Snapshot.Usage)

	// lower is better: each index moves down by 0.5*(i+1)/5
	want := []float64{71.9, 69.8, 66.7, 63.6, 59.5}
	for i, v := range want {
		assert.InDelta(t, v, res.Snapshot.Projected[i], 1e-9, "index %d", i)
	}
	assert.Equal(t, [SeriesLen]float64{72, 74, 75, 76, 77}, res.Snapshot.Baseline)
}

func TestApplyLearningStep_HigherIsBetterMovesUp(t *testing.T) {
	d := NewDataset()

	res := d.ApplyLearningStep(Waste)
	require.Equal(t, OutcomeApplied, res.Outcome)

	want := []float64{40.1, 48.2, 55.3, 60.4, 65.5}
	for i, v := range want {
		assert.InDelta(t, v, res.Snapshot.Projected[i], 1e-9, "index %d", i)
	}
}

func TestApplyLearningStep_ClampsAtTarget(t *testing.T) {
	d := NewDataset()

	for _, key := range Keys {
		start, err := d.Snapshot(key)
		require.NoError(t, err)

		prev := start.Projected
		for n := 0; n < 500; n++ {
			res := d.ApplyLearningStep(key)
			require.Equal(t, OutcomeApplied, res.Outcome)

			for i, cur := range res.Snapshot.Projected {
				base := start.Baseline[i]
				if start.HigherIsBetter {
					target := min(100, base+20)
					assert.LessOrEqual(t, cur, target, "%s[%d] crossed target", key, i)
					assert.GreaterOrEqual(t, cur, prev[i], "%s[%d] moved away", key, i)
				} else {
					target := max(0, base-20)
					assert.GreaterOrEqual(t, cur, target, "%s[%d] crossed target", key, i)
					assert.LessOrEqual(t, cur, prev[i], "%s[%d] moved away", key, i)
				}
			}
			prev = res.Snapshot.Projected
		}

		// 500 steps of at least 0.1 covers every gap in the built-in table
		for i, cur := range prev {
			base := start.Baseline[i]
			if start.HigherIsBetter {
				assert.Equal(t, min(100, base+20), cur, "%s[%d]", key, i)
			} else {
				assert.Equal(t, max(0, base-20), cur, "%s[%d]", key, i)
			}
		}
		assert.Equal(t, 500, d.Usage(key))
	}
}

func TestApplyLearningStep_UnknownSectorIsNoop(t *testing.T) {
	d := NewDataset()
	before := d.All()

	res := d.ApplyLearningStep("mining")

	assert.Equal(t, OutcomeSectorNotFound, res.Outcome)
	assert.Equal(t, Snapshot{}, res.Snapshot)
	assert.Equal(t, before, d.All())
	for _, key := range Keys {
		assert.Zero(t, d.Usage(key))
	}
}

func TestLearningStep_TargetBounds(t *testing.T) {
	// base near the top of the scale clamps at 100
	assert.Equal(t, 100.0, learningStep(95, 99.9, 4, true))
	// base near the bottom clamps at 0
	assert.Equal(t, 0.0, learningStep(5, 0.2, 4, false))
	// already past the target stays put
	assert.Equal(t, 90.0, learningStep(60, 90, 0, true))
}

func TestDatasetsAreIndependent(t *testing.T) {
	a := NewDataset()
	b := NewDataset()

	a.ApplyLearningStep(Energy)

	assert.Equal(t, 1, a.Usage(Energy))
	assert.Equal(t, 0, b.Usage(Energy))
	snap, err := b.Snapshot(Energy)
	require.NoError(t, err)
	assert.Equal(t, [SeriesLen]float64{50, 55, 60, 65, 70}, snap.Projected)
}

func TestValidate(t *testing.T) {
	d := NewDataset()

	assert.NoError(t, d.Validate(Agriculture))

	err := d.Validate("Housing")
	var unknown *UnknownSectorError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Unknown sector: Housing", err.Error())
}

func TestAllKeepsKeyOrder(t *testing.T) {
	all := NewDataset().All()
	require.Len(t, all, len(Keys))
	for i, snap := range all {
		assert.Equal(t, Keys[i], snap.Sector)
		assert.NotEmpty(t, snap.Label)
	}
}
