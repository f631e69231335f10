package dequestress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunMatchesReference(t *testing.T) {
	for _, symmetric := range []bool{false, true} {
		report, err := Run(nil, Config{
			Ops:        5000,
			BlockSize:  4,
			MapSize:    1,
			Seed:       7,
			Symmetric:  symmetric,
			CheckEvery: 250,
		})
		require.NoError(t, err)

		total := 0
		for _, op := range report.Ops {
			total += op.Count
			require.Equal(t, 0, op.Rejected)
		}
		require.Equal(t, 5000, total)
		require.Equal(t, 5000, report.Operations)
		require.Greater(t, report.Stats.Relocations, 0)
		require.Equal(t, report.Length, report.Stats.ElementCount)
		require.Contains(t, report.StatsJSON, `"DetailedMap"`)
	}
}

func TestRunWithinBlockBudget(t *testing.T) {
	report, err := Run(nil, Config{
		Ops:        3000,
		BlockSize:  2,
		MapSize:    8,
		Seed:       3,
		MaxBlocks:  4,
		CheckEvery: 100,
	})
	require.NoError(t, err)

	rejected := 0
	for _, op := range report.Ops {
		rejected += op.Rejected
	}
	require.Greater(t, rejected, 0)
	require.LessOrEqual(t, report.Stats.BlockCount, 4)
	require.LessOrEqual(t, report.Length, 7)
}

func TestRunIsDeterministic(t *testing.T) {
	config := Config{Ops: 1000, BlockSize: 8, MapSize: 8, Seed: 11, CheckEvery: 1000}

	first, err := Run(nil, config)
	require.NoError(t, err)
	second, err := Run(nil, config)
	require.NoError(t, err)

	require.Equal(t, first.Ops, second.Ops)
	require.Equal(t, first.Length, second.Length)
	require.Equal(t, first.Stats, second.Stats)
}
