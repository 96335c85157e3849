package caffeine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuildGridDefaultWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 37, 12, 0, time.UTC)
	grid := BuildGrid(SimulationOptions{}, now)

	require.Equal(t, now.UnixMilli(), grid.EndMS)
	require.Equal(t, now.Add(-24*time.Hour).UnixMilli(), grid.StartMS)
	require.Equal(t, int64(15*60*1000), grid.StepMS)
	require.Len(t, grid.PointsMS, 96)
	require.Equal(t, grid.StartMS, grid.PointsMS[0])
}

func TestBuildGridAlignToHour(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 37, 12, 0, time.UTC)
	grid := BuildGrid(SimulationOptions{AlignToHour: true}, now)

	require.Equal(t, time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC).UnixMilli(), grid.EndMS)
	require.Equal(t, time.Date(2025, 3, 9, 14, 0, 0, 0, time.UTC).UnixMilli(), grid.StartMS)
	require.Equal(t, int64(60*60*1000), grid.StepMS, "aligned grids default to hourly steps")
	require.Len(t, grid.PointsMS, 24)
}

func TestBuildGridExplicitWindowAndStep(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	grid := BuildGrid(SimulationOptions{
		StartMS:     start.UnixMilli(),
		EndMS:       end.UnixMilli(),
		GridMinutes: 60,
	}, time.Now())

	require.Len(t, grid.PointsMS, 1, "a one hour window at hourly resolution is a single point")
	require.Equal(t, start.UnixMilli(), grid.PointsMS[0])
}

func TestBuildGridEndExclusive(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	grid := BuildGrid(SimulationOptions{
		StartMS:     start.UnixMilli(),
		EndMS:       end.UnixMilli(),
		GridMinutes: 60,
	}, time.Now())

	// 08:00 and 09:00 fit; 09:30 is past the last whole step.
	require.Len(t, grid.PointsMS, 2)
	for i := 1; i < len(grid.PointsMS); i++ {
		require.Equal(t, grid.StepMS, grid.PointsMS[i]-grid.PointsMS[i-1])
	}
	require.Less(t, grid.PointsMS[len(grid.PointsMS)-1], end.UnixMilli())
}

func TestBuildGridEmptyWindow(t *testing.T) {
	at := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC).UnixMilli()
	grid := BuildGrid(SimulationOptions{StartMS: at, EndMS: at, GridMinutes: 15}, time.Now())
	require.Empty(t, grid.PointsMS)
}
