package caffeine

import "time"

const (
	millisPerMinute = int64(60 * 1000)
	millisPerHour   = 60 * millisPerMinute
)

// BuildGrid constructs the fixed-step time axis for a simulation. The window
// defaults to the 24 hours ending at now; explicit bounds win. Points are
// start-inclusive, end-exclusive, and their count depends only on the window
// and resolution.
func BuildGrid(opts SimulationOptions, now time.Time) Grid {
	endMS := opts.EndMS
	if endMS == 0 {
		endMS = now.UnixMilli()
	}
	startMS := opts.StartMS
	if startMS == 0 {
		startMS = endMS - 24*millisPerHour
	}

	if opts.AlignToHour {
		startMS = floorToHourMS(startMS)
		endMS = floorToHourMS(endMS)
	}

	stepMinutes := opts.GridMinutes
	if stepMinutes <= 0 {
		if opts.AlignToHour {
			stepMinutes = 60
		} else {
			stepMinutes = 15
		}
	}
	stepMS := int64(stepMinutes) * millisPerMinute

	var points []int64
	if endMS > startMS {
		points = make([]int64, 0, (endMS-startMS)/stepMS)
		for t := startMS; t < endMS; t += stepMS {
			points = append(points, t)
		}
	}

	return Grid{StartMS: startMS, EndMS: endMS, StepMS: stepMS, PointsMS: points}
}

func floorToHourMS(ms int64) int64 {
	if ms >= 0 {
		return ms - ms%millisPerHour
	}
	// Go's % truncates toward zero; snap negative stamps downward too.
	rem := ms % millisPerHour
	if rem == 0 {
		return ms
	}
	return ms - rem - millisPerHour
}
