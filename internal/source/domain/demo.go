package domain

import (
	"fmt"
	"math"
	"math/rand"
)

// Demo walk bounds. Values are clamped inclusive on both ends.
const (
	demoHeartRateMin = 60
	demoHeartRateMax = 110

	demoTemperatureMin = 36.0
	demoTemperatureMax = 37.3

	demoOxygenMin = 95
	demoOxygenMax = 100

	// Oxygen changes by one point with this probability per tick and is
	// otherwise held.
	demoOxygenChangeProbability = 0.3
)

// DemoWalk produces a bounded random walk of plausible physiological
// values. The baselines live here, owned by the walk, not derived from the
// externally observable window state. Not safe for concurrent use.
type DemoWalk struct {
	rng         *rand.Rand
	heartRate   int
	temperature float64
	oxygen      int
}

// NewDemoWalk creates a walk seeded for reproducibility in tests.
func NewDemoWalk(seed int64) *DemoWalk {
	return &DemoWalk{
		rng:         rand.New(rand.NewSource(seed)),
		heartRate:   80,
		temperature: 36.6,
		oxygen:      98,
	}
}

// Next advances the walk one tick and returns the payload text in the same
// wire format the hardware sends, so demo data flows through the identical
// parser path.
func (w *DemoWalk) Next() string {
	w.heartRate = clampInt(w.heartRate+w.rng.Intn(5)-2, demoHeartRateMin, demoHeartRateMax)

	step := w.rng.Float64()*0.2 - 0.1
	w.temperature = clampFloat(round1(w.temperature+step), demoTemperatureMin, demoTemperatureMax)

	if w.rng.Float64() < demoOxygenChangeProbability {
		delta := 1
		if w.rng.Intn(2) == 0 {
			delta = -1
		}
		w.oxygen = clampInt(w.oxygen+delta, demoOxygenMin, demoOxygenMax)
	}

	return fmt.Sprintf("H:%d,T:%.1f,O:%d", w.heartRate, w.temperature, w.oxygen)
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
