package random

import (
	"math"
	"math/rand"
	"time"
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

// Randomize applies ±percent randomization to value
// Example: Randomize(100, 1.0) returns value in range [99, 101]
func Randomize(value float64, percent float64) float64 {
	if percent <= 0 {
		return value
	}

	variance := value * (percent / 100.0)
	offset := (rand.Float64()*2 - 1) * variance

	result := value + offset
	return math.Round(result*100) / 100
}

// Jitter applies ±percent randomization to a duration. Used to spread
// retry backoff and scheduled refreshes so they don't align exactly.
func Jitter(d time.Duration, percent float64) time.Duration {
	if d <= 0 {
		return d
	}

	jittered := Randomize(float64(d), percent)
	if jittered < 0 {
		return 0
	}
	return time.Duration(jittered)
}
