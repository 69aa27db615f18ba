package retry

import (
	"math"
	"time"
)

// Exponential returns initial scaled by multiplier^attempts, the formula the
// push-sender uses to space out redelivery attempts for a single message row
// (src/lib/backoff.rs). Unlike Do's jittered doubling, this has no cap and no
// randomness: the sender stores attemptsCount on the row and recomputes the
// next-attempt time deterministically on every poll.
func Exponential(initial time.Duration, multiplier float64, attemptsCount int) time.Duration {
	scale := math.Pow(multiplier, float64(attemptsCount))
	return time.Duration(float64(initial) * scale)
}
