package retry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wavesplatform/push-notifications/pkg/retry"
)

func TestExponential(t *testing.T) {
	const multiplierTwo = 2.0

	cases := []struct {
		attempts int
		want     time.Duration
	}{
		{0, 10 * time.Second},
		{1, 20 * time.Second},
		{2, 40 * time.Second},
		{3, 80 * time.Second},
		{4, 160 * time.Second},
		{5, 320 * time.Second},
	}

	for _, c := range cases {
		got := retry.Exponential(10*time.Second, multiplierTwo, c.attempts)
		assert.Equal(t, c.want, got, "attempts=%d", c.attempts)
	}
}
