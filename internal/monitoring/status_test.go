package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollectHostStatus(t *testing.T) {
	status := CollectHostStatus()

	assert.WithinDuration(t, time.Now(), status.CollectedAt, time.Minute)
	// Probe values are best effort; on any supported platform memory totals
	// should at least be populated.
	assert.NotZero(t, status.MemTotalMB)
	assert.GreaterOrEqual(t, status.MemPercent, 0.0)
	assert.LessOrEqual(t, status.MemPercent, 100.0)
}
