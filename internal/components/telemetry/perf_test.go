package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInstrumentPerfStats(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tel := NewMemoryAPI()
	InstrumentPerfStats(ctx, 10*time.Millisecond, tel)

	require.Eventually(t, func() bool {
		goroutines, ok := tel.Count("perf_stats.goroutines")
		return ok && goroutines > 0
	}, 2*time.Second, 10*time.Millisecond)
}
