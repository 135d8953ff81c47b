package chrono

import (
	"errors"
	"omnivox-backend/internal/components/telemetry"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStandardImpl(t *testing.T) {
	clock, err := NewStandardImpl("")
	require.NoError(t, err)
	require.Equal(t, DefaultLocation, clock.Location().String())
	require.Equal(t, clock.Location(), clock.Now().Location())

	_, err = NewStandardImpl("Not/AZone")
	require.Error(t, err)
}

func TestStandardCron(t *testing.T) {
	clock, err := NewStandardImpl("UTC")
	require.NoError(t, err)
	tel := telemetry.NewMemoryAPI()

	cron := NewStandardCron(clock, tel)
	defer cron.Stop()

	err = cron.Cron("not a spec", func() {})
	require.Error(t, err)

	ran := make(chan struct{}, 1)
	err = cron.Cron("@every 1s", func() {
		select {
		case ran <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("cron callback did not run")
	}
}

func TestCronLoggerReportsErrors(t *testing.T) {
	tel := telemetry.NewMemoryAPI()
	cronLogger{tel: tel}.Error(errors.New("panic"), "job failed", "entry", 1)
	require.True(t, tel.HasBroken("cron"))
	require.Equal(t, []any{"entry: 1"}, tel.Broken()[0].Params[1])
}
