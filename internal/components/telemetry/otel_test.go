package telemetry

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupFromEnvWithoutConfig(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	otel, err := SetupFromEnv(context.Background(), "test:telemetry")
	require.True(t, errors.Is(err, os.ErrNotExist), err)
	require.Nil(t, otel.TracerProvider)
	require.NoError(t, otel.Shutdown(context.Background()))
}
