package commands

import (
	"omnivox-backend/internal/scrapers/omnivox"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadOptions(t *testing.T) {
	dir := t.TempDir()
	configPath = filepath.Join(dir, "omnivox.json5")

	opts, err := readOptions()
	require.NoError(t, err)
	require.Equal(t, omnivox.DefaultOptions(), opts)

	err = os.WriteFile(configPath, []byte(`{ requests_per_second: 0.5, cloudflare_bypass: true }`), 0644)
	require.NoError(t, err)

	opts, err = readOptions()
	require.NoError(t, err)
	require.Equal(t, 0.5, opts.RequestsPerSecond)
	require.True(t, opts.CloudflareBypass)
	require.Equal(t, omnivox.DefaultOptions().PortalUrl, opts.PortalUrl)
}

func TestCredentials(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	t.Setenv("OMNIVOX_ID", "")
	t.Setenv("OMNIVOX_PASSWORD", "")

	_, _, err = credentials()
	require.Error(t, err)

	t.Setenv("OMNIVOX_ID", "2412345")
	t.Setenv("OMNIVOX_PASSWORD", "hunter2")
	id, secret, err := credentials()
	require.NoError(t, err)
	require.Equal(t, "2412345", id)
	require.Equal(t, "hunter2", secret)
}
