package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, 5, cfg.Feed.PageSize)
	require.Equal(t, 3, cfg.Feed.HomeSize)
	require.Equal(t, 120, cfg.JWT.ExpireMin)
	require.False(t, cfg.Trace.Enabled)
}
