package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"DEALSDIR_SITE_NAME", "DEALSDIR_STORE_DRIVER", "DEALSDIR_DATABASE_FILE",
		"DEALSDIR_CREDENTIALS", "DEALSDIR_TELEMETRY",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	require.Equal(t, "SalesAholicsDeals", cfg.SiteName)
	require.Equal(t, "sqlite", cfg.StoreDriver)
	require.Equal(t, "dealsdir.db", cfg.DatabaseFile)
	require.Equal(t, "plaintext", cfg.Credentials)
	require.False(t, cfg.Telemetry)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DEALSDIR_STORE_DRIVER", "bolt")
	t.Setenv("DEALSDIR_DATABASE_FILE", "/tmp/d.db")
	t.Setenv("DEALSDIR_CREDENTIALS", "argon2")
	t.Setenv("DEALSDIR_TELEMETRY", "true")

	cfg := LoadConfig()
	require.Equal(t, "bolt", cfg.StoreDriver)
	require.Equal(t, "/tmp/d.db", cfg.DatabaseFile)
	require.Equal(t, "argon2", cfg.Credentials)
	require.True(t, cfg.Telemetry)
}

func TestGetEnvBoolOrDefault(t *testing.T) {
	t.Setenv("FLAG", "")
	require.True(t, getEnvBoolOrDefault("FLAG", true))

	for _, v := range []string{"1", "true", "YES", "on"} {
		t.Setenv("FLAG", v)
		require.True(t, getEnvBoolOrDefault("FLAG", false), "value %q", v)
	}
	for _, v := range []string{"0", "false", "No", "OFF"} {
		t.Setenv("FLAG", v)
		require.False(t, getEnvBoolOrDefault("FLAG", true), "value %q", v)
	}

	t.Setenv("FLAG", "maybe")
	require.True(t, getEnvBoolOrDefault("FLAG", true))
}

func TestCredentialVerifierSelection(t *testing.T) {
	v, err := credentialVerifier("plaintext")
	require.NoError(t, err)
	require.NoError(t, v.Verify("pw", "pw"))

	_, err = credentialVerifier("md5")
	require.Error(t, err)
}
