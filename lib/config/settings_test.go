package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadSettings(t *testing.T) {
	{
		// No config file
		settings, err := LoadSettings([]string{"-v"})
		assert.NoError(t, err)
		assert.True(t, settings.VerboseLogging)
		assert.Equal(t, Default(), settings.Config)
	}
	{
		// With config file
		settings, err := LoadSettings([]string{"--config", writeConfig(t, fullConfig)})
		assert.NoError(t, err)
		assert.False(t, settings.VerboseLogging)
		assert.Equal(t, "/data/interim/merged.csv", settings.Config.Ingestion.InterimDataPath)
	}
	{
		// Invalid config file
		_, err := LoadSettings([]string{"-c", writeConfig(t, "ingestion:\n  mergeKey: Approved_Flag\n")})
		assert.ErrorContains(t, err, "failed to validate config: invalid ingestion settings")
	}
	{
		// Malformed yaml
		_, err := LoadSettings([]string{"-c", writeConfig(t, "ingestion: [")})
		assert.ErrorContains(t, err, "failed to parse config file")
	}
	{
		// Unknown flag
		_, err := LoadSettings([]string{"--nope"})
		assert.ErrorContains(t, err, "failed to parse args")
	}
}
