package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("timecheck", pflag.ContinueOnError)
	fs.Bool("debug", false, "")
	fs.String("url", DefaultURL, "")
	fs.Duration("timeout", DefaultTimeout, "")
	fs.Int("tolerance", DefaultTolerance, "")
	fs.String("ntp-host", "", "")
	fs.String("output", DefaultOutput, "")
	return fs
}

func TestConfig_Validate_NormalizesAndDefaults(t *testing.T) {
	cfg := &Config{
		URL:     "  http://127.0.0.1:8080/now ",
		Timeout: time.Second,
		Output:  " JSON ",
	}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://127.0.0.1:8080/now", cfg.URL)
	assert.Equal(t, OutputJSON, cfg.Output)

	cfg.Output = ""
	require.NoError(t, cfg.Validate())
	assert.Equal(t, OutputText, cfg.Output)
}

func TestConfig_Validate_ErrorsOnInvalidInputs(t *testing.T) {
	t.Run("zero timeout", func(t *testing.T) {
		cfg := Default()
		cfg.Timeout = 0
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidTimeout)
	})

	t.Run("negative tolerance", func(t *testing.T) {
		cfg := Default()
		cfg.Tolerance = -1
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidTolerance)
	})

	t.Run("unknown output", func(t *testing.T) {
		cfg := Default()
		cfg.Output = "yaml"
		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrInvalidOutput)
		assert.Contains(t, err.Error(), "yaml")
	})

	t.Run("invalid url is not a config error", func(t *testing.T) {
		cfg := Default()
		cfg.URL = "not-a-url"
		assert.NoError(t, cfg.Validate())
	})
}

func TestConfig_ToleranceDuration(t *testing.T) {
	cfg := Default()
	assert.Equal(t, time.Duration(0), cfg.ToleranceDuration())

	cfg.Tolerance = 3
	assert.Equal(t, 3*time.Second, cfg.ToleranceDuration())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newFlagSet())
	require.NoError(t, err)

	assert.Equal(t, DefaultURL, cfg.URL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, 0, cfg.Tolerance)
	assert.Equal(t, OutputText, cfg.Output)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.NTPHost)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("TIMECHECK_URL", "http://env.example.com/now")
	t.Setenv("TIMECHECK_TIMEOUT", "3s")
	t.Setenv("TIMECHECK_NTP_HOST", "pool.ntp.org")
	t.Setenv("TIMECHECK_DEBUG", "true")
	t.Setenv("TIMECHECK_TOLERANCE", "4")
	t.Setenv("TIMECHECK_OUTPUT", "JSON")

	cfg, err := Load(newFlagSet())
	require.NoError(t, err)

	assert.Equal(t, "http://env.example.com/now", cfg.URL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "pool.ntp.org", cfg.NTPHost)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 4, cfg.Tolerance)
	assert.Equal(t, OutputJSON, cfg.Output)
}

func TestLoad_DecodeError(t *testing.T) {
	t.Setenv("TIMECHECK_TOLERANCE", "several")

	_, err := Load(newFlagSet())
	assert.ErrorContains(t, err, "config decode")
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("TIMECHECK_URL", "http://env.example.com/now")
	t.Setenv("TIMECHECK_TOLERANCE", "5")

	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--url", "http://flag.example.com/now", "--tolerance", "1", "--output", "json"}))

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, "http://flag.example.com/now", cfg.URL)
	assert.Equal(t, 1, cfg.Tolerance)
	assert.Equal(t, OutputJSON, cfg.Output)
}

func TestLoad_InvalidValues(t *testing.T) {
	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--timeout", "0s"}))

	_, err := Load(fs)
	assert.ErrorIs(t, err, ErrInvalidTimeout)
}
