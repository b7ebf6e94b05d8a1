package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultURL       = "http://timeservice01-elb-1646580280.eu-west-2.elb.amazonaws.com/now"
	DefaultTimeout   = 10 * time.Second
	DefaultTolerance = 0
	DefaultOutput    = OutputText
	EnvPrefix        = "TIMECHECK"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

var (
	ErrInvalidTimeout   = errors.New("config: timeout must be positive")
	ErrInvalidTolerance = errors.New("config: tolerance cannot be negative")
	ErrInvalidOutput    = errors.New("config: unknown output format")
)

type Config struct {
	URL       string        `mapstructure:"url"`
	Debug     bool          `mapstructure:"debug"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Tolerance int           `mapstructure:"tolerance"` // whole seconds
	NTPHost   string        `mapstructure:"ntp_host"`
	Output    string        `mapstructure:"output"`
}

func Default() *Config {
	return &Config{
		URL:       DefaultURL,
		Timeout:   DefaultTimeout,
		Tolerance: DefaultTolerance,
		Output:    DefaultOutput,
	}
}

// Validate normalizes the config and checks the values the check cannot run
// without. The URL is deliberately not checked here; an unusable URL is
// reported by the caller and ends up as a request failure.
func (c *Config) Validate() error {
	c.URL = strings.TrimSpace(c.URL)
	c.NTPHost = strings.TrimSpace(c.NTPHost)
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))

	if c.Output == "" {
		c.Output = DefaultOutput
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Timeout)
	}

	if c.Tolerance < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTolerance, c.Tolerance)
	}

	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutput, c.Output)
	}

	return nil
}

// ToleranceDuration returns the accepted drift as a duration.
func (c *Config) ToleranceDuration() time.Duration {
	return time.Duration(c.Tolerance) * time.Second
}
