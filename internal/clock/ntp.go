package clock

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/beevik/ntp"
)

const DefaultNTPTimeout = 5 * time.Second

// NewNTP queries host once and returns the system clock corrected by the
// measured offset.
func NewNTP(host string, timeout time.Duration) (*Offset, error) {
	if timeout <= 0 {
		timeout = DefaultNTPTimeout
	}

	resp, err := ntp.QueryWithOptions(host, ntp.QueryOptions{Version: 4, Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("ntp query %s: %w", host, err)
	}

	if err := resp.Validate(); err != nil {
		return nil, fmt.Errorf("ntp response %s: %w", host, err)
	}

	slog.Debug("ntp offset",
		"host", host,
		"offset", resp.ClockOffset,
		"rtt", resp.RTT,
		"stratum", resp.Stratum,
	)

	return &Offset{Base: System{}, Offset: resp.ClockOffset}, nil
}
