package healthcheck

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/imroc/req/v3"
	"github.com/openmined/timecheck/internal/clock"
	"github.com/openmined/timecheck/internal/config"
	"github.com/openmined/timecheck/internal/version"
)

// Options configures a Checker. Zero values fall back to defaults.
type Options struct {
	Timeout   time.Duration
	Tolerance time.Duration // accepted drift, whole seconds
	Clock     clock.Clock
	Debug     bool
}

// Checker compares a time service against a reference clock.
type Checker struct {
	client    *req.Client
	clock     clock.Clock
	tolerance time.Duration
}

func New(opts *Options) *Checker {
	if opts == nil {
		opts = &Options{}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.System{}
	}

	// no retries: one request per check
	client := req.C().
		SetTimeout(timeout).
		SetUserAgent(version.UserAgent()).
		SetLogger(&slogLogger{})

	if opts.Debug {
		client.EnableDebugLog()
	}

	return &Checker{
		client:    client,
		clock:     clk,
		tolerance: opts.Tolerance,
	}
}

// Check performs one GET against url and classifies the answer. Failures are
// reported through the returned Result, never as a Go error.
func (c *Checker) Check(ctx context.Context, url string) *Result {
	res := &Result{URL: url}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		Get(url)
	res.Elapsed = time.Since(start)
	res.CheckedAt = start

	if err != nil {
		slog.Warn("time service request failed", "url", url, "error", err)
		res.Status = StatusRequestFailed
		res.Err = fmt.Errorf("%w: %w", ErrRequestFailed, err)
		return res
	}

	res.StatusCode = resp.StatusCode
	res.Body = resp.String()

	slog.Debug("time service response",
		"url", url,
		"status", resp.StatusCode,
		"elapsed", res.Elapsed,
		"body", res.Body,
	)

	if resp.StatusCode != http.StatusOK {
		res.Status = StatusInvalidResponse
		res.Err = fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
		return res
	}

	return c.compare(res)
}

func (c *Checker) compare(res *Result) *Result {
	serviceTime, err := ParseTimestamp(res.Body)
	if err != nil {
		res.Status = StatusUnparseable
		res.Err = fmt.Errorf("%w: %w", ErrUnparseable, err)
		return res
	}

	now := c.clock.Now()
	res.ServiceTime = serviceTime
	res.LocalTime = now
	res.Drift = Drift(serviceTime, now)

	slog.Debug("time service comparison",
		"service", serviceTime.Unix(),
		"local", now.Unix(),
		"drift", DescribeDrift(serviceTime, now),
		"tolerance", c.tolerance,
	)

	if !InSync(serviceTime, now, c.tolerance) {
		res.Status = StatusOutOfSync
		res.Err = fmt.Errorf("%w: drift %ds", ErrOutOfSync, res.Drift)
		return res
	}

	res.Status = StatusOK
	return res
}

// slogLogger routes req's internal logging to slog so stdout stays reserved
// for the result line.
type slogLogger struct{}

func (l *slogLogger) Errorf(format string, v ...any) {
	slog.Error(fmt.Sprintf(format, v...), "component", "http")
}

func (l *slogLogger) Warnf(format string, v ...any) {
	slog.Warn(fmt.Sprintf(format, v...), "component", "http")
}

func (l *slogLogger) Debugf(format string, v ...any) {
	slog.Debug(fmt.Sprintf(format, v...), "component", "http")
}
