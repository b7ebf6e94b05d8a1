package healthcheck

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
)

// Status classifies the outcome of a check.
type Status string

const (
	StatusOK              Status = "ok"
	StatusInvalidResponse Status = "invalid_response"
	StatusUnparseable     Status = "unparseable"
	StatusOutOfSync       Status = "out_of_sync"
	StatusRequestFailed   Status = "request_failed"
)

// Result is the outcome of a single check. Only the fields relevant to
// Status are populated.
type Result struct {
	Status      Status
	URL         string
	StatusCode  int
	Body        string
	ServiceTime time.Time
	LocalTime   time.Time
	Drift       int64 // seconds, service minus local
	Elapsed     time.Duration
	CheckedAt   time.Time
	Err         error
}

func (r *Result) OK() bool {
	return r.Status == StatusOK
}

// Message is the single status line printed for the check.
func (r *Result) Message() string {
	switch r.Status {
	case StatusOK:
		return "OK"
	case StatusInvalidResponse:
		return fmt.Sprintf("ALERT: Invalid response from url: %s", r.URL)
	case StatusUnparseable:
		return fmt.Sprintf("ALERT: Unable to parse timestamp: %s", printableBody(r.Body))
	case StatusOutOfSync:
		return "ALERT: Timeservice is not in sync"
	case StatusRequestFailed:
		return fmt.Sprintf("ALERT: Request failed for url: %s", r.URL)
	default:
		return fmt.Sprintf("ALERT: Unknown status %q", string(r.Status))
	}
}

func (r *Result) String() string {
	return r.Message()
}

// printableBody keeps the alert on one line: a body with newlines or other
// control characters is shown Go-quoted, anything else verbatim.
func printableBody(body string) string {
	if strings.IndexFunc(body, func(r rune) bool { return !unicode.IsPrint(r) }) >= 0 {
		return strconv.Quote(body)
	}
	return body
}

// Report is a JSON-friendly view of a Result.
type Report struct {
	Status      Status     `json:"status"`
	Message     string     `json:"message"`
	URL         string     `json:"url"`
	StatusCode  int        `json:"status_code,omitempty"`
	ServiceTime *time.Time `json:"service_time,omitempty"`
	LocalTime   *time.Time `json:"local_time,omitempty"`
	Drift       *int64     `json:"drift_seconds,omitempty"`
	DriftText   string     `json:"drift,omitempty"`
	ElapsedMs   int64      `json:"elapsed_ms"`
	CheckedAt   time.Time  `json:"checked_at"`
	Error       string     `json:"error,omitempty"`
}

func (r *Result) Report() *Report {
	rep := &Report{
		Status:     r.Status,
		Message:    r.Message(),
		URL:        r.URL,
		StatusCode: r.StatusCode,
		ElapsedMs:  r.Elapsed.Milliseconds(),
		CheckedAt:  r.CheckedAt,
	}

	if !r.ServiceTime.IsZero() && !r.LocalTime.IsZero() {
		serviceTime, localTime, drift := r.ServiceTime, r.LocalTime, r.Drift
		rep.ServiceTime = &serviceTime
		rep.LocalTime = &localTime
		rep.Drift = &drift
		rep.DriftText = DescribeDrift(r.ServiceTime, r.LocalTime)
	}

	if r.Err != nil {
		rep.Error = r.Err.Error()
	}

	return rep
}

// DescribeDrift renders the offset of service from local, e.g. "1 hour behind".
func DescribeDrift(service, local time.Time) string {
	if Drift(service, local) == 0 {
		return "in sync"
	}
	return humanize.RelTime(service.Truncate(time.Second), local.Truncate(time.Second), "behind", "ahead")
}
