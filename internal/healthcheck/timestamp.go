package healthcheck

import (
	"regexp"
	"time"
)

// TimestampLayout is the format the time service answers with, e.g.
// `2024-01-01 13:04:05 +0100`.
const TimestampLayout = "2006-01-02 15:04:05 -0700"

// time.Parse tolerates fractional seconds the layout does not mention.
var timestampRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} [+-]\d{4}$`)

// ParseTimestamp parses a time service body. The body must match the layout
// exactly; surrounding whitespace is not trimmed.
func ParseTimestamp(body string) (time.Time, error) {
	if !timestampRE.MatchString(body) {
		return time.Time{}, &ParseError{Body: body, Reason: "does not match " + TimestampLayout}
	}

	ts, err := time.Parse(TimestampLayout, body)
	if err != nil {
		return time.Time{}, &ParseError{Body: body, Err: err}
	}
	return ts, nil
}

// FormatTimestamp renders t the way the time service does.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Drift is service minus now, both truncated to whole epoch seconds.
func Drift(service, now time.Time) int64 {
	return service.Unix() - now.Unix()
}

// InSync compares the truncated epoch seconds of service and now. A zero
// tolerance needs identical seconds, so two instants a few milliseconds apart
// across a second boundary still count as drift.
func InSync(service, now time.Time, tolerance time.Duration) bool {
	d := Drift(service, now)
	if d < 0 {
		d = -d
	}
	return d <= int64(tolerance/time.Second)
}
