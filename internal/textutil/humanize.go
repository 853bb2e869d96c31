package textutil

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

var compactMagnitudes = []humanize.RelTimeMagnitude{
	{D: 10 * time.Second, Format: "just now", DivBy: time.Second},
	{D: time.Hour, Format: "%dm %s", DivBy: time.Minute},
	{D: humanize.Day, Format: "%dh %s", DivBy: time.Hour},
	{D: 30 * humanize.Day, Format: "%dd %s", DivBy: humanize.Day},
	{D: humanize.Year, Format: "%dmo %s", DivBy: 30 * humanize.Day},
	{D: math.MaxInt64, Format: "%dy %s", DivBy: humanize.Year},
}

// RelativeAge renders how long ago t was in compact form: "just now",
// "5m ago", "3h ago", "2d ago", "4mo ago", "1y ago". Times in the future
// read as "just now".
func RelativeAge(t, now time.Time) string {
	if t.IsZero() {
		return "?"
	}
	if t.After(now) {
		return "just now"
	}
	return humanize.CustomRelTime(t, now, "ago", "from now", compactMagnitudes)
}

// HumanBytes formats a byte count with binary units, e.g. "1.5 KiB".
func HumanBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// Count formats n with thousands separators.
func Count(n int64) string {
	return humanize.Comma(n)
}
