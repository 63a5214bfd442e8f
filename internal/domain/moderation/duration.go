package moderation

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

var abbrMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Minute, Format: "%ds", DivBy: time.Second},
	{D: time.Hour, Format: "%dm", DivBy: time.Minute},
	{D: humanize.Day, Format: "%dh", DivBy: time.Hour},
	{D: humanize.Week, Format: "%dd", DivBy: humanize.Day},
	{D: humanize.Month, Format: "%dw", DivBy: humanize.Week},
	{D: humanize.Year, Format: "%dmo", DivBy: humanize.Month},
	{D: math.MaxInt64, Format: "%dy", DivBy: humanize.Year},
}

// FormatDistanceAbbr renders the distance between now and the unix timestamp
// expires in the compact form the in-game command parser accepts ("30m", "2d", "3mo").
// Only the largest unit is kept.
func FormatDistanceAbbr(now time.Time, expires int64) string {
	return strings.TrimSpace(humanize.CustomRelTime(now, time.Unix(expires, 0), "", "", abbrMagnitudes))
}
