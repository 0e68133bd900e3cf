package domain

import (
	"log/slog"
	"time"
)

// TimestampLayouts are tried in order when reading a stored or user supplied date.
var TimestampLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// StorageTimestampLayout is the fixed-width layout dates are written with, so stored
// values sort lexically in time order.
const StorageTimestampLayout = "2006-01-02 15:04:05.000000"

// EpochFallback is returned for dates that match none of the layouts.
var EpochFallback = time.Unix(0, 0).UTC()

// ParseTimestamp reads s using TimestampLayouts. Unparsable input is logged and
// replaced by EpochFallback so ingestion never fails on a bad date.
func ParseTimestamp(s string) time.Time {
	for _, layout := range TimestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	slog.Error("Failed to parse timestamp, falling back to epoch", slog.String("value", s))
	return EpochFallback
}

// FormatTimestamp renders t the way it is stored.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(StorageTimestampLayout)
}
