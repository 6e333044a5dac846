package utils

import "time"

// TripLocation resolves a trip's IANA reference timezone, falling back to
// UTC when the name is empty or unknown.
func TripLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// TripToday returns the current instant in the trip's reference timezone.
// Day comparisons throughout the engine run against this value.
func TripToday(tz string) time.Time {
	return time.Now().In(TripLocation(tz))
}

func NowUnixSeconds() int64 { return time.Now().Unix() }

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
