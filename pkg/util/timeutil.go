package util

import "time"

// NowUTC is the default clock for the services. They hold it as a
// swappable func field so tests can pin time.
func NowUTC() time.Time {
	return time.Now().UTC()
}
