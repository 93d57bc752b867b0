// FilePath: internal/report/bucket.go
package report

import (
	"fmt"
	"sort"
	"time"
)

// BucketMode selects the bucket key granularity.
type BucketMode int

const (
	// SingleDayHour keys by 2-digit hour ("00".."23"); all 24 buckets are
	// pre-seeded so empty hours keep a stable position for one-day reports.
	SingleDayHour BucketMode = iota
	// MultiDayHour keys by "YYYY-MM-DD_HH", created lazily; pre-seeding every
	// hour of a long range would be wasteful.
	MultiDayHour
	// LocalDay keys by "YYYY-MM-DD" for the punto de venta daily report.
	LocalDay
)

// Bucketer maps UTC log timestamps to local-time bucket keys. All bucketing
// happens in one fixed named zone: devices stamp logs in UTC, business users
// reason in local time, and the server locale must not matter.
type Bucketer struct {
	loc *time.Location
}

func NewBucketer(loc *time.Location) *Bucketer {
	return &Bucketer{loc: loc}
}

func (b *Bucketer) Location() *time.Location {
	return b.loc
}

// Key returns the bucket key and display label for a timestamp.
func (b *Bucketer) Key(ts time.Time, mode BucketMode) (key, label string) {
	local := ts.In(b.loc)
	switch mode {
	case SingleDayHour:
		key = local.Format("15")
		label = key + ":00"
	case MultiDayHour:
		key = local.Format("2006-01-02_15")
		label = local.Format("2006-01-02 15") + ":00"
	case LocalDay:
		key = local.Format("2006-01-02")
		label = key
	}
	return key, label
}

// SeedHours returns the 24 single-day keys in order.
func (b *Bucketer) SeedHours() []string {
	hours := make([]string, 24)
	for h := 0; h < 24; h++ {
		hours[h] = fmt.Sprintf("%02d", h)
	}
	return hours
}

// DayWindow converts one local calendar day into its UTC query window.
func (b *Bucketer) DayWindow(year int, month time.Month, day int) (start, end time.Time) {
	start = time.Date(year, month, day, 0, 0, 0, 0, b.loc).UTC()
	end = time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), b.loc).UTC()
	return start, end
}

// SortKeys orders bucket keys chronologically. Zero-padded keys make
// lexicographic order chronological in every mode; single-day keys sort
// numerically by hour, which coincides with the same ordering.
func SortKeys(keys []string) {
	sort.Strings(keys)
}
