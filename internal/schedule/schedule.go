package schedule

import "time"

// Inspection frequencies recognized on a meter. Anything else, including the
// empty string, carries no interval.
const (
	FreqMonthly      = "Monthly"
	FreqQuarterly    = "Quarterly"
	FreqSemiannual   = "Semiannual"
	FreqAnnual       = "Annual"
	FreqOutOfService = "Out of Service"
)

var intervalMonths = map[string]int{
	FreqMonthly:    1,
	FreqQuarterly:  3,
	FreqSemiannual: 6,
	FreqAnnual:     12,
}

// Frequencies lists the selectable cadences in display order.
func Frequencies() []string {
	return []string{FreqMonthly, FreqQuarterly, FreqSemiannual, FreqAnnual, FreqOutOfService}
}

// IntervalMonths returns the recurrence interval for a frequency. Out of
// Service, the empty string and unrecognized values yield ok=false; that is
// not an error condition.
func IntervalMonths(frequency string) (int, bool) {
	n, ok := intervalMonths[frequency]
	return n, ok
}

// AddMonths advances d by n calendar months, clamping the day to the last
// valid day of the target month: Jan 31 + 1 month is Feb 28 (29 in a leap
// year), not Mar 2. time.AddDate normalizes overflow days into the next
// month, so the target month is assembled by hand.
func AddMonths(d time.Time, n int) time.Time {
	year := d.Year()
	month := int(d.Month()) - 1 + n
	year += month / 12
	month = month % 12
	if month < 0 {
		month += 12
		year--
	}
	day := d.Day()
	if last := daysIn(year, time.Month(month+1)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextInspection derives the next due date from the last test date and the
// meter's frequency. It is the single source of truth for next_inspection:
// nil when there is no last test, no frequency, the meter is Out of Service,
// or the frequency string is unrecognized.
func NextInspection(lastTest *time.Time, frequency string) *time.Time {
	if lastTest == nil || frequency == "" || frequency == FreqOutOfService {
		return nil
	}
	months, ok := IntervalMonths(frequency)
	if !ok {
		return nil
	}
	next := AddMonths(*lastTest, months)
	return &next
}

// WeekBounds returns the Monday and Sunday of the ISO week containing ref.
func WeekBounds(ref time.Time) (time.Time, time.Time) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
